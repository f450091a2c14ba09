package document

import (
	"math"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// ToYAML encodes v as a YAML document, members in document order.
func ToYAML(v *Value) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{toNode(v)}}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "document: encode yaml")
	}
	return out, nil
}

func toNode(v *Value) *yaml.Node {
	switch v.Kind() {
	case KindBool:
		s := "false"
		if v.b {
			s = "true"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: s}
	case KindNumber:
		tag := "!!float"
		if _, ok := v.Int64(); ok {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.s}
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
	case KindArray:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range v.arr {
			n.Content = append(n.Content, toNode(e))
		}
		return n
	case KindObject:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for p := v.obj.Oldest(); p != nil; p = p.Next() {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: p.Key},
				toNode(p.Value))
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// FromYAML decodes a YAML document. Mapping order is preserved; keys must be
// scalars. Non-finite floats become null, as in JSON.
func FromYAML(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "document: decode yaml"), ErrSyntax)
	}
	if doc.Kind == 0 {
		return New(), nil
	}
	return fromNode(&doc)
}

func fromNode(n *yaml.Node) (*Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return New(), nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.SequenceNode:
		out := NewArray()
		for _, c := range n.Content {
			e, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			out.Append(e)
		}
		return out, nil
	case yaml.MappingNode:
		out := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, errors.Newf("document: line %d: non-scalar mapping key", k.Line)
			}
			e, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			out.Set(k.Value, e)
		}
		return out, nil
	case yaml.ScalarNode:
		return fromScalar(n)
	}
	return nil, errors.Newf("document: line %d: unsupported yaml node", n.Line)
}

func fromScalar(n *yaml.Node) (*Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return New(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, errors.Wrapf(err, "document: line %d", n.Line)
		}
		return NewBool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return NewInt(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err != nil {
			return nil, errors.Wrapf(err, "document: line %d", n.Line)
		}
		return NewUint(u), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, errors.Wrapf(err, "document: line %d", n.Line)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return New(), nil
		}
		return NewFloat(f), nil
	}
	return NewString(n.Value), nil
}
