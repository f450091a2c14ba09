//go:build sonic

package sonic

import (
	bs "github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
	"github.com/cockroachdb/errors"

	"github.com/reoring/archival/document"
)

// Driver returns a document.Driver backed by bytedance/sonic's lazy AST.
func Driver() document.Driver { return driver{} }

type driver struct{}

func (driver) Name() string { return "sonic" }

func (driver) Parse(data []byte) (*document.Value, error) {
	root, err := bs.Get(data)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "document: parse"), document.ErrSyntax)
	}
	return convert(&root)
}

func convert(n *ast.Node) (*document.Value, error) {
	switch n.Type() {
	case ast.V_NULL:
		return document.New(), nil
	case ast.V_TRUE:
		return document.NewBool(true), nil
	case ast.V_FALSE:
		return document.NewBool(false), nil
	case ast.V_NUMBER:
		raw, err := n.Raw()
		if err != nil {
			return nil, errors.Wrap(err, "document: number")
		}
		return document.NewNumber(raw), nil
	case ast.V_STRING:
		s, err := n.String()
		if err != nil {
			return nil, errors.Wrap(err, "document: string")
		}
		return document.NewString(s), nil
	case ast.V_ARRAY:
		out := document.NewArray()
		var inner error
		err := n.ForEach(func(_ ast.Sequence, c *ast.Node) bool {
			e, err := convert(c)
			if err != nil {
				inner = err
				return false
			}
			out.Append(e)
			return true
		})
		return out, errors.CombineErrors(inner, err)
	case ast.V_OBJECT:
		out := document.NewObject()
		var inner error
		err := n.ForEach(func(path ast.Sequence, c *ast.Node) bool {
			e, err := convert(c)
			if err != nil {
				inner = err
				return false
			}
			out.Set(*path.Key, e)
			return true
		})
		return out, errors.CombineErrors(inner, err)
	}
	return nil, errors.Wrapf(document.ErrSyntax, "unexpected node type %d", n.Type())
}
