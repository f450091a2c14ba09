package document

import (
	"bytes"

	j "github.com/goccy/go-json"
)

// Marshal encodes v as compact JSON, members in document order.
func Marshal(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(&buf, v, "", "", 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent is Marshal with one line per element, each starting with
// prefix and indented by indent per nesting level.
func MarshalIndent(v *Value, prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(prefix)
	if err := encode(&buf, v, prefix, indent, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON implements json.Marshaler.
func (v *Value) MarshalJSON() ([]byte, error) { return Marshal(v) }

// UnmarshalJSON implements json.Unmarshaler with the current driver.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	v.Assign(parsed)
	return nil
}

// String returns the compact JSON text of v.
func (v *Value) String() string {
	b, err := Marshal(v)
	if err != nil {
		return "<invalid>"
	}
	return string(b)
}

func newline(buf *bytes.Buffer, prefix, indent string, depth int) {
	if indent == "" && prefix == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(prefix)
	for i := 0; i < depth; i++ {
		buf.WriteString(indent)
	}
}

func encode(buf *bytes.Buffer, v *Value, prefix, indent string, depth int) error {
	switch v.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		buf.WriteString(v.s)
	case KindString:
		return encodeString(buf, v.s)
	case KindArray:
		if len(v.arr) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, prefix, indent, depth+1)
			if err := encode(buf, e, prefix, indent, depth+1); err != nil {
				return err
			}
		}
		newline(buf, prefix, indent, depth)
		buf.WriteByte(']')
	case KindObject:
		if v.obj.Len() == 0 {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		first := true
		for p := v.obj.Oldest(); p != nil; p = p.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			newline(buf, prefix, indent, depth+1)
			if err := encodeString(buf, p.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			if err := encode(buf, p.Value, prefix, indent, depth+1); err != nil {
				return err
			}
		}
		newline(buf, prefix, indent, depth)
		buf.WriteByte('}')
	}
	return nil
}

func encodeString(buf *bytes.Buffer, s string) error {
	b, err := j.MarshalNoEscape(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
