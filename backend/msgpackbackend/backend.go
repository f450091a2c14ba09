// Package msgpackbackend stores archives as a positional MessagePack stream.
//
// Names are not written: values, series sizes, entry names and conditional
// flags follow each other in call order, so the reading side must issue the
// same calls as the writing side. Groups and series entries share the stream
// of their parent.
package msgpackbackend

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"

	"github.com/reoring/archival"
)

// Name is reported by Backend.Name.
const Name = "MessagePack"

// ErrStream is wrapped by the error latched after a failed read or write.
var ErrStream = errors.New("msgpackbackend: stream error")

type stream struct {
	enc *msgpack.Encoder
	dec *msgpack.Decoder
	err error
}

func (s *stream) fail(err error, op string) bool {
	if s.err == nil {
		s.err = errors.Mark(errors.Wrapf(err, "msgpackbackend: %s", op), ErrStream)
	}
	return false
}

// Backend reads or writes one scope of a MessagePack stream. After the first
// stream error every call fails; Err reports it.
type Backend struct {
	archival.BaseBackend
	archival.NoHints

	s *stream
}

var _ archival.Backend = (*Backend)(nil)

// NewWriter returns an output backend writing to w.
func NewWriter(w io.Writer) *Backend {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return &Backend{s: &stream{enc: enc}}
}

// NewReader returns an input backend reading from r.
func NewReader(r io.Reader) *Backend {
	return &Backend{s: &stream{dec: msgpack.NewDecoder(r)}}
}

// Err returns the first stream error, if any.
func (b *Backend) Err() error { return b.s.err }

func (b *Backend) Name() string                 { return Name }
func (b *Backend) InlineSeriesVerbosity() uint8 { return 0 }
func (b *Backend) PrefersBinaryData() bool      { return true }

func (b *Backend) reading() bool { return b.s.dec != nil }

func (b *Backend) usable(input bool) bool {
	return b.s.err == nil && input == b.reading()
}

func (b *Backend) child() *Backend {
	c := &Backend{s: b.s}
	c.ResetInlineName(b.InlineName())
	return c
}

func (b *Backend) CreateGroup(_ string, input bool) archival.Backend {
	if !b.usable(input) {
		return nil
	}
	return b.child()
}

func (b *Backend) CreateSeriesEntry(_ string, input bool) archival.Backend {
	if !b.usable(input) {
		return nil
	}
	return b.child()
}

func (b *Backend) GetSeriesSize(_ string, size *int) bool {
	if !b.usable(true) {
		return false
	}
	n, err := b.s.dec.DecodeArrayLen()
	if err != nil {
		return b.s.fail(err, "series size")
	}
	if n < 0 {
		n = 0
	}
	*size = n
	return true
}

func (b *Backend) SetSeriesSize(_ string, size int) bool {
	if !b.usable(false) {
		return false
	}
	if err := b.s.enc.EncodeArrayLen(size); err != nil {
		return b.s.fail(err, "series size")
	}
	return true
}

func (b *Backend) GetEntryNames(names *[]string) bool {
	if !b.usable(true) {
		return false
	}
	n, err := b.s.dec.DecodeArrayLen()
	if err != nil {
		return b.s.fail(err, "entry names")
	}
	for i := 0; i < n; i++ {
		s, err := b.s.dec.DecodeString()
		if err != nil {
			return b.s.fail(err, "entry names")
		}
		*names = append(*names, s)
	}
	return true
}

func (b *Backend) SetEntryNames(names []string) bool {
	if !b.usable(false) {
		return false
	}
	if err := b.s.enc.EncodeArrayLen(len(names)); err != nil {
		return b.s.fail(err, "entry names")
	}
	for _, n := range names {
		if err := b.s.enc.EncodeString(n); err != nil {
			return b.s.fail(err, "entry names")
		}
	}
	return true
}

// WriteConditional persists the condition on output and replays it on input,
// so both sides take the same branch.
func (b *Backend) WriteConditional(condition, input bool) bool {
	if !b.usable(input) {
		return false
	}
	if input {
		v, err := b.s.dec.DecodeBool()
		if err != nil {
			return b.s.fail(err, "conditional")
		}
		return v
	}
	if err := b.s.enc.EncodeBool(condition); err != nil {
		return b.s.fail(err, "conditional")
	}
	return condition
}

// HasEntry is true: values are positional, so whatever the reader reaches is
// stored.
func (b *Backend) HasEntry(string) bool { return true }

func (b *Backend) Get(_ string, dst any) bool {
	if !b.usable(true) {
		return false
	}
	if _, ok := dst.(*archival.Null); ok {
		// A mismatch leaves the stream untouched for the next read.
		c, err := b.s.dec.PeekCode()
		if err != nil {
			return b.s.fail(err, "peek")
		}
		if c != msgpcode.Nil {
			return false
		}
		if err := b.s.dec.DecodeNil(); err != nil {
			return b.s.fail(err, "null")
		}
		return true
	}
	if floats := floatComponents(dst); floats != nil {
		n, err := b.s.dec.DecodeArrayLen()
		if err != nil {
			return b.s.fail(err, "vector")
		}
		if n != len(floats) {
			return b.s.fail(errors.Newf("expected %d components, got %d", len(floats), n), "vector")
		}
		for _, f := range floats {
			if *f, err = b.s.dec.DecodeFloat32(); err != nil {
				return b.s.fail(err, "vector")
			}
		}
		return true
	}
	if ints := intComponents(dst); ints != nil {
		n, err := b.s.dec.DecodeArrayLen()
		if err != nil {
			return b.s.fail(err, "vector")
		}
		if n != len(ints) {
			return b.s.fail(errors.Newf("expected %d components, got %d", len(ints), n), "vector")
		}
		for _, p := range ints {
			if *p, err = b.s.dec.DecodeInt32(); err != nil {
				return b.s.fail(err, "vector")
			}
		}
		return true
	}
	if err := b.decodeScalar(dst); err != nil {
		return b.s.fail(err, "value")
	}
	return true
}

func (b *Backend) decodeScalar(dst any) error {
	dec := b.s.dec
	var err error
	switch d := dst.(type) {
	case *bool:
		*d, err = dec.DecodeBool()
	case *string:
		*d, err = dec.DecodeString()
	case *float32:
		*d, err = dec.DecodeFloat32()
	case *float64:
		*d, err = dec.DecodeFloat64()
	case *int8:
		*d, err = dec.DecodeInt8()
	case *int16:
		*d, err = dec.DecodeInt16()
	case *int32:
		*d, err = dec.DecodeInt32()
	case *int64:
		*d, err = dec.DecodeInt64()
	case *int:
		*d, err = dec.DecodeInt()
	case *uint8:
		*d, err = dec.DecodeUint8()
	case *uint16:
		*d, err = dec.DecodeUint16()
	case *uint32:
		*d, err = dec.DecodeUint32()
	case *uint64:
		*d, err = dec.DecodeUint64()
	case *uint:
		*d, err = dec.DecodeUint()
	default:
		return errors.Newf("unsupported kind %T", dst)
	}
	return err
}

func (b *Backend) Set(_ string, src any) bool {
	if !b.usable(false) {
		return false
	}
	enc := b.s.enc
	if floats := floatComponents(src); floats != nil {
		if err := enc.EncodeArrayLen(len(floats)); err != nil {
			return b.s.fail(err, "vector")
		}
		for _, f := range floats {
			if err := enc.EncodeFloat32(*f); err != nil {
				return b.s.fail(err, "vector")
			}
		}
		return true
	}
	if ints := intComponents(src); ints != nil {
		if err := enc.EncodeArrayLen(len(ints)); err != nil {
			return b.s.fail(err, "vector")
		}
		for _, p := range ints {
			if err := enc.EncodeInt32(*p); err != nil {
				return b.s.fail(err, "vector")
			}
		}
		return true
	}

	var err error
	switch s := src.(type) {
	case *archival.Null:
		err = enc.EncodeNil()
	case *bool:
		err = enc.EncodeBool(*s)
	case *string:
		err = enc.EncodeString(*s)
	case *float32:
		err = enc.EncodeFloat32(*s)
	case *float64:
		err = enc.EncodeFloat64(*s)
	case *int8:
		err = enc.EncodeInt(int64(*s))
	case *int16:
		err = enc.EncodeInt(int64(*s))
	case *int32:
		err = enc.EncodeInt(int64(*s))
	case *int64:
		err = enc.EncodeInt(*s)
	case *int:
		err = enc.EncodeInt(int64(*s))
	case *uint8:
		err = enc.EncodeUint(uint64(*s))
	case *uint16:
		err = enc.EncodeUint(uint64(*s))
	case *uint32:
		err = enc.EncodeUint(uint64(*s))
	case *uint64:
		err = enc.EncodeUint(*s)
	case *uint:
		err = enc.EncodeUint(uint64(*s))
	default:
		return false
	}
	if err != nil {
		return b.s.fail(err, "value")
	}
	return true
}

// floatComponents returns pointers to the float components of the math kinds,
// in storage order.
func floatComponents(v any) []*float32 {
	switch t := v.(type) {
	case *archival.Vector2:
		return []*float32{&t.X, &t.Y}
	case *archival.Vector3:
		return []*float32{&t.X, &t.Y, &t.Z}
	case *archival.Vector4:
		return []*float32{&t.X, &t.Y, &t.Z, &t.W}
	case *archival.Quaternion:
		return []*float32{&t.W, &t.X, &t.Y, &t.Z}
	case *archival.Color:
		return []*float32{&t.R, &t.G, &t.B, &t.A}
	case *archival.Matrix3:
		return cells(t[:])
	case *archival.Matrix3x4:
		return cells(t[:])
	case *archival.Matrix4:
		return cells(t[:])
	}
	return nil
}

func cells(m []float32) []*float32 {
	out := make([]*float32, len(m))
	for i := range m {
		out[i] = &m[i]
	}
	return out
}

func intComponents(v any) []*int32 {
	switch t := v.(type) {
	case *archival.IntVector2:
		return []*int32{&t.X, &t.Y}
	case *archival.IntVector3:
		return []*int32{&t.X, &t.Y, &t.Z}
	}
	return nil
}

// Marshal serializes v inline into a MessagePack byte slice.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	b := NewWriter(&buf)
	ok := archival.NewOutput(b).SerializeInline(v).Succeeded()
	if err := b.Err(); err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.Newf("msgpackbackend: %T was not fully serialized", v)
	}
	return buf.Bytes(), nil
}

// Unmarshal deserializes data written by Marshal into v.
func Unmarshal(data []byte, v any) error {
	b := NewReader(bytes.NewReader(data))
	ok := archival.NewInput(b).SerializeInline(v).Succeeded()
	if err := b.Err(); err != nil {
		return err
	}
	if !ok {
		return errors.Newf("msgpackbackend: %T was not fully deserialized", v)
	}
	return nil
}

// Codec adapts Marshal and Unmarshal to archival.Codec.
type Codec struct{}

var _ archival.Codec = Codec{}

func (Codec) Marshal(v any) ([]byte, error)      { return Marshal(v) }
func (Codec) Unmarshal(data []byte, v any) error { return Unmarshal(data, v) }
func (Codec) Name() string                       { return "msgpack" }
