// Package jsonbackend stores archives in a document.Value tree.
//
// Groups become objects and series become arrays. The inline name collapses
// one level of nesting wherever the data allows it: a scalar serialized
// inline at an empty scope is stored bare, a series created inline turns the
// scope itself into the array, and a named value written into a scalar scope
// promotes the scope to an object that keeps the scalar under the inline name.
package jsonbackend

import (
	"math"

	"go.uber.org/zap"

	"github.com/reoring/archival"
	"github.com/reoring/archival/document"
)

// Name is reported by Backend.Name.
const Name = "JSON"

// Option configures a Backend.
type Option func(*options)

type options struct {
	logger       *zap.Logger
	wideIntegers bool
	inlineName   string
}

// WithLogger sets the logger for precision warnings. The default is
// archival.Logger().
func WithLogger(l *zap.Logger) Option { return func(o *options) { o.logger = l } }

// WithWideIntegers stores 64-bit integers exactly instead of narrowing them to
// 32 bits. Documents written this way may not load in readers limited to
// 32-bit integers.
func WithWideIntegers(on bool) Option { return func(o *options) { o.wideIntegers = on } }

// WithInlineName replaces the inline sentinel of the root and its children.
func WithInlineName(name string) Option { return func(o *options) { o.inlineName = name } }

// Backend reads or writes one scope of a document. It is created for the root
// with New and for children by CreateGroup and CreateSeriesEntry.
type Backend struct {
	archival.BaseBackend
	archival.NoHints

	node        *document.Value
	input       bool
	entries     map[string]int
	seriesEntry int // element of node addressed on input, -1 for node itself
	opts        *options
}

var _ archival.Backend = (*Backend)(nil)

// New returns a backend scoped to node. A nil node starts an empty document,
// reachable through Root.
func New(input bool, node *document.Value, opts ...Option) *Backend {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = archival.Logger()
	}
	if node == nil {
		node = document.New()
	}
	b := &Backend{node: node, input: input, seriesEntry: -1, opts: o}
	b.ResetInlineName(o.inlineName)
	return b
}

// NewArchive is archival.New over New(input, node, opts...).
func NewArchive(input bool, node *document.Value, opts ...Option) archival.Archive {
	return archival.New(input, New(input, node, opts...))
}

// Encode writes v inline into a fresh document.
func Encode(v any, opts ...Option) (*document.Value, bool) {
	b := New(false, nil, opts...)
	ok := archival.NewOutput(b).SerializeInline(v).Succeeded()
	return b.Root(), ok
}

// Decode reads v inline from doc.
func Decode(doc *document.Value, v any, opts ...Option) bool {
	return archival.NewInput(New(true, doc, opts...)).SerializeInline(v).Succeeded()
}

// Root returns the node the backend is scoped to.
func (b *Backend) Root() *document.Value { return b.node }

func (b *Backend) Name() string                 { return Name }
func (b *Backend) InlineSeriesVerbosity() uint8 { return 10 }

func (b *Backend) child(node *document.Value, seriesEntry int) *Backend {
	c := &Backend{node: node, input: b.input, seriesEntry: seriesEntry, opts: b.opts}
	c.ResetInlineName(b.InlineName())
	return c
}

// scope returns the value reads address: the current element when the backend
// points into an array, otherwise the node. A missing element reads as null.
func (b *Backend) scope() *document.Value {
	if b.seriesEntry < 0 {
		return b.node
	}
	if e := b.node.Index(b.seriesEntry); e != nil {
		return e
	}
	return document.New()
}

func (b *Backend) next(name string) int {
	if b.entries == nil {
		b.entries = map[string]int{}
	}
	idx, seen := b.entries[name]
	if seen {
		idx++
	}
	b.entries[name] = idx
	return idx
}

// promote turns obj into an object. A scalar or array already stored there is
// kept under the inline name; null is dropped.
func (b *Backend) promote(obj *document.Value) {
	switch {
	case obj.IsObject():
	case obj.IsNull():
		obj.SetObject()
	default:
		old := obj.Take()
		obj.SetObject()
		obj.Set(b.InlineName(), old)
	}
}

func (b *Backend) CreateGroup(name string, input bool) archival.Backend {
	inline := b.InlineName()
	if input {
		obj := b.scope()
		if name == inline && !obj.Member(name).IsObject() {
			return b.child(obj, -1)
		}
		m, ok := obj.Get(name)
		if !ok {
			return nil
		}
		return b.child(m, -1)
	}

	obj := b.node
	b.promote(obj)
	if name == inline {
		return b.child(obj, -1)
	}
	m := document.NewObject()
	obj.Set(name, m)
	return b.child(m, -1)
}

func (b *Backend) CreateSeriesEntry(name string, input bool) archival.Backend {
	idx := b.next(name)
	if input {
		arr := b.inputSeries(name)
		if arr == nil || idx >= arr.Len() {
			return nil
		}
		return b.child(arr, idx)
	}
	arr := b.outputSeries(name, idx+1)
	el := document.NewObject()
	arr.SetIndex(idx, el)
	return b.child(el, -1)
}

// inputSeries finds the array read by the named series, looking through an
// object that holds its array under the inline name.
func (b *Backend) inputSeries(name string) *document.Value {
	obj := b.scope()
	if name == b.InlineName() && obj.IsArray() {
		return obj
	}
	m, ok := obj.Get(name)
	if !ok {
		return nil
	}
	if m.IsArray() {
		return m
	}
	if inner, ok := m.Get(b.InlineName()); ok && inner.IsArray() {
		return inner
	}
	return nil
}

// outputSeries gets or creates the array written by the named series and grows
// it to at least size elements.
func (b *Backend) outputSeries(name string, size int) *document.Value {
	obj := b.node
	inline := b.InlineName()

	var arr *document.Value
	if m, ok := obj.Get(name); ok {
		if !m.IsArray() {
			b.opts.logger.Error("overwriting JSON value with array", zap.String("name", name), zap.Stringer("kind", m.Kind()))
			panic(archival.StructureConflictf("jsonbackend: series %q would overwrite a %s", name, m.Kind()))
		}
		arr = m
	} else if name == inline {
		switch {
		case obj.IsArray():
			arr = obj
		case obj.IsNull() || obj.IsEmptyObject():
			obj.SetArray()
			arr = obj
		case obj.IsObject():
			arr = document.NewArray()
			obj.Set(name, arr)
		default:
			b.opts.logger.Error("overwriting JSON value with array", zap.String("name", name), zap.Stringer("kind", obj.Kind()))
			panic(archival.StructureConflictf("jsonbackend: inline series would overwrite a %s", obj.Kind()))
		}
	} else {
		b.promote(obj)
		arr = document.NewArray()
		obj.Set(name, arr)
	}
	if arr.Len() < size {
		arr.Resize(size)
	}
	return arr
}

func (b *Backend) GetSeriesSize(name string, size *int) bool {
	arr := b.inputSeries(name)
	if arr == nil {
		return false
	}
	*size = arr.Len()
	return true
}

func (b *Backend) SetSeriesSize(name string, size int) bool {
	b.outputSeries(name, size)
	return true
}

func (b *Backend) GetEntryNames(names *[]string) bool {
	obj := b.scope()
	if obj.IsObject() {
		*names = append(*names, obj.Keys()...)
	} else {
		*names = append(*names, b.InlineName())
	}
	return true
}

// SetEntryNames is a no-op: object keys already carry the names.
func (b *Backend) SetEntryNames([]string) bool { return true }

// holder finds the value read under name, unwrapping one level of object
// that stores its scalar under the inline name.
func (b *Backend) holder(name string) *document.Value {
	obj := b.scope()
	inline := b.InlineName()
	if m, ok := obj.Get(name); ok {
		if m.IsObject() {
			if inner, ok := m.Get(inline); ok {
				return inner
			}
		}
		return m
	}
	if name == inline {
		return obj
	}
	return nil
}

// HasEntry reports whether name holds a non-null value. Null counts as absent.
func (b *Backend) HasEntry(name string) bool {
	h := b.holder(name)
	return h != nil && !h.IsNull()
}

func (b *Backend) Get(name string, dst any) bool {
	if !archival.KindOf(dst).IsBasic() {
		return false
	}
	h := b.holder(name)
	if h == nil {
		return false
	}
	return b.getScalar(name, h, dst)
}

// target returns the value Set writes into, creating it as needed.
func (b *Backend) target(name string) *document.Value {
	obj := b.node
	if name == b.InlineName() {
		if obj.IsObject() && !obj.IsEmptyObject() {
			t := document.New()
			obj.Set(name, t)
			return t
		}
		return obj
	}
	b.promote(obj)
	t := document.New()
	obj.Set(name, t)
	return t
}

func (b *Backend) Set(name string, src any) bool {
	if !archival.KindOf(src).IsBasic() {
		return false
	}
	return b.setScalar(name, b.target(name), src)
}

func (b *Backend) warn(msg, name string, fields ...zap.Field) {
	b.opts.logger.Warn(msg, append([]zap.Field{zap.String("name", name)}, fields...)...)
}

func (b *Backend) getScalar(name string, h *document.Value, dst any) bool {
	switch d := dst.(type) {
	case *archival.Null:
		return h.IsNull()
	case *bool:
		v, ok := h.Bool()
		if ok {
			*d = v
		}
		return ok
	case *string:
		v, ok := h.Str()
		if ok {
			*d = v
		}
		return ok
	case *float32:
		if h.IsNull() {
			*d = float32(math.NaN())
			return true
		}
		v, ok := h.Float64()
		if ok {
			*d = float32(v)
		}
		return ok
	case *float64:
		if h.IsNull() {
			*d = math.NaN()
			return true
		}
		v, ok := h.Float64()
		if ok {
			*d = v
		}
		return ok
	case *int8:
		return getSigned(h, d, math.MinInt8, math.MaxInt8)
	case *int16:
		return getSigned(h, d, math.MinInt16, math.MaxInt16)
	case *int32:
		return getSigned(h, d, math.MinInt32, math.MaxInt32)
	case *uint8:
		return getUnsigned(h, d, math.MaxUint8)
	case *uint16:
		return getUnsigned(h, d, math.MaxUint16)
	case *uint32:
		return getUnsigned(h, d, math.MaxUint32)
	case *int64:
		v, ok := b.getWideSigned(name, h)
		if ok {
			*d = v
		}
		return ok
	case *int:
		v, ok := b.getWideSigned(name, h)
		if ok {
			*d = int(v)
		}
		return ok
	case *uint64:
		v, ok := b.getWideUnsigned(name, h)
		if ok {
			*d = v
		}
		return ok
	case *uint:
		v, ok := b.getWideUnsigned(name, h)
		if ok {
			*d = uint(v)
		}
		return ok
	}
	return false
}

func getSigned[T ~int8 | ~int16 | ~int32](h *document.Value, d *T, lo, hi int64) bool {
	v, ok := h.Int64()
	if !ok || v < lo || v > hi {
		return false
	}
	*d = T(v)
	return true
}

func getUnsigned[T ~uint8 | ~uint16 | ~uint32](h *document.Value, d *T, hi uint64) bool {
	v, ok := h.Uint64()
	if !ok || v > hi {
		return false
	}
	*d = T(v)
	return true
}

func (b *Backend) getWideSigned(name string, h *document.Value) (int64, bool) {
	v, ok := h.Int64()
	if !ok || b.opts.wideIntegers {
		return v, ok
	}
	b.warn("extending 32-bit integer to 64 bits in JSON archive", name)
	return int64(int32(v)), true
}

func (b *Backend) getWideUnsigned(name string, h *document.Value) (uint64, bool) {
	v, ok := h.Uint64()
	if !ok || b.opts.wideIntegers {
		return v, ok
	}
	b.warn("extending 32-bit unsigned to 64 bits in JSON archive", name)
	return uint64(uint32(v)), true
}

func (b *Backend) setScalar(name string, t *document.Value, src any) bool {
	switch s := src.(type) {
	case *archival.Null:
		t.SetNull()
	case *bool:
		t.SetBool(*s)
	case *string:
		t.SetString(*s)
	case *float32:
		t.SetFloat32(*s)
	case *float64:
		t.SetFloat(*s)
	case *int8:
		t.SetInt(int64(*s))
	case *int16:
		t.SetInt(int64(*s))
	case *int32:
		t.SetInt(int64(*s))
	case *uint8:
		t.SetUint(uint64(*s))
	case *uint16:
		t.SetUint(uint64(*s))
	case *uint32:
		t.SetUint(uint64(*s))
	case *int64:
		b.setWideSigned(name, t, *s)
	case *int:
		b.setWideSigned(name, t, int64(*s))
	case *uint64:
		b.setWideUnsigned(name, t, *s)
	case *uint:
		b.setWideUnsigned(name, t, uint64(*s))
	default:
		return false
	}
	return true
}

func (b *Backend) setWideSigned(name string, t *document.Value, v int64) {
	if b.opts.wideIntegers {
		t.SetInt(v)
		return
	}
	b.warn("truncating 64-bit integer to 32 bits in JSON archive", name, zap.Int64("value", v))
	t.SetInt(int64(int32(v)))
}

func (b *Backend) setWideUnsigned(name string, t *document.Value, v uint64) {
	if b.opts.wideIntegers {
		t.SetUint(v)
		return
	}
	b.warn("truncating 64-bit unsigned to 32 bits in JSON archive", name, zap.Uint64("value", v))
	t.SetUint(uint64(uint32(v)))
}
