package document

import (
	"math"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind is the JSON type of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "invalid"
}

// Object is the ordered member map of an object Value.
type Object = orderedmap.OrderedMap[string, *Value]

// Value is a mutable JSON value. Objects keep their members in insertion
// order. Numbers are kept as their literal text so 64-bit integers survive a
// parse/encode cycle. The zero Value is null.
//
// Mutators change the value in place, so holders of a *Value observe the
// change; this is how backends coerce the node they are scoped to.
type Value struct {
	kind Kind
	b    bool
	s    string // string contents or number literal
	arr  []*Value
	obj  *Object
}

// New returns a null value.
func New() *Value { return &Value{} }

// NewBool returns a bool value.
func NewBool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// NewString returns a string value.
func NewString(s string) *Value { return &Value{kind: KindString, s: s} }

// NewNumber returns a number value holding literal, which must be valid JSON
// number text.
func NewNumber(literal string) *Value { return &Value{kind: KindNumber, s: literal} }

// NewInt returns a number value.
func NewInt(i int64) *Value { return NewNumber(strconv.FormatInt(i, 10)) }

// NewUint returns a number value.
func NewUint(u uint64) *Value { return NewNumber(strconv.FormatUint(u, 10)) }

// NewFloat returns a number value, or null for NaN and infinities.
func NewFloat(f float64) *Value {
	v := New()
	v.SetFloat(f)
	return v
}

// NewArray returns an array holding elems.
func NewArray(elems ...*Value) *Value {
	v := &Value{kind: KindArray}
	for _, e := range elems {
		v.Append(e)
	}
	return v
}

// NewObject returns an empty object.
func NewObject() *Value { return &Value{kind: KindObject, obj: orderedmap.New[string, *Value]()} }

// Kind returns the JSON type of v. A nil *Value is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) IsNull() bool   { return v.Kind() == KindNull }
func (v *Value) IsBool() bool   { return v.Kind() == KindBool }
func (v *Value) IsNumber() bool { return v.Kind() == KindNumber }
func (v *Value) IsString() bool { return v.Kind() == KindString }
func (v *Value) IsArray() bool  { return v.Kind() == KindArray }
func (v *Value) IsObject() bool { return v.Kind() == KindObject }

// IsEmptyObject reports whether v is an object without members.
func (v *Value) IsEmptyObject() bool { return v.IsObject() && v.obj.Len() == 0 }

// ---- scalars ----

// Bool returns the value of a bool.
func (v *Value) Bool() (bool, bool) {
	if !v.IsBool() {
		return false, false
	}
	return v.b, true
}

// Str returns the contents of a string.
func (v *Value) Str() (string, bool) {
	if !v.IsString() {
		return "", false
	}
	return v.s, true
}

// Number returns the literal text of a number.
func (v *Value) Number() (string, bool) {
	if !v.IsNumber() {
		return "", false
	}
	return v.s, true
}

// Float64 returns a number as float64.
func (v *Value) Float64() (float64, bool) {
	if !v.IsNumber() {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.s, 64)
	return f, err == nil
}

// Int64 returns a number as int64. Integral literals written with a fraction
// or exponent are accepted.
func (v *Value) Int64() (int64, bool) {
	if !v.IsNumber() {
		return 0, false
	}
	if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
		return i, true
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// Uint64 returns a non-negative number as uint64.
func (v *Value) Uint64() (uint64, bool) {
	if !v.IsNumber() {
		return 0, false
	}
	if u, err := strconv.ParseUint(v.s, 10, 64); err == nil {
		return u, true
	}
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil || f != math.Trunc(f) || f < 0 || f >= math.MaxUint64 {
		return 0, false
	}
	return uint64(f), true
}

func (v *Value) reset(k Kind) {
	v.kind = k
	v.b = false
	v.s = ""
	v.arr = nil
	v.obj = nil
}

// SetNull turns v into null.
func (v *Value) SetNull() { v.reset(KindNull) }

// SetBool turns v into a bool.
func (v *Value) SetBool(b bool) {
	v.reset(KindBool)
	v.b = b
}

// SetString turns v into a string.
func (v *Value) SetString(s string) {
	v.reset(KindString)
	v.s = s
}

// SetNumber turns v into a number with the given literal text.
func (v *Value) SetNumber(literal string) {
	v.reset(KindNumber)
	v.s = literal
}

// SetInt turns v into an integer number.
func (v *Value) SetInt(i int64) { v.SetNumber(strconv.FormatInt(i, 10)) }

// SetUint turns v into an unsigned integer number.
func (v *Value) SetUint(u uint64) { v.SetNumber(strconv.FormatUint(u, 10)) }

// SetFloat turns v into a number with the shortest float64 representation.
// NaN and infinities become null.
func (v *Value) SetFloat(f float64) { v.setFloat(f, 64) }

// SetFloat32 is SetFloat with float32 precision, so 0.1 is written as 0.1.
func (v *Value) SetFloat32(f float32) { v.setFloat(float64(f), 32) }

func (v *Value) setFloat(f float64, bits int) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		v.SetNull()
		return
	}
	v.SetNumber(strconv.FormatFloat(f, 'g', -1, bits))
}

// ---- arrays ----

// SetArray turns v into an empty array.
func (v *Value) SetArray() { v.reset(KindArray) }

// Len returns the number of elements of an array or members of an object.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.arr)
	case KindObject:
		return v.obj.Len()
	}
	return 0
}

// Index returns element i of an array, or nil.
func (v *Value) Index(i int) *Value {
	if !v.IsArray() || i < 0 || i >= len(v.arr) {
		return nil
	}
	return v.arr[i]
}

// Append adds e to an array. A nil e appends null.
func (v *Value) Append(e *Value) {
	if e == nil {
		e = New()
	}
	v.arr = append(v.arr, e)
}

// SetIndex replaces element i of an array. Out of range indexes are ignored.
func (v *Value) SetIndex(i int, e *Value) {
	if !v.IsArray() || i < 0 || i >= len(v.arr) {
		return
	}
	if e == nil {
		e = New()
	}
	v.arr[i] = e
}

// Resize sets the length of an array, padding with nulls.
func (v *Value) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(v.arr) {
		v.arr = v.arr[:n]
		return
	}
	for len(v.arr) < n {
		v.arr = append(v.arr, New())
	}
}

// Elements returns the elements of an array.
func (v *Value) Elements() []*Value {
	if !v.IsArray() {
		return nil
	}
	return v.arr
}

// ---- objects ----

// SetObject turns v into an empty object.
func (v *Value) SetObject() {
	v.reset(KindObject)
	v.obj = orderedmap.New[string, *Value]()
}

// Get returns member key of an object.
func (v *Value) Get(key string) (*Value, bool) {
	if !v.IsObject() {
		return nil, false
	}
	return v.obj.Get(key)
}

// Member is Get without the presence flag.
func (v *Value) Member(key string) *Value {
	m, _ := v.Get(key)
	return m
}

// Has reports whether an object has member key.
func (v *Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Set stores m under key, keeping the position of an existing member. A nil m
// stores null. Set on a non-object is ignored.
func (v *Value) Set(key string, m *Value) {
	if !v.IsObject() {
		return
	}
	if m == nil {
		m = New()
	}
	v.obj.Set(key, m)
}

// Delete removes member key.
func (v *Value) Delete(key string) {
	if v.IsObject() {
		v.obj.Delete(key)
	}
}

// Keys returns the member names of an object in order.
func (v *Value) Keys() []string {
	if !v.IsObject() {
		return nil
	}
	keys := make([]string, 0, v.obj.Len())
	for p := v.obj.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Range calls fn for every member of an object in order until fn returns
// false.
func (v *Value) Range(fn func(key string, m *Value) bool) {
	if !v.IsObject() {
		return
	}
	for p := v.obj.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}

// ---- whole values ----

// Assign makes v a shallow copy of src; children are shared.
func (v *Value) Assign(src *Value) {
	if src == nil {
		v.SetNull()
		return
	}
	*v = *src
}

// Take moves the contents of v into a new Value and leaves v null.
func (v *Value) Take() *Value {
	out := &Value{}
	*out = *v
	v.SetNull()
	return out
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	if v == nil {
		return New()
	}
	out := &Value{kind: v.kind, b: v.b, s: v.s}
	switch v.kind {
	case KindArray:
		out.arr = make([]*Value, len(v.arr))
		for i, e := range v.arr {
			out.arr[i] = e.Clone()
		}
	case KindObject:
		out.obj = orderedmap.New[string, *Value](v.obj.Len())
		for p := v.obj.Oldest(); p != nil; p = p.Next() {
			out.obj.Set(p.Key, p.Value.Clone())
		}
	}
	return out
}

// Equal reports whether a and b hold the same data. Member order is ignored;
// numbers compare by value.
func Equal(a, b *Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindNumber:
		if a.s == b.s {
			return true
		}
		fa, oka := a.Float64()
		fb, okb := b.Float64()
		return oka && okb && fa == fb
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for p := a.obj.Oldest(); p != nil; p = p.Next() {
			m, ok := b.obj.Get(p.Key)
			if !ok || !Equal(p.Value, m) {
				return false
			}
		}
		return true
	}
	return false
}
