package archival

import (
	"strings"

	"github.com/samber/lo"
)

// GetSet serializes a computed property. On output the getter's value is
// written; on input the value is read into a temporary seeded from the getter
// and handed to set only if the read succeeded.
func GetSet[T any](get func() T, set func(T)) Archivable {
	return getSet[T]{get: get, set: func(v T) bool { set(v); return true }}
}

// GetSetChecked is GetSet with a setter that may reject the value. Rejection
// makes the serialization fail.
func GetSetChecked[T any](get func() T, set func(T) bool) Archivable {
	return getSet[T]{get: get, set: set}
}

type getSet[T any] struct {
	get func() T
	set func(T) bool
}

func (g getSet[T]) ArchiveValue(ar Archive, name string) bool {
	var tmp T
	if g.get != nil {
		tmp = g.get()
	}
	if !dispatch(ar, name, &tmp) {
		return false
	}
	if ar.IsInput() && g.set != nil {
		return g.set(tmp)
	}
	return true
}

// Integer is the set of types an enum can be declared over.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// EnumNames serializes *e by its name in names, matching case-insensitively
// on input. Backends that prefer binary data get the integer form. Values
// outside names are written as integers.
func EnumNames[E Integer](e *E, names []string) Archivable {
	return enumNames[E]{ptr: e, names: names}
}

// EnumNamesCaseSensitive is EnumNames with exact name matching.
func EnumNamesCaseSensitive[E Integer](e *E, names []string) Archivable {
	return enumNames[E]{ptr: e, names: names, caseSensitive: true}
}

// EnumToString returns the name of v in names.
func EnumToString[E Integer](names []string, v E) (string, bool) {
	i := int64(v)
	if i < 0 || i >= int64(len(names)) {
		return "", false
	}
	return names[i], true
}

// StringToEnum returns the index of s in names. It fails rather than falling
// back to zero when s is unknown.
func StringToEnum[E Integer](names []string, s string, caseSensitive bool) (E, bool) {
	var i int
	if caseSensitive {
		i = lo.IndexOf(names, s)
	} else {
		_, i, _ = lo.FindIndexOf(names, func(n string) bool { return strings.EqualFold(n, s) })
	}
	if i < 0 {
		return 0, false
	}
	return E(i), true
}

type enumNames[E Integer] struct {
	ptr           *E
	names         []string
	caseSensitive bool
}

func (en enumNames[E]) ArchiveValue(ar Archive, name string) bool {
	ar.HintValue(HintAllowedOptions, en.names)
	defer ar.UnHint(HintAllowedOptions)

	if ar.Backend().PrefersBinaryData() {
		if en.archiveInt(ar, name) {
			return true
		}
		return en.archiveName(ar, name)
	}
	if !ar.IsInput() {
		if _, ok := EnumToString(en.names, *en.ptr); !ok {
			return en.archiveInt(ar, name)
		}
		return en.archiveName(ar, name)
	}
	// A stored string that matches nothing is a failure, not a cue to try the
	// integer form.
	s, _ := EnumToString(en.names, *en.ptr)
	if ar.Serialize(name, &s).Succeeded() {
		return en.assign(s)
	}
	return en.archiveInt(ar, name)
}

func (en enumNames[E]) archiveName(ar Archive, name string) bool {
	s, _ := EnumToString(en.names, *en.ptr)
	if !ar.Serialize(name, &s).Succeeded() {
		return false
	}
	if ar.IsInput() {
		return en.assign(s)
	}
	return true
}

func (en enumNames[E]) assign(s string) bool {
	v, ok := StringToEnum[E](en.names, s, en.caseSensitive)
	if ok {
		*en.ptr = v
	}
	return ok
}

func (en enumNames[E]) archiveInt(ar Archive, name string) bool {
	i := int32(*en.ptr)
	if !ar.Serialize(name, &i).Succeeded() {
		return false
	}
	if ar.IsInput() {
		*en.ptr = E(i)
	}
	return true
}

// WithDefault serializes *v, omitting it from formats that allow it when it
// equals def. On input a missing field assigns def, never leaving the prior
// in-memory value in place. The result is success except under an
// unreachable scope or when the backend reports a stored value that failed
// to read. Both leave *v untouched.
func WithDefault[T comparable](v *T, def T) Archivable {
	return withDefault[T]{ptr: v, def: def}
}

type withDefault[T comparable] struct {
	ptr *T
	def T
}

func (d withDefault[T]) ArchiveValue(ar Archive, name string) bool {
	if !ar.IsInput() {
		r := ar.WriteConditional(*d.ptr != d.def)
		if !r.Succeeded() {
			return true
		}
		return r.Then(name, d.ptr).Succeeded()
	}
	// An unreachable scope (a collapsed editor group) leaves the field alone.
	if ar.IsNoOp() {
		return false
	}
	// Editors echo the condition back; true keeps the field visible.
	if !ar.WriteConditional(true).Succeeded() {
		*d.ptr = d.def
		return true
	}
	tmp := *d.ptr
	if dispatch(ar, name, &tmp) {
		*d.ptr = tmp
		return true
	}
	// A stored value of the wrong type is a failure. Only absence means default.
	if er, ok := ar.Backend().(EntryReporter); ok && er.HasEntry(name) {
		return false
	}
	*d.ptr = d.def
	return true
}
