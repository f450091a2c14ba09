package archival

import (
	"reflect"
	"sync"

	"github.com/cockroachdb/errors"
)

// Archivable is implemented by self-describing types. The method serializes
// each field through ar (usually via ar.CreateGroup(name)) and reports whether
// all of them succeeded.
type Archivable interface {
	ArchiveValue(ar Archive, name string) bool
}

// Archiver serializes values of a type that cannot carry a method. Register one
// with Specialize.
type Archiver[T any] interface {
	ArchiveValue(ar Archive, name string, v *T) bool
}

// ArchiverFunc adapts a function to Archiver.
type ArchiverFunc[T any] func(ar Archive, name string, v *T) bool

// ArchiveValue calls f.
func (f ArchiverFunc[T]) ArchiveValue(ar Archive, name string, v *T) bool { return f(ar, name, v) }

// Strategy names the way a value's type is serialized.
type Strategy int

const (
	StrategyUnresolved Strategy = iota
	StrategyPrimitive
	StrategyMethod
	StrategyFunc
	StrategySpecialization
	StrategyContainer
)

func (s Strategy) String() string {
	switch s {
	case StrategyPrimitive:
		return "primitive"
	case StrategyMethod:
		return "method"
	case StrategyFunc:
		return "func"
	case StrategySpecialization:
		return "specialization"
	case StrategyContainer:
		return "container"
	default:
		return "unresolved"
	}
}

type handler func(ar Archive, name string, v any) bool

var (
	registryMu      sync.RWMutex
	funcs           = map[reflect.Type]handler{}
	specializations = map[reflect.Type]handler{}
)

// RegisterFunc registers fn as the external serialization function for *T.
// It is consulted after self-describing methods and before specializations.
// Registering twice for the same type replaces the previous function.
func RegisterFunc[T any](fn func(ar Archive, name string, v *T) bool) {
	if fn == nil {
		return
	}
	t := reflect.TypeOf((*T)(nil))
	registryMu.Lock()
	funcs[t] = func(ar Archive, name string, v any) bool { return fn(ar, name, v.(*T)) }
	registryMu.Unlock()
}

// Specialize registers a as the archiver of last resort for *T, for closed
// third-party types that can neither get a method nor a registered function.
func Specialize[T any](a Archiver[T]) {
	if a == nil {
		return
	}
	t := reflect.TypeOf((*T)(nil))
	registryMu.Lock()
	specializations[t] = func(ar Archive, name string, v any) bool { return a.ArchiveValue(ar, name, v.(*T)) }
	registryMu.Unlock()
}

// Unregister removes any function and specialization registered for *T.
func Unregister[T any]() {
	t := reflect.TypeOf((*T)(nil))
	registryMu.Lock()
	delete(funcs, t)
	delete(specializations, t)
	registryMu.Unlock()
}

func lookup(table map[reflect.Type]handler, t reflect.Type) (handler, bool) {
	registryMu.RLock()
	h, ok := table[t]
	registryMu.RUnlock()
	return h, ok
}

// Resolve reports which strategy Serialize would use for v, in priority order:
// primitive, self-describing method, registered function, specialization,
// built-in container.
func Resolve(v any) Strategy {
	if v == nil {
		return StrategyUnresolved
	}
	return resolveType(reflect.TypeOf(v), nil)
}

var archivableType = reflect.TypeOf((*Archivable)(nil)).Elem()

// resolveType is Resolve on a type. visiting holds the container types being
// resolved further up, so self-referential containers terminate.
func resolveType(t reflect.Type, visiting map[reflect.Type]bool) Strategy {
	if KindOf(reflect.Zero(t).Interface()) != KindInvalid {
		return StrategyPrimitive
	}
	if t.Implements(archivableType) {
		return StrategyMethod
	}
	if _, ok := lookup(funcs, t); ok {
		return StrategyFunc
	}
	if _, ok := lookup(specializations, t); ok {
		return StrategySpecialization
	}
	if containerResolvable(t, visiting) {
		return StrategyContainer
	}
	return StrategyUnresolved
}

// Resolvable reports whether Serialize can handle v.
func Resolvable(v any) bool { return Resolve(v) != StrategyUnresolved }

// CheckResolvable returns an error unless *T can be serialized. Call it from
// init or tests so an unsupported field type fails before any data is touched.
func CheckResolvable[T any]() error {
	var zero T
	if Resolvable(&zero) {
		return nil
	}
	return errors.Wrapf(ErrUnresolvedType, "%T", &zero)
}

func dispatch(ar Archive, name string, v any) bool {
	switch Resolve(v) {
	case StrategyPrimitive:
		return archivePrimitive(ar, name, v)
	case StrategyMethod:
		return v.(Archivable).ArchiveValue(ar, name)
	case StrategyFunc:
		h, _ := lookup(funcs, reflect.TypeOf(v))
		return h(ar, name, v)
	case StrategySpecialization:
		h, _ := lookup(specializations, reflect.TypeOf(v))
		return h(ar, name, v)
	case StrategyContainer:
		return archiveContainer(ar, name, reflect.ValueOf(v))
	}
	// An unresolvable type is a programming error.
	panic(errors.Wrapf(ErrUnresolvedType, "serialize %q: %T", name, v))
}

func archivePrimitive(ar Archive, name string, v any) bool {
	b := ar.Backend()
	var ok bool
	if ar.IsInput() {
		ok = b.Get(name, v)
	} else {
		ok = b.Set(name, v)
	}
	if ok || !KindOf(v).IsExtended() {
		return ok
	}
	return archiveExtendedComponents(ar, name, v)
}
