package archival

import (
	"reflect"
	"slices"
)

// containerResolvable reports whether t is a pointer to a slice, fixed array,
// or string-keyed map whose elements can themselves be serialized. A type
// already in visiting counts as resolvable: `type Tree map[string]Tree` is.
func containerResolvable(t reflect.Type, visiting map[reflect.Type]bool) bool {
	if t.Kind() != reflect.Pointer {
		return false
	}
	c := t.Elem()
	switch c.Kind() {
	case reflect.Slice, reflect.Array:
	case reflect.Map:
		if c.Key().Kind() != reflect.String {
			return false
		}
	default:
		return false
	}
	if visiting[t] {
		return true
	}
	if visiting == nil {
		visiting = map[reflect.Type]bool{}
	}
	visiting[t] = true
	defer delete(visiting, t)
	return resolveType(reflect.PointerTo(c.Elem()), visiting) != StrategyUnresolved
}

func archiveContainer(ar Archive, name string, ptr reflect.Value) bool {
	c := ptr.Elem()
	switch c.Kind() {
	case reflect.Slice:
		return archiveSlice(ar, name, c)
	case reflect.Array:
		return archiveArray(ar, name, c)
	case reflect.Map:
		return archiveMap(ar, name, c)
	}
	return false
}

// archiveSlice stores s as the series name. On input the slice is resized to
// the stored size and elements that fail to read are dropped; existing
// elements are the starting point for each read.
func archiveSlice(ar Archive, name string, s reflect.Value) bool {
	if !ar.IsInput() {
		size := s.Len()
		ok := ar.SerializeSeriesSize(name, &size)
		for i := 0; i < size; i++ {
			entry := ar.CreateSeriesEntry(name)
			if !entry.SerializeInline(s.Index(i).Addr().Interface()).Succeeded() {
				ok = false
			}
		}
		return ok
	}

	size := s.Len()
	if !ar.SerializeSeriesSize(name, &size) {
		return false
	}
	out := reflect.MakeSlice(s.Type(), 0, size)
	for i := 0; i < size; i++ {
		elem := reflect.New(s.Type().Elem())
		if i < s.Len() {
			elem.Elem().Set(s.Index(i))
		}
		entry := ar.CreateSeriesEntry(name)
		if entry.SerializeInline(elem.Interface()).Succeeded() {
			out = reflect.Append(out, elem.Elem())
		}
	}
	s.Set(out)
	return true
}

// archiveArray stores a fixed-size array as the series name. Every element
// must succeed.
func archiveArray(ar Archive, name string, a reflect.Value) bool {
	ar.HintValue(HintFixedSize, true)
	defer ar.UnHint(HintFixedSize)

	size := a.Len()
	if ar.IsInput() {
		stored := size
		if ar.SerializeSeriesSize(name, &stored) && stored < size {
			size = stored
		}
	} else {
		ar.SerializeSeriesSize(name, &size)
	}
	ok := true
	for i := 0; i < size; i++ {
		entry := ar.CreateSeriesEntry(name)
		if !entry.SerializeInline(a.Index(i).Addr().Interface()).Succeeded() {
			ok = false
		}
	}
	return ok && size == a.Len()
}

// archiveMap stores m as the group name keyed by its entries. Keys are written
// in sorted order. On input, backends that cannot enumerate names (editors)
// revisit the keys already present.
func archiveMap(ar Archive, name string, m reflect.Value) bool {
	group := ar.CreateGroup(name)
	if group.IsNoOp() {
		return false
	}
	keys := make([]string, 0, m.Len())
	for _, k := range m.MapKeys() {
		keys = append(keys, k.String())
	}
	slices.Sort(keys)

	if !ar.IsInput() {
		ok := group.SerializeEntryNames(&keys)
		for _, k := range keys {
			elem := reflect.New(m.Type().Elem())
			elem.Elem().Set(m.MapIndex(reflect.ValueOf(k).Convert(m.Type().Key())))
			if !group.Serialize(k, elem.Interface()).Succeeded() {
				ok = false
			}
		}
		return ok
	}

	var names []string
	if !group.SerializeEntryNames(&names) {
		names = keys
	}
	out := reflect.MakeMapWithSize(m.Type(), len(names))
	ok := true
	for _, k := range names {
		key := reflect.ValueOf(k).Convert(m.Type().Key())
		elem := reflect.New(m.Type().Elem())
		if !m.IsNil() {
			if cur := m.MapIndex(key); cur.IsValid() {
				elem.Elem().Set(cur)
			}
		}
		if !group.Serialize(k, elem.Interface()).Succeeded() {
			ok = false
			continue
		}
		out.SetMapIndex(key, elem.Elem())
	}
	m.Set(out)
	return ok
}
