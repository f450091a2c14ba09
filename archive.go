package archival

// Archive bundles a Backend with an input/output direction. It is a cheap
// value: structural calls return new Archives scoped to the child location,
// and a child must not be used after the scope that created it has finished.
type Archive struct {
	backend Backend
	input   bool
}

// New returns an Archive over b. A nil b yields an Archive over NoOpBackend.
func New(input bool, b Backend) Archive {
	if b == nil {
		b = &NoOpBackend{}
	}
	return Archive{backend: b, input: input}
}

// NewInput is shorthand for New(true, b).
func NewInput(b Backend) Archive { return New(true, b) }

// NewOutput is shorthand for New(false, b).
func NewOutput(b Backend) Archive { return New(false, b) }

// IsInput reports whether the archive reads from its backend into user values.
func (a Archive) IsInput() bool { return a.input }

// Backend returns the attached backend, never nil.
func (a Archive) Backend() Backend {
	if a.backend == nil {
		return &NoOpBackend{}
	}
	return a.backend
}

// InlineName returns the backend's inline sentinel.
func (a Archive) InlineName() string { return a.Backend().InlineName() }

// IsNoOp reports whether the archive is backed by NoOpBackend, which is the
// case for groups and entries that could not be addressed.
func (a Archive) IsNoOp() bool {
	_, ok := a.Backend().(*NoOpBackend)
	return ok
}

// CreateGroup returns an Archive scoped to the named group. Passing the inline
// name asks the backend to reuse the current scope ({"old":1, **ENTRY} rather
// than {"old":1, "value":{ENTRY}}).
func (a Archive) CreateGroup(name string) Archive {
	return New(a.input, a.Backend().CreateGroup(name, a.input))
}

// CreateSeriesEntry returns an Archive scoped to the next entry of the named
// series. Passing the inline name addresses the current scope as the series
// ("x":[ENTRY] rather than "x":{"value":[ENTRY]}).
func (a Archive) CreateSeriesEntry(name string) Archive {
	return New(a.input, a.Backend().CreateSeriesEntry(name, a.input))
}

// CreateSeriesEntryInline is CreateSeriesEntry with the inline name.
func (a Archive) CreateSeriesEntryInline() Archive {
	return a.CreateSeriesEntry(a.InlineName())
}

// SerializeSeriesSize reads the named series length into size on input and
// declares *size on output. Callers resize their container from it before
// iterating entries; some backends (binary) require it.
func (a Archive) SerializeSeriesSize(name string, size *int) bool {
	if a.input {
		return a.Backend().GetSeriesSize(name, size)
	}
	return a.Backend().SetSeriesSize(name, *size)
}

// SerializeEntryNames appends the scope's dynamic key set to names on input
// and declares them on output. Not every backend persists names.
func (a Archive) SerializeEntryNames(names *[]string) bool {
	if a.input {
		return a.Backend().GetEntryNames(names)
	}
	return a.Backend().SetEntryNames(*names)
}

// WriteConditional gates an optional write; follow it with Then. Binary
// backends may record the condition so the read side takes the same branch.
func (a Archive) WriteConditional(condition bool) Result {
	return Result{archive: a, ok: a.Backend().WriteConditional(condition, a.input)}
}

// Serialize reads or writes v under name. See Resolve for how v's type picks a
// strategy.
func (a Archive) Serialize(name string, v any) Result {
	return Result{archive: a, ok: dispatch(a, name, v), values: []any{v}}
}

// SerializeInline is Serialize under the inline name.
func (a Archive) SerializeInline(v any) Result {
	return a.Serialize(a.InlineName(), v)
}

// Hint adds a hint to the backend and returns a so calls can be chained.
func (a Archive) Hint(h Hint) Archive {
	a.Backend().AddHint(h)
	return a
}

// HintValue is Hint{Kind: kind, Value: primary, Secondary: secondary}.
func (a Archive) HintValue(kind HintKind, primary any, secondary ...any) Archive {
	h := Hint{Kind: kind, Value: primary}
	if len(secondary) > 0 {
		h.Secondary = secondary[0]
	}
	return a.Hint(h)
}

// UnHint removes hints of kind.
func (a Archive) UnHint(kind HintKind) Archive {
	a.Backend().RemoveHint(kind)
	return a
}

// ClearHints removes every hint.
func (a Archive) ClearHints() Archive {
	a.Backend().ClearHints()
	return a
}

// GetHint returns the backend's hint of kind, or EmptyHint.
func (a Archive) GetHint(kind HintKind) Hint { return a.Backend().GetHint(kind) }

// All reports whether every result succeeded. Arguments are evaluated before
// the call, so every field is serialized even after a failure.
func All(results ...Result) bool {
	ok := true
	for _, r := range results {
		if !r.Succeeded() {
			ok = false
		}
	}
	return ok
}
