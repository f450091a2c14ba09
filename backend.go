package archival

// DefaultInlineName is the sentinel name that asks a backend to store a value
// without a wrapping named field (JSON [1,2,3] instead of [{"value":1},...]).
const DefaultInlineName = "value"

// Backend is the storage or presentation medium behind an Archive.
//
// Every operation reports success as a bool. On input, false means the named
// value, group or entry does not exist (or has an incompatible type); on
// output it means the backend refused the write. Backends never turn absence
// into a zero value.
type Backend interface {
	// Name identifies the backend for diagnostics.
	Name() string
	// InlineName returns the current inline sentinel.
	InlineName() string
	// ResetInlineName replaces the inline sentinel; "" restores DefaultInlineName.
	ResetInlineName(name string)

	// ---- Group/Series ----

	// CreateGroup addresses (input) or creates (output) the named group and
	// returns a backend scoped to it, or nil. The inline name reuses the
	// current scope.
	CreateGroup(name string, input bool) Backend
	// CreateSeriesEntry addresses the next element of the named series. Each
	// call advances a per-name cursor. Nil on input signals the end of the
	// series or its absence.
	CreateSeriesEntry(name string, input bool) Backend
	// GetSeriesSize reads the length of the named series into size.
	GetSeriesSize(name string, size *int) bool
	// SetSeriesSize declares the length of the named series.
	SetSeriesSize(name string, size int) bool
	// GetEntryNames appends the dynamic key set of the current scope to names.
	GetEntryNames(names *[]string) bool
	// SetEntryNames declares the dynamic key set of the current scope.
	SetEntryNames(names []string) bool
	// InlineSeriesVerbosity estimates the cost of inline series: 0 binary,
	// about 10 for JSON-like text, 100 for attribute based formats.
	InlineSeriesVerbosity() uint8
	// PrefersBinaryData reports whether compact (for example integer enum)
	// encodings are preferred over human readable ones.
	PrefersBinaryData() bool

	// ---- Control ----

	// WriteConditional gates an optional write. See BaseBackend.WriteConditional.
	WriteConditional(condition, input bool) bool

	// ---- Values ----

	// Get reads the named value into dst, a pointer to a primitive kind
	// (see KindOf). Unsupported kinds return false.
	Get(name string, dst any) bool
	// Set writes the named value from src, a pointer to a primitive kind.
	Set(name string, src any) bool

	// ---- Hints ----

	AddHint(h Hint) bool
	HasHint(kind HintKind) bool
	GetHint(kind HintKind) Hint
	RemoveHint(kind HintKind) bool
	ClearHints() bool
}

// EntryReporter is implemented by input backends that can tell an absent
// entry from one that is present but failed to read.
type EntryReporter interface {
	// HasEntry reports whether a value is stored under name in the current scope.
	HasEntry(name string) bool
}

// BaseBackend carries the inline name and the default control behaviour.
// Embed it in concrete backends.
type BaseBackend struct {
	inlineName string
}

// InlineName returns the current inline sentinel.
func (b *BaseBackend) InlineName() string {
	if b.inlineName == "" {
		return DefaultInlineName
	}
	return b.inlineName
}

// ResetInlineName replaces the inline sentinel; "" restores DefaultInlineName.
func (b *BaseBackend) ResetInlineName(name string) { b.inlineName = name }

// PrefersBinaryData defaults to false; text is more readable.
func (b *BaseBackend) PrefersBinaryData() bool { return false }

// WriteConditional returns true on input, since reading lets the data decide
// presence, and the condition verbatim on output. Backends whose structure
// cannot be re-derived on read override it to persist the condition.
func (b *BaseBackend) WriteConditional(condition, input bool) bool {
	if input {
		return true
	}
	return condition
}

// NoHints implements the hint operations as "unsupported".
type NoHints struct{}

func (NoHints) AddHint(Hint) bool        { return false }
func (NoHints) HasHint(HintKind) bool    { return false }
func (NoHints) GetHint(HintKind) Hint    { return EmptyHint }
func (NoHints) RemoveHint(HintKind) bool { return false }
func (NoHints) ClearHints() bool         { return false }
