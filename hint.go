package archival

// HintKind enumerates the out-of-band hints a backend may honor.
type HintKind int

const (
	// HintDescription documents the value. Value: string.
	HintDescription HintKind = iota
	// HintBounds limits the value. Value/Secondary: min/max of the value's type, nil for unbounded.
	HintBounds
	// HintResolutionScale scales drag inputs. Value: a number.
	HintResolutionScale
	// HintAllowedOptions strictly limits the value to a set. Value: []string.
	HintAllowedOptions
	// HintSuggestedOptions proposes values without enforcing them. Value: []string.
	HintSuggestedOptions
	// HintShouldClose is set by a backend to ask the caller to drop the current element. Value: bool.
	HintShouldClose
	// HintFixedSize marks the series being archived as fixed length, so editors
	// offer no resize or delete controls. Value: bool.
	HintFixedSize
	// HintNone marks the absence of a hint.
	HintNone
)

var hintKindNames = map[HintKind]string{
	HintDescription:      "description",
	HintBounds:           "bounds",
	HintResolutionScale:  "resolution_scale",
	HintAllowedOptions:   "allowed_options",
	HintSuggestedOptions: "suggested_options",
	HintShouldClose:      "should_close",
	HintFixedSize:        "fixed_size",
	HintNone:             "none",
}

func (k HintKind) String() string {
	if s, ok := hintKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Hint tells a backend how to present or constrain the next values. Hints are
// never enforced by the framework itself.
type Hint struct {
	Kind      HintKind
	Value     any
	Secondary any
}

// EmptyHint is returned by lookups that found nothing.
var EmptyHint = Hint{Kind: HintNone}

// Present reports whether h carries a hint.
func (h Hint) Present() bool { return h.Kind != HintNone }

// Float64 returns Value as a float64 when it holds any Go number.
func (h Hint) Float64() (float64, bool) { return toFloat64(h.Value) }

// SecondaryFloat64 returns Secondary as a float64 when it holds any Go number.
func (h Hint) SecondaryFloat64() (float64, bool) { return toFloat64(h.Secondary) }

// Strings returns Value as a string slice when it holds one.
func (h Hint) Strings() ([]string, bool) {
	switch t := h.Value.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, v := range t {
			s, ok := v.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// HintStack is an embeddable hint store. The zero value is ready to use.
type HintStack struct {
	hints []Hint
}

// AddHint pushes h. Later hints of the same kind shadow earlier ones.
func (s *HintStack) AddHint(h Hint) bool {
	if h.Kind == HintNone {
		return false
	}
	s.hints = append(s.hints, h)
	return true
}

// HasHint reports whether a hint of kind is present.
func (s *HintStack) HasHint(kind HintKind) bool { return s.GetHint(kind).Present() }

// GetHint returns the most recently added hint of kind, or EmptyHint.
func (s *HintStack) GetHint(kind HintKind) Hint {
	for i := len(s.hints) - 1; i >= 0; i-- {
		if s.hints[i].Kind == kind {
			return s.hints[i]
		}
	}
	return EmptyHint
}

// RemoveHint drops every hint of kind and reports whether any was found.
func (s *HintStack) RemoveHint(kind HintKind) bool {
	found := false
	kept := s.hints[:0]
	for _, h := range s.hints {
		if h.Kind == kind {
			found = true
			continue
		}
		kept = append(kept, h)
	}
	s.hints = kept
	return found
}

// ClearHints drops every hint.
func (s *HintStack) ClearHints() bool {
	s.hints = s.hints[:0]
	return true
}
