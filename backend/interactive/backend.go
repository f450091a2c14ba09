// Package interactive renders archives as editor widgets.
//
// The backend is input-only: every Serialize call draws one widget bound to
// the value and writes the user's edit straight back, so a single traversal
// per frame both displays and edits the data. Groups become collapsing
// headers; a closed header yields a no-op backend, so nothing beneath it is
// visited that frame.
package interactive

import (
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/reoring/archival"
)

// Name is reported by Backend.Name.
const Name = "Interactive"

const (
	noEntry      = -1
	defaultSpeed = 0.1
	epsilon      = 1e-6
)

var deleteColor = [4]float32{1, 0, 0, 1}

func itoa(i int) string { return strconv.Itoa(i) }

// Option configures the root Backend.
type Option func(*Backend)

// WithLogger sets the logger; the default is archival.Logger().
func WithLogger(l *zap.Logger) Option { return func(b *Backend) { b.logger = l } }

// Backend draws one scope of an archive. The root, created by New, owns the
// window and the shared IDStack; children come from CreateGroup and
// CreateSeriesEntry.
type Backend struct {
	archival.BaseBackend
	archival.HintStack

	tk     Toolkit
	ids    *IDStack
	logger *zap.Logger

	name        string
	depth       int
	seriesEntry int
	root        bool

	entries        map[string]int
	lastSeriesName string
	lastSeriesOpen bool
}

var _ archival.Backend = (*Backend)(nil)

// New opens window on tk and returns the root backend for it. The caller must
// call Close once the frame's traversal is done.
func New(tk Toolkit, window string, opts ...Option) *Backend {
	b := &Backend{tk: tk, ids: newIDStack(tk), name: window, seriesEntry: noEntry, root: true}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = archival.Logger()
	}
	tk.Begin(window)
	b.beginValue()
	return b
}

// NewArchive returns an input archive over New(tk, window, opts...) and the
// root backend to Close.
func NewArchive(tk Toolkit, window string, opts ...Option) (archival.Archive, *Backend) {
	b := New(tk, window, opts...)
	return archival.NewInput(b), b
}

// Close pops every ID the traversal pushed and ends the window. It is a no-op
// on children.
func (b *Backend) Close() {
	if !b.root {
		return
	}
	b.ids.clear()
	b.tk.End()
	b.root = false
}

// IDs returns the shared identifier stack.
func (b *Backend) IDs() *IDStack { return b.ids }

func (b *Backend) Name() string                 { return Name }
func (b *Backend) InlineSeriesVerbosity() uint8 { return 20 }

// WriteConditional returns condition unchanged in both directions.
func (b *Backend) WriteConditional(condition, _ bool) bool { return condition }

func (b *Backend) child(name string, seriesEntry int) *Backend {
	c := &Backend{
		tk:          b.tk,
		ids:         b.ids,
		logger:      b.logger,
		name:        name,
		depth:       b.depth + 1,
		seriesEntry: seriesEntry,
	}
	c.ResetInlineName(b.InlineName())
	c.beginValue()
	return c
}

// beginValue brings the shared ID stack to this backend's path. It runs
// before every widget since other backends may have drawn in between.
func (b *Backend) beginValue() { b.ids.enter(b.depth, b.name, b.seriesEntry) }

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

func (b *Backend) CreateGroup(name string, input bool) archival.Backend {
	if !input {
		return nil
	}
	if name == b.InlineName() {
		return b.child(name, noEntry)
	}
	b.beginValue()
	if !b.tk.CollapsingHeader(name, true) {
		return &archival.NoOpBackend{}
	}
	return b.child(name, noEntry)
}

func (b *Backend) CreateSeriesEntry(name string, input bool) archival.Backend {
	if !input {
		return nil
	}
	idx := b.next(name)
	if b.lastSeriesName != name {
		b.lastSeriesName = name
		b.beginValue()
		b.lastSeriesOpen = b.tk.CollapsingHeader(name, true)
	}
	if !b.lastSeriesOpen {
		return nil
	}

	b.beginValue()
	if b.HasHint(archival.HintFixedSize) {
		return b.child(name, idx)
	}
	b.tk.TextColored(deleteColor, fmt.Sprintf("%s[%d]", name, idx))
	b.tk.SameLine()
	b.tk.PushID(name)
	b.tk.PushIntID(idx)
	shouldClose := b.tk.Button("X")
	b.tk.PopID()
	b.tk.PopID()
	if shouldClose {
		b.AddHint(archival.Hint{Kind: archival.HintShouldClose, Value: true})
		return nil
	}
	b.RemoveHint(archival.HintShouldClose)
	return b.child(name, idx)
}

// GetSeriesSize draws the series header with buttons to append, drop the last
// and clear elements, editing size accordingly. Fixed size series get the
// header alone. A closed header fails so the container is left alone.
func (b *Backend) GetSeriesSize(name string, size *int) bool {
	if b.lastSeriesName == name {
		return b.lastSeriesOpen
	}
	b.lastSeriesName = name
	b.beginValue()
	b.lastSeriesOpen = b.tk.CollapsingHeader(fmt.Sprintf("%s <%d>###%s", name, *size, name), true)
	if !b.lastSeriesOpen {
		return false
	}
	if b.HasHint(archival.HintFixedSize) {
		return true
	}
	b.tk.PushID(name)
	if b.tk.Button("+") {
		*size++
	}
	if *size > 0 {
		b.tk.SameLine()
		if b.tk.Button("Delete Last") && *size > 0 {
			*size--
		}
		b.tk.SameLine()
		if b.tk.Button("Clear All") {
			*size = 0
		}
	}
	b.tk.PopID()
	return true
}

func (b *Backend) SetSeriesSize(string, int) bool { return false }

// GetEntryNames fails: the editor has no key set of its own, so containers
// revisit the keys they hold.
func (b *Backend) GetEntryNames(*[]string) bool { return false }
func (b *Backend) SetEntryNames([]string) bool  { return false }

func (b *Backend) Set(string, any) bool { return false }

func (b *Backend) speed() float64 {
	h := b.GetHint(archival.HintResolutionScale)
	if !h.Present() {
		return defaultSpeed
	}
	scale, ok := h.Float64()
	if !ok || scale*defaultSpeed <= epsilon {
		return defaultSpeed
	}
	return scale * defaultSpeed
}

// bounds narrows [lo, hi] by the HintBounds hint.
func (b *Backend) bounds(lo, hi float64) (float64, float64) {
	h := b.GetHint(archival.HintBounds)
	if !h.Present() {
		return lo, hi
	}
	if v, ok := h.Float64(); ok && v > lo {
		lo = v
	}
	if v, ok := h.SecondaryFloat64(); ok && v < hi {
		hi = v
	}
	return lo, hi
}

func (b *Backend) dragInt(label string, v int64, lo, hi int64) int64 {
	flo, fhi := b.bounds(float64(lo), float64(hi))
	if flo > float64(lo) {
		lo = int64(flo)
	}
	if fhi < float64(hi) {
		hi = int64(fhi)
	}
	b.tk.DragInt(label, &v, b.speed(), lo, hi)
	return v
}

func (b *Backend) dragUint(label string, v uint64, hi uint64) uint64 {
	lo := uint64(0)
	flo, fhi := b.bounds(0, float64(hi))
	if flo > 0 {
		lo = uint64(flo)
	}
	if fhi < float64(hi) {
		hi = uint64(fhi)
	}
	b.tk.DragUint(label, &v, b.speed(), lo, hi)
	return v
}

func (b *Backend) dragFloat(label string, v float64) float64 {
	lo, hi := b.bounds(math.Inf(-1), math.Inf(1))
	b.tk.DragFloat(label, &v, b.speed(), lo, hi)
	return v
}

// Get draws one widget for dst and always succeeds; unknown kinds are shown
// as disabled text.
func (b *Backend) Get(name string, dst any) bool {
	b.beginValue()
	if h := b.GetHint(archival.HintDescription); h.Present() {
		if s, ok := h.Value.(string); ok {
			b.tk.TextDisabled(s)
		}
	}

	switch d := dst.(type) {
	case *archival.Null:
		b.tk.TextDisabled(name + " (null)")
	case *bool:
		b.tk.Checkbox(name, d)
	case *int8:
		*d = int8(b.dragInt(name, int64(*d), math.MinInt8, math.MaxInt8))
	case *int16:
		*d = int16(b.dragInt(name, int64(*d), math.MinInt16, math.MaxInt16))
	case *int32:
		*d = int32(b.dragInt(name, int64(*d), math.MinInt32, math.MaxInt32))
	case *int64:
		*d = b.dragInt(name, *d, math.MinInt64, math.MaxInt64)
	case *int:
		*d = int(b.dragInt(name, int64(*d), math.MinInt, math.MaxInt))
	case *uint8:
		*d = uint8(b.dragUint(name, uint64(*d), math.MaxUint8))
	case *uint16:
		*d = uint16(b.dragUint(name, uint64(*d), math.MaxUint16))
	case *uint32:
		*d = uint32(b.dragUint(name, uint64(*d), math.MaxUint32))
	case *uint64:
		*d = b.dragUint(name, *d, math.MaxUint64)
	case *uint:
		*d = uint(b.dragUint(name, uint64(*d), math.MaxUint))
	case *float32:
		*d = float32(b.dragFloat(name, float64(*d)))
	case *float64:
		*d = b.dragFloat(name, *d)
	case *string:
		b.getString(name, d)
	case *archival.IntVector2:
		v := []int32{d.X, d.Y}
		b.tk.DragInts(name, v, b.speed())
		d.X, d.Y = v[0], v[1]
	case *archival.IntVector3:
		v := []int32{d.X, d.Y, d.Z}
		b.tk.DragInts(name, v, b.speed())
		d.X, d.Y, d.Z = v[0], v[1], v[2]
	case *archival.Vector2:
		v := []float32{d.X, d.Y}
		b.tk.DragFloats(name, v, b.speed())
		d.X, d.Y = v[0], v[1]
	case *archival.Vector3:
		v := []float32{d.X, d.Y, d.Z}
		b.tk.DragFloats(name, v, b.speed())
		d.X, d.Y, d.Z = v[0], v[1], v[2]
	case *archival.Vector4:
		v := []float32{d.X, d.Y, d.Z, d.W}
		b.tk.DragFloats(name, v, b.speed())
		d.X, d.Y, d.Z, d.W = v[0], v[1], v[2], v[3]
	case *archival.Quaternion:
		v := []float32{d.W, d.X, d.Y, d.Z}
		if b.tk.Gizmo(name, v) {
			d.W, d.X, d.Y, d.Z = v[0], v[1], v[2], v[3]
		}
	case *archival.Color:
		v := []float32{d.R, d.G, d.B, d.A}
		b.tk.ColorEdit(name, v)
		d.R, d.G, d.B, d.A = v[0], v[1], v[2], v[3]
	case *archival.Matrix3:
		b.dragRows(name, d[:], 3)
	case *archival.Matrix3x4:
		b.dragRows(name, d[:], 4)
	case *archival.Matrix4:
		b.dragRows(name, d[:], 4)
	default:
		b.tk.TextDisabled(fmt.Sprintf("%s (%T)", name, dst))
	}
	return true
}

func (b *Backend) dragRows(name string, cells []float32, cols int) {
	for r := 0; r*cols < len(cells); r++ {
		b.tk.DragFloats(fmt.Sprintf("%s:R%d", name, r), cells[r*cols:(r+1)*cols], b.speed())
	}
}

func (b *Backend) getString(name string, d *string) {
	for _, kind := range []archival.HintKind{archival.HintAllowedOptions, archival.HintSuggestedOptions} {
		h := b.GetHint(kind)
		if !h.Present() {
			continue
		}
		opts, ok := h.Strings()
		if !ok {
			b.logger.Debug("ignoring options hint without strings", zap.String("name", name), zap.Stringer("kind", kind))
			continue
		}
		b.tk.Combo(name, d, opts)
		return
	}
	b.tk.InputText(name, d)
}
