package interactive

import (
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"

	"github.com/samber/lo"
)

// WidgetKind names the widgets a Recorder records.
type WidgetKind string

const (
	WidgetWindow   WidgetKind = "window"
	WidgetHeader   WidgetKind = "header"
	WidgetCheckbox WidgetKind = "checkbox"
	WidgetDrag     WidgetKind = "drag"
	WidgetColor    WidgetKind = "color"
	WidgetGizmo    WidgetKind = "gizmo"
	WidgetInput    WidgetKind = "input"
	WidgetCombo    WidgetKind = "combo"
	WidgetButton   WidgetKind = "button"
	WidgetText     WidgetKind = "text"
)

// Widget is one recorded widget. ID is the full ID path joined by "/".
type Widget struct {
	Kind    WidgetKind
	ID      string
	Label   string
	Value   any
	Options []string
	Speed   float64
}

// Recorder is a headless Toolkit. It records the widgets drawn in the current
// frame and plays back scripted header states, button presses and edits, so
// traversals can be tested and inspected without a GUI.
type Recorder struct {
	stack   []string
	widgets []Widget
	frame   int

	closed  map[string]bool
	presses map[string]bool
	edits   map[string]any
}

var _ Toolkit = (*Recorder)(nil)

// NewRecorder returns a Recorder on frame 0 where every header is open.
func NewRecorder() *Recorder {
	return &Recorder{closed: map[string]bool{}, presses: map[string]bool{}, edits: map[string]any{}}
}

// NextFrame starts a new frame, discarding the recorded widgets.
func (r *Recorder) NextFrame() {
	r.frame++
	r.widgets = r.widgets[:0]
}

// Frame returns the current frame number.
func (r *Recorder) Frame() int { return r.frame }

// Depth returns the number of IDs currently pushed. It is zero between
// balanced frames.
func (r *Recorder) Depth() int { return len(r.stack) }

// Widgets returns the widgets recorded this frame, in draw order.
func (r *Recorder) Widgets() []Widget { return r.widgets }

// IDs returns the IDs of the widgets recorded this frame.
func (r *Recorder) IDs() []string {
	return lo.Map(r.widgets, func(w Widget, _ int) string { return w.ID })
}

// Find returns the widget with the given ID.
func (r *Recorder) Find(id string) (Widget, bool) {
	return lo.Find(r.widgets, func(w Widget) bool { return w.ID == id })
}

// Match returns the widgets of kind whose ID ends with suffix.
func (r *Recorder) Match(kind WidgetKind, suffix string) []Widget {
	return lo.Filter(r.widgets, func(w Widget, _ int) bool {
		return w.Kind == kind && strings.HasSuffix(w.ID, suffix)
	})
}

// Count returns the number of widgets of kind recorded this frame.
func (r *Recorder) Count(kind WidgetKind) int {
	return lo.CountBy(r.widgets, func(w Widget) bool { return w.Kind == kind })
}

// SetOpen scripts the state of the header with the given ID.
func (r *Recorder) SetOpen(id string, open bool) {
	if open {
		delete(r.closed, id)
		return
	}
	r.closed[id] = true
}

// Press makes the button with the given ID report a click the next time it
// is drawn.
func (r *Recorder) Press(id string) { r.presses[id] = true }

// Edit makes the widget with the given ID take v the next time it is drawn.
func (r *Recorder) Edit(id string, v any) { r.edits[id] = v }

// Dump writes the recorded frame as an indented outline.
func (r *Recorder) Dump(w io.Writer) error {
	for _, wd := range r.widgets {
		depth := strings.Count(wd.ID, "/")
		line := fmt.Sprintf("%s%s %s", strings.Repeat("  ", depth), wd.Kind, displayText(wd.Label))
		if wd.Value != nil {
			line += fmt.Sprintf(" = %v", wd.Value)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func labelID(label string) string {
	if i := strings.Index(label, "###"); i >= 0 {
		return label[i+3:]
	}
	return label
}

func displayText(label string) string {
	if i := strings.Index(label, "##"); i >= 0 {
		return label[:i]
	}
	return label
}

func (r *Recorder) id(label string) string {
	return strings.Join(append(append([]string{}, r.stack...), labelID(label)), "/")
}

func (r *Recorder) record(kind WidgetKind, label string, value any) string {
	id := r.id(label)
	r.widgets = append(r.widgets, Widget{Kind: kind, ID: id, Label: label, Value: value})
	return id
}

func (r *Recorder) drag(kind WidgetKind, label string, value any, speed float64) string {
	id := r.record(kind, label, value)
	r.widgets[len(r.widgets)-1].Speed = speed
	return id
}

func (r *Recorder) takeEdit(id string) (any, bool) {
	v, ok := r.edits[id]
	if ok {
		delete(r.edits, id)
	}
	return v, ok
}

func (r *Recorder) Begin(window string) bool {
	r.record(WidgetWindow, window, nil)
	r.stack = append(r.stack, window)
	return true
}

func (r *Recorder) End() {
	if n := len(r.stack); n > 0 {
		r.stack = r.stack[:n-1]
	}
}

func (r *Recorder) PushID(id string) { r.stack = append(r.stack, id) }
func (r *Recorder) PushIntID(id int) { r.stack = append(r.stack, itoa(id)) }

func (r *Recorder) PopID() {
	if n := len(r.stack); n > 0 {
		r.stack = r.stack[:n-1]
	}
}

func (r *Recorder) CollapsingHeader(label string, defaultOpen bool) bool {
	id := r.id(label)
	open := defaultOpen
	if r.closed[id] {
		open = false
	}
	r.widgets = append(r.widgets, Widget{Kind: WidgetHeader, ID: id, Label: label, Value: open})
	return open
}

func (r *Recorder) Checkbox(label string, v *bool) bool {
	id := r.record(WidgetCheckbox, label, *v)
	e, ok := r.takeEdit(id)
	if b, isBool := e.(bool); ok && isBool {
		*v = b
		r.widgets[len(r.widgets)-1].Value = b
		return true
	}
	return false
}

func (r *Recorder) DragInt(label string, v *int64, speed float64, min, max int64) bool {
	id := r.drag(WidgetDrag, label, *v, speed)
	e, ok := r.takeEdit(id)
	if !ok {
		return false
	}
	n, ok := toInt64(e)
	if !ok {
		return false
	}
	*v = lo.Clamp(n, min, max)
	r.widgets[len(r.widgets)-1].Value = *v
	return true
}

func (r *Recorder) DragUint(label string, v *uint64, speed float64, min, max uint64) bool {
	id := r.drag(WidgetDrag, label, *v, speed)
	e, ok := r.takeEdit(id)
	if !ok {
		return false
	}
	n, ok := toUint64(e)
	if !ok {
		return false
	}
	*v = lo.Clamp(n, min, max)
	r.widgets[len(r.widgets)-1].Value = *v
	return true
}

func (r *Recorder) DragFloat(label string, v *float64, speed float64, min, max float64) bool {
	id := r.drag(WidgetDrag, label, *v, speed)
	e, ok := r.takeEdit(id)
	if !ok {
		return false
	}
	f, ok := toFloat64(e)
	if !ok {
		return false
	}
	*v = math.Max(min, math.Min(max, f))
	r.widgets[len(r.widgets)-1].Value = *v
	return true
}

func (r *Recorder) DragInts(label string, v []int32, speed float64) bool {
	id := r.drag(WidgetDrag, label, append([]int32(nil), v...), speed)
	e, ok := r.takeEdit(id)
	if src, isSlice := e.([]int32); ok && isSlice {
		copy(v, src)
		return true
	}
	return false
}

func (r *Recorder) DragFloats(label string, v []float32, speed float64) bool {
	id := r.drag(WidgetDrag, label, append([]float32(nil), v...), speed)
	return r.applyFloats(id, v)
}

func (r *Recorder) ColorEdit(label string, rgba []float32) bool {
	return r.floats(WidgetColor, label, rgba)
}

func (r *Recorder) Gizmo(label string, wxyz []float32) bool {
	return r.floats(WidgetGizmo, label, wxyz)
}

func (r *Recorder) floats(kind WidgetKind, label string, v []float32) bool {
	return r.applyFloats(r.record(kind, label, append([]float32(nil), v...)), v)
}

func (r *Recorder) applyFloats(id string, v []float32) bool {
	e, ok := r.takeEdit(id)
	if src, isSlice := e.([]float32); ok && isSlice {
		copy(v, src)
		return true
	}
	return false
}

func (r *Recorder) InputText(label string, v *string) bool {
	id := r.record(WidgetInput, label, *v)
	e, ok := r.takeEdit(id)
	if s, isString := e.(string); ok && isString {
		*v = s
		r.widgets[len(r.widgets)-1].Value = s
		return true
	}
	return false
}

func (r *Recorder) Combo(label string, current *string, options []string) bool {
	id := r.id(label)
	r.widgets = append(r.widgets, Widget{Kind: WidgetCombo, ID: id, Label: label, Value: *current, Options: options})
	e, ok := r.takeEdit(id)
	s, isString := e.(string)
	if !ok || !isString || !lo.Contains(options, s) {
		return false
	}
	*current = s
	r.widgets[len(r.widgets)-1].Value = s
	return true
}

func (r *Recorder) Button(label string) bool {
	id := r.record(WidgetButton, label, nil)
	if r.presses[id] {
		delete(r.presses, id)
		return true
	}
	return false
}

func (r *Recorder) Text(text string)         { r.record(WidgetText, "##"+text, text) }
func (r *Recorder) TextDisabled(text string) { r.record(WidgetText, "##"+text, text) }
func (r *Recorder) TextColored(_ [4]float32, text string) {
	r.record(WidgetText, "##"+text, text)
}

func (r *Recorder) SameLine() {}

var (
	int64Type   = reflect.TypeOf(int64(0))
	float64Type = reflect.TypeOf(float64(0))
)

func toInt64(v any) (int64, bool) {
	rv := reflect.ValueOf(v)
	switch {
	case !rv.IsValid():
		return 0, false
	case rv.CanInt():
		return rv.Int(), true
	case rv.CanUint():
		return int64(rv.Uint()), true
	case rv.CanFloat():
		return int64(rv.Float()), true
	case rv.CanConvert(int64Type) && rv.Kind() != reflect.String:
		return rv.Convert(int64Type).Int(), true
	}
	return 0, false
}

func toUint64(v any) (uint64, bool) {
	n, ok := toInt64(v)
	if rv := reflect.ValueOf(v); rv.IsValid() && rv.CanUint() {
		return rv.Uint(), true
	}
	if !ok || n < 0 {
		return 0, false
	}
	return uint64(n), true
}

func toFloat64(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() == reflect.String || rv.Kind() == reflect.Bool {
		return 0, false
	}
	if rv.CanConvert(float64Type) {
		return rv.Convert(float64Type).Float(), true
	}
	return 0, false
}
