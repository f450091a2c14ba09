package interactive

// Toolkit is the immediate-mode widget API the backend draws with. Widgets
// report whether the user changed the value this frame; values are edited in
// place.
//
// Labels follow the "display###id" convention: text before "###" is shown,
// text after it identifies the widget within the current ID scope.
type Toolkit interface {
	Begin(window string) bool
	End()

	PushID(id string)
	PushIntID(id int)
	PopID()

	CollapsingHeader(label string, defaultOpen bool) bool

	Checkbox(label string, v *bool) bool
	DragInt(label string, v *int64, speed float64, min, max int64) bool
	DragUint(label string, v *uint64, speed float64, min, max uint64) bool
	DragFloat(label string, v *float64, speed float64, min, max float64) bool
	DragInts(label string, v []int32, speed float64) bool
	DragFloats(label string, v []float32, speed float64) bool
	ColorEdit(label string, rgba []float32) bool
	Gizmo(label string, wxyz []float32) bool
	InputText(label string, v *string) bool
	Combo(label string, current *string, options []string) bool
	Button(label string) bool

	Text(text string)
	TextDisabled(text string)
	TextColored(rgba [4]float32, text string)
	SameLine()
}
