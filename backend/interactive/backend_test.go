package interactive_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/archival"
	"github.com/reoring/archival/backend/interactive"
)

type lightMode int

const (
	lightPoint lightMode = iota
	lightSpot
	lightSun
)

var lightModeNames = []string{"Point", "Spot", "Sun"}

type light struct {
	Name      string
	Intensity float64
	Enabled   bool
	Mode      lightMode
	Radius    float64
	Tags      []string
	Position  archival.Vector3
	Rotation  archival.Quaternion
	Tint      archival.Color
	Weights   map[string]float64
}

func (l *light) ArchiveValue(ar archival.Archive, name string) bool {
	g := ar.CreateGroup(name)
	ok := archival.All(
		g.Serialize("name", &l.Name),
		g.Serialize("enabled", &l.Enabled),
	)

	g.HintValue(archival.HintBounds, 0.0, 10.0).HintValue(archival.HintResolutionScale, 10)
	if !g.Serialize("intensity", &l.Intensity).Succeeded() {
		ok = false
	}
	g.UnHint(archival.HintBounds).UnHint(archival.HintResolutionScale)

	return archival.All(
		g.Serialize("mode", archival.EnumNames(&l.Mode, lightModeNames)),
		g.Serialize("radius", archival.WithDefault(&l.Radius, 1)),
		g.Serialize("tags", &l.Tags),
		g.Serialize("position", &l.Position),
		g.Serialize("rotation", &l.Rotation),
		g.Serialize("tint", &l.Tint),
		g.Serialize("weights", &l.Weights),
	) && ok
}

func newLight() *light {
	return &light{
		Name:      "key",
		Intensity: 2,
		Enabled:   true,
		Mode:      lightSpot,
		Radius:    1,
		Tags:      []string{"a", "b"},
		Position:  archival.Vector3{X: 1, Y: 2, Z: 3},
		Rotation:  archival.IdentityQuaternion,
		Tint:      archival.Color{R: 1, G: 1, B: 1, A: 1},
		Weights:   map[string]float64{"b": 2, "a": 1},
	}
}

// frame draws l once and closes the window.
func frame(t *testing.T, rec *interactive.Recorder, l *light) bool {
	t.Helper()
	ar, root := interactive.NewArchive(rec, "Editor")
	ok := ar.Serialize("light", l).Succeeded()
	root.Close()
	require.Equal(t, 0, rec.Depth(), "ID stack must balance after Close")
	return ok
}

const lightID = "Editor/Editor/light"

func TestInteractive_DrawsEveryField(t *testing.T) {
	rec := interactive.NewRecorder()
	l := newLight()
	require.True(t, frame(t, rec, l))

	for _, id := range []string{
		lightID,
		lightID + "/name",
		lightID + "/enabled",
		lightID + "/intensity",
		lightID + "/mode",
		lightID + "/radius",
		lightID + "/tags",
		lightID + "/tags/+",
		lightID + "/tags/0/X",
		lightID + "/tags/0/value",
		lightID + "/tags/1/value",
		lightID + "/position",
		lightID + "/rotation",
		lightID + "/tint",
		lightID + "/weights",
		lightID + "/weights/a",
		lightID + "/weights/b",
	} {
		_, ok := rec.Find(id)
		assert.True(t, ok, "missing widget %s", id)
	}

	w, _ := rec.Find(lightID + "/enabled")
	assert.Equal(t, interactive.WidgetCheckbox, w.Kind)
	w, _ = rec.Find(lightID + "/position")
	assert.Equal(t, []float32{1, 2, 3}, w.Value)
	w, _ = rec.Find(lightID + "/rotation")
	assert.Equal(t, interactive.WidgetGizmo, w.Kind)
	w, _ = rec.Find(lightID + "/tint")
	assert.Equal(t, interactive.WidgetColor, w.Kind)
	w, _ = rec.Find(lightID + "/tags")
	assert.Equal(t, interactive.WidgetHeader, w.Kind)
	assert.Equal(t, "tags <2>###tags", w.Label)
}

func TestInteractive_CollapsedGroupDrawsNothingBeneath(t *testing.T) {
	rec := interactive.NewRecorder()
	rec.SetOpen(lightID, false)
	l := newLight()
	before := *l

	assert.False(t, frame(t, rec, l))
	ids := rec.IDs()
	assert.Equal(t, []string{"Editor", lightID}, ids)
	assert.Equal(t, before.Name, l.Name)
	assert.Equal(t, before.Tags, l.Tags)
	assert.Equal(t, before.Radius, l.Radius)
	assert.Equal(t, before.Weights, l.Weights)
}

func TestInteractive_IDPathsStableAcrossFrames(t *testing.T) {
	rec := interactive.NewRecorder()
	l := newLight()
	frame(t, rec, l)
	first := append([]string(nil), rec.IDs()...)

	rec.NextFrame()
	frame(t, rec, l)
	assert.Equal(t, first, rec.IDs())
	assert.Equal(t, 1, rec.Frame())
}

func TestInteractive_DeleteButtonDropsElement(t *testing.T) {
	rec := interactive.NewRecorder()
	l := newLight()
	l.Tags = []string{"a", "b", "c"}
	rec.Press(lightID + "/tags/1/X")

	frame(t, rec, l)
	assert.Equal(t, []string{"a", "c"}, l.Tags)
	_, drawn := rec.Find(lightID + "/tags/1/value")
	assert.False(t, drawn, "a removed element is not drawn")

	rec.NextFrame()
	frame(t, rec, l)
	assert.Equal(t, []string{"a", "c"}, l.Tags)
}

func TestInteractive_SeriesButtonsResize(t *testing.T) {
	rec := interactive.NewRecorder()
	l := newLight()

	rec.Press(lightID + "/tags/+")
	frame(t, rec, l)
	assert.Equal(t, []string{"a", "b", ""}, l.Tags)

	rec.NextFrame()
	rec.Press(lightID + "/tags/Delete Last")
	frame(t, rec, l)
	assert.Equal(t, []string{"a", "b"}, l.Tags)

	rec.NextFrame()
	rec.Press(lightID + "/tags/Clear All")
	frame(t, rec, l)
	assert.Empty(t, l.Tags)
	_, ok := rec.Find(lightID + "/tags/Clear All")
	assert.True(t, ok)
}

func TestInteractive_ClosedSeriesHeaderKeepsSlice(t *testing.T) {
	rec := interactive.NewRecorder()
	rec.SetOpen(lightID+"/tags", false)
	l := newLight()
	frame(t, rec, l)
	assert.Equal(t, []string{"a", "b"}, l.Tags)
	assert.Empty(t, rec.Match(interactive.WidgetInput, "/tags/0/value"))
}

func TestInteractive_EnumIsComboOfAllowedNames(t *testing.T) {
	rec := interactive.NewRecorder()
	l := newLight()
	rec.Edit(lightID+"/mode", "Sun")
	frame(t, rec, l)

	w, ok := rec.Find(lightID + "/mode")
	require.True(t, ok)
	assert.Equal(t, interactive.WidgetCombo, w.Kind)
	assert.Equal(t, lightModeNames, w.Options)
	assert.Equal(t, lightSun, l.Mode)

	// Unknown choices are rejected by the combo.
	rec.NextFrame()
	rec.Edit(lightID+"/mode", "Area")
	frame(t, rec, l)
	assert.Equal(t, lightSun, l.Mode)

	// The options hint does not leak to later fields.
	w, _ = rec.Find(lightID + "/tags/0/value")
	assert.Equal(t, interactive.WidgetInput, w.Kind)
}

func TestInteractive_BoundsAndResolutionHints(t *testing.T) {
	rec := interactive.NewRecorder()
	l := newLight()
	rec.Edit(lightID+"/intensity", 42)
	frame(t, rec, l)
	assert.Equal(t, 10.0, l.Intensity)

	w, _ := rec.Find(lightID + "/intensity")
	assert.InDelta(t, 1.0, w.Speed, 1e-9)
	w, _ = rec.Find(lightID + "/radius")
	assert.InDelta(t, 0.1, w.Speed, 1e-9)
}

func TestInteractive_EditsWriteBack(t *testing.T) {
	rec := interactive.NewRecorder()
	l := newLight()
	rec.Edit(lightID+"/name", "fill")
	rec.Edit(lightID+"/enabled", false)
	rec.Edit(lightID+"/position", []float32{4, 5, 6})
	rec.Edit(lightID+"/weights/a", 0.5)
	rec.Edit(lightID+"/tags/1/value", "z")
	frame(t, rec, l)

	assert.Equal(t, "fill", l.Name)
	assert.False(t, l.Enabled)
	assert.Equal(t, archival.Vector3{X: 4, Y: 5, Z: 6}, l.Position)
	assert.Equal(t, map[string]float64{"a": 0.5, "b": 2}, l.Weights)
	assert.Equal(t, []string{"a", "z"}, l.Tags)
	assert.Equal(t, archival.IdentityQuaternion, l.Rotation)
}

func TestInteractive_WithDefaultStaysVisible(t *testing.T) {
	rec := interactive.NewRecorder()
	l := newLight()
	rec.Edit(lightID+"/radius", 3)
	frame(t, rec, l)
	assert.Equal(t, 3.0, l.Radius)
}

func TestInteractive_DescriptionHint(t *testing.T) {
	rec := interactive.NewRecorder()
	ar, root := interactive.NewArchive(rec, "Editor")
	n := 3
	ar.HintValue(archival.HintDescription, "how many")
	ar.Serialize("count", &n)
	root.Close()

	texts := rec.Match(interactive.WidgetText, "##how many")
	require.Len(t, texts, 1)
	assert.Equal(t, "how many", texts[0].Value)
}

func TestInteractive_OutputIsRejected(t *testing.T) {
	rec := interactive.NewRecorder()
	b := interactive.New(rec, "Editor")
	defer b.Close()
	ar := archival.NewOutput(b)
	n := 1
	assert.False(t, ar.Serialize("n", &n).Succeeded())
	assert.True(t, ar.CreateGroup("g").IsNoOp())
}

func TestRecorder_Dump(t *testing.T) {
	rec := interactive.NewRecorder()
	l := newLight()
	frame(t, rec, l)
	var buf bytes.Buffer
	require.NoError(t, rec.Dump(&buf))
	out := buf.String()
	assert.Contains(t, out, "header light = true")
	assert.Contains(t, out, "input name = key")
	assert.Contains(t, out, "header tags <2> = true")
}

type pose struct{ X float64 }

func (p *pose) ArchiveValue(ar archival.Archive, name string) bool {
	return ar.CreateGroup(name).Serialize("x", &p.X).Succeeded()
}

type slot struct{ Pose pose }

func (s *slot) ArchiveValue(ar archival.Archive, name string) bool {
	return ar.CreateGroup(name).Serialize("pose", &s.Pose).Succeeded()
}

type rig struct {
	Offsets [2]float64
	Slots   []slot
}

func (r *rig) ArchiveValue(ar archival.Archive, name string) bool {
	g := ar.CreateGroup(name)
	return archival.All(
		g.Serialize("offsets", &r.Offsets),
		g.Serialize("slots", &r.Slots),
	)
}

const rigID = "Editor/Editor/rig"

func drawRig(t *testing.T, rec *interactive.Recorder, r *rig) {
	t.Helper()
	ar, root := interactive.NewArchive(rec, "Editor")
	ar.Serialize("rig", r)
	root.Close()
	require.Equal(t, 0, rec.Depth())
}

func TestInteractive_FixedArrayHasNoResizeControls(t *testing.T) {
	rec := interactive.NewRecorder()
	r := &rig{Offsets: [2]float64{1, 2}}
	rec.Edit(rigID+"/offsets/1/value", 2.5)
	drawRig(t, rec, r)

	assert.Equal(t, [2]float64{1, 2.5}, r.Offsets)
	for _, id := range []string{"/offsets/+", "/offsets/Delete Last", "/offsets/Clear All", "/offsets/0/X", "/offsets/1/X"} {
		_, ok := rec.Find(rigID + id)
		assert.False(t, ok, "unexpected widget %s", id)
	}
	_, ok := rec.Find(rigID + "/offsets")
	assert.True(t, ok)
}

func TestInteractive_GroupInSeriesElementHasOneIndex(t *testing.T) {
	rec := interactive.NewRecorder()
	r := &rig{Slots: []slot{{}, {Pose: pose{X: 4}}}}
	drawRig(t, rec, r)

	w, ok := rec.Find(rigID + "/slots/1/value/pose/x")
	require.True(t, ok, "ids: %v", rec.IDs())
	assert.Equal(t, 4.0, w.Value)
	_, stale := rec.Find(rigID + "/slots/1/value/1/pose/1/x")
	assert.False(t, stale)
}
