package archival_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/reoring/archival"
	"github.com/reoring/archival/backend/jsonbackend"
	"github.com/reoring/archival/document"
)

type pet uint8

const (
	petCat pet = iota
	petDog
	petBird
)

var petNames = []string{"Cat", "Dog", "Bird"}

func TestEnumNames_WritesName(t *testing.T) {
	p := petDog
	out := encode(t, func(ar archival.Archive) {
		require.True(t, ar.Serialize("pet", archival.EnumNames(&p, petNames)).Succeeded())
	})
	assert.Equal(t, `{"pet":"Dog"}`, out)
}

func TestEnumNames_ReadsName(t *testing.T) {
	p := petCat
	require.True(t, decoder(`{"pet":"Bird"}`).Serialize("pet", archival.EnumNames(&p, petNames)).Succeeded())
	assert.Equal(t, petBird, p)

	require.True(t, decoder(`{"pet":"dog"}`).Serialize("pet", archival.EnumNames(&p, petNames)).Succeeded())
	assert.Equal(t, petDog, p)
}

func TestEnumNames_UnknownNameFails(t *testing.T) {
	p := petDog
	assert.False(t, decoder(`{"pet":"Fish"}`).Serialize("pet", archival.EnumNames(&p, petNames)).Succeeded())
	assert.Equal(t, petDog, p)

	assert.False(t, decoder(`{"pet":"bird"}`).Serialize("pet", archival.EnumNamesCaseSensitive(&p, petNames)).Succeeded())
	assert.Equal(t, petDog, p)
}

func TestEnumNames_IntegerFallback(t *testing.T) {
	p := pet(7)
	out := encode(t, func(ar archival.Archive) {
		ar.Serialize("pet", archival.EnumNames(&p, petNames))
	})
	assert.Equal(t, `{"pet":7}`, out)

	require.True(t, decoder(`{"pet":2}`).Serialize("pet", archival.EnumNames(&p, petNames)).Succeeded())
	assert.Equal(t, petBird, p)
}

func TestEnumNames_IntegerFormIsNotNarrowed(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := jsonbackend.WithLogger(zap.New(core))

	p := pet(7)
	w := jsonbackend.New(false, nil, log)
	require.True(t, archival.NewOutput(w).Serialize("pet", archival.EnumNames(&p, petNames)).Succeeded())
	out, err := document.Marshal(w.Root())
	require.NoError(t, err)
	assert.Equal(t, `{"pet":7}`, string(out))

	p = petCat
	r := jsonbackend.New(true, document.MustParse(`{"pet":2}`), log)
	require.True(t, archival.NewInput(r).Serialize("pet", archival.EnumNames(&p, petNames)).Succeeded())
	assert.Equal(t, petBird, p)
	assert.Zero(t, logs.Len(), "unexpected warnings: %v", logs.All())
}

func TestEnumConversions(t *testing.T) {
	s, ok := archival.EnumToString(petNames, petBird)
	require.True(t, ok)
	assert.Equal(t, "Bird", s)
	_, ok = archival.EnumToString(petNames, pet(3))
	assert.False(t, ok)

	v, ok := archival.StringToEnum[pet](petNames, "CAT", false)
	require.True(t, ok)
	assert.Equal(t, petCat, v)
	_, ok = archival.StringToEnum[pet](petNames, "CAT", true)
	assert.False(t, ok)
	_, ok = archival.StringToEnum[pet](petNames, "Fish", false)
	assert.False(t, ok)
}

func TestWithDefault_OmitsDefault(t *testing.T) {
	a, r := int32(1), 1.5
	out := encode(t, func(ar archival.Archive) {
		ar.Serialize("a", &a)
		require.True(t, ar.Serialize("r", archival.WithDefault(&r, 1.5)).Succeeded())
	})
	assert.Equal(t, `{"a":1}`, out)

	r = 4
	out = encode(t, func(ar archival.Archive) {
		ar.Serialize("a", &a)
		ar.Serialize("r", archival.WithDefault(&r, 1.5))
	})
	assert.Equal(t, `{"a":1,"r":4}`, out)
}

func TestWithDefault_MissingAssignsDefault(t *testing.T) {
	r := 9.0
	require.True(t, decoder(`{"a":1}`).Serialize("r", archival.WithDefault(&r, 1.5)).Succeeded())
	assert.Equal(t, 1.5, r)

	require.True(t, decoder(`{"r":7}`).Serialize("r", archival.WithDefault(&r, 1.5)).Succeeded())
	assert.Equal(t, 7.0, r)

	n := int32(9)
	require.True(t, decoder(`{"n":null}`).Serialize("n", archival.WithDefault(&n, 3)).Succeeded())
	assert.Equal(t, int32(3), n)
}

func TestWithDefault_MismatchedTypeFails(t *testing.T) {
	r := 9.0
	assert.False(t, decoder(`{"r":"seven"}`).Serialize("r", archival.WithDefault(&r, 1.5)).Succeeded())
	assert.Equal(t, 9.0, r)

	b := true
	assert.False(t, decoder(`{"b":[1]}`).Serialize("b", archival.WithDefault(&b, false)).Succeeded())
	assert.True(t, b)
}

func TestWithDefault_UnreachableScopeKeepsValue(t *testing.T) {
	r := 9.0
	assert.False(t, archival.New(true, nil).Serialize("r", archival.WithDefault(&r, 1.5)).Succeeded())
	assert.Equal(t, 9.0, r)
}

type thermometer struct{ kelvin float64 }

func (th *thermometer) celsius() float64     { return th.kelvin - 273.15 }
func (th *thermometer) setCelsius(c float64) { th.kelvin = c + 273.15 }

func TestGetSet_ComputedProperty(t *testing.T) {
	th := &thermometer{kelvin: 273.15}
	out := encode(t, func(ar archival.Archive) {
		ar.Serialize("c", archival.GetSet(th.celsius, th.setCelsius))
	})
	assert.Equal(t, `{"c":0}`, out)

	require.True(t, decoder(`{"c":100}`).Serialize("c", archival.GetSet(th.celsius, th.setCelsius)).Succeeded())
	assert.InDelta(t, 373.15, th.kelvin, 1e-9)

	called := false
	set := func(float64) { called = true }
	assert.False(t, decoder(`{}`).Serialize("c", archival.GetSet(th.celsius, set)).Succeeded())
	assert.False(t, called, "setter runs only after a successful read")
}

func TestGetSetChecked_SetterRejects(t *testing.T) {
	level := 3
	get := func() int { return level }
	set := func(v int) bool {
		if v < 0 {
			return false
		}
		level = v
		return true
	}
	assert.False(t, decoder(`{"l":-1}`).Serialize("l", archival.GetSetChecked(get, set)).Succeeded())
	assert.Equal(t, 3, level)
	assert.True(t, decoder(`{"l":5}`).Serialize("l", archival.GetSetChecked(get, set)).Succeeded())
	assert.Equal(t, 5, level)
}
