package msgpackbackend_test

import (
	"bytes"
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/archival"
	"github.com/reoring/archival/backend/msgpackbackend"
)

type level uint8

var levelNames = []string{"Low", "Mid", "High"}

type sample struct {
	Name    string
	Count   int64
	Ratio   float64
	Small   int8
	Flags   []bool
	Level   level
	Opt     int32
	Offset  archival.Vector3
	Turn    archival.Quaternion
	Cell    archival.IntVector2
	Basis   archival.Matrix3x4
	Weights map[string]float32
	Nested  []sample
}

func (s *sample) ArchiveValue(ar archival.Archive, name string) bool {
	g := ar.CreateGroup(name)
	return archival.All(
		g.Serialize("name", &s.Name),
		g.Serialize("count", &s.Count),
		g.Serialize("ratio", &s.Ratio),
		g.Serialize("small", &s.Small),
		g.Serialize("flags", &s.Flags),
		g.Serialize("level", archival.EnumNames(&s.Level, levelNames)),
		g.Serialize("opt", archival.WithDefault(&s.Opt, 10)),
		g.Serialize("offset", &s.Offset),
		g.Serialize("turn", &s.Turn),
		g.Serialize("cell", &s.Cell),
		g.Serialize("basis", &s.Basis),
		g.Serialize("weights", &s.Weights),
		g.Serialize("nested", &s.Nested),
	)
}

func TestMsgpack_RoundTrip(t *testing.T) {
	in := sample{
		Name:    "root",
		Count:   math.MaxInt64,
		Ratio:   0.125,
		Small:   -3,
		Flags:   []bool{true, false},
		Level:   2,
		Opt:     10,
		Offset:  archival.Vector3{X: 1, Y: 2, Z: 3},
		Turn:    archival.IdentityQuaternion,
		Cell:    archival.IntVector2{X: -7, Y: 9},
		Basis:   archival.Matrix3x4{1, 0, 0, 5, 0, 1, 0, 6, 0, 0, 1, 7},
		Weights: map[string]float32{"b": 2, "a": 1},
		Nested:  []sample{{Name: "child", Opt: 4, Flags: []bool{}, Weights: map[string]float32{}, Nested: []sample{}}},
	}
	data, err := msgpackbackend.Marshal(&in)
	require.NoError(t, err)

	var out sample
	require.NoError(t, msgpackbackend.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestMsgpack_DefaultWritesOnlyCondition(t *testing.T) {
	v := int32(5)
	data, err := msgpackbackend.Marshal(archival.WithDefault(&v, 5))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xc2}, data)

	got := int32(9)
	require.NoError(t, msgpackbackend.Unmarshal(data, archival.WithDefault(&got, 5)))
	assert.Equal(t, int32(5), got)

	v = 6
	data, err = msgpackbackend.Marshal(archival.WithDefault(&v, 5))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xc3, 0x06}, data)
	require.NoError(t, msgpackbackend.Unmarshal(data, archival.WithDefault(&got, 5)))
	assert.Equal(t, int32(6), got)
}

func TestMsgpack_EnumUsesInteger(t *testing.T) {
	l := level(1)
	data, err := msgpackbackend.Marshal(archival.EnumNames(&l, levelNames))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01}, data)
}

func TestMsgpack_ErrorIsLatched(t *testing.T) {
	var out sample
	err := msgpackbackend.Unmarshal([]byte{0x93, 0xa1}, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, msgpackbackend.ErrStream))

	b := msgpackbackend.NewReader(bytes.NewReader(nil))
	ar := archival.NewInput(b)
	var n int32
	assert.False(t, ar.Serialize("n", &n).Succeeded())
	first := b.Err()
	require.Error(t, first)
	assert.False(t, ar.Serialize("n", &n).Succeeded())
	assert.True(t, ar.CreateGroup("g").IsNoOp())
	assert.Equal(t, first, b.Err())
}

func TestMsgpack_NullPeekLeavesStream(t *testing.T) {
	var buf bytes.Buffer
	w := archival.NewOutput(msgpackbackend.NewWriter(&buf))
	n := int32(3)
	var null archival.Null
	require.True(t, archival.All(w.Serialize("n", &n), w.Serialize("z", &null)))

	r := archival.NewInput(msgpackbackend.NewReader(&buf))
	assert.False(t, r.Serialize("n", &null).Succeeded())
	var got int32
	require.True(t, r.Serialize("n", &got).Succeeded())
	assert.Equal(t, n, got)
	assert.True(t, r.Serialize("z", &null).Succeeded())
}

func TestMsgpack_DirectionMismatchFails(t *testing.T) {
	var buf bytes.Buffer
	b := msgpackbackend.NewWriter(&buf)
	n := int32(1)
	assert.False(t, archival.NewInput(b).Serialize("n", &n).Succeeded())
	assert.NoError(t, b.Err())
	assert.Zero(t, buf.Len())
	assert.Equal(t, "MessagePack", b.Name())
	assert.True(t, b.PrefersBinaryData())
}

func TestCodec(t *testing.T) {
	c := msgpackbackend.Codec{}
	assert.Equal(t, "msgpack", c.Name())
	in := []string{"a", "b"}
	data, err := c.Marshal(&in)
	require.NoError(t, err)
	var out []string
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestMsgpack_DefaultedMismatchFails(t *testing.T) {
	var buf bytes.Buffer
	s := "seven"
	require.True(t, archival.NewOutput(msgpackbackend.NewWriter(&buf)).Serialize("n", archival.WithDefault(&s, "")).Succeeded())

	b := msgpackbackend.NewReader(&buf)
	assert.True(t, b.HasEntry("n"))
	n := int32(9)
	assert.False(t, archival.NewInput(b).Serialize("n", archival.WithDefault(&n, 3)).Succeeded())
	assert.Equal(t, int32(9), n)
}
