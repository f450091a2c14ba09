package document_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/archival/document"
)

func TestValue_ZeroIsNull(t *testing.T) {
	var v document.Value
	assert.True(t, v.IsNull())
	var nilv *document.Value
	assert.Equal(t, document.KindNull, nilv.Kind())
}

func TestValue_ObjectKeepsInsertionOrder(t *testing.T) {
	v := document.NewObject()
	v.Set("b", document.NewInt(1))
	v.Set("a", document.NewInt(2))
	v.Set("c", document.NewInt(3))
	v.Set("b", document.NewInt(4))
	assert.Equal(t, []string{"b", "a", "c"}, v.Keys())
	n, ok := v.Member("b").Int64()
	require.True(t, ok)
	assert.Equal(t, int64(4), n)

	v.Delete("a")
	assert.Equal(t, []string{"b", "c"}, v.Keys())
}

func TestValue_InPlaceMutationVisibleToHolders(t *testing.T) {
	root := document.NewObject()
	child := document.New()
	root.Set("x", child)
	child.SetArray()
	child.Append(document.NewString("s"))
	assert.True(t, root.Member("x").IsArray())
	assert.Equal(t, 1, root.Member("x").Len())
}

func TestValue_Resize(t *testing.T) {
	v := document.NewArray()
	v.Resize(3)
	require.Equal(t, 3, v.Len())
	assert.True(t, v.Index(2).IsNull())
	v.Resize(1)
	assert.Equal(t, 1, v.Len())
	assert.Nil(t, v.Index(5))
}

func TestValue_FloatFormatting(t *testing.T) {
	v := document.New()
	v.SetFloat32(0.1)
	lit, _ := v.Number()
	assert.Equal(t, "0.1", lit)

	v.SetFloat(math.NaN())
	assert.True(t, v.IsNull())
	v.SetFloat(math.Inf(-1))
	assert.True(t, v.IsNull())
}

func TestValue_IntegerAccessors(t *testing.T) {
	u, ok := document.NewNumber("18446744073709551615").Uint64()
	require.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), u)

	i, ok := document.NewNumber("3.0").Int64()
	require.True(t, ok)
	assert.Equal(t, int64(3), i)

	_, ok = document.NewNumber("3.5").Int64()
	assert.False(t, ok)
	_, ok = document.NewNumber("-1").Uint64()
	assert.False(t, ok)
	_, ok = document.NewString("1").Int64()
	assert.False(t, ok)
}

func TestValue_TakeAndClone(t *testing.T) {
	v := document.MustParse(`{"a":[1,2]}`)
	c := v.Clone()
	c.Member("a").Append(document.NewInt(3))
	assert.Equal(t, 2, v.Member("a").Len())

	taken := v.Take()
	assert.True(t, v.IsNull())
	assert.True(t, taken.IsObject())
}

func TestEqual_IgnoresMemberOrderAndNumberSpelling(t *testing.T) {
	a := document.MustParse(`{"x":1,"y":[true,null,"s"]}`)
	b := document.MustParse(`{"y":[true,null,"s"],"x":1.0}`)
	assert.True(t, document.Equal(a, b))
	assert.False(t, document.Equal(a, document.MustParse(`{"x":1}`)))
}
