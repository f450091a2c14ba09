package document_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/archival/document"
	"github.com/reoring/archival/document/jsoniter"
	"github.com/reoring/archival/document/sonic"
)

const sample = `{"name":"scene","big":9007199254740993,"f":1.5e3,"nested":{"z":null,"a":[1,{"k":"v"},[]]},"ok":false,"esc":"a\"b\n"}`

func drivers() []document.Driver {
	return []document.Driver{document.DefaultDriver(), jsoniter.Driver(), sonic.Driver()}
}

func TestDrivers_ParseSameTree(t *testing.T) {
	for _, d := range drivers() {
		t.Run(d.Name(), func(t *testing.T) {
			v, err := d.Parse([]byte(sample))
			require.NoError(t, err)
			assert.Equal(t, []string{"name", "big", "f", "nested", "ok", "esc"}, v.Keys())
			lit, ok := v.Member("big").Number()
			require.True(t, ok)
			assert.Equal(t, "9007199254740993", lit)
			s, _ := v.Member("esc").Str()
			assert.Equal(t, "a\"b\n", s)
			assert.Equal(t, []string{"z", "a"}, v.Member("nested").Keys())
			assert.Equal(t, 3, v.Member("nested").Member("a").Len())
		})
	}
}

func TestDrivers_RejectInvalid(t *testing.T) {
	for _, d := range drivers() {
		t.Run(d.Name(), func(t *testing.T) {
			_, err := d.Parse([]byte(`{"a":[1,`))
			require.Error(t, err)
			_, err = d.Parse([]byte(`{"a":1} {"b":2}`))
			require.Error(t, err)
		})
	}
}

func TestDefaultDriver_ErrSyntax(t *testing.T) {
	_, err := document.Parse([]byte(`[1,2`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrSyntax))
}

func TestSetDriver_SwapsAndRestores(t *testing.T) {
	t.Cleanup(document.UseDefaultDriver)
	document.SetDriver(jsoniter.Driver())
	assert.Equal(t, "json-iterator", document.CurrentDriver().Name())
	document.SetDriver(nil)
	assert.Equal(t, "json-iterator", document.CurrentDriver().Name())
	document.UseDefaultDriver()
	assert.Equal(t, "go-json", document.CurrentDriver().Name())
}

func TestParse_Scalars(t *testing.T) {
	for _, in := range []string{`42`, `"s"`, `true`, `null`, `-0.5`} {
		v, err := document.Parse([]byte(in))
		require.NoError(t, err, in)
		out, err := document.Marshal(v)
		require.NoError(t, err)
		assert.Equal(t, in, string(out))
	}
}
