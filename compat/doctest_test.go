package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDoctestOut(t *testing.T) {
	tests := []struct {
		in     string
		modern string
		legacy string
	}{
		{in: "%(u)s'abc'", modern: "'abc'", legacy: "u'abc'"},
		{in: "%(b)s'abc'", modern: "b'abc'", legacy: "'abc'"},
		{in: "55%(L)s", modern: "55", legacy: "55L"},
		{in: "[%(u)s'a', %(b)s'b', 3%(L)s]", modern: "['a', b'b', 3]", legacy: "[u'a', 'b', 3L]"},
		{in: "no markers", modern: "no markers", legacy: "no markers"},
		{in: "100% sure, 50%% off", modern: "100% sure, 50%% off", legacy: "100% sure, 50%% off"},
		{in: "%(x)s stays", modern: "%(x)s stays", legacy: "%(x)s stays"},
		{in: "", modern: "", legacy: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.modern, FormatDoctestOut(Modern, tt.in))
			assert.Equal(t, tt.legacy, FormatDoctestOut(Legacy, tt.in))
		})
	}
}

func TestFormatDoctestOutIdempotent(t *testing.T) {
	inputs := []string{
		"%(u)s'abc'",
		"%(b)s'x' %(L)s",
		"%(u%(u)s)s",
		"%(%(b)su)s'nested'",
		"plain",
	}
	for _, d := range []Dialect{Modern, Legacy} {
		for _, in := range inputs {
			once := FormatDoctestOut(d, in)
			assert.Equal(t, once, FormatDoctestOut(d, once), "%s: %q", d, in)
			assert.NotContains(t, once, TextMarker)
			assert.NotContains(t, once, BytesMarker)
			assert.NotContains(t, once, LongMarker)
		}
	}
}

func TestWrapFunc(t *testing.T) {
	calls := 0
	fn := func() string {
		calls++
		return "Literal(%(u)s'x')"
	}

	legacy := WrapFunc(Legacy, fn)
	modern := WrapFunc(Modern, fn)
	assert.Equal(t, "Literal(u'x')", legacy())
	assert.Equal(t, "Literal('x')", modern())
	assert.Equal(t, 2, calls)
}

func TestWrapDocumented(t *testing.T) {
	f := Documented{
		Doc: ">>> b('abc')\n%(b)s'abc'",
		Run: func() string { return "%(b)s'abc'" },
	}

	got := WrapDocumented(Modern, f)
	assert.Equal(t, ">>> b('abc')\nb'abc'", got.Doc)
	require.NotNil(t, got.Run)
	assert.Equal(t, "b'abc'", got.Run())

	// The input is not modified.
	assert.Equal(t, ">>> b('abc')\n%(b)s'abc'", f.Doc)

	docOnly := WrapDocumented(Legacy, Documented{Doc: "%(u)s'a'"})
	assert.Equal(t, "u'a'", docOnly.Doc)
	assert.Nil(t, docOnly.Run)
}

func TestParseDialect(t *testing.T) {
	tests := []struct {
		in      string
		want    Dialect
		wantErr bool
	}{
		{in: "", want: Modern},
		{in: "modern", want: Modern},
		{in: " PY3 ", want: Modern},
		{in: "legacy", want: Legacy},
		{in: "py2", want: Legacy},
		{in: "py4", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDialect(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "modern", Modern.String())
	assert.Equal(t, "legacy", Legacy.String())
	assert.Equal(t, "dialect(9)", Dialect(9).String())
}
