package compat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuoteText(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		modern string
		legacy string
	}{
		{name: "plain", in: "abc", modern: `'abc'`, legacy: `u'abc'`},
		{name: "latin", in: "héllo", modern: `'héllo'`, legacy: `u'h\xe9llo'`},
		{name: "bmp", in: "€", modern: `'€'`, legacy: `u'\u20ac'`},
		{name: "astral", in: "\U0001F600", modern: "'\U0001F600'", legacy: `u'\U0001f600'`},
		{name: "single quote", in: "it's", modern: `"it's"`, legacy: `u"it's"`},
		{name: "both quotes", in: `a'b"c`, modern: `'a\'b"c'`, legacy: `u'a\'b"c'`},
		{name: "control", in: "a\nb\t\x01", modern: `'a\nb\t\x01'`, legacy: `u'a\nb\t\x01'`},
		{name: "backslash", in: `a\b`, modern: `'a\\b'`, legacy: `u'a\\b'`},
		{name: "marker text", in: "%(b)s", modern: `'%(b)s'`, legacy: `u'%(b)s'`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.modern, QuoteText(Modern, tt.in))
			assert.Equal(t, tt.legacy, QuoteText(Legacy, tt.in))
		})
	}
}

func TestQuoteBytes(t *testing.T) {
	assert.Equal(t, `b'abc'`, QuoteBytes(Modern, []byte("abc")))
	assert.Equal(t, `'abc'`, QuoteBytes(Legacy, []byte("abc")))
	assert.Equal(t, `b'h\xc3\xa9'`, QuoteBytes(Modern, []byte("hé")))
	assert.Equal(t, `b"it's"`, QuoteBytes(Modern, []byte("it's")))
	assert.Equal(t, `b''`, QuoteBytes(Modern, nil))
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "55", FormatInt(Modern, 55))
	assert.Equal(t, "55L", FormatInt(Legacy, 55))
	assert.Equal(t, "-3L", FormatInt(Legacy, -3))
}
