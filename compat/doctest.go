package compat

import "strings"

// Literal markers recognized by FormatDoctestOut.
const (
	TextMarker  = "%(u)s"
	BytesMarker = "%(b)s"
	LongMarker  = "%(L)s"
)

// FormatDoctestOut replaces the text, byte and long-suffix markers in s with
// the literal syntax of the dialect:
//
//	"%(u)s'abc'" --> "'abc'"  (Modern)  "u'abc'" (Legacy)
//	"%(b)s'abc'" --> "b'abc'" (Modern)  "'abc'"  (Legacy)
//	"55%(L)s"    --> "55"     (Modern)  "55L"    (Legacy)
//
// Any other text, including lone '%' characters, is left as is. Substitution
// repeats until no marker remains, so a second pass over the result changes
// nothing even when a replacement joins the halves of a new marker.
func FormatDoctestOut(d Dialect, s string) string {
	if !strings.Contains(s, "%(") {
		return s
	}
	text, bytes, long := d.markers()
	r := strings.NewReplacer(
		TextMarker, text,
		BytesMarker, bytes,
		LongMarker, long,
	)
	for {
		next := r.Replace(s)
		if next == s {
			return s
		}
		s = next
	}
}

// WrapFunc returns a function whose output is fn's output passed through
// FormatDoctestOut.
func WrapFunc(d Dialect, fn func() string) func() string {
	return func() string {
		return FormatDoctestOut(d, fn())
	}
}

// Documented pairs a text-producing function with its documentation.
type Documented struct {
	Doc string
	Run func() string
}

// WrapDocumented rewrites f's documentation and wraps its function with the
// same marker substitution. A nil Run stays nil.
func WrapDocumented(d Dialect, f Documented) Documented {
	out := Documented{Doc: FormatDoctestOut(d, f.Doc)}
	if f.Run != nil {
		out.Run = WrapFunc(d, f.Run)
	}
	return out
}
