package compat

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// QuoteText renders s as a quoted text literal of the dialect. Legacy text
// literals escape every non-ASCII rune; Modern keeps printable runes as is.
func QuoteText(d Dialect, s string) string {
	q := pickQuote(s)
	var b strings.Builder
	b.WriteByte(q)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(&b, `\x%02x`, s[i])
			i++
			continue
		}
		i += size
		if writeCommonEscape(&b, r, q) {
			continue
		}
		switch {
		case r < utf8.RuneSelf && r >= 0x20 && r != 0x7f:
			b.WriteRune(r)
		case d == Modern && r >= utf8.RuneSelf && unicode.IsPrint(r):
			b.WriteRune(r)
		default:
			writeRuneEscape(&b, r)
		}
	}
	b.WriteByte(q)
	return FormatDoctestOut(d, TextMarker) + b.String()
}

// QuoteBytes renders raw bytes as a quoted byte literal of the dialect.
func QuoteBytes(d Dialect, raw []byte) string {
	q := pickQuote(string(raw))
	var b strings.Builder
	b.WriteByte(q)
	for _, ch := range raw {
		if ch < utf8.RuneSelf && writeCommonEscape(&b, rune(ch), q) {
			continue
		}
		if ch >= 0x20 && ch < 0x7f {
			b.WriteByte(ch)
			continue
		}
		fmt.Fprintf(&b, `\x%02x`, ch)
	}
	b.WriteByte(q)
	return FormatDoctestOut(d, BytesMarker) + b.String()
}

// FormatInt renders an integer literal, with the long suffix under Legacy.
func FormatInt(d Dialect, n int64) string {
	return FormatDoctestOut(d, strconv.FormatInt(n, 10)+LongMarker)
}

// pickQuote prefers single quotes unless s holds a single quote and no double quote.
func pickQuote(s string) byte {
	if strings.IndexByte(s, '\'') >= 0 && strings.IndexByte(s, '"') < 0 {
		return '"'
	}
	return '\''
}

func writeCommonEscape(b *strings.Builder, r rune, q byte) bool {
	switch r {
	case '\\':
		b.WriteString(`\\`)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	case rune(q):
		b.WriteByte('\\')
		b.WriteByte(q)
	default:
		return false
	}
	return true
}

func writeRuneEscape(b *strings.Builder, r rune) {
	switch {
	case r < 0x100:
		fmt.Fprintf(b, `\x%02x`, r)
	case r < 0x10000:
		fmt.Fprintf(b, `\u%04x`, r)
	default:
		fmt.Fprintf(b, `\U%08x`, r)
	}
}
