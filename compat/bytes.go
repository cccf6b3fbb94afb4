package compat

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultEncoding is used when an empty encoding name is given.
const DefaultEncoding = "utf-8"

// ErrUnknownEncoding indicates an encoding name that cannot be resolved.
var ErrUnknownEncoding = errors.New("compat: unknown encoding")

// EncodingError reports text that cannot be represented in an encoding, or
// bytes that are not valid in it.
type EncodingError struct {
	Encoding string // Normalized encoding name
	Op       string // "encode" or "decode"
	Offset   int    // Byte offset of the offending input
	Rune     rune   // Offending rune when encoding
	Byte     byte   // Offending byte when decoding
	Err      error  // Underlying codec error, if any
}

func (e *EncodingError) Error() string {
	if e.Op == "decode" {
		return fmt.Sprintf("compat: %s codec can't decode byte 0x%02x at offset %d", e.Encoding, e.Byte, e.Offset)
	}
	return fmt.Sprintf("compat: %s codec can't encode rune %U %q at offset %d", e.Encoding, e.Rune, e.Rune, e.Offset)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// CastBytes converts text to bytes in the named encoding. Byte input is
// returned unchanged.
func CastBytes[T ~string | ~[]byte](s T, enc string) ([]byte, error) {
	if reflect.TypeOf(s).Kind() == reflect.Slice {
		return []byte(s), nil
	}
	return Encode(string(s), enc)
}

// Encode encodes text with the named encoding.
func Encode(s string, enc string) ([]byte, error) {
	c, err := lookupCodec(enc)
	if err != nil {
		return nil, err
	}
	return c.encode(s)
}

// Decode decodes bytes with the named encoding.
func Decode(b []byte, enc string) (string, error) {
	c, err := lookupCodec(enc)
	if err != nil {
		return "", err
	}
	return c.decode(b)
}

// B returns the byte form of an ASCII literal. Modern requires ASCII input,
// Legacy passes the raw bytes through.
func B(d Dialect, s string) ([]byte, error) {
	if d == Legacy {
		return []byte(s), nil
	}
	return Encode(s, "ascii")
}

type codecKind uint8

const (
	codecUTF8 codecKind = iota
	codecASCII
	codecText
)

type codec struct {
	name string
	kind codecKind
	enc  encoding.Encoding
}

// NormalizeEncoding canonicalizes an encoding label: lower case, "_" and
// spaces folded to "-".
func NormalizeEncoding(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "-", " ", "-").Replace(name)
}

func lookupCodec(name string) (codec, error) {
	norm := NormalizeEncoding(name)
	switch norm {
	case "", "utf-8", "utf8", "u8":
		return codec{name: DefaultEncoding, kind: codecUTF8}, nil
	case "ascii", "us-ascii", "646":
		return codec{name: "ascii", kind: codecASCII}, nil
	case "latin-1", "latin1", "iso-8859-1", "iso8859-1", "l1":
		return codec{name: "latin-1", kind: codecText, enc: charmap.ISO8859_1}, nil
	case "cp1252", "windows-1252":
		return codec{name: "cp1252", kind: codecText, enc: charmap.Windows1252}, nil
	case "utf-16", "utf16":
		return codec{name: "utf-16", kind: codecText, enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)}, nil
	case "utf-16-le", "utf-16le":
		return codec{name: "utf-16-le", kind: codecText, enc: unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)}, nil
	case "utf-16-be", "utf-16be":
		return codec{name: "utf-16-be", kind: codecText, enc: unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)}, nil
	}
	e, err := ianaindex.IANA.Encoding(norm)
	if err != nil || e == nil {
		return codec{}, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
	return codec{name: norm, kind: codecText, enc: e}, nil
}

func (c codec) encode(s string) ([]byte, error) {
	switch c.kind {
	case codecUTF8:
		if !utf8.ValidString(s) {
			return nil, c.invalidText(s)
		}
		return []byte(s), nil
	case codecASCII:
		for i, r := range s {
			if r >= utf8.RuneSelf {
				return nil, &EncodingError{Encoding: c.name, Op: "encode", Offset: i, Rune: r}
			}
		}
		return []byte(s), nil
	}
	if !utf8.ValidString(s) {
		return nil, c.invalidText(s)
	}
	out, n, err := transform.String(c.enc.NewEncoder(), s)
	if err != nil {
		r, _ := utf8.DecodeRuneInString(s[n:])
		return nil, &EncodingError{Encoding: c.name, Op: "encode", Offset: n, Rune: r, Err: err}
	}
	return []byte(out), nil
}

func (c codec) decode(b []byte) (string, error) {
	switch c.kind {
	case codecUTF8:
		for i := 0; i < len(b); {
			r, size := utf8.DecodeRune(b[i:])
			if r == utf8.RuneError && size <= 1 {
				return "", &EncodingError{Encoding: c.name, Op: "decode", Offset: i, Byte: b[i]}
			}
			i += size
		}
		return string(b), nil
	case codecASCII:
		for i, ch := range b {
			if ch >= utf8.RuneSelf {
				return "", &EncodingError{Encoding: c.name, Op: "decode", Offset: i, Byte: ch}
			}
		}
		return string(b), nil
	}
	out, n, err := transform.Bytes(c.enc.NewDecoder(), b)
	if err != nil {
		var bad byte
		if n < len(b) {
			bad = b[n]
		}
		return "", &EncodingError{Encoding: c.name, Op: "decode", Offset: n, Byte: bad, Err: err}
	}
	return string(out), nil
}

// invalidText reports the first byte of s that is not valid UTF-8.
func (c codec) invalidText(s string) error {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return &EncodingError{Encoding: c.name, Op: "encode", Offset: i, Rune: utf8.RuneError}
		}
		i += size
	}
	return nil
}
