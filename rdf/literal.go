package rdf

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/geoknoesis/rdfalchemy-go/compat"
)

// XSD datatypes understood by NewLiteral and Literal.Native.
var (
	XSDString             = XSD.Term("string")
	XSDBoolean            = XSD.Term("boolean")
	XSDInteger            = XSD.Term("integer")
	XSDInt                = XSD.Term("int")
	XSDLong               = XSD.Term("long")
	XSDShort              = XSD.Term("short")
	XSDByte               = XSD.Term("byte")
	XSDNonNegativeInteger = XSD.Term("nonNegativeInteger")
	XSDPositiveInteger    = XSD.Term("positiveInteger")
	XSDNonPositiveInteger = XSD.Term("nonPositiveInteger")
	XSDNegativeInteger    = XSD.Term("negativeInteger")
	XSDUnsignedLong       = XSD.Term("unsignedLong")
	XSDUnsignedInt        = XSD.Term("unsignedInt")
	XSDDecimal            = XSD.Term("decimal")
	XSDDouble             = XSD.Term("double")
	XSDFloat              = XSD.Term("float")
	XSDDateTime           = XSD.Term("dateTime")
	XSDDate               = XSD.Term("date")
	XSDBase64Binary       = XSD.Term("base64Binary")
	XSDHexBinary          = XSD.Term("hexBinary")
)

// Literal represents an RDF literal.
type Literal struct {
	// Lexical is the lexical form of the literal.
	Lexical string
	// Datatype is the datatype IRI, if any.
	Datatype IRI
	// Lang is the language tag, if any.
	Lang string
}

// Kind returns TermLiteral.
func (l Literal) Kind() TermKind { return TermLiteral }

// String returns the literal in N-Triples syntax.
func (l Literal) String() string { return renderLiteral(l) }

// TypeName returns the name terms of this kind are ordered by.
func (l Literal) TypeName() string { return "Literal" }

// NewLangLiteral returns a language-tagged literal.
func NewLangLiteral(lexical, lang string) Literal {
	return Literal{Lexical: lexical, Lang: lang}
}

// NewTypedLiteral returns a literal with an explicit datatype.
func NewTypedLiteral(lexical string, datatype IRI) Literal {
	return Literal{Lexical: lexical, Datatype: datatype}
}

// NewLiteral converts a Go value into a typed literal. Strings become plain
// literals; bools, integers, floats, time.Time and []byte get their XSD
// datatype.
func NewLiteral(v any) (Literal, error) {
	switch value := v.(type) {
	case Literal:
		return value, nil
	case string:
		return Literal{Lexical: value}, nil
	case bool:
		return Literal{Lexical: strconv.FormatBool(value), Datatype: XSDBoolean}, nil
	case int:
		return integerLiteral(int64(value)), nil
	case int8:
		return integerLiteral(int64(value)), nil
	case int16:
		return integerLiteral(int64(value)), nil
	case int32:
		return integerLiteral(int64(value)), nil
	case int64:
		return integerLiteral(value), nil
	case uint:
		return unsignedLiteral(uint64(value)), nil
	case uint8:
		return unsignedLiteral(uint64(value)), nil
	case uint16:
		return unsignedLiteral(uint64(value)), nil
	case uint32:
		return unsignedLiteral(uint64(value)), nil
	case uint64:
		return unsignedLiteral(value), nil
	case float32:
		return Literal{Lexical: formatDouble(float64(value)), Datatype: XSDDouble}, nil
	case float64:
		return Literal{Lexical: formatDouble(value), Datatype: XSDDouble}, nil
	case time.Time:
		return Literal{Lexical: value.Format(time.RFC3339Nano), Datatype: XSDDateTime}, nil
	case []byte:
		return Literal{Lexical: base64.StdEncoding.EncodeToString(value), Datatype: XSDBase64Binary}, nil
	default:
		return Literal{}, fmt.Errorf("%w: unsupported Go type %T", ErrInvalidLiteral, v)
	}
}

func integerLiteral(n int64) Literal {
	return Literal{Lexical: strconv.FormatInt(n, 10), Datatype: XSDInteger}
}

func unsignedLiteral(n uint64) Literal {
	return Literal{Lexical: strconv.FormatUint(n, 10), Datatype: XSDInteger}
}

func formatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Native converts the literal to a Go value according to its datatype:
// string, bool, int64, uint64, float64, time.Time or []byte. Literals with an
// unknown datatype are returned unchanged.
func (l Literal) Native() (any, error) {
	if l.Lang != "" {
		return l.Lexical, nil
	}
	lex := strings.TrimSpace(l.Lexical)
	switch l.Datatype {
	case IRI{}, XSDString, RDFLangStr:
		return l.Lexical, nil
	case XSDBoolean:
		switch lex {
		case "true", "1":
			return true, nil
		case "false", "0":
			return false, nil
		}
		return nil, l.invalid()
	case XSDInteger, XSDInt, XSDLong, XSDShort, XSDByte,
		XSDNonNegativeInteger, XSDPositiveInteger, XSDNonPositiveInteger, XSDNegativeInteger:
		n, err := strconv.ParseInt(strings.TrimPrefix(lex, "+"), 10, 64)
		if err != nil {
			if u, uerr := strconv.ParseUint(strings.TrimPrefix(lex, "+"), 10, 64); uerr == nil {
				return u, nil
			}
			return nil, l.invalid()
		}
		return n, nil
	case XSDUnsignedLong, XSDUnsignedInt:
		u, err := strconv.ParseUint(strings.TrimPrefix(lex, "+"), 10, 64)
		if err != nil {
			return nil, l.invalid()
		}
		return u, nil
	case XSDDecimal, XSDDouble, XSDFloat:
		return l.parseFloat(lex)
	case XSDDateTime:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999"} {
			if t, err := time.Parse(layout, lex); err == nil {
				return t, nil
			}
		}
		return nil, l.invalid()
	case XSDDate:
		t, err := time.Parse("2006-01-02", lex)
		if err != nil {
			return nil, l.invalid()
		}
		return t, nil
	case XSDBase64Binary:
		b, err := base64.StdEncoding.DecodeString(lex)
		if err != nil {
			return nil, l.invalid()
		}
		return b, nil
	case XSDHexBinary:
		b, err := hex.DecodeString(lex)
		if err != nil {
			return nil, l.invalid()
		}
		return b, nil
	default:
		return l, nil
	}
}

func (l Literal) parseFloat(lex string) (any, error) {
	switch lex {
	case "INF", "+INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	f, err := strconv.ParseFloat(lex, 64)
	if err != nil || strings.ContainsAny(lex, "xXpP_") || strings.EqualFold(lex, "inf") || strings.EqualFold(lex, "infinity") || strings.EqualFold(lex, "nan") {
		return nil, l.invalid()
	}
	return f, nil
}

func (l Literal) invalid() error {
	return fmt.Errorf("%w: %q is not a valid <%s>", ErrInvalidLiteral, l.Lexical, l.Datatype.Value)
}

// Repr renders the literal the way graph-library doctests print it, using
// the text literal syntax of the dialect.
func (l Literal) Repr(d compat.Dialect) string {
	var b strings.Builder
	b.WriteString("Literal(")
	b.WriteString(compat.QuoteText(d, l.Lexical))
	if l.Lang != "" {
		fmt.Fprintf(&b, ", lang='%s'", l.Lang)
	}
	if l.Datatype.Value != "" {
		b.WriteString(", datatype=")
		b.WriteString(l.Datatype.Repr(d))
	}
	b.WriteString(")")
	return b.String()
}

// NativeRepr renders the native value of the literal in the dialect's
// literal syntax: text with the text prefix, integers with the long suffix,
// binary values with the byte prefix.
func (l Literal) NativeRepr(d compat.Dialect) (string, error) {
	v, err := l.Native()
	if err != nil {
		return "", err
	}
	switch value := v.(type) {
	case string:
		return compat.QuoteText(d, value), nil
	case bool:
		if value {
			return "True", nil
		}
		return "False", nil
	case int64:
		return compat.FormatInt(d, value), nil
	case uint64:
		return compat.FormatDoctestOut(d, strconv.FormatUint(value, 10)+compat.LongMarker), nil
	case float64:
		return pyFloat(value), nil
	case []byte:
		return compat.QuoteBytes(d, value), nil
	case time.Time:
		return compat.QuoteText(d, value.Format(time.RFC3339Nano)), nil
	case Literal:
		return value.Repr(d), nil
	default:
		return fmt.Sprint(value), nil
	}
}

func pyFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// Bytes encodes the lexical form with the named encoding.
func (l Literal) Bytes(enc string) ([]byte, error) {
	return compat.CastBytes(l.Lexical, enc)
}
