package compat

import (
	"cmp"
	"reflect"
	"slices"
)

// TypeNamer lets a value report the type name used for ordering.
type TypeNamer interface {
	TypeName() string
}

// TypeName returns the name TypeCmp orders v by. Values implementing
// TypeNamer report their own name; otherwise the reflected type name is used,
// with pointers dereferenced and unnamed types reduced to their kind.
// A nil value is named "NoneType".
func TypeName(v any) string {
	if v == nil {
		return "NoneType"
	}
	if n, ok := v.(TypeNamer); ok {
		return n.TypeName()
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return name
	}
	return t.Kind().String()
}

func normalizeTypeName(name string) string {
	// "str" sorts with the text type of the earlier runtime generation.
	if name == "str" {
		return "unicode"
	}
	return name
}

// TypeCmp orders a and b by their type names, treating "str" as "unicode".
// It returns -1, 0 or +1.
func TypeCmp(a, b any) int {
	return cmp.Compare(normalizeTypeName(TypeName(a)), normalizeTypeName(TypeName(b)))
}

// Compare orders a and b for the dialect. Modern orders by type name only.
// Legacy puts nil first and numbers (bools included) next, comparing numbers
// by value; every other value follows, ordered by type name, with strings of
// any string type compared by value under the shared name "unicode".
func Compare(d Dialect, a, b any) int {
	if d != Legacy {
		return TypeCmp(a, b)
	}
	va, vb := scalarOf(a), scalarOf(b)
	ra, rb := legacyRank(a, va), legacyRank(b, vb)
	if c := cmp.Compare(ra, rb); c != 0 {
		return c
	}
	switch {
	case a == nil:
		return 0
	case va.kind == scalarNumber:
		return compareNumbers(va, vb)
	}
	if c := cmp.Compare(legacyName(a, va), legacyName(b, vb)); c != 0 {
		return c
	}
	if va.kind == scalarString && vb.kind == scalarString {
		return cmp.Compare(va.s, vb.s)
	}
	return 0
}

// legacyRank groups values: nil, then numbers, then everything else.
func legacyRank(v any, s scalar) int {
	switch {
	case v == nil:
		return 0
	case s.kind == scalarNumber:
		return 1
	default:
		return 2
	}
}

func legacyName(v any, s scalar) string {
	if s.kind == scalarString {
		return "unicode"
	}
	return normalizeTypeName(TypeName(v))
}

// SortMixed sorts values in place with Compare. Equal elements keep their order.
func SortMixed(d Dialect, values []any) {
	slices.SortStableFunc(values, func(a, b any) int {
		return Compare(d, a, b)
	})
}

type scalarKind uint8

const (
	scalarOther scalarKind = iota
	scalarNumber
	scalarString
)

type scalar struct {
	kind    scalarKind
	isFloat bool
	isUint  bool
	i       int64
	u       uint64
	f       float64
	s       string
}

func scalarOf(v any) scalar {
	if v == nil {
		return scalar{}
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return scalar{kind: scalarNumber, i: 1}
		}
		return scalar{kind: scalarNumber}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scalar{kind: scalarNumber, i: rv.Int()}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return scalar{kind: scalarNumber, isUint: true, u: rv.Uint()}
	case reflect.Float32, reflect.Float64:
		return scalar{kind: scalarNumber, isFloat: true, f: rv.Float()}
	case reflect.String:
		return scalar{kind: scalarString, s: rv.String()}
	default:
		return scalar{}
	}
}

func compareNumbers(a, b scalar) int {
	if a.isFloat || b.isFloat {
		return cmp.Compare(a.float(), b.float())
	}
	switch {
	case a.isUint && b.isUint:
		return cmp.Compare(a.u, b.u)
	case a.isUint:
		if b.i < 0 {
			return 1
		}
		return cmp.Compare(a.u, uint64(b.i))
	case b.isUint:
		if a.i < 0 {
			return -1
		}
		return cmp.Compare(uint64(a.i), b.u)
	default:
		return cmp.Compare(a.i, b.i)
	}
}

func (s scalar) float() float64 {
	switch {
	case s.isFloat:
		return s.f
	case s.isUint:
		return float64(s.u)
	default:
		return float64(s.i)
	}
}
