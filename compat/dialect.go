// Package compat provides dialect-stable helpers for text/byte conversion,
// literal marker rewriting in example text, and legacy type-name ordering.
//
// Every function is pure. The target dialect is passed explicitly so both
// dialects can be exercised side by side:
//
//	out := compat.FormatDoctestOut(compat.Legacy, "%(u)s'abc'") // u'abc'
//	raw, err := compat.CastBytes("héllo", "utf-8")             // 68 c3 a9 6c 6c 6f
//	n := compat.TypeCmp(a, b)                                   // -1, 0 or +1
package compat

import (
	"fmt"
	"strings"
)

// Dialect selects the literal-syntax conventions of the target runtime.
type Dialect uint8

const (
	// Modern renders text literals bare, byte literals with a b prefix and
	// integers without a long suffix.
	Modern Dialect = iota
	// Legacy renders text literals with a u prefix, byte literals bare and
	// long integers with an L suffix.
	Legacy
)

// String returns the canonical dialect name.
func (d Dialect) String() string {
	switch d {
	case Modern:
		return "modern"
	case Legacy:
		return "legacy"
	default:
		return fmt.Sprintf("dialect(%d)", uint8(d))
	}
}

// ParseDialect normalizes a dialect name.
func ParseDialect(value string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "modern", "py3", "3":
		return Modern, nil
	case "legacy", "py2", "2":
		return Legacy, nil
	default:
		return Modern, fmt.Errorf("compat: unknown dialect %q", value)
	}
}

// markers returns the replacements for the text, byte and long-suffix markers.
func (d Dialect) markers() (text, bytes, long string) {
	if d == Legacy {
		return "u", "", "L"
	}
	return "", "b", ""
}
