package compat_test

import (
	"fmt"

	"github.com/geoknoesis/rdfalchemy-go/compat"
)

func ExampleCastBytes() {
	raw, err := compat.CastBytes("héllo", "utf-8")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("% x\n", raw)

	back, _ := compat.Decode(raw, "utf-8")
	fmt.Println(back)

	// Output:
	// 68 c3 a9 6c 6c 6f
	// héllo
}

func ExampleCastBytes_unencodable() {
	_, err := compat.CastBytes("héllo", "ascii")
	fmt.Println(err)

	// Output:
	// compat: ascii codec can't encode rune U+00E9 'é' at offset 1
}

func ExampleFormatDoctestOut() {
	for _, d := range []compat.Dialect{compat.Modern, compat.Legacy} {
		fmt.Println(d, compat.FormatDoctestOut(d, "[%(u)s'abc', %(b)s'abc', 55%(L)s]"))
	}

	// Output:
	// modern ['abc', b'abc', 55]
	// legacy [u'abc', 'abc', 55L]
}

func ExampleSortMixed() {
	values := []any{"b", 3, "a", 1.5}
	compat.SortMixed(compat.Legacy, values)
	fmt.Println(values)

	// Output:
	// [1.5 3 a b]
}
