package rdf

import (
	"testing"

	"github.com/geoknoesis/rdfalchemy-go/compat"
)

func TestTermKindsAndStrings(t *testing.T) {
	iri := NewIRI("http://example.org/s")
	if iri.Kind() != TermIRI || iri.String() != "http://example.org/s" {
		t.Fatalf("unexpected IRI: %v %q", iri.Kind(), iri.String())
	}
	bnode := NewBlankNode("b1")
	if bnode.Kind() != TermBlankNode || bnode.String() != "_:b1" {
		t.Fatalf("unexpected blank node: %v %q", bnode.Kind(), bnode.String())
	}
	lit := NewLangLiteral("chat", "fr")
	if lit.Kind() != TermLiteral || lit.String() != `"chat"@fr` {
		t.Fatalf("unexpected literal: %v %q", lit.Kind(), lit.String())
	}
}

func TestTermTypeNames(t *testing.T) {
	cases := []struct {
		term Term
		want string
	}{
		{NewIRI("http://example.org/s"), "URIRef"},
		{NewBlankNode("b"), "BNode"},
		{Literal{Lexical: "x"}, "Literal"},
	}
	for _, tc := range cases {
		if got := compat.TypeName(tc.term); got != tc.want {
			t.Fatalf("TypeName(%v) = %q, want %q", tc.term, got, tc.want)
		}
	}
}

func TestTermRepr(t *testing.T) {
	iri := NewIRI("http://example.org/s")
	if got := iri.Repr(compat.Modern); got != "URIRef('http://example.org/s')" {
		t.Fatalf("modern repr: %q", got)
	}
	if got := iri.Repr(compat.Legacy); got != "URIRef(u'http://example.org/s')" {
		t.Fatalf("legacy repr: %q", got)
	}
	if got := NewBlankNode("n1").Repr(compat.Legacy); got != "BNode(u'n1')" {
		t.Fatalf("blank node repr: %q", got)
	}
}

func TestQuadConversions(t *testing.T) {
	triple := Triple{S: NewIRI("http://example.org/s"), P: NewIRI("http://example.org/p"), O: Literal{Lexical: "o"}}
	quad := triple.ToQuad()
	if !quad.InDefaultGraph() {
		t.Fatal("expected default graph")
	}
	if quad.ToTriple() != triple {
		t.Fatal("expected triple round trip")
	}
	named := triple.ToQuadInGraph(NewIRI("http://example.org/g"))
	if named.InDefaultGraph() {
		t.Fatal("expected named graph")
	}
	if !(Quad{}).IsZero() || quad.IsZero() {
		t.Fatal("unexpected IsZero result")
	}
}
