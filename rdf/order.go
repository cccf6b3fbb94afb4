package rdf

import (
	"cmp"
	"slices"

	"github.com/geoknoesis/rdfalchemy-go/compat"
)

// CompareTerms orders RDF terms. Terms of different kinds are ordered by
// their type names (BNode < Literal < URIRef); terms of the same kind by
// value. A nil term sorts first.
func CompareTerms(a, b Term) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if a.Kind() != b.Kind() {
		if c := compat.TypeCmp(a, b); c != 0 {
			return c
		}
		return cmp.Compare(a.Kind(), b.Kind())
	}
	la, aok := a.(Literal)
	lb, bok := b.(Literal)
	if aok && bok {
		return compareLiterals(la, lb)
	}
	return cmp.Compare(a.String(), b.String())
}

func compareLiterals(a, b Literal) int {
	if c := cmp.Compare(a.Lexical, b.Lexical); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Datatype.Value, b.Datatype.Value); c != 0 {
		return c
	}
	return cmp.Compare(a.Lang, b.Lang)
}

// CompareTriples orders triples by subject, predicate, then object.
func CompareTriples(a, b Triple) int {
	if c := CompareTerms(a.S, b.S); c != 0 {
		return c
	}
	if c := cmp.Compare(a.P.Value, b.P.Value); c != 0 {
		return c
	}
	return CompareTerms(a.O, b.O)
}

// CompareQuads orders quads by graph, then as triples.
func CompareQuads(a, b Quad) int {
	if c := CompareTerms(a.G, b.G); c != 0 {
		return c
	}
	return CompareTriples(a.ToTriple(), b.ToTriple())
}

// SortTriples sorts triples in place with CompareTriples.
func SortTriples(triples []Triple) {
	slices.SortStableFunc(triples, CompareTriples)
}

// SortQuads sorts quads in place with CompareQuads.
func SortQuads(quads []Quad) {
	slices.SortStableFunc(quads, CompareQuads)
}
