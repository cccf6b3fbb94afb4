package rdf

import "strings"

// Namespace is an IRI prefix that terms are minted from.
type Namespace string

// Well-known namespaces.
const (
	RDF  Namespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS Namespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWL  Namespace = "http://www.w3.org/2002/07/owl#"
	XSD  Namespace = "http://www.w3.org/2001/XMLSchema#"
)

// Common vocabulary terms.
var (
	RDFType      = RDF.Term("type")
	RDFFirst     = RDF.Term("first")
	RDFRest      = RDF.Term("rest")
	RDFNil       = RDF.Term("nil")
	RDFLangStr   = RDF.Term("langString")
	RDFSLabel    = RDFS.Term("label")
	RDFSComment  = RDFS.Term("comment")
	RDFSSubClass = RDFS.Term("subClassOf")
	RDFSClass    = RDFS.Term("Class")
	OWLClass     = OWL.Term("Class")
	OWLSameAs    = OWL.Term("sameAs")
)

// Term returns the IRI for local within the namespace.
func (ns Namespace) Term(local string) IRI {
	return IRI{Value: string(ns) + local}
}

// IRI returns the namespace itself as an IRI.
func (ns Namespace) IRI() IRI {
	return IRI{Value: string(ns)}
}

// Contains reports whether iri was minted from the namespace.
func (ns Namespace) Contains(iri IRI) bool {
	return ns != "" && strings.HasPrefix(iri.Value, string(ns))
}

// Split returns the local part of iri relative to the namespace.
func (ns Namespace) Split(iri IRI) (string, bool) {
	if !ns.Contains(iri) {
		return "", false
	}
	return iri.Value[len(ns):], true
}

// QName returns prefix:local for iri when the local part is a valid QName local name.
func (ns Namespace) QName(prefix string, iri IRI) (string, bool) {
	local, ok := ns.Split(iri)
	if !ok || !isQNameLocal(local) {
		return "", false
	}
	return prefix + ":" + local, true
}
