// Package rdf provides the RDF term model behind rdfalchemy together with
// streaming N-Triples, N-Quads and JSON-LD codecs.
//
// It keeps a small streaming surface:
//   - Decode: NewReader() returns a pull-style reader of quads.
//   - Encode: NewWriter() returns a push-style writer.
//   - Parse: Parse() and ReadAll() provide streaming helpers.
//
// Terms carry the names rdflib gives them (URIRef, BNode, Literal) so that
// mixed collections order the same way under compat.TypeCmp.
//
// Literals convert to and from Go values with NewLiteral and Literal.Native,
// and render through Repr in the selected compat.Dialect.
//
// Example (decoding):
//
//	dec, err := rdf.NewReader(strings.NewReader(input), rdf.FormatNTriples)
//	if err != nil {
//	    // handle error
//	}
//	defer dec.Close()
//
//	for {
//	    quad, err := dec.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        // handle error
//	    }
//	    // process quad.S, quad.P, quad.O, quad.G
//	}
//
// Reader options enforce line, document and statement limits for untrusted
// input. JSON-LD documents are buffered whole before expansion.
package rdf
