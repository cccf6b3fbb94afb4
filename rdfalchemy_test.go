package rdfalchemy

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/rdfalchemy-go/compat"
	"github.com/geoknoesis/rdfalchemy-go/rdf"
)

// InitLogging is process-wide, so every logging assertion lives in this test.
func TestInitLoggingOnce(t *testing.T) {
	before := Logger()
	require.NotNil(t, before)
	assert.False(t, before.Enabled(context.Background(), slog.LevelError), "logger must be silent before InitLogging")

	var first, second bytes.Buffer
	logger := InitLogging(slog.NewTextHandler(&first, nil))
	require.NotNil(t, logger)
	logger.Info("hello")
	assert.Contains(t, first.String(), "msg=hello")

	again := InitLogging(slog.NewTextHandler(&second, nil))
	assert.Same(t, logger, again)
	again.Info("ignored handler")
	assert.Empty(t, second.String())
	assert.Same(t, logger, Logger())

	assert.NotSame(t, slog.Default(), logger, "library must not replace the slog default")
}

func TestNullHandler(t *testing.T) {
	var h slog.Handler = NullHandler{}
	assert.False(t, h.Enabled(context.Background(), slog.LevelError))
	assert.NoError(t, h.Handle(context.Background(), slog.Record{}))
	assert.Equal(t, h, h.WithAttrs([]slog.Attr{slog.String("k", "v")}))
	assert.Equal(t, h, h.WithGroup("g"))
}

func TestReexports(t *testing.T) {
	var term Term = NewURIRef("http://example.org/s")
	assert.Equal(t, rdf.TermIRI, term.Kind())
	assert.Equal(t, "URIRef", compat.TypeName(term))
	assert.Equal(t, "BNode", compat.TypeName(NewBNode("b0")))

	lit, err := NewLiteral(3)
	require.NoError(t, err)
	assert.Equal(t, rdf.XSDInteger, lit.Datatype)
	assert.Equal(t, "Literal", compat.TypeName(lit))

	assert.Equal(t, "http://www.w3.org/1999/02/22-rdf-syntax-ns#type", RDF.Term("type").Value)
	assert.Equal(t, "http://www.w3.org/2000/01/rdf-schema#label", RDFS.Term("label").Value)
	assert.Equal(t, rdf.XSDString, XSD.Term("string"))
	assert.True(t, OWL.Contains(rdf.OWLClass))

	ns := Namespace("http://example.org/")
	triple := Triple{S: ns.Term("s"), P: ns.Term("p"), O: lit}
	quad := triple.ToQuad()
	assert.True(t, quad.InDefaultGraph())
	var _ Quad = quad
}

func TestReexportedTermsSortLikeGraphLibrary(t *testing.T) {
	values := []any{NewURIRef("http://a/"), Literal{Lexical: "x"}, NewBNode("b")}
	compat.SortMixed(compat.Modern, values)
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = compat.TypeName(v)
	}
	assert.Equal(t, []string{"BNode", "Literal", "URIRef"}, names)
}
