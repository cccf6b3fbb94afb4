// Package rdfalchemy re-exports the RDF names applications work with and
// owns the library logger.
//
// Logging is silent until InitLogging is called. The first call fixes the
// handler for the lifetime of the process:
//
//	logger := rdfalchemy.InitLogging(slog.NewTextHandler(os.Stderr, nil))
//	logger.Info("ready")
//
// The compatibility shim lives in the compat package and the term model and
// codecs in the rdf package.
package rdfalchemy

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/geoknoesis/rdfalchemy-go/internal/logging"
	"github.com/geoknoesis/rdfalchemy-go/rdf"
)

// Version is the library release.
const Version = "0.3"

// Re-exported term model.
type (
	Literal   = rdf.Literal
	URIRef    = rdf.IRI
	BNode     = rdf.BlankNode
	Namespace = rdf.Namespace
	Triple    = rdf.Triple
	Quad      = rdf.Quad
	Term      = rdf.Term
)

// NullHandler is a slog.Handler that discards every record.
type NullHandler = logging.NullHandler

// Well-known vocabularies.
const (
	RDF  = rdf.RDF
	RDFS = rdf.RDFS
	OWL  = rdf.OWL
	XSD  = rdf.XSD
)

// NewLiteral converts a Go value into a typed literal.
func NewLiteral(v any) (Literal, error) { return rdf.NewLiteral(v) }

// NewURIRef returns an IRI term.
func NewURIRef(value string) URIRef { return rdf.NewIRI(value) }

// NewBNode returns a blank node term.
func NewBNode(id string) BNode { return rdf.NewBlankNode(id) }

var (
	logOnce sync.Once
	current atomic.Pointer[slog.Logger]
)

// InitLogging installs h as the handler of the library logger and returns the
// logger. Only the first call has an effect; later calls return the logger it
// created. A nil handler installs NullHandler. The process-wide slog default
// is never changed.
func InitLogging(h slog.Handler) *slog.Logger {
	logOnce.Do(func() {
		if h == nil {
			h = NullHandler{}
		}
		current.Store(slog.New(h))
	})
	return current.Load()
}

// Logger returns the library logger, or a discarding logger when InitLogging
// has not been called yet.
func Logger() *slog.Logger {
	return logging.OrDiscard(current.Load())
}
