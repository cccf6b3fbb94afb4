package rdf

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/geoknoesis/rdfalchemy-go/internal/logging"
)

const (
	// DefaultMaxLineBytes bounds a single N-Triples/N-Quads line.
	DefaultMaxLineBytes = 1 << 20
	// DefaultMaxInputBytes bounds a JSON-LD document.
	DefaultMaxInputBytes = 64 << 20

	formatDetectionBufferSize = 512
)

// Reader streams RDF statements from an input. Triples are returned as quads
// in the default graph.
type Reader interface {
	Next() (Quad, error)
	Close() error
}

// Writer streams RDF statements to an output. Triple-only formats reject
// quads in a named graph.
type Writer interface {
	Write(Quad) error
	Flush() error
	Close() error
}

// Handler processes statements in push mode.
type Handler func(Quad) error

// Option configures reader/writer behavior.
type Option func(*Options)

// Options configures parser/encoder behavior.
type Options struct {
	// Context for cancellation of reads.
	Context context.Context
	// Logger receives debug records; nil discards them.
	Logger *slog.Logger

	// Security limits for untrusted input. Zero uses the default, negative disables.
	MaxLineBytes  int
	MaxInputBytes int64
	MaxTriples    int64

	// BaseIRI resolves relative IRIs in JSON-LD input.
	BaseIRI string
	// JSONLDContext compacts JSON-LD output when set.
	JSONLDContext map[string]any
	// Sorted makes writers buffer statements and emit them in CompareQuads order.
	Sorted bool
}

// OptContext sets the context for cancellation.
func OptContext(ctx context.Context) Option {
	return func(opts *Options) { opts.Context = ctx }
}

// OptLogger sets the logger used for debug output.
func OptLogger(logger *slog.Logger) Option {
	return func(opts *Options) { opts.Logger = logger }
}

// OptMaxLineBytes sets the maximum line size limit.
func OptMaxLineBytes(maxBytes int) Option {
	return func(opts *Options) { opts.MaxLineBytes = maxBytes }
}

// OptMaxInputBytes sets the maximum size of a JSON-LD document.
func OptMaxInputBytes(maxBytes int64) Option {
	return func(opts *Options) { opts.MaxInputBytes = maxBytes }
}

// OptMaxTriples sets the maximum number of statements a reader returns.
func OptMaxTriples(maxTriples int64) Option {
	return func(opts *Options) { opts.MaxTriples = maxTriples }
}

// OptBaseIRI sets the base IRI for JSON-LD input.
func OptBaseIRI(base string) Option {
	return func(opts *Options) { opts.BaseIRI = base }
}

// OptJSONLDContext sets the @context JSON-LD output is compacted with.
func OptJSONLDContext(ctx map[string]any) Option {
	return func(opts *Options) { opts.JSONLDContext = ctx }
}

// OptSorted makes writers emit statements in a deterministic order.
func OptSorted() Option {
	return func(opts *Options) { opts.Sorted = true }
}

func buildOptions(opts []Option) Options {
	options := Options{
		MaxLineBytes:  DefaultMaxLineBytes,
		MaxInputBytes: DefaultMaxInputBytes,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.Context == nil {
		options.Context = context.Background()
	}
	if options.MaxLineBytes == 0 {
		options.MaxLineBytes = DefaultMaxLineBytes
	}
	if options.MaxInputBytes == 0 {
		options.MaxInputBytes = DefaultMaxInputBytes
	}
	options.Logger = logging.OrDiscard(options.Logger)
	return options
}

// NewReader creates a reader for the specified format.
// If format is FormatAuto, the format is detected from the first bytes.
func NewReader(r io.Reader, format Format, opts ...Option) (Reader, error) {
	options := buildOptions(opts)

	if format == FormatAuto {
		br := bufio.NewReader(r)
		sample, err := br.Peek(formatDetectionBufferSize)
		if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
			return nil, err
		}
		detected, ok := detectFormatFromSample(sample)
		if !ok {
			return nil, ErrUnsupportedFormat
		}
		options.Logger.Debug("detected RDF format", slog.String("format", string(detected)))
		format = detected
		r = br
	}

	var dec Reader
	switch format {
	case FormatNTriples, FormatNQuads:
		dec = newNTDecoder(r, format, options)
	case FormatJSONLD:
		dec = newJSONLDDecoder(r, options)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if options.MaxTriples > 0 {
		dec = &limitReader{Reader: dec, max: options.MaxTriples}
	}
	return dec, nil
}

// NewWriter creates a writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...Option) (Writer, error) {
	options := buildOptions(opts)

	var enc Writer
	switch format {
	case FormatNTriples, FormatNQuads:
		enc = newNTEncoder(w, format)
	case FormatJSONLD:
		enc = newJSONLDEncoder(w, options)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if options.Sorted {
		enc = &sortedWriter{inner: enc}
	}
	return enc, nil
}

// Parse parses RDF from the reader and streams statements to the handler.
// If ctx is nil, context.Background() is used.
func Parse(ctx context.Context, r io.Reader, format Format, handler Handler, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	reader, err := NewReader(r, format, append(opts, OptContext(ctx))...)
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		stmt, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := handler(stmt); err != nil {
			return err
		}
	}
}

// ReadAll parses every statement of the input.
func ReadAll(ctx context.Context, r io.Reader, format Format, opts ...Option) ([]Quad, error) {
	var quads []Quad
	err := Parse(ctx, r, format, func(q Quad) error {
		quads = append(quads, q)
		return nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	return quads, nil
}

// WriteAll writes quads with a new writer and closes it.
func WriteAll(ctx context.Context, w io.Writer, format Format, quads []Quad, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	enc, err := NewWriter(w, format, opts...)
	if err != nil {
		return err
	}
	for _, q := range quads {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := enc.Write(q); err != nil {
			_ = enc.Close()
			return err
		}
	}
	return enc.Close()
}

// limitReader fails once more than max statements have been read.
type limitReader struct {
	Reader
	max   int64
	count int64
}

func (l *limitReader) Next() (Quad, error) {
	q, err := l.Reader.Next()
	if err != nil {
		return q, err
	}
	l.count++
	if l.count > l.max {
		return Quad{}, ErrTripleLimitExceeded
	}
	return q, nil
}

// sortedWriter buffers statements until Flush and writes them in order.
type sortedWriter struct {
	inner   Writer
	pending []Quad
}

func (s *sortedWriter) Write(q Quad) error {
	s.pending = append(s.pending, q)
	return nil
}

func (s *sortedWriter) Flush() error {
	SortQuads(s.pending)
	for _, q := range s.pending {
		if err := s.inner.Write(q); err != nil {
			return err
		}
	}
	s.pending = s.pending[:0]
	return s.inner.Flush()
}

func (s *sortedWriter) Close() error {
	if err := s.Flush(); err != nil {
		_ = s.inner.Close()
		return err
	}
	return s.inner.Close()
}
