package rdf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	ld "github.com/piprate/json-gold/ld"
)

const nquadsMediaType = "application/n-quads"

// jsonldDecoder expands a JSON-LD document to RDF with json-gold and serves
// the resulting statements one by one.
type jsonldDecoder struct {
	r      io.Reader
	opts   Options
	quads  []Quad
	index  int
	loaded bool
	err    error
}

func newJSONLDDecoder(r io.Reader, opts Options) *jsonldDecoder {
	return &jsonldDecoder{r: r, opts: opts}
}

func (d *jsonldDecoder) Next() (Quad, error) {
	if !d.loaded {
		d.loaded = true
		d.quads, d.err = d.load()
	}
	if d.err != nil {
		return Quad{}, d.err
	}
	if d.index >= len(d.quads) {
		return Quad{}, io.EOF
	}
	q := d.quads[d.index]
	d.index++
	return q, nil
}

func (d *jsonldDecoder) Close() error { return nil }

func (d *jsonldDecoder) load() ([]Quad, error) {
	ctx := d.opts.Context
	src := d.r
	if d.opts.MaxInputBytes > 0 {
		src = io.LimitReader(d.r, d.opts.MaxInputBytes+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	if d.opts.MaxInputBytes > 0 && int64(len(data)) > d.opts.MaxInputBytes {
		return nil, wrapParseError("jsonld", "", 0, 0, ErrInputTooLarge)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, wrapParseError("jsonld", "", 0, 0, err)
	}
	nquads, err := jsonldToNQuads(ctx, doc, d.opts)
	if err != nil {
		return nil, wrapParseError("jsonld", "", 0, 0, err)
	}
	d.opts.Logger.Debug("expanded JSON-LD document", "bytes", len(data), "nquads_bytes", len(nquads))
	quads, err := ReadAll(ctx, strings.NewReader(nquads), FormatNQuads, OptMaxLineBytes(-1), OptLogger(d.opts.Logger))
	if err != nil {
		return nil, err
	}
	for i, q := range quads {
		// Plain strings come back typed as xsd:string; keep them simple literals.
		if lit, ok := q.O.(Literal); ok && lit.Datatype == XSDString {
			lit.Datatype = IRI{}
			quads[i].O = lit
		}
	}
	return quads, nil
}

func newJSONGoldOptions(opts Options) *ld.JsonLdOptions {
	return ld.NewJsonLdOptions(opts.BaseIRI)
}

// jsonldToNQuads runs the JSON-LD to-RDF algorithm and serializes the dataset.
func jsonldToNQuads(ctx context.Context, doc any, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	proc := ld.NewJsonLdProcessor()
	result, err := proc.ToRDF(doc, newJSONGoldOptions(opts))
	if err != nil {
		return "", err
	}
	dataset, ok := result.(*ld.RDFDataset)
	if !ok {
		return "", fmt.Errorf("jsonld: unexpected ToRDF result %T", result)
	}
	serialized, err := (&ld.NQuadRDFSerializer{}).Serialize(dataset)
	if err != nil {
		return "", err
	}
	nquads, ok := serialized.(string)
	if !ok {
		return "", fmt.Errorf("jsonld: unexpected N-Quads result %T", serialized)
	}
	return nquads, nil
}

// jsonldEncoder buffers statements and writes one JSON-LD document on Close.
type jsonldEncoder struct {
	w      io.Writer
	opts   Options
	nquads strings.Builder
	lines  *ntEncoder
	closed bool
}

func newJSONLDEncoder(w io.Writer, opts Options) *jsonldEncoder {
	e := &jsonldEncoder{w: w, opts: opts}
	e.lines = newNTEncoder(&e.nquads, FormatNQuads)
	return e
}

func (e *jsonldEncoder) Write(q Quad) error {
	if e.closed {
		return fmt.Errorf("jsonld: write after close")
	}
	return e.lines.Write(q)
}

// Flush is a no-op: the document is only complete once Close is called.
func (e *jsonldEncoder) Flush() error { return nil }

func (e *jsonldEncoder) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if err := e.lines.Flush(); err != nil {
		return err
	}

	proc := ld.NewJsonLdProcessor()
	goldOpts := newJSONGoldOptions(e.opts)
	goldOpts.Format = nquadsMediaType
	doc, err := proc.FromRDF(e.nquads.String(), goldOpts)
	if err != nil {
		return fmt.Errorf("jsonld: %w", err)
	}
	if e.opts.JSONLDContext != nil {
		compacted, err := proc.Compact(doc, map[string]any{"@context": e.opts.JSONLDContext}, newJSONGoldOptions(e.opts))
		if err != nil {
			return fmt.Errorf("jsonld: compact: %w", err)
		}
		doc = compacted
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	out = append(out, '\n')
	_, err = e.w.Write(out)
	return err
}
