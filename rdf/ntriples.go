package rdf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/geoknoesis/rdfalchemy-go/compat"
)

type ntDecoder struct {
	reader *bufio.Reader
	format Format
	opts   Options
	line   int
	err    error
}

func newNTDecoder(r io.Reader, format Format, opts Options) *ntDecoder {
	return &ntDecoder{reader: bufio.NewReader(r), format: format, opts: opts}
}

func (d *ntDecoder) Next() (Quad, error) {
	if d.err != nil {
		return Quad{}, d.err
	}
	for {
		if err := d.opts.Context.Err(); err != nil {
			d.err = err
			return Quad{}, err
		}
		raw, err := d.readLine()
		if err != nil {
			if err == io.EOF {
				return Quad{}, io.EOF
			}
			d.err = wrapParseError(string(d.format), "", d.line+1, 0, err)
			return Quad{}, d.err
		}
		d.line++
		line, err := compat.Decode(raw, compat.DefaultEncoding)
		if err != nil {
			d.err = wrapParseError(string(d.format), "", d.line, 0, err)
			return Quad{}, d.err
		}
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		quad, err := parseNTLine(line, d.format)
		if err != nil {
			var cursorErr *ntSyntaxError
			column := 0
			if errors.As(err, &cursorErr) {
				column = cursorErr.pos + 1
			}
			d.err = wrapParseError(string(d.format), line, d.line, column, err)
			d.opts.Logger.Debug("rejected statement", "format", d.format, "line", d.line, "error", err)
			return Quad{}, d.err
		}
		return quad, nil
	}
}

func (d *ntDecoder) Close() error { return nil }

// readLine returns the next raw line, enforcing MaxLineBytes.
func (d *ntDecoder) readLine() ([]byte, error) {
	var buf []byte
	for {
		chunk, err := d.reader.ReadSlice('\n')
		buf = append(buf, chunk...)
		if d.opts.MaxLineBytes > 0 && len(strings.TrimRight(string(buf), "\r\n")) > d.opts.MaxLineBytes {
			return nil, ErrLineTooLong
		}
		switch {
		case err == bufio.ErrBufferFull:
			continue
		case err == io.EOF && len(buf) > 0:
			return buf, nil
		case err != nil:
			return nil, err
		}
		return buf, nil
	}
}

func parseNTLine(line string, format Format) (Quad, error) {
	cursor := &ntCursor{input: line}
	subject, err := cursor.parseTerm(false)
	if err != nil {
		return Quad{}, err
	}
	cursor.skipWS()
	predicate, err := cursor.parseIRI()
	if err != nil {
		return Quad{}, err
	}
	object, err := cursor.parseTerm(true)
	if err != nil {
		return Quad{}, err
	}

	var graph Term
	cursor.skipWS()
	if cursor.pos < len(cursor.input) && cursor.input[cursor.pos] != '.' {
		if format == FormatNTriples {
			return Quad{}, cursor.errorf("graph term not allowed in N-Triples")
		}
		graph, err = cursor.parseTerm(false)
		if err != nil {
			return Quad{}, err
		}
	}
	if !cursor.consume('.') {
		return Quad{}, cursor.errorf("expected '.' at end of statement")
	}
	cursor.skipWS()
	if cursor.pos < len(cursor.input) && cursor.input[cursor.pos] != '#' {
		return Quad{}, cursor.errorf("unexpected content after '.'")
	}
	return Quad{S: subject, P: predicate, O: object, G: graph}, nil
}

// ntSyntaxError carries the byte position of a syntax error within a line.
type ntSyntaxError struct {
	pos int
	msg string
}

func (e *ntSyntaxError) Error() string { return e.msg }

type ntCursor struct {
	input string
	pos   int
}

func (c *ntCursor) errorf(format string, args ...any) error {
	return &ntSyntaxError{pos: c.pos, msg: fmt.Sprintf(format, args...)}
}

func (c *ntCursor) skipWS() {
	for c.pos < len(c.input) {
		switch c.input[c.pos] {
		case ' ', '\t':
			c.pos++
		default:
			return
		}
	}
}

func (c *ntCursor) consume(ch byte) bool {
	c.skipWS()
	if c.pos < len(c.input) && c.input[c.pos] == ch {
		c.pos++
		return true
	}
	return false
}

func (c *ntCursor) parseTerm(allowLiteral bool) (Term, error) {
	c.skipWS()
	if c.pos >= len(c.input) {
		return nil, c.errorf("unexpected end of line")
	}
	switch {
	case c.input[c.pos] == '<':
		return c.parseIRI()
	case strings.HasPrefix(c.input[c.pos:], "_:"):
		return c.parseBlankNode()
	case c.input[c.pos] == '"':
		if !allowLiteral {
			return nil, c.errorf("literal not allowed here")
		}
		return c.parseLiteral()
	default:
		return nil, c.errorf("unexpected token %q", c.input[c.pos])
	}
}

func (c *ntCursor) parseIRI() (IRI, error) {
	if !c.consume('<') {
		return IRI{}, c.errorf("expected IRI")
	}
	var b strings.Builder
	for c.pos < len(c.input) {
		ch := c.input[c.pos]
		switch {
		case ch == '>':
			c.pos++
			return IRI{Value: b.String()}, nil
		case ch == '\\':
			r, err := c.parseUnicodeEscape()
			if err != nil {
				return IRI{}, err
			}
			b.WriteRune(r)
		case ch <= ' ' || strings.IndexByte(`<"{}|^`+"`", ch) >= 0:
			return IRI{}, c.errorf("invalid character %q in IRI", ch)
		default:
			b.WriteByte(ch)
			c.pos++
		}
	}
	return IRI{}, c.errorf("unterminated IRI")
}

// parseUnicodeEscape reads \uXXXX or \UXXXXXXXX at the cursor.
func (c *ntCursor) parseUnicodeEscape() (rune, error) {
	if c.pos+1 >= len(c.input) {
		return 0, c.errorf("unterminated escape")
	}
	width := 0
	switch c.input[c.pos+1] {
	case 'u':
		width = 4
	case 'U':
		width = 8
	default:
		return 0, c.errorf("invalid escape \\%c", c.input[c.pos+1])
	}
	start := c.pos + 2
	if start+width > len(c.input) {
		return 0, c.errorf("truncated unicode escape")
	}
	n, err := strconv.ParseUint(c.input[start:start+width], 16, 32)
	if err != nil || !utf8.ValidRune(rune(n)) {
		return 0, c.errorf("invalid unicode escape %q", c.input[c.pos:start+width])
	}
	c.pos = start + width
	return rune(n), nil
}

func (c *ntCursor) parseBlankNode() (BlankNode, error) {
	c.pos += 2
	start := c.pos
	for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) {
		c.pos++
	}
	// A label may not end with '.'.
	for c.pos > start && c.input[c.pos-1] == '.' {
		c.pos--
	}
	if start == c.pos {
		return BlankNode{}, c.errorf("blank node id missing")
	}
	return BlankNode{ID: c.input[start:c.pos]}, nil
}

func (c *ntCursor) parseLiteral() (Literal, error) {
	c.pos++ // opening quote
	var b strings.Builder
	closed := false
	for c.pos < len(c.input) && !closed {
		ch := c.input[c.pos]
		switch ch {
		case '"':
			c.pos++
			closed = true
		case '\\':
			if c.pos+1 >= len(c.input) {
				return Literal{}, c.errorf("unterminated escape")
			}
			next := c.input[c.pos+1]
			if next == 'u' || next == 'U' {
				r, err := c.parseUnicodeEscape()
				if err != nil {
					return Literal{}, err
				}
				b.WriteRune(r)
				continue
			}
			switch next {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case '"', '\'', '\\':
				b.WriteByte(next)
			default:
				return Literal{}, c.errorf("invalid escape \\%c", next)
			}
			c.pos += 2
		default:
			b.WriteByte(ch)
			c.pos++
		}
	}
	if !closed {
		return Literal{}, c.errorf("unterminated literal")
	}
	lexical := b.String()

	switch {
	case strings.HasPrefix(c.input[c.pos:], "@"):
		c.pos++
		start := c.pos
		for c.pos < len(c.input) && !isTermDelimiter(c.input[c.pos]) && c.input[c.pos] != '.' {
			c.pos++
		}
		lang := c.input[start:c.pos]
		if !isLangTag(lang) {
			c.pos = start
			return Literal{}, c.errorf("invalid language tag %q", lang)
		}
		return Literal{Lexical: lexical, Lang: lang}, nil
	case strings.HasPrefix(c.input[c.pos:], "^^"):
		c.pos += 2
		dt, err := c.parseIRI()
		if err != nil {
			return Literal{}, err
		}
		return Literal{Lexical: lexical, Datatype: dt}, nil
	}
	return Literal{Lexical: lexical}, nil
}

func isTermDelimiter(ch byte) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', '<', '"':
		return true
	default:
		return false
	}
}

// isLangTag checks [a-zA-Z]+ ('-' [a-zA-Z0-9]+)*.
func isLangTag(tag string) bool {
	if tag == "" {
		return false
	}
	for i, part := range strings.Split(tag, "-") {
		if part == "" {
			return false
		}
		for j := 0; j < len(part); j++ {
			ch := part[j]
			alpha := (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
			digit := ch >= '0' && ch <= '9'
			if !alpha && !(digit && i > 0) {
				return false
			}
		}
	}
	return true
}

type ntEncoder struct {
	writer *bufio.Writer
	format Format
	err    error
}

func newNTEncoder(w io.Writer, format Format) *ntEncoder {
	return &ntEncoder{writer: bufio.NewWriter(w), format: format}
}

func (e *ntEncoder) Write(q Quad) error {
	if e.err != nil {
		return e.err
	}
	if q.IsZero() {
		return fmt.Errorf("%s: empty statement", e.format)
	}
	if q.S == nil || q.P.Value == "" || q.O == nil {
		return fmt.Errorf("%s: missing statement fields", e.format)
	}
	if q.S.Kind() == TermLiteral {
		return fmt.Errorf("%s: literal subject not allowed", e.format)
	}
	if q.G != nil && e.format == FormatNTriples {
		return fmt.Errorf("%s: named graph %s not allowed", e.format, q.G)
	}
	if q.G != nil && q.G.Kind() == TermLiteral {
		return fmt.Errorf("%s: literal graph name not allowed", e.format)
	}
	for _, term := range []Term{q.S, q.P, q.O, q.G} {
		if term == nil {
			continue
		}
		if err := checkTerm(term); err != nil {
			return fmt.Errorf("%s: %w", e.format, err)
		}
	}
	line := renderTerm(q.S) + " " + renderIRI(q.P) + " " + renderTerm(q.O)
	if q.G != nil {
		line += " " + renderTerm(q.G)
	}
	line += " .\n"
	if _, err := e.writer.WriteString(line); err != nil {
		e.err = err
		return err
	}
	return nil
}

// checkTerm rejects terms that would not read back as the same term.
func checkTerm(term Term) error {
	switch value := term.(type) {
	case IRI:
		_, err := compat.Encode(value.Value, compat.DefaultEncoding)
		return err
	case BlankNode:
		id := value.ID
		if id == "" || strings.HasSuffix(id, ".") || strings.ContainsFunc(id, func(r rune) bool {
			return r < utf8.RuneSelf && isTermDelimiter(byte(r))
		}) {
			return fmt.Errorf("invalid blank node id %q", id)
		}
		_, err := compat.Encode(id, compat.DefaultEncoding)
		return err
	case Literal:
		if value.Lang != "" && !isLangTag(value.Lang) {
			return fmt.Errorf("invalid language tag %q", value.Lang)
		}
		if _, err := compat.Encode(value.Lexical, compat.DefaultEncoding); err != nil {
			return err
		}
		_, err := compat.Encode(value.Datatype.Value, compat.DefaultEncoding)
		return err
	}
	return nil
}

func (e *ntEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	return e.writer.Flush()
}

func (e *ntEncoder) Close() error {
	return e.Flush()
}

func renderIRI(iri IRI) string {
	var b strings.Builder
	b.WriteByte('<')
	for _, r := range iri.Value {
		if r <= ' ' || strings.ContainsRune(`<>"{}|^`+"`\\", r) {
			fmt.Fprintf(&b, `\u%04X`, r)
			continue
		}
		b.WriteRune(r)
	}
	b.WriteByte('>')
	return b.String()
}

func renderLiteral(l Literal) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range l.Lexical {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	switch {
	case l.Lang != "":
		b.WriteByte('@')
		b.WriteString(l.Lang)
	case l.Datatype.Value != "":
		b.WriteString("^^")
		b.WriteString(renderIRI(l.Datatype))
	}
	return b.String()
}

func renderTerm(term Term) string {
	switch value := term.(type) {
	case IRI:
		return renderIRI(value)
	case BlankNode:
		return value.String()
	case Literal:
		return renderLiteral(value)
	default:
		return ""
	}
}
