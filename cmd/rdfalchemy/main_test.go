package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/rdfalchemy-go"
)

// execute runs the CLI with an isolated home directory and returns stdout
// and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestEncodeCommand(t *testing.T) {
	out, _, err := execute(t, "", "encode", "héllo")
	require.NoError(t, err)
	assert.Equal(t, "68 c3 a9 6c 6c 6f\n", out)

	out, _, err = execute(t, "", "--encoding", "latin-1", "encode", "héllo")
	require.NoError(t, err)
	assert.Equal(t, "68 e9 6c 6c 6f\n", out)

	_, _, err = execute(t, "", "--encoding", "ascii", "encode", "é")
	assert.ErrorContains(t, err, "can't encode rune U+00E9")
}

func TestDoctestCommand(t *testing.T) {
	input := ">>> name\n%(u)s'abc'\n>>> raw\n%(b)s'abc'\n>>> n\n55%(L)s\n"

	out, _, err := execute(t, input, "doctest")
	require.NoError(t, err)
	assert.Equal(t, ">>> name\n'abc'\n>>> raw\nb'abc'\n>>> n\n55\n", out)

	out, _, err = execute(t, input, "--dialect", "legacy", "doctest")
	require.NoError(t, err)
	assert.Equal(t, ">>> name\nu'abc'\n>>> raw\n'abc'\n>>> n\n55L\n", out)

	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("%(u)s'x'"), 0644))
	out, _, err = execute(t, "", "doctest", path)
	require.NoError(t, err)
	assert.Equal(t, "'x'", out)
}

func TestSortCommand(t *testing.T) {
	out, _, err := execute(t, "", "sort", "b", "3", "a", "1.5")
	require.NoError(t, err)
	assert.Equal(t, "[1.5, 3, 'b', 'a']\n", out)

	out, _, err = execute(t, "", "--dialect", "legacy", "sort", "b", "3", "a", "1.5")
	require.NoError(t, err)
	assert.Equal(t, "[1.5, 3L, u'a', u'b']\n", out)
}

func TestReprCommand(t *testing.T) {
	out, _, err := execute(t, "", "--dialect", "legacy", "repr", "--datatype", "xsd:integer", "5")
	require.NoError(t, err)
	assert.Equal(t, "Literal(u'5', datatype=URIRef(u'http://www.w3.org/2001/XMLSchema#integer'))\n", out)

	out, _, err = execute(t, "", "--dialect", "legacy", "repr", "--native", "--datatype", "xsd:integer", "5")
	require.NoError(t, err)
	assert.Equal(t, "5L\n", out)

	out, _, err = execute(t, "", "repr", "--lang", "en", "hi")
	require.NoError(t, err)
	assert.Equal(t, "Literal('hi', lang='en')\n", out)

	_, _, err = execute(t, "", "repr", "--lang", "en", "--datatype", "xsd:string", "hi")
	assert.Error(t, err)

	_, _, err = execute(t, "", "repr", "--native", "--datatype", "xsd:boolean", "maybe")
	assert.ErrorContains(t, err, "invalid literal")
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.nt")
	jsonld := filepath.Join(dir, "out.jsonld")
	nt := "<http://example.org/b> <http://example.org/p> \"2\" .\n" +
		"<http://example.org/a> <http://example.org/p> \"1\"@en .\n"
	require.NoError(t, os.WriteFile(in, []byte(nt), 0644))

	_, stderr, err := execute(t, "", "--log-level", "info", "convert", in, jsonld)
	require.NoError(t, err)
	assert.Contains(t, stderr, "converted statements")

	data, err := os.ReadFile(jsonld)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"@id": "http://example.org/a"`)

	out, _, err := execute(t, "", "convert", "--sorted", "--to", "nt", jsonld)
	require.NoError(t, err)
	want := "<http://example.org/a> <http://example.org/p> \"1\"@en .\n" +
		"<http://example.org/b> <http://example.org/p> \"2\" .\n"
	assert.Equal(t, want, out)
}

func TestConvertCommandStdinAutoDetect(t *testing.T) {
	doc := `{"@id": "http://example.org/s", "http://example.org/p": {"@id": "http://example.org/o"}}`
	out, _, err := execute(t, doc, "convert")
	require.NoError(t, err)
	assert.Equal(t, "<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n", out)
}

func TestConvertCommandErrors(t *testing.T) {
	_, _, err := execute(t, "", "convert", "--from", "turtle")
	assert.ErrorContains(t, err, "unsupported RDF format")

	_, _, err = execute(t, "<http://example.org/s> .\n", "convert", "--from", "nt")
	assert.ErrorContains(t, err, "PARSE_ERROR")
}

func TestConfigFileAndFlagPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rdfalchemy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dialect: legacy\n"), 0644))

	out, _, err := execute(t, "", "--config", path, "repr", "x")
	require.NoError(t, err)
	assert.Equal(t, "Literal(u'x')\n", out)

	out, _, err = execute(t, "", "--config", path, "--dialect", "modern", "repr", "x")
	require.NoError(t, err)
	assert.Equal(t, "Literal('x')\n", out)
}

func TestInvalidFlags(t *testing.T) {
	_, _, err := execute(t, "", "--dialect", "py9", "version")
	assert.ErrorContains(t, err, "invalid configuration")

	_, _, err = execute(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	assert.ErrorContains(t, err, "load config")
}

func TestCommandsLogThroughLibraryLogger(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	run := func(level string) *bytes.Buffer {
		var stderr bytes.Buffer
		cmd := rootCmd()
		cmd.SetArgs([]string{"--log-level", level, "version"})
		cmd.SetOut(io.Discard)
		cmd.SetErr(&stderr)
		require.NoError(t, cmd.Execute())
		return &stderr
	}

	first := run("debug")
	assert.Contains(t, first.String(), "configuration ready")

	second := run("info")
	rdfalchemy.Logger().Info("library message")
	rdfalchemy.Logger().Debug("hidden message")
	assert.Contains(t, second.String(), "library message")
	assert.NotContains(t, second.String(), "hidden message")
	assert.NotContains(t, first.String(), "library message")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "rdfalchemy version 0.3\n", out)
}
