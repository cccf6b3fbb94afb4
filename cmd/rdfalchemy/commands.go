package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geoknoesis/rdfalchemy-go/compat"
	"github.com/geoknoesis/rdfalchemy-go/rdf"
)

func (a *app) encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode TEXT",
		Short: "Print the bytes of TEXT in the configured encoding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := compat.CastBytes(args[0], a.cfg.Encoding)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "% x\n", b)
			return nil
		},
	}
}

func (a *app) doctestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctest [FILE]",
		Short: "Rewrite literal markers in FILE (or stdin) for the dialect",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			data, err := io.ReadAll(in)
			if err != nil {
				return err
			}
			text, err := compat.Decode(data, a.cfg.Encoding)
			if err != nil {
				return err
			}
			_, err = io.WriteString(cmd.OutOrStdout(), compat.FormatDoctestOut(a.dialect, text))
			return err
		},
	}
}

func (a *app) sortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort VALUE...",
		Short: "Sort mixed values the way the dialect orders them",
		Long: `Each VALUE is read as an integer, a float, true/false or otherwise text.
Modern orders by type name only; legacy compares numbers and text by value.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values := make([]any, len(args))
			for i, arg := range args {
				values[i] = parseValue(arg)
			}
			compat.SortMixed(a.dialect, values)

			parts := make([]string, len(values))
			for i, v := range values {
				parts[i] = reprValue(a.dialect, v)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n", strings.Join(parts, ", "))
			return nil
		},
	}
}

func parseValue(arg string) any {
	if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		return f
	}
	switch arg {
	case "true":
		return true
	case "false":
		return false
	}
	return arg
}

func reprValue(d compat.Dialect, v any) string {
	switch value := v.(type) {
	case int64:
		return compat.FormatInt(d, value)
	case float64:
		s := strconv.FormatFloat(value, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eEnN") {
			s += ".0"
		}
		return s
	case bool:
		if value {
			return "True"
		}
		return "False"
	case string:
		return compat.QuoteText(d, value)
	default:
		return fmt.Sprint(value)
	}
}

func (a *app) convertCmd() *cobra.Command {
	var (
		from   string
		to     string
		base   string
		sorted bool
	)

	cmd := &cobra.Command{
		Use:   "convert [IN] [OUT]",
		Short: "Convert RDF between N-Triples, N-Quads and JSON-LD",
		Long: `Reads IN (or stdin) and writes OUT (or stdout). Formats default to the
file extensions, then to the rdf.format setting; input without either is
detected from its first bytes and output defaults to N-Quads.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inPath, outPath := argAt(args, 0), argAt(args, 1)

			inFormat, err := a.resolveFormat(from, inPath, rdf.FormatAuto)
			if err != nil {
				return err
			}
			outFormat, err := a.resolveFormat(to, outPath, rdf.FormatNQuads)
			if err != nil {
				return err
			}

			in := cmd.InOrStdin()
			if inPath != "" && inPath != "-" {
				f, err := os.Open(inPath)
				if err != nil {
					return err
				}
				defer f.Close()
				in = bufio.NewReader(f)
			}
			out := cmd.OutOrStdout()
			if outPath != "" && outPath != "-" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			opts := append(a.cfg.RDFOptions(), rdf.OptLogger(a.logger))
			if base != "" {
				opts = append(opts, rdf.OptBaseIRI(base))
			}
			if sorted {
				opts = append(opts, rdf.OptSorted())
			}
			return a.convert(cmd, in, inFormat, out, outFormat, opts)
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "", "Input format (ntriples, nquads, jsonld)")
	cmd.Flags().StringVarP(&to, "to", "t", "", "Output format (ntriples, nquads, jsonld)")
	cmd.Flags().StringVar(&base, "base", "", "Base IRI for relative JSON-LD identifiers")
	cmd.Flags().BoolVar(&sorted, "sorted", false, "Write statements in a deterministic order")
	return cmd
}

func (a *app) convert(cmd *cobra.Command, in io.Reader, inFormat rdf.Format, out io.Writer, outFormat rdf.Format, opts []rdf.Option) error {
	ctx := cmd.Context()
	enc, err := rdf.NewWriter(out, outFormat, opts...)
	if err != nil {
		return err
	}
	count := 0
	err = rdf.Parse(ctx, in, inFormat, func(q rdf.Quad) error {
		count++
		return enc.Write(q)
	}, opts...)
	if err != nil {
		_ = enc.Close()
		return fmt.Errorf("convert: %w (code %s)", err, rdf.Code(err))
	}
	if err := enc.Close(); err != nil {
		return err
	}
	a.logger.Info("converted statements",
		"from", inFormat,
		"to", outFormat,
		"count", count)
	return nil
}

// resolveFormat picks the flag value, then the path extension, then the
// configured default, then fallback.
func (a *app) resolveFormat(flag, path string, fallback rdf.Format) (rdf.Format, error) {
	if flag != "" {
		f, ok := rdf.ParseFormat(flag)
		if !ok {
			return "", fmt.Errorf("%w: %q", rdf.ErrUnsupportedFormat, flag)
		}
		return f, nil
	}
	if path != "" && path != "-" {
		if f, err := rdf.FormatFromPath(path); err == nil {
			return f, nil
		} else if !errors.Is(err, rdf.ErrUnsupportedFormat) {
			return "", err
		}
	}
	if f := a.cfg.Format(); f != rdf.FormatAuto {
		return f, nil
	}
	return fallback, nil
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func (a *app) reprCmd() *cobra.Command {
	var (
		datatype string
		lang     string
		native   bool
	)

	cmd := &cobra.Command{
		Use:   "repr LEXICAL",
		Short: "Print a literal the way graph-library doctests show it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if datatype != "" && lang != "" {
				return errors.New("--datatype and --lang are mutually exclusive")
			}
			lit := rdf.Literal{Lexical: args[0], Lang: lang}
			if datatype != "" {
				lit.Datatype = rdf.NewIRI(expandDatatype(datatype))
			}
			out := lit.Repr(a.dialect)
			if native {
				var err error
				if out, err = lit.NativeRepr(a.dialect); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&datatype, "datatype", "", "Datatype IRI or xsd:local name")
	cmd.Flags().StringVar(&lang, "lang", "", "Language tag")
	cmd.Flags().BoolVar(&native, "native", false, "Print the converted Go value instead")
	return cmd
}

// expandDatatype turns "xsd:integer" into the full XSD IRI.
func expandDatatype(value string) string {
	if local, ok := strings.CutPrefix(value, "xsd:"); ok {
		return rdf.XSD.Term(local).Value
	}
	return value
}
