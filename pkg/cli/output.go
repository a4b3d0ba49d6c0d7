package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// OutputFormat selects how Output encodes a result.
type OutputFormat string

const (
	FormatYAML OutputFormat = "yaml"
	FormatJSON OutputFormat = "json"

	// FormatRaw writes []byte and string results unchanged and falls back
	// to YAML for anything else.
	FormatRaw OutputFormat = "raw"
)

// OutputOptions controls Output.
type OutputOptions struct {
	Format OutputFormat

	// File receives the output when Writer is nil. Empty means stdout.
	File string

	// Indent for JSON. Defaults to two spaces.
	Indent string

	// Query is a jq expression applied before encoding.
	Query string

	Writer io.Writer
}

// Output filters result through opts.Query, encodes it in opts.Format and
// writes it to the destination.
func Output(result any, opts OutputOptions) error {
	if opts.Query != "" {
		filtered, err := Query(result, opts.Query)
		if err != nil {
			return err
		}
		result = filtered
	}

	w, closeFn, err := opts.destination()
	if err != nil {
		return err
	}
	defer closeFn()

	return encode(w, result, opts.Format, opts.Indent)
}

func (o OutputOptions) destination() (io.Writer, func(), error) {
	switch {
	case o.Writer != nil:
		return o.Writer, func() {}, nil
	case o.File != "":
		f, err := os.Create(o.File)
		if err != nil {
			return nil, nil, fmt.Errorf("create %s: %w", o.File, err)
		}
		return f, func() { f.Close() }, nil
	default:
		return os.Stdout, func() {}, nil
	}
}

func encode(w io.Writer, v any, format OutputFormat, indent string) error {
	switch format {
	case FormatYAML, "":
		return encodeYAML(w, v)
	case FormatJSON:
		if indent == "" {
			indent = "  "
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", indent)
		return enc.Encode(v)
	case FormatRaw:
		switch raw := v.(type) {
		case []byte:
			_, err := w.Write(raw)
			return err
		case string:
			_, err := io.WriteString(w, raw)
			return err
		}
		return encodeYAML(w, v)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func encodeYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}
