// Package output encodes build reports as JSON, JSONL or YAML.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format represents output format types.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// ParseFormat maps a flag value to a Format. An empty value means JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "jsonl", "ndjson":
		return FormatJSONL, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// FormatForPath guesses the format from a file extension, falling back to
// JSON.
func FormatForPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FormatJSON
	}
	return f
}

// Lines is implemented by reports that have a record-per-line form. JSONL
// output writes each element on its own line; other values become a single
// line.
type Lines interface {
	Lines() []any
}

// Option configures encoding.
type Option func(*encodeConfig)

type encodeConfig struct {
	indent string
}

// WithIndent sets the JSON indentation. An empty indent writes compact JSON.
func WithIndent(indent string) Option {
	return func(c *encodeConfig) {
		c.indent = indent
	}
}

// Encode writes v to w in the given format.
func Encode(w io.Writer, format Format, v any, opts ...Option) error {
	cfg := &encodeConfig{indent: "  "}
	for _, opt := range opts {
		opt(cfg)
	}

	bw := bufio.NewWriter(w)
	var err error
	switch format {
	case FormatJSON:
		err = encodeJSON(bw, v, cfg.indent)
	case FormatJSONL:
		err = encodeJSONL(bw, v)
	case FormatYAML:
		err = encodeYAML(bw, v)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile encodes v into path, creating or truncating it.
func WriteFile(path string, format Format, v any, opts ...Option) (err error) {
	f, err := os.Create(path) //#nosec G304 -- CLI tool writes to user-specified report file
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, format, v, opts...)
}
