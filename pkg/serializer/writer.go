// Package serializer renders command output in the formats the CLI and the
// HTTP surface share.
package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// IsUnknown reports whether the format is not one of the supported values.
func (f Format) IsUnknown() bool {
	return f != FormatJSON && f != FormatYAML
}

// Writer serializes values to one destination in one format.
type Writer struct {
	format Format
	out    io.Writer
	closer io.Closer
}

// NewWriter returns a writer for the given format and destination. Unknown
// formats fall back to JSON; a nil destination falls back to stdout.
func NewWriter(format Format, out io.Writer) *Writer {
	if format != FormatJSON && format != FormatYAML {
		format = FormatJSON
	}
	if out == nil {
		out = os.Stdout
	}
	return &Writer{format: format, out: out}
}

// NewStdoutWriter returns a writer targeting stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

// NewFileWriterOrStdout returns a writer targeting path, or stdout when
// path is empty or "-".
func NewFileWriterOrStdout(format Format, path string) (*Writer, error) {
	if path == "" || path == "-" {
		return NewStdoutWriter(format), nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}
	w := NewWriter(format, f)
	w.closer = f
	return w, nil
}

// Serialize encodes one value to the destination.
func (w *Writer) Serialize(v any) error {
	switch w.format {
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to serialize to yaml: %w", err)
		}
		_, err = w.out.Write(data)
		return err
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize to json: %w", err)
		}
		data = append(data, '\n')
		_, err = w.out.Write(data)
		return err
	}
}

// Close releases the underlying file when the writer owns one.
func (w *Writer) Close() error {
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
