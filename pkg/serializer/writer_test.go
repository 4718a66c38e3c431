package serializer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

type sample struct {
	Name  string   `json:"name" yaml:"name"`
	Ports []string `json:"ports" yaml:"ports"`
}

func TestFormatIsUnknown(t *testing.T) {
	tests := []struct {
		format Format
		want   bool
	}{
		{FormatJSON, false},
		{FormatYAML, false},
		{Format("table"), true},
		{Format(""), true},
	}
	for _, tt := range tests {
		if got := tt.format.IsUnknown(); got != tt.want {
			t.Errorf("Format(%q).IsUnknown() = %v, want %v", tt.format, got, tt.want)
		}
	}
}

func TestSerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)
	if err := w.Serialize(sample{Name: "web", Ports: []string{"80"}}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var got sample
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output not valid json: %v", err)
	}
	if got.Name != "web" || len(got.Ports) != 1 {
		t.Errorf("round trip = %+v", got)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("json output should end with a newline")
	}
}

func TestSerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)
	if err := w.Serialize(sample{Name: "web"}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var got sample
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output not valid yaml: %v", err)
	}
	if got.Name != "web" {
		t.Errorf("round trip = %+v", got)
	}
}

func TestUnknownFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("table"), &buf)
	if err := w.Serialize(sample{Name: "web"}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Error("fallback output is not json")
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	// Empty and "-" both target stdout and need no Close bookkeeping.
	for _, path := range []string{"", "-"} {
		w, err := NewFileWriterOrStdout(FormatJSON, path)
		if err != nil {
			t.Fatalf("NewFileWriterOrStdout(%q) error = %v", path, err)
		}
		if err := w.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}

	path := t.TempDir() + "/out.json"
	w, err := NewFileWriterOrStdout(FormatJSON, path)
	if err != nil {
		t.Fatalf("NewFileWriterOrStdout() error = %v", err)
	}
	if err := w.Serialize(sample{Name: "x"}); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}
