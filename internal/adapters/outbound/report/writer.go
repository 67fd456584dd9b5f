// Package report persists the gate's JSON documents.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// JSONWriter implements domain.ReportWriter and domain.ReportReader. Its
// write failures are the only adapter failures that abort a run.
type JSONWriter struct{}

func NewJSONWriter() *JSONWriter { return &JSONWriter{} }

// Write encodes v with two-space indentation, creating parent directories.
func (w *JSONWriter) Write(path string, v any) error {
	if path == "" {
		return fmt.Errorf("writing report: no output path")
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

func (w *JSONWriter) Read(path string, v any) error { return ReadJSON(path, v) }

// ReadJSON decodes a report previously written by Write.
func ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
