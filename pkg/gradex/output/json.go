// Package output serializes grade reports to JSON.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ukaji3/gradex-go/pkg/gradex/models"
)

// Indent is the per-level indentation of pretty output.
const Indent = "    "

// ToJSON serializes a report. Non-ASCII text is written as UTF-8, not escaped.
func ToJSON(report *models.Report, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", Indent)
	}
	if err := enc.Encode(report); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes the report to path.
func WriteFile(path string, report *models.Report, pretty bool) error {
	data, err := ToJSON(report, pretty)
	if err != nil {
		return fmt.Errorf("serializing report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadFile parses a report written by WriteFile.
func ReadFile(path string) (*models.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	report := models.NewReport()
	if err := json.Unmarshal(data, report); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return report, nil
}
