// Package gradex extracts student grade records from the monthly report workbook.
package gradex

import (
	"github.com/rs/zerolog"

	"github.com/ukaji3/gradex-go/pkg/gradex/parser"
)

const (
	// DefaultInputPath is the workbook read when no input is configured.
	DefaultInputPath = "التقريرالشهرى.xlsx"
	// DefaultOutputPath is the JSON report written when no output is configured.
	DefaultOutputPath = "report_data_corrected.json"
)

// DefaultSheets returns the grade-level sheets read by default, in order.
func DefaultSheets() []string {
	return []string{"GRADE 5", "GRADE 6", "GRADE 7", "GRADE 8"}
}

// Options configures extraction behavior.
type Options struct {
	// InputPath is the xlsx workbook to read.
	InputPath string `json:"input" yaml:"input" mapstructure:"input"`
	// OutputPath is the JSON report to write.
	OutputPath string `json:"output" yaml:"output" mapstructure:"output"`
	// Sheets lists the sheets to read. Later sheets win on duplicate keys.
	Sheets []string `json:"sheets" yaml:"sheets" mapstructure:"sheets"`
	// IndexPath is an optional SQLite lookup index to write. Empty disables it.
	IndexPath string `json:"index,omitempty" yaml:"index,omitempty" mapstructure:"index"`
	// Layout is the column layout shared by every sheet.
	Layout parser.Layout `json:"layout" yaml:"layout" mapstructure:"layout"`
	// Logger receives progress and skip messages. If nil, the global zerolog logger is used.
	Logger *zerolog.Logger `json:"-" yaml:"-" mapstructure:"-"`
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		InputPath:  DefaultInputPath,
		OutputPath: DefaultOutputPath,
		Sheets:     DefaultSheets(),
		Layout:     parser.DefaultLayout(),
	}
}

// Validate checks the options before any file is touched.
func (o Options) Validate() error {
	return o.Layout.Validate()
}
