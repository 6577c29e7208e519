package gradex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ukaji3/gradex-go/pkg/gradex/models"
	"github.com/ukaji3/gradex-go/pkg/gradex/parser"
)

// SheetSummary holds the counters of one processed sheet.
type SheetSummary struct {
	// Name is the sheet name.
	Name string
	// Region is the data range below the header rows (e.g. "A4:BM40"), empty if none.
	Region string
	// Rows is the number of data rows scanned.
	Rows int
	// Records is the number of rows that produced a record.
	Records int
	// Skipped is the number of rows dropped for missing identifiers.
	Skipped int
	// Failed is the number of rows that could not be processed.
	Failed int
	// Err is set when the whole sheet was skipped.
	Err error
}

// Result is the outcome of one extraction run.
type Result struct {
	// Report holds the extracted records keyed by composite key.
	Report *models.Report
	// Sheets holds one summary per configured sheet, in order.
	Sheets []SheetSummary
	// Errors lists every recoverable sheet and row error.
	Errors []*ExtractionError
	// Replaced counts records overwritten by a later row with the same key.
	Replaced int
}

// SubjectStats returns the mean and median number of subjects per record.
func (r *Result) SubjectStats() (mean, median float64) {
	if r.Report == nil || r.Report.Len() == 0 {
		return 0, 0
	}
	counts := make(stats.Float64Data, 0, r.Report.Len())
	for _, key := range r.Report.Keys() {
		rec, _ := r.Report.Get(key)
		counts = append(counts, float64(len(rec.Grades)))
	}
	mean, _ = counts.Mean()
	median, _ = counts.Median()
	return mean, median
}

// Extract reads the workbook at opts.InputPath and extracts every configured sheet.
// A missing or unreadable workbook is fatal; sheet and row problems are
// collected in the result and never abort the run.
func Extract(opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if _, err := os.Stat(opts.InputPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, opts.InputPath)
		}
		return nil, err
	}

	book, err := parser.OpenBook(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, opts.InputPath, err)
	}
	defer book.Close()

	opts.logger().Info().Str("input", opts.InputPath).Msg("Processing workbook")
	return ExtractBook(book, opts)
}

// ExtractBook extracts every configured sheet of an open workbook, in order.
func ExtractBook(book parser.Book, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logger := opts.logger()
	res := &Result{Report: models.NewReport()}
	for _, sheet := range opts.Sheets {
		res.Sheets = append(res.Sheets, res.extractSheet(book, sheet, opts.Layout, logger))
	}
	return res, nil
}

func (r *Result) extractSheet(book parser.Book, sheet string, layout parser.Layout, logger *zerolog.Logger) SheetSummary {
	summary := SheetSummary{Name: sheet}

	rows, err := parser.ReadSheet(book, sheet)
	if err != nil {
		summary.Err = err
		r.Errors = append(r.Errors, NewExtractionError(sheet, 0, err))
		logger.Error().Err(err).Str("sheet", sheet).Msg("Skipping sheet")
		return summary
	}

	if region, ok := parser.DataRegion(rows, layout.HeaderRows); ok {
		summary.Region = region.String()
	}
	logger.Info().Str("sheet", sheet).Str("region", summary.Region).Msg("Processing sheet")

	for _, row := range parser.ExtractRows(rows, sheet, layout) {
		summary.Rows++
		switch {
		case row.Err != nil:
			summary.Failed++
			r.Errors = append(r.Errors, NewExtractionError(sheet, row.Row, row.Err))
			logger.Warn().Err(row.Err).Str("sheet", sheet).Int("row", row.Row).Msg("Skipping row")
		case row.Skip != parser.SkipNone:
			summary.Skipped++
			logger.Debug().Str("sheet", sheet).Int("row", row.Row).Str("reason", string(row.Skip)).Msg("Skipping row")
		default:
			summary.Records++
			if r.Report.Put(row.Entry) {
				r.Replaced++
				logger.Debug().Str("sheet", sheet).Int("row", row.Row).Str("key", row.Entry.Key()).Msg("Replacing earlier record")
			}
		}
	}

	logger.Info().
		Str("sheet", sheet).
		Int("records", summary.Records).
		Int("skipped", summary.Skipped).
		Int("failed", summary.Failed).
		Msg("Finished sheet")
	return summary
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return &log.Logger
}
