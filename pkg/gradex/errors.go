package gradex

import (
	"errors"
	"fmt"

	"github.com/ukaji3/gradex-go/pkg/gradex/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrSheetNotFound indicates a configured sheet is missing from the workbook.
var ErrSheetNotFound = parser.ErrSheetNotFound

// ErrMalformedRow indicates a row whose cells could not be decoded.
var ErrMalformedRow = parser.ErrMalformedRow

// ErrInvalidLayout indicates a column layout that cannot be applied.
var ErrInvalidLayout = parser.ErrInvalidLayout

// ExtractionError represents a recoverable error in one sheet or row.
type ExtractionError struct {
	SheetName string
	Row       int // 1-based sheet row; 0 for sheet-level errors
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("extraction error in sheet %q: %v", e.SheetName, e.Err)
	}
	return fmt.Sprintf("extraction error in sheet %q row %d: %v", e.SheetName, e.Row, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName string, row int, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Row:       row,
		Err:       err,
	}
}
