// Package parser reads grade sheets and turns their rows into student records.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrSheetNotFound indicates a configured sheet is missing from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ErrMalformedRow indicates a row whose cells could not be decoded.
var ErrMalformedRow = errors.New("malformed row")

// RowIterator walks the rows of one sheet. *excelize.Rows satisfies it.
type RowIterator interface {
	Next() bool
	Columns(opts ...excelize.Options) ([]string, error)
	Close() error
}

// Book is a workbook whose sheets can be read row by row.
type Book interface {
	SheetRows(sheet string) (RowIterator, error)
	Close() error
}

// ExcelBook adapts an *excelize.File to Book.
type ExcelBook struct {
	f *excelize.File
}

// OpenBook opens the xlsx file at path.
func OpenBook(path string) (*ExcelBook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &ExcelBook{f: f}, nil
}

// NewExcelBook wraps an already open workbook.
func NewExcelBook(f *excelize.File) *ExcelBook {
	return &ExcelBook{f: f}
}

// SheetRows returns a row iterator for sheet.
func (b *ExcelBook) SheetRows(sheet string) (RowIterator, error) {
	rows, err := b.f.Rows(sheet)
	if err != nil {
		var missing excelize.ErrSheetNotExist
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, sheet)
		}
		return nil, err
	}
	return rows, nil
}

// Close releases the workbook.
func (b *ExcelBook) Close() error {
	return b.f.Close()
}

// SheetRow is one raw row of a sheet.
type SheetRow struct {
	// Num is the 1-based row number in the sheet.
	Num int
	// Cells holds the raw cell values, padded with blanks to the sheet width.
	Cells []string
	// Err is set when the row could not be decoded.
	Err error
}

// ReadSheet reads every row of sheet. Cell values are read raw, without
// number formatting, so numeric ids keep their stored digits. Every decoded
// row is padded to the width of the widest row, header rows included, so the
// result is a rectangular grid.
func ReadSheet(book Book, sheet string) ([]SheetRow, error) {
	rows, err := book.SheetRows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SheetRow
	rowNum, width := 0, 0
	for rows.Next() {
		rowNum++
		cells, err := rows.Columns(excelize.Options{RawCellValue: true})
		if err != nil {
			result = append(result, SheetRow{Num: rowNum, Err: fmt.Errorf("%w: %v", ErrMalformedRow, err)})
			continue
		}
		width = max(width, len(cells))
		result = append(result, SheetRow{Num: rowNum, Cells: cells})
	}

	for i := range result {
		if result[i].Err == nil {
			result[i].Cells = padCells(result[i].Cells, width)
		}
	}
	return result, nil
}

// padCells extends a row that excelize trimmed of trailing blanks back to width.
func padCells(cells []string, width int) []string {
	if len(cells) >= width {
		return cells
	}
	padded := make([]string, width)
	copy(padded, cells)
	return padded
}

// excelErrors are the literal values Excel stores for formula errors.
var excelErrors = map[string]bool{
	"#NULL!":  true,
	"#DIV/0!": true,
	"#VALUE!": true,
	"#REF!":   true,
	"#NAME?":  true,
	"#NUM!":   true,
	"#N/A":    true,
	"#SPILL!": true,
	"#CALC!":  true,
}

// cellAt returns the raw value at idx and whether the cell holds a value.
// Blank cells, cells past the end of the row and formula errors count as missing.
func cellAt(row []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(row) {
		return "", false
	}
	v := row[idx]
	if v == "" || excelErrors[v] {
		return "", false
	}
	return v, true
}

// cellText returns the trimmed value at idx, or "" when missing.
func cellText(row []string, idx int) string {
	v, _ := cellAt(row, idx)
	return strings.TrimSpace(v)
}
