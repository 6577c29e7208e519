package parser

import (
	"strings"

	"github.com/ukaji3/gradex-go/pkg/gradex/models"
)

// SkipReason explains why a row produced no record.
type SkipReason string

const (
	// SkipNone means the row produced a record.
	SkipNone SkipReason = ""
	// SkipStudentID means the student id was blank or not numeric.
	SkipStudentID SkipReason = "missing or non-numeric student id"
	// SkipNationalID means the national id was blank or "nan".
	SkipNationalID SkipReason = "missing national id"
)

// RowResult is the outcome of reading one sheet row: a record, a skip, or an error.
type RowResult struct {
	// Row is the 1-based sheet row number.
	Row int
	// Entry holds the record when the row was accepted.
	Entry models.Entry
	// Skip is set when the row was dropped for missing identifiers.
	Skip SkipReason
	// Err is set when the row could not be processed.
	Err error
}

// OK reports whether the row produced a record.
func (r RowResult) OK() bool {
	return r.Err == nil && r.Skip == SkipNone
}

// BuildRecord turns one data row into a record according to layout.
func BuildRecord(row SheetRow, sheet string, layout Layout) RowResult {
	res := RowResult{Row: row.Num}
	if row.Err != nil {
		res.Err = row.Err
		return res
	}
	cells := row.Cells

	rawStudent, _ := cellAt(cells, layout.StudentIDCol)
	studentID, ok := NormalizeStudentID(rawStudent)
	if !ok {
		res.Skip = SkipStudentID
		return res
	}

	rawNational, _ := cellAt(cells, layout.NationalIDCol)
	nationalID := NormalizeNationalID(rawNational)
	if !ValidNationalID(nationalID) {
		res.Skip = SkipNationalID
		return res
	}

	res.Entry = models.Entry{
		StudentID:  studentID,
		NationalID: nationalID,
		Sheet:      sheet,
		Record: models.StudentRecord{
			StudentName:     cellText(cells, layout.NameCol),
			ClassName:       cellText(cells, layout.ClassCol),
			GeneralBehavior: cellText(cells, layout.BehaviorCol),
			Grades:          extractGrades(cells, layout),
		},
	}
	return res
}

// extractGrades walks the subject blocks left to right. A block that runs
// past the end of the row ends the walk; blocks with no data are left out.
func extractGrades(cells []string, layout Layout) models.Grades {
	grades := models.Grades{}
	for i, subject := range layout.Subjects {
		start := layout.SubjectStart(i)
		if start+layout.SubColumns > len(cells) {
			break
		}

		var values [models.SubjectFieldCount]string
		for j := range values {
			v, ok := cellAt(cells, start+j)
			if !ok {
				values[j] = models.NotAvailable
				continue
			}
			values[j] = strings.TrimSpace(v)
		}

		block := models.NewSubjectBlock(values)
		if block.HasData() {
			grades = append(grades, models.SubjectGrades{Subject: subject.Code, Block: block})
		}
	}
	return grades
}

// ExtractRows builds a result for every row below the header region.
func ExtractRows(rows []SheetRow, sheet string, layout Layout) []RowResult {
	var results []RowResult
	for _, row := range rows {
		if row.Num <= layout.HeaderRows {
			continue
		}
		results = append(results, BuildRecord(row, sheet, layout))
	}
	return results
}
