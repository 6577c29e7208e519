package parser

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/gradex-go/pkg/gradex/models"
)

func dataRow(num int, cells ...string) SheetRow {
	return SheetRow{Num: num, Cells: cells}
}

func TestBuildRecordFirstSubjectOnly(t *testing.T) {
	row := dataRow(4, "100200300.0", "55.0", "Ali", "5A", "Good", "A", "B", "C", "D", "E")

	res := BuildRecord(row, "GRADE 5", DefaultLayout())
	require.True(t, res.OK())
	assert.Equal(t, "55_100200300", res.Entry.Key())
	assert.Equal(t, "GRADE 5", res.Entry.Sheet)

	rec := res.Entry.Record
	assert.Equal(t, "Ali", rec.StudentName)
	assert.Equal(t, "5A", rec.ClassName)
	assert.Equal(t, "Good", rec.GeneralBehavior)
	require.Len(t, rec.Grades, 1)

	block, ok := rec.Grades.Get("islamic_education")
	require.True(t, ok)
	assert.Equal(t, models.SubjectBlock{
		FormativeExam:  "A",
		AcademicLevel:  "B",
		Participation:  "C",
		DoingTasks:     "D",
		AttendingBooks: "E",
	}, block)
}

func TestBuildRecordTrimsFields(t *testing.T) {
	row := dataRow(4, " 42 ", "3", "  Sara  ", " 6B", "Excellent ", " 90 ", "", "", "", "")

	res := BuildRecord(row, "GRADE 6", DefaultLayout())
	require.True(t, res.OK())
	assert.Equal(t, "3_42", res.Entry.Key())
	assert.Equal(t, "Sara", res.Entry.Record.StudentName)
	assert.Equal(t, "6B", res.Entry.Record.ClassName)
	assert.Equal(t, "Excellent", res.Entry.Record.GeneralBehavior)

	block, ok := res.Entry.Record.Grades.Get("islamic_education")
	require.True(t, ok)
	assert.Equal(t, [models.SubjectFieldCount]string{"90", "N/A", "N/A", "N/A", "N/A"}, block.Values())
}

func TestBuildRecordSkips(t *testing.T) {
	tests := []struct {
		name string
		row  SheetRow
		skip SkipReason
	}{
		{"non-numeric student id", dataRow(4, "123", "abc", "Ali"), SkipStudentID},
		{"blank student id", dataRow(4, "123", "", "Ali"), SkipStudentID},
		{"error student id", dataRow(4, "123", "#REF!", "Ali"), SkipStudentID},
		{"blank national id", dataRow(4, "", "7", "Ali"), SkipNationalID},
		{"whitespace national id", dataRow(4, "   ", "7", "Ali"), SkipNationalID},
		{"nan national id", dataRow(4, "nan", "7", "Ali"), SkipNationalID},
		{"short row", dataRow(4), SkipStudentID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := BuildRecord(tt.row, "GRADE 5", DefaultLayout())
			assert.False(t, res.OK())
			assert.NoError(t, res.Err)
			assert.Equal(t, tt.skip, res.Skip)
			assert.Equal(t, 4, res.Row)
		})
	}
}

func TestBuildRecordMalformedRow(t *testing.T) {
	row := SheetRow{Num: 9, Err: ErrMalformedRow}

	res := BuildRecord(row, "GRADE 5", DefaultLayout())
	assert.False(t, res.OK())
	assert.True(t, errors.Is(res.Err, ErrMalformedRow))
	assert.Equal(t, 9, res.Row)
}

func TestBuildRecordPartialRow(t *testing.T) {
	// Five fixed columns plus seven grade columns: only the first subject is complete.
	row := dataRow(4, "1", "2", "Omar", "7C", "Good",
		"A", "A", "A", "A", "A",
		"B", "B")

	res := BuildRecord(row, "GRADE 7", DefaultLayout())
	require.True(t, res.OK())
	assert.Equal(t, []string{"islamic_education"}, res.Entry.Record.Grades.Subjects())
}

func TestBuildRecordSkipsEmptySubjects(t *testing.T) {
	layout := DefaultLayout()
	cells := make([]string, layout.Width())
	copy(cells, []string{"1", "2", "Mona", "8A", "Good"})
	// arabic_language and science only
	cells[layout.SubjectStart(1)+2] = "B"
	cells[layout.SubjectStart(5)] = "95"

	res := BuildRecord(dataRow(4, cells...), "GRADE 8", layout)
	require.True(t, res.OK())
	assert.Equal(t, []string{"arabic_language", "science"}, res.Entry.Record.Grades.Subjects())

	for _, sg := range res.Entry.Record.Grades {
		assert.True(t, sg.Block.HasData(), sg.Subject)
	}
}

func TestBuildRecordMissingTextFields(t *testing.T) {
	res := BuildRecord(dataRow(4, "1", "2"), "GRADE 5", DefaultLayout())
	require.True(t, res.OK())
	assert.Empty(t, res.Entry.Record.StudentName)
	assert.Empty(t, res.Entry.Record.ClassName)
	assert.Empty(t, res.Entry.Record.GeneralBehavior)
	assert.NotNil(t, res.Entry.Record.Grades)
	assert.Empty(t, res.Entry.Record.Grades)
}

func TestExtractRowsSkipsHeader(t *testing.T) {
	rows := []SheetRow{
		dataRow(1, "national", "student"),
		dataRow(2, "1", "1"),
		dataRow(3, "2", "2"),
		dataRow(4, "3", "3", "Ali"),
		dataRow(5, "4", "x"),
	}

	results := ExtractRows(rows, "GRADE 5", DefaultLayout())
	require.Len(t, results, 2)
	assert.True(t, results[0].OK())
	assert.Equal(t, "3_3", results[0].Entry.Key())
	assert.Equal(t, SkipStudentID, results[1].Skip)
	assert.Equal(t, 5, results[1].Row)
}

func TestLayoutValidate(t *testing.T) {
	require.NoError(t, DefaultLayout().Validate())
	assert.Equal(t, 65, DefaultLayout().Width())

	tests := []struct {
		name   string
		mutate func(*Layout)
	}{
		{"negative header", func(l *Layout) { l.HeaderRows = -1 }},
		{"wrong block width", func(l *Layout) { l.SubColumns = 4 }},
		{"fixed column in grades", func(l *Layout) { l.BehaviorCol = 5 }},
		{"shared column", func(l *Layout) { l.ClassCol = l.NameCol }},
		{"no subjects", func(l *Layout) { l.Subjects = nil }},
		{"empty code", func(l *Layout) { l.Subjects[3].Code = "" }},
		{"duplicate code", func(l *Layout) { l.Subjects[1].Code = l.Subjects[0].Code }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := DefaultLayout()
			tt.mutate(&layout)
			assert.ErrorIs(t, layout.Validate(), ErrInvalidLayout)
		})
	}
}
