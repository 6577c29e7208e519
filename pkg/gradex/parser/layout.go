package parser

import (
	"errors"
	"fmt"

	"github.com/ukaji3/gradex-go/pkg/gradex/models"
)

// ErrInvalidLayout indicates a column layout that cannot be applied to a row.
var ErrInvalidLayout = errors.New("invalid column layout")

// Subject names one subject block of the grade region.
type Subject struct {
	// Code is the key used in the output grades object.
	Code string `json:"code" yaml:"code" mapstructure:"code"`
	// Label is the column caption in the workbook. Informational only.
	Label string `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
}

// Layout describes where each field lives in a sheet row (0-based columns).
type Layout struct {
	// HeaderRows is the number of leading rows that never hold student data.
	HeaderRows int `json:"header_rows" yaml:"header_rows" mapstructure:"header_rows"`
	// NationalIDCol holds the national identifier.
	NationalIDCol int `json:"national_id_col" yaml:"national_id_col" mapstructure:"national_id_col"`
	// StudentIDCol holds the student identifier.
	StudentIDCol int `json:"student_id_col" yaml:"student_id_col" mapstructure:"student_id_col"`
	NameCol      int `json:"name_col" yaml:"name_col" mapstructure:"name_col"`
	ClassCol     int `json:"class_col" yaml:"class_col" mapstructure:"class_col"`
	BehaviorCol  int `json:"behavior_col" yaml:"behavior_col" mapstructure:"behavior_col"`
	// GradesStartCol is the first column of the first subject block.
	GradesStartCol int `json:"grades_start_col" yaml:"grades_start_col" mapstructure:"grades_start_col"`
	// SubColumns is the width of one subject block.
	SubColumns int `json:"sub_columns" yaml:"sub_columns" mapstructure:"sub_columns"`
	// Subjects lists the subject blocks in column order.
	Subjects []Subject `json:"subjects" yaml:"subjects" mapstructure:"subjects"`
}

// DefaultSubjects returns the twelve subjects of the monthly report workbook.
func DefaultSubjects() []Subject {
	return []Subject{
		{Code: "islamic_education", Label: "التربية الإسلامية"},
		{Code: "arabic_language", Label: "اللغة العربية"},
		{Code: "english_language", Label: "اللغة الانجليزية"},
		{Code: "social_studies", Label: "الدراسات الاجتماعية"},
		{Code: "mathematics", Label: "الرياضيات"},
		{Code: "science", Label: "العلوم"},
		{Code: "physical_education", Label: "التربية البدنية"},
		{Code: "arts", Label: "الفنون"},
		{Code: "music", Label: "الموسيقى"},
		{Code: "design_technology", Label: "التصميم والتكنولوجيا"},
		{Code: "french_language", Label: "اللغة الفرنسية"},
		{Code: "german_language", Label: "اللغة الألمانية"},
	}
}

// DefaultLayout returns the layout of the monthly report workbook.
func DefaultLayout() Layout {
	return Layout{
		HeaderRows:     3,
		NationalIDCol:  0,
		StudentIDCol:   1,
		NameCol:        2,
		ClassCol:       3,
		BehaviorCol:    4,
		GradesStartCol: 5,
		SubColumns:     models.SubjectFieldCount,
		Subjects:       DefaultSubjects(),
	}
}

// Validate checks that the layout is self-consistent.
func (l Layout) Validate() error {
	if l.HeaderRows < 0 {
		return fmt.Errorf("%w: header_rows must not be negative", ErrInvalidLayout)
	}
	if l.SubColumns != models.SubjectFieldCount {
		return fmt.Errorf("%w: sub_columns must be %d, got %d", ErrInvalidLayout, models.SubjectFieldCount, l.SubColumns)
	}

	fixed := []struct {
		name string
		col  int
	}{
		{"national_id_col", l.NationalIDCol},
		{"student_id_col", l.StudentIDCol},
		{"name_col", l.NameCol},
		{"class_col", l.ClassCol},
		{"behavior_col", l.BehaviorCol},
	}
	used := make(map[int]string, len(fixed))
	for _, f := range fixed {
		if f.col < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidLayout, f.name)
		}
		if f.col >= l.GradesStartCol {
			return fmt.Errorf("%w: %s (%d) overlaps the grade columns starting at %d", ErrInvalidLayout, f.name, f.col, l.GradesStartCol)
		}
		if other, dup := used[f.col]; dup {
			return fmt.Errorf("%w: %s and %s share column %d", ErrInvalidLayout, other, f.name, f.col)
		}
		used[f.col] = f.name
	}

	if len(l.Subjects) == 0 {
		return fmt.Errorf("%w: no subjects configured", ErrInvalidLayout)
	}
	seen := make(map[string]bool, len(l.Subjects))
	for i, s := range l.Subjects {
		if s.Code == "" {
			return fmt.Errorf("%w: subject %d has an empty code", ErrInvalidLayout, i+1)
		}
		if seen[s.Code] {
			return fmt.Errorf("%w: duplicate subject code %q", ErrInvalidLayout, s.Code)
		}
		seen[s.Code] = true
	}
	return nil
}

// SubjectStart returns the first column of the i-th subject block.
func (l Layout) SubjectStart(i int) int {
	return l.GradesStartCol + i*l.SubColumns
}

// Width returns the number of columns a fully populated row spans.
func (l Layout) Width() int {
	return l.SubjectStart(len(l.Subjects))
}
