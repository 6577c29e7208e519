// Package models defines data structures for student grade extraction.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// NotAvailable marks a sub-score whose cell was blank.
const NotAvailable = "N/A"

// SubjectFieldCount is the number of sub-score columns per subject.
const SubjectFieldCount = 5

// SubjectBlock holds the five sub-scores of one subject.
type SubjectBlock struct {
	// FormativeExam is the formative exam result.
	FormativeExam string `json:"formative_exam"`
	// AcademicLevel is the academic level rating.
	AcademicLevel string `json:"academic_level"`
	// Participation is the class participation rating.
	Participation string `json:"participation"`
	// DoingTasks is the homework and task completion rating.
	DoingTasks string `json:"doing_tasks"`
	// AttendingBooks is the rating for bringing books to class.
	AttendingBooks string `json:"attending_books"`
}

// NewSubjectBlock builds a block from values given in column order.
func NewSubjectBlock(values [SubjectFieldCount]string) SubjectBlock {
	return SubjectBlock{
		FormativeExam:  values[0],
		AcademicLevel:  values[1],
		Participation:  values[2],
		DoingTasks:     values[3],
		AttendingBooks: values[4],
	}
}

// Values returns the sub-scores in column order.
func (b SubjectBlock) Values() [SubjectFieldCount]string {
	return [SubjectFieldCount]string{
		b.FormativeExam,
		b.AcademicLevel,
		b.Participation,
		b.DoingTasks,
		b.AttendingBooks,
	}
}

// HasData reports whether at least one sub-score is not NotAvailable.
func (b SubjectBlock) HasData() bool {
	for _, v := range b.Values() {
		if v != NotAvailable {
			return true
		}
	}
	return false
}

// SubjectGrades pairs a subject code with its block.
type SubjectGrades struct {
	Subject string
	Block   SubjectBlock
}

// Grades is an ordered mapping of subject code to SubjectBlock.
// It serializes as a JSON object whose keys keep slice order.
type Grades []SubjectGrades

// Get returns the block for subject.
func (g Grades) Get(subject string) (SubjectBlock, bool) {
	for _, sg := range g {
		if sg.Subject == subject {
			return sg.Block, true
		}
	}
	return SubjectBlock{}, false
}

// Subjects returns the subject codes in order.
func (g Grades) Subjects() []string {
	out := make([]string, 0, len(g))
	for _, sg := range g {
		out = append(out, sg.Subject)
	}
	return out
}

// MarshalJSON encodes the grades as an object in slice order.
func (g Grades) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, sg := range g {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalLiteral(sg.Subject)
		if err != nil {
			return nil, err
		}
		val, err := marshalLiteral(sg.Block)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object, keeping key order.
func (g *Grades) UnmarshalJSON(data []byte) error {
	out := Grades{}
	err := decodeObject(data, func(key string, dec *json.Decoder) error {
		var block SubjectBlock
		if err := dec.Decode(&block); err != nil {
			return fmt.Errorf("subject %q: %w", key, err)
		}
		out = append(out, SubjectGrades{Subject: key, Block: block})
		return nil
	})
	if err != nil {
		return err
	}
	*g = out
	return nil
}

// StudentRecord is the normalized record of one student row.
// A blank name, class or behavior cell is written as "", never as "nan".
type StudentRecord struct {
	// StudentName is the trimmed student name.
	StudentName string `json:"student_name"`
	// ClassName is the trimmed class name (e.g. "5A").
	ClassName string `json:"class_name"`
	// GeneralBehavior is the trimmed general behavior note.
	GeneralBehavior string `json:"general_behavior"`
	// Grades maps subject code to its sub-scores; only subjects with data are present.
	Grades Grades `json:"grades"`
}

// CompositeKey joins the two identifiers into the lookup key.
func CompositeKey(studentID, nationalID string) string {
	return studentID + "_" + nationalID
}

// SplitKey reverses CompositeKey. Student ids never contain an underscore,
// so the key is split at the first one.
func SplitKey(key string) (studentID, nationalID string, ok bool) {
	studentID, nationalID, ok = strings.Cut(key, "_")
	if !ok || studentID == "" || nationalID == "" {
		return "", "", false
	}
	return studentID, nationalID, true
}

// marshalLiteral encodes v without HTML escaping so values such as "<" or "&"
// are written as-is.
func marshalLiteral(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// decodeObject walks the members of a JSON object in document order.
// A null document has no members.
func decodeObject(data []byte, member func(key string, dec *json.Decoder) error) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		if err := member(key, dec); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}
