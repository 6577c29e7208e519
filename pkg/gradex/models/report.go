package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one record in a Report together with where it came from.
type Entry struct {
	// StudentID is the normalized student identifier.
	StudentID string
	// NationalID is the normalized national identifier.
	NationalID string
	// Sheet is the worksheet the record was read from (empty when decoded from JSON).
	Sheet string
	// Record is the student record.
	Record StudentRecord
}

// Key returns the composite key of the entry.
func (e Entry) Key() string {
	return CompositeKey(e.StudentID, e.NationalID)
}

// Report maps composite keys to student records.
// Keys keep their first-insertion order; a later Put with the same key
// replaces the record in place.
type Report struct {
	keys    []string
	entries map[string]Entry
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{entries: make(map[string]Entry)}
}

// Put stores e under its key and reports whether an earlier entry was replaced.
func (r *Report) Put(e Entry) bool {
	if r.entries == nil {
		r.entries = make(map[string]Entry)
	}
	key := e.Key()
	_, replaced := r.entries[key]
	if !replaced {
		r.keys = append(r.keys, key)
	}
	r.entries[key] = e
	return replaced
}

// Get returns the record stored under key.
func (r *Report) Get(key string) (StudentRecord, bool) {
	e, ok := r.entries[key]
	return e.Record, ok
}

// Entry returns the full entry stored under key.
func (r *Report) Entry(key string) (Entry, bool) {
	e, ok := r.entries[key]
	return e, ok
}

// Keys returns the keys in insertion order.
func (r *Report) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of records.
func (r *Report) Len() int {
	return len(r.keys)
}

// MarshalJSON encodes the report as a single object keyed by composite key.
func (r *Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := marshalLiteral(key)
		if err != nil {
			return nil, err
		}
		v, err := marshalLiteral(r.entries[key].Record)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a report object. Keys that do not split into the
// two identifiers are rejected.
func (r *Report) UnmarshalJSON(data []byte) error {
	out := NewReport()
	err := decodeObject(data, func(key string, dec *json.Decoder) error {
		studentID, nationalID, ok := SplitKey(key)
		if !ok {
			return fmt.Errorf("invalid composite key %q", key)
		}
		var rec StudentRecord
		if err := dec.Decode(&rec); err != nil {
			return fmt.Errorf("record %q: %w", key, err)
		}
		if rec.Grades == nil {
			rec.Grades = Grades{}
		}
		out.Put(Entry{StudentID: studentID, NationalID: nationalID, Record: rec})
		return nil
	})
	if err != nil {
		return err
	}
	*r = *out
	return nil
}
