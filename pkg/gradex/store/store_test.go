package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/gradex-go/pkg/gradex/models"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(filepath.Join(t.TempDir(), "index", "grades.db"))
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func testReport() *models.Report {
	r := models.NewReport()
	r.Put(models.Entry{
		StudentID:  "55",
		NationalID: "100200300",
		Sheet:      "GRADE 5",
		Record: models.StudentRecord{
			StudentName: "Ali",
			ClassName:   "5A",
			Grades: models.Grades{{
				Subject: "mathematics",
				Block:   models.NewSubjectBlock([models.SubjectFieldCount]string{"95", "A", "N/A", "N/A", "N/A"}),
			}},
		},
	})
	r.Put(models.Entry{StudentID: "7", NationalID: "42", Sheet: "GRADE 6", Record: models.StudentRecord{Grades: models.Grades{}}})
	return r
}

func TestSaveAndLookup(t *testing.T) {
	ctx := context.Background()
	idx := testIndex(t)

	run := Run{ID: uuid.NewString(), Source: "monthly.xlsx", CreatedAt: time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)}
	require.NoError(t, idx.Save(ctx, run, testReport()))

	n, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	e, err := idx.Lookup(ctx, "55", "100200300")
	require.NoError(t, err)
	assert.Equal(t, "GRADE 5", e.Sheet)
	assert.Equal(t, "Ali", e.Record.StudentName)
	block, ok := e.Record.Grades.Get("mathematics")
	require.True(t, ok)
	assert.Equal(t, "95", block.FormativeExam)

	_, err = idx.Lookup(ctx, "55", "999")
	assert.ErrorIs(t, err, ErrNotFound)

	last, err := idx.LastRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, run.ID, last.ID)
	assert.Equal(t, 2, last.Records)
	assert.True(t, run.CreatedAt.Equal(last.CreatedAt))
}

func TestSaveReplacesPreviousRecords(t *testing.T) {
	ctx := context.Background()
	idx := testIndex(t)

	require.NoError(t, idx.Save(ctx, Run{ID: uuid.NewString(), Source: "a.xlsx"}, testReport()))

	next := models.NewReport()
	next.Put(models.Entry{StudentID: "1", NationalID: "2", Record: models.StudentRecord{Grades: models.Grades{}}})
	require.NoError(t, idx.Save(ctx, Run{ID: uuid.NewString(), Source: "b.xlsx"}, next))

	n, err := idx.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = idx.Lookup(ctx, "55", "100200300")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLastRunEmpty(t *testing.T) {
	_, err := testIndex(t).LastRun(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}
