package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	fromIndex = false
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExtractAndLookup(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("LOGLEVEL", "disabled")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "GRADE 5"))
	row := []interface{}{100200300.0, 55.0, "علي", "5A", "جيد", "A", "B", "C", "D", "E"}
	require.NoError(t, f.SetSheetRow("GRADE 5", "A4", &row))
	input := filepath.Join(dir, "monthly.xlsx")
	require.NoError(t, f.SaveAs(input))
	require.NoError(t, f.Close())

	outPath := filepath.Join(dir, "out.json")
	indexPath := filepath.Join(dir, "grades.db")

	_, err := runCLI(t, "extract", "--input", input, "--output", outPath, "--index", indexPath, "--sheets", "GRADE 5,GRADE 6")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"student_name": "علي"`)

	out, err := runCLI(t, "lookup", "55.0", "100200300.0", "--output", outPath)
	require.NoError(t, err)
	var fromJSON map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &fromJSON))
	assert.Equal(t, "5A", fromJSON["55_100200300"]["class_name"])

	out, err = runCLI(t, "lookup", "55", "100200300", "--index", indexPath, "--from-index")
	require.NoError(t, err)
	assert.Contains(t, out, `"general_behavior": "جيد"`)

	_, err = runCLI(t, "lookup", "56", "100200300", "--output", outPath)
	assert.Error(t, err)

	for _, national := range []string{"", "  ", "nan"} {
		_, err = runCLI(t, "lookup", "55", national, "--output", outPath)
		assert.ErrorContains(t, err, "invalid national id", national)
	}
}

func TestExtractMissingWorkbook(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("LOGLEVEL", "disabled")

	outPath := filepath.Join(dir, "out.json")
	_, err := runCLI(t, "--input", filepath.Join(dir, "absent.xlsx"), "--output", outPath)
	require.Error(t, err)

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "no output is written when the workbook is missing")
}

func TestConfigCommand(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LOGLEVEL", "disabled")

	out, err := runCLI(t, "config", "--sheets", "GRADE 9")
	require.NoError(t, err)
	assert.Contains(t, out, "GRADE 9")
	assert.Contains(t, out, "header_rows: 3")
}

// chdir changes the working directory for the duration of the test,
// matching testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
