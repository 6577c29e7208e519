package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ukaji3/gradex-go/pkg/gradex/models"
	"github.com/ukaji3/gradex-go/pkg/gradex/output"
	"github.com/ukaji3/gradex-go/pkg/gradex/parser"
	"github.com/ukaji3/gradex-go/pkg/gradex/store"
)

var fromIndex bool

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <student_id> <national_id>",
		Short: "Print one student record from the report",
		Long: `Lookup normalizes both identifiers the same way extraction does and prints
the matching record as JSON. It reads the JSON report, or the SQLite index
with --from-index.`,
		Args: cobra.ExactArgs(2),
		RunE: runLookup,
	}
	cmd.Flags().BoolVar(&fromIndex, "from-index", false, "Read from the SQLite index instead of the JSON report")
	return cmd
}

func runLookup(cmd *cobra.Command, args []string) error {
	studentID, ok := parser.NormalizeStudentID(args[0])
	if !ok {
		return fmt.Errorf("invalid student id %q", args[0])
	}
	nationalID := parser.NormalizeNationalID(args[1])
	if !parser.ValidNationalID(nationalID) {
		return fmt.Errorf("invalid national id %q", args[1])
	}

	var entry models.Entry
	if fromIndex {
		if opts.IndexPath == "" {
			return fmt.Errorf("--from-index needs an index path (--index)")
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		idx, err := store.Open(opts.IndexPath)
		if err != nil {
			return err
		}
		defer idx.Close()
		if entry, err = idx.Lookup(ctx, studentID, nationalID); err != nil {
			return err
		}
	} else {
		report, err := output.ReadFile(opts.OutputPath)
		if err != nil {
			return err
		}
		key := models.CompositeKey(studentID, nationalID)
		var found bool
		if entry, found = report.Entry(key); !found {
			return fmt.Errorf("%w: %s", store.ErrNotFound, key)
		}
	}

	single := models.NewReport()
	single.Put(entry)
	data, err := output.ToJSON(single, pretty)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
