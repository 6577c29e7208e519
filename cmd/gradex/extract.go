package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/gradex-go/pkg/gradex"
	"github.com/ukaji3/gradex-go/pkg/gradex/output"
	"github.com/ukaji3/gradex-go/pkg/gradex/store"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract",
		Short: "Extract the configured sheets into the JSON report",
		Long: `Extract reads every configured sheet, skips the header rows, and writes
one record per student. Rows without a usable student id or national id are
skipped; a bad row or a missing sheet is logged and never stops the run.`,
		Args: cobra.NoArgs,
		RunE: runExtract,
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	res, err := gradex.Extract(opts)
	if err != nil {
		if errors.Is(err, gradex.ErrFileNotFound) {
			log.Error().Str("input", opts.InputPath).
				Msg("Workbook not found; check the file name and that it is in the working directory")
		}
		return fmt.Errorf("extraction failed: %w", err)
	}

	if err := output.WriteFile(opts.OutputPath, res.Report, pretty); err != nil {
		return err
	}

	if opts.IndexPath != "" {
		if err := writeIndex(cmd.Context(), res); err != nil {
			return err
		}
	}

	mean, median := res.SubjectStats()
	log.Info().
		Int("records", res.Report.Len()).
		Int("errors", len(res.Errors)).
		Int("replaced", res.Replaced).
		Float64("subjects_mean", mean).
		Float64("subjects_median", median).
		Str("output", opts.OutputPath).
		Msg("Extraction complete")
	return nil
}

func writeIndex(ctx context.Context, res *gradex.Result) error {
	if ctx == nil {
		ctx = context.Background()
	}
	idx, err := store.Open(opts.IndexPath)
	if err != nil {
		return err
	}
	defer idx.Close()

	run := store.Run{ID: runID, Source: opts.InputPath}
	if err := idx.Save(ctx, run, res.Report); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	log.Info().Str("index", opts.IndexPath).Int("records", res.Report.Len()).Msg("Index updated")
	return nil
}
