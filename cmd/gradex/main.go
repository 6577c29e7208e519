// Package main provides the CLI entry point for gradex-go.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ukaji3/gradex-go/internal/config"
	"github.com/ukaji3/gradex-go/internal/logging"
	"github.com/ukaji3/gradex-go/pkg/gradex"
)

var (
	cfgFile string
	pretty  bool

	// opts and runID are set before any command runs.
	opts  gradex.Options
	runID string
)

func newRootCmd() *cobra.Command {
	defaults := gradex.DefaultOptions()

	rootCmd := &cobra.Command{
		Use:   "gradex",
		Short: "Extract student grade records from the monthly report workbook",
		Long: `gradex reads the grade-level sheets of the monthly report workbook and
writes one JSON object keyed by "<student_id>_<national_id>" for portal lookup.

Running gradex without a subcommand is the same as "gradex extract".`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
		RunE:              runExtract,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default: ./gradex.yaml or ~/.config/gradex/gradex.yaml)")
	flags.StringP(config.KeyInput, "i", defaults.InputPath, "Input workbook path")
	flags.StringP(config.KeyOutput, "o", defaults.OutputPath, "Output JSON report path")
	flags.StringSlice(config.KeySheets, defaults.Sheets, "Sheets to read, in order")
	flags.String(config.KeyIndex, defaults.IndexPath, "SQLite lookup index path (empty: no index)")
	flags.BoolVar(&pretty, "pretty", true, "Pretty-print JSON output")

	rootCmd.AddCommand(newExtractCmd(), newLookupCmd(), newConfigCmd())
	return rootCmd
}

func setup(cmd *cobra.Command, args []string) error {
	runID = logging.Setup(os.Stderr)

	v := config.New(cfgFile)
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}

	loaded, used, err := config.Load(v)
	if err != nil {
		return err
	}
	if used != "" {
		log.Debug().Str("config", used).Msg("Using config file")
	}
	opts = loaded
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("gradex failed")
		os.Exit(1)
	}
}
