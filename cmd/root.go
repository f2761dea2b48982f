package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var logLevel string
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "hh",
		Short:         "HeiHealth CLI (hh): browse SMART on FHIR patient records",
		Long:          "hh (HeiHealth CLI) launches a SMART on FHIR session against the HeiHealth backend, lists the patients of the launching organization and shows their clinical summary from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides log.level")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Shorthand for --log-level debug")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		return applyLogLevel(app.level, logLevel, verbose)
	}
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		_ = app.logger.Sync()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newLoginCmd(app),
		newLogoutCmd(app),
		newStatusCmd(app),
		newPatientsCmd(app),
		newSwitchCmd(app),
		newOverviewCmd(app),
		newDetailsCmd(app),
		newBrowseCmd(app),
	)

	return rootCmd
}

func applyLogLevel(level zap.AtomicLevel, flagLevel string, verbose bool) error {
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
		return nil
	}
	if strings.TrimSpace(flagLevel) == "" {
		return nil
	}

	parsed, err := zapcore.ParseLevel(strings.TrimSpace(flagLevel))
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	level.SetLevel(parsed)
	return nil
}
