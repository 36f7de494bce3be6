package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	detectcmd "lfpsync/cmd/detect"
	timeshiftcmd "lfpsync/cmd/timeshift"
	"lfpsync/internal/conf"
	"lfpsync/internal/observability/metrics"
)

// RootCommand creates and returns the root command.
func RootCommand(settings *conf.Settings, m *metrics.DetectionMetrics) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lfpsync",
		Short: "Sync-artifact detection and drift checking for dual-clock physiological recordings",
		Long: `lfpsync aligns an implanted LFP recording with an external bipolar
reference recording by locating a shared stimulation-induced artifact in
each stream, and re-checks residual clock drift after alignment.`,
		SilenceUsage: true,
	}

	setupFlags(rootCmd, settings)

	rootCmd.AddCommand(
		detectcmd.Command(settings),
		timeshiftcmd.Command(settings, m),
	)
	return rootCmd
}

// setupFlags configures the global flags for the root command.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVar(&settings.Debug, "debug", settings.Debug, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Output.SQLite.Path, "db", settings.Output.SQLite.Path, "Path to the session parameter database")

	if err := viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		panic(err)
	}
	if err := viper.BindPFlag("output.sqlite.path", rootCmd.PersistentFlags().Lookup("db")); err != nil {
		panic(err)
	}
}
