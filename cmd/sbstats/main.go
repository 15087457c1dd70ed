package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/franz/softball-stats/internal/report"
	"github.com/franz/softball-stats/internal/util"
)

var (
	// Version is set at build time
	Version = "dev"

	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "sbstats",
		Short: "Softball box-score statistics",
		Long: `sbstats turns per-game softball scoresheets (CSV) into batting statistics.

Scoresheets are named league-team-season-game.csv. Each processed game is
recorded in a local SQLite database; the recorded games are exported to an
Excel workbook with season, career, team and league summary sheets.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./configs/sbstats.yaml)")
	rootCmd.PersistentFlags().String("db", "data/softball.db", "statistics database file")
	rootCmd.PersistentFlags().String("input", "data/input", "directory holding scoresheets")
	rootCmd.PersistentFlags().String("output", "data/output/stats.xlsx", "exported workbook path")
	rootCmd.PersistentFlags().String("artifacts", "artifacts", "directory for event logs and reports")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "quiet output (errors only)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Bind flags to viper
	viper.BindPFlag("db", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("input", rootCmd.PersistentFlags().Lookup("input"))
	viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("artifacts", rootCmd.PersistentFlags().Lookup("artifacts"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
}

func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.SetConfigName("sbstats")
		viper.SetConfigType("yaml")
	}

	// SBS_DB, SBS_INPUT, ...
	viper.SetEnvPrefix("SBS")
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	setupLogging()
	if err == nil {
		util.DebugLog("Using config file: %s", viper.ConfigFileUsed())
	}
}

// setupLogging applies --verbose/--quiet to console logging
func setupLogging() {
	util.SetVerbose(GetConfigBool("verbose"))
	util.SetQuiet(GetConfigBool("quiet"))
	if GetConfigBool("no_color") || os.Getenv("NO_COLOR") != "" {
		util.SetColors(false)
	}
}

// openEventLogger creates the JSONL event log under the artifacts directory.
// A failure degrades to a no-op logger.
func openEventLogger() *report.EventLogger {
	logLevel := report.LevelInfo
	if GetConfigBool("quiet") {
		logLevel = report.LevelWarning
	} else if GetConfigBool("verbose") {
		logLevel = report.LevelDebug
	}

	logger, err := report.NewEventLogger(GetConfigString("artifacts", "artifacts"), logLevel)
	if err != nil {
		util.WarnLog("Failed to create event logger: %v", err)
		return report.NullLogger()
	}
	util.DebugLog("Event log: %s", logger.Path())
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}
