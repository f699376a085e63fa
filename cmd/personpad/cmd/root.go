package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags at build time)
var (
	Version = "0.0.1-dev"
	Commit  = "unknown"
)

// CLI flags that override config file values
var (
	cfgFile     string
	logLevel    string
	logFormat   string
	dataFile    string
	maxDepth    int
	noColor     bool
	echoConsole bool
)

var rootCmd = &cobra.Command{
	Use:   "personpad",
	Short: "JavaScript scratchpad for person records",
	Long: `A command-line scratchpad for exploring person records with JavaScript.

Records are loaded from a JSON fixture (or a MySQL table of JSON documents),
one record is selected, and scripts run against it bound as Person.

Features:
  - Cycle-safe property path enumeration
  - Completion of Person.<path> expressions
  - Captured console output with line-accurate script errors
  - Interactive shell with record selection and search`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Config file flag
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "personpad.yaml",
		"Path to configuration file (defaults apply when it does not exist)")

	// Logging overrides
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"Override log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "",
		"Override log format (json, text)")

	// Data overrides
	rootCmd.PersistentFlags().StringVarP(&dataFile, "data", "d", "",
		"Load records from this JSON file instead of the configured source (- for stdin)")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", -1,
		"Override the property path depth bound (0 for unbounded, -1 keeps the configured bound)")

	// Output overrides
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&echoConsole, "echo-console", false,
		"Also log script console calls")
}

// GetConfigFile returns the config file path
func GetConfigFile() string {
	return cfgFile
}

// CLIOverrides contains flag values that override config file settings
type CLIOverrides struct {
	LogLevel    string
	LogFormat   string
	DataFile    string
	MaxDepth    int
	NoColor     bool
	EchoConsole bool
}

// GetCLIOverrides returns the CLI flag override values
func GetCLIOverrides() CLIOverrides {
	return CLIOverrides{
		LogLevel:    logLevel,
		LogFormat:   logFormat,
		DataFile:    dataFile,
		MaxDepth:    maxDepth,
		NoColor:     noColor,
		EchoConsole: echoConsole,
	}
}
