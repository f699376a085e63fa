package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var validateConfigOnly bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and the configured data source",
	Long: `Validate checks the configuration file and then loads the configured
data source to make sure every record parses.

Checks performed:
  - Configuration syntax and field values
  - Data source reachability (file, stdin or MySQL)
  - JSON syntax of every record

Example:
  personpad validate --config personpad.yaml
  personpad validate --data persons.json`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateConfigOnly, "config-only", false,
		"Only validate the configuration, do not load records")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	cmd.Printf("=== Configuration Validation ===\n")
	cmd.Printf("Config file: %s\n", GetConfigFile())
	cmd.Printf("Data source: %s\n", describeData(a))
	cmd.Printf("Binding: %s (max depth %d)\n", a.cfg.Completion.Binding, a.cfg.Completion.MaxDepth)
	cmd.Printf("OK: configuration is valid\n")

	if validateConfigOnly {
		return nil
	}

	stats, err := a.load(cmd, "")
	if err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("data source validation failed")
	}
	cmd.Printf("OK: %d records parsed from %s (%d bytes)\n", stats.Records, stats.Source, stats.Bytes)

	return checkSourceDatabase(cmd, a)
}

// checkSourceDatabase pings the MySQL source, if one was opened.
func checkSourceDatabase(cmd *cobra.Command, a *app) error {
	if a.db == nil {
		return nil
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.db.Ping(ctx); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("data source validation failed")
	}
	cmd.Printf("OK: source database reachable\n")
	return nil
}

func describeData(a *app) string {
	if a.cfg.Data.Source == "mysql" {
		return fmt.Sprintf("mysql %s:%d/%s table %s column %s",
			a.cfg.Source.Host, a.cfg.Source.Port, a.cfg.Source.Database, a.cfg.Data.Table, a.cfg.Data.Column)
	}
	return "file " + a.cfg.Data.File
}
