package cmd

import (
	"github.com/spf13/cobra"
)

var (
	showRecord  int
	showCompact bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the raw JSON of a record",
	Long: `Show prints one record as JSON, keeping the key order of the source
document.

Example:
  personpad show --record 2
  personpad show -r 0 --compact`,
	RunE: runShow,
}

func init() {
	showCmd.Flags().IntVarP(&showRecord, "record", "r", -1,
		"Index of the record to show (-1 for the first record)")
	showCmd.Flags().BoolVar(&showCompact, "compact", false,
		"Print compact JSON")

	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.selectRecord(showRecord); err != nil {
		return err
	}

	indent := a.printer.Indent()
	if showCompact {
		indent = ""
	}
	data, err := a.session.Raw(indent)
	if err != nil {
		return err
	}
	a.printer.Raw(data)
	return nil
}
