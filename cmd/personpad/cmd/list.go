package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List loaded records",
	Long: `List prints every loaded record with its index and a display name.

With a query, only records whose name or any string value contains the
query are shown. Matching ignores case and accents.

Example:
  personpad list --data persons.json
  personpad list jose`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if len(args) > 0 {
		a.printer.Matches(a.session.Search(strings.Join(args, " ")))
		return nil
	}

	_, active, _ := a.session.Active()
	a.printer.Records(a.session.Records(), active)
	return nil
}
