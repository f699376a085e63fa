package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dbsmedya/personpad/internal/session"
)

var (
	pathsRecord int
	pathsTable  bool
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Enumerate the property paths of a record",
	Long: `Paths walks a record and prints every property path reachable from it.

Values reached a second time, such as a record that refers back to itself,
are marked as cycles and not expanded again. Containers at the depth bound
are marked as collapsed.

Example:
  personpad paths --record 1
  personpad paths --table --max-depth 3`,
	RunE: runPaths,
}

func init() {
	pathsCmd.Flags().IntVarP(&pathsRecord, "record", "r", -1,
		"Index of the record to enumerate (-1 for the first record)")
	pathsCmd.Flags().BoolVar(&pathsTable, "table", false,
		"Print full paths as a table instead of a tree")

	rootCmd.AddCommand(pathsCmd)
}

func runPaths(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.selectRecord(pathsRecord); err != nil {
		return err
	}
	if _, _, ok := a.session.Active(); !ok {
		return session.ErrNoActiveRecord
	}

	entries := a.session.Paths()
	if pathsTable {
		a.printer.Paths(entries)
	} else {
		a.printer.Tree(entries)
	}
	return nil
}
