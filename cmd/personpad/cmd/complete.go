package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	completeRecord int
	completeCursor int
)

var completeCmd = &cobra.Command{
	Use:   "complete <text>",
	Short: "Suggest completions for a Person expression",
	Long: `Complete prints the suggestions offered for the expression under the
cursor, the same way the shell does.

The cursor defaults to the end of the text.

Example:
  personpad complete 'Person.Na'
  personpad complete 'return Person.Contact.' --record 2`,
	Args: cobra.ExactArgs(1),
	RunE: runComplete,
}

func init() {
	completeCmd.Flags().IntVarP(&completeRecord, "record", "r", -1,
		"Index of the record to complete against (-1 for the first record)")
	completeCmd.Flags().IntVar(&completeCursor, "cursor", -1,
		"Byte offset of the cursor in text (-1 for the end)")

	rootCmd.AddCommand(completeCmd)
}

func runComplete(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.selectRecord(completeRecord); err != nil {
		return err
	}

	text := args[0]
	cursor := completeCursor
	if cursor < 0 {
		cursor = len(text)
	}
	if cursor > len(text) {
		return fmt.Errorf("cursor %d is past the end of the text (%d bytes)", cursor, len(text))
	}

	a.printer.Suggestions(a.session.Suggest(text, cursor))
	return nil
}
