package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	runRecord int
	runEval   string
)

// errScriptFailed is returned after a script error has been printed.
var errScriptFailed = errors.New("script failed")

var runCmd = &cobra.Command{
	Use:   "run [script.js]",
	Short: "Run a script against a record",
	Long: `Run executes JavaScript with the selected record bound as Person and
prints the captured console output followed by the returned value.

The script is read from the named file, from --eval, or from stdin when
neither is given (or the file is -). Top-level return is allowed.

Example:
  personpad run greet.js --record 1
  personpad run -e 'return Person.Name.First'
  echo 'console.log(Person.Email)' | personpad run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVarP(&runRecord, "record", "r", -1,
		"Index of the record to bind as Person (-1 for the first record)")
	runCmd.Flags().StringVarP(&runEval, "eval", "e", "",
		"Script source to run instead of a file")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	if runEval != "" && len(args) > 0 {
		return fmt.Errorf("use either a script file or --eval, not both")
	}
	if runEval == "" && path == "-" && GetCLIOverrides().DataFile == "-" {
		return fmt.Errorf("stdin cannot supply both the records and the script")
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.selectRecord(runRecord); err != nil {
		return err
	}

	source := runEval
	if source == "" {
		source, err = readScript(cmd, path)
		if err != nil {
			return err
		}
	}

	result := a.session.Execute(source)
	a.printer.Result(result)
	if !result.OK() {
		return errScriptFailed
	}
	return nil
}

func readScript(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read script from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read script: %w", err)
	}
	return string(data), nil
}
