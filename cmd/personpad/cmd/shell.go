package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

const shellHelp = `Enter JavaScript to run it against the selected record, bound as Person.
End a line with \ to continue the script on the next line.

Commands:
  :load [file]        reload the configured source, or load a JSON file
  :select <index>     select a record
  :list [query]       list records, or search them
  :raw                show the selected record as JSON
  :tree               show the property paths of the selected record
  :paths              show the property paths as a table
  :complete <text>    suggest completions for text
  :history            show scripts run since the last :clear
  :clear              clear the history
  :help               show this help
  :quit               leave the shell
`

var shellCmd = &cobra.Command{
	Use:     "shell",
	Aliases: []string{"repl"},
	Short:   "Start an interactive session",
	Long: `Shell starts an interactive session over the loaded records.

Scripts typed at the prompt run against the selected record and their
console output and return value are printed. Lines starting with ':' are
session commands; type :help for the list.

Example:
  personpad shell --data persons.json`,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	if GetCLIOverrides().DataFile == "-" {
		return fmt.Errorf("stdin cannot supply both the records and the shell input")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	sh := newShell(a, cmd)
	if stats, err := a.load(cmd, ""); err != nil {
		a.printer.Error(err)
	} else {
		a.printer.Loaded(stats)
	}
	return sh.loop()
}

type shell struct {
	app *app
	cmd *cobra.Command
	out io.Writer
	in  *bufio.Scanner
}

func newShell(a *app, cmd *cobra.Command) *shell {
	in := bufio.NewScanner(cmd.InOrStdin())
	in.Buffer(make([]byte, 64*1024), 4*1024*1024)
	return &shell{app: a, cmd: cmd, out: cmd.OutOrStdout(), in: in}
}

func (s *shell) prompt(continuation bool) {
	if continuation {
		fmt.Fprint(s.out, "... ")
		return
	}
	if _, index, ok := s.app.session.Active(); ok {
		fmt.Fprintf(s.out, "personpad[%d]> ", index)
		return
	}
	fmt.Fprint(s.out, "personpad> ")
}

func (s *shell) loop() error {
	var pending []string
	s.prompt(false)

	for s.in.Scan() {
		line := s.in.Text()

		if len(pending) == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			if quit := s.command(strings.TrimSpace(line)); quit {
				return nil
			}
			s.prompt(false)
			continue
		}

		if strings.HasSuffix(line, "\\") {
			pending = append(pending, strings.TrimSuffix(line, "\\"))
			s.prompt(true)
			continue
		}

		pending = append(pending, line)
		s.execute(strings.Join(pending, "\n"))
		pending = nil
		s.prompt(false)
	}
	if err := s.in.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if len(pending) > 0 {
		s.execute(strings.Join(pending, "\n"))
	}
	fmt.Fprintln(s.out)
	return nil
}

func (s *shell) execute(source string) {
	if strings.TrimSpace(source) == "" {
		return
	}
	s.app.printer.Result(s.app.session.Execute(source))
}

// command runs a ':' command and reports whether the shell should exit.
func (s *shell) command(line string) bool {
	name, arg, _ := strings.Cut(strings.TrimPrefix(line, ":"), " ")
	arg = strings.TrimSpace(arg)
	p := s.app.printer

	switch name {
	case "q", "quit", "exit":
		return true

	case "help", "h", "?":
		fmt.Fprint(s.out, shellHelp)

	case "load":
		stats, err := s.app.load(s.cmd, arg)
		if err != nil {
			p.Error(err)
			return false
		}
		p.Loaded(stats)

	case "select", "s":
		index, err := strconv.Atoi(arg)
		if err != nil {
			p.Error(fmt.Errorf("usage: :select <index>"))
			return false
		}
		if _, err := s.app.session.Select(index); err != nil {
			p.Error(err)
		}

	case "list", "ls", "search":
		if arg != "" {
			p.Matches(s.app.session.Search(arg))
			return false
		}
		_, active, _ := s.app.session.Active()
		p.Records(s.app.session.Records(), active)

	case "raw":
		data, err := s.app.session.Raw(p.Indent())
		if err != nil {
			p.Error(err)
			return false
		}
		p.Raw(data)

	case "tree":
		p.Tree(s.app.session.Paths())

	case "paths":
		p.Paths(s.app.session.Paths())

	case "complete", "c":
		p.Suggestions(s.app.session.Suggest(arg, len(arg)))

	case "history":
		p.Transcript(s.app.session.Transcript())

	case "clear":
		s.app.session.Clear()
		fmt.Fprintln(s.out, "History cleared")

	default:
		p.Error(fmt.Errorf("unknown command :%s, type :help for the list", name))
	}
	return false
}
