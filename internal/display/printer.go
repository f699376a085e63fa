// Package display renders session output for the terminal.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/personpad/internal/completion"
	"github.com/dbsmedya/personpad/internal/config"
	"github.com/dbsmedya/personpad/internal/graph"
	"github.com/dbsmedya/personpad/internal/record"
	"github.com/dbsmedya/personpad/internal/script"
	"github.com/dbsmedya/personpad/internal/session"
	"github.com/dbsmedya/personpad/internal/types"
)

// maxLabelWidth caps the label column in record listings.
const maxLabelWidth = 40

var (
	errorStyle  = color.Style{color.FgRed, color.OpBold}
	valueStyle  = color.Style{color.FgGreen}
	dimStyle    = color.Style{color.FgGray}
	activeStyle = color.Style{color.FgCyan, color.OpBold}
	cycleStyle  = color.Style{color.FgYellow}
)

// Printer writes human-readable output. Styling is applied only when color is
// enabled, so the plain text is stable for pipes and tests.
type Printer struct {
	out    io.Writer
	color  bool
	indent string
}

// New creates a Printer writing to out.
func New(out io.Writer, cfg config.OutputConfig) *Printer {
	return &Printer{
		out:    out,
		color:  cfg.Color,
		indent: cfg.IndentString(),
	}
}

// Indent returns the JSON indentation unit used for raw views.
func (p *Printer) Indent() string {
	return p.indent
}

func (p *Printer) paint(s color.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Sprint(text)
}

// Result prints captured console output followed by either the error or the
// returned value. An undefined return value prints nothing.
func (p *Printer) Result(r *script.Result) {
	for _, line := range r.Output {
		fmt.Fprintln(p.out, line)
	}
	if r.Err != nil {
		p.ScriptError(r.Err)
		return
	}
	if r.Undefined || r.JSON == "" {
		return
	}

	text := r.JSON
	if p.indent != "" && record.TypeOf(r.Value).IsContainer() {
		if encoded, err := record.Encode(r.Value, p.indent); err == nil {
			text = string(encoded)
		}
	}
	fmt.Fprintln(p.out, p.paint(dimStyle, "=>")+" "+p.paint(valueStyle, text))
}

// ScriptError prints a script failure with its phase.
func (p *Printer) ScriptError(err *script.ScriptError) {
	label := "error"
	if err.Phase == script.PhaseCompile {
		label = "compile error"
	}
	fmt.Fprintln(p.out, p.paint(errorStyle, label+":")+" "+err.Error())
}

// Error prints any other failure.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.out, p.paint(errorStyle, "error:")+" "+err.Error())
}

// Loaded prints a one-line load summary.
func (p *Printer) Loaded(stats types.LoadStats) {
	noun := "records"
	if stats.Records == 1 {
		noun = "record"
	}
	fmt.Fprintf(p.out, "Loaded %d %s from %s %s\n", stats.Records, noun, stats.Source,
		p.paint(dimStyle, fmt.Sprintf("(%d bytes, %s)", stats.Bytes, stats.Duration.Round(time.Microsecond))))
}

// Records lists records with their index, label and shape. The active
// record is marked with '*'.
func (p *Printer) Records(records []any, active int) {
	if len(records) == 0 {
		fmt.Fprintln(p.out, "No records loaded")
		return
	}

	labels := make([]string, len(records))
	width := 0
	for i, rec := range records {
		labels[i] = runewidth.Truncate(session.Label(rec, i), maxLabelWidth, "...")
		if w := runewidth.StringWidth(labels[i]); w > width {
			width = w
		}
	}
	indexWidth := len(strconv.Itoa(len(records) - 1))

	for i, rec := range records {
		marker := " "
		if i == active {
			marker = "*"
		}
		line := fmt.Sprintf("%s %*d  %s  %s", marker, indexWidth, i,
			runewidth.FillRight(labels[i], width), p.paint(dimStyle, shape(rec)))
		if i == active {
			line = p.paint(activeStyle, line)
		}
		fmt.Fprintln(p.out, strings.TrimRight(line, " "))
	}
}

// Matches lists search results.
func (p *Printer) Matches(matches []session.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(p.out, "No matches")
		return
	}

	width := 0
	for _, m := range matches {
		if w := runewidth.StringWidth(m.Label); w > width {
			width = w
		}
	}
	for _, m := range matches {
		line := fmt.Sprintf("%3d  %s", m.Index, runewidth.FillRight(m.Label, width))
		if m.Path != "" {
			line += "  " + p.paint(dimStyle, m.Path+" = "+strconv.Quote(m.Value))
		}
		fmt.Fprintln(p.out, strings.TrimRight(line, " "))
	}
}

// Tree prints enumerated paths as an indented tree followed by a summary.
func (p *Printer) Tree(entries []graph.PathEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(p.out, "No paths")
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(graph.Tree(entries), "\n"), "\n") {
		if strings.HasSuffix(line, ", cycle)") {
			line = p.paint(cycleStyle, line)
		}
		fmt.Fprintln(p.out, line)
	}
	p.summary(entries)
}

// Paths prints enumerated paths as an aligned table of path, type and note.
func (p *Printer) Paths(entries []graph.PathEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(p.out, "No paths")
		return
	}

	width := 0
	for _, e := range entries {
		if w := runewidth.StringWidth(e.Path); w > width {
			width = w
		}
	}
	for _, e := range entries {
		note := ""
		switch {
		case e.Cycle:
			note = p.paint(cycleStyle, "cycle")
		case e.Kind == graph.KindBranch && !e.Expandable:
			note = p.paint(dimStyle, "collapsed")
		}
		line := fmt.Sprintf("%s  %-7s  %s", runewidth.FillRight(e.Path, width), e.Type, note)
		fmt.Fprintln(p.out, strings.TrimRight(line, " "))
	}
	p.summary(entries)
}

func (p *Printer) summary(entries []graph.PathEntry) {
	s := graph.Summarize(entries)
	fmt.Fprintln(p.out, p.paint(dimStyle, fmt.Sprintf("%d paths, %d leaves, %d branches, %d cycles, depth %d",
		s.Entries, s.Leaves, s.Branches, s.Cycles, s.MaxDepth)))
}

// Suggestions lists completion candidates with their detail.
func (p *Printer) Suggestions(suggestions []completion.Suggestion) {
	if len(suggestions) == 0 {
		fmt.Fprintln(p.out, "No suggestions")
		return
	}

	width := 0
	for _, s := range suggestions {
		if w := runewidth.StringWidth(s.Label); w > width {
			width = w
		}
	}
	for _, s := range suggestions {
		fmt.Fprintf(p.out, "%s  %s\n", runewidth.FillRight(s.Label, width), p.paint(dimStyle, s.Detail))
	}
}

// Raw prints JSON text unchanged.
func (p *Printer) Raw(data []byte) {
	fmt.Fprintln(p.out, string(data))
}

// Transcript prints previous executions, oldest first.
func (p *Printer) Transcript(entries []session.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(p.out, "No history")
		return
	}
	for i, e := range entries {
		target := "no record"
		if e.Record >= 0 {
			target = fmt.Sprintf("record %d", e.Record)
		}
		status := "ok"
		if !e.Result.OK() {
			status = "failed"
		}
		fmt.Fprintln(p.out, p.paint(dimStyle, fmt.Sprintf("[%d] %s, %s, %s", i+1, target, status, e.At.Format("15:04:05"))))
		for _, line := range strings.Split(e.Source, "\n") {
			fmt.Fprintln(p.out, "    "+line)
		}
	}
}

// shape describes a record for listings, e.g. "object, 5 keys".
func shape(v any) string {
	t := record.TypeOf(v)
	members, ok := record.Members(v)
	if !ok {
		return string(t)
	}
	switch t {
	case record.TypeArray:
		return fmt.Sprintf("array, %d items", len(members))
	default:
		return fmt.Sprintf("%s, %d keys", t, len(members))
	}
}
