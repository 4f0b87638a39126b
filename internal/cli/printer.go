package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/hooksmith/hooksmith/internal/repo"
	"github.com/hooksmith/hooksmith/internal/runner"
)

// lineWidth is the column the status labels align to.
const lineWidth = 79

var (
	passedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	skippedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	detailStyle  = lipgloss.NewStyle().Faint(true)
)

// IsTTY reports whether the file is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Printer writes one dot-padded line per hook as results come in. It
// implements runner.Reporter.
type Printer struct {
	out     io.Writer
	color   bool
	verbose bool
}

// NewPrinter creates a printer. With color disabled every style renders
// as plain text.
func NewPrinter(out io.Writer, color, verbose bool) *Printer {
	return &Printer{out: out, color: color, verbose: verbose}
}

// StartHook is a no-op; the whole line is written when the hook finishes.
func (p *Printer) StartHook(repo.ResolvedHook, int) {}

// FinishHook writes the hook's result line and, for failures or verbose
// runs, its captured output.
func (p *Printer) FinishHook(res runner.Result) {
	name := res.Hook.DisplayName()

	var label, middle string

	switch res.Status {
	case runner.StatusPassed:
		label = p.render(passedStyle, "Passed")
	case runner.StatusFailed:
		label = p.render(failedStyle, "Failed")
	case runner.StatusSkipped:
		middle = "(" + res.Reason + ")"
		label = p.render(skippedStyle, "Skipped")
	}

	plain := len(res.Status.String())
	dots := lineWidth - len(name) - len(middle) - plain
	if dots < 1 {
		dots = 1
	}

	_, _ = fmt.Fprintf(p.out, "%s%s%s%s\n", name, strings.Repeat(".", dots), middle, label)

	if res.Status == runner.StatusFailed {
		_, _ = fmt.Fprintf(p.out, "%s\n", p.render(detailStyle, "- hook id: "+res.Hook.ID))
		_, _ = fmt.Fprintf(p.out, "%s\n", p.render(detailStyle, fmt.Sprintf("- exit code: %d", res.ExitCode)))
	}

	if res.Output != "" && (res.Status == runner.StatusFailed || p.verbose || res.Hook.Verbose) {
		_, _ = fmt.Fprintf(p.out, "\n%s\n\n", res.Output)
	}
}

// Summary prints the closing line of a run.
func (p *Printer) Summary(results []runner.Result) {
	if runner.AnyFailed(results) {
		_, _ = fmt.Fprintln(p.out, p.render(failedStyle, "hooks failed, commit blocked"))
		return
	}

	if len(results) == 0 {
		_, _ = fmt.Fprintln(p.out, "no hooks ran for this stage")
	}
}

func (p *Printer) render(style lipgloss.Style, s string) string {
	if !p.color {
		return s
	}

	return style.Render(s)
}
