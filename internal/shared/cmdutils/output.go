// Package cmdutils renders chat output for the terminal.
package cmdutils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Printer writes REPL output to w. Styling is applied only when w is a
// terminal.
type Printer struct {
	w      io.Writer
	styled bool

	title lipgloss.Style
	you   lipgloss.Style
	ai    lipgloss.Style
	tool  lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style
}

// NewPrinter creates a Printer for w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		styled: IsTerminal(w),
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		you:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		ai:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		tool:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer { return p.w }

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

// Banner prints the title line followed by the body lines and a rule.
func (p *Printer) Banner(title string, lines ...string) {
	fmt.Fprintln(p.w, p.render(p.title, title))
	for _, l := range lines {
		fmt.Fprintln(p.w, l)
	}
	fmt.Fprintln(p.w, p.render(p.muted, strings.Repeat("-", 50)))
}

// Prompt prints the user prompt without a newline.
func (p *Printer) Prompt() {
	fmt.Fprint(p.w, "\n"+p.render(p.you, "You:")+" ")
}

// Response prints an assistant reply.
func (p *Printer) Response(text string) {
	if text == "" {
		return
	}
	fmt.Fprintln(p.w, p.render(p.ai, "AI:")+" "+text)
}

// ToolCall announces a tool invocation, e.g. `get_weather(city="Tokyo")`.
func (p *Printer) ToolCall(hint string) {
	fmt.Fprintln(p.w, p.render(p.tool, "AI is calling: "+hint))
}

// Warn prints a highlighted problem line.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(p.warn, fmt.Sprintf(format, args...)))
}

// Info prints a plain line.
func (p *Printer) Info(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}
