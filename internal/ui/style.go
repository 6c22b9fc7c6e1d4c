package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	noteStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("244"))
)

// labelWidth aligns field values in Printer output.
const labelWidth = 11

// Printer writes human-readable results. Styling is applied only when the
// destination is a terminal, so piped output stays plain.
type Printer struct {
	w      io.Writer
	styled bool
}

// NewPrinter creates a Printer for f, styling when f is a terminal.
func NewPrinter(f *os.File) *Printer {
	return &Printer{w: f, styled: IsTerminal(f)}
}

// NewPlainPrinter creates a Printer that never styles.
func NewPlainPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) render(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

// Field prints an aligned "label  value" line.
func (p *Printer) Field(label, value string) {
	fmt.Fprintf(p.w, "%s %s\n", p.render(labelStyle, fmt.Sprintf("%-*s", labelWidth, label)), value)
}

// Heading prints a bold line.
func (p *Printer) Heading(text string) {
	fmt.Fprintln(p.w, p.render(promptStyle, text))
}

// Error prints an error line.
func (p *Printer) Error(text string) {
	fmt.Fprintln(p.w, p.render(errorStyle, "error: ")+text)
}

// Note prints a dimmed remark.
func (p *Printer) Note(text string) {
	fmt.Fprintln(p.w, p.render(noteStyle, text))
}

// Line prints text unchanged.
func (p *Printer) Line(text string) {
	fmt.Fprintln(p.w, text)
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}
