package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Makepad-fr/clido/internal/model"
)

// Printer writes user-facing output. Results go to Out, failures to Err.
type Printer struct {
	Out, Err io.Writer
	theme    Theme
}

// NewPrinter styles output for out. noColor forces plain text even on a
// terminal.
func NewPrinter(out, errw io.Writer, theme string, noColor bool) *Printer {
	r := lipgloss.NewRenderer(out)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{Out: out, Err: errw, theme: ThemeFor(theme, r)}
}

func (p *Printer) Theme() Theme { return p.theme }

// Item prints "[index] text". Only the index is styled; the text follows
// the style reset verbatim, whitespace included.
func (p *Printer) Item(index int, it model.Item) {
	style := p.theme.Pending
	if it.Done {
		style = p.theme.Success
	}
	fmt.Fprintf(p.Out, "%s %s\n", style.Render(fmt.Sprintf("[%d]", index)), it.Text)
}

// Marked reports an item that was just marked done.
func (p *Printer) Marked(it model.Item) {
	fmt.Fprintf(p.Out, "%s \"%s\" as done!\n", p.theme.Success.Render("Marked"), it.Text)
}

func (p *Printer) OK(msg string)   { fmt.Fprintln(p.Out, p.theme.Success.Render(msg)) }
func (p *Printer) Info(msg string) { fmt.Fprintln(p.Out, p.theme.Muted.Render(msg)) }
func (p *Printer) Plain(msg string) {
	fmt.Fprintln(p.Out, msg)
}

// Fail prints msg to Err.
func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.Err, p.theme.Error.Render(p.theme.SymFail+" "+msg))
}
