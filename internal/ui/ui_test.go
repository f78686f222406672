package ui

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/alecthomas/assert"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Makepad-fr/clido/internal/model"
)

func newTestPrinter(theme string) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errb bytes.Buffer
	return NewPrinter(&out, &errb, theme, true), &out, &errb
}

func TestItemIsVerbatim(t *testing.T) {
	p, out, _ := newTestPrinter("classic")
	p.Item(0, model.Item{Text: "buy milk "})
	p.Item(7, model.Item{Text: "\tcall mom ", Done: true})

	assert.Equal(t, "[0] buy milk \n[7] \tcall mom \n", out.String())
}

func TestItemTextUnstyledOnColorTerminal(t *testing.T) {
	var out bytes.Buffer
	r := lipgloss.NewRenderer(&out)
	r.SetColorProfile(termenv.ANSI256)
	p := &Printer{Out: &out, Err: io.Discard, theme: ThemeFor("classic", r)}

	p.Item(0, model.Item{Text: "\tbuy milk  "})

	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\x1b["), "%q", s)
	assert.Contains(t, s, "[0]")
	assert.True(t, strings.HasSuffix(s, "\x1b[0m \tbuy milk  \n"), "%q", s)
}

func TestMarkedAndFail(t *testing.T) {
	p, out, errb := newTestPrinter("mono")
	p.Marked(model.Item{Text: "buy milk "})
	p.Fail("No TODO text was given!")

	assert.Equal(t, "Marked \"buy milk \" as done!\n", out.String())
	assert.Equal(t, "error: No TODO text was given!\n", errb.String())
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░  50%", ProgressBar(1, 2, 10))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
	assert.Equal(t, "█████ 100%", ProgressBar(3, 3, 5))
}

func TestThemeForUnknownIsClassic(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, &bytes.Buffer{}, "sparkly", true)
	assert.Equal(t, "classic", p.Theme().Name)
	for _, name := range ThemeNames {
		assert.Equal(t, name, NewPrinter(&bytes.Buffer{}, &bytes.Buffer{}, name, true).Theme().Name)
	}
}

func TestPanelFramesLines(t *testing.T) {
	p, _, _ := newTestPrinter("mono")
	lines := strings.Split(p.Panel([]string{"a", "bb"}), "\n")
	assert.Equal(t, 4, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "┌"), lines[0])
}
