package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/assert"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/clido/internal/model"
	"github.com/Makepad-fr/clido/internal/ui"
)

func testTheme() ui.Theme {
	return ui.NewPrinter(&bytes.Buffer{}, &bytes.Buffer{}, "mono", true).Theme()
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		assert.True(t, ok)
	}
	return m
}

func seed() []model.Item {
	return []model.Item{{Text: "buy milk "}, {Text: "call mom ", Done: true}, {Text: "read "}}
}

func TestMarkSelectedDone(t *testing.T) {
	m := New(seed(), testTheme())
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24}, runes("x"))

	res := m.Result()
	assert.Equal(t, []int{0}, res.Marked)
	assert.True(t, res.Items[0].Done)
	assert.Equal(t, 0, len(res.Added()))
}

func TestMarkAlreadyDoneIsNoop(t *testing.T) {
	m := New(seed(), testTheme())
	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 24},
		tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	res := m.Result()
	assert.Equal(t, 0, len(res.Marked))
	assert.Equal(t, seed(), res.Items)
}

func TestAddInline(t *testing.T) {
	m := New(seed(), testTheme())
	m = send(t, m, runes("a"))
	assert.True(t, m.adding)

	m = send(t, m, runes("water"), runes(" "), runes("plants"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.adding)

	res := m.Result()
	assert.Equal(t, 3, res.Existing)
	assert.Equal(t, []model.Item{{Text: "water plants "}}, res.Added())
}

func TestAddRejectsEmpty(t *testing.T) {
	m := New(nil, testTheme())
	m = send(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.adding)
	assert.Equal(t, "Todo text cannot be empty", m.addErr)
	assert.Contains(t, m.View(), "Todo text cannot be empty")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.adding)
	assert.Equal(t, 0, len(m.Result().Items))
}

func TestQuit(t *testing.T) {
	m := New(seed(), testTheme())
	_, cmd := m.Update(runes("q"))
	assert.True(t, cmd != nil)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestViewShowsItems(t *testing.T) {
	m := send(t, New(seed(), testTheme()), tea.WindowSizeMsg{Width: 80, Height: 24})
	view := m.View()
	assert.Contains(t, view, "[0] [ ] buy milk")
	assert.Contains(t, view, "[1] [x] call mom")
	assert.True(t, strings.Contains(view, "33%"), view)
}
