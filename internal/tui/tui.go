// Package tui is the interactive list view: browse items, mark them done
// and add new ones. Nothing is written here; the caller persists Result.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/clido/internal/model"
	"github.com/Makepad-fr/clido/internal/ui"
)

// Result is what the user did during a session.
type Result struct {
	Items    []model.Item // every item, existing ones first, then added
	Existing int          // how many of Items came from the store
	Marked   []int        // existing indices newly marked done
}

// Added returns the items created during the session.
func (r Result) Added() []model.Item { return r.Items[r.Existing:] }

// listItem adapts model.Item to bubbles/list.Item. index is the item's
// position in the store, which is also its position in the list.
type listItem struct {
	index int
	item  model.Item
}

func (i listItem) FilterValue() string { return i.item.Text }

// single-line rendering, "> " marks the cursor
type itemDelegate struct{ theme ui.Theme }

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(listItem)
	if !ok {
		return
	}
	box := d.theme.Muted.Render(d.theme.BoxUnchecked)
	text := it.item.Text
	if it.item.Done {
		box = d.theme.Success.Render(d.theme.BoxChecked)
		text = d.theme.Muted.Strikethrough(true).Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.theme.Accent.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, d.theme.Muted.Render(fmt.Sprintf("[%d]", it.index)), box, text)
}

// Model is the Bubble Tea model of the list view.
type Model struct {
	list     list.Model
	theme    ui.Theme
	items    []model.Item
	existing int
	marked   []int

	// inline add
	adding bool
	ti     textinput.Model
	addErr string
}

var (
	doneBind = key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "done"))
	addBind  = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
)

// New builds the list view over a copy of items.
func New(items []model.Item, theme ui.Theme) Model {
	own := append([]model.Item(nil), items...)
	li := make([]list.Item, 0, len(own))
	for i, it := range own {
		li = append(li, listItem{index: i, item: it})
	}

	l := list.New(li, itemDelegate{theme: theme}, 80, 20)
	l.Title = "Todos"
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = theme.Title
	l.Styles.HelpStyle = theme.Muted
	l.Styles.PaginationStyle = theme.Muted
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("todo", "todos")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{doneBind, addBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{doneBind, addBind} }

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "New todo..."
	ti.CharLimit = 500

	return Model{list: l, theme: theme, items: own, existing: len(own), ti: ti}
}

// Result reports the session so far.
func (m Model) Result() Result {
	return Result{
		Items:    append([]model.Item(nil), m.items...),
		Existing: m.existing,
		Marked:   append([]int(nil), m.marked...),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.list.SetSize(ws.Width-4, ws.Height-6)
		return m, nil
	}

	if m.adding {
		return m.updateAdding(msg)
	}

	// let the filter input have every key while it's open
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case km.String() == "esc" && m.list.FilterState() == list.FilterApplied:
			// the list clears the filter
		case km.String() == "q" || km.String() == "esc" || km.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(km, doneBind):
			m.markSelected()
			return m, nil
		case key.Matches(km, addBind):
			m.adding = true
			m.addErr = ""
			m.ti.SetValue("")
			cmd := m.ti.Focus()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) markSelected() {
	li, ok := m.list.SelectedItem().(listItem)
	if !ok || li.item.Done {
		return
	}
	li.item.Done = true
	m.items[li.index].Done = true
	m.list.SetItem(li.index, li)
	if li.index < m.existing {
		m.marked = append(m.marked, li.index)
	}
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "enter":
			words := strings.Fields(m.ti.Value())
			if len(words) == 0 {
				m.addErr = "Todo text cannot be empty"
				return m, nil
			}
			it := model.NewItem(words...)
			idx := len(m.items)
			m.items = append(m.items, it)
			cmd := m.list.InsertItem(idx, listItem{index: idx, item: it})
			m.adding = false
			m.ti.SetValue("")
			m.ti.Blur()
			return m, cmd
		case "esc":
			m.adding = false
			m.ti.SetValue("")
			m.ti.Blur()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	done, pending := stats(m.items)
	header := fmt.Sprintf("%s %d  %s %d  %s",
		m.theme.Success.Render(m.theme.SymOK), done,
		m.theme.Pending.Render("•"), pending,
		m.theme.Muted.Render(ui.ProgressBar(done, done+pending, 20)),
	)

	content := header + "\n" + m.list.View()
	if m.adding {
		title := "Add new todo"
		if m.addErr != "" {
			title += " - " + m.theme.Error.Render(m.addErr)
		}
		content += "\n" + m.theme.Border.Render(title+"\n"+m.ti.View())
	}
	return m.theme.Border.Render(content)
}

// Run starts the list view on the terminal and returns once the user quits.
func Run(items []model.Item, theme ui.Theme) (Result, error) {
	p := tea.NewProgram(New(items, theme), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Result{}, err
	}
	fm, ok := final.(Model)
	if !ok {
		return Result{Items: items, Existing: len(items)}, nil
	}
	return fm.Result(), nil
}

func stats(items []model.Item) (done, pending int) {
	for _, it := range items {
		if it.Done {
			done++
		} else {
			pending++
		}
	}
	return
}
