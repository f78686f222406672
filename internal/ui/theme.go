package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols. Styles are bound to a renderer so color
// is dropped automatically when the output isn't a terminal.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Border                                        lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymOK, SymFail           string
}

// ThemeNames lists the themes ThemeFor understands.
var ThemeNames = []string{"classic", "neon", "mono"}

// ThemeFor builds the named theme on r. Unknown names get classic.
func ThemeFor(name string, r *lipgloss.Renderer) Theme {
	s := r.NewStyle
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:         "neon",
			Title:        s().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        s().Faint(true),
			Accent:       s().Foreground(lipgloss.Color("14")),
			Success:      s().Foreground(lipgloss.Color("10")),
			Error:        s().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      s().Foreground(lipgloss.Color("11")),
			Border:       s().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("13")).Padding(0, 1),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymOK: "✔", SymFail: "✖",
		}
	case "mono":
		return Theme{
			Name:         "mono",
			Title:        s(),
			Muted:        s(),
			Accent:       s(),
			Success:      s(),
			Error:        s(),
			Pending:      s(),
			Border:       s().Border(lipgloss.NormalBorder()).Padding(0, 1),
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymOK: "ok", SymFail: "error:",
		}
	default:
		return Theme{
			Name:         "classic",
			Title:        s().Bold(true),
			Muted:        s().Faint(true),
			Accent:       s().Foreground(lipgloss.Color("12")),
			Success:      s().Foreground(lipgloss.Color("42")),
			Error:        s().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      s().Foreground(lipgloss.Color("214")),
			Border:       s().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymOK: "✔", SymFail: "✖",
		}
	}
}
