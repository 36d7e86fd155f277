package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/eggplot/pkg/linespec"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FamilyListModel - Interactive style table browser
// =============================================================================

// FamilyListModel is the bubbletea model for browsing terminal families.
// The code table of the family under the cursor is shown below the list.
type FamilyListModel struct {
	Families []linespec.Family
	Cursor   int
	Selected *linespec.Family
}

// NewFamilyListModel creates a new family list model.
func NewFamilyListModel(families []linespec.Family) FamilyListModel {
	return FamilyListModel{Families: families}
}

func (m FamilyListModel) Init() tea.Cmd {
	return nil
}

func (m FamilyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Families)-1 {
				m.Cursor++
			}
		case "enter":
			f := m.Families[m.Cursor]
			m.Selected = &f
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m FamilyListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Terminal Families"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, f := range m.Families {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-8s %s", cursor, f, listDimStyle.Render(linespec.TablesFor(f).Name()+" tables"))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.Families) > 0 {
		b.WriteString("\n")
		b.WriteString(stylesTable(m.Families[m.Cursor : m.Cursor+1]).Render())
		b.WriteString("\n")
	}
	return b.String()
}
