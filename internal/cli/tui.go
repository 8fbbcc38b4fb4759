package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pagebind/pagebind/pkg/layout"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// planModel - Interactive page plan browser
// =============================================================================

// planModel is the bubbletea model for browsing a computed page plan.
// One row per page; the cursor row shows the full geometry of that page
// below the table.
type planModel struct {
	Entries []layout.Entry
	Cursor  int
	Height  int
	Offset  int
}

// newPlanModel creates a plan browser over the given entries.
func newPlanModel(entries []layout.Entry) planModel {
	return planModel{
		Entries: entries,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m planModel) Init() tea.Cmd {
	return nil
}

func (m planModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entries)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 10
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m planModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Page Plan"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.Entries) == 0 {
		b.WriteString(listDimStyle.Render("  (no pages)"))
		return b.String()
	}

	end := m.Offset + m.Height
	if end > len(m.Entries) {
		end = len(m.Entries)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entries[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rotation := "—"
		if e.RotationDeg != 0 {
			rotation = fmt.Sprintf("%d°", e.RotationDeg)
		}

		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i+1),
			filepath.Base(e.Source),
			fmt.Sprintf("%.0f×%.0f", e.Page.Width, e.Page.Height),
			rotation,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Page", "Image", "Size (pt)", "Rotation").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n")

	e := m.Entries[m.Cursor]
	b.WriteString(listDimStyle.Render(fmt.Sprintf(
		"  content (%.1f,%.1f)-(%.1f,%.1f)  placed %.1f×%.1f at (%.1f,%.1f)",
		e.Content.X0, e.Content.Y0, e.Content.X1, e.Content.Y1,
		e.Placed.Width, e.Placed.Height, e.Placed.X, e.Placed.Y)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entries))))

	return b.String()
}
