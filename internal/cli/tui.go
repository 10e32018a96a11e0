package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/signalgrid/voltpath/pkg/calc"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// PathListModel - Interactive path browsing
// =============================================================================

// PathListModel is the bubbletea model for browsing solved paths.
// The left pane lists the paths; selecting one shows its point table.
type PathListModel struct {
	Paths    []calc.Path
	Cursor   int
	Expanded bool
	Height   int
	Offset   int
}

// NewPathListModel creates a new path list model.
func NewPathListModel(paths []calc.Path) PathListModel {
	return PathListModel{
		Paths:  paths,
		Height: 15,
	}
}

func (m PathListModel) Init() tea.Cmd {
	return nil
}

func (m PathListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Expanded {
				m.Expanded = false
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if !m.Expanded && m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if !m.Expanded && m.Cursor < len(m.Paths)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			m.Expanded = !m.Expanded
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m PathListModel) View() string {
	if m.Expanded {
		return m.detailView()
	}
	return m.listView()
}

func (m PathListModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Solved Paths"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ inspect  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Paths) {
		end = len(m.Paths)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		p := m.Paths[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		load := p.Load()
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i+1),
			pointName(p.Supply()),
			pointName(load),
			fmt.Sprintf("%.1f V", load.Voltage),
			fmt.Sprintf("%.2f A", load.Current),
			fmt.Sprintf("%d blocks", p.Len()),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Supply", "Load", "Voltage", "Current", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Paths))))

	return b.String()
}

func (m PathListModel) detailView() string {
	var b strings.Builder

	p := m.Paths[m.Cursor]
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Path %d", m.Cursor+1)))
	b.WriteString(" " + listDimStyle.Render(p.String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  q quit"))
	b.WriteString("\n\n")

	rows := [][]string{}
	for i := range p.Points {
		pt := &p.Points[i]
		rows = append(rows, []string{
			fmt.Sprintf("%d", pt.BlockID),
			pt.Kind.String(),
			pointName(pt),
			formatFloat(pt.Voltage, "%.1f"),
			formatFloat(pt.Current, "%.2f"),
			formatFloat(pt.LoadAtPoint, "%.0f"),
			pt.SuggestedConductor,
			formatFloat(pt.FaultCurrent, "%.1f"),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Kind", "Name", "V", "A", "VA", "Conductor", "Ik (A)").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col >= 3 {
				return StyleNumber
			}
			return StyleValue
		})

	b.WriteString(t.Render())

	return b.String()
}

// browsePaths runs the interactive path browser.
func browsePaths(paths []calc.Path) error {
	if len(paths) == 0 {
		printWarning("no paths to browse")
		return nil
	}
	_, err := tea.NewProgram(NewPathListModel(paths)).Run()
	return err
}
