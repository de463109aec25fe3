package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Putcho1994/Discadelta/pkg/discadelta"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeTreeModel - Interactive node-tree browser
// =============================================================================

// nodeRow is one flattened, depth-annotated row of a solved tree, used to
// render it as a navigable list without re-walking the tree on every
// keystroke.
type nodeRow struct {
	node  *discadelta.Node
	depth int
}

// NodeTreeModel is the bubbletea model for browsing a solved node tree.
type NodeTreeModel struct {
	rows   []nodeRow
	Cursor int
	Height int
	Offset int
}

// NewNodeTreeModel flattens root's subtree into a navigable list, in the
// same pre-order the tree was declared.
func NewNodeTreeModel(root *discadelta.Node) NodeTreeModel {
	var rows []nodeRow
	flatten(root, 0, &rows)
	return NodeTreeModel{
		rows:   rows,
		Height: 15,
	}
}

func flatten(n *discadelta.Node, depth int, rows *[]nodeRow) {
	*rows = append(*rows, nodeRow{node: n, depth: depth})
	for _, c := range n.Children() {
		flatten(c, depth+1, rows)
	}
}

func (m NodeTreeModel) Init() tea.Cmd {
	return nil
}

func (m NodeTreeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m NodeTreeModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Node Tree"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  enter/q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.rows[i]
		content := r.node.Content()

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		name := strings.Repeat("  ", r.depth) + r.node.Name()
		size := fmt.Sprintf("%.1f×%.1f", content.Width, content.Height)
		if content.Width == 0 && content.Height == 0 {
			size = fmt.Sprintf("%.1f", content.Distance)
		}

		rows = append(rows, []string{
			cursor,
			name,
			fmt.Sprintf("%.1f", content.Distance),
			fmt.Sprintf("%.1f", content.Offset),
			size,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Distance", "Offset", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			actualIdx := m.Offset + row
			if actualIdx >= len(m.rows) {
				return lipgloss.NewStyle()
			}
			if actualIdx == m.Cursor {
				return lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))

	return b.String()
}
