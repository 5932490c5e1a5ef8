package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/questcanvas/pkg/quest"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// NodeBrowserModel - Interactive node inspection
// =============================================================================

// NodeBrowserModel is the bubbletea model of the inspect command. It lists the
// nodes of a graph and shows the content of the selected node.
type NodeBrowserModel struct {
	Graph    quest.Graph
	Findings map[string][]quest.Finding
	Cursor   int
	Offset   int
	Height   int
	Detail   bool

	// history holds the cursors visited with "enter" on a target, for "back".
	history []int
}

// NewNodeBrowserModel creates a browser over g.
func NewNodeBrowserModel(g quest.Graph) NodeBrowserModel {
	findings := make(map[string][]quest.Finding)
	for _, f := range quest.Lint(g) {
		findings[f.NodeID] = append(findings[f.NodeID], f)
	}
	return NodeBrowserModel{Graph: g, Findings: findings, Height: 15}
}

// Selected returns the node under the cursor.
func (m NodeBrowserModel) Selected() (quest.Node, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Graph.Nodes) {
		return quest.Node{}, false
	}
	return m.Graph.Nodes[m.Cursor], true
}

func (m NodeBrowserModel) Init() tea.Cmd {
	return nil
}

func (m NodeBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace":
			switch {
			case len(m.history) > 0:
				m.Cursor = m.history[len(m.history)-1]
				m.history = m.history[:len(m.history)-1]
				m.scrollTo()
			case m.Detail:
				m.Detail = false
			default:
				return m, tea.Quit
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				m.scrollTo()
			}
		case "down", "j":
			if m.Cursor < len(m.Graph.Nodes)-1 {
				m.Cursor++
				m.scrollTo()
			}
		case "enter":
			m.Detail = true
		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			if m.Detail {
				m.follow(int(msg.String()[0] - '1'))
			}
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-6, 5)
		m.scrollTo()
	}
	return m, nil
}

// follow moves the cursor along the i-th edge leaving the selected node, in
// option or branch order.
func (m *NodeBrowserModel) follow(i int) {
	n, ok := m.Selected()
	if !ok {
		return
	}
	var targets []string
	for _, h := range n.Handles() {
		if e, ok := m.Graph.EdgeFrom(n.ID, h); ok {
			targets = append(targets, e.Target)
		}
	}
	if i >= len(targets) {
		return
	}
	for j, other := range m.Graph.Nodes {
		if other.ID == targets[i] {
			m.history = append(m.history, m.Cursor)
			m.Cursor = j
			m.scrollTo()
			return
		}
	}
}

func (m *NodeBrowserModel) scrollTo() {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m NodeBrowserModel) View() string {
	if m.Detail {
		return m.detailView()
	}
	return m.listView()
}

func (m NodeBrowserModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Nodes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Graph.Nodes))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := m.Graph.Nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		notes := ""
		if k := len(m.Findings[n.ID]); k > 0 {
			notes = fmt.Sprintf("%d", k)
		}
		rows = append(rows, []string{cursor, n.DisplayLabel(), n.Kind.String(), handleSummary(n), fmt.Sprintf("%d", len(m.Graph.Successors(n.ID))), notes})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "Kind", "Content", "Out", "Findings").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == headerRow {
				return styleHeader
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case col == 5:
				return StyleWarning
			case col == 2 || col == 4:
				return listDimStyle
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Graph.Nodes))))

	return b.String()
}

func (m NodeBrowserModel) detailView() string {
	n, ok := m.Selected()
	if !ok {
		return listDimStyle.Render("no nodes")
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(n.DisplayLabel()))
	b.WriteString(" ")
	b.WriteString(listDimStyle.Render(n.Kind.String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("1-9 follow edge  esc back  q quit"))
	b.WriteString("\n\n")

	targets := make(map[string]string)
	for _, e := range m.Graph.Edges {
		if e.Source == n.ID {
			if t, ok := m.Graph.Node(e.Target); ok {
				targets[e.SourceHandle] = t.DisplayLabel()
			}
		}
	}
	edgeNo := 0
	arrow := func(handle, literal string) string {
		if label, ok := targets[handle]; ok {
			edgeNo++
			return StyleHighlight.Render(fmt.Sprintf(" %s [%d] %s", iconArrow, edgeNo, label))
		}
		if literal != "" {
			return StyleWarning.Render(fmt.Sprintf(" %s %s (missing)", iconArrow, literal))
		}
		return ""
	}

	switch {
	case n.IsDialogue():
		d := n.Dialogue
		if d.DisplayName != "" {
			fmt.Fprintf(&b, "%s %s\n", listDimStyle.Render("speaker"), d.DisplayName)
		}
		if d.Condition != "" {
			fmt.Fprintf(&b, "%s %s\n", listDimStyle.Render("condition"), d.Condition)
		}
		for _, line := range d.Lines {
			fmt.Fprintf(&b, "  %s\n", listNormalStyle.Render(line))
		}
		if len(d.Options) > 0 {
			b.WriteString("\n")
		}
		for _, o := range d.Options {
			text := o.Text
			if text == "" {
				text = listDimStyle.Render("(no text)")
			}
			fmt.Fprintf(&b, "  • %s%s\n", text, arrow(o.ID, o.Target))
		}
	case n.IsSwitch():
		for _, br := range n.Switch.Branches {
			fmt.Fprintf(&b, "  %s %s", listDimStyle.Render("when"), br.Condition)
			if br.Action == quest.ActionOpen {
				b.WriteString(arrow(br.ID, br.Value))
			} else {
				fmt.Fprintf(&b, " %s %s", listDimStyle.Render("run"), br.Value)
			}
			b.WriteString("\n")
		}
	}

	if fs := m.Findings[n.ID]; len(fs) > 0 {
		b.WriteString("\n")
		for _, f := range fs {
			b.WriteString(StyleWarning.Render(iconWarning+" "+f.Message) + "\n")
		}
	}
	return b.String()
}

func handleSummary(n quest.Node) string {
	switch {
	case n.IsDialogue():
		return fmt.Sprintf("%d lines, %d options", len(n.Dialogue.Lines), len(n.Dialogue.Options))
	case n.IsSwitch():
		return fmt.Sprintf("%d branches", len(n.Switch.Branches))
	}
	return "—"
}
