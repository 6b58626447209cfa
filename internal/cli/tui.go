package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	traceio "github.com/matzehuels/flametower/pkg/io"
	"github.com/matzehuels/flametower/pkg/level"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	listNormalStyle   = styleTableCell
	listDimStyle      = StyleDim
	listErrorStyle    = styleErrors
)

// occupancyWidth is the number of cells in the per-level time strip.
const occupancyWidth = 48

// =============================================================================
// LevelBrowserModel - Interactive level browsing
// =============================================================================

// LevelBrowserModel is the bubbletea model for stepping through the levels
// of a leveled trace.
type LevelBrowserModel struct {
	Rows     [][]*level.Leveled[traceio.Span]
	Strategy string
	Lo, Hi   float64 // trace extent, for the occupancy strip

	Level    int // selected level
	Cursor   int // selected operation on that level
	Offset   int // first visible operation
	Height   int
	Selected *level.Leveled[traceio.Span]
}

// NewLevelBrowserModel creates a browser over the given leveled forest.
func NewLevelBrowserModel(roots []*level.Leveled[traceio.Span], strategy string) LevelBrowserModel {
	m := LevelBrowserModel{
		Rows:     level.Rows(roots),
		Strategy: strategy,
		Height:   15,
	}
	first := true
	level.Walk(roots, func(l *level.Leveled[traceio.Span]) bool {
		iv := l.Interval()
		if first {
			m.Lo, m.Hi = iv.Start, iv.End
			first = false
		}
		m.Lo = min(m.Lo, iv.Start)
		m.Hi = max(m.Hi, iv.End)
		return true
	})
	return m
}

func (m LevelBrowserModel) Init() tea.Cmd {
	return nil
}

func (m LevelBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h", "shift+tab":
			if m.Level > 0 {
				m = m.selectLevel(m.Level - 1)
			}
		case "right", "l", "tab":
			if m.Level < len(m.Rows)-1 {
				m = m.selectLevel(m.Level + 1)
			}
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.row())-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if row := m.row(); len(row) > 0 {
				m.Selected = row[m.Cursor]
				return m, tea.Quit
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

func (m LevelBrowserModel) selectLevel(lvl int) LevelBrowserModel {
	m.Level = lvl
	m.Cursor = 0
	m.Offset = 0
	return m
}

func (m LevelBrowserModel) row() []*level.Leveled[traceio.Span] {
	if m.Level < 0 || m.Level >= len(m.Rows) {
		return nil
	}
	return m.Rows[m.Level]
}

func (m LevelBrowserModel) View() string {
	var b strings.Builder

	if len(m.Rows) == 0 {
		b.WriteString(StyleTitle.Render("Empty trace"))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("q quit"))
		b.WriteString("\n")
		return b.String()
	}

	row := m.row()
	b.WriteString(StyleTitle.Render(fmt.Sprintf("Level %d of %d", m.Level, len(m.Rows)-1)))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %s · %d operations", m.Strategy, len(row))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ level  ↑/↓ navigate  ⏎ details  q quit"))
	b.WriteString("\n\n")
	b.WriteString("  " + styleLevel.Render(occupancy(row, m.Lo, m.Hi, occupancyWidth)))
	b.WriteString("\n")
	b.WriteString("  " + listDimStyle.Render(fmt.Sprintf("%-*g%*g", occupancyWidth/2, m.Lo, occupancyWidth/2, m.Hi)))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(row))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		l := row[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		parent := "—"
		if p := l.Parent(); p != nil {
			parent = fmt.Sprintf("%s (%s)", p.Op.Entity.Name, levelLabel(p.Level))
		}
		rows = append(rows, []string{
			cursor,
			l.Op.Entity.Name,
			fmt.Sprintf("%g", l.Op.Start),
			fmt.Sprintf("%g", l.Op.Duration),
			parent,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleTableBorder).
		Headers("", "Operation", "Start", "Duration", "Parent").
		Rows(rows...).
		StyleFunc(func(r, col int) lipgloss.Style {
			if r == -1 {
				return styleTableHeader
			}
			idx := m.Offset + r
			if idx >= len(row) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case row[idx].Op.Entity.Error:
				return listErrorStyle
			case col == 4:
				return listDimStyle
			default:
				return listNormalStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(row))))

	return b.String()
}

// occupancy draws which parts of [lo, hi) the operations on one level
// cover, one cell per width-th of the extent.
func occupancy(row []*level.Leveled[traceio.Span], lo, hi float64, width int) string {
	if width <= 0 {
		return ""
	}
	cells := []rune(strings.Repeat("·", width))
	span := hi - lo
	if span <= 0 {
		if len(row) > 0 {
			return strings.Repeat("█", width)
		}
		return string(cells)
	}
	for _, l := range row {
		iv := l.Interval()
		from := int((iv.Start - lo) / span * float64(width))
		to := int((iv.End - lo) / span * float64(width))
		if to == from {
			to = from + 1
		}
		for i := max(from, 0); i < min(to, width); i++ {
			cells[i] = '█'
		}
	}
	return string(cells)
}
