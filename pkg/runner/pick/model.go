package pick

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
)

// Item is one page offered by the picker.
type Item struct {
	Key  string
	File string
}

// Model lets the reader choose a page from a list with j/k, / to filter and
// enter to confirm.
type Model struct {
	items   []Item
	current int

	visible []int
	cursor  int
	offset  int

	filter    textinput.Model
	filtering bool

	chosen int
	status string

	width  int
	height int
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// NewModel starts with the cursor on items[current].
func NewModel(title string, items []Item, current int) Model {
	ti := textinput.New()
	ti.Placeholder = "filter"
	ti.CharLimit = 32
	ti.Prompt = "/"

	m := Model{
		items:   items,
		current: current,
		filter:  ti,
		chosen:  -1,
		status:  title,
		width:   80,
		height:  24,
	}
	m.refilter()
	m.moveTo(current)
	return m
}

// Chosen returns the index confirmed with enter, if any.
func (m Model) Chosen() (int, bool) {
	return m.chosen, m.chosen >= 0
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.scroll()
	case tea.KeyPressMsg:
		if m.filtering {
			switch msg.String() {
			case "enter":
				m.filtering = false
				m.filter.Blur()
			case "esc":
				m.filtering = false
				m.filter.Reset()
				m.filter.Blur()
				m.refilter()
			default:
				var cmd tea.Cmd
				m.filter, cmd = m.filter.Update(msg)
				m.refilter()
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.rows())
		case "pgdown":
			m.move(m.rows())
		case "g", "home":
			m.move(-len(m.visible))
		case "G", "end":
			m.move(len(m.visible))
		case "/":
			m.filtering = true
			return m, m.filter.Focus()
		case "enter":
			if len(m.visible) > 0 {
				m.chosen = m.visible[m.cursor]
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.fit(m.status)))
	b.WriteString("\n\n")

	end := min(m.offset+m.rows(), len(m.visible))
	for row := m.offset; row < end; row++ {
		i := m.visible[row]
		it := m.items[i]
		line := m.fit(fmt.Sprintf("  %-10s %s", it.Key, it.File))
		switch {
		case row == m.cursor:
			line = cursorStyle.Render(m.fit("> " + strings.TrimPrefix(line, "  ")))
		case i == m.current:
			line = currentStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(m.visible) == 0 {
		b.WriteString(statusStyle.Render("  no matching pages"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
	} else {
		b.WriteString(statusStyle.Render(m.fit("j/k move, / filter, enter mark, q quit")))
	}
	return b.String()
}

// rows is the number of list lines that fit between the title and footer.
func (m Model) rows() int {
	return max(m.height-4, 1)
}

func (m Model) fit(s string) string {
	if m.width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(m.width), "…")
}

func (m *Model) refilter() {
	q := strings.TrimSpace(m.filter.Value())
	prev := -1
	if m.cursor < len(m.visible) {
		prev = m.visible[m.cursor]
	}
	visible := make([]int, 0, len(m.items))
	for i, it := range m.items {
		if q == "" || strings.Contains(it.Key, q) || strings.Contains(it.File, q) {
			visible = append(visible, i)
		}
	}
	m.visible = visible
	m.cursor = 0
	m.moveTo(prev)
}

// moveTo places the cursor on item i when it is visible.
func (m *Model) moveTo(i int) {
	for row, v := range m.visible {
		if v == i {
			m.cursor = row
			break
		}
	}
	m.scroll()
}

func (m *Model) move(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.visible)-1)
	m.scroll()
}

func (m *Model) scroll() {
	rows := m.rows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(0, min(m.offset, max(len(m.visible)-rows, 0)))
}
