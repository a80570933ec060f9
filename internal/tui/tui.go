// Package tui renders the month grid as an interactive terminal view.
// Every keystroke applies one navigation op to the displayed month and
// redraws the rebuilt grid; there is no state besides the view position.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/crumpstrr33/gridcal/internal/calendar"
)

// cellWidth is the rendered width of one weekday column
const cellWidth = 4

type keyMap struct {
	PrevMonth key.Binding
	NextMonth key.Binding
	PrevYear  key.Binding
	NextYear  key.Binding
	Today     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// ShortHelp returns the bindings for the one-line help footer
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevMonth, k.NextMonth, k.Today, k.Help, k.Quit}
}

// FullHelp returns the bindings for the expanded help footer
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevMonth, k.NextMonth},
		{k.PrevYear, k.NextYear},
		{k.Today, k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevMonth: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next month"),
		),
		PrevYear: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H/shift+←", "prev year"),
		),
		NextYear: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L/shift+→", "next year"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type styles struct {
	header  lipgloss.Style
	weekday lipgloss.Style
	day     lipgloss.Style
	fill    lipgloss.Style
	today   lipgloss.Style
	notice  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		header:  lipgloss.NewStyle().Bold(true),
		weekday: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		day:     lipgloss.NewStyle(),
		fill:    lipgloss.NewStyle().Faint(true),
		today:   lipgloss.NewStyle().Bold(true).Reverse(true),
		notice:  lipgloss.NewStyle().Faint(true),
	}
}

// Model is the bubbletea model for the month view
type Model struct {
	view   *calendar.View
	today  calendar.Date
	keys   keyMap
	help   help.Model
	notice string
}

// NewModel starts the view at the given month, highlighting today
func NewModel(start calendar.YearMonth, today calendar.Date) Model {
	return Model{
		view:  calendar.NewView(start),
		today: today,
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
}

// Current returns the displayed YearMonth
func (m Model) Current() calendar.YearMonth {
	return m.view.Current()
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model: one discrete key, one navigation op
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.notice = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevMonth):
			if m.view.Current().PrevMonthDisabled() {
				m.notice = fmt.Sprintf("at the floor year %d", calendar.MinYear)
			}
			m.view.PrevMonth()
		case key.Matches(msg, m.keys.NextMonth):
			m.view.NextMonth()
		case key.Matches(msg, m.keys.PrevYear):
			if m.view.Current().PrevYearDisabled() {
				m.notice = fmt.Sprintf("at the floor year %d", calendar.MinYear)
			}
			m.view.PrevYear()
		case key.Matches(msg, m.keys.NextYear):
			m.view.NextYear()
		case key.Matches(msg, m.keys.Today):
			m.view.Goto(m.today.YearMonth())
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

// View implements tea.Model
func (m Model) View() string {
	page := m.view.Page()
	st := defaultStyles()
	width := cellWidth * 7

	var b strings.Builder
	b.WriteString(st.header.Width(width).Align(lipgloss.Center).Render(page.Label))
	b.WriteString("\n")

	for _, name := range calendar.WeekdayNames() {
		b.WriteString(st.weekday.Render(fmt.Sprintf("%*s", cellWidth, name[:3])))
	}
	b.WriteString("\n")

	for i, cell := range page.Grid {
		text := fmt.Sprintf("%*d", cellWidth, cell.Day)
		switch {
		case cell.Date() == m.today:
			text = st.today.Render(text)
		case cell.Fill != calendar.FillCurrent:
			text = st.fill.Render(text)
		default:
			text = st.day.Render(text)
		}
		b.WriteString(text)
		if (i+1)%7 == 0 {
			b.WriteString("\n")
		}
	}

	if m.notice != "" {
		b.WriteString(st.notice.Render(m.notice))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// Run starts the terminal view at the given month
func Run(start calendar.YearMonth, today calendar.Date) error {
	program := tea.NewProgram(NewModel(start, today))
	_, err := program.Run()
	return err
}
