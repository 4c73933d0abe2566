// Package tui provides a read-only month browser for the vault. It
// shows one month's entries in a table, navigates between months, and
// refreshes when a document changes on disk.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/eivindw/timevault/internal/entry"
	"github.com/eivindw/timevault/internal/store"
	"github.com/eivindw/timevault/internal/timeutil"
	"github.com/eivindw/timevault/internal/vault"
)

// KeyMap contains the key bindings for the month browser
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Refresh   key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PrevMonth: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next month"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "current month"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
)

// monthLoadedMsg carries a freshly parsed month
type monthLoadedMsg struct {
	period       string
	entries      []entry.Entry
	totalMinutes int
	err          error
}

// vaultChangedMsg reports an external change to a document
type vaultChangedMsg struct {
	period string
}

// Model is the month browser model
type Model struct {
	store   *store.Store
	watcher *vault.Watcher

	month time.Time // first day of the displayed month
	table table.Model
	keys  KeyMap

	entryCount   int
	totalMinutes int
	width        int
	height       int
	err          error
}

// New creates a month browser showing the current month. The watcher is
// optional; without one the view refreshes only on demand.
func New(s *store.Store, w *vault.Watcher) Model {
	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Time", Width: 13},
		{Title: "Dur", Width: 7},
		{Title: "Description", Width: 40},
		{Title: "Client", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12"))
	t.SetStyles(styles)

	return Model{
		store:   s,
		watcher: w,
		month:   timeutil.StartOfMonth(time.Now()),
		table:   t,
		keys:    DefaultKeyMap(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadMonth()}
	if m.watcher != nil {
		cmds = append(cmds, m.waitForChange())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.PrevMonth):
			m.month = m.month.AddDate(0, -1, 0)
			return m, m.loadMonth()
		case key.Matches(msg, m.keys.NextMonth):
			m.month = m.month.AddDate(0, 1, 0)
			return m, m.loadMonth()
		case key.Matches(msg, m.keys.Today):
			m.month = timeutil.StartOfMonth(time.Now())
			return m, m.loadMonth()
		case key.Matches(msg, m.keys.Refresh):
			m.store.Invalidate(m.period())
			return m, m.loadMonth()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(max(msg.Height-4, 5))
		return m, nil

	case monthLoadedMsg:
		if msg.period != m.period() {
			// Stale load from a month navigated away from.
			return m, nil
		}
		m.err = msg.err
		m.entryCount = len(msg.entries)
		m.totalMinutes = msg.totalMinutes
		m.table.SetRows(entryRows(msg.entries))
		return m, nil

	case vaultChangedMsg:
		cmds := []tea.Cmd{m.waitForChange()}
		if msg.period == m.period() {
			m.store.Invalidate(msg.period)
			cmds = append(cmds, m.loadMonth())
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	title := titleStyle.Render(fmt.Sprintf("timevault %s", m.period()))

	if m.err != nil {
		return title + "\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	footer := footerStyle.Render(fmt.Sprintf(
		"%d entries, %s total  ·  ←/→ month  t today  r refresh  q quit",
		m.entryCount, formatMinutes(m.totalMinutes)))

	return title + "\n" + m.table.View() + "\n" + footer + "\n"
}

// period returns the displayed month's period key.
func (m Model) period() string {
	return timeutil.PeriodKey(m.month)
}

// loadMonth parses the displayed month off the Update loop.
func (m Model) loadMonth() tea.Cmd {
	s := m.store
	period := m.period()
	return func() tea.Msg {
		doc, err := s.Month(period)
		if err != nil {
			return monthLoadedMsg{period: period, err: err}
		}
		total := 0
		for _, e := range doc.Entries {
			total += e.DurationMinutes
		}
		return monthLoadedMsg{period: period, entries: doc.Entries, totalMinutes: total}
	}
}

// waitForChange blocks on the next watcher notification.
func (m Model) waitForChange() tea.Cmd {
	w := m.watcher
	return func() tea.Msg {
		period, ok := <-w.Changes()
		if !ok {
			return nil
		}
		return vaultChangedMsg{period: period}
	}
}

// entryRows converts entries into table rows.
func entryRows(entries []entry.Entry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			e.DateKey(),
			fmt.Sprintf("%s-%s", e.Start.Format("15:04"), e.End.Format("15:04")),
			formatMinutes(e.DurationMinutes),
			e.Description,
			e.Client,
		})
	}
	return rows
}

// formatMinutes formats minutes as "1h 30m".
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Run starts the month browser and blocks until the user quits.
func Run(s *store.Store, v *vault.Vault) error {
	watcher, err := v.Watch()
	if err != nil {
		// Watching is best effort; browse without live refresh.
		watcher = nil
	}
	if watcher != nil {
		defer func() { _ = watcher.Close() }()
	}

	program := tea.NewProgram(New(s, watcher), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
