package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/hopbunny/internal/leaderboard"
	"github.com/vovakirdan/hopbunny/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the player sidebar
	sidebarWidth       = 24 // Width of player sidebar
)

// PlayerStatsSource is implemented by leaderboards that keep per-player
// statistics, such as *storage.Store.
type PlayerStatsSource interface {
	AllPlayersStats() (map[string]*storage.Stats, error)
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Refresh},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the leaderboard screen.
type ScoreboardModel struct {
	svc          leaderboard.Service // Nil when no leaderboard is configured
	player       string
	entries      []leaderboard.Entry
	personalBest int
	stats        map[string]*storage.Stats // Nil when the service keeps no stats
	loadErr      error
	table        table.Model
	help         help.Model
	keys         ScoreboardKeyMap
	width        int
	height       int
	quitting     bool
	goingBack    bool // True if user pressed back (not quit)
	showSidebar  bool // Whether to show the player sidebar
}

// NewScoreboardModel creates a new scoreboard model and loads the top
// entries for player.
func NewScoreboardModel(svc leaderboard.Service, player string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		svc:         svc,
		player:      leaderboard.NormalizePlayer(player),
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.load()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 16},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 14},
	}

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Give extra room to the player column
	if extra := tableWidth - 54; extra > 0 {
		columns[1].Width += min(extra, 16)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load fetches the leaderboard and the player's personal best.
func (m *ScoreboardModel) load() {
	m.entries = nil
	m.personalBest = 0
	m.stats = nil
	m.loadErr = nil

	if m.svc != nil {
		entries, err := m.svc.Leaderboard(leaderboard.DefaultLimit)
		if err != nil {
			m.loadErr = err
		} else {
			m.entries = entries
		}

		if m.player != "" {
			best, err := m.svc.PersonalBest(m.player)
			if err != nil && m.loadErr == nil {
				m.loadErr = err
			}
			m.personalBest = best
		}

		if src, ok := m.svc.(PlayerStatsSource); ok {
			stats, err := src.AllPlayersStats()
			if err != nil && m.loadErr == nil {
				m.loadErr = err
			}
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current entries.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		name := e.Player
		if e.Player == m.player {
			name += " *"
		}
		date := "-"
		if !e.Date.IsZero() {
			date = e.Date.Local().Format("Jan 02 15:04")
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", e.Rank),
			name,
			fmt.Sprintf("%d", e.Score),
			date,
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	b.WriteString(titleStyle.Render(centerText(fmt.Sprintf("TOP %d HOPPERS", leaderboard.DefaultLimit), m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the table with the player's stats beside it.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("You\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")
	sidebar.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render(m.playerLabel()))
	sidebar.WriteString("\n")
	sidebar.WriteString(fmt.Sprintf("Best: %d\n", m.personalBest))
	if rank := m.playerRank(); rank > 0 {
		sidebar.WriteString(fmt.Sprintf("Rank: #%d\n", rank))
	} else {
		sidebar.WriteString("Rank: -\n")
	}
	if st := m.playerStats(); st != nil {
		sidebar.WriteString(fmt.Sprintf("Games: %d\n", st.GamesCount))
		sidebar.WriteString(fmt.Sprintf("Avg: %.0f\n", st.AvgScore))
		if !st.LastPlayed.IsZero() {
			sidebar.WriteString(fmt.Sprintf("Last: %s\n", st.LastPlayed.Local().Format("Jan 02")))
		}
	}
	if m.stats != nil {
		sidebar.WriteString(fmt.Sprintf("\nPlayers: %d\n", len(m.stats)))
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the personal best above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	line := fmt.Sprintf("%s  |  best %d", m.playerLabel(), m.personalBest)
	b.WriteString(centerText(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(line), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or a status message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.svc == nil:
		return emptyStyle.Render("Leaderboard unavailable.\nScores are not being recorded.")
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load the leaderboard.\nPress r to retry.")
	case len(m.entries) == 0:
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

func (m ScoreboardModel) playerLabel() string {
	if m.player == "" {
		return "guest"
	}
	return m.player
}

// playerStats returns the player's statistics, or nil.
func (m ScoreboardModel) playerStats() *storage.Stats {
	return m.stats[m.player]
}

// playerRank returns the best rank the player holds on the board, or 0.
func (m ScoreboardModel) playerRank() int {
	for _, e := range m.entries {
		if e.Player == m.player {
			return e.Rank
		}
	}
	return 0
}

// Entries returns the loaded leaderboard rows.
func (m ScoreboardModel) Entries() []leaderboard.Entry {
	return m.entries
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(svc leaderboard.Service, player string, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(svc, player, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
