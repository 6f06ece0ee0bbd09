package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hopbunny/internal/core"
	"github.com/vovakirdan/hopbunny/internal/leaderboard"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenScoreboard
)

// SessionModel manages the full session flow: menu -> game or
// leaderboard -> menu. It is the top-level model for SSH sessions and
// for the local menu command.
type SessionModel struct {
	newGame    GameFactory
	board      leaderboard.Service
	config     core.RuntimeConfig
	logger     *log.Logger
	screen     sessionScreen
	menu       MenuModel
	gameModel  *Model
	scoreboard *ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model. board may be nil.
func NewSessionModel(newGame GameFactory, board leaderboard.Service, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.Player == "" {
		cfg.Player = GuestPlayer
	}

	m := SessionModel{
		newGame: newGame,
		board:   board,
		config:  cfg,
		logger:  logger,
	}
	m.menu = NewMenuModel(cfg, m.personalBest())
	return m
}

// personalBest reads the player's best from the leaderboard, 0 on failure.
func (m SessionModel) personalBest() int {
	if m.board == nil {
		return 0
	}
	best, err := m.board.PersonalBest(m.config.Player)
	if err != nil {
		m.logger.Warn("personal best unavailable", "err", err)
		return 0
	}
	return best
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScoreboard:
		return m.updateScoreboard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Selected() {
	case ChoicePlay:
		m.config = m.menu.Config()
		gameModel := NewModel(m.newGame(m.config.Player), m.config, m.logger)
		gameModel.inSession = true
		m.gameModel = &gameModel
		m.screen = screenGame
		return m, m.gameModel.Init()

	case ChoiceLeaderboard:
		board := NewScoreboardModel(m.board, m.config.Player, m.config.ScreenW, m.config.ScreenH)
		m.scoreboard = &board
		m.screen = screenScoreboard
		return m, nil
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		return m.backToMenu()
	}

	return m, cmd
}

// updateScoreboard handles updates when the leaderboard is shown.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if board, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &board
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreboard.IsGoingBack() {
		m.scoreboard = nil
		return m.backToMenu()
	}

	return m, cmd
}

// backToMenu rebuilds the menu with a fresh personal best.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.config, m.personalBest())
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch {
	case m.screen == screenGame && m.gameModel != nil:
		return m.gameModel.View()
	case m.screen == screenScoreboard && m.scoreboard != nil:
		return m.scoreboard.View()
	}
	return m.menu.View()
}

// IsQuitting returns true once the session has ended.
func (m SessionModel) IsQuitting() bool {
	return m.quitting
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(newGame GameFactory, board leaderboard.Service, cfg core.RuntimeConfig, logger *log.Logger) error {
	p := tea.NewProgram(
		NewSessionModel(newGame, board, cfg, logger),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
