package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/hopbunny/internal/config"
	"github.com/vovakirdan/hopbunny/internal/core"
	"github.com/vovakirdan/hopbunny/internal/hop"
	"github.com/vovakirdan/hopbunny/internal/leaderboard"
	"github.com/vovakirdan/hopbunny/internal/storage"
)

type countingFactory struct {
	players []string
}

func (f *countingFactory) New(player string) Game {
	f.players = append(f.players, player)
	return hop.New(config.DefaultHopConfig())
}

func sessionSend(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return sm, cmd
}

func seededBoard(t *testing.T) *leaderboard.Memory {
	t.Helper()
	board := leaderboard.NewMemory()
	for _, s := range []struct {
		player string
		score  int
	}{{"alice", 300}, {"tester", 120}, {"bob", 90}, {"tester", 40}} {
		if err := board.SubmitScore(s.player, s.score); err != nil {
			t.Fatalf("SubmitScore failed: %v", err)
		}
	}
	return board
}

func TestSessionPlayAndBack(t *testing.T) {
	f := &countingFactory{}
	m := NewSessionModel(f.New, seededBoard(t), testRuntime(), nil)

	m, cmd := sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenGame {
		t.Fatalf("screen = %d, want game", m.screen)
	}
	if cmd == nil {
		t.Error("entering the game should start ticking")
	}
	if len(f.players) != 1 || f.players[0] != "tester" {
		t.Errorf("factory calls = %v, want [tester]", f.players)
	}

	m, _ = sessionSend(t, m, TickMsg{})
	m, cmd = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %d, want menu after back", m.screen)
	}
	if m.IsQuitting() {
		t.Error("back should not end the session")
	}
	if cmd != nil {
		if _, isQuit := cmd().(tea.QuitMsg); isQuit {
			t.Error("back should not quit the program")
		}
	}
	if m.menu.best != 120 {
		t.Errorf("menu best = %d, want 120", m.menu.best)
	}
}

func TestSessionLeaderboard(t *testing.T) {
	m := NewSessionModel((&countingFactory{}).New, seededBoard(t), testRuntime(), nil)

	m, _ = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.screen != screenScoreboard {
		t.Fatalf("screen = %d, want scoreboard", m.screen)
	}
	if n := len(m.scoreboard.Entries()); n != 4 {
		t.Errorf("scoreboard has %d entries, want 4", n)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "alice") {
		t.Errorf("scoreboard view should list alice:\n%s", view)
	}

	m, _ = sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Errorf("screen = %d, want menu", m.screen)
	}
}

func TestSessionQuit(t *testing.T) {
	m := NewSessionModel((&countingFactory{}).New, nil, testRuntime(), nil)

	m, cmd := sessionSend(t, m, runeKey("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q in the menu should end the session")
	}
	if m.View() != "" {
		t.Error("view should be empty once quitting")
	}
}

func TestSessionDefaultsToGuest(t *testing.T) {
	cfg := testRuntime()
	cfg.Player = ""
	f := &countingFactory{}
	m := NewSessionModel(f.New, nil, cfg, nil)

	sessionSend(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(f.players) != 1 || f.players[0] != GuestPlayer {
		t.Errorf("factory calls = %v, want [%s]", f.players, GuestPlayer)
	}
}

func TestSessionPlayer(t *testing.T) {
	tests := []struct {
		user string
		want string
	}{
		{"alice", "alice"},
		{"  bob  ", "bob"},
		{"", GuestPlayer},
		{"   ", GuestPlayer},
	}
	for _, tt := range tests {
		if got := SessionPlayer(tt.user); got != tt.want {
			t.Errorf("SessionPlayer(%q) = %q, want %q", tt.user, got, tt.want)
		}
	}
}

func TestScoreboardMarksPlayerRows(t *testing.T) {
	board := seededBoard(t)
	m := NewScoreboardModel(board, "tester", 100, 30)

	if m.personalBest != 120 {
		t.Errorf("personal best = %d, want 120", m.personalBest)
	}
	if rank := m.playerRank(); rank != 2 {
		t.Errorf("player rank = %d, want 2", rank)
	}

	rows := m.table.Rows()
	if len(rows) != 4 {
		t.Fatalf("table has %d rows, want 4", len(rows))
	}
	if rows[0][0] != "#1" || rows[0][1] != "alice" || rows[0][2] != "300" {
		t.Errorf("first row = %v", rows[0])
	}
	if rows[1][1] != "tester *" {
		t.Errorf("own row = %q, want it marked", rows[1][1])
	}
}

func TestScoreboardRefresh(t *testing.T) {
	board := leaderboard.NewMemory()
	m := NewScoreboardModel(board, "tester", 60, 20)
	if len(m.Entries()) != 0 {
		t.Fatal("fresh board should be empty")
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "No scores recorded yet") {
		t.Errorf("empty board view:\n%s", view)
	}

	if err := board.SubmitScore("carol", 55); err != nil {
		t.Fatal(err)
	}
	next, _ := m.Update(runeKey("r"))
	m = next.(ScoreboardModel)
	if len(m.Entries()) != 1 {
		t.Errorf("after refresh got %d entries, want 1", len(m.Entries()))
	}
}

func TestScoreboardSidebarShowsStoredStats(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, s := range []struct {
		player string
		score  int
	}{
		{"tester", 100},
		{"tester", 200},
		{"alice", 50},
	} {
		if err := store.SubmitScore(s.player, s.score); err != nil {
			t.Fatalf("SubmitScore() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, "tester", 120, 30)
	if st := m.playerStats(); st == nil || st.GamesCount != 2 {
		t.Fatalf("player stats = %+v, want 2 games", st)
	}

	view := stripANSI(m.View())
	for _, want := range []string{"Best: 200", "Games: 2", "Avg: 150", "Players: 2"} {
		if !strings.Contains(view, want) {
			t.Errorf("sidebar missing %q:\n%s", want, view)
		}
	}

	// Services without stats leave the sidebar lines out.
	mem := NewScoreboardModel(seededBoard(t), "tester", 120, 30)
	if view := stripANSI(mem.View()); strings.Contains(view, "Games:") {
		t.Errorf("memory board should not show stats:\n%s", view)
	}
}

func TestScoreboardWithoutService(t *testing.T) {
	m := NewScoreboardModel(nil, "tester", 60, 20)
	if view := stripANSI(m.View()); !strings.Contains(view, "Leaderboard unavailable") {
		t.Errorf("view without a service:\n%s", view)
	}
}

func TestMenuSelection(t *testing.T) {
	m := NewMenuModel(testRuntime(), 42)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() != ChoiceLeaderboard {
		t.Errorf("Selected() = %d, want leaderboard", m.Selected())
	}
	if cmd == nil {
		t.Error("selection should end the menu program")
	}

	m = NewMenuModel(testRuntime(), 42)
	if view := stripANSI(m.View()); !strings.Contains(view, "best 42") {
		t.Errorf("menu should show the best score:\n%s", view)
	}
	for range 5 {
		next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
		m = next.(MenuModel)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if m.Selected() != ChoiceQuit || !m.IsQuitting() {
		t.Errorf("last entry should quit, got %d", m.Selected())
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), 0)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	cfg := next.(MenuModel).Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("config size = %dx%d, want 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}
