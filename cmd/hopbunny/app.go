package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/user"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/hopbunny/internal/config"
	"github.com/vovakirdan/hopbunny/internal/core"
	"github.com/vovakirdan/hopbunny/internal/highscore"
	"github.com/vovakirdan/hopbunny/internal/hop"
	"github.com/vovakirdan/hopbunny/internal/leaderboard"
	"github.com/vovakirdan/hopbunny/internal/platform/tui"
	"github.com/vovakirdan/hopbunny/internal/storage"
)

// drainTimeout bounds how long pending leaderboard writes may delay exit.
const drainTimeout = 3 * time.Second

// newLogger builds the logger from --log-level and --log-file.
// Interactive commands own the terminal, so without a log file their
// logs are discarded. The returned func closes the log file.
func newLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { f.Close() }
	case interactive:
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "hopbunny",
		Level:           level,
	})
	return logger, closeFn, nil
}

// mustLogger is newLogger for command handlers.
func mustLogger(interactive bool) (*log.Logger, func()) {
	logger, closeFn, err := newLogger(interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return logger, closeFn
}

// currentPlayer resolves the player name: --player, then the OS user.
func currentPlayer() string {
	if name := leaderboard.NormalizePlayer(flagPlayer); name != "" {
		return name
	}
	if u, err := user.Current(); err == nil {
		if name := leaderboard.NormalizePlayer(u.Username); name != "" {
			return name
		}
	}
	if name := leaderboard.NormalizePlayer(os.Getenv("USER")); name != "" {
		return name
	}
	return core.DefaultConfig().Player
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

// runtimeConfig builds the runtime settings for a local session.
func runtimeConfig(width, height int) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
		Player:   currentPlayer(),
	}
}

// loadHopConfig loads the game config and applies --difficulty.
func loadHopConfig() (config.HopConfig, error) {
	cfg, err := config.LoadHop(flagConfig)
	if err != nil {
		return config.HopConfig{}, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return config.HopConfig{}, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyHopPreset(&cfg, preset)
	}
	return cfg, nil
}

// services holds the collaborators shared by every game of one process.
type services struct {
	logger     *log.Logger
	cfg        config.HopConfig
	store      *storage.Store // Nil when the database could not be opened
	submitter  *leaderboard.Submitter
	highscores *highscore.Store
}

// openServices opens the leaderboard database and the local high-score
// store. A database failure is logged and the game runs without it.
func openServices(logger *log.Logger) (*services, error) {
	cfg, err := loadHopConfig()
	if err != nil {
		return nil, err
	}

	s := &services{
		logger:     logger,
		cfg:        cfg,
		highscores: highscore.Open(highscore.DefaultAppName, logger),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, leaderboard disabled", "path", flagDBPath, "err", err)
	} else {
		s.store = store
		s.submitter = leaderboard.NewSubmitter(store, logger, leaderboard.DefaultQueueSize)
		s.submitter.Start()
	}

	return s, nil
}

// mustServices is openServices for command handlers.
func mustServices(logger *log.Logger) *services {
	s, err := openServices(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return s
}

// board returns the leaderboard, or nil when there is none.
func (s *services) board() leaderboard.Service {
	if s.store == nil {
		return nil
	}
	return s.store
}

// newGame builds a game wired to the shared collaborators.
func (s *services) newGame() *hop.Game {
	opts := []hop.Option{hop.WithHighScoreStore(s.highscores)}
	if s.submitter != nil {
		opts = append(opts, hop.WithScoreSink(s.submitter))
	}
	return hop.New(s.cfg, opts...)
}

// gameFactory adapts newGame for menu and SSH sessions.
func (s *services) gameFactory() tui.GameFactory {
	return func(string) tui.Game {
		return s.newGame()
	}
}

// Close drains pending leaderboard writes and closes the database.
func (s *services) Close() {
	if s.submitter != nil {
		ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
		defer cancel()
		if err := s.submitter.Close(ctx); err != nil {
			s.logger.Warn("leaderboard submissions lost", "err", err)
		}
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("could not close scores database", "err", err)
		}
	}
}
