package leaderboard

import (
	"sort"
	"sync"
	"time"
)

// Memory is an in-process Service. It backs the game when no database is
// configured and serves as a test double.
type Memory struct {
	mu      sync.RWMutex
	entries []Entry
	now     func() time.Time
}

// NewMemory creates an empty in-memory leaderboard.
func NewMemory() *Memory {
	return &Memory{now: time.Now}
}

// SubmitScore records a finished session.
func (m *Memory) SubmitScore(player string, score int) error {
	if err := Validate(player, score); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, Entry{
		Player: NormalizePlayer(player),
		Score:  score,
		Date:   m.now(),
	})
	return nil
}

// Leaderboard returns the best limit entries, highest score first.
// Equal scores rank the earlier session first.
func (m *Memory) Leaderboard(limit int) ([]Entry, error) {
	limit = NormalizeLimit(limit)

	m.mu.RLock()
	sorted := make([]Entry, len(m.entries))
	copy(sorted, m.entries)
	m.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Date.Before(sorted[j].Date)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	for i := range sorted {
		sorted[i].Rank = i + 1
	}
	return sorted, nil
}

// PersonalBest returns the player's highest score, or 0.
func (m *Memory) PersonalBest(player string) (int, error) {
	player = NormalizePlayer(player)
	m.mu.RLock()
	defer m.mu.RUnlock()

	best := 0
	for _, e := range m.entries {
		if e.Player == player && e.Score > best {
			best = e.Score
		}
	}
	return best, nil
}

var _ Service = (*Memory)(nil)
