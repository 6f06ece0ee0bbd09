// Package leaderboard defines the score service shared by every front end
// and the asynchronous submitter that feeds it finished sessions.
package leaderboard

import (
	"errors"
	"strings"
	"time"
)

// DefaultLimit is the number of entries a leaderboard shows.
const DefaultLimit = 10

// MaxPlayerLen bounds stored player names.
const MaxPlayerLen = 32

var (
	ErrEmptyPlayer   = errors.New("leaderboard: player name is empty")
	ErrNegativeScore = errors.New("leaderboard: score is negative")
)

// Entry is one ranked leaderboard row.
type Entry struct {
	Rank   int
	Player string
	Score  int
	Date   time.Time
}

// Service stores finished sessions and answers ranking queries.
type Service interface {
	SubmitScore(player string, score int) error
	Leaderboard(limit int) ([]Entry, error)
	PersonalBest(player string) (int, error)
}

// NormalizePlayer trims the name and caps its length.
func NormalizePlayer(player string) string {
	player = strings.TrimSpace(player)
	if r := []rune(player); len(r) > MaxPlayerLen {
		player = string(r[:MaxPlayerLen])
	}
	return player
}

// Validate checks a submission before it is stored.
func Validate(player string, score int) error {
	if NormalizePlayer(player) == "" {
		return ErrEmptyPlayer
	}
	if score < 0 {
		return ErrNegativeScore
	}
	return nil
}

// NormalizeLimit maps non-positive limits to DefaultLimit.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
