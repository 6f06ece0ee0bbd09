// Package highscore keeps the device-local best score per player.
// Scores are stored through quasilyte/gdata so they land in the platform's
// user data directory; without it the store degrades to memory only.
package highscore

import (
	"fmt"
	"hash/fnv"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// DefaultAppName is the gdata application directory.
const DefaultAppName = "hopbunny"

const maxKeyPrefix = 32

const objectName = "highscores"

// record is the YAML payload of one player's best.
type record struct {
	Player    string    `yaml:"player"`
	Score     int       `yaml:"score"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Store is a per-player high score store. The zero value is not usable;
// use Open or New.
type Store struct {
	manager *gdata.Manager // nil means memory only
	logger  *log.Logger

	mu    sync.Mutex
	cache map[string]int
}

// Open opens the gdata directory for appName. When the platform has no
// usable data directory the store keeps scores in memory and logs why.
func Open(appName string, logger *log.Logger) *Store {
	if appName == "" {
		appName = DefaultAppName
	}
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		if logger != nil {
			logger.Warn("high scores will not persist", "err", err)
		}
		manager = nil
	}
	return New(manager, logger)
}

// New wraps an existing gdata manager. A nil manager gives a memory-only
// store.
func New(manager *gdata.Manager, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		manager: manager,
		logger:  logger,
		cache:   make(map[string]int),
	}
}

// Persistent reports whether scores survive the process.
func (s *Store) Persistent() bool {
	return s.manager != nil
}

// Load returns the best score recorded for player, or 0.
func (s *Store) Load(player string) (int, error) {
	key := PropertyKey(player)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked(key)
}

func (s *Store) loadLocked(key string) (int, error) {
	if best, ok := s.cache[key]; ok {
		return best, nil
	}
	if s.manager == nil || !s.manager.ObjectPropExists(objectName, key) {
		return 0, nil
	}

	data, err := s.manager.LoadObjectProp(objectName, key)
	if err != nil {
		return 0, fmt.Errorf("highscore: load %s: %w", key, err)
	}
	var rec record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return 0, fmt.Errorf("highscore: decode %s: %w", key, err)
	}

	s.cache[key] = rec.Score
	return rec.Score, nil
}

// Save records score if it beats the stored best. Lower scores are
// ignored.
func (s *Store) Save(player string, score int) error {
	key := PropertyKey(player)

	s.mu.Lock()
	defer s.mu.Unlock()

	// An unreadable record is overwritten.
	if best, err := s.loadLocked(key); err == nil && score <= best {
		return nil
	}
	s.cache[key] = score

	if s.manager == nil {
		return nil
	}

	data, err := yaml.Marshal(record{Player: player, Score: score, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("highscore: encode %s: %w", key, err)
	}
	if err := s.manager.SaveObjectProp(objectName, key, data); err != nil {
		s.logger.Error("save high score", "player", player, "err", err)
		return fmt.Errorf("highscore: save %s: %w", key, err)
	}
	s.logger.Debug("high score saved", "player", player, "score", score)
	return nil
}

// PropertyKey maps a player name to a file-safe gdata property name.
// The key is a readable prefix followed by a hash of the trimmed name, so
// names that share a prefix ("Alice" and "alice") get distinct keys.
func PropertyKey(player string) string {
	name := strings.TrimSpace(player)

	var sb strings.Builder
	for _, r := range strings.ToLower(name) {
		if sb.Len() >= maxKeyPrefix {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	if sb.Len() == 0 {
		sb.WriteString("player")
	}

	h := fnv.New64a()
	h.Write([]byte(name))
	return fmt.Sprintf("%s-%016x", sb.String(), h.Sum64())
}
