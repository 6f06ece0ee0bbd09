package leaderboard

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// DefaultQueueSize is the submission backlog kept before new scores drop.
const DefaultQueueSize = 64

type submission struct {
	player string
	score  int
}

// Submitter delivers final scores to a Service on a background goroutine.
// SubmitScore never blocks, so the game loop can call it from a tick.
type Submitter struct {
	svc    Service
	logger *log.Logger

	mu      sync.RWMutex
	started bool
	closed  bool
	queue  chan submission
	done   chan struct{}
	wg     sync.WaitGroup

	delivered atomic.Int64
	dropped   atomic.Int64
}

// NewSubmitter creates a submitter for svc. A nil logger discards output.
func NewSubmitter(svc Service, logger *log.Logger, queueSize int) *Submitter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Submitter{
		svc:    svc,
		logger: logger,
		queue:  make(chan submission, queueSize),
		done:   make(chan struct{}),
	}
}

// Start begins background delivery.
func (s *Submitter) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.closed {
		return
	}
	s.started = true
	s.wg.Add(1)
	go s.run()
}

// SubmitScore queues a score. When the queue is full or the submitter is
// closed the score is dropped and logged.
func (s *Submitter) SubmitScore(player string, score int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		s.drop(player, score, "submitter closed")
		return
	}
	select {
	case s.queue <- submission{player: player, score: score}:
	default:
		s.drop(player, score, "queue full")
	}
}

func (s *Submitter) drop(player string, score int, reason string) {
	s.dropped.Add(1)
	s.logger.Warn("score dropped", "player", player, "score", score, "reason", reason)
}

func (s *Submitter) dropQueued() {
	for {
		select {
		case sub := <-s.queue:
			s.drop(sub.player, sub.score, "submitter never started")
		default:
			return
		}
	}
}

func (s *Submitter) run() {
	defer s.wg.Done()
	for {
		select {
		case sub := <-s.queue:
			s.deliver(sub)
		case <-s.done:
			for {
				select {
				case sub := <-s.queue:
					s.deliver(sub)
				default:
					return
				}
			}
		}
	}
}

func (s *Submitter) deliver(sub submission) {
	if err := s.svc.SubmitScore(sub.player, sub.score); err != nil {
		s.logger.Error("submit score failed", "player", sub.player, "score", sub.score, "err", err)
		return
	}
	s.delivered.Add(1)
	s.logger.Debug("score submitted", "player", sub.player, "score", sub.score)
}

// Close stops accepting scores and waits for queued ones to be delivered
// or for ctx to expire. Scores queued on a submitter that was never
// started are dropped.
func (s *Submitter) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.done)
		if !s.started {
			s.dropQueued()
		}
	}
	s.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("leaderboard: drain submissions: %w", ctx.Err())
	}
}

// Delivered returns the number of scores the service accepted.
func (s *Submitter) Delivered() int64 {
	return s.delivered.Load()
}

// Dropped returns the number of scores discarded without delivery.
func (s *Submitter) Dropped() int64 {
	return s.dropped.Load()
}
