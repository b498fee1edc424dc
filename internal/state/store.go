package state

import (
	"sync"

	"github.com/rs/zerolog"
)

// Store serializes transitions for callers that share one chart state
// across goroutines, and logs retrieval outcomes.
type Store struct {
	mu     sync.RWMutex
	state  State
	logger zerolog.Logger
}

// NewStore returns a Store starting from the idle state.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{logger: logger}
}

// Dispatch applies ev and returns the resulting state.
func (s *Store) Dispatch(ev Event) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	s.state = Transition(prev, ev)
	s.logOutcome(prev, s.state, ev)
	return s.state
}

// Snapshot returns the current state. State values are never mutated in
// place, so the copy is safe to read without the lock.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) logOutcome(prev, next State, ev Event) {
	switch ev := ev.(type) {
	case Retrieved:
		if !prev.IsCurrent(ev.Request) {
			s.logger.Debug().Str("source", ev.Request.Source.String()).Msg("discarded stale chart")
			return
		}
		if next.Retrieval.Status == StatusError {
			s.logger.Warn().Err(next.Retrieval.Err).Str("source", next.Source.String()).Msg("chart parse failed")
			return
		}
		s.logger.Info().
			Str("source", next.Source.String()).
			Str("title", next.Song.Title()).
			Str("key", next.Keys.Original).
			Msg("chart loaded")
	case RetrievalFailed:
		if !prev.IsCurrent(ev.Request) {
			s.logger.Debug().Str("source", ev.Request.Source.String()).Msg("discarded stale failure")
			return
		}
		s.logger.Warn().
			Err(ev.Err).
			Str("source", next.Source.String()).
			Str("kind", next.Retrieval.ErrorKind.String()).
			Msg("chart retrieval failed")
	case RetryRequested:
		if next.Retrieval.RetryToken != prev.Retrieval.RetryToken {
			s.logger.Info().Int("retry", next.Retrieval.RetryToken).Str("source", next.Source.String()).Msg("retrying chart")
		}
	case SourceChanged:
		if next.Retrieval.Status == StatusError {
			s.logger.Warn().Err(next.Retrieval.Err).Msg("chart parse failed")
		}
	case KeySelected:
		if next.Keys.Selected != prev.Keys.Selected {
			s.logger.Debug().Str("from", next.Keys.Original).Str("to", next.Keys.Selected).Msg("key selected")
		}
	}
}
