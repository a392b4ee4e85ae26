// Package session drives one study run over a pool of cards: sequential
// presentation, grading, requeueing and the redo-wrongs re-entry.
package session

import (
	"errors"
	"time"

	"github.com/conorfennell/studydeck/internal/domain"
	"github.com/conorfennell/studydeck/internal/scheduler"
)

// ErrEmptyPool is returned by Start and RedoWrongs when there are no
// cards to study. It is a user-facing notice, not a fatal condition, and
// leaves the session state untouched.
var ErrEmptyPool = errors.New("no cards to study")

// State of the session machine.
type State int

const (
	Idle State = iota
	Active
	Complete
)

// Session is one transient study run. It is never persisted; grading
// writes through to the cards in the pool, which belong to the deck.
type Session struct {
	Pool    []*domain.Card
	Idx     int
	Correct int
	Wrongs  []*domain.Card

	now func() time.Time
}

// New returns an idle session.
func New() *Session {
	return &Session{now: time.Now}
}

// State derives the machine state. Completion is the sentinel Idx ==
// len(Pool), one past the last card; callers must render a summary
// there, never a card.
func (s *Session) State() State {
	switch {
	case len(s.Pool) == 0:
		return Idle
	case s.Idx >= len(s.Pool):
		return Complete
	default:
		return Active
	}
}

// Start begins a run over pool. An empty pool fails with ErrEmptyPool
// and changes nothing; starting from any state otherwise resets all
// counters.
func (s *Session) Start(pool []*domain.Card) error {
	if len(pool) == 0 {
		return ErrEmptyPool
	}
	s.Pool = pool
	s.Idx = 0
	s.Correct = 0
	s.Wrongs = nil
	return nil
}

// Current returns the card under presentation, or nil when the session
// is idle or complete.
func (s *Session) Current() *domain.Card {
	if s.State() != Active {
		return nil
	}
	return s.Pool[s.Idx]
}

// Grade records the outcome for card, rescheduling it and updating the
// run counters. It does not advance the position; Advance is a separate
// step so the caller can show the answer first.
func (s *Session) Grade(card *domain.Card, isCorrect bool) {
	scheduler.Grade(card, isCorrect, s.now())
	if isCorrect {
		s.Correct++
	} else {
		s.Wrongs = append(s.Wrongs, card)
	}
}

// Advance moves to the next card, or to the completion sentinel when the
// current card is the last.
func (s *Session) Advance() {
	if s.Idx < len(s.Pool)-1 {
		s.Idx++
	} else {
		s.Idx = len(s.Pool)
	}
}

// Requeue appends card to the end of the pool for re-presentation later
// in the same run. The pool legitimately grows mid-run; displayed totals
// must follow len(Pool).
func (s *Session) Requeue(card *domain.Card) {
	s.Pool = append(s.Pool, card)
}

// RedoWrongs starts a fresh run over a copy of the cards missed in the
// finished run. It fails with ErrEmptyPool when nothing was missed.
func (s *Session) RedoWrongs() error {
	if len(s.Wrongs) == 0 {
		return ErrEmptyPool
	}
	pool := make([]*domain.Card, len(s.Wrongs))
	copy(pool, s.Wrongs)
	return s.Start(pool)
}
