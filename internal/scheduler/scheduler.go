package scheduler

import (
	"time"

	"github.com/conorfennell/studydeck/internal/domain"
)

// Steps is the fixed review interval table in days, indexed by streak.
// Streaks past the end of the table stay on the last step, so a card is
// never scheduled more than 14 days out.
var Steps = [...]int{1, 3, 7, 14}

const msPerDay = int64(24 * time.Hour / time.Millisecond)

// Grade records one graded attempt on the card and reschedules it in
// place. A correct answer extends the streak; a miss resets the streak
// to zero (the correct count is never decremented) and drops the card
// back to the one-day step.
func Grade(card *domain.Card, isCorrect bool, now time.Time) {
	card.Stats.Seen++
	if isCorrect {
		card.Stats.Correct++
		card.Stats.Streak++
	} else {
		card.Stats.Streak = 0
	}

	ms := now.UnixMilli()
	card.Stats.LastSeen = ms

	step := card.Stats.Streak
	if step > len(Steps)-1 {
		step = len(Steps) - 1
	}
	days := Steps[step]

	card.SR.IntervalDays = days
	card.SR.LastReviewed = ms
	card.SR.NextDue = ms + int64(days)*msPerDay
}

// NextDue returns the due timestamp a card would get if graded now with
// the given streak, without touching any card.
func NextDue(streak int, now time.Time) int64 {
	step := streak
	if step > len(Steps)-1 {
		step = len(Steps) - 1
	}
	return now.UnixMilli() + int64(Steps[step])*msPerDay
}
