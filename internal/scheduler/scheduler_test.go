package scheduler

import (
	"testing"
	"time"

	"github.com/conorfennell/studydeck/internal/domain"
)

func TestIntervalFollowsStreak(t *testing.T) {
	// Streaks 0..4 after a correct answer land on steps 1,3,7,14,14:
	// anything at or past the end of the table stays on 14 days.
	testCases := []struct {
		priorStreak  int
		expectedDays int
	}{
		{0, 3}, // streak becomes 1 -> step 3
		{1, 7},
		{2, 14},
		{3, 14},
		{10, 14},
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, tc := range testCases {
		card := &domain.Card{ID: "x", Stats: domain.Stats{Seen: tc.priorStreak, Correct: tc.priorStreak, Streak: tc.priorStreak}}
		Grade(card, true, now)
		if card.SR.IntervalDays != tc.expectedDays {
			t.Errorf("prior streak %d: expected %d days, got %d", tc.priorStreak, tc.expectedDays, card.SR.IntervalDays)
		}
	}
}

func TestFirstGradeStartsAtOneDay(t *testing.T) {
	// A brand new card answered wrong sits on the 1-day step.
	card := &domain.Card{ID: "x"}
	Grade(card, false, time.Now())
	if card.SR.IntervalDays != Steps[0] {
		t.Errorf("Expected %d day interval, got %d", Steps[0], card.SR.IntervalDays)
	}
}

func TestIncorrectResetsStreak(t *testing.T) {
	for _, priorStreak := range []int{0, 1, 3, 25} {
		card := &domain.Card{
			ID:    "x",
			Stats: domain.Stats{Seen: priorStreak, Correct: priorStreak, Streak: priorStreak},
		}
		Grade(card, false, time.Now())

		if card.Stats.Streak != 0 {
			t.Errorf("prior streak %d: expected streak reset to 0, got %d", priorStreak, card.Stats.Streak)
		}
		if card.SR.IntervalDays != 1 {
			t.Errorf("prior streak %d: expected 1 day interval, got %d", priorStreak, card.SR.IntervalDays)
		}
		if card.Stats.Correct != priorStreak {
			t.Errorf("prior streak %d: correct count must not be decremented, got %d", priorStreak, card.Stats.Correct)
		}
	}
}

func TestDueDateArithmetic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	card := &domain.Card{ID: "x"}
	Grade(card, true, now)

	ms := now.UnixMilli()
	if card.Stats.LastSeen != ms {
		t.Errorf("Expected lastSeen %d, got %d", ms, card.Stats.LastSeen)
	}
	if card.SR.LastReviewed != ms {
		t.Errorf("Expected lastReviewed %d, got %d", ms, card.SR.LastReviewed)
	}
	expectedDue := ms + int64(card.SR.IntervalDays)*86_400_000
	if card.SR.NextDue != expectedDue {
		t.Errorf("Expected nextDue %d, got %d", expectedDue, card.SR.NextDue)
	}
}

func TestCorrectNeverExceedsSeen(t *testing.T) {
	outcomes := []bool{true, true, false, true, false, false, true, true, true, false}
	card := &domain.Card{ID: "x"}
	for i, ok := range outcomes {
		Grade(card, ok, time.Now())
		if card.Stats.Correct > card.Stats.Seen {
			t.Fatalf("after grade %d: correct %d > seen %d", i, card.Stats.Correct, card.Stats.Seen)
		}
	}
	if card.Stats.Seen != len(outcomes) {
		t.Errorf("Expected seen %d, got %d", len(outcomes), card.Stats.Seen)
	}
	if card.Stats.Correct != 6 {
		t.Errorf("Expected correct 6, got %d", card.Stats.Correct)
	}
}

func TestNextDueMatchesGrade(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	card := &domain.Card{ID: "x", Stats: domain.Stats{Seen: 2, Correct: 2, Streak: 2}}
	Grade(card, true, now)
	if got := NextDue(card.Stats.Streak, now); got != card.SR.NextDue {
		t.Errorf("Expected NextDue %d to match graded card %d", got, card.SR.NextDue)
	}
}
