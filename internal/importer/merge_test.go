package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conorfennell/studydeck/internal/domain"
)

func deckWith(cards ...domain.Card) *domain.Deck {
	deck := domain.NewDeck(time.Now())
	for _, c := range cards {
		deck.Cards = append(deck.Cards, domain.Hydrate(c))
	}
	deck.RebuildTopicIndex()
	return deck
}

func TestMergePreservesProgress(t *testing.T) {
	deck := deckWith(domain.Card{
		ID:    "c1",
		Front: "old front",
		Back:  "back",
		Stats: domain.Stats{Seen: 5, Correct: 3, Streak: 2},
		SR:    domain.Schedule{IntervalDays: 7, NextDue: 123, LastReviewed: 45},
	})

	rep := Merge(deck, []domain.Card{{ID: "c1", Front: "new front", Back: "back"}})

	require.Equal(t, Report{Added: 0, Updated: 1, Total: 1}, rep)
	merged := deck.FindCard("c1")
	require.NotNil(t, merged)
	assert.Equal(t, "new front", merged.Front)
	assert.Equal(t, 5, merged.Stats.Seen)
	assert.Equal(t, 3, merged.Stats.Correct)
	assert.Equal(t, domain.Schedule{IntervalDays: 7, NextDue: 123, LastReviewed: 45}, merged.SR)
}

func TestMergeAddsNewCardsWithFreshState(t *testing.T) {
	deck := deckWith(domain.Card{ID: "c1", Front: "a", Back: "b"})

	rep := Merge(deck, []domain.Card{
		{ID: "c2", Front: "c", Back: "d"},
		{Front: "no id", Back: "gets one"},
	})

	assert.Equal(t, 2, rep.Added)
	assert.Equal(t, 0, rep.Updated)
	assert.Equal(t, 3, rep.Total)
	added := deck.FindCard("c2")
	require.NotNil(t, added)
	assert.Equal(t, domain.Stats{}, added.Stats)
	assert.NotEmpty(t, deck.Cards[2].ID, "cards without ids are hydrated")
}

func TestMergeIsNeverDeletive(t *testing.T) {
	deck := deckWith(
		domain.Card{ID: "keep-1", Front: "a", Back: "b"},
		domain.Card{ID: "keep-2", Front: "c", Back: "d"},
	)

	Merge(deck, []domain.Card{{ID: "new", Front: "e", Back: "f"}})

	require.Len(t, deck.Cards, 3)
	assert.NotNil(t, deck.FindCard("keep-1"))
	assert.NotNil(t, deck.FindCard("keep-2"))
}

func TestMergeRebuildsTopicIndexOnce(t *testing.T) {
	deck := deckWith(domain.Card{ID: "c1", Front: "a", Back: "b", Topics: []string{"old"}})

	Merge(deck, []domain.Card{{ID: "c1", Front: "a", Back: "b", Topics: []string{"new"}}})

	assert.NotContains(t, deck.TopicIndex, "old")
	assert.Equal(t, []string{"c1"}, deck.TopicIndex["new"])
}
