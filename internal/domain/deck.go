package domain

import "time"

// DeckVersion is the current snapshot schema version.
const DeckVersion = 1

// Deck is the full card collection plus its derived topic index. The
// topic index is rebuilt from the cards on every structural change and is
// never mutated independently.
type Deck struct {
	Version    int                 `json:"version"`
	CreatedAt  int64               `json:"createdAt"` // epoch ms
	UpdatedAt  int64               `json:"updatedAt"` // epoch ms
	Cards      []Card              `json:"cards"`
	TopicIndex map[string][]string `json:"topicIndex"`
}

// Settings holds the two study preferences, persisted separately from
// the deck.
type Settings struct {
	ShowExplanationByDefault bool `json:"showExplanationByDefault"`
	AutoAdvanceOnCorrect     bool `json:"autoAdvanceOnCorrect"`
}

// NewDeck returns an empty deck stamped with the given creation time.
func NewDeck(now time.Time) *Deck {
	ms := now.UnixMilli()
	return &Deck{
		Version:    DeckVersion,
		CreatedAt:  ms,
		UpdatedAt:  ms,
		Cards:      []Card{},
		TopicIndex: map[string][]string{},
	}
}

// BuildTopicIndex maps every topic to the ids of the cards carrying it,
// in deck order. Topics with no cards do not appear as keys.
func BuildTopicIndex(cards []Card) map[string][]string {
	index := make(map[string][]string)
	for _, c := range cards {
		for _, topic := range c.Topics {
			index[topic] = append(index[topic], c.ID)
		}
	}
	return index
}

// RebuildTopicIndex recomputes the derived topic index from the deck's
// cards.
func (d *Deck) RebuildTopicIndex() {
	d.TopicIndex = BuildTopicIndex(d.Cards)
}

// FindCard returns a pointer to the card with the given id, or nil when
// the deck does not contain it.
func (d *Deck) FindCard(id string) *Card {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			return &d.Cards[i]
		}
	}
	return nil
}
