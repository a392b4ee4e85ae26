package importer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/conorfennell/studydeck/internal/domain"
)

// DecodeDocument reads a structured JSON import: either an object with a
// "cards" array or a bare array of card-shaped objects. Every card is
// hydrated on the way in.
func DecodeDocument(r io.Reader) ([]domain.Card, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var doc struct {
		Cards []domain.Card `json:"cards"`
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		return hydrateAll(doc.Cards), nil
	}

	var cards []domain.Card
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("document is neither a deck object nor a card array: %w", err)
	}
	return hydrateAll(cards), nil
}

func hydrateAll(cards []domain.Card) []domain.Card {
	out := make([]domain.Card, 0, len(cards))
	for _, c := range cards {
		out = append(out, domain.Hydrate(c))
	}
	return out
}

// EncodeDeck writes the full deck structure verbatim as indented JSON.
func EncodeDeck(w io.Writer, deck *domain.Deck) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(deck); err != nil {
		return fmt.Errorf("failed to encode deck: %w", err)
	}
	return nil
}
