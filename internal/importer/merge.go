// Package importer reconciles freshly parsed card batches into the deck
// without losing learning progress, and owns the tabular and JSON wire
// shapes those batches arrive in.
package importer

import "github.com/conorfennell/studydeck/internal/domain"

// Report summarizes one merge for user display; it is advisory, not part
// of the data contract.
type Report struct {
	Added   int
	Updated int
	Total   int
}

// Merge reconciles incoming cards into the deck by id. An existing id
// gets its content fields overwritten but carries its stats and schedule
// forward; a new id keeps its fresh zero state and is appended. Merging
// never deletes: untouched cards stay exactly as they were. The topic
// index is rebuilt once for the whole batch.
func Merge(deck *domain.Deck, incoming []domain.Card) Report {
	var rep Report

	byID := make(map[string]int, len(deck.Cards))
	for i := range deck.Cards {
		byID[deck.Cards[i].ID] = i
	}

	for _, in := range incoming {
		in = domain.Hydrate(in)
		if i, ok := byID[in.ID]; ok {
			in.Stats = deck.Cards[i].Stats
			in.SR = deck.Cards[i].SR
			deck.Cards[i] = in
			rep.Updated++
		} else {
			byID[in.ID] = len(deck.Cards)
			deck.Cards = append(deck.Cards, in)
			rep.Added++
		}
	}

	deck.RebuildTopicIndex()
	rep.Total = len(deck.Cards)
	return rep
}
