// Package filter derives read-only views of a deck. Criteria compose in
// a fixed order so shuffling and truncation always act on the already
// narrowed set.
package filter

import (
	"math/rand"
	"strings"
	"time"

	"github.com/conorfennell/studydeck/internal/domain"
)

// Options narrows, orders and truncates a deck. Every field is optional;
// the zero value selects the whole deck in stored order.
type Options struct {
	IDs       []string        // restrict to an explicit id set
	Type      domain.CardType // "" = both kinds
	Topic     string          // card must carry this label
	Search    string          // case-insensitive substring across all text fields
	WrongOnly bool            // ever missed at least once: correct < seen
	DueOnly   bool            // sr.nextDue <= now
	Shuffle   bool
	Limit     int // 0 = unlimited; applied after shuffle

	Now  time.Time  // due cutoff; zero means time.Now()
	Rand *rand.Rand // shuffle source; nil means the shared source
}

// Apply returns the cards matching opts, in a fresh slice of pointers
// into the deck. Mutating a returned card mutates the deck's copy. An
// empty result is normal, not an error.
func Apply(deck *domain.Deck, opts Options) []*domain.Card {
	out := make([]*domain.Card, 0, len(deck.Cards))
	for i := range deck.Cards {
		out = append(out, &deck.Cards[i])
	}

	if len(opts.IDs) > 0 {
		wanted := make(map[string]bool, len(opts.IDs))
		for _, id := range opts.IDs {
			wanted[id] = true
		}
		out = keep(out, func(c *domain.Card) bool { return wanted[c.ID] })
	}
	if opts.Type != "" {
		out = keep(out, func(c *domain.Card) bool { return c.Type == opts.Type })
	}
	if opts.Topic != "" {
		out = keep(out, func(c *domain.Card) bool { return c.HasTopic(opts.Topic) })
	}
	if opts.Search != "" {
		needle := strings.ToLower(opts.Search)
		out = keep(out, func(c *domain.Card) bool {
			return strings.Contains(c.MatchText(), needle)
		})
	}
	if opts.WrongOnly {
		out = keep(out, func(c *domain.Card) bool {
			return c.Stats.Correct < c.Stats.Seen
		})
	}
	if opts.DueOnly {
		now := opts.Now
		if now.IsZero() {
			now = time.Now()
		}
		cutoff := now.UnixMilli()
		out = keep(out, func(c *domain.Card) bool { return c.SR.NextDue <= cutoff })
	}

	if opts.Shuffle {
		swap := func(i, j int) { out[i], out[j] = out[j], out[i] }
		if opts.Rand != nil {
			opts.Rand.Shuffle(len(out), swap)
		} else {
			rand.Shuffle(len(out), swap)
		}
	}
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}

func keep(cards []*domain.Card, pred func(*domain.Card) bool) []*domain.Card {
	kept := cards[:0]
	for _, c := range cards {
		if pred(c) {
			kept = append(kept, c)
		}
	}
	return kept
}
