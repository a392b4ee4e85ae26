package domain

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// CardType discriminates the two kinds of learning items.
type CardType string

const (
	TypeFlashcard CardType = "flashcard"
	TypeMCQ       CardType = "mcq"
)

// ChoiceCount is the fixed number of MCQ choices, ordered A-D.
const ChoiceCount = 4

// Stats tracks per-card performance across study runs.
// Invariant: Correct <= Seen.
type Stats struct {
	Seen     int   `json:"seen"`
	Correct  int   `json:"correct"`
	Streak   int   `json:"streak"`
	LastSeen int64 `json:"lastSeen"` // epoch ms, 0 = never seen
}

// Schedule is the spaced-repetition state of a card.
type Schedule struct {
	IntervalDays int   `json:"intervalDays"`
	NextDue      int64 `json:"nextDue"`      // epoch ms
	LastReviewed int64 `json:"lastReviewed"` // epoch ms
}

// Card is a single learning item, either a flashcard or a multiple-choice
// question, discriminated by Type.
type Card struct {
	ID   string   `json:"id"`
	Type CardType `json:"type"`

	// Flashcard fields.
	Front string `json:"front,omitempty"`
	Back  string `json:"back,omitempty"`

	// MCQ fields. Choices are ordered A-D and Correct is the index of
	// the right choice. Answer is the legacy letter form; Hydrate folds
	// it into Correct and nothing else reads it.
	Question string   `json:"question,omitempty"`
	Choices  []string `json:"choices,omitempty"`
	Correct  int      `json:"correct,omitempty"`
	Answer   string   `json:"answer,omitempty"`

	Explanation string   `json:"explanation,omitempty"`
	Topics      []string `json:"topics"`

	Stats Stats    `json:"stats"`
	SR    Schedule `json:"sr"`
}

// answerLetters maps the legacy letter answer to a choice index.
var answerLetters = map[string]int{"A": 0, "B": 1, "C": 2, "D": 3}

// Hydrate fills in every field a partial card record may be missing: a
// fresh id, the default flashcard type, a normalized topic set, the fixed
// four MCQ choice slots, and the legacy letter-to-index answer shim.
// It is idempotent and never fails; malformed fields fall back to safe
// defaults rather than erroring.
func Hydrate(c Card) Card {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Type != TypeMCQ {
		c.Type = TypeFlashcard
	}

	c.Topics = NormalizeTopics(c.Topics)

	if c.Type == TypeMCQ {
		for len(c.Choices) < ChoiceCount {
			c.Choices = append(c.Choices, "")
		}
		c.Choices = c.Choices[:ChoiceCount]

		// One-way compatibility shim: derive the numeric index from the
		// legacy letter only while the index is still unset. Unrecognized
		// letters fall back to choice A.
		if c.Correct == 0 && c.Answer != "" {
			c.Correct = answerLetters[strings.ToUpper(strings.TrimSpace(c.Answer))]
		}
		if c.Correct < 0 || c.Correct >= ChoiceCount {
			c.Correct = 0
		}
	} else {
		c.Choices = nil
		c.Correct = 0
		c.Answer = ""
	}

	if c.Stats.Seen < 0 {
		c.Stats.Seen = 0
	}
	if c.Stats.Correct < 0 {
		c.Stats.Correct = 0
	}
	if c.Stats.Correct > c.Stats.Seen {
		c.Stats.Correct = c.Stats.Seen
	}
	if c.Stats.Streak < 0 {
		c.Stats.Streak = 0
	}

	return c
}

// NormalizeTopics trims, drops empties, de-duplicates and sorts a topic
// list so enumeration order is stable regardless of input order.
func NormalizeTopics(topics []string) []string {
	out := make([]string, 0, len(topics))
	seen := make(map[string]bool, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// HasTopic reports whether the card carries the given topic label.
func (c Card) HasTopic(topic string) bool {
	for _, t := range c.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// MatchText concatenates every searchable field of the card, lowercased,
// for case-insensitive substring search.
func (c Card) MatchText() string {
	parts := []string{
		c.ID,
		string(c.Type),
		c.Front,
		c.Back,
		c.Question,
		c.Explanation,
	}
	parts = append(parts, c.Choices...)
	parts = append(parts, c.Topics...)
	return strings.ToLower(strings.Join(parts, "\n"))
}
