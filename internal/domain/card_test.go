package domain

import (
	"reflect"
	"strings"
	"testing"
)

func TestHydrateDefaults(t *testing.T) {
	testCases := []struct {
		name  string
		in    Card
		check func(t *testing.T, c Card)
	}{
		{
			name: "assigns id when missing",
			in:   Card{Front: "f", Back: "b"},
			check: func(t *testing.T, c Card) {
				if c.ID == "" {
					t.Error("Expected a generated id")
				}
			},
		},
		{
			name: "keeps existing id",
			in:   Card{ID: "card-1", Front: "f"},
			check: func(t *testing.T, c Card) {
				if c.ID != "card-1" {
					t.Errorf("Expected id to stay 'card-1', got '%s'", c.ID)
				}
			},
		},
		{
			name: "defaults type to flashcard",
			in:   Card{ID: "x"},
			check: func(t *testing.T, c Card) {
				if c.Type != TypeFlashcard {
					t.Errorf("Expected type flashcard, got '%s'", c.Type)
				}
			},
		},
		{
			name: "unknown type falls back to flashcard",
			in:   Card{ID: "x", Type: "essay"},
			check: func(t *testing.T, c Card) {
				if c.Type != TypeFlashcard {
					t.Errorf("Expected type flashcard, got '%s'", c.Type)
				}
			},
		},
		{
			name: "pads mcq choices to four",
			in:   Card{ID: "x", Type: TypeMCQ, Choices: []string{"only one"}},
			check: func(t *testing.T, c Card) {
				if len(c.Choices) != ChoiceCount {
					t.Fatalf("Expected %d choices, got %d", ChoiceCount, len(c.Choices))
				}
				if c.Choices[0] != "only one" || c.Choices[3] != "" {
					t.Errorf("Unexpected choices: %v", c.Choices)
				}
			},
		},
		{
			name: "clamps correct above seen",
			in:   Card{ID: "x", Stats: Stats{Seen: 2, Correct: 5}},
			check: func(t *testing.T, c Card) {
				if c.Stats.Correct != 2 {
					t.Errorf("Expected correct clamped to 2, got %d", c.Stats.Correct)
				}
			},
		},
		{
			name: "topics become an empty set when absent",
			in:   Card{ID: "x"},
			check: func(t *testing.T, c Card) {
				if c.Topics == nil || len(c.Topics) != 0 {
					t.Errorf("Expected empty topic set, got %v", c.Topics)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.check(t, Hydrate(tc.in))
		})
	}
}

func TestHydrateLegacyAnswerLetter(t *testing.T) {
	testCases := []struct {
		name     string
		answer   string
		correct  int
		expected int
	}{
		{"letter A", "A", 0, 0},
		{"letter B", "B", 0, 1},
		{"lowercase c", "c", 0, 2},
		{"letter D with spaces", " D ", 0, 3},
		{"unrecognized letter defaults to 0", "Z", 0, 0},
		{"numeric index wins over letter", "B", 2, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := Hydrate(Card{
				ID:      "x",
				Type:    TypeMCQ,
				Choices: []string{"w", "x", "y", "z"},
				Correct: tc.correct,
				Answer:  tc.answer,
			})
			if c.Correct != tc.expected {
				t.Errorf("Expected correct=%d, got %d", tc.expected, c.Correct)
			}
		})
	}
}

func TestHydrateIdempotent(t *testing.T) {
	inputs := []Card{
		{},
		{Front: "f", Back: "b", Topics: []string{"b", "a", "a", " "}},
		{Type: TypeMCQ, Question: "q", Answer: "C"},
		{ID: "x", Type: TypeMCQ, Question: "q", Choices: []string{"1", "2", "3", "4"}, Correct: 3},
		{Stats: Stats{Seen: -1, Correct: -2, Streak: -3}},
	}

	for _, in := range inputs {
		once := Hydrate(in)
		twice := Hydrate(once)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Hydrate is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
		}
	}
}

func TestNormalizeTopics(t *testing.T) {
	got := NormalizeTopics([]string{" go ", "algebra", "go", "", "  "})
	want := []string{"algebra", "go"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestBuildTopicIndex(t *testing.T) {
	cards := []Card{
		{ID: "1", Topics: []string{"A"}},
		{ID: "2", Topics: []string{"B"}},
		{ID: "3", Topics: []string{"A", "B"}},
		{ID: "4", Topics: []string{}},
	}
	index := BuildTopicIndex(cards)

	if len(index) != 2 {
		t.Fatalf("Expected 2 topics, got %d: %v", len(index), index)
	}
	if !reflect.DeepEqual(index["A"], []string{"1", "3"}) {
		t.Errorf("Unexpected ids for topic A: %v", index["A"])
	}
	if !reflect.DeepEqual(index["B"], []string{"2", "3"}) {
		t.Errorf("Unexpected ids for topic B: %v", index["B"])
	}
	if _, ok := index[""]; ok {
		t.Error("Topics with zero cards must not appear as keys")
	}
}

func TestMatchTextCoversAllFields(t *testing.T) {
	c := Hydrate(Card{
		ID:          "abc",
		Type:        TypeMCQ,
		Question:    "Which PLANET?",
		Choices:     []string{"Mars", "Venus", "", ""},
		Topics:      []string{"Space"},
		Explanation: "Fourth rock",
	})
	text := c.MatchText()
	for _, needle := range []string{"abc", "mcq", "which planet?", "venus", "space", "fourth rock"} {
		if !strings.Contains(text, needle) {
			t.Errorf("Expected match text to contain '%s', got:\n%s", needle, text)
		}
	}
}
