package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/conorfennell/studydeck/internal/domain"
)

var flashcardHeader = []string{"id", "front", "back", "topics", "explanation"}

var mcqHeader = []string{"id", "question", "choiceA", "choiceB", "choiceC", "choiceD", "correct", "topics", "explanation"}

const letters = "ABCD"

// EncodeFlashcards projects the deck's flashcards back into the tabular
// sheet shape, topics rejoined with ','.
func EncodeFlashcards(w io.Writer, cards []domain.Card) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(flashcardHeader); err != nil {
		return fmt.Errorf("failed to write flashcard header: %w", err)
	}
	for _, c := range cards {
		if c.Type != domain.TypeFlashcard {
			continue
		}
		row := []string{c.ID, c.Front, c.Back, strings.Join(c.Topics, ","), c.Explanation}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write flashcard row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodeMCQs projects the deck's MCQs back into the tabular sheet shape,
// the correct index re-expressed as its letter.
func EncodeMCQs(w io.Writer, cards []domain.Card) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(mcqHeader); err != nil {
		return fmt.Errorf("failed to write mcq header: %w", err)
	}
	for _, c := range cards {
		if c.Type != domain.TypeMCQ {
			continue
		}
		row := []string{
			c.ID,
			c.Question,
			c.Choices[0], c.Choices[1], c.Choices[2], c.Choices[3],
			string(letters[c.Correct]),
			strings.Join(c.Topics, ","),
			c.Explanation,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write mcq row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFlashcardTemplate emits the flashcard sheet with one example row,
// matching the import column contract exactly.
func WriteFlashcardTemplate(w io.Writer) error {
	example := domain.Card{
		ID:          "example-1",
		Type:        domain.TypeFlashcard,
		Front:       "What is the capital of France?",
		Back:        "Paris",
		Topics:      []string{"geography"},
		Explanation: "Replace this row with your own cards.",
	}
	return EncodeFlashcards(w, []domain.Card{example})
}

// WriteMCQTemplate emits the MCQ sheet with one example row.
func WriteMCQTemplate(w io.Writer) error {
	example := domain.Card{
		ID:          "example-2",
		Type:        domain.TypeMCQ,
		Question:    "Which of these is a prime number?",
		Choices:     []string{"4", "6", "7", "9"},
		Correct:     2,
		Topics:      []string{"math"},
		Explanation: "7 has no divisors besides 1 and itself.",
	}
	return EncodeMCQs(w, []domain.Card{example})
}
