package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/conorfennell/studydeck/internal/domain"
)

// The tabular source is two CSV sheets: one for flashcards, one for
// MCQs. Header matching is declarative: each logical field lists its
// accepted column aliases, resolved once per file, case-insensitively.

type column struct {
	field   string
	aliases []string
}

var flashcardColumns = []column{
	{"id", []string{"id", "card id"}},
	{"front", []string{"front"}},
	{"back", []string{"back"}},
	{"topics", []string{"topics", "topic", "tags"}},
	{"explanation", []string{"explanation", "notes"}},
}

var mcqColumns = []column{
	{"id", []string{"id", "card id"}},
	{"question", []string{"question", "prompt"}},
	{"choicea", []string{"choicea", "choice a", "a"}},
	{"choiceb", []string{"choiceb", "choice b", "b"}},
	{"choicec", []string{"choicec", "choice c", "c"}},
	{"choiced", []string{"choiced", "choice d", "d"}},
	{"correct", []string{"correct", "answer"}},
	{"topics", []string{"topics", "topic", "tags"}},
	{"explanation", []string{"explanation", "notes"}},
}

// resolveHeader maps each logical field to its column position, or omits
// it when no alias matches.
func resolveHeader(header []string, columns []column) map[string]int {
	resolved := make(map[string]int, len(columns))
	for _, col := range columns {
		for i, cell := range header {
			cell = strings.ToLower(strings.TrimSpace(cell))
			for _, alias := range col.aliases {
				if cell == alias {
					resolved[col.field] = i
					break
				}
			}
			if _, ok := resolved[col.field]; ok {
				break
			}
		}
	}
	return resolved
}

func cellAt(record []string, resolved map[string]int, field string) string {
	i, ok := resolved[field]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// SplitTopics splits a topics cell on ';' or ',', trimming each token
// and dropping empties.
func SplitTopics(cell string) []string {
	tokens := strings.FieldsFunc(cell, func(r rune) bool {
		return r == ';' || r == ','
	})
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// DecodeTabular reads one CSV sheet and returns its hydrated cards. The
// sheet kind is sniffed from the header: question+choiceA marks the MCQ
// sheet, front+back the flashcard sheet.
func DecodeTabular(r io.Reader) ([]domain.Card, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	if resolved := resolveHeader(header, mcqColumns); has(resolved, "question", "choicea") {
		return decodeRows(cr, resolved, mcqRow)
	}
	if resolved := resolveHeader(header, flashcardColumns); has(resolved, "front", "back") {
		return decodeRows(cr, resolved, flashcardRow)
	}
	return nil, fmt.Errorf("header matches neither the flashcard nor the MCQ sheet: %v", header)
}

func has(resolved map[string]int, fields ...string) bool {
	for _, f := range fields {
		if _, ok := resolved[f]; !ok {
			return false
		}
	}
	return true
}

func decodeRows(cr *csv.Reader, resolved map[string]int, row func([]string, map[string]int) domain.Card) ([]domain.Card, error) {
	var cards []domain.Card
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return cards, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		card := row(record, resolved)
		if card.Front == "" && card.Question == "" {
			continue // blank filler row
		}
		cards = append(cards, domain.Hydrate(card))
	}
}

func flashcardRow(record []string, resolved map[string]int) domain.Card {
	return domain.Card{
		ID:          cellAt(record, resolved, "id"),
		Type:        domain.TypeFlashcard,
		Front:       cellAt(record, resolved, "front"),
		Back:        cellAt(record, resolved, "back"),
		Topics:      SplitTopics(cellAt(record, resolved, "topics")),
		Explanation: cellAt(record, resolved, "explanation"),
	}
}

func mcqRow(record []string, resolved map[string]int) domain.Card {
	return domain.Card{
		ID:       cellAt(record, resolved, "id"),
		Type:     domain.TypeMCQ,
		Question: cellAt(record, resolved, "question"),
		Choices: []string{
			cellAt(record, resolved, "choicea"),
			cellAt(record, resolved, "choiceb"),
			cellAt(record, resolved, "choicec"),
			cellAt(record, resolved, "choiced"),
		},
		// The correct cell is a letter A-D; hydration folds it into the
		// numeric index.
		Answer:      cellAt(record, resolved, "correct"),
		Topics:      SplitTopics(cellAt(record, resolved, "topics")),
		Explanation: cellAt(record, resolved, "explanation"),
	}
}
