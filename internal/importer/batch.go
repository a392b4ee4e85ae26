package importer

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/conorfennell/studydeck/internal/domain"
)

// Batch is the outcome of collecting one set of import files. Cards
// holds every card parsed across all readable files; Errors holds one
// entry per file that contributed nothing. A failed file never aborts
// its siblings.
type Batch struct {
	Cards   []domain.Card
	Files   int
	Skipped int
	Errors  []error
}

// Collect parses every supported file reachable from the given paths
// (files or directories). The whole batch is gathered before any merge,
// so partial imports are never visible to the deck.
func Collect(paths []string) Batch {
	var batch Batch
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			batch.Errors = append(batch.Errors, fmt.Errorf("stat %s: %w", path, err))
			continue
		}
		if info.IsDir() {
			collectDir(path, &batch)
		} else {
			collectFile(path, &batch)
		}
	}
	slog.Info("Import batch collected",
		"files", batch.Files,
		"skipped", batch.Skipped,
		"cards", len(batch.Cards),
		"errors", len(batch.Errors),
	)
	return batch
}

func collectDir(root string, batch *Batch) {
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			collectFile(path, batch)
		}
		return nil
	})
	if walkErr != nil {
		batch.Errors = append(batch.Errors, fmt.Errorf("walking %s: %w", root, walkErr))
	}
}

func collectFile(path string, batch *Batch) {
	var (
		cards []domain.Card
		err   error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		cards, err = decodeFile(path, DecodeTabular)
	case ".json":
		cards, err = decodeFile(path, DecodeDocument)
	default:
		slog.Warn("Skipping unsupported file type", "path", path)
		batch.Skipped++
		return
	}

	if err != nil {
		// This file contributes zero cards; the rest of the batch is
		// unaffected.
		slog.Warn("Dropping unreadable import file", "path", path, "error", err)
		batch.Errors = append(batch.Errors, fmt.Errorf("parsing %s: %w", path, err))
		return
	}

	batch.Files++
	batch.Cards = append(batch.Cards, cards...)
}

func decodeFile(path string, decode func(r io.Reader) ([]domain.Card, error)) ([]domain.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return decode(f)
}
