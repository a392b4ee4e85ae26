package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/pflag"

	"github.com/conorfennell/studydeck/internal/config"
	"github.com/conorfennell/studydeck/internal/domain"
	"github.com/conorfennell/studydeck/internal/filter"
	"github.com/conorfennell/studydeck/internal/gitsource"
	"github.com/conorfennell/studydeck/internal/importer"
	"github.com/conorfennell/studydeck/internal/storage"
)

type app struct {
	cfg   *config.Config
	store *storage.Store
	flags *pflag.FlagSet
}

func addCommandFlags(f *pflag.FlagSet) {
	f.String("git", "", "Git URL of a deck repository to import from")
	f.Bool("replace", false, "Replace the whole deck instead of merging on import")
	f.String("out", ".", "Output directory for export and template")
	f.String("format", "json", "Export format: json or csv")

	// Filter flags shared by study and list.
	f.String("type", "", "Only cards of this type: flashcard or mcq")
	f.String("topic", "", "Only cards carrying this topic")
	f.String("search", "", "Only cards containing this text")
	f.Bool("wrong", false, "Only cards ever answered wrong")
	f.Bool("all", false, "Study all matching cards, not just due ones")
	f.Int("limit", 0, "Cap the number of cards (0 = no cap)")
}

func (a *app) filterOptions(dueOnly, shuffle bool) filter.Options {
	typ, _ := a.flags.GetString("type")
	topic, _ := a.flags.GetString("topic")
	search, _ := a.flags.GetString("search")
	wrong, _ := a.flags.GetBool("wrong")
	all, _ := a.flags.GetBool("all")
	limit, _ := a.flags.GetInt("limit")
	return filter.Options{
		Type:      domain.CardType(typ),
		Topic:     topic,
		Search:    search,
		WrongOnly: wrong,
		DueOnly:   dueOnly && !all,
		Shuffle:   shuffle,
		Limit:     limit,
	}
}

func (a *app) runImport(paths []string) error {
	if gitURL, _ := a.flags.GetString("git"); gitURL != "" {
		local, err := gitsource.LocalPath(a.cfg.DataDir, gitURL)
		if err != nil {
			return err
		}
		if err := gitsource.Refresh(gitURL, local); err != nil {
			return err
		}
		paths = append(paths, local)
	}
	if len(paths) == 0 {
		return fmt.Errorf("nothing to import: give file or directory paths, or --git")
	}

	batch := importer.Collect(paths)

	deck := a.store.LoadDeck(a.cfg.Profile)
	if replace, _ := a.flags.GetBool("replace"); replace {
		deck = domain.NewDeck(time.Now())
	}
	rep := importer.Merge(deck, batch.Cards)
	if err := a.store.ReplaceDeck(a.cfg.Profile, deck); err != nil {
		slog.Warn("Deck changes may not survive a restart", "error", err)
	}

	fmt.Printf("Imported %d added, %d updated, %d total cards from %d files.\n",
		rep.Added, rep.Updated, rep.Total, batch.Files)
	for _, err := range batch.Errors {
		fmt.Printf("- %s\n", err)
	}
	return nil
}

func (a *app) runExport() error {
	deck := a.store.LoadDeck(a.cfg.Profile)
	out, _ := a.flags.GetString("out")
	format, _ := a.flags.GetString("format")

	switch format {
	case "json":
		path := filepath.Join(out, "deck.json")
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer f.Close()
		if err := importer.EncodeDeck(f, deck); err != nil {
			return err
		}
		fmt.Printf("Wrote %s (%d cards).\n", path, len(deck.Cards))
	case "csv":
		if err := writeSheet(filepath.Join(out, "flashcards.csv"), deck.Cards, importer.EncodeFlashcards); err != nil {
			return err
		}
		if err := writeSheet(filepath.Join(out, "mcq.csv"), deck.Cards, importer.EncodeMCQs); err != nil {
			return err
		}
		fmt.Printf("Wrote flashcards.csv and mcq.csv to %s.\n", out)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	return nil
}

func writeSheet(path string, cards []domain.Card, encode func(io.Writer, []domain.Card) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return encode(f, cards)
}

func (a *app) runTemplate(args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if err := writeSheet(filepath.Join(dir, "flashcards.csv"), nil, func(w io.Writer, _ []domain.Card) error {
		return importer.WriteFlashcardTemplate(w)
	}); err != nil {
		return err
	}
	if err := writeSheet(filepath.Join(dir, "mcq.csv"), nil, func(w io.Writer, _ []domain.Card) error {
		return importer.WriteMCQTemplate(w)
	}); err != nil {
		return err
	}
	fmt.Printf("Wrote template sheets to %s.\n", dir)
	return nil
}

func (a *app) runList() error {
	deck := a.store.LoadDeck(a.cfg.Profile)
	cards := filter.Apply(deck, a.filterOptions(false, false))

	now := time.Now().UnixMilli()
	for _, c := range cards {
		prompt := c.Front
		if c.Type == domain.TypeMCQ {
			prompt = c.Question
		}
		due := "due"
		if c.SR.NextDue > now {
			due = "in " + time.Until(time.UnixMilli(c.SR.NextDue)).Round(time.Hour).String()
		}
		fmt.Printf("%-36s  %-9s  streak %d  %d/%d  %-8s  %s\n",
			c.ID, c.Type, c.Stats.Streak, c.Stats.Correct, c.Stats.Seen, due, prompt)
	}
	fmt.Printf("%d cards.\n", len(cards))
	return nil
}

func (a *app) runSettings() error {
	settings := domain.Settings{
		ShowExplanationByDefault: a.cfg.Defaults.ShowExplanation,
		AutoAdvanceOnCorrect:     a.cfg.Defaults.AutoAdvance,
	}
	if err := a.store.SaveSettings(a.cfg.Profile, settings); err != nil {
		return err
	}
	fmt.Printf("Saved settings: show_explanation=%t auto_advance=%t\n",
		settings.ShowExplanationByDefault, settings.AutoAdvanceOnCorrect)
	return nil
}

func (a *app) runClear() error {
	if err := a.store.ReplaceDeck(a.cfg.Profile, domain.NewDeck(time.Now())); err != nil {
		return err
	}
	fmt.Println("Deck cleared.")
	return nil
}
