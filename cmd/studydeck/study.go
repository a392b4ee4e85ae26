package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/conorfennell/studydeck/internal/domain"
	"github.com/conorfennell/studydeck/internal/filter"
	"github.com/conorfennell/studydeck/internal/session"
)

func (a *app) runStudy() error {
	settings := a.store.LoadSettings(a.cfg.Profile, domain.Settings{
		ShowExplanationByDefault: a.cfg.Defaults.ShowExplanation,
		AutoAdvanceOnCorrect:     a.cfg.Defaults.AutoAdvance,
	})

	deck := a.store.LoadDeck(a.cfg.Profile)
	pool := filter.Apply(deck, a.filterOptions(true, true))

	sess := session.New()
	if err := sess.Start(pool); err != nil {
		if errors.Is(err, session.ErrEmptyPool) {
			fmt.Println("No cards match; nothing is due. Try --all.")
			return nil
		}
		return err
	}
	if n, err := a.store.NextSessionNumber(a.cfg.Profile); err != nil {
		slog.Warn("Failed to advance session counter", "error", err)
	} else {
		fmt.Printf("Session #%d: %d cards.\n", n, len(sess.Pool))
	}

	in := bufio.NewScanner(os.Stdin)
	for {
		quit := a.runCards(sess, deck, settings, in)
		a.printSummary(sess)
		if quit || len(sess.Wrongs) == 0 {
			return nil
		}

		fmt.Print("Redo the cards you missed? [y/N] ")
		if answer, ok := readLine(in); !ok || !strings.HasPrefix(answer, "y") {
			return nil
		}
		if err := sess.RedoWrongs(); err != nil {
			return err
		}
		fmt.Printf("Redoing %d missed cards.\n", len(sess.Pool))
	}
}

// runCards drives the active session until completion or quit. Returns
// true when the user quit early.
func (a *app) runCards(sess *session.Session, deck *domain.Deck, settings domain.Settings, in *bufio.Scanner) bool {
	for sess.State() == session.Active {
		card := sess.Current()
		fmt.Printf("\n[%d/%d]\n", sess.Idx+1, len(sess.Pool))

		var isCorrect bool
		var action string
		if card.Type == domain.TypeMCQ {
			isCorrect, action = askMCQ(card, in)
		} else {
			isCorrect, action = askFlashcard(card, in)
		}

		switch action {
		case "quit":
			return true
		case "requeue":
			// Repeat later: not graded now, back of the pool.
			sess.Requeue(card)
			sess.Advance()
			continue
		}

		sess.Grade(card, isCorrect)
		// Graded cards are pointers into this deck, so persisting the
		// run is just saving the same snapshot again.
		if err := a.store.SaveDeck(a.cfg.Profile, deck); err != nil {
			slog.Warn("Progress may not survive a restart", "error", err)
		}

		if card.Explanation != "" && settings.ShowExplanationByDefault {
			fmt.Printf("Explanation: %s\n", card.Explanation)
		}

		// Auto-advance skips the pause, never the grading.
		if !(isCorrect && settings.AutoAdvanceOnCorrect) && sess.Idx < len(sess.Pool)-1 {
			fmt.Print("Press enter for the next card... ")
			readLine(in)
		}
		sess.Advance()
	}
	return false
}

func askFlashcard(card *domain.Card, in *bufio.Scanner) (bool, string) {
	fmt.Printf("Q: %s\n", card.Front)
	fmt.Print("Press enter to reveal... ")
	readLine(in)
	fmt.Printf("A: %s\n", card.Back)
	for {
		fmt.Print("Did you know it? [y]es / [n]o / [r]epeat later / [q]uit: ")
		answer, ok := readLine(in)
		if !ok {
			return false, "quit"
		}
		switch answer {
		case "y":
			return true, ""
		case "n":
			return false, ""
		case "r":
			return false, "requeue"
		case "q":
			return false, "quit"
		}
	}
}

func askMCQ(card *domain.Card, in *bufio.Scanner) (bool, string) {
	fmt.Printf("Q: %s\n", card.Question)
	for i, choice := range card.Choices {
		fmt.Printf("  %c) %s\n", 'A'+i, choice)
	}
	for {
		fmt.Print("Your answer [a-d] / [r]epeat later / [q]uit: ")
		answer, ok := readLine(in)
		if !ok {
			return false, "quit"
		}
		switch answer {
		case "r":
			return false, "requeue"
		case "q":
			return false, "quit"
		case "a", "b", "c", "d":
			picked := int(answer[0] - 'a')
			if picked == card.Correct {
				fmt.Println("Correct!")
				return true, ""
			}
			fmt.Printf("Wrong; the answer was %c.\n", 'A'+card.Correct)
			return false, ""
		}
	}
}

func (a *app) printSummary(sess *session.Session) {
	fmt.Printf("\nDone: %d/%d correct, %d missed.\n",
		sess.Correct, len(sess.Pool), len(sess.Wrongs))
}

func readLine(in *bufio.Scanner) (string, bool) {
	if !in.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(in.Text())), true
}
