package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/conorfennell/studydeck/internal/config"
	"github.com/conorfennell/studydeck/internal/storage"
)

const usage = `Usage: studydeck [flags] <command> [args]

Commands:
  import <path>...   Merge cards from CSV/JSON files or directories
  export             Write the deck as JSON or the two CSV sheets
  template <dir>     Write fill-in CSV templates for both sheets
  study              Run an interactive study session
  list               Print the cards matching the filter flags
  settings           Persist the study settings from flags
  clear              Replace the deck with an empty one
`

func main() {
	flags := config.Flags()
	addCommandFlags(flags)
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load(flags)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	args := flags.Args()
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	a := &app{cfg: cfg, store: store, flags: flags}

	command, args := args[0], args[1:]
	switch command {
	case "import":
		err = a.runImport(args)
	case "export":
		err = a.runExport()
	case "template":
		err = a.runTemplate(args)
	case "study":
		err = a.runStudy()
	case "list":
		err = a.runList()
	case "settings":
		err = a.runSettings()
	case "clear":
		err = a.runClear()
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		slog.Error("Command failed", "command", command, "error", err)
		os.Exit(1)
	}
}
