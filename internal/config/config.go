// Package config layers studydeck configuration from defaults, an
// optional YAML file, STUDYDECK_-prefixed environment variables and
// command-line flags, in that order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config is the resolved runtime configuration.
type Config struct {
	DBPath  string `koanf:"db_path" validate:"required"`
	Profile string `koanf:"profile" validate:"required"`
	// DataDir holds checkouts of git deck sources.
	DataDir string `koanf:"data_dir" validate:"required"`

	Defaults struct {
		ShowExplanation bool `koanf:"show_explanation"`
		AutoAdvance     bool `koanf:"auto_advance"`
	} `koanf:"defaults"`
}

const envPrefix = "STUDYDECK_"

// Flags returns the flag set shared by every command. The returned set
// must be parsed by the caller before Load.
func Flags() *pflag.FlagSet {
	f := pflag.NewFlagSet("studydeck", pflag.ContinueOnError)
	f.String("config", "", "Path to an optional YAML config file")
	f.String("db_path", "studydeck.db", "Path to the SQLite database file")
	f.String("profile", "default", "Deck namespace; separate profiles never collide")
	f.String("data_dir", "decks", "Directory for git deck checkouts")
	f.Bool("show_explanation", false, "Show explanations by default during study")
	f.Bool("auto_advance", false, "Advance automatically after a correct answer")
	return f
}

// Load resolves the configuration from all layers and validates it.
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if path, _ := f.GetString("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	} else if _, err := os.Stat("studydeck.yml"); err == nil {
		if err := k.Load(file.Provider("studydeck.yml"), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load studydeck.yml: %w", err)
		}
	}

	// STUDYDECK_DB_PATH -> db_path; a double underscore nests, e.g.
	// STUDYDECK_DEFAULTS__AUTO_ADVANCE -> defaults.auto_advance.
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	// The study default flags are flat on the command line but nested in
	// the config shape.
	cfg.Defaults.ShowExplanation = k.Bool("show_explanation") || k.Bool("defaults.show_explanation")
	cfg.Defaults.AutoAdvance = k.Bool("auto_advance") || k.Bool("defaults.auto_advance")

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
