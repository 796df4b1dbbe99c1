package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/runnerr0/bookmarks/internal/config"
	"github.com/runnerr0/bookmarks/internal/logging"
	"github.com/runnerr0/bookmarks/internal/search"
	"github.com/runnerr0/bookmarks/internal/storage"
)

// loadConfig returns the injected config when present. Otherwise it reads
// .env, loads --config (or the default path, created on first run) and
// applies BOOKMARKS_* overrides.
func loadConfig(globals *GlobalFlags, injected *config.Config) (*config.Config, error) {
	cfg := injected
	if cfg == nil {
		config.LoadEnv()

		var err error
		if globals != nil && globals.Config != "" {
			cfg, err = config.Load(globals.Config)
			if err != nil {
				return nil, err
			}
		} else {
			cfg, err = config.LoadOrCreate()
			switch {
			case errors.Is(err, config.ErrCreateDefault):
				// Read-only home: search with the defaults.
				cfg = config.DefaultConfig()
			case err != nil:
				return nil, err
			}
		}
		config.ApplyEnv(cfg)
	}

	if globals != nil && globals.Verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// newLocator builds a store locator rooted at the configured home.
func newLocator(cfg *config.Config) (*storage.Locator, error) {
	home, err := cfg.HomeDir()
	if err != nil {
		return nil, err
	}
	return storage.NewLocator(home, cfg.Catalog()), nil
}

// newSearcher wires the locator, places reader and logger into a Searcher.
func newSearcher(cfg *config.Config, log zerolog.Logger) (*search.Searcher, error) {
	locator, err := newLocator(cfg)
	if err != nil {
		return nil, err
	}

	scratch, err := cfg.ScratchDir()
	if err != nil {
		return nil, err
	}

	web := search.WebSearch{URL: cfg.Search.FallbackURL, Name: cfg.Search.FallbackName}
	return search.NewSearcher(locator, storage.NewPlacesReader(scratch), web, log), nil
}

// newLogger logs to stderr so stdout stays clean for results.
func newLogger(cfg *config.Config) (zerolog.Logger, error) {
	log, err := logging.New(cfg.Logging, os.Stderr)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("setup logging: %w", err)
	}
	return log, nil
}

// formatBytes formats a byte count into a human-readable string.
func formatBytes(b int64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
