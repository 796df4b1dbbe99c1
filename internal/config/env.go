package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Environment variables that override config file values.
const (
	EnvHome       = "BOOKMARKS_HOME"
	EnvLogLevel   = "BOOKMARKS_LOG_LEVEL"
	EnvLogFile    = "BOOKMARKS_LOG_FILE"
	EnvScratchDir = "BOOKMARKS_SCRATCH_DIR"
)

// LoadEnv reads a .env file from the working directory, if any, into the
// process environment. Variables already set are not overwritten.
func LoadEnv() {
	_ = godotenv.Load()
}

// ApplyEnv overrides cfg with any BOOKMARKS_* variables that are set.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		cfg.Logging.File = v
	}
	if v := os.Getenv(EnvScratchDir); v != "" {
		cfg.Places.ScratchDir = v
	}
}
