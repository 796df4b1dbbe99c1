// Package logging builds the zerolog logger used by the CLI.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/runnerr0/bookmarks/internal/config"
)

// New returns a logger at cfg.Level. Output goes to a rotating file when
// cfg.File is set, otherwise to w. Standard output is reserved for results,
// so callers pass os.Stderr.
func New(cfg config.LoggingConfig, w io.Writer) (zerolog.Logger, error) {
	level := zerolog.WarnLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	out := w
	if cfg.File != "" {
		file, err := expandHome(cfg.File)
		if err != nil {
			return zerolog.Nop(), err
		}
		if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
			return zerolog.Nop(), fmt.Errorf("create log directory: %w", err)
		}
		out = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
		}
	}
	if out == nil {
		out = os.Stderr
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
