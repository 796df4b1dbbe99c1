package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runnerr0/bookmarks/internal/config"
)

const testTree = `{"roots": {
	"bookmark_bar": {"type": "folder", "children": [
		{"type": "url", "name": "Hacker News", "url": "https://news.ycombinator.com/"},
		{"type": "url", "name": "Go Docs", "url": "https://go.dev/doc/"}
	]}
}}`

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// testHome creates a home directory holding one Chrome bookmark tree.
func testHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	path := filepath.Join(home, "chrome", "Bookmarks")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(testTree), 0644))
	return home
}

// testConfig returns a config whose only store is the Chrome tree in a temp home.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Home = testHome(t)
	cfg.TreeStores = []config.TreeStoreConfig{{Browser: "Chrome", Path: "chrome/Bookmarks"}}
	cfg.Places.ProfileRoot = "firefox/Profiles"
	cfg.Places.ScratchDir = t.TempDir()
	return cfg
}

// writeConfigFile writes a YAML config equivalent to testConfig and returns its path.
func writeConfigFile(t *testing.T) string {
	t.Helper()
	home := testHome(t)
	content := fmt.Sprintf(`
home: %q
tree_stores:
  - browser: "Chrome"
    path: "chrome/Bookmarks"
places:
  profile_root: "firefox/Profiles"
  scratch_dir: %q
`, home, t.TempDir())

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
