package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/bookmarks/internal/storage"
)

// storeJSON is the JSON output structure for one store.
type storeJSON struct {
	Browser   string `json:"browser"`
	Format    string `json:"format"`
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
}

type storesJSON struct {
	Version string      `json:"version"`
	Stores  []storeJSON `json:"stores"`
}

// Execute implements the go-flags Commander interface for StoresCommand.
func (c *StoresCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals, c.cfg)
	if err != nil {
		return err
	}

	locator, err := newLocator(cfg)
	if err != nil {
		return err
	}

	return c.executeWithLocator(locator)
}

// executeWithLocator lists stores found by a provided locator (for testing).
func (c *StoresCommand) executeWithLocator(locator *storage.Locator) error {
	stores := locator.Locate()

	if c.globals != nil && c.globals.JSON {
		return c.printStoresJSON(stores)
	}
	return c.printStoresHuman(stores)
}

func (c *StoresCommand) printStoresHuman(stores []storage.Store) error {
	fmt.Println("Bookmark Stores")
	fmt.Println("===============")

	if len(stores) == 0 {
		fmt.Println("No bookmark stores found")
		return nil
	}

	for _, st := range stores {
		fmt.Printf("%-12s %-7s %s (%s)\n", st.Browser, st.Format, st.Path, formatBytes(fileSize(st.Path)))
	}
	return nil
}

func (c *StoresCommand) printStoresJSON(stores []storage.Store) error {
	out := storesJSON{
		Version: c.version,
		Stores:  make([]storeJSON, len(stores)),
	}
	for i, st := range stores {
		out.Stores[i] = storeJSON{
			Browser:   st.Browser,
			Format:    st.Format.String(),
			Path:      st.Path,
			SizeBytes: fileSize(st.Path),
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// fileSize returns the size of path in bytes, or 0 if it cannot be stat'd.
func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
