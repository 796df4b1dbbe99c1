package storage

import (
	"os"
	"path/filepath"
)

// Location is a catalog entry for a tree store, relative to the home directory.
type Location struct {
	Browser string
	Path    string
}

// Catalog lists where bookmark stores are expected to live. All paths are
// relative to the home directory handed to NewLocator.
type Catalog struct {
	Trees []Location

	PlacesBrowser string
	ProfileRoot   string
	Database      string // file name matched literally, e.g. "places.sqlite"
}

// Locator resolves a Catalog against a home directory.
type Locator struct {
	home    string
	catalog Catalog
}

// NewLocator creates a Locator for the given home directory and catalog.
func NewLocator(home string, catalog Catalog) *Locator {
	return &Locator{home: home, catalog: catalog}
}

// Locate returns the stores that currently exist on disk. The places
// database, if found, comes first, followed by tree stores in catalog order.
// Missing entries are skipped without error.
func (l *Locator) Locate() []Store {
	stores := []Store{}

	if path := l.PlacesPath(); path != "" {
		stores = append(stores, Store{
			Path:    path,
			Format:  FormatPlaces,
			Browser: l.catalog.PlacesBrowser,
		})
	}

	return append(stores, l.TreePaths()...)
}

// TreePaths returns the catalog's tree stores that exist as regular files.
func (l *Locator) TreePaths() []Store {
	stores := []Store{}
	for _, loc := range l.catalog.Trees {
		path := filepath.Join(l.home, loc.Path)
		if !isRegularFile(path) {
			continue
		}
		stores = append(stores, Store{Path: path, Format: FormatTree, Browser: loc.Browser})
	}
	return stores
}

// PlacesPath scans two levels below the profile root for a file named
// after the catalog's database. When several profiles hold one, the last
// match in directory-listing order wins; os.ReadDir lists entries sorted
// by name, so that is the lexically greatest profile. Returns "" when the
// profile root is missing or holds no database.
func (l *Locator) PlacesPath() string {
	if l.catalog.ProfileRoot == "" || l.catalog.Database == "" {
		return ""
	}

	root := filepath.Join(l.home, l.catalog.ProfileRoot)
	profiles, err := os.ReadDir(root)
	if err != nil {
		return ""
	}

	found := ""
	for _, p := range profiles {
		dir := filepath.Join(root, p.Name())
		if !isDir(dir) {
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.Name() != l.catalog.Database {
				continue
			}
			path := filepath.Join(dir, e.Name())
			if isRegularFile(path) {
				found = path
			}
		}
	}

	return found
}

// isRegularFile follows symlinks, like a plain stat.
func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
