package storage

// Bookmark is a single (title, URL) record extracted from a browser store.
// The Missing flags mark values that were absent (null) in the source, as
// opposed to present but empty.
type Bookmark struct {
	Title        string
	URL          string
	TitleMissing bool
	URLMissing   bool
}

// Format identifies the on-disk layout of a bookmark store.
type Format int

const (
	FormatTree   Format = iota // JSON "Bookmarks" document (Chromium family)
	FormatPlaces               // places.sqlite database (Firefox)
)

func (f Format) String() string {
	switch f {
	case FormatTree:
		return "tree"
	case FormatPlaces:
		return "places"
	default:
		return "unknown"
	}
}

// Store describes one located bookmark store.
type Store struct {
	Path    string
	Format  Format
	Browser string
}
