package search

import "github.com/runnerr0/bookmarks/internal/storage"

// Dedupe drops repeated bookmarks, keeping the first occurrence of each
// and the relative order of the rest.
func Dedupe(bookmarks []storage.Bookmark) []storage.Bookmark {
	seen := make(map[storage.Bookmark]struct{}, len(bookmarks))
	out := make([]storage.Bookmark, 0, len(bookmarks))
	for _, b := range bookmarks {
		if _, ok := seen[b]; ok {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out
}
