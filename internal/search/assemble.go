package search

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/runnerr0/bookmarks/internal/storage"
)

// Web search offered when nothing matches. "%s" in the URL is replaced
// with the query-escaped search text.
const (
	DefaultFallbackURL  = "https://www.google.com/search?q=%s"
	DefaultFallbackName = "Google"
)

// WebSearch is the engine behind the fallback item. Empty fields take the
// Google defaults.
type WebSearch struct {
	URL  string
	Name string
}

// Item is one entry handed to the presentation layer.
type Item struct {
	Title        string
	Subtitle     string
	Arg          string
	QuicklookURL string
	Browser      string
	Fallback     bool
}

// SourceResult is the match list of one store.
type SourceResult struct {
	Store   storage.Store
	Matches []storage.Bookmark
}

// Assemble concatenates source matches in order. Identical bookmarks from
// different sources are all kept. When there are no matches at all, a
// single fallback item carrying the query is returned instead.
func Assemble(query string, sources []SourceResult, web WebSearch) []Item {
	items := []Item{}
	for _, src := range sources {
		for _, b := range src.Matches {
			items = append(items, Item{
				Title:        b.Title,
				Subtitle:     b.URL,
				Arg:          b.URL,
				QuicklookURL: b.URL,
				Browser:      src.Store.Browser,
			})
		}
	}

	if len(items) == 0 {
		return []Item{Fallback(query, web)}
	}
	return items
}

// Fallback builds the "no result" item for query.
func Fallback(query string, web WebSearch) Item {
	fallbackURL := web.URL
	if fallbackURL == "" {
		fallbackURL = DefaultFallbackURL
	}
	name := web.Name
	if name == "" {
		name = DefaultFallbackName
	}

	escaped := url.QueryEscape(query)
	target := strings.Replace(fallbackURL, "%s", escaped, 1)
	if !strings.Contains(fallbackURL, "%s") {
		target = fallbackURL + escaped
	}

	return Item{
		Title:    "No Bookmark found!",
		Subtitle: fmt.Sprintf(`Search "%s" in %s...`, query, name),
		Arg:      target,
		Fallback: true,
	}
}
