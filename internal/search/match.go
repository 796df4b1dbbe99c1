package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/runnerr0/bookmarks/internal/storage"
)

// Terms splits a raw query into NFC-normalized terms. A query containing
// "&" is split on "&", anything else on whitespace. Blank terms are dropped.
func Terms(query string) []string {
	var parts []string
	if strings.Contains(query, "&") {
		parts = strings.Split(query, "&")
	} else {
		parts = strings.Fields(query)
	}

	terms := []string{}
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		terms = append(terms, norm.NFC.String(p))
	}
	return terms
}

// Match returns the bookmarks whose title contains every query term.
// Comparison ignores case, accents and Unicode composition. Bookmarks
// without a title never match. A query with no terms returns bookmarks
// unchanged.
func Match(query string, bookmarks []storage.Bookmark) []storage.Bookmark {
	terms := Terms(query)
	if len(terms) == 0 {
		return bookmarks
	}

	f := newFolder()
	pool := bookmarks
	for _, term := range terms {
		needle := f.fold(term)
		next := []storage.Bookmark{}
		for _, b := range pool {
			if b.TitleMissing {
				continue
			}
			if strings.Contains(f.fold(b.Title), needle) {
				next = append(next, b)
			}
		}
		pool = next
	}
	return pool
}

// Fold returns the comparison form of s used by Match.
func Fold(s string) string {
	return newFolder().fold(s)
}

// diacritics is the Combining Diacritical Marks block. Marks from other
// blocks, such as kana voicing or the Devanagari virama, change the letter
// and are kept.
var diacritics = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// folder holds the x/text transformers for one Match call; they carry
// state and are not safe for concurrent use.
type folder struct {
	accents transform.Transformer
	caser   cases.Caser
}

func newFolder() *folder {
	return &folder{
		accents: transform.Chain(norm.NFD, runes.Remove(runes.In(diacritics)), norm.NFC),
		caser:   cases.Fold(),
	}
}

func (f *folder) fold(s string) string {
	s = norm.NFC.String(s)
	if stripped, _, err := transform.String(f.accents, s); err == nil {
		s = stripped
	}
	return f.caser.String(s)
}
