package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/runnerr0/bookmarks/internal/storage"
)

// Searcher runs a query across every located bookmark store.
type Searcher struct {
	locator     *storage.Locator
	places      *storage.PlacesReader
	web         WebSearch
	log         zerolog.Logger
}

// NewSearcher creates a Searcher. A nil places reader disables the places
// database even when one is located.
func NewSearcher(locator *storage.Locator, places *storage.PlacesReader, web WebSearch, log zerolog.Logger) *Searcher {
	return &Searcher{
		locator:     locator,
		places:      places,
		web:         web,
		log:         log,
	}
}

// Search returns the presentation items for query: the places database's
// matches first, then each tree store's in catalog order, or a single
// fallback item when nothing matched. Only an unreadable tree store is an
// error; an unavailable places database is logged and skipped.
func (s *Searcher) Search(ctx context.Context, query string) ([]Item, error) {
	results, err := s.Collect(ctx, query)
	if err != nil {
		return nil, err
	}
	return Assemble(query, results, s.web), nil
}

// Collect returns the per-store match lists for query.
func (s *Searcher) Collect(ctx context.Context, query string) ([]SourceResult, error) {
	stores := s.locator.Locate()
	s.log.Debug().Int("stores", len(stores)).Msg("located bookmark stores")

	results := make([]SourceResult, 0, len(stores))
	for _, st := range stores {
		bookmarks, err := s.load(ctx, st)
		if err != nil {
			return nil, err
		}

		matches := Match(query, bookmarks)
		s.log.Debug().
			Str("browser", st.Browser).
			Str("format", st.Format.String()).
			Str("path", st.Path).
			Int("bookmarks", len(bookmarks)).
			Int("matches", len(matches)).
			Msg("searched store")

		results = append(results, SourceResult{Store: st, Matches: matches})
	}

	return results, nil
}

func (s *Searcher) load(ctx context.Context, st storage.Store) ([]storage.Bookmark, error) {
	switch st.Format {
	case storage.FormatPlaces:
		if s.places == nil {
			return []storage.Bookmark{}, nil
		}
		bookmarks, err := s.places.Read(ctx, st.Path)
		if errors.Is(err, storage.ErrUnavailable) {
			s.log.Warn().Err(err).Str("path", st.Path).Msg("skipping places database")
			return []storage.Bookmark{}, nil
		}
		if err != nil {
			return nil, err
		}
		return Dedupe(bookmarks), nil

	case storage.FormatTree:
		bookmarks, err := storage.ReadTree(st.Path)
		if err != nil {
			return nil, fmt.Errorf("read tree store %s: %w", st.Path, err)
		}
		return bookmarks, nil
	}

	return nil, fmt.Errorf("unsupported store format %s", st.Format)
}
