package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/bookmarks/internal/search"
)

// Execute implements the go-flags Commander interface for SearchCommand.
func (c *SearchCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals, c.cfg)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}

	searcher, err := newSearcher(cfg, log)
	if err != nil {
		return err
	}

	return c.executeWithSearcher(searcher, args)
}

// executeWithSearcher runs the search against a provided searcher (for testing).
func (c *SearchCommand) executeWithSearcher(searcher *search.Searcher, args []string) error {
	query := strings.Join(args, " ")

	items, err := searcher.Search(context.Background(), query)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if c.Limit > 0 && len(items) > c.Limit {
		items = items[:c.Limit]
	}

	if c.globals != nil && c.globals.JSON {
		return c.printJSON(items)
	}
	return c.printHuman(query, items)
}

func (c *SearchCommand) printHuman(query string, items []search.Item) error {
	if len(items) == 1 && items[0].Fallback {
		fmt.Printf("No bookmark found for %q\n", query)
		fmt.Printf("   %s\n", items[0].Arg)
		return nil
	}

	resultWord := "results"
	if len(items) == 1 {
		resultWord = "result"
	}
	if query != "" {
		fmt.Printf("Found %d %s for %q\n\n", len(items), resultWord, query)
	} else {
		fmt.Printf("Found %d %s\n\n", len(items), resultWord)
	}

	for i, it := range items {
		fmt.Printf("%d. %s", i+1, it.Title)
		if it.Browser != "" {
			fmt.Printf(" · %s", it.Browser)
		}
		fmt.Println()
		fmt.Printf("   %s\n", it.Arg)

		if i < len(items)-1 {
			fmt.Println()
		}
	}

	return nil
}

type jsonItem struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Arg          string `json:"arg"`
	QuicklookURL string `json:"quicklookurl,omitempty"`
}

// jsonSearchOutput is the launcher script-filter document.
type jsonSearchOutput struct {
	Items []jsonItem `json:"items"`
}

func (c *SearchCommand) printJSON(items []search.Item) error {
	out := jsonSearchOutput{Items: make([]jsonItem, len(items))}
	for i, it := range items {
		out.Items[i] = jsonItem{
			Title:        it.Title,
			Subtitle:     it.Subtitle,
			Arg:          it.Arg,
			QuicklookURL: it.QuicklookURL,
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
