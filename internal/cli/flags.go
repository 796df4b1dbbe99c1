package cli

import "github.com/runnerr0/bookmarks/internal/config"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format (Alfred script filter for search)"`
	Verbose bool   `long:"verbose" description:"Enable debug logging"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// SearchCommand searches the bookmarks of every installed browser.
type SearchCommand struct {
	Limit int `long:"limit" description:"Maximum results, 0 for all" default:"0"`

	globals *GlobalFlags
	version string
	cfg     *config.Config // injectable for testing; nil means load from disk
}

// StoresCommand lists the bookmark stores found on this machine.
type StoresCommand struct {
	globals *GlobalFlags
	version string
	cfg     *config.Config // injectable for testing; nil means load from disk
}
