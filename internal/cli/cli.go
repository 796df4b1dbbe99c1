package cli

import (
	"errors"
	"fmt"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Search *SearchCommand
	Stores *StoresCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
// Subcommands are optional so that a bare --version parses; dispatch() then
// insists on a command for everything else.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "bookmarks"
	parser.LongDescription = "Search the bookmarks of every installed browser from one place."
	parser.SubcommandsOptional = true

	cmds := &commands{
		Search: &SearchCommand{globals: &globals, version: version},
		Stores: &StoresCommand{globals: &globals, version: version},
	}

	parser.AddCommand("search", "Search bookmarks", "Search bookmark titles across all browsers. Terms separated by spaces (or by & when present) must all match.", cmds.Search)
	parser.AddCommand("stores", "List bookmark stores", "List the browser bookmark stores found on this machine.", cmds.Stores)

	parser.CommandHandler = dispatch(&globals, version)

	return parser, &globals, cmds
}

// dispatch runs the selected subcommand once all flags are parsed, so
// --version wins wherever it appears before a "--".
func dispatch(globals *GlobalFlags, version string) func(goflags.Commander, []string) error {
	return func(cmd goflags.Commander, args []string) error {
		if globals.Version {
			fmt.Printf("bookmarks %s\n", version)
			return nil
		}
		if cmd == nil {
			return &goflags.Error{
				Type:    goflags.ErrCommandRequired,
				Message: "Please specify one command of: search or stores",
			}
		}
		return cmd.Execute(args)
	}
}

// Run is the main entry point for the bookmarks CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	var flagsErr *goflags.Error
	if errors.As(err, &flagsErr) && flagsErr.Type == goflags.ErrHelp {
		return nil
	}
	return err
}
