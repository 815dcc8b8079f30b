// Command obs is the debug CLI for the disciple activation screen.
//
// Usage:
//
//	obs                      Show help
//	obs events               JSONL event log viewer
//	obs stats                Conversation statistics per session
//	obs script               Check a dialogue script and print its rules
//	obs script -say <text>   Show which rule a line would trigger
package main

import (
	"fmt"
	"os"
)

const usage = `obs - disciple debug CLI

Usage:
  obs <command> [flags]

Commands:
  events      JSONL event log viewer
  stats       Conversation statistics per session
  script      Check a dialogue script and replay lines against it

Environment:
  DISCIPLE_HOME    Data directory (default: ~/.disciple)
  DISCIPLE_SCRIPT  Dialogue script used when -file is not given
  DISCIPLE_TRACE   Set when running disciple to record events

Run 'obs <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "events":
		runEvents()
	case "stats":
		runStats()
	case "script":
		runScript()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "obs: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
