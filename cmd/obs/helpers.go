package main

import (
	"fmt"
	"os"

	"github.com/abelbrown/disciple/internal/config"
	"github.com/abelbrown/disciple/internal/dialogue"
)

// eventLogPath returns the path of the trace journal.
func eventLogPath() string {
	return config.EventsPath()
}

// loadScript reads the script at path, or the configured one when path is
// empty, or the built-in one when nothing is configured.
func loadScript(path string) *dialogue.Script {
	if path == "" {
		cfg, err := config.Load()
		if err != nil {
			fatalf("failed to load config: %v", err)
		}
		path = cfg.Script.Path
	}
	if path == "" {
		return dialogue.Default()
	}
	s, err := dialogue.Load(path)
	if err != nil {
		fatalf("%v", err)
	}
	return s
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

// truncate shortens a string to n runes, appending "..." if truncated.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
