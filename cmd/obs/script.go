package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/abelbrown/disciple/internal/dialogue"
)

func runScript() {
	fs := flag.NewFlagSet("script", flag.ExitOnError)
	file := fs.String("file", "", "Script file (default: configured script, else built-in)")
	say := fs.String("say", "", "Lines to replay, separated by '|'")
	fs.Parse(os.Args[1:])

	s := loadScript(*file)
	if *say == "" {
		printScript(s)
		return
	}
	for _, line := range replay(s, strings.Split(*say, "|"), rand.New(rand.NewSource(1))) {
		fmt.Println(line)
	}
}

func printScript(s *dialogue.Script) {
	fmt.Printf("Disciple:   %s (%s)\n", s.Disciple.Name, s.Disciple.ID)
	fmt.Printf("Opening:    %d lines\n", len(s.Opening))
	for _, l := range s.Opening {
		fmt.Printf("  %-9s %s\n", l.Speaker, l.Text)
	}
	fmt.Printf("\nRules (%d, first match wins):\n", len(s.Rules))
	for i, r := range s.Rules {
		mark := " "
		if r.Final {
			mark = "*"
		}
		fmt.Printf("  %d%s [%s] %s\n", i+1, mark, strings.Join(r.Keywords, ", "), truncate(r.Response, 40))
	}
	fmt.Printf("\nFillers:    %d\n", len(s.Fillers))
	fmt.Printf("Unlock:     %s\n", s.Unlock)
	fmt.Printf("Activate:   %s\n", s.Congratulation)
	fmt.Println("\nScript OK")
}

// replay runs lines through a fresh matcher the way the screen would and
// returns a transcript.
func replay(s *dialogue.Script, lines []string, rng dialogue.Intn) []string {
	var stage dialogue.Stage
	m := dialogue.NewMatcher(s.Rules, &stage)
	var out []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, "> "+line)
		r, ok := m.Match(line)
		if !ok {
			out = append(out, "< "+s.Fillers.Pick(rng)+"  (filler)")
			continue
		}
		out = append(out, "< "+r.Text)
		if r.Final {
			out = append(out, "! "+s.Unlock)
		}
	}
	return out
}
