package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"time"
)

// sessionStats summarizes one run of the screen.
type sessionStats struct {
	ID        string
	Start     time.Time
	End       time.Time
	Sends     int
	Replies   int
	Fillers   int
	ReplyMs   float64
	Taps      int
	Modes     int
	Unlocked  bool
	Activated bool
	Errors    int
}

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	last := fs.Int("last", 10, "Number of recent sessions to list")
	fs.Parse(os.Args[1:])

	f, err := os.Open(eventLogPath())
	if err != nil {
		fatalf("%v", err)
	}
	defer f.Close()

	events, err := readEvents(f)
	if err != nil {
		fatalf("%v", err)
	}
	sessions := summarize(events)
	if len(sessions) == 0 {
		fmt.Println("No sessions recorded.")
		return
	}

	unlocked, activated, sends, answered := 0, 0, 0, 0
	var replyMs float64
	for _, s := range sessions {
		sends += s.Sends
		answered += s.Replies + s.Fillers
		replyMs += s.ReplyMs
		if s.Unlocked {
			unlocked++
		}
		if s.Activated {
			activated++
		}
	}
	n := len(sessions)
	fmt.Printf("Sessions:              %d\n", n)
	fmt.Printf("Unlocked:              %d (%.0f%%)\n", unlocked, pct(unlocked, n))
	fmt.Printf("Activated:             %d (%.0f%%)\n", activated, pct(activated, n))
	fmt.Printf("Lines per session:     %.1f\n", float64(sends)/float64(n))
	if answered > 0 {
		fmt.Printf("Avg reply delay:       %.0fms\n", replyMs/float64(answered))
	}

	if *last > 0 && len(sessions) > *last {
		sessions = sessions[len(sessions)-*last:]
	}
	fmt.Printf("\nRecent sessions (%d):\n", len(sessions))
	for _, s := range sessions {
		state := "-"
		switch {
		case s.Activated:
			state = "activated"
		case s.Unlocked:
			state = "unlocked"
		}
		fmt.Printf("  %s  %s  %6s  sent=%-3d replies=%-3d fillers=%-3d taps=%-3d %s\n",
			shortID(s.ID), s.Start.Format("2006-01-02 15:04"), s.End.Sub(s.Start).Round(time.Second),
			s.Sends, s.Replies, s.Fillers, s.Taps, state)
	}
}

// readEvents decodes every well-formed line of a journal.
func readEvents(r io.Reader) ([]record, error) {
	var out []record
	err := scanJournal(r, func(rec record, _ []byte) {
		out = append(out, rec)
	})
	return out, err
}

// summarize groups events by session, oldest session first.
func summarize(events []record) []sessionStats {
	byID := map[string]*sessionStats{}
	for _, ev := range events {
		s, ok := byID[ev.SessionID]
		if !ok {
			s = &sessionStats{ID: ev.SessionID, Start: ev.Time}
			byID[ev.SessionID] = s
		}
		if ev.Time.Before(s.Start) {
			s.Start = ev.Time
		}
		if ev.Time.After(s.End) {
			s.End = ev.Time
		}
		switch ev.Kind {
		case kindSend:
			s.Sends++
		case kindReply:
			s.Replies++
			s.ReplyMs += ev.DurMs
		case kindFiller:
			s.Fillers++
			s.ReplyMs += ev.DurMs
		case kindUnlock:
			s.Unlocked = true
		case kindActivate:
			s.Activated = true
		case kindTap:
			s.Taps++
		case kindMode:
			s.Modes++
		case kindError:
			s.Errors++
		}
	}

	out := make([]sessionStats, 0, len(byID))
	for _, s := range byID {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
