// Package dialogue selects the simulated character's replies. Replies come
// from an ordered keyword rule table; there is no language understanding.
package dialogue

import (
	"strings"

	"golang.org/x/text/cases"
)

// Rule maps a set of keywords to one canned response.
type Rule struct {
	Keywords []string `yaml:"keywords"`
	Response string   `yaml:"response"`
	// Final marks the response that ends the conversation and unlocks
	// activation.
	Final bool `yaml:"final,omitempty"`
}

// Reply is a matched response.
type Reply struct {
	Text  string
	Final bool
}

// Stage is the conversation's progress marker. It lives as long as one
// activation screen and is mutated only by the send flow.
type Stage struct {
	// LastResponse is the last response text the matcher returned. A rule
	// producing the same text is skipped so a line is never said twice in a
	// row.
	LastResponse string
	// FinalReached is set when a Final rule matched.
	FinalReached bool
	// Unlocked is set once the unlock follow-up has been shown.
	Unlocked bool
	// Activated is set when the player pressed the activate button.
	Activated bool
}

// Matcher runs the rule table against player input.
type Matcher struct {
	rules []compiledRule
	stage *Stage
	fold  cases.Caser
}

type compiledRule struct {
	Rule
	folded []string
}

// NewMatcher compiles rules in order. stage must not be nil; it is shared
// with the caller so milestone flags stay visible to the screen.
func NewMatcher(rules []Rule, stage *Stage) *Matcher {
	fold := cases.Fold()
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		cr := compiledRule{Rule: r}
		for _, kw := range r.Keywords {
			if kw == "" {
				continue
			}
			cr.folded = append(cr.folded, fold.String(kw))
		}
		compiled = append(compiled, cr)
	}
	return &Matcher{rules: compiled, stage: stage, fold: fold}
}

// Stage returns the stage the matcher updates.
func (m *Matcher) Stage() *Stage { return m.stage }

// Match returns the first rule, in table order, with a keyword contained in
// text. A rule whose response equals the previous reply is passed over and
// the scan continues. Empty or whitespace-only text never matches and
// leaves the stage untouched, so a blank line cannot consume the
// no-repeat slot.
func (m *Matcher) Match(text string) (Reply, bool) {
	if strings.TrimSpace(text) == "" {
		return Reply{}, false
	}
	input := m.fold.String(text)

	for _, r := range m.rules {
		if !r.matches(input) {
			continue
		}
		if r.Response == m.stage.LastResponse {
			continue
		}
		m.stage.LastResponse = r.Response
		if r.Final {
			m.stage.FinalReached = true
		}
		return Reply{Text: r.Response, Final: r.Final}, true
	}
	return Reply{}, false
}

func (r compiledRule) matches(input string) bool {
	for _, kw := range r.folded {
		if strings.Contains(input, kw) {
			return true
		}
	}
	return false
}

// Intn is the slice of *rand.Rand used for filler selection.
type Intn interface {
	Intn(n int) int
}

// Fillers are the lines used when nothing matches.
type Fillers []string

// Pick returns a uniformly random filler, or "" when there are none.
func (f Fillers) Pick(rng Intn) string {
	if len(f) == 0 {
		return ""
	}
	return f[rng.Intn(len(f))]
}
