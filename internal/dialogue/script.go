package dialogue

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed scripts/wukong.yaml
var defaultScript []byte

// ErrInvalidScript is wrapped by every validation failure.
var ErrInvalidScript = errors.New("invalid dialogue script")

// Disciple identifies the character the player talks to.
type Disciple struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Line is a scripted message shown when the screen opens.
type Line struct {
	Speaker string `yaml:"speaker"`
	Text    string `yaml:"text"`
}

// Script is everything the activation screen says on its own.
type Script struct {
	Disciple       Disciple `yaml:"disciple"`
	Opening        []Line   `yaml:"opening"`
	Rules          []Rule   `yaml:"rules"`
	Fillers        Fillers  `yaml:"fillers"`
	Unlock         string   `yaml:"unlock"`
	Congratulation string   `yaml:"congratulation"`
}

// Default returns the built-in 孙悟空 script.
func Default() *Script {
	s, err := Parse(defaultScript)
	if err != nil {
		panic(fmt.Sprintf("dialogue: embedded script: %v", err))
	}
	return s
}

// Load reads and validates a YAML script from path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a YAML script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

var knownSpeakers = map[string]bool{
	"system":    true,
	"character": true,
	"ai":        true,
	"player":    true,
}

// Validate checks the script can drive a conversation.
func (s *Script) Validate() error {
	if s.Disciple.Name == "" {
		return fmt.Errorf("%w: disciple name is empty", ErrInvalidScript)
	}
	if len(s.Rules) == 0 {
		return fmt.Errorf("%w: no rules", ErrInvalidScript)
	}
	for i, r := range s.Rules {
		if r.Response == "" {
			return fmt.Errorf("%w: rule %d has no response", ErrInvalidScript, i)
		}
		hasKeyword := false
		for _, kw := range r.Keywords {
			if kw != "" {
				hasKeyword = true
				break
			}
		}
		if !hasKeyword {
			return fmt.Errorf("%w: rule %d has no keywords", ErrInvalidScript, i)
		}
	}
	if len(s.Fillers) == 0 {
		return fmt.Errorf("%w: no filler lines", ErrInvalidScript)
	}
	for i, l := range s.Opening {
		if !knownSpeakers[l.Speaker] {
			return fmt.Errorf("%w: opening line %d has unknown speaker %q", ErrInvalidScript, i, l.Speaker)
		}
	}
	return nil
}

// HasFinal reports whether any rule unlocks activation.
func (s *Script) HasFinal() bool {
	for _, r := range s.Rules {
		if r.Final {
			return true
		}
	}
	return false
}
