package e2e

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
)

const fixtureScript = `disciple:
  id: bajie
  name: 猪八戒

opening:
  - speaker: system
    text: 高老庄外，一个胖和尚正在打盹...
  - speaker: character
    text: 谁啊？俺老猪正睡着呢！

rules:
  - keywords: [你好]
    response: 好什么好，有吃的没有？
  - keywords: [西天, 取经]
    response: 取经？听说路上管饭，俺老猪去！
    final: true

fillers:
  - 俺听不懂！

unlock: 你已获得收服猪八戒的机会！
congratulation: 恭喜！猪八戒已成为你的徒弟！
`

// writeFixture writes a short script and a config selecting fast timings
// into homeDir and returns the script path.
func writeFixture(homeDir string) (string, error) {
	if err := os.MkdirAll(homeDir, 0755); err != nil {
		return "", err
	}
	scriptPath := filepath.Join(homeDir, "bajie.yaml")
	if err := os.WriteFile(scriptPath, []byte(fixtureScript), 0644); err != nil {
		return "", err
	}
	cfg := map[string]any{
		"script": map[string]any{"path": scriptPath},
		"timing": map[string]any{
			"bubble_ms":       5000,
			"reply_delay_ms":  50,
			"unlock_delay_ms": 50,
			"return_delay_ms": 300,
			"frame_ms":        50,
		},
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", err
	}
	return scriptPath, os.WriteFile(filepath.Join(homeDir, "config.json"), data, 0644)
}

// readEventKinds returns the kind of every event in the journal.
func readEventKinds(homeDir string) ([]string, error) {
	f, err := os.Open(filepath.Join(homeDir, "events.jsonl"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var kinds []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var ev struct {
			Kind string `json:"kind"`
		}
		if json.Unmarshal(scanner.Bytes(), &ev) == nil {
			kinds = append(kinds, ev.Kind)
		}
	}
	return kinds, scanner.Err()
}
