package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v6"
)

// HomeEnv overrides the ~/.disciple data directory.
const HomeEnv = "DISCIPLE_HOME"

// Config is the persistent application configuration. Every field can
// also be set from the environment; see ApplyEnv.
type Config struct {
	Script ScriptConfig `json:"script"`
	Timing TimingConfig `json:"timing"`
	UI     UIConfig     `json:"ui"`
	Log    LogConfig    `json:"log"`
}

// ScriptConfig selects the dialogue script. An empty path uses the
// built-in one.
type ScriptConfig struct {
	Path string `json:"path" env:"DISCIPLE_SCRIPT"`
}

// TimingConfig holds every delay of the screen in milliseconds.
type TimingConfig struct {
	BubbleMs      int `json:"bubble_ms" env:"DISCIPLE_BUBBLE_MS"`
	ReplyDelayMs  int `json:"reply_delay_ms" env:"DISCIPLE_REPLY_DELAY_MS"`
	UnlockDelayMs int `json:"unlock_delay_ms" env:"DISCIPLE_UNLOCK_DELAY_MS"`
	ReturnDelayMs int `json:"return_delay_ms" env:"DISCIPLE_RETURN_DELAY_MS"`
	FrameMs       int `json:"frame_ms" env:"DISCIPLE_FRAME_MS"`
}

// UIConfig holds display preferences.
type UIConfig struct {
	DefaultMode   string  `json:"default_mode" env:"DISCIPLE_MODE"`            // "bubble" or "history"
	SystemBubbles string  `json:"system_bubbles" env:"DISCIPLE_SYSTEM_BUBBLES"` // "supersede" or "accumulate"
	CellWidth     float64 `json:"cell_width" env:"DISCIPLE_CELL_WIDTH"`
	CellHeight    float64 `json:"cell_height" env:"DISCIPLE_CELL_HEIGHT"`
	Unit          float64 `json:"unit" env:"DISCIPLE_UNIT"` // 0 derives it from the viewport
	SmoothScroll  bool    `json:"smooth_scroll" env:"DISCIPLE_SMOOTH_SCROLL"`
	DragFPS       int     `json:"drag_fps" env:"DISCIPLE_DRAG_FPS"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `json:"level" env:"DISCIPLE_LOG_LEVEL"`
	Dir   string `json:"dir,omitempty" env:"DISCIPLE_LOG_DIR"`
}

// DefaultConfig returns the stock timings and a terminal friendly canvas.
func DefaultConfig() *Config {
	return &Config{
		Timing: TimingConfig{
			BubbleMs:      5000,
			ReplyDelayMs:  500,
			UnlockDelayMs: 1000,
			ReturnDelayMs: 2000,
			FrameMs:       100,
		},
		UI: UIConfig{
			DefaultMode:   "bubble",
			SystemBubbles: "supersede",
			CellWidth:     10,
			CellHeight:    25,
			Unit:          1,
			SmoothScroll:  true,
			DragFPS:       30,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Dir returns the data directory, ~/.disciple unless DISCIPLE_HOME is set.
func Dir() string {
	if d := os.Getenv(HomeEnv); d != "" {
		return d
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".disciple")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(Dir(), "config.json")
}

// LogDir returns the configured log directory or the default one.
func (c *Config) LogDir() string {
	if c.Log.Dir != "" {
		return c.Log.Dir
	}
	return filepath.Join(Dir(), "logs")
}

// EventsPath is where the trace journal is written.
func EventsPath() string {
	return filepath.Join(Dir(), "events.jsonl")
}

// Load reads the config file, falling back to defaults when it does not
// exist, then applies environment overrides.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom is Load for an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields whose environment variable is set.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// Validate rejects values the screen cannot run with.
func (c *Config) Validate() error {
	t := c.Timing
	if t.BubbleMs <= 0 || t.ReplyDelayMs < 0 || t.UnlockDelayMs < 0 || t.ReturnDelayMs < 0 || t.FrameMs <= 0 {
		return fmt.Errorf("config: timings must not be negative and bubble/frame must be positive: %+v", t)
	}
	switch c.UI.DefaultMode {
	case "bubble", "history":
	default:
		return fmt.Errorf("config: unknown ui.default_mode %q", c.UI.DefaultMode)
	}
	switch c.UI.SystemBubbles {
	case "supersede", "accumulate":
	default:
		return fmt.Errorf("config: unknown ui.system_bubbles %q", c.UI.SystemBubbles)
	}
	if c.UI.CellWidth <= 0 || c.UI.CellHeight <= 0 {
		return fmt.Errorf("config: cell size must be positive")
	}
	return nil
}

// Save writes the config to ConfigPath.
func (c *Config) Save() error {
	return c.SaveTo(ConfigPath())
}

// SaveTo writes the config as indented JSON, creating the directory.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func (t TimingConfig) Bubble() time.Duration      { return ms(t.BubbleMs) }
func (t TimingConfig) ReplyDelay() time.Duration  { return ms(t.ReplyDelayMs) }
func (t TimingConfig) UnlockDelay() time.Duration { return ms(t.UnlockDelayMs) }
func (t TimingConfig) ReturnDelay() time.Duration { return ms(t.ReturnDelayMs) }
func (t TimingConfig) Frame() time.Duration       { return ms(t.FrameMs) }
