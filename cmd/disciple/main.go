// Command disciple runs the disciple activation screen in the terminal.
//
// The screen plays a scripted conversation with a would-be disciple. Talk to
// them until the activation button appears, activate, and the program
// returns to the shell.
//
// Settings come from ~/.disciple/config.json, a .env file in the working
// directory and DISCIPLE_* environment variables, in increasing priority.
// Set DISCIPLE_TRACE=1 to write the event journal to
// ~/.disciple/events.jsonl.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/abelbrown/disciple/internal/activation"
	"github.com/abelbrown/disciple/internal/bubble"
	"github.com/abelbrown/disciple/internal/config"
	"github.com/abelbrown/disciple/internal/dialogue"
	"github.com/abelbrown/disciple/internal/logging"
	"github.com/abelbrown/disciple/internal/otel"
	"github.com/abelbrown/disciple/internal/render"
	"github.com/abelbrown/disciple/internal/ui"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("Failed to load config: %v", err)
	}

	if err := logging.Init(cfg.LogDir(), cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	events := otel.NewNullLogger()
	if otel.TraceEnabled() {
		if l, err := otel.Open(config.EventsPath()); err != nil {
			logging.Warn("Event journal disabled", "error", err)
		} else {
			events = l
		}
	}
	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	events.SetRingBuffer(ring)
	defer events.Close()

	script := dialogue.Default()
	if cfg.Script.Path != "" {
		if script, err = dialogue.Load(cfg.Script.Path); err != nil {
			fatal("Failed to load script: %v", err)
		}
	}
	logging.Info("Script loaded", "disciple", script.Disciple.Name, "rules", len(script.Rules))

	opts, err := screenOptions(cfg, script)
	if err != nil {
		fatal("Invalid config: %v", err)
	}

	events.Info(otel.KindStartup, "main", script.Disciple.Name)
	app := ui.NewApp(ui.AppConfig{
		Options:    opts,
		CellWidth:  cfg.UI.CellWidth,
		CellHeight: cfg.UI.CellHeight,
		Log:        logging.WithPrefix("ui"),
		Events:     events,
		Ring:       ring,
	})

	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logging.Info("Starting UI")
	final, err := p.Run()
	if err != nil {
		logging.Error("Application error", "error", err)
		events.Error(otel.KindError, "main", err)
		fatal("Error: %v", err)
	}

	m, _ := final.(ui.App)
	if err := m.Err(); err != nil {
		fatal("Error: %v", err)
	}
	res, ok := m.Result()
	events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindShutdown, Comp: "main",
		Count: res.Messages, Extra: map[string]any{"navigated": ok, "activated": res.Activated}})
	switch {
	case res.Activated:
		fmt.Println(script.Congratulation)
	case ok:
		fmt.Println("Returned to the main screen.")
	}
	logging.Info("disciple exiting normally", "activated", res.Activated)
}

// screenOptions maps the config onto the screen options.
func screenOptions(cfg *config.Config, script *dialogue.Script) (activation.Options, error) {
	mode, err := render.ParseMode(cfg.UI.DefaultMode)
	if err != nil {
		return activation.Options{}, err
	}
	policy, err := bubble.ParsePolicy(cfg.UI.SystemBubbles)
	if err != nil {
		return activation.Options{}, err
	}

	opts := activation.DefaultOptions(0, 0)
	opts.Script = script
	opts.Layout = render.LayoutOptions{Unit: cfg.UI.Unit}
	opts.Mode = mode
	opts.SystemPolicy = policy
	opts.BubbleDuration = cfg.Timing.Bubble()
	opts.ReplyDelay = cfg.Timing.ReplyDelay()
	opts.UnlockDelay = cfg.Timing.UnlockDelay()
	opts.ReturnDelay = cfg.Timing.ReturnDelay()
	opts.FrameInterval = cfg.Timing.Frame()
	opts.SmoothScroll = cfg.UI.SmoothScroll
	opts.DragFPS = cfg.UI.DragFPS
	return opts, nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
