package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInitWritesDatedFile(t *testing.T) {
	dir := t.TempDir()
	if err := Init(dir, "debug"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Debug("probe", "k", 1)
	Close()
	t.Cleanup(func() { Logger = nil })

	matches, _ := filepath.Glob(filepath.Join(dir, "disciple-*.log"))
	if len(matches) != 1 {
		t.Fatalf("log files = %v", matches)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"disciple started", "probe", "shutting down"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log missing %q:\n%s", want, data)
		}
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	if err := Init(t.TempDir(), "chatty"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}

func TestWithPrefixBeforeInit(t *testing.T) {
	Logger = nil
	l := WithPrefix("screen")
	if l == nil {
		t.Fatal("WithPrefix must never return nil")
	}
	l.Info("dropped")
	Info("also dropped")
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, log.WarnLevel).WithPrefix("ui")
	l.Info("quiet")
	l.Warn("loud")
	out := buf.String()
	if strings.Contains(out, "quiet") || !strings.Contains(out, "loud") || !strings.Contains(out, "ui") {
		t.Errorf("output = %q", out)
	}
}
