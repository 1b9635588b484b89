package logging_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dshills/pagesync/internal/logging"
)

// TestLevelFiltering verifies messages below the minimum level are dropped.
func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.LevelWarn, &buf)

	log.Debug("debug message")
	log.Info("info message")
	log.Warn("warn message")
	log.Error("error message")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("expected debug/info to be filtered, got:\n%s", out)
	}
	if !strings.Contains(out, "warn message") || !strings.Contains(out, "error message") {
		t.Errorf("expected warn/error to be logged, got:\n%s", out)
	}
}

// TestFormatArgs verifies printf-style formatting.
func TestFormatArgs(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.LevelInfo, &buf)

	log.Info("moved surface %s to page %d", "w2", 7)

	if !strings.Contains(buf.String(), "moved surface w2 to page 7") {
		t.Errorf("expected formatted message, got:\n%s", buf.String())
	}
}

// TestFieldsSortedAndInherited verifies WithField output is stable and does
// not mutate the parent.
func TestFieldsSortedAndInherited(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.LevelInfo, &buf)

	child := log.WithField("mode", "textpager").WithField("buffer", "book.txt")
	child.Info("pass complete")

	out := buf.String()
	if !strings.Contains(out, "{buffer=book.txt, mode=textpager}") {
		t.Errorf("expected sorted fields, got:\n%s", out)
	}

	buf.Reset()
	log.Info("no fields here")
	if strings.Contains(buf.String(), "buffer=") {
		t.Errorf("expected parent logger without fields, got:\n%s", buf.String())
	}
}

// TestWithComponent verifies the component convenience field.
func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.LevelInfo, &buf).WithComponent("engine")

	log.Info("hello")

	if !strings.Contains(buf.String(), "component=engine") {
		t.Errorf("expected component field, got:\n%s", buf.String())
	}
}

// TestDiscard verifies the shared discard logger writes nothing and does not
// panic.
func TestDiscard(t *testing.T) {
	logging.Discard.Error("nothing to see")
	logging.Discard.WithField("k", "v").Info("still nothing")
}

// TestParseLevel verifies level parsing and the info default.
func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want logging.Level
	}{
		{"debug", logging.LevelDebug},
		{"INFO", logging.LevelInfo},
		{"warning", logging.LevelWarn},
		{"ERROR", logging.LevelError},
		{"bogus", logging.LevelInfo},
	}

	for _, tt := range tests {
		if got := logging.ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestSetLevel verifies changing the level at runtime.
func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(logging.LevelError, &buf)

	log.Info("dropped")
	log.SetLevel(logging.LevelDebug)
	log.Info("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("expected message below level to be dropped")
	}
	if !strings.Contains(out, "kept") {
		t.Error("expected message after SetLevel to be logged")
	}
}
