// ABOUTME: Tests for the level-gated logging package
// ABOUTME: Validates level filtering and output redirection

package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetLevel(t *testing.T) {
	SetLevel(LevelDebug)
	if GetLevel() != LevelDebug {
		t.Errorf("GetLevel() = %v; want %v", GetLevel(), LevelDebug)
	}
	SetLevel(LevelWarn)
	if GetLevel() != LevelWarn {
		t.Errorf("GetLevel() = %v; want %v", GetLevel(), LevelWarn)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(discard{})

	SetLevel(LevelWarn)
	Debug("hidden debug %d", 1)
	Info("hidden info")
	Warn("visible warn")
	Error("visible error")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("suppressed lines leaked: %q", got)
	}
	if !strings.Contains(got, "[WARN] visible warn") {
		t.Errorf("missing warn line: %q", got)
	}
	if !strings.Contains(got, "[ERROR] visible error") {
		t.Errorf("missing error line: %q", got)
	}
}

func TestDebugVisibleAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(discard{})

	SetLevel(LevelDebug)
	defer SetLevel(LevelWarn)
	Debug("detail %s", "x")

	if !strings.Contains(buf.String(), "[DEBUG] detail x") {
		t.Errorf("debug line missing: %q", buf.String())
	}
}

// discard swallows output so later tests don't write into a dead buffer.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
