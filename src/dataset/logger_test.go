package dataset

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	saved := baseLogger
	baseLogger = log.New(&buf, "", 0)
	t.Cleanup(func() { baseLogger = saved })
	return &buf
}

func TestInfofNoDoubleFormattingWithPercent(t *testing.T) {
	buf := captureLog(t)
	SetLogLevel("info")

	// Already-formatted message containing literal % characters.
	Infof("transformed 100 rows (87.5% kept)")

	out := buf.String()
	if !strings.Contains(out, "(87.5% kept)") {
		t.Fatalf("log output missing percent segment: %s", out)
	}
	if strings.Contains(out, "(MISSING)") {
		t.Fatalf("log output shows fmt artifact: %s", out)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	buf := captureLog(t)
	SetLogLevel("warn")
	defer SetLogLevel("info")

	Infof("should be filtered")
	Warnf("should appear")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Fatalf("info line leaked through warn level: %s", out)
	}
	if !strings.Contains(out, "[WARN] should appear") {
		t.Fatalf("warn line missing: %s", out)
	}
}

func TestSetLogLevelIgnoresUnknown(t *testing.T) {
	SetLogLevel("info")
	SetLogLevel("chatty")
	if getLevel() != LevelInfo {
		t.Fatalf("unknown level name should leave level unchanged, got %v", getLevel())
	}
}
