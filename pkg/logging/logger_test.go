package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetupWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Config{Level: "debug", Output: &buf})

	logger.Info().Str("stream", "GLEntry").Msg("stream finished")

	out := buf.String()
	if !strings.Contains(out, `"stream":"GLEntry"`) {
		t.Errorf("expected structured field, got %s", out)
	}
	if !strings.Contains(out, `"message":"stream finished"`) {
		t.Errorf("expected message, got %s", out)
	}
}

func TestSetupLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Config{Level: "warn", Output: &buf})

	logger.Debug().Msg("noise")
	logger.Warn().Msg("kept")

	out := buf.String()
	if strings.Contains(out, "noise") {
		t.Errorf("expected debug to be filtered, got %s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("expected warn to pass, got %s", out)
	}
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(Config{Level: "nonsense", Output: &buf})

	logger.Info().Msg("still visible")
	if !strings.Contains(buf.String(), "still visible") {
		t.Error("expected unknown level to default to info")
	}
}
