package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestInitFileRedactsText(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: LevelDebug, File: &buf})
	t.Cleanup(func() { Init(Options{}) })

	For("pipeline").Info("translate request", "source_text", "secret sentence", "source_lang", "en")

	var rec map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if rec["source_text"] != "[REDACTED]" {
		t.Errorf("source_text = %v, want redacted", rec["source_text"])
	}
	if rec["source_lang"] != "en" {
		t.Errorf("source_lang = %v, want en", rec["source_lang"])
	}
	if rec["component"] != "pipeline" {
		t.Errorf("component = %v, want pipeline", rec["component"])
	}
}

func TestPrettyHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: LevelWarn, Console: &buf})
	t.Cleanup(func() { Init(Options{}) })

	Info("hidden")
	Warn("shown", "count", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line should be filtered: %q", out)
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "shown count=2") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestMultiHandlerWritesBoth(t *testing.T) {
	var console, file bytes.Buffer
	Init(Options{Level: LevelInfo, Console: &console, File: &file})
	t.Cleanup(func() { Init(Options{}) })

	Error("failed", "status", 500)
	if console.Len() == 0 || file.Len() == 0 {
		t.Fatalf("console=%q file=%q", console.String(), file.String())
	}
}

func TestNoSinksDiscards(t *testing.T) {
	Init(Options{})
	if Get().Enabled(context.Background(), LevelError) {
		t.Error("logger without sinks should be disabled")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{"": "INFO", "debug": "DEBUG", "WARN": "WARN", "error": "ERROR"}
	for in, want := range tests {
		lvl, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) error = %v", in, err)
		}
		if lvl.String() != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, lvl, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
