package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New("warn", &buf)
	log.Info("hidden")
	log.Warn("shown", "trial", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a single JSON entry, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "shown" {
		t.Errorf("expected msg shown, got %v", entry["msg"])
	}
	if entry["level"] != "WARN" {
		t.Errorf("expected level WARN, got %v", entry["level"])
	}
	if entry["trial"] != 3.0 {
		t.Errorf("expected trial 3, got %v", entry["trial"])
	}
}

func TestNewUnknownLevelIsInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("invalid", &buf)
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be filtered, got %q", buf.String())
	}
	log.Info("shown")
	if !strings.Contains(buf.String(), `"msg":"shown"`) {
		t.Errorf("expected info entry, got %q", buf.String())
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	NewText("info", &buf).Info("test message", "processor", "RadiusOutlierRemoval")
	out := buf.String()
	for _, want := range []string{`msg="test message"`, "processor=RadiusOutlierRemoval"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestSetDefault(t *testing.T) {
	orig := Default
	defer SetDefault(orig)

	var buf bytes.Buffer
	SetDefault(New("debug", &buf))

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")
	With("run", "r1").Info("scoped")

	out := buf.String()
	for _, msg := range []string{`"msg":"d"`, `"msg":"i"`, `"msg":"w"`, `"msg":"e"`, `"run":"r1"`} {
		if !strings.Contains(out, msg) {
			t.Errorf("expected %s in output", msg)
		}
	}
}
