package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/user/postergen/pkg/ports"
)

func TestConsoleLogger_RoutesByLevel(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewConsoleTo(&out, &errOut, ports.LevelDebug, false)

	log.Debug("debug %d", 1)
	log.Info("info %d", 2)
	log.Warn("warn %d", 3)
	log.Error("error %d", 4)

	if !strings.Contains(out.String(), "debug 1") || !strings.Contains(out.String(), "info 2") {
		t.Errorf("expected debug and info on out, got %q", out.String())
	}
	if strings.Contains(out.String(), "warn") {
		t.Errorf("warnings must not go to out: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "warn: warn 3") {
		t.Errorf("expected prefixed warning on errOut, got %q", errOut.String())
	}
	if !strings.Contains(errOut.String(), "error: error 4") {
		t.Errorf("expected prefixed error on errOut, got %q", errOut.String())
	}
}

func TestConsoleLogger_LevelFilter(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewConsoleTo(&out, &errOut, ports.LevelWarn, false)

	log.Debug("hidden debug")
	log.Info("hidden info")
	log.Warn("shown %s", "warning")

	if out.Len() != 0 {
		t.Errorf("expected nothing on out, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "shown warning") {
		t.Errorf("expected warning, got %q", errOut.String())
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var out bytes.Buffer
	log := NewConsoleTo(&out, &out, ports.LevelInfo, false)

	log.WithComponent("fit").Info("resized")

	if !strings.Contains(out.String(), "[fit] resized") {
		t.Errorf("expected component prefix, got %q", out.String())
	}
}

func TestConsoleLogger_Color(t *testing.T) {
	var out, errOut bytes.Buffer
	log := NewConsoleTo(&out, &errOut, ports.LevelInfo, true)

	log.Warn("careful")

	if !strings.HasPrefix(errOut.String(), colorYellow) {
		t.Errorf("expected yellow warning, got %q", errOut.String())
	}
}

func TestJSONLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := NewJSON(&buf, ports.LevelDebug).WithRun("run-1")

	log.WithComponent("composite").Info("Completed %d/%d", 3, 4)

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected one JSON object, got %q: %v", buf.String(), err)
	}
	if entry["level"] != "info" {
		t.Errorf("expected level info, got %v", entry["level"])
	}
	if entry["component"] != "composite" {
		t.Errorf("expected component composite, got %v", entry["component"])
	}
	if entry["run"] != "run-1" {
		t.Errorf("expected run run-1, got %v", entry["run"])
	}
	if msg, _ := entry["message"].(string); !strings.Contains(msg, "3") || !strings.Contains(msg, "4") {
		t.Errorf("expected formatted message, got %v", entry["message"])
	}
}

func TestJSONLogger_Level(t *testing.T) {
	tests := []struct {
		level ports.LogLevel
		want  []string
	}{
		{ports.LevelDebug, []string{"debug", "info", "warn", "error"}},
		{ports.LevelInfo, []string{"info", "warn", "error"}},
		{ports.LevelWarn, []string{"warn", "error"}},
		{ports.LevelError, []string{"error"}},
		{ports.LevelQuiet, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			var buf bytes.Buffer
			log := NewJSON(&buf, tt.level).WithComponent("decode")

			log.Debug("d")
			log.Info("i")
			log.Warn("w")
			log.Error("e")

			var got []string
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				if line == "" {
					continue
				}
				var entry map[string]interface{}
				if err := json.Unmarshal([]byte(line), &entry); err != nil {
					t.Fatalf("invalid JSON line %q: %v", line, err)
				}
				got = append(got, entry["level"].(string))
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("expected levels %v, got %v", tt.want, got)
			}
		})
	}
}

func TestNoopLogger(t *testing.T) {
	log := NewNoop()
	log.Info("ignored")
	if log.WithComponent("x") != log {
		t.Error("expected WithComponent to return the same noop logger")
	}
}
