package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestInitJSON(t *testing.T) {
	var buf bytes.Buffer
	Init("debug", "json", &buf)
	defer func() { Log = newDiscard() }()

	For("combat").WithField("damage", 3).Debug("hit")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["component"] != "combat" {
		t.Errorf("Expected component combat, got %v", entry["component"])
	}
	if entry["msg"] != "hit" {
		t.Errorf("Expected msg hit, got %v", entry["msg"])
	}
}

func TestInitLevels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"warn", logrus.WarnLevel},
		{"nonsense", logrus.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			Init(tt.level, "text", &bytes.Buffer{})
			defer func() { Log = newDiscard() }()
			if Log.GetLevel() != tt.want {
				t.Errorf("Expected level %s, got %s", tt.want, Log.GetLevel())
			}
		})
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	Init("info", "text", &buf)
	defer func() { Log = newDiscard() }()

	For("turn").Info("started")
	if !strings.Contains(buf.String(), "component=turn") {
		t.Errorf("Expected component field in %q", buf.String())
	}
}
