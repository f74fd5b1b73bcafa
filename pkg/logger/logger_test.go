package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"default", nil, false},
		{"console", &Config{Level: zapcore.DebugLevel, Format: "console"}, false},
		{"json", &Config{Level: zapcore.WarnLevel, Format: "json"}, false},
		{"unknown format", &Config{Format: "xml"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, err := New("lnxctl", tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && log.Component() != "lnxctl" {
				t.Errorf("Component() = %q, want %q", log.Component(), "lnxctl")
			}
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := FromZap("parser", zap.New(core)).WithField("source", "r1.lnx")

	log.ErrorWithCause("parse failed", errors.New("boom"), "bad line", "fix it")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	fields := entries[0].ContextMap()
	want := map[string]interface{}{
		"component": "parser",
		"source":    "r1.lnx",
		"error":     "boom",
		"cause":     "bad line",
		"action":    "fix it",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("field %s = %v, want %v", k, fields[k], v)
		}
	}
	if entries[0].Level != zapcore.ErrorLevel {
		t.Errorf("level = %s, want error", entries[0].Level)
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Infow("discarded", "key", "value")
	if log.Component() != "nop" {
		t.Errorf("Component() = %q, want nop", log.Component())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    zapcore.Level
		wantErr bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"warn", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}
