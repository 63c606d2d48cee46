package logging

import (
	"os"
	"testing"
)

func TestLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		expected LogLevel
	}{
		{
			name:     "Debug via LOG_LEVEL",
			envVar:   "LOG_LEVEL",
			envValue: "debug",
			expected: LevelDebug,
		},
		{
			name:     "Info via LOG_LEVEL",
			envVar:   "LOG_LEVEL",
			envValue: "info",
			expected: LevelInfo,
		},
		{
			name:     "Warn via LOG_LEVEL",
			envVar:   "LOG_LEVEL",
			envValue: "warn",
			expected: LevelWarn,
		},
		{
			name:     "Error via LOG_LEVEL",
			envVar:   "LOG_LEVEL",
			envValue: "error",
			expected: LevelError,
		},
		{
			name:     "Case insensitive",
			envVar:   "LOG_LEVEL",
			envValue: "DEBUG",
			expected: LevelDebug,
		},
		{
			name:     "Warning alias",
			envVar:   "LOG_LEVEL",
			envValue: "warning",
			expected: LevelWarn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Setenv(tt.envVar, tt.envValue)
			defer os.Unsetenv(tt.envVar)

			// Note: Due to sync.Once, we can't truly test GetLevel() multiple times
			// in the same process. This test documents the expected behavior.
			if tt.expected < LevelDebug || tt.expected > LevelError {
				t.Errorf("Invalid expected level: %v", tt.expected)
			}
		})
	}
}

func TestLogLevelConstants(t *testing.T) {
	// Verify log level ordering
	if LevelDebug >= LevelInfo {
		t.Error("LevelDebug should be less than LevelInfo")
	}
	if LevelInfo >= LevelWarn {
		t.Error("LevelInfo should be less than LevelWarn")
	}
	if LevelWarn >= LevelError {
		t.Error("LevelWarn should be less than LevelError")
	}
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LogLevel(99), "unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

// TestLoggingFunctions tests that logging functions don't panic
func TestLoggingFunctions(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"Debug doesn't panic", func() { Debug("test message") }},
		{"Info doesn't panic", func() { Info("test message %d", 1) }},
		{"Warn doesn't panic", func() { Warn("test message %s", "arg") }},
		{"Error doesn't panic", func() { Error("test message") }},
		{"Critical doesn't panic", func() { Critical("test message") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn()
		})
	}
}
