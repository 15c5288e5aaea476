package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestInit_AllFormats(t *testing.T) {
	formats := []string{"console", "json", "development", "", "invalid"}

	for _, format := range formats {
		t.Run("format_"+format, func(t *testing.T) {
			if err := Init(format, false); err != nil {
				t.Fatalf("Init(%q) returned error: %v", format, err)
			}
			if logger == nil {
				t.Fatalf("logger not initialized for format %q", format)
			}
			Sugar().Infow("test message", "format", format)
		})
	}
}

func TestInit_VerboseLowersLevel(t *testing.T) {
	if err := Init("console", true); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatal("expected debug level to be enabled when verbose=true")
	}
}

func TestSugar_WithoutInit(t *testing.T) {
	original := logger
	logger = nil
	defer func() { logger = original }()

	sugared := Sugar()
	if sugared == nil {
		t.Fatal("expected a fallback sugared logger")
	}
	if logger == nil {
		t.Fatal("expected fallback logger to be cached")
	}
}

func TestInit_Reinitialize(t *testing.T) {
	if err := Init("json", false); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	first := logger

	if err := Init("development", false); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}
	if logger == first {
		t.Error("expected a new logger instance after reinitializing")
	}
}
