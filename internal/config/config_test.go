package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	vserrors "github.com/vango-dev/viewslot/internal/errors"
)

func errorCode(err error) string {
	var e *vserrors.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.EnterDuration() != 250*time.Millisecond {
		t.Errorf("EnterDuration() = %v, want 250ms", cfg.EnterDuration())
	}
	if cfg.Animation.Leave.Class != "au-leave" {
		t.Errorf("Leave.Class = %q, want %q", cfg.Animation.Leave.Class, "au-leave")
	}
	if cfg.Metrics.Namespace != DefaultNamespace {
		t.Errorf("Metrics.Namespace = %q, want %q", cfg.Metrics.Namespace, DefaultNamespace)
	}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level() = %v, want info", cfg.Level())
	}
	if cfg.InspectorAddress() != "localhost:7070" {
		t.Errorf("InspectorAddress() = %q", cfg.InspectorAddress())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	// Test loading non-existent config
	_, err := Load(tmpDir)
	if code := errorCode(err); code != "E123" {
		t.Fatalf("missing config error = %v, want E123", err)
	}

	configJSON := `{
  "animation": {
    "enter": {"duration": "0s"},
    "leave": {"class": "fade", "activeClass": "fade-active", "duration": "1.5s"}
  },
  "metrics": {"namespace": "demo", "subsystem": "slots"},
  "logLevel": "debug",
  "inspector": {"port": 9000}
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(configJSON), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.EnterDuration() != 0 {
		t.Errorf("EnterDuration() = %v, want 0", cfg.EnterDuration())
	}
	if cfg.LeaveDuration() != 1500*time.Millisecond {
		t.Errorf("LeaveDuration() = %v, want 1.5s", cfg.LeaveDuration())
	}
	if cfg.Animation.Enter.Class != "au-enter" {
		t.Errorf("Enter.Class = %q, want default", cfg.Animation.Enter.Class)
	}
	if cfg.Animation.Leave.ActiveClass != "fade-active" {
		t.Errorf("Leave.ActiveClass = %q", cfg.Animation.Leave.ActiveClass)
	}
	if cfg.Metrics.Subsystem != "slots" {
		t.Errorf("Metrics.Subsystem = %q", cfg.Metrics.Subsystem)
	}
	if cfg.Tracing.TracerName != DefaultTracerName {
		t.Errorf("Tracing.TracerName = %q, want default", cfg.Tracing.TracerName)
	}
	if cfg.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
	if cfg.InspectorAddress() != "localhost:9000" {
		t.Errorf("InspectorAddress() = %q", cfg.InspectorAddress())
	}
	if cfg.Dir() != tmpDir {
		t.Errorf("Dir() = %q, want %q", cfg.Dir(), tmpDir)
	}
}

func TestLoadFile_InvalidJSON(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)

	// Write invalid JSON
	if err := os.WriteFile(configPath, []byte("not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(configPath)
	if err == nil {
		t.Fatal("Expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "E120") {
		t.Errorf("Expected E120 error, got: %v", err)
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		json string
		code string
	}{
		{"bad enter duration", `{"animation":{"enter":{"duration":"soon"}}}`, "E121"},
		{"negative leave duration", `{"animation":{"leave":{"duration":"-1s"}}}`, "E121"},
		{"unknown level", `{"logLevel":"chatty"}`, "E122"},
		{"port out of range", `{"inspector":{"port":70000}}`, "E120"},
		{"upper case level", `{"logLevel":"WARN"}`, ""},
		{"empty object", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			if got := errorCode(err); got != tt.code {
				t.Errorf("Parse() error = %v, want code %q", err, tt.code)
			}
		})
	}
}

func TestSave(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), ConfigFileName)

	cfg := New()
	cfg.Animation.Leave.Duration = "1s"

	// Save should fail without configPath set
	if err := cfg.Save(); err == nil {
		t.Error("Expected error when saving without path")
	}

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	loaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.LeaveDuration() != time.Second {
		t.Errorf("LeaveDuration() = %v, want 1s", loaded.LeaveDuration())
	}

	loaded.LogLevel = "error"
	if err := loaded.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	reloaded, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if reloaded.Level() != slog.LevelError {
		t.Errorf("Level() = %v, want error", reloaded.Level())
	}
}

func TestLoadOrDefault(t *testing.T) {
	tmpDir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := LoadOrDefault("")
	if err != nil {
		t.Fatalf("LoadOrDefault without a file: %v", err)
	}
	if cfg.Path() != "" {
		t.Errorf("defaults should have no path, got %q", cfg.Path())
	}

	if err := os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(`{"logLevel":"warn"}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadOrDefault("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Level() != slog.LevelWarn {
		t.Errorf("Level() = %v, want warn", cfg.Level())
	}

	if _, err := LoadOrDefault(filepath.Join(tmpDir, "missing.json")); errorCode(err) != "E123" {
		t.Errorf("explicit missing path error = %v, want E123", err)
	}
}
