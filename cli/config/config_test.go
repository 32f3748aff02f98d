package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/weversonbarbieri/accountant-pdf-extract/types"
)

func TestLoad_FullConfig(t *testing.T) {
	yaml := `server:
  url: https://docs.example.com
  timeout: 10m
  headers:
    Authorization: Bearer token123

pdf:
  mode: batch

progress:
  interval: 2s
  step: 10
  ceiling: 80
  reveal_delay: 250ms

log:
  file: /tmp/docpanel.log
  level: debug

devserver:
  dir: ./data
  addr: 127.0.0.1:8080
`
	path := writeTemp(t, yaml)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Server
	assertEqual(t, "server.url", cfg.Server.URL, "https://docs.example.com")
	if cfg.Server.Timeout.Duration != 10*time.Minute {
		t.Errorf("expected server.timeout=10m, got %v", cfg.Server.Timeout.Duration)
	}
	assertEqual(t, "server.headers.Authorization", cfg.Server.Headers["Authorization"], "Bearer token123")

	// PDF
	if cfg.PDF.Mode != types.PDFModeBatch {
		t.Errorf("expected pdf.mode=batch, got %q", cfg.PDF.Mode)
	}

	// Progress
	if cfg.Progress.Interval.Duration != 2*time.Second {
		t.Errorf("expected progress.interval=2s, got %v", cfg.Progress.Interval.Duration)
	}
	if cfg.Progress.Step != 10 || cfg.Progress.Ceiling != 80 {
		t.Errorf("expected step=10 ceiling=80, got %d/%d", cfg.Progress.Step, cfg.Progress.Ceiling)
	}
	if cfg.Progress.RevealDelay.Duration != 250*time.Millisecond {
		t.Errorf("expected reveal_delay=250ms, got %v", cfg.Progress.RevealDelay.Duration)
	}

	// Log
	assertEqual(t, "log.file", cfg.Log.File, "/tmp/docpanel.log")
	assertEqual(t, "log.level", cfg.Log.Level, "debug")

	// Devserver
	assertEqual(t, "devserver.dir", cfg.DevServer.Dir, "./data")
	assertEqual(t, "devserver.addr", cfg.DevServer.Addr, "127.0.0.1:8080")

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_EmptyConfigKeepsDefaults(t *testing.T) {
	for _, content := range []string{"", "   \n  \n", "# comment only\n"} {
		path := writeTemp(t, content)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%q) failed: %v", content, err)
		}
		def := Defaults()
		assertEqual(t, "server.url", cfg.Server.URL, def.Server.URL)
		if cfg.Server.Timeout != def.Server.Timeout || cfg.Progress != def.Progress {
			t.Errorf("defaults not kept for %q: %+v", content, cfg)
		}
	}
}

func TestLoad_PartialConfigKeepsOtherDefaults(t *testing.T) {
	path := writeTemp(t, "progress:\n  step: 20\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Progress.Step != 20 {
		t.Errorf("step = %d", cfg.Progress.Step)
	}
	if cfg.Progress.Ceiling != DefaultProgressCeiling || cfg.Progress.Interval.Duration != DefaultProgressInterval {
		t.Errorf("unset progress fields should keep defaults: %+v", cfg.Progress)
	}
	if cfg.PDF.Mode != types.PDFModeSingle {
		t.Errorf("pdf.mode = %q", cfg.PDF.Mode)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeTemp(t, "{{invalid yaml")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "invalid YAML") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_DOCPANEL_URL", "http://backend:5000")
	path := writeTemp(t, "server:\n  url: ${TEST_DOCPANEL_URL}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertEqual(t, "server.url", cfg.Server.URL, "http://backend:5000")
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	yaml := `server:
  url: http://127.0.0.1:5000
bogus_key: should_fail
`
	path := writeTemp(t, yaml)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
	if !strings.Contains(err.Error(), "bogus_key") {
		t.Errorf("error should mention the unknown key, got: %v", err)
	}
}

func TestLoad_UnknownNestedKeyRejected(t *testing.T) {
	yaml := `pdf:
  mode: single
  unknown_field: bad
`
	path := writeTemp(t, yaml)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for unknown nested key, got nil")
	}
	if !strings.Contains(err.Error(), "unknown_field") {
		t.Errorf("error should mention the unknown key, got: %v", err)
	}
}

func TestDuration_InvalidFormat(t *testing.T) {
	path := writeTemp(t, "server:\n  timeout: not-a-duration\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid duration")
	}
	if !strings.Contains(err.Error(), "invalid duration") {
		t.Errorf("error should mention invalid duration, got: %v", err)
	}
}

func TestDuration_EmptyKeepsDefault(t *testing.T) {
	path := writeTemp(t, "server:\n  timeout: \"\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Timeout.Duration != DefaultTimeout {
		t.Errorf("expected default timeout, got %v", cfg.Server.Timeout.Duration)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty url", func(c *Config) { c.Server.URL = "" }, "server.url is required"},
		{"bad scheme", func(c *Config) { c.Server.URL = "ftp://host" }, "must be an http(s) URL"},
		{"bad mode", func(c *Config) { c.PDF.Mode = "zip" }, "pdf.mode"},
		{"step too large", func(c *Config) { c.Progress.Step = 101 }, "progress.step"},
		{"negative ceiling", func(c *Config) { c.Progress.Ceiling = -1 }, "progress.ceiling"},
		{"negative timeout", func(c *Config) { c.Server.Timeout.Duration = -time.Second }, "server.timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve without file: %v", err)
	}
	assertEqual(t, "server.url", cfg.Server.URL, DefaultServerURL)

	if err := os.WriteFile(DefaultFile, []byte("server:\n  url: http://found:5000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve with default file: %v", err)
	}
	assertEqual(t, "server.url", cfg.Server.URL, "http://found:5000")

	if _, err := Resolve(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("explicit missing path should fail")
	}
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "docpanel.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func assertEqual(t *testing.T, field, got, want string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %q, want %q", field, got, want)
	}
}
