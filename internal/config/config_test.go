package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	want := []int{2259, 6460, 7119, 8870, 9096}
	if !reflect.DeepEqual(cfg.CallbackPorts, want) {
		t.Fatalf("default callback ports = %v, want %v", cfg.CallbackPorts, want)
	}
	if cfg.LogDir != "logs" {
		t.Fatalf("default log dir = %q, want logs", cfg.LogDir)
	}
	if cfg.Debug || cfg.LoggingToFile {
		t.Fatal("debug and file logging must default to off")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig(\"\") failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Fatalf("empty path should return defaults, got %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
debug: true
logging-to-file: true
log-dir: /tmp/opennow-logs
callback-ports: [9000, 9001]
provider:
  idp-id: partner-idp
  code: LGU+
  display-name: LG U+
  priority: 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if !cfg.Debug || !cfg.LoggingToFile {
		t.Fatalf("boolean settings not applied: %+v", cfg)
	}
	if cfg.LogDir != "/tmp/opennow-logs" {
		t.Fatalf("log dir = %q", cfg.LogDir)
	}
	if !reflect.DeepEqual(cfg.CallbackPorts, []int{9000, 9001}) {
		t.Fatalf("callback ports = %v", cfg.CallbackPorts)
	}
	if cfg.Provider.Code != "LGU+" || cfg.Provider.IDPID != "partner-idp" || cfg.Provider.Priority != 2 {
		t.Fatalf("provider overrides not applied: %+v", cfg.Provider)
	}
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("debug: true\n"), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if len(cfg.CallbackPorts) != 5 {
		t.Fatalf("missing callback ports should fall back to the candidates, got %v", cfg.CallbackPorts)
	}
	if cfg.LogDir != "logs" {
		t.Fatalf("missing log dir should fall back to logs, got %q", cfg.LogDir)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestCallbackPortListReturnsCopy(t *testing.T) {
	cfg := DefaultConfig()
	ports := cfg.CallbackPortList()
	ports[0] = 1

	if cfg.CallbackPorts[0] == 1 {
		t.Fatal("CallbackPortList must not alias the loaded configuration")
	}
}
