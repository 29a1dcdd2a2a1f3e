package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
memory:
  initial_cells: 1024
trace: true
cache:
  enabled: true
  path: /tmp/test-cache.db
`)
	cfg, err := ParseConfig(data, "gox.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Memory.InitialCells != 1024 {
		t.Errorf("initial_cells = %d, want 1024", cfg.Memory.InitialCells)
	}
	if !cfg.Trace {
		t.Error("trace should be enabled")
	}
	if !cfg.Cache.Enabled || cfg.Cache.Path != "/tmp/test-cache.db" {
		t.Errorf("cache = %+v", cfg.Cache)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("{}"), filepath.Join("proj", "gox.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Memory.InitialCells != 0 || cfg.Trace || cfg.Cache.Enabled {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Cache.Path != filepath.Join("proj", ".gox-cache.db") {
		t.Errorf("cache path defaults next to the config file, got %s", cfg.Cache.Path)
	}
}

func TestParseConfigRejectsNegativeMemory(t *testing.T) {
	_, err := ParseConfig([]byte("memory:\n  initial_cells: -1\n"), "gox.yaml")
	if err == nil {
		t.Fatal("negative initial_cells should be rejected")
	}
}

func TestParseConfigRejectsBadYAML(t *testing.T) {
	_, err := ParseConfig([]byte("cache: ["), "gox.yaml")
	if err == nil {
		t.Fatal("malformed yaml should be rejected")
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	configPath := filepath.Join(root, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("trace: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfig(nested)
	if err != nil {
		t.Fatal(err)
	}
	if found != configPath {
		t.Errorf("got %s, want %s", found, configPath)
	}
}

func TestLoadWithoutConfigUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "prog"+SourceFileExt))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Trace || cfg.Cache.Enabled || cfg.Memory.InitialCells != 0 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}
