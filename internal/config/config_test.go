package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/danmuck/pdbfold/internal/testutil/testlog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pdbfold.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, "workers = 2\nstrict = true\nrecords = [\" compnd \", \"revdat\", \"\"]\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Workers != 2 {
		t.Fatalf("unexpected workers: %d", cfg.Workers)
	}
	if !cfg.Strict {
		t.Fatalf("expected strict enabled")
	}
	if cfg.Format != "json" {
		t.Fatalf("expected default format json, got %q", cfg.Format)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level info, got %q", cfg.LogLevel)
	}
	if diff := cmp.Diff([]string{"COMPND", "REVDAT"}, cfg.Records); diff != "" {
		t.Fatalf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, "workers = 2\nthreads = 8\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "threads") {
		t.Fatalf("expected unknown key error naming threads, got %v", err)
	}
}

func TestLoadValidates(t *testing.T) {
	testlog.Start(t)
	cases := map[string]string{
		"zero workers":   "workers = 0\n",
		"bad format":     "format = \"xml\"\n",
		"bad log level":  "log_level = \"loud\"\n",
		"unknown record": "records = [\"HETATM\"]\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestTemplateLoads(t *testing.T) {
	testlog.Start(t)
	path := filepath.Join(t.TempDir(), "pdbfold.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected existing config to be preserved")
	}
	if err := WriteTemplate(path, true); err != nil {
		t.Fatalf("overwrite template: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load template: %v", err)
	}
	if cfg.Workers != 4 || len(cfg.Records) != 7 {
		t.Fatalf("unexpected template config: %+v", cfg)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
