package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/coral-lang/runtime/rterrors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "coralrun.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Full(t *testing.T) {
	path := writeConfig(t, "store: memory\ntrace: true\nlog: debug\nentry: start\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store != "memory" || !cfg.Trace || cfg.Log != "debug" || cfg.Entry != "start" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoad_DefaultsApply(t *testing.T) {
	path := writeConfig(t, "trace: true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Store != "noop" || cfg.Log != "warn" || cfg.Entry != "main" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoad_BadStore(t *testing.T) {
	path := writeConfig(t, "store: redis\n")

	_, err := Load(path)
	want := &rterrors.Error{Phase: rterrors.PhaseConfig, Kind: rterrors.KindInvalidInput}
	if !errors.Is(err, want) {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}

func TestLoad_BadYaml(t *testing.T) {
	path := writeConfig(t, "store: [unterminated\n")

	_, err := Load(path)
	want := &rterrors.Error{Phase: rterrors.PhaseConfig, Kind: rterrors.KindInvalidData}
	if !errors.Is(err, want) {
		t.Fatalf("expected invalid_data, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("missing file should fail")
	}
}
