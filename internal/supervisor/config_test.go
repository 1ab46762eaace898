package supervisor

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTempConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "cityvm.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeTempConfig(t, "databaseDirectory: ./db\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CheckpointInterval != 600 {
		t.Errorf("expected default checkpointInterval 600, got %d", cfg.CheckpointInterval)
	}
	if !cfg.CheckpointAtShutdown {
		t.Error("expected default checkpointAtShutdown true")
	}
	want := filepath.Join(filepath.Dir(path), "db")
	if cfg.DatabaseDirectory != want {
		t.Errorf("expected relative databaseDirectory resolved against config dir, got %q want %q", cfg.DatabaseDirectory, want)
	}
}

func TestLoadConfigExplicitFalseOverridesDefault(t *testing.T) {
	path := writeTempConfig(t, "databaseDirectory: ./db\ncheckpointAtShutdown: false\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CheckpointAtShutdown {
		t.Error("an explicit checkpointAtShutdown: false must override the true default")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
	if !IsBootstrapError(err) {
		t.Errorf("expected a BootstrapError, got %T", err)
	}
}

func TestLoadConfigAbsoluteDatabaseDirectoryUnchanged(t *testing.T) {
	abs := t.TempDir()
	path := writeTempConfig(t, "databaseDirectory: "+abs+"\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DatabaseDirectory != abs {
		t.Errorf("expected absolute databaseDirectory left unchanged, got %q", cfg.DatabaseDirectory)
	}
}
