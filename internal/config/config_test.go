package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[editor]
thickness = 35
snap = false
grid = 10

[files]
plan_path = "result.plan"

[server]
port = ":8080"
db_path = "/tmp/plans.db"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.Thickness != 35 || cfg.Editor.Snap || cfg.Editor.Grid != 10 {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if cfg.Editor.Tolerance != Default().Editor.Tolerance {
		t.Errorf("tolerance = %v, want default", cfg.Editor.Tolerance)
	}
	if cfg.Files.PlanPath != "result.plan" {
		t.Errorf("plan_path = %q", cfg.Files.PlanPath)
	}
	if cfg.Server.Port != "8080" || cfg.Server.DBPath != "/tmp/plans.db" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.ReadTimeout != 10 {
		t.Errorf("read_timeout = %d, want default 10", cfg.Server.ReadTimeout)
	}
}

func TestThicknessClamped(t *testing.T) {
	tests := []struct {
		body string
		want int
	}{
		{"[editor]\nthickness = 1\n", 4},
		{"[editor]\nthickness = 500\n", 100},
		{"[editor]\nthickness = 42\n", 42},
	}
	for _, tt := range tests {
		cfg, err := Load(writeConfig(t, tt.body))
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Editor.Thickness != tt.want {
			t.Errorf("%q: thickness = %d, want %d", tt.body, cfg.Editor.Thickness, tt.want)
		}
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "[editor]\nthickness = 30\nsnap = true\n")
	t.Setenv("WALLSKETCH_THICKNESS", "12")
	t.Setenv("WALLSKETCH_SNAP", "false")
	t.Setenv("WALLSKETCH_PORT", "9090")
	t.Setenv("WALLSKETCH_GRID", "not-a-number")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Editor.Thickness != 12 || cfg.Editor.Snap {
		t.Errorf("editor = %+v", cfg.Editor)
	}
	if cfg.Editor.Grid != Default().Editor.Grid {
		t.Errorf("grid = %v, invalid env value should be ignored", cfg.Editor.Grid)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	if _, err := Load(writeConfig(t, "[editor\nthickness = ")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestEditorSettings(t *testing.T) {
	cfg := Default()
	cfg.Editor.Snap = false
	s := cfg.EditorSettings()
	if s.Thickness != 20 || s.Snap || s.Grid != 5 || s.Tolerance != 8 {
		t.Errorf("EditorSettings() = %+v", s)
	}
}
