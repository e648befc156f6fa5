// Package config loads wallsketch settings from a TOML file and the
// environment. A missing file is not an error; the defaults apply. Variables
// named WALLSKETCH_* override whatever the file says.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"wallsketch/internal/editor"
	"wallsketch/internal/geom"
)

type Config struct {
	Editor EditorConfig `toml:"editor"`
	Files  FilesConfig  `toml:"files"`
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
}

type EditorConfig struct {
	Thickness int     `toml:"thickness"`
	Snap      bool    `toml:"snap"`
	Grid      float64 `toml:"grid"`
	Tolerance float64 `toml:"tolerance"`
}

type FilesConfig struct {
	// SaveDir is where snapshots and plans without a source file are written.
	SaveDir string `toml:"save_dir"`
	// PlanPath is the gjson path of the plan inside a wrapper document.
	PlanPath string `toml:"plan_path"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type ServerConfig struct {
	Port         string `toml:"port"`
	DBPath       string `toml:"db_path"`
	ReadTimeout  int    `toml:"read_timeout"`
	WriteTimeout int    `toml:"write_timeout"`
}

func Default() Config {
	return Config{
		Editor: EditorConfig{
			Thickness: editor.DefaultThickness,
			Snap:      true,
			Grid:      geom.DefaultGrid,
			Tolerance: editor.DefaultTolerance,
		},
		Files: FilesConfig{SaveDir: "."},
		Log:   LogConfig{Level: "info"},
		Server: ServerConfig{
			Port:         "3000",
			DBPath:       "wallsketch.db",
			ReadTimeout:  10,
			WriteTimeout: 10,
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/wallsketch/config.toml, falling back to
// the user config dir.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		dir = d
	}
	return filepath.Join(dir, "wallsketch", "config.toml")
}

// Load reads path over the defaults and applies environment overrides.
// An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				var derr *toml.DecodeError
				if errors.As(err, &derr) {
					row, col := derr.Position()
					return Config{}, fmt.Errorf("config %s:%d:%d: %w", path, row, col, err)
				}
				return Config{}, fmt.Errorf("config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Editor.Thickness = getEnvAsInt("WALLSKETCH_THICKNESS", c.Editor.Thickness)
	c.Editor.Snap = getEnvAsBool("WALLSKETCH_SNAP", c.Editor.Snap)
	c.Editor.Grid = getEnvAsFloat("WALLSKETCH_GRID", c.Editor.Grid)
	c.Editor.Tolerance = getEnvAsFloat("WALLSKETCH_TOLERANCE", c.Editor.Tolerance)
	c.Files.SaveDir = getEnv("WALLSKETCH_SAVE_DIR", c.Files.SaveDir)
	c.Files.PlanPath = getEnv("WALLSKETCH_PLAN_PATH", c.Files.PlanPath)
	c.Log.Level = getEnv("WALLSKETCH_LOG_LEVEL", c.Log.Level)
	c.Log.File = getEnv("WALLSKETCH_LOG_FILE", c.Log.File)
	c.Server.Port = getEnv("WALLSKETCH_PORT", c.Server.Port)
	c.Server.DBPath = getEnv("WALLSKETCH_DB_PATH", c.Server.DBPath)
	c.Server.ReadTimeout = getEnvAsInt("WALLSKETCH_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvAsInt("WALLSKETCH_WRITE_TIMEOUT", c.Server.WriteTimeout)
}

func (c *Config) normalize() {
	c.Editor.Thickness = editor.ClampThickness(c.Editor.Thickness)
	if c.Editor.Grid <= 0 {
		c.Editor.Grid = geom.DefaultGrid
	}
	if c.Editor.Tolerance <= 0 {
		c.Editor.Tolerance = editor.DefaultTolerance
	}
	c.Server.Port = strings.TrimPrefix(c.Server.Port, ":")
}

// EditorSettings converts the [editor] section for editor.New.
func (c Config) EditorSettings() editor.Settings {
	return editor.Settings{
		Thickness: c.Editor.Thickness,
		Snap:      c.Editor.Snap,
		Grid:      c.Editor.Grid,
		Tolerance: c.Editor.Tolerance,
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}
