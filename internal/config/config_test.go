package config

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"keyout/internal/converter"
	"keyout/pkg/imgutil"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvColor, "")
	t.Setenv(EnvOutputFolder, "")

	cfg, err := Load("", Overrides{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Conversion.OutputFolder != converter.DefaultOutputFolder {
		t.Errorf("Expected default output folder, got %s", cfg.Conversion.OutputFolder)
	}
	key, err := cfg.KeyColor()
	if err != nil {
		t.Fatalf("KeyColor failed: %v", err)
	}
	if key != (imgutil.RGB{R: 255, G: 0, B: 255}) {
		t.Errorf("Expected magenta default, got %s", key)
	}
}

func TestLoad_Precedence(t *testing.T) {
	path := writeConfig(t, `{"conversion": {"transparent_color": "#010203", "output_folder": "from_file"}}`)

	// File overrides defaults
	t.Setenv(EnvColor, "")
	t.Setenv(EnvOutputFolder, "")
	cfg, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Conversion.TransparentColor != "#010203" || cfg.Conversion.OutputFolder != "from_file" {
		t.Errorf("Expected file values, got %+v", cfg.Conversion)
	}

	// Env overrides file
	t.Setenv(EnvColor, "#0A0B0C")
	t.Setenv(EnvOutputFolder, "from_env")
	cfg, err = Load(path, Overrides{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Conversion.TransparentColor != "#0A0B0C" || cfg.Conversion.OutputFolder != "from_env" {
		t.Errorf("Expected env values, got %+v", cfg.Conversion)
	}

	// Flags override env
	cfg, err = Load(path, Overrides{Color: "000000", OutputFolder: "from_flag", Compression: "best"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Conversion.TransparentColor != "000000" || cfg.Conversion.OutputFolder != "from_flag" {
		t.Errorf("Expected flag values, got %+v", cfg.Conversion)
	}

	opts, err := cfg.EngineOptions()
	if err != nil {
		t.Fatalf("EngineOptions failed: %v", err)
	}
	if opts.KeyColor != (imgutil.RGB{}) || opts.OutputFolder != "from_flag" || opts.Compression != png.BestCompression {
		t.Errorf("Unexpected engine options: %+v", opts)
	}
}

func TestLoad_DesktopConfigShape(t *testing.T) {
	t.Setenv(EnvColor, "")
	t.Setenv(EnvOutputFolder, "")
	path := writeConfig(t, `{
		"app": {"title": "BMP to PNG Converter", "width": 400, "height": 200},
		"colors": {"background": "#2b2b2b", "button": {"background": "#3c3f41", "hover": "#4c5052"}},
		"conversion": {"transparent_color": "#00ff00", "output_folder": "PNG_exports"}
	}`)

	cfg, err := Load(path, Overrides{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	key, _ := cfg.KeyColor()
	if key != (imgutil.RGB{G: 255}) {
		t.Errorf("Expected green key, got %s", key)
	}
}

func TestLoad_Validation(t *testing.T) {
	t.Setenv(EnvColor, "")
	t.Setenv(EnvOutputFolder, "")

	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad color", `{"conversion": {"transparent_color": "red"}}`, "schema"},
		{"empty folder", `{"conversion": {"output_folder": ""}}`, "schema"},
		{"bad compression", `{"conversion": {"compression": "max"}}`, "schema"},
		{"not json", `{conversion:`, "parse config"},
		{"nested folder", `{"conversion": {"output_folder": "a/b"}}`, "single folder name"},
	}
	for _, tc := range cases {
		_, err := Load(writeConfig(t, tc.body), Overrides{})
		if err == nil {
			t.Errorf("%s: expected error, got nil", tc.name)
			continue
		}
		if !strings.Contains(err.Error(), tc.want) {
			t.Errorf("%s: expected %q in error, got %v", tc.name, tc.want, err)
		}
	}

	if _, err := Load("", Overrides{Color: "#12345"}); err == nil {
		t.Error("Expected error for invalid flag color, got nil")
	}
	if _, err := Load("", Overrides{OutputFolder: ".."}); err == nil {
		t.Error("Expected error for parent output folder, got nil")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json"), Overrides{}); err == nil {
		t.Error("Expected error for missing config file, got nil")
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfig, "/from/env.json")
	if got := ResolvePath("/from/flag.json"); got != "/from/flag.json" {
		t.Errorf("Expected flag path, got %s", got)
	}
	if got := ResolvePath(""); got != "/from/env.json" {
		t.Errorf("Expected env path, got %s", got)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
