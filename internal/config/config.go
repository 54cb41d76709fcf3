package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"keyout/internal/converter"
	"keyout/pkg/imgutil"
)

const (
	EnvConfig       = "KEYOUT_CONFIG"
	EnvColor        = "KEYOUT_COLOR"
	EnvOutputFolder = "KEYOUT_OUTPUT_FOLDER"

	DefaultColor = "#FF00FF"
)

// Config mirrors the JSON config file. Only Conversion reaches the engine;
// Colors styles the terminal UI.
type Config struct {
	Conversion Conversion `json:"conversion"`
	Colors     Colors     `json:"colors"`
}

type Conversion struct {
	TransparentColor string `json:"transparent_color"`
	OutputFolder     string `json:"output_folder"`
	Compression      string `json:"compression,omitempty"`
}

type Colors struct {
	Ink       string `json:"ink,omitempty"`
	Dim       string `json:"dim,omitempty"`
	Accent    string `json:"accent,omitempty"`
	AccentAlt string `json:"accent_alt,omitempty"`
	Success   string `json:"success,omitempty"`
	Warn      string `json:"warn,omitempty"`
}

// Overrides carries flag values. Empty fields are unset.
type Overrides struct {
	Color        string
	OutputFolder string
	Compression  string
}

func Default() Config {
	return Config{
		Conversion: Conversion{
			TransparentColor: DefaultColor,
			OutputFolder:     converter.DefaultOutputFolder,
			Compression:      "default",
		},
	}
}

// ResolvePath picks the config file: the flag, then KEYOUT_CONFIG, then
// keyout/config.json under the user config dir if it exists. An empty
// result means defaults only.
func ResolvePath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(dir, "keyout", "config.json")
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate
		}
	}
	return ""
}

// Load builds the effective config: defaults, then the file at path (if
// any), then environment, then flag overrides.
func Load(path string, o Overrides) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := Parse(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg.Conversion.TransparentColor = firstNonEmpty(o.Color, os.Getenv(EnvColor), cfg.Conversion.TransparentColor)
	cfg.Conversion.OutputFolder = firstNonEmpty(o.OutputFolder, os.Getenv(EnvOutputFolder), cfg.Conversion.OutputFolder)
	cfg.Conversion.Compression = firstNonEmpty(o.Compression, cfg.Conversion.Compression)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Parse checks data against the config schema and decodes it over cfg, so
// fields missing from the file keep their current values.
func Parse(data []byte, cfg *Config) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if err := configSchema.Validate(doc); err != nil {
		return fmt.Errorf("config does not match schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	if _, err := c.KeyColor(); err != nil {
		return err
	}
	if _, err := c.CompressionLevel(); err != nil {
		return err
	}

	name := c.Conversion.OutputFolder
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New("output folder is required")
	case filepath.IsAbs(name), strings.ContainsAny(name, `/\`), name == ".", name == "..":
		return fmt.Errorf("output folder %q must be a single folder name", name)
	}
	return nil
}

func (c Config) KeyColor() (imgutil.RGB, error) {
	return imgutil.ParseHex(c.Conversion.TransparentColor)
}

func (c Config) CompressionLevel() (png.CompressionLevel, error) {
	switch strings.ToLower(c.Conversion.Compression) {
	case "", "default":
		return png.DefaultCompression, nil
	case "none":
		return png.NoCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	default:
		return png.DefaultCompression, fmt.Errorf("invalid compression: %s", c.Conversion.Compression)
	}
}

// EngineOptions extracts what the converter needs.
func (c Config) EngineOptions() (converter.Options, error) {
	key, err := c.KeyColor()
	if err != nil {
		return converter.Options{}, err
	}
	level, err := c.CompressionLevel()
	if err != nil {
		return converter.Options{}, err
	}
	return converter.Options{
		KeyColor:     key,
		OutputFolder: c.Conversion.OutputFolder,
		Compression:  level,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

var configSchema = jsonschema.MustCompileString("keyout-config.schema.json", schemaJSON)

// Unknown sections (window size, button colors) are allowed so config
// files written for the desktop app still load.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "conversion": {
      "type": "object",
      "properties": {
        "transparent_color": {"type": "string", "pattern": "^#?[0-9A-Fa-f]{6}$"},
        "output_folder": {"type": "string", "minLength": 1},
        "compression": {"enum": ["default", "none", "speed", "best"]}
      }
    },
    "colors": {"type": "object"}
  }
}`
