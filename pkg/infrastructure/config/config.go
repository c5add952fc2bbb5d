// Package config loads the application configuration naming the three
// reference data files. Relative paths resolve against the config file's
// directory so the tool can live next to its data.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AppConfig names the reference data sets of one installation.
type AppConfig struct {
	InvalidPartDB      string `json:"invalid_part_db"`
	BindingLibrary     string `json:"binding_library"`
	ImportantMaterials string `json:"important_materials"`
}

// Default returns the stock file names used when no config exists yet.
func Default() AppConfig {
	return AppConfig{
		InvalidPartDB:      "失效料号.xlsx",
		BindingLibrary:     "绑定料号.js",
		ImportantMaterials: "重要物料.txt",
	}
}

// Load reads the config, creating a default file when none exists.
// Hand-edited configs with unescaped Windows path backslashes are repaired
// and rewritten.
func Load(path string) (AppConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := Save(path, cfg); err != nil {
			return AppConfig{}, err
		}
		return resolve(cfg, filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return AppConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var cfg AppConfig
	repaired := false
	if err := json.Unmarshal(data, &cfg); err != nil {
		sanitized := strings.ReplaceAll(string(data), `\`, `\\`)
		if secondary := json.Unmarshal([]byte(sanitized), &cfg); secondary != nil {
			return AppConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		repaired = true
	}
	if repaired {
		if err := Save(path, cfg); err != nil {
			return AppConfig{}, err
		}
	}
	return resolve(cfg, filepath.Dir(path)), nil
}

// Save writes the config as indented JSON.
func Save(path string, cfg AppConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

func resolve(cfg AppConfig, baseDir string) AppConfig {
	cfg.InvalidPartDB = resolvePath(cfg.InvalidPartDB, baseDir)
	cfg.BindingLibrary = resolvePath(cfg.BindingLibrary, baseDir)
	cfg.ImportantMaterials = resolvePath(cfg.ImportantMaterials, baseDir)
	return cfg
}

func resolvePath(value, baseDir string) string {
	if value == "" {
		return baseDir
	}
	if filepath.IsAbs(value) {
		return value
	}
	return filepath.Join(baseDir, value)
}
