/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mikeb26/mojimix/internal/batch"
	"github.com/mikeb26/mojimix/internal/namer"
	"github.com/mikeb26/mojimix/internal/types"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from the provided path. If path is empty, uses
// DefaultConfigPath. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("model", cfg.Model)
	v.SetDefault("count", cfg.Count)
	v.SetDefault("max_count", cfg.MaxCount)
	v.SetDefault("mode", cfg.Mode)
	v.SetDefault("concurrency", cfg.Concurrency)
	v.SetDefault("timeout_seconds", cfg.TimeoutSeconds)
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("namer.vendor", cfg.Namer.Vendor)
	v.SetDefault("namer.model", cfg.Namer.Model)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok &&
			!errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.OutputDir = expandPath(cfg.OutputDir)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if _, err := types.ParseModel(cfg.Model); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if _, err := batch.ParseMode(cfg.Mode); err != nil {
		return fmt.Errorf("mode: %w", err)
	}
	if cfg.MaxCount <= 0 {
		return fmt.Errorf("max_count must be positive, got %d", cfg.MaxCount)
	}
	if cfg.Count <= 0 || cfg.Count > cfg.MaxCount {
		return fmt.Errorf("count must be between 1 and %d, got %d",
			cfg.MaxCount, cfg.Count)
	}
	if cfg.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d",
			cfg.Concurrency)
	}
	if cfg.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative, got %d",
			cfg.TimeoutSeconds)
	}
	switch cfg.Namer.Vendor {
	case namer.VendorGoogle, namer.VendorOpenAI, namer.VendorAnthropic:
	default:
		return fmt.Errorf("unsupported namer.vendor %q", cfg.Namer.Vendor)
	}
	return nil
}

func expandPath(value string) string {
	value = os.ExpandEnv(strings.TrimSpace(value))
	if value == "~" || strings.HasPrefix(value, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			value = filepath.Join(home, strings.TrimPrefix(value, "~"))
		}
	}
	return value
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// Marshal renders cfg as it would appear on disk.
func Marshal(cfg Config) (string, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
