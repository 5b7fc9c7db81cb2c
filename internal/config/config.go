/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/mikeb26/mojimix/internal/batch"
	"github.com/mikeb26/mojimix/internal/imagegen"
	"github.com/mikeb26/mojimix/internal/namer"
	"github.com/mikeb26/mojimix/internal/types"
)

const (
	CommandName = "mojimix"
	ConfigFile  = "config.yaml"
)

type Config struct {
	Model          string      `mapstructure:"model" yaml:"model"`
	Count          int         `mapstructure:"count" yaml:"count"`
	MaxCount       int         `mapstructure:"max_count" yaml:"max_count"`
	Mode           string      `mapstructure:"mode" yaml:"mode"`
	Concurrency    int         `mapstructure:"concurrency" yaml:"concurrency"`
	TimeoutSeconds int         `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
	OutputDir      string      `mapstructure:"output_dir" yaml:"output_dir"`
	Namer          NamerConfig `mapstructure:"namer" yaml:"namer"`
}

type NamerConfig struct {
	Vendor string `mapstructure:"vendor" yaml:"vendor"`
	Model  string `mapstructure:"model" yaml:"model"`
}

func DefaultConfig() Config {
	return Config{
		Model:          string(types.ModelFast),
		Count:          4,
		MaxCount:       8,
		Mode:           string(batch.ModeIndexed),
		Concurrency:    imagegen.DefaultConcurrency,
		TimeoutSeconds: 120,
		OutputDir:      ".",
		Namer: NamerConfig{
			Vendor: namer.DefaultVendor,
			Model:  namer.DefaultModel,
		},
	}
}

// ParsedModel and ParsedMode are only meaningful on a Config returned by
// Load, which has already validated both.
func (cfg Config) ParsedModel() types.Model {
	m, _ := types.ParseModel(cfg.Model)
	return m
}

func (cfg Config) ParsedMode() batch.Mode {
	m, _ := batch.ParseMode(cfg.Mode)
	return m
}

func (cfg Config) Timeout() time.Duration {
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}

// DefaultDir returns ~/.config/mojimix, which also holds the API key file.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", CommandName), nil
}

func DefaultConfigPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}
