/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package keys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvVar  = "GEMINI_API_KEY"
	KeyFile = "api_key"
)

var ErrNoKey = errors.New("no API key configured")

// Store locates the API key: the environment variable wins over the key
// file in Dir.
type Store struct {
	Dir    string
	Getenv func(string) string
}

func NewStore(dir string) *Store {
	return &Store{
		Dir:    dir,
		Getenv: os.Getenv,
	}
}

func (s *Store) Path() string {
	return filepath.Join(s.Dir, KeyFile)
}

// HasKey is the key-presence check; it never returns the key itself.
func (s *Store) HasKey() bool {
	_, _, err := s.Load()
	return err == nil
}

// Load returns the key and where it came from.
func (s *Store) Load() (string, string, error) {
	if s.Getenv != nil {
		if key := strings.TrimSpace(s.Getenv(EnvVar)); key != "" {
			return key, EnvVar, nil
		}
	}

	keyPath := s.Path()
	data, err := os.ReadFile(keyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", "", ErrNoKey
		}
		return "", "", fmt.Errorf("Could not load API key: %w", err)
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", "", ErrNoKey
	}

	return key, keyPath, nil
}

func (s *Store) Save(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key must not be empty")
	}
	err := os.MkdirAll(s.Dir, 0700)
	if err != nil {
		return fmt.Errorf("Could not create config directory: %w", err)
	}
	err = os.WriteFile(s.Path(), []byte(key), 0600)
	if err != nil {
		return fmt.Errorf("Could not save API key: %w", err)
	}

	return nil
}
