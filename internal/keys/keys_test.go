/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this package for license terms
 */
package keys

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T, env string) *Store {
	s := NewStore(filepath.Join(t.TempDir(), "mojimix"))
	s.Getenv = func(name string) string {
		if name == EnvVar {
			return env
		}
		return ""
	}
	return s
}

func TestNoKey(t *testing.T) {
	s := newTestStore(t, "")

	assert.False(t, s.HasKey())
	_, _, err := s.Load()
	assert.ErrorIs(t, err, ErrNoKey)
}

func TestEnvWinsOverFile(t *testing.T) {
	s := newTestStore(t, " env-key\n")
	assert.NoError(t, s.Save("file-key"))

	key, source, err := s.Load()
	assert.NoError(t, err)
	assert.Equal(t, "env-key", key)
	assert.Equal(t, EnvVar, source)
}

func TestSaveAndLoadFile(t *testing.T) {
	s := newTestStore(t, "")

	assert.Error(t, s.Save("   "))
	assert.NoError(t, s.Save("file-key\n"))
	assert.True(t, s.HasKey())

	key, source, err := s.Load()
	assert.NoError(t, err)
	assert.Equal(t, "file-key", key)
	assert.Equal(t, s.Path(), source)

	info, err := os.Stat(s.Path())
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestBlankKeyFileIsNoKey(t *testing.T) {
	s := newTestStore(t, "")
	assert.NoError(t, os.MkdirAll(s.Dir, 0700))
	assert.NoError(t, os.WriteFile(s.Path(), []byte("\n"), 0600))

	assert.False(t, s.HasKey())
}
