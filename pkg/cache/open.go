package cache

import (
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DefaultDir returns the directory cboragen's on-disk L2 cache lives in by
// default: $XDG_CACHE_HOME/cboragen, falling back to $HOME/.cache/cboragen
// when XDG_CACHE_HOME is unset, matching the XDG base-directory convention
// the rest of the ecosystem's CLIs follow.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "cboragen"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".cache", "cboragen"), nil
}

// OpenL2 opens (creating if necessary) the SQLite database at path and
// migrates it, giving NewTwoTier an L2 tier that persists across process
// invocations (§4.7). Callers that want an L1-only, ephemeral cache should
// pass a nil *gorm.DB to NewTwoTier instead of calling OpenL2.
func OpenL2(path string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}
