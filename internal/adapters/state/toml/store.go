// Package toml persists the update cursor as a small TOML document.
package toml

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	gotoml "github.com/pelletier/go-toml/v2"
)

type schema struct {
	LastUpdateID int64 `toml:"last_update_id"`
}

// Store reads and writes the cursor file. Writes go through a temp
// file and rename so a crash never leaves a torn document.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted cursor, or 0 when the file does not
// exist yet.
func (s *Store) Load(_ context.Context) (int64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read cursor file: %w", err)
	}

	var doc schema
	if err := gotoml.Unmarshal(data, &doc); err != nil {
		return 0, fmt.Errorf("parse cursor file %s: %w", s.path, err)
	}
	return doc.LastUpdateID, nil
}

// Save records the highest fully-routed update ID.
func (s *Store) Save(_ context.Context, updateID int64) error {
	data, err := gotoml.Marshal(schema{LastUpdateID: updateID})
	if err != nil {
		return fmt.Errorf("encode cursor: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".cursor-*.toml")
	if err != nil {
		return fmt.Errorf("create temp cursor file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cursor file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace cursor file: %w", err)
	}
	return nil
}
