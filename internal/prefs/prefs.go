// Package prefs persists viewer preferences between runs.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	prefsVersion = 1

	prefsFileName = "prefs.json"
	appDirName    = "folio"
)

// Prefs is loaded from and saved to ~/.local/state/folio/prefs.json
// (respecting XDG_STATE_HOME).
type Prefs struct {
	Version     int       `json:"version"`
	Theme       string    `json:"theme"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// Store handles loading and saving Prefs to disk.
type Store struct {
	dir string
}

// NewStore creates a Store in dir. Pass an empty string to use the default
// XDG state path.
func NewStore(dir string) *Store {
	if dir == "" {
		dir = defaultDir()
	}
	return &Store{dir: dir}
}

// Path returns the full path to the prefs file.
func (s *Store) Path() string {
	return filepath.Join(s.dir, prefsFileName)
}

// Load reads prefs from disk. A missing file yields zero-value Prefs.
func (s *Store) Load() (*Prefs, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return &Prefs{Version: prefsVersion}, nil
		}
		return nil, fmt.Errorf("reading prefs: %w", err)
	}

	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing prefs: %w", err)
	}
	return &p, nil
}

// Save writes prefs using an atomic temp-file-then-rename.
func (s *Store) Save(p *Prefs) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating prefs dir: %w", err)
	}

	p.Version = prefsVersion
	p.LastUpdated = time.Now().UTC()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling prefs: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, ".prefs-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.Path()); err != nil {
		return fmt.Errorf("renaming prefs file: %w", err)
	}
	committed = true
	return nil
}

func defaultDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appDirName)
	}
	return filepath.Join(home, ".local", "state", appDirName)
}
