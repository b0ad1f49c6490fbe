package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// DefaultBackupSuffix is appended to the script path for the pre-save backup.
const DefaultBackupSuffix = ".bak"

// EntitiesSuffix is appended to the script path for the edited-entity file.
const EntitiesSuffix = ".entities.json"

// SaveOptions controls Save.
type SaveOptions struct {
	// BackupSuffix names the backup copy; empty means DefaultBackupSuffix.
	BackupSuffix string
}

// Save writes the store back to path, or to the path it was loaded from when
// path is empty. The existing file is first copied to path+BackupSuffix. The
// script text itself is written back unchanged; the current entities go to
// path+EntitiesSuffix as JSON. The change flag is cleared on success.
func (s *Store) Save(path string, opts SaveOptions) error {
	s.mu.RLock()
	if path == "" {
		path = s.path
	}
	source := s.source
	s.mu.RUnlock()
	if path == "" {
		return errors.New("save: no path given and store was not loaded from a file")
	}
	suffix := opts.BackupSuffix
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}

	if err := backup(path, path+suffix); err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	if err := writeAtomic(path, []byte(source)); err != nil {
		return fmt.Errorf("write script: %w", err)
	}

	snap := s.Snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode entities: %w", err)
	}
	if err := writeAtomic(path+EntitiesSuffix, data); err != nil {
		return fmt.Errorf("write entities: %w", err)
	}

	s.mu.Lock()
	s.changed = false
	s.mu.Unlock()

	log.Info().
		Str("path", path).
		Str("entities", path+EntitiesSuffix).
		Int("characters", len(snap.Characters)).
		Int("items", len(snap.Items)).
		Int("spells", len(snap.Spells)).
		Int("monsters", len(snap.Monsters)).
		Int("maps", len(snap.Maps)).
		Int("battles", len(snap.Battles)).
		Int("npcs", len(snap.NPCs)).
		Msg("Saved")
	return nil
}

// backup copies src to dst. A missing src is not an error.
func backup(src, dst string) error {
	data, err := os.ReadFile(src)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	return writeAtomic(dst, data)
}

// writeAtomic writes through a temp file in the target directory and renames
// it over path.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
