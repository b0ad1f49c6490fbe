package filewalker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// SupportedExtensions lists the script file types scanned for game data.
var SupportedExtensions = map[string]bool{
	".js":   true,
	".json": true,
	".txt":  true,
	".rb":   true,
	".lua":  true,
}

// Generated files that share a supported extension but never hold source data.
// Backups (game.js.bak) and source maps already fail the extension check.
var skippedSuffixes = []string{".entities.json"}

// FileEntry represents a discovered script ready for extraction.
type FileEntry struct {
	Path string
	Ext  string
	Size int64
}

// Walker discovers script files under a directory.
type Walker struct {
	// MaxSize skips files larger than this many bytes; zero means no limit.
	MaxSize int64
}

// NewWalker creates a Walker with no size limit.
func NewWalker() *Walker {
	return &Walker{}
}

// Walk discovers all supported files under root in lexical path order. Hidden
// directories are not entered.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !Supported(path) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Stat failed")
			return nil
		}
		if w.MaxSize > 0 && fi.Size() > w.MaxSize {
			log.Debug().Str("path", path).Int64("size", fi.Size()).Msg("Skipping oversized file")
			return nil
		}
		entries = append(entries, FileEntry{
			Path: path,
			Ext:  strings.ToLower(filepath.Ext(path)),
			Size: fi.Size(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered files")
	return entries, nil
}

// Supported reports whether path looks like a script worth extracting.
func Supported(path string) bool {
	lower := strings.ToLower(filepath.Base(path))
	for _, s := range skippedSuffixes {
		if strings.HasSuffix(lower, s) {
			return false
		}
	}
	return SupportedExtensions[filepath.Ext(lower)]
}
