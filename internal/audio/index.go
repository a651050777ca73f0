// Package audio maps syllables to their recorded audio files.
package audio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/noamlvn/nikudquiz/internal/logger"
)

// Index maps a syllable string to the audio file name that speaks it. It is
// the ground truth of which syllables are sayable: a syllable missing here is
// excluded from quizzes, never an error. Keys are held in Unicode canonical
// (NFC) form. The index is loaded once at startup and treated as immutable
// for the life of the process.
type Index map[string]string

// LoadIndex reads a JSON manifest from disk.
func LoadIndex(path string) (Index, error) {
	log := logger.Default().WithPrefix("audio")
	log.Debug("loading manifest: %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}

	// Keys are canonicalized so lookups compare syllables, not byte
	// sequences; unusable entries are dropped rather than failing the index.
	idx := make(Index, len(raw))
	for syllable, file := range raw {
		if syllable == "" || file == "" {
			log.Warn("dropping manifest entry with empty syllable or file")
			continue
		}
		idx[norm.NFC.String(syllable)] = file
	}

	log.Info("manifest loaded: %d syllables", len(idx))
	return idx, nil
}

// File returns the audio file name for a syllable. The lookup is by
// canonical form, so callers may pass any equivalent mark ordering.
func (i Index) File(syllable string) (string, bool) {
	f, ok := i[norm.NFC.String(syllable)]
	return f, ok
}

// Syllables returns the sayable syllables in sorted order.
func (i Index) Syllables() []string {
	out := make([]string, 0, len(i))
	for s := range i {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// WriteManifest writes the index as a JSON manifest, creating parent
// directories as needed. Used by the synthesis job; a running server never
// rewrites its own index.
func WriteManifest(path string, idx Index) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}
	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
