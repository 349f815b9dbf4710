package pathindex

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/fxamacker/cbor/v2"
)

// snapshot is the on-disk form of an index, written between runs so an
// interactive session starts with completion candidates before the
// first rescan finishes. The directory list is stored alongside the
// name table: a snapshot taken under a different search path is
// discarded.
type snapshot struct {
	Dirs  []string          `cbor:"1,keyasint"`
	Names map[string]string `cbor:"2,keyasint"`
}

// FromSnapshot builds an index over dirs from a saved snapshot, without
// scanning. Callers wanting fresh state afterwards run Rescan, possibly
// in the background.
func FromSnapshot(path string, dirs []string) (*Index, error) {
	ix := &Index{
		dirs:   dirs,
		logger: newLogger(),
		names:  make(map[string]string),
	}
	if err := ix.LoadSnapshot(path); err != nil {
		return nil, err
	}
	return ix, nil
}

// SaveSnapshot writes the current index state to path in CBOR form.
func (ix *Index) SaveSnapshot(path string) error {
	ix.mu.RLock()
	snap := snapshot{
		Dirs:  ix.dirs,
		Names: make(map[string]string, len(ix.names)),
	}
	for name, p := range ix.names {
		snap.Names[name] = p
	}
	ix.mu.RUnlock()

	data, err := cbor.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding path index snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadSnapshot replaces the index state with a previously saved
// snapshot. It fails if the snapshot was taken over a different
// directory list.
func (ix *Index) LoadSnapshot(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var snap snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decoding path index snapshot: %w", err)
	}

	if !slices.Equal(snap.Dirs, ix.dirs) {
		return fmt.Errorf("snapshot search path does not match current search path")
	}

	ix.mu.Lock()
	ix.names = snap.Names
	if ix.names == nil {
		ix.names = make(map[string]string)
	}
	ix.mu.Unlock()
	return nil
}
