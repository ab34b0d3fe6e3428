package page

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotFound is returned when the marker does not name an entry of the
// directory.
var ErrNotFound = errors.New("page not found")

// Entry is one indexed directory entry.
type Entry struct {
	Key  Key
	Name string // file name inside the series directory
}

// Index is the sorted, immutable sequence of entries of one series together
// with the position the persisted marker resolved to.
type Index struct {
	mode    Mode
	entries []Entry
	start   int
}

// Build parses every name under the mode derived from marker, sorts the keys
// and locates the marker. Any unparsable name fails the whole build.
//
// A name may carry a file extension ("0001-000.png"); it is ignored for
// parsing and kept in Entry.Name. Names come from ReadDir, so a stray dot
// file such as .DS_Store never reaches Build.
func Build(names []string, marker string) (*Index, error) {
	marker = strings.TrimSpace(marker)
	mode := ModeFor(marker)

	want, err := Parse(marker, mode)
	if err != nil {
		return nil, fmt.Errorf("page: marker: %w", err)
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		k, err := Parse(strings.TrimSuffix(name, filepath.Ext(name)), mode)
		if err != nil {
			return nil, err
		}
		entries = append(entries, Entry{Key: k, Name: name})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return Compare(entries[i].Key, entries[j].Key) < 0
	})

	idx := &Index{mode: mode, entries: entries}
	start, ok := idx.Find(want)
	if !ok {
		return nil, fmt.Errorf("page: %s: %w", want, ErrNotFound)
	}
	idx.start = start
	return idx, nil
}

// ReadDir lists the entry names of a series directory. Sub-directories and
// dot files (.DS_Store, editor swap files) are skipped rather than failing
// the index; every other name must parse.
func ReadDir(dir string) ([]string, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("page: read %s: %w", dir, err)
	}
	names := make([]string, 0, len(des))
	for _, de := range des {
		if de.IsDir() || strings.HasPrefix(de.Name(), ".") {
			continue
		}
		names = append(names, de.Name())
	}
	return names, nil
}

// Mode returns the session mode.
func (x *Index) Mode() Mode { return x.mode }

// Len returns the number of entries.
func (x *Index) Len() int { return len(x.entries) }

// Start returns the position the marker resolved to.
func (x *Index) Start() int { return x.start }

// Key returns the key at position i.
func (x *Index) Key(i int) Key { return x.entries[i].Key }

// Entry returns the entry at position i.
func (x *Index) Entry(i int) Entry { return x.entries[i] }

// Keys returns a copy of the sorted keys.
func (x *Index) Keys() []Key {
	keys := make([]Key, len(x.entries))
	for i, e := range x.entries {
		keys[i] = e.Key
	}
	return keys
}

// Find returns the position of k.
func (x *Index) Find(k Key) (int, bool) {
	i := sort.Search(len(x.entries), func(i int) bool {
		return Compare(x.entries[i].Key, k) >= 0
	})
	if i < len(x.entries) && x.entries[i].Key.Equal(k) {
		return i, true
	}
	return 0, false
}

// Path joins the entry at position i onto dir.
func (x *Index) Path(dir string, i int) string {
	return filepath.Join(dir, x.entries[i].Name)
}
