package cookiejar

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrCorruptSnapshot is returned by Import when the snapshot cannot be
// decoded. Import never silently produces a partial store.
var ErrCorruptSnapshot = errors.New("cookiejar: corrupt snapshot")

const snapshotVersion = 1

type snapshot struct {
	Version int     `json:"version"`
	Entries []Entry `json:"entries"`
}

// Export returns an opaque snapshot of all unexpired entries, suitable
// for Import.
func (j *Jar) Export() ([]byte, error) {
	return json.Marshal(snapshot{
		Version: snapshotVersion,
		Entries: j.Entries(),
	})
}

// Import replaces the whole entry set with a snapshot produced by
// Export. A snapshot that cannot be decoded is a hard error and leaves
// the jar untouched.
func (j *Jar) Import(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %s", ErrCorruptSnapshot, err)
	}
	if snap.Version != snapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrCorruptSnapshot, snap.Version)
	}
	if err := j.Restore(snap.Entries); err != nil {
		return fmt.Errorf("%w: %s", ErrCorruptSnapshot, err)
	}
	return nil
}

// Restore replaces the whole entry set, rebuilding the host-only and
// expiration indexes. No merge semantics: prior state is discarded.
func (j *Jar) Restore(entries []Entry) error {
	for _, e := range entries {
		if e.Name == "" {
			return errors.New("entry with empty name")
		}
		if !strings.HasPrefix(e.Path, "/") {
			return fmt.Errorf("entry %q with invalid path %q", e.Name, e.Path)
		}
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries = make(map[entryKey]*Entry, len(entries))
	j.hostOnly = make(map[hostKey]struct{})
	j.expirations = make(map[entryKey]time.Time, len(entries))
	j.next = endOfTime

	for _, e := range entries {
		e := e
		key := entryKey{e.Domain, e.Path, e.Name}
		j.entries[key] = &e
		if e.HostOnly {
			j.hostOnly[hostKey{e.Domain, e.Name}] = struct{}{}
		}
		if !e.Expires.IsZero() {
			j.expirations[key] = e.Expires
			if e.Expires.Before(j.next) {
				j.next = e.Expires
			}
		}
	}
	return nil
}
