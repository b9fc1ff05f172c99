package dropwatch

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"dropwatch-backend/lib/scrapers/twitchdrops"
)

// SnapshotStore persists the prior run's snapshot between invocations.
type SnapshotStore interface {
	// Load never fails the caller: a missing or corrupt snapshot
	// degrades to an empty one, which makes the whole run read as
	// "added"; over-notifying beats silently losing updates.
	Load(ctx context.Context) twitchdrops.Snapshot
	Save(ctx context.Context, snapshot twitchdrops.Snapshot) error
}

// FileStore keeps the snapshot as an indented json document.
type FileStore struct {
	path string
}

func NewFileStore(path string) FileStore {
	return FileStore{path: path}
}

func emptySnapshot() twitchdrops.Snapshot {
	return twitchdrops.Snapshot{Campaigns: []twitchdrops.Campaign{}}
}

func (s FileStore) Load(ctx context.Context) twitchdrops.Snapshot {
	contents, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return emptySnapshot()
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to read prior snapshot", "path", s.path, "err", err)
		return emptySnapshot()
	}

	var snapshot twitchdrops.Snapshot
	err = json.Unmarshal(contents, &snapshot)
	if err != nil {
		slog.WarnContext(ctx, "failed to parse prior snapshot", "path", s.path, "err", err)
		return emptySnapshot()
	}
	if snapshot.Campaigns == nil {
		snapshot.Campaigns = []twitchdrops.Campaign{}
	}
	return snapshot
}

// Save writes through a temp file and renames so a crash mid-write
// can't leave a truncated snapshot behind.
func (s FileStore) Save(ctx context.Context, snapshot twitchdrops.Snapshot) error {
	contents, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	_, err = tmp.Write(contents)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
