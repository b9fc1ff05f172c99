// Package seenstate persists sets of already-handled item keys, so
// watchers that announce things only announce them once.
package seenstate

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// Store persists one seen-set between runs. Load never fails the
// caller: losing the set only means re-announcing, which beats
// crashing a watch pass.
type Store interface {
	Load(ctx context.Context) map[string]bool
	Save(ctx context.Context, seen map[string]bool) error
}

type FileStore struct {
	path string
}

func NewFileStore(path string) FileStore {
	return FileStore{path: path}
}

type seenDocument struct {
	Seen []string `json:"seen"`
}

func (s FileStore) Load(ctx context.Context) map[string]bool {
	seen := map[string]bool{}

	contents, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return seen
	}
	if err != nil {
		slog.WarnContext(ctx, "failed to read seen state", "path", s.path, "err", err)
		return seen
	}

	var doc seenDocument
	err = json.Unmarshal(contents, &doc)
	if err != nil {
		slog.WarnContext(ctx, "failed to parse seen state", "path", s.path, "err", err)
		return seen
	}
	for _, key := range doc.Seen {
		seen[key] = true
	}
	return seen
}

func (s FileStore) Save(ctx context.Context, seen map[string]bool) error {
	doc := seenDocument{Seen: make([]string, 0, len(seen))}
	for key := range seen {
		doc.Seen = append(doc.Seen, key)
	}
	sort.Strings(doc.Seen)

	contents, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	err = os.MkdirAll(filepath.Dir(s.path), 0755)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, contents, 0644)
}
