package seenstate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "data", "seen.json"))

	require.Empty(t, store.Load(ctx))

	seen := map[string]bool{"aaaa": true, "bbbb": true}
	require.NoError(t, store.Save(ctx, seen))
	require.Equal(t, seen, store.Load(ctx))
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seen.json")
	require.NoError(t, os.WriteFile(path, []byte("{ nope"), 0644))

	require.Empty(t, NewFileStore(path).Load(context.Background()))
}
