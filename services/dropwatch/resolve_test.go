package dropwatch

import (
	"testing"

	"dropwatch-backend/lib/scrapers/twitchdrops"

	"github.com/stretchr/testify/require"
)

func TestResolveWatchSlug(t *testing.T) {
	campaigns := []twitchdrops.Campaign{
		{GameName: "Tom Clancy's Rainbow Six Siege", GameSlug: "tom-clancys-rainbow-six-siege"},
		{GameName: "Rust", GameSlug: "rust"},
		{GameName: "Hades II", GameSlug: "hades-ii"},
	}

	testCases := []struct {
		query string
		slug  string
		ok    bool
	}{
		// exact slug wins outright
		{"rust", "rust", true},
		{" RUST ", "rust", true},
		// normalized substring of the display name
		{"rainbow six", "tom-clancys-rainbow-six-siege", true},
		{"hades", "hades-ii", true},
		// close misspelling within edit distance
		{"Hades 2I", "hades-ii", true},
		// too far from anything
		{"league of legends", "", false},
		{"", "", false},
	}

	for _, test := range testCases {
		slug, ok := ResolveWatchSlug(test.query, campaigns)
		require.Equal(t, test.ok, ok, "query %q", test.query)
		require.Equal(t, test.slug, slug, "query %q", test.query)
	}
}

func TestResolveWatchSlugEmptyCatalog(t *testing.T) {
	_, ok := ResolveWatchSlug("rust", nil)
	require.False(t, ok)
}
