package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "rainbowsixsiege", NormalizeName("  Rainbow Six\tSiege \n"))
}

func TestMatchName(t *testing.T) {
	require.True(t, MatchName("Tom Clancy's Rainbow Six Siege", []string{"rainbowsix"}))
	require.False(t, MatchName("Rust", []string{"rainbowsix"}))
}

func TestCollapseSpaces(t *testing.T) {
	require.Equal(t, "a b c", CollapseSpaces("  a \n b\t\tc "))
	require.Equal(t, "", CollapseSpaces(" \n\t"))
}

func TestLines(t *testing.T) {
	lines := Lines("first line\r\n\n  second  \n\n\nthird\n")
	require.Equal(t, []string{"first line", "second", "third"}, lines)

	require.Nil(t, Lines(""))
	require.Nil(t, Lines("\n\n"))
}

func TestTitleFromSlug(t *testing.T) {
	require.Equal(t, "Tom Clancys Rainbow Six Siege", TitleFromSlug("tom-clancys-rainbow-six-siege"))
	require.Equal(t, "Rust", TitleFromSlug("rust"))
	require.Equal(t, "", TitleFromSlug(""))
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", Truncate("abc", 5))
	require.Equal(t, "ab", Truncate("abcde", 2))
	require.Equal(t, "héł", Truncate("héłło", 3))
}
