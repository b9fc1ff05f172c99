package twitchdrops

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var r6RowText = strings.Join([]string{
	"Tom Clancy's Rainbow Six Siege",
	"R6 Siege Drops Campaign",
	"Watch 4 hours to earn the Sledge Chibi Charm",
	"Jan 10 - Jan 24",
}, "\n")

var r6RowLinks = []string{
	"https://www.twitch.tv/directory/category/tom-clancys-rainbow-six-siege",
}

func TestParseRow(t *testing.T) {
	campaign, ok := ParseRow(r6RowText, r6RowLinks)
	require.True(t, ok)

	require.Equal(t, "tom-clancys-rainbow-six-siege", campaign.GameSlug)
	require.Equal(t, "Tom Clancy's Rainbow Six Siege", campaign.GameName)
	require.Equal(t, "R6 Siege Drops Campaign", campaign.CampaignTitle)
	require.Contains(t, campaign.Timeframe, "Jan 10 - Jan 24")
	require.NotNil(t, campaign.StartRaw)
	require.NotNil(t, campaign.EndRaw)
	require.Equal(t, "Jan 10", *campaign.StartRaw)
	require.Equal(t, "Jan 24", *campaign.EndRaw)
	require.Contains(t, campaign.Rewards, "Watch 4 hours to earn the Sledge Chibi Charm")
	require.Equal(t, r6RowText, campaign.RawText)
	require.Len(t, campaign.Id, idLength)
}

func TestParseRowDiscards(t *testing.T) {
	// too short to describe a campaign
	_, ok := ParseRow("hello", r6RowLinks)
	require.False(t, ok)

	// no category link, no reliable signal
	_, ok = ParseRow(r6RowText, []string{"https://www.twitch.tv/somestreamer"})
	require.False(t, ok)

	_, ok = ParseRow(r6RowText, nil)
	require.False(t, ok)
}

func TestParseRowDeterministic(t *testing.T) {
	a, ok := ParseRow(r6RowText, r6RowLinks)
	require.True(t, ok)
	b, ok := ParseRow(r6RowText, r6RowLinks)
	require.True(t, ok)

	diff := cmp.Diff(a, b)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestParseRowFallbacks(t *testing.T) {
	// every early line is either too long or mentions "campaign", so
	// the game name falls back to the title-cased slug; no line has a
	// date token, so the timeframe stays empty and start/end are unset.
	text := strings.Join([]string{
		"This Drops Campaign rewards the most dedicated viewers of all participating channels",
		"Get exclusive in-game loot during this campaign period",
	}, "\n")
	links := []string{"https://www.twitch.tv/directory/category/hades-ii"}

	campaign, ok := ParseRow(text, links)
	require.True(t, ok)

	require.Equal(t, "hades-ii", campaign.GameSlug)
	require.Equal(t, "Hades Ii", campaign.GameName)
	require.Equal(t, "", campaign.Timeframe)
	require.Nil(t, campaign.StartRaw)
	require.Nil(t, campaign.EndRaw)
	// title rule window allows long-ish lines up to 120 chars
	require.Contains(t, campaign.CampaignTitle, "Drops Campaign")
}

func TestParseRowTitleFallsBackToFirstLine(t *testing.T) {
	text := strings.Join([]string{
		"Some Game Name",
		"A totally generic description without the keywords",
		"Jan 1 - Jan 2",
	}, "\n")
	links := []string{"https://www.twitch.tv/directory/category/some-game"}

	campaign, ok := ParseRow(text, links)
	require.True(t, ok)
	require.Equal(t, "Some Game Name", campaign.CampaignTitle)
}

func TestGameSlugFromLinks(t *testing.T) {
	testCases := []struct {
		links []string
		slug  string
		ok    bool
	}{
		{
			links: []string{"https://www.twitch.tv/directory/category/Tom-Clancys-Rainbow-Six-Siege"},
			slug:  "tom-clancys-rainbow-six-siege",
			ok:    true,
		},
		{
			links: []string{
				"https://www.twitch.tv/somestreamer",
				"https://www.twitch.tv/directory/category/hades-ii?sort=VIEWER_COUNT",
			},
			slug: "hades-ii",
			ok:   true,
		},
		{
			// older ui linked the directory without the category segment
			links: []string{"https://www.twitch.tv/directory/rust"},
			slug:  "rust",
			ok:    true,
		},
		{
			links: []string{"https://example.com/directory/category/nope"},
			ok:    false,
		},
		{
			links: nil,
			ok:    false,
		},
	}

	for _, test := range testCases {
		slug, ok := GameSlugFromLinks(test.links)
		require.Equal(t, test.ok, ok)
		require.Equal(t, test.slug, slug)
	}
}

func TestRewardLinesKeepOrder(t *testing.T) {
	text := strings.Join([]string{
		"Rust",
		"Watch 2 hours to earn the first drop",
		"some filler line that keeps the blob long enough",
		"Watch 6 hours to earn the second drop",
	}, "\n")
	links := []string{"https://www.twitch.tv/directory/category/rust"}

	campaign, ok := ParseRow(text, links)
	require.True(t, ok)
	require.Equal(t, []string{
		"Watch 2 hours to earn the first drop",
		"Watch 6 hours to earn the second drop",
	}, campaign.Rewards)
}
