package twitchdrops

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// length of the hex digest kept as a campaign id
const idLength = 16

// Fingerprint derives the stable campaign id from the fields that carry
// the campaign's meaning. GameName, CampaignTitle and RawText are
// deliberately excluded so cosmetic rewording upstream doesn't produce a
// new identity. A change to timeframe or rewards does produce a new id,
// which the diff layer reports as a removed+added pair.
func Fingerprint(gameSlug, timeframe string, rewards []string) string {
	basis := gameSlug + "|" + timeframe + "|" + strings.Join(rewards, ",")
	sum := sha256.Sum256([]byte(basis))
	return hex.EncodeToString(sum[:])[:idLength]
}

// Dedup collapses campaigns sharing an id down to one representative.
// The last-seen record wins content-wise (duplicates are expected to be
// identical in the fields that matter) while output order follows the
// first appearance of each id, so repeated runs over the same input
// yield the same sequence.
func Dedup(campaigns []Campaign) []Campaign {
	index := make(map[string]int, len(campaigns))
	var out []Campaign
	for _, c := range campaigns {
		if at, ok := index[c.Id]; ok {
			out[at] = c
			continue
		}
		index[c.Id] = len(out)
		out = append(out, c)
	}
	return out
}
