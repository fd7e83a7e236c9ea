package nebulous

import "math/rand"

// aliasLen is the fixed length of the random identity alias used for
// local-player discovery (spec §4.E).
const aliasLen = 16

// aliasMin/aliasMax bound the printable-ASCII code point range the
// alias is drawn from (spec §4.E: "code points 0x21..0x7E").
const (
	aliasMin = 0x21
	aliasMax = 0x7E
)

// newDiscoveryAlias generates the random 16-byte ASCII alias spec
// §4.E mandates be sent as CONNECT_REQUEST_3's alias field, so that a
// later GAME_DATA snapshot can be matched back to the local player by
// exact alias equality. This supersedes Config.Alias on the wire; see
// DESIGN.md for why.
func newDiscoveryAlias(src *rand.Rand) string {
	b := make([]byte, aliasLen)
	for i := range b {
		b[i] = byte(aliasMin + src.Intn(aliasMax-aliasMin+1))
	}
	return string(b)
}
