package nebulous

import (
	"sync"

	"github.com/yntha/nebulous-go/protocol"
)

// World is the in-memory mirror populated from GAME_DATA snapshots
// (spec §3). Every GAME_DATA replaces the prior lists in full -- there
// is no incremental/delta form. It is mutated only by the receive
// loop and read by the send loop (for the local player index) and by
// host callbacks (spec §5).
type World struct {
	mu sync.RWMutex

	publicID int32
	mapSize  float32
	players  []protocol.Player
	ejected  []protocol.EjectedMass
	dots     []protocol.Dot
	items    []protocol.Item

	localIndex     int
	localIndexKnown bool
}

// replace swaps in a freshly decoded GAME_DATA snapshot atomically, so
// readers never observe a mix of old and new lists (spec §5: "no
// partial snapshots are exposed").
func (w *World) replace(data protocol.GameData) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.publicID = data.PublicID
	w.mapSize = data.MapSize
	w.players = data.Players
	w.ejected = data.Ejected
	w.dots = data.Dots
	w.items = data.Items
}

// discoverLocalPlayer scans the current player list for one whose
// DisplayName matches alias, the random 16-byte identity generated at
// client construction (spec §4.E). It is a no-op once the local
// player has already been found -- the index, once discovered, does
// not change for the life of the session.
func (w *World) discoverLocalPlayer(alias string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.localIndexKnown {
		return
	}
	for _, p := range w.players {
		if p.DisplayName == alias {
			w.localIndex = int(p.Index)
			w.localIndexKnown = true
			return
		}
	}
}

// LocalPlayerIndex returns the local player's index within the
// mirror and whether it has been discovered yet (spec §3, §4.E).
// CONTROL MUST NOT be sent while the second return value is false.
func (w *World) LocalPlayerIndex() (int, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.localIndex, w.localIndexKnown
}

// MapSize returns the most recently mirrored map_size, which the
// event codec's compressed-float fields depend on (spec §4.C).
func (w *World) MapSize() float32 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.mapSize
}

// Snapshot is a read-only view of the world mirror at one instant.
// The slices are never mutated in place after being set by replace,
// only swapped out wholesale, so sharing them with callers under a
// read lock is safe.
type Snapshot struct {
	PublicID int32
	MapSize  float32
	Players  []protocol.Player
	Ejected  []protocol.EjectedMass
	Dots     []protocol.Dot
	Items    []protocol.Item
}

// Snapshot returns the current world state. Callers MUST treat the
// returned slices as read-only (spec §3: "external handlers receive
// read-only views").
func (w *World) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return Snapshot{
		PublicID: w.publicID,
		MapSize:  w.mapSize,
		Players:  w.players,
		Ejected:  w.ejected,
		Dots:     w.dots,
		Items:    w.items,
	}
}
