package protocol

import "github.com/yntha/nebulous-go/wire"

// GameData is one complete world snapshot pushed by the server (spec
// §4.B). Every list replaces the prior snapshot in full -- there is no
// incremental/delta form.
type GameData struct {
	PublicID int32
	MapSize  float32

	Players []Player
	Ejected []EjectedMass
	Dots    []Dot
	Items   []Item
}

// DecodeGameData parses a GAME_DATA payload (type byte already
// consumed by the caller).
func DecodeGameData(body []byte) (GameData, error) {
	var g GameData
	r := wire.NewReader(body)

	var err error
	if g.PublicID, err = r.I32(); err != nil {
		return g, err
	}
	if g.MapSize, err = r.F32(); err != nil {
		return g, err
	}

	playerCount, err := r.U8()
	if err != nil {
		return g, err
	}
	ejectCount, err := r.U8()
	if err != nil {
		return g, err
	}
	dotIDOffset, err := r.U16()
	if err != nil {
		return g, err
	}
	dotCount, err := r.U16()
	if err != nil {
		return g, err
	}
	itemIDOffset, err := r.U8()
	if err != nil {
		return g, err
	}
	itemCount, err := r.U8()
	if err != nil {
		return g, err
	}

	g.Players = make([]Player, 0, playerCount)
	for i := 0; i < int(playerCount); i++ {
		p, err := ReadPlayer(r)
		if err != nil {
			return g, err
		}
		g.Players = append(g.Players, p)
	}

	g.Ejected = make([]EjectedMass, 0, ejectCount)
	for i := 0; i < int(ejectCount); i++ {
		e, err := ReadEjectedMass(r, g.MapSize)
		if err != nil {
			return g, err
		}
		g.Ejected = append(g.Ejected, e)
	}

	if g.Dots, err = ReadDots(r, dotIDOffset, dotCount, g.MapSize); err != nil {
		return g, err
	}
	if g.Items, err = ReadItems(r, itemIDOffset, itemCount, g.MapSize); err != nil {
		return g, err
	}

	return g, nil
}

// GameUpdate is the envelope for a GAME_UPDATE packet: the raw event
// stream, to be decomposed by package event (spec §4.C). The update
// has no length prefix of its own -- events are parsed until the
// datagram is exhausted.
type GameUpdate struct {
	Body []byte
}
