package protocol

import "github.com/yntha/nebulous-go/wire"

// Player is the network form of a single player entry in a GAME_DATA
// snapshot (spec §3). Cosmetic identifiers (skins, hats, halos, pets,
// particles, fonts) are treated as opaque values: this core neither
// validates nor interprets them (spec §1).
type Player struct {
	Index uint8 // player_id, 1 byte on the wire

	Skin       uint16
	EjectSkin  uint8
	CustomSkin int32

	Pet1Custom int32
	Pet1ID     uint8
	Pet1Level  uint16
	Pet1Name   string

	Hat  uint8
	Halo uint8

	Pet2ID     uint8
	Pet2Level  uint16
	Pet2Name   string
	Pet2Custom int32

	CustomParticle int32
	Particle       uint8

	LevelColors []byte // variable-length byte array

	NameAnimation  uint8
	Skin2          uint16
	SkinInterpRate float32 // compressed, domain [0, 60]
	CustomSkin2    int32
	BlobColor      uint32 // ARGB
	TeamID         uint8
	DisplayName    string
	Font           uint8
	AliasColors    []byte

	AccountID int32
	Level     uint16

	ClanName   string
	ClanColors []byte
	ClanRole   uint8

	ClickType uint8
}

// ReadPlayer decodes one Player record from r (spec §3). Players carry
// no position fields directly; position lives in the GAME_UPDATE event
// stream.
func ReadPlayer(r *wire.Reader) (Player, error) {
	var p Player
	var err error

	if p.Index, err = r.U8(); err != nil {
		return p, err
	}
	if p.Skin, err = r.U16(); err != nil {
		return p, err
	}
	if p.EjectSkin, err = r.U8(); err != nil {
		return p, err
	}
	if p.CustomSkin, err = r.I32(); err != nil {
		return p, err
	}
	if p.Pet1Custom, err = r.I32(); err != nil {
		return p, err
	}
	if p.Pet1ID, err = r.U8(); err != nil {
		return p, err
	}
	if p.Pet1Level, err = r.U16(); err != nil {
		return p, err
	}
	if p.Pet1Name, err = r.MUTF8(); err != nil {
		return p, err
	}
	if p.Hat, err = r.U8(); err != nil {
		return p, err
	}
	if p.Halo, err = r.U8(); err != nil {
		return p, err
	}
	if p.Pet2ID, err = r.U8(); err != nil {
		return p, err
	}
	if p.Pet2Level, err = r.U16(); err != nil {
		return p, err
	}
	if p.Pet2Name, err = r.MUTF8(); err != nil {
		return p, err
	}
	if p.Pet2Custom, err = r.I32(); err != nil {
		return p, err
	}
	if p.CustomParticle, err = r.I32(); err != nil {
		return p, err
	}
	if p.Particle, err = r.U8(); err != nil {
		return p, err
	}
	if p.LevelColors, err = r.VarBytes1(); err != nil {
		return p, err
	}
	if p.NameAnimation, err = r.U8(); err != nil {
		return p, err
	}
	if p.Skin2, err = r.U16(); err != nil {
		return p, err
	}
	if p.SkinInterpRate, err = r.CompressedFloat2(60.0); err != nil {
		return p, err
	}
	if p.CustomSkin2, err = r.I32(); err != nil {
		return p, err
	}
	if p.BlobColor, err = r.U32(); err != nil {
		return p, err
	}
	if p.TeamID, err = r.U8(); err != nil {
		return p, err
	}
	if p.DisplayName, err = r.MUTF8(); err != nil {
		return p, err
	}
	if p.Font, err = r.U8(); err != nil {
		return p, err
	}
	if p.AliasColors, err = r.VarBytes1(); err != nil {
		return p, err
	}
	if p.AccountID, err = r.I32(); err != nil {
		return p, err
	}
	if p.Level, err = r.U16(); err != nil {
		return p, err
	}
	if p.ClanName, err = r.MUTF8(); err != nil {
		return p, err
	}
	if p.ClanColors, err = r.VarBytes1(); err != nil {
		return p, err
	}
	if p.ClanRole, err = r.U8(); err != nil {
		return p, err
	}
	if p.ClickType, err = r.U8(); err != nil {
		return p, err
	}

	return p, nil
}

// EjectedMass is an ejected-mass pellet shot by a blob (spec §3).
type EjectedMass struct {
	ID   uint8
	X, Y float32
	Mass float32
}

// ReadEjectedMass decodes one EjectedMass record; its x/y/mass fields
// are all 3-byte compressed floats whose ranges depend on the current
// world mapSize.
func ReadEjectedMass(r *wire.Reader, mapSize float32) (EjectedMass, error) {
	var e EjectedMass
	var err error
	if e.ID, err = r.U8(); err != nil {
		return e, err
	}
	if e.X, err = r.CompressedFloat3(mapSize); err != nil {
		return e, err
	}
	if e.Y, err = r.CompressedFloat3(mapSize); err != nil {
		return e, err
	}
	if e.Mass, err = r.CompressedFloat3(500000); err != nil {
		return e, err
	}
	return e, nil
}

// Dot is a small consumable world entity (spec §3). Its ID is not
// transmitted directly: GAME_DATA carries an (offset, count) pair and
// the k-th dot's id is offset+k (spec §3); ReadDots below applies that
// rule.
type Dot struct {
	ID   int
	X, Y float32
}

// ReadDots decodes count Dot records starting at idOffset.
func ReadDots(r *wire.Reader, idOffset uint16, count uint16, mapSize float32) ([]Dot, error) {
	dots := make([]Dot, 0, count)
	for k := uint16(0); k < count; k++ {
		x, err := r.CompressedFloat3(mapSize)
		if err != nil {
			return dots, err
		}
		y, err := r.CompressedFloat3(mapSize)
		if err != nil {
			return dots, err
		}
		dots = append(dots, Dot{ID: int(idOffset) + int(k), X: x, Y: y})
	}
	return dots, nil
}

// Item is a pickup entity with a 1-byte item type (spec §3). Like Dot,
// its ID is derived from (offset, count).
type Item struct {
	ID       int
	ItemType uint8
	X, Y     float32
}

// ReadItems decodes count Item records starting at idOffset.
func ReadItems(r *wire.Reader, idOffset uint8, count uint8, mapSize float32) ([]Item, error) {
	items := make([]Item, 0, count)
	for k := uint8(0); k < count; k++ {
		itemType, err := r.U8()
		if err != nil {
			return items, err
		}
		x, err := r.CompressedFloat3(mapSize)
		if err != nil {
			return items, err
		}
		y, err := r.CompressedFloat3(mapSize)
		if err != nil {
			return items, err
		}
		items = append(items, Item{ID: int(idOffset) + int(k), ItemType: itemType, X: x, Y: y})
	}
	return items, nil
}

// ChatMessage is the shared base shape of GAME_CHAT_MESSAGE and
// CLAN_CHAT_MESSAGE (spec §3).
type ChatMessage struct {
	SenderPlayerID int32
	SenderAlias    string
	Body           string
	AliasColors    []byte
}
