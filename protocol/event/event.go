// Package event decomposes a GAME_UPDATE packet's payload into the
// typed event stream described in spec §4.C. The stream is not
// self-delimiting: an unrecognized type byte forces the remainder of
// the datagram to be discarded, because there is no way to know how
// many bytes the unknown event would have consumed.
package event

import (
	"errors"
	"fmt"

	"github.com/yntha/nebulous-go/wire"
)

// ErrUnknownType is returned (wrapped) by Decode when it encounters an
// event type byte the core does not recognize. The events already
// decoded are still valid and must be delivered; only the remainder
// of the datagram is lost (spec §4.C, §7).
var ErrUnknownType = errors.New("event: unknown type")

// Event is one decoded entry from a GAME_UPDATE stream: a shared type
// tag plus a per-variant payload (spec §9's tagged-variant guidance).
// Payload is nil for the many event types that carry no additional
// fields beyond the type byte.
type Event struct {
	Type    Type
	Payload any
}

// Per-variant payloads, field order matching spec §4.C exactly.

type BlobExplode struct{ PlayerID, BlobID uint8 }
type Eject struct{ PlayerID, BlobID uint8 }
type Split struct{ PlayerID uint8 }
type Recombine struct{ PlayerID uint8 }
type AchievementEarned struct{ AchievementID int16 }

type XPSet struct {
	PlayerXP         int64
	XPMultType       uint8
	XPDurationS      int32
	PlasmaBoostType  uint8
	ClickDurationS   uint32 // CompressedInt3
}

type DQSet struct {
	DQID      uint8
	Completed bool
}
type DQCompleted struct{ DQID uint8 }
type DQProgress struct{ Progress int16 }
type EatSO struct{ SOID, SOCount uint8 }
type SOSet struct {
	SOID    uint8
	SOCount int32
}
type LevelUp struct{ Level int16 }
type ArenaRankAchieved struct {
	AchievedRank bool
	Rank         uint8
}
type BlobStatus struct {
	PlayerID, BlobID uint8
	Status           uint16
}
type Teleport struct{ PlayerID uint8 }
type Shoot struct{ PlayerID, BlobID, SpellID uint8 }
type ClanWarWon struct{ Reward int16 }
type PlasmaReward struct {
	Reward     uint32 // CompressedInt3
	Multiplier uint8
}
type Emote struct {
	PlayerID, BlobID, EmoteID uint8
	CustomEmoteID             int32
}
type EndMission struct {
	MissionID     uint8
	Passed        bool
	NextMissionID uint8
	XPReward      uint32 // CompressedInt3
	PlasmaReward  int16
}
type XPGained2 struct {
	PlayerXP        uint32 // CompressedInt3
	ChainMultiplier float32 // CompressedFloat2 over [0,8.0], +1.0 applied (spec §4.C, §9)
	XPGained        uint32  // CompressedInt3
}
type EatCake struct{ PlasmaAmount, XPAmount uint32 } // both CompressedInt3
type CoinCount struct {
	PlayerID  uint8
	CoinCount int16
}
type Speed struct{ TimeMsOffset int16 }
type Invis struct{ TimeMsOffset int16 }
type Trick struct {
	TrickID    uint8
	TrickScore int16
	TrickXP    uint32 // CompressedInt3
}
type Accolade struct{ Count uint8 }
type KilledBy struct{ KillerID uint8 }
type RadiationCloud struct {
	PlayerID       uint8
	X, Y           float32 // CompressedFloat3, range = current map_size
	TimeRemaining  float32 // CompressedFloat2, range 16.0
}

// ChargeType is an opaque cosmetic-adjacent identifier; the core does
// not interpret it (spec §1).
type ChargeType uint8

type Charge struct {
	PlayerID   uint8
	ChargeType ChargeType
}
type LPCount struct{ Count uint8 }
type RLGLState struct{ State uint8 }
type BRBounds struct {
	Left, Top, Right, Bottom                 float32 // CompressedFloat3, range = map_size
	LimLeft, LimTop, LimRight, LimBottom      float32 // CompressedFloat3, range = map_size
}

// decoders maps every event type with a non-empty wire payload to a
// function that reads it. Types absent from this table (22 of the
// 55-entry enumeration -- EAT_DOTS, EAT_BLOB, GAME_OVER, and
// similar bookkeeping markers) carry no payload beyond the type byte,
// matching the original source's GameEvent base class for those
// entries (models/gameevents.py's EventMap).
var decoders = map[Type]func(r *wire.Reader, mapSize float32) (any, error){
	TypeBlobExplode: func(r *wire.Reader, _ float32) (any, error) {
		p, err := r.U8()
		if err != nil {
			return nil, err
		}
		b, err := r.U8()
		return BlobExplode{PlayerID: p, BlobID: b}, err
	},
	TypeEject: func(r *wire.Reader, _ float32) (any, error) {
		p, err := r.U8()
		if err != nil {
			return nil, err
		}
		b, err := r.U8()
		return Eject{PlayerID: p, BlobID: b}, err
	},
	TypeSplit: func(r *wire.Reader, _ float32) (any, error) {
		p, err := r.U8()
		return Split{PlayerID: p}, err
	},
	TypeRecombine: func(r *wire.Reader, _ float32) (any, error) {
		p, err := r.U8()
		return Recombine{PlayerID: p}, err
	},
	TypeAchievementEarned: func(r *wire.Reader, _ float32) (any, error) {
		id, err := r.I16()
		return AchievementEarned{AchievementID: id}, err
	},
	TypeXpSet: func(r *wire.Reader, _ float32) (any, error) {
		var e XPSet
		var err error
		if e.PlayerXP, err = r.I64(); err != nil {
			return e, err
		}
		if e.XPMultType, err = r.U8(); err != nil {
			return e, err
		}
		if e.XPDurationS, err = r.I32(); err != nil {
			return e, err
		}
		if e.PlasmaBoostType, err = r.U8(); err != nil {
			return e, err
		}
		e.ClickDurationS, err = r.CompressedInt3()
		return e, err
	},
	TypeDqSet: func(r *wire.Reader, _ float32) (any, error) {
		var e DQSet
		var err error
		if e.DQID, err = r.U8(); err != nil {
			return e, err
		}
		e.Completed, err = r.Bool()
		return e, err
	},
	TypeDqCompleted: func(r *wire.Reader, _ float32) (any, error) {
		id, err := r.U8()
		return DQCompleted{DQID: id}, err
	},
	TypeDqProgress: func(r *wire.Reader, _ float32) (any, error) {
		v, err := r.I16()
		return DQProgress{Progress: v}, err
	},
	TypeEatSpecialObjects: func(r *wire.Reader, _ float32) (any, error) {
		var e EatSO
		var err error
		if e.SOID, err = r.U8(); err != nil {
			return e, err
		}
		e.SOCount, err = r.U8()
		return e, err
	},
	TypeSoSet: func(r *wire.Reader, _ float32) (any, error) {
		var e SOSet
		var err error
		if e.SOID, err = r.U8(); err != nil {
			return e, err
		}
		e.SOCount, err = r.I32()
		return e, err
	},
	TypeLevelUp: func(r *wire.Reader, _ float32) (any, error) {
		v, err := r.I16()
		return LevelUp{Level: v}, err
	},
	TypeArenaRankAchieved: func(r *wire.Reader, _ float32) (any, error) {
		var e ArenaRankAchieved
		var err error
		if e.AchievedRank, err = r.Bool(); err != nil {
			return e, err
		}
		e.Rank, err = r.U8()
		return e, err
	},
	TypeBlobStatus: func(r *wire.Reader, _ float32) (any, error) {
		var e BlobStatus
		var err error
		if e.PlayerID, err = r.U8(); err != nil {
			return e, err
		}
		if e.BlobID, err = r.U8(); err != nil {
			return e, err
		}
		e.Status, err = r.U16()
		return e, err
	},
	TypeTeleport: func(r *wire.Reader, _ float32) (any, error) {
		p, err := r.U8()
		return Teleport{PlayerID: p}, err
	},
	TypeShoot: func(r *wire.Reader, _ float32) (any, error) {
		var e Shoot
		var err error
		if e.PlayerID, err = r.U8(); err != nil {
			return e, err
		}
		if e.BlobID, err = r.U8(); err != nil {
			return e, err
		}
		e.SpellID, err = r.U8()
		return e, err
	},
	TypeClanWarWon: func(r *wire.Reader, _ float32) (any, error) {
		v, err := r.I16()
		return ClanWarWon{Reward: v}, err
	},
	TypePlasmaReward: func(r *wire.Reader, _ float32) (any, error) {
		var e PlasmaReward
		var err error
		if e.Reward, err = r.CompressedInt3(); err != nil {
			return e, err
		}
		e.Multiplier, err = r.U8()
		return e, err
	},
	TypeEmote: func(r *wire.Reader, _ float32) (any, error) {
		var e Emote
		var err error
		if e.PlayerID, err = r.U8(); err != nil {
			return e, err
		}
		if e.BlobID, err = r.U8(); err != nil {
			return e, err
		}
		if e.EmoteID, err = r.U8(); err != nil {
			return e, err
		}
		e.CustomEmoteID, err = r.I32()
		return e, err
	},
	TypeEndMission: func(r *wire.Reader, _ float32) (any, error) {
		var e EndMission
		var err error
		if e.MissionID, err = r.U8(); err != nil {
			return e, err
		}
		if e.Passed, err = r.Bool(); err != nil {
			return e, err
		}
		if e.NextMissionID, err = r.U8(); err != nil {
			return e, err
		}
		if e.XPReward, err = r.CompressedInt3(); err != nil {
			return e, err
		}
		e.PlasmaReward, err = r.I16()
		return e, err
	},
	TypeXpGained2: func(r *wire.Reader, _ float32) (any, error) {
		var e XPGained2
		var err error
		if e.PlayerXP, err = r.CompressedInt3(); err != nil {
			return e, err
		}
		mult, err := r.CompressedFloat2(8.0)
		if err != nil {
			return e, err
		}
		e.ChainMultiplier = mult + 1.0 // spec §4.C, §9 open question
		e.XPGained, err = r.CompressedInt3()
		return e, err
	},
	TypeEatCake: func(r *wire.Reader, _ float32) (any, error) {
		var e EatCake
		var err error
		if e.PlasmaAmount, err = r.CompressedInt3(); err != nil {
			return e, err
		}
		e.XPAmount, err = r.CompressedInt3()
		return e, err
	},
	TypeCoinCount: func(r *wire.Reader, _ float32) (any, error) {
		var e CoinCount
		var err error
		if e.PlayerID, err = r.U8(); err != nil {
			return e, err
		}
		e.CoinCount, err = r.I16()
		return e, err
	},
	TypeSpeed: func(r *wire.Reader, _ float32) (any, error) {
		v, err := r.I16()
		return Speed{TimeMsOffset: v}, err
	},
	TypeInvis: func(r *wire.Reader, _ float32) (any, error) {
		v, err := r.I16()
		return Invis{TimeMsOffset: v}, err
	},
	TypeTrick: func(r *wire.Reader, _ float32) (any, error) {
		var e Trick
		var err error
		if e.TrickID, err = r.U8(); err != nil {
			return e, err
		}
		if e.TrickScore, err = r.I16(); err != nil {
			return e, err
		}
		e.TrickXP, err = r.CompressedInt3()
		return e, err
	},
	TypeAccolade: func(r *wire.Reader, _ float32) (any, error) {
		c, err := r.U8()
		return Accolade{Count: c}, err
	},
	TypeKilledBy: func(r *wire.Reader, _ float32) (any, error) {
		id, err := r.U8()
		return KilledBy{KillerID: id}, err
	},
	TypeRadiationCloud: func(r *wire.Reader, mapSize float32) (any, error) {
		var e RadiationCloud
		var err error
		if e.PlayerID, err = r.U8(); err != nil {
			return e, err
		}
		if e.X, err = r.CompressedFloat3(mapSize); err != nil {
			return e, err
		}
		if e.Y, err = r.CompressedFloat3(mapSize); err != nil {
			return e, err
		}
		e.TimeRemaining, err = r.CompressedFloat2(16.0)
		return e, err
	},
	TypeCharge: func(r *wire.Reader, _ float32) (any, error) {
		var e Charge
		var err error
		if e.PlayerID, err = r.U8(); err != nil {
			return e, err
		}
		ct, err := r.U8()
		e.ChargeType = ChargeType(ct)
		return e, err
	},
	TypeLpCount: func(r *wire.Reader, _ float32) (any, error) {
		c, err := r.U8()
		return LPCount{Count: c}, err
	},
	TypeRlglState: func(r *wire.Reader, _ float32) (any, error) {
		s, err := r.U8()
		return RLGLState{State: s}, err
	},
	TypeBrBounds: func(r *wire.Reader, mapSize float32) (any, error) {
		var e BRBounds
		fields := []*float32{&e.Left, &e.Top, &e.Right, &e.Bottom, &e.LimLeft, &e.LimTop, &e.LimRight, &e.LimBottom}
		for _, f := range fields {
			v, err := r.CompressedFloat3(mapSize)
			if err != nil {
				return e, err
			}
			*f = v
		}
		return e, nil
	},
}

// Decode walks body, a GAME_UPDATE packet's payload, decoding events
// until it is exhausted. mapSize is the most recently mirrored
// GAME_DATA map_size, which several events' compressed-float fields
// depend on (spec §4.C).
//
// If an unrecognized event type is encountered, Decode returns the
// events successfully decoded so far along with an error wrapping
// ErrUnknownType; the caller must stop processing this datagram (spec
// §4.C, §7) but deliver the events already returned.
func Decode(body []byte, mapSize float32) ([]Event, error) {
	r := wire.NewReader(body)
	var events []Event

	for !r.Exhausted() {
		typeByte, err := r.U8()
		if err != nil {
			return events, err
		}
		t := Type(typeByte)

		decode, known := decoders[t]
		if !t.Known() {
			return events, fmt.Errorf("%w: %d (%s)", ErrUnknownType, typeByte, t)
		}
		if !known {
			events = append(events, Event{Type: t})
			continue
		}

		payload, err := decode(r, mapSize)
		if err != nil {
			return events, fmt.Errorf("event: decoding %s: %w", t, err)
		}
		events = append(events, Event{Type: t, Payload: payload})
	}

	return events, nil
}
