// Package protocol implements the typed representation of every wire
// packet this core handles, serializing and deserializing with the
// primitive codec in wire (spec §4.B).
package protocol

import (
	"fmt"

	"github.com/yntha/nebulous-go/wire"
)

// ConnectResult enumerates CONNECT_RESULT_2.result (spec §4.B).
type ConnectResult uint8

const (
	ConnectResultSuccess               ConnectResult = 0
	ConnectResultGameNotFound          ConnectResult = 1
	ConnectResultUnknown               ConnectResult = 2
	ConnectResultAccountAlreadySignedIn ConnectResult = 3
)

func (r ConnectResult) String() string {
	switch r {
	case ConnectResultSuccess:
		return "Success"
	case ConnectResultGameNotFound:
		return "GameNotFound"
	case ConnectResultAccountAlreadySignedIn:
		return "AccountAlreadySignedIn"
	default:
		return "Unknown"
	}
}

// ControlFlags is the CONTROL packet's action bitfield (spec §4.B).
type ControlFlags uint8

const (
	ControlFlagNone     ControlFlags = 0
	ControlFlagSplit    ControlFlags = 0x01
	ControlFlagShoot    ControlFlags = 0x02
	ControlFlagDash     ControlFlags = 0x04
	ControlFlagGhost    ControlFlags = 0x08
	ControlFlagDispose  ControlFlags = 0x10
	ControlFlagChargeup ControlFlags = 0x20
)

// ConnectRequest3 is the client's handshake packet (spec §4.B). Its
// wire layout is produced by Encode and then byte-shuffled by the
// handshake package (spec §4.D) -- Encode here only produces the
// unshuffled payload.
type ConnectRequest3 struct {
	RNGSeed          int64
	GameVersion      uint16
	ClientID         int32
	GameMode         uint8
	GameDifficulty   uint8
	GameID           int32
	OnlineMode       uint8
	Mayhem           uint8
	Skin             uint16
	EjectSkin        uint8
	Alias            string // <=16 bytes encoded
	CustomSkin       int32
	AliasColors      []byte
	Pet1ID           uint8
	BlobColor        uint32
	Pet1Name         string
	Hat              uint8
	CustomPet1       int32
	Halo             uint8
	Pet2ID           uint8
	Pet2Name         string
	CustomPet2       int32
	CustomParticle   int32
	Particle         uint8
	AliasFont        uint8
	LevelColors      []byte
	AliasAnimation   uint8
	Skin2            uint16
	SkinInterpRate   float32 // compressed, domain [0, 60]
	CustomSkin2      int32
	TimestampMillis  int64
	SecureBytes      []byte
}

// Encode writes the unshuffled CONNECT_REQUEST_3 payload, type byte
// included. The handshake package is responsible for applying the
// byte shuffle to bytes[13:] afterwards.
func (c *ConnectRequest3) Encode() ([]byte, error) {
	w := wire.NewWriter(256)
	w.U8(uint8(PacketTypeConnectRequest3))
	w.I32(0) // public_id, always zero on this packet
	w.I64(c.RNGSeed)
	w.U16(c.GameVersion)
	w.I32(c.ClientID)
	w.U8(c.GameMode)
	w.U8(c.GameDifficulty)
	w.I32(c.GameID)
	if err := w.MUTF8(""); err != nil { // empty ticket
		return nil, err
	}
	w.U8(c.OnlineMode)
	w.U8(c.Mayhem)
	w.U16(c.Skin)
	w.U8(c.EjectSkin)
	if len(EncodeAlias(c.Alias)) > 16 {
		return nil, fmt.Errorf("%w: alias %q exceeds 16 bytes", wire.ErrCorruption, c.Alias)
	}
	if err := w.MUTF8(c.Alias); err != nil {
		return nil, err
	}
	w.I32(c.CustomSkin)
	if err := w.VarBytes1(c.AliasColors); err != nil {
		return nil, err
	}
	w.U8(c.Pet1ID)
	w.U32(c.BlobColor)
	if err := w.MUTF8(c.Pet1Name); err != nil {
		return nil, err
	}
	w.U8(c.Hat)
	w.I32(c.CustomPet1)
	w.U8(c.Halo)
	w.U8(c.Pet2ID)
	if err := w.MUTF8(c.Pet2Name); err != nil {
		return nil, err
	}
	w.I32(c.CustomPet2)
	w.I32(c.CustomParticle)
	w.U8(c.Particle)
	w.U8(c.AliasFont)
	if err := w.VarBytes1(c.LevelColors); err != nil {
		return nil, err
	}
	w.U8(c.AliasAnimation)
	w.U16(c.Skin2)
	w.CompressedFloat2(c.SkinInterpRate, 60.0)
	w.I32(c.CustomSkin2)
	w.I64(c.TimestampMillis)
	if err := w.VarBytes2(c.SecureBytes); err != nil {
		return nil, err
	}

	return w.Bytes(), nil
}

// EncodeAlias returns the MUTF8 encoding of alias, used to validate
// the 16-byte alias length limit before the full packet is built.
func EncodeAlias(alias string) []byte {
	return wire.EncodeMUTF8(alias)
}

// ConnectResult2 is the server's handshake response (spec §4.B).
type ConnectResult2 struct {
	ClientID        int32
	Result          ConnectResult
	PublicID        int32
	PrivateID       int32
	GameID          int32
	BanLength       int32
	AdStuff         float32
	SplitMultiplier uint8
}

// DecodeConnectResult2 parses a CONNECT_RESULT_2 payload (type byte
// already consumed by the caller).
func DecodeConnectResult2(body []byte) (ConnectResult2, error) {
	var c ConnectResult2
	r := wire.NewReader(body)
	var err error
	if c.ClientID, err = r.I32(); err != nil {
		return c, err
	}
	result, err := r.U8()
	if err != nil {
		return c, err
	}
	c.Result = ConnectResult(result)
	if c.PublicID, err = r.I32(); err != nil {
		return c, err
	}
	if c.PrivateID, err = r.I32(); err != nil {
		return c, err
	}
	if c.GameID, err = r.I32(); err != nil {
		return c, err
	}
	if c.BanLength, err = r.I32(); err != nil {
		return c, err
	}
	if c.AdStuff, err = r.F32(); err != nil {
		return c, err
	}
	if c.SplitMultiplier, err = r.U8(); err != nil {
		return c, err
	}
	return c, nil
}

// SplitMultiplierValue converts the wire's 0x08/0x10/0x20/0x40 byte
// into its logical 8/16/32/64 cap (spec §4.B).
func SplitMultiplierValue(wireByte uint8) int {
	switch wireByte {
	case 0x08:
		return 8
	case 0x10:
		return 16
	case 0x20:
		return 32
	case 0x40:
		return 64
	default:
		return 8
	}
}

// KeepAlive is the client's heartbeat packet (spec §4.B). Its
// ServerIP field is the one place in the protocol transmitted in
// little-endian byte order (spec §4.B, §6).
type KeepAlive struct {
	PublicID  int32
	PrivateID int32
	ServerIP  [4]byte // dotted-quad order, e.g. {10,20,30,40}
	ClientID  int32
}

// Encode writes the KEEP_ALIVE payload, type byte included.
func (k *KeepAlive) Encode() []byte {
	w := wire.NewWriter(17)
	w.U8(uint8(PacketTypeKeepAlive))
	w.I32(k.PublicID)
	w.I32(k.PrivateID)
	// server_ip is written little-endian: reverse the dotted-quad bytes.
	w.RawBytes([]byte{k.ServerIP[3], k.ServerIP[2], k.ServerIP[1], k.ServerIP[0]})
	w.I32(k.ClientID)
	return w.Bytes()
}

// Disconnect is the client's session-teardown packet (spec §4.B).
type Disconnect struct {
	PublicID  int32
	PrivateID int32
	ClientID  int32
}

// Encode writes the DISCONNECT payload, type byte included.
func (d *Disconnect) Encode() []byte {
	w := wire.NewWriter(13)
	w.U8(uint8(PacketTypeDisconnect))
	w.I32(d.PublicID)
	w.I32(d.PrivateID)
	w.I32(d.ClientID)
	return w.Bytes()
}

// Control is the client's per-tick input packet (spec §4.B). It MUST
// NOT be emitted before the local player index is known (spec §3,
// §4.E) -- that invariant is enforced by the session runtime, not
// here.
type Control struct {
	PublicID         int32
	Angle            float32 // compressed, domain [0, 2*pi)
	Speed            float32 // compressed, domain [0, 1]
	Tick             uint8
	Flags            ControlFlags
	LocalPlayerIndex uint8
	ClientID         int32
	AspectRatio      float32 // compressed, domain [1, 3]
}

const twoPi = 2 * 3.14159265358979323846

// Encode writes the CONTROL payload, type byte included.
func (c *Control) Encode() []byte {
	w := wire.NewWriter(16)
	w.U8(uint8(PacketTypeControl))
	w.I32(c.PublicID)
	w.CompressedFloat2(c.Angle, twoPi)
	w.CompressedFloat1Clamped(c.Speed, 0, 1)
	w.U8(c.Tick)
	w.U8(uint8(c.Flags))
	w.U8(c.LocalPlayerIndex)
	w.I32(c.ClientID)
	w.CompressedFloat1Clamped(c.AspectRatio, 1, 3)
	return w.Bytes()
}
