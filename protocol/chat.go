package protocol

import "github.com/yntha/nebulous-go/wire"

// GameChatMessage is GAME_CHAT_MESSAGE in both directions (spec §4.B).
// The wire layout differs slightly between the two directions (a
// trailing client_id + pad booleans on send only), so Encode and
// DecodeGameChatMessage are asymmetric on purpose.
type GameChatMessage struct {
	ChatMessage

	AccountID  int32 // write: always -1
	ShowBubble bool
	Font       uint8
}

// Encode writes a client-originated GAME_CHAT_MESSAGE.
func (m *GameChatMessage) Encode(clientID int32) ([]byte, error) {
	w := wire.NewWriter(64)
	w.U8(uint8(PacketTypeGameChatMessage))
	w.I32(m.SenderPlayerID)
	if err := w.MUTF8(m.SenderAlias); err != nil {
		return nil, err
	}
	if err := w.MUTF8(m.Body); err != nil {
		return nil, err
	}
	w.I32(-1) // account_id, write: -1
	w.Bool(false) // unused bool
	w.I64(0)      // unused message id
	if err := w.VarBytes1(m.AliasColors); err != nil {
		return nil, err
	}
	w.Bool(m.ShowBubble)
	w.U8(m.Font)
	w.I32(clientID)
	w.Bool(false) // pad
	w.Bool(false) // pad
	return w.Bytes(), nil
}

// DecodeGameChatMessage parses a server-originated GAME_CHAT_MESSAGE
// payload (type byte already consumed).
func DecodeGameChatMessage(body []byte) (GameChatMessage, error) {
	var m GameChatMessage
	r := wire.NewReader(body)
	var err error
	if m.SenderPlayerID, err = r.I32(); err != nil {
		return m, err
	}
	if m.SenderAlias, err = r.MUTF8(); err != nil {
		return m, err
	}
	if m.Body, err = r.MUTF8(); err != nil {
		return m, err
	}
	if m.AccountID, err = r.I32(); err != nil {
		return m, err
	}
	if _, err = r.Bool(); err != nil { // unused
		return m, err
	}
	if _, err = r.I64(); err != nil { // unused message id
		return m, err
	}
	if m.AliasColors, err = r.VarBytes1(); err != nil {
		return m, err
	}
	if m.ShowBubble, err = r.Bool(); err != nil {
		return m, err
	}
	if m.Font, err = r.U8(); err != nil {
		return m, err
	}
	return m, nil
}

// ClanChatMessage is CLAN_CHAT_MESSAGE in both directions (spec §4.B).
type ClanChatMessage struct {
	ChatMessage

	ClanRole  uint8 // write: zero
	AccountID int32 // write: -1
}

// Encode writes a client-originated CLAN_CHAT_MESSAGE. Alias is blank
// and ClanRole is zero on send, per spec.
func (m *ClanChatMessage) Encode(clientID int32) ([]byte, error) {
	w := wire.NewWriter(48)
	w.U8(uint8(PacketTypeClanChatMessage))
	w.I32(m.SenderPlayerID)
	if err := w.MUTF8(""); err != nil { // alias blank on send
		return nil, err
	}
	if err := w.MUTF8(m.Body); err != nil {
		return nil, err
	}
	w.U8(0) // clan_role, zero on send
	w.I32(-1) // account_id, -1 on send
	w.I64(0)  // unused
	w.I32(clientID)
	w.Bool(false) // pad
	return w.Bytes(), nil
}

// DecodeClanChatMessage parses a server-originated CLAN_CHAT_MESSAGE
// payload (type byte already consumed).
func DecodeClanChatMessage(body []byte) (ClanChatMessage, error) {
	var m ClanChatMessage
	r := wire.NewReader(body)
	var err error
	if m.SenderPlayerID, err = r.I32(); err != nil {
		return m, err
	}
	if m.SenderAlias, err = r.MUTF8(); err != nil {
		return m, err
	}
	if m.Body, err = r.MUTF8(); err != nil {
		return m, err
	}
	if m.ClanRole, err = r.U8(); err != nil {
		return m, err
	}
	if m.AccountID, err = r.I32(); err != nil {
		return m, err
	}
	if _, err = r.I64(); err != nil { // unused
		return m, err
	}
	if m.AliasColors, err = r.VarBytes1(); err != nil {
		return m, err
	}
	return m, nil
}
