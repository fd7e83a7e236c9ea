package protocol

import (
	"bytes"
	"testing"

	"github.com/yntha/nebulous-go/wire"
)

func TestKeepAliveKnownVector(t *testing.T) {
	k := &KeepAlive{
		PublicID:  0x01020304,
		PrivateID: 0x05060708,
		ServerIP:  [4]byte{10, 20, 30, 40},
		ClientID:  0x090A0B0C,
	}
	got := k.Encode()
	want := []byte{
		0x03,
		0x01, 0x02, 0x03, 0x04,
		0x05, 0x06, 0x07, 0x08,
		0x28, 0x1E, 0x14, 0x0A,
		0x09, 0x0A, 0x0B, 0x0C,
	}
	if !bytes.Equal(got, want) {
		t.Errorf("KeepAlive.Encode() = % x, want % x", got, want)
	}
}

func TestDisconnectEncode(t *testing.T) {
	d := &Disconnect{PublicID: 1, PrivateID: 2, ClientID: 3}
	got := d.Encode()
	want := []byte{byte(PacketTypeDisconnect), 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 3}
	if !bytes.Equal(got, want) {
		t.Errorf("Disconnect.Encode() = % x, want % x", got, want)
	}
}

func TestControlTickSequenceWraps(t *testing.T) {
	var tick uint8
	var frames [][]byte
	for i := 0; i < 257; i++ {
		c := &Control{PublicID: 1, Tick: tick, ClientID: 1, AspectRatio: 1.6}
		frames = append(frames, c.Encode())
		tick++
	}
	// tick byte is at offset: type(1)+public_id(4)+angle(2)+speed(1) = 8
	const tickOffset = 8
	for i := 0; i < 256; i++ {
		got := frames[i][tickOffset]
		if got != uint8(i) {
			t.Fatalf("frame %d tick byte = %d, want %d", i, got, i)
		}
	}
	if frames[256][tickOffset] != 0 {
		t.Errorf("tick did not wrap to 0 after 256, got %d", frames[256][tickOffset])
	}
}

func TestConnectRequest3EncodeDecode(t *testing.T) {
	req := &ConnectRequest3{
		RNGSeed:         42,
		GameVersion:     100,
		ClientID:        7,
		GameMode:        1,
		GameDifficulty:  2,
		GameID:          -1,
		OnlineMode:      1,
		Mayhem:          0,
		Skin:            5,
		EjectSkin:       3,
		Alias:           "bot",
		CustomSkin:      -1,
		AliasColors:     []byte{1, 2, 3},
		Pet1ID:          0,
		BlobColor:       0xFF00FF00,
		Pet1Name:        "",
		Hat:             0,
		CustomPet1:      -1,
		Halo:            0,
		Pet2ID:          0,
		Pet2Name:        "",
		CustomPet2:      -1,
		CustomParticle:  -1,
		Particle:        0,
		AliasFont:       0,
		LevelColors:     []byte{1, 2, 3, 4, 5},
		AliasAnimation:  0,
		Skin2:           0,
		SkinInterpRate:  30.0,
		CustomSkin2:     -1,
		TimestampMillis: 1234567890,
		SecureBytes:     []byte{0xAA, 0xBB, 0xCC},
	}
	payload, err := req.Encode()
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if payload[0] != byte(PacketTypeConnectRequest3) {
		t.Fatalf("type byte = %x", payload[0])
	}

	got, err := decodeConnectRequest3ForTest(payload)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got.RNGSeed != req.RNGSeed || got.ClientID != req.ClientID || got.Alias != req.Alias ||
		got.TimestampMillis != req.TimestampMillis || !bytes.Equal(got.SecureBytes, req.SecureBytes) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, req)
	}
}

func TestConnectRequest3RejectsOversizedAlias(t *testing.T) {
	req := &ConnectRequest3{Alias: "this alias is definitely longer than sixteen bytes"}
	if _, err := req.Encode(); err == nil {
		t.Fatal("expected encoder error for oversized alias")
	}
}

func TestConnectResult2Decode(t *testing.T) {
	w := wire.NewWriter(32)
	w.I32(7)
	w.U8(uint8(ConnectResultSuccess))
	w.I32(100)
	w.I32(200)
	w.I32(300)
	w.I32(0)
	w.F32(0)
	w.U8(0x10)

	got, err := DecodeConnectResult2(w.Bytes())
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if got.ClientID != 7 || got.Result != ConnectResultSuccess || got.PublicID != 100 ||
		got.PrivateID != 200 || got.GameID != 300 {
		t.Errorf("decoded = %+v", got)
	}
	if SplitMultiplierValue(got.SplitMultiplier) != 16 {
		t.Errorf("SplitMultiplierValue(%x) = %d, want 16", got.SplitMultiplier, SplitMultiplierValue(got.SplitMultiplier))
	}
}

func TestGameChatMessageEncodeDecode(t *testing.T) {
	m := &GameChatMessage{
		ChatMessage: ChatMessage{
			SenderPlayerID: 3,
			SenderAlias:    "alice",
			Body:           "hello",
			AliasColors:    []byte{1, 2},
		},
		ShowBubble: true,
		Font:       2,
	}
	payload, err := m.Encode(42)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	if payload[0] != byte(PacketTypeGameChatMessage) {
		t.Fatalf("type byte = %x", payload[0])
	}

	decoded, err := DecodeGameChatMessage(payload[1:])
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if decoded.SenderPlayerID != m.SenderPlayerID || decoded.Body != m.Body ||
		decoded.AccountID != -1 || decoded.ShowBubble != true || decoded.Font != 2 {
		t.Errorf("round trip mismatch: got %+v", decoded)
	}
}

func TestClanChatMessageEncodeBlankAliasAndRole(t *testing.T) {
	m := &ClanChatMessage{ChatMessage: ChatMessage{SenderPlayerID: 1, Body: "yo"}}
	payload, err := m.Encode(1)
	if err != nil {
		t.Fatalf("encode error: %v", err)
	}
	decoded, err := DecodeClanChatMessage(payload[1:])
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if decoded.SenderAlias != "" || decoded.ClanRole != 0 || decoded.AccountID != -1 {
		t.Errorf("send-time defaults not honored: %+v", decoded)
	}
}

func TestGameDataDecode(t *testing.T) {
	w := wire.NewWriter(256)
	w.I32(99)     // public_id
	w.F32(1000.0) // map_size
	w.U8(1)       // player_count
	w.U8(0)       // eject_count
	w.U16(5)      // dot_id_offset
	w.U16(2)      // dot_count
	w.U8(10)      // item_id_offset
	w.U8(1)       // item_count

	// 1 player, in the on-the-wire field order (spec §3) -- NOT the
	// same order as the Player struct's field declarations.
	w.U8(7)  // player_id
	w.U16(1) // skin_id
	w.U8(2)  // eject_skin_id
	w.I32(-1) // custom_skin_id
	w.I32(-1) // custom_pet_id
	w.U8(3)   // pet_id
	w.U16(9)  // pet_level
	if err := w.MUTF8("buddy"); err != nil { // pet_name
		t.Fatalf("encode error: %v", err)
	}
	w.U8(4) // hat_id
	w.U8(5) // halo_id
	w.U8(6) // pet_id2
	w.U16(12) // pet_level2
	if err := w.MUTF8("buddy2"); err != nil { // pet_name2
		t.Fatalf("encode error: %v", err)
	}
	w.I32(-1) // custom_pet_id2
	w.I32(-1) // custom_particle_id
	w.U8(8)   // particle_id
	if err := w.VarBytes1([]byte{1, 2, 3}); err != nil { // level_colors
		t.Fatalf("encode error: %v", err)
	}
	w.U8(1)  // name_animation_id
	w.U16(2) // skin_id2
	w.CompressedFloat2(30, 60) // skin_interpolation_rate
	w.I32(-1)                  // custom_skin_id2
	w.U32(0xFF00FF00)          // blob_color
	w.U8(1)                    // team_id
	if err := w.MUTF8("player-seven"); err != nil { // player_name
		t.Fatalf("encode error: %v", err)
	}
	w.U8(0) // font_id
	if err := w.VarBytes1([]byte{4, 5}); err != nil { // alias_colors
		t.Fatalf("encode error: %v", err)
	}
	w.I32(42)                             // account_id
	w.U16(17)                             // player_level
	if err := w.MUTF8("clan"); err != nil { // clan_name
		t.Fatalf("encode error: %v", err)
	}
	if err := w.VarBytes1([]byte{6}); err != nil { // clan_colors
		t.Fatalf("encode error: %v", err)
	}
	w.U8(2) // clan_role
	w.U8(1) // click_type

	// 2 dots
	w.CompressedFloat3(100, 1000)
	w.CompressedFloat3(200, 1000)
	w.CompressedFloat3(300, 1000)
	w.CompressedFloat3(400, 1000)
	// 1 item
	w.U8(3) // item type
	w.CompressedFloat3(500, 1000)
	w.CompressedFloat3(600, 1000)

	g, err := DecodeGameData(w.Bytes())
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if g.PublicID != 99 || g.MapSize != 1000.0 {
		t.Fatalf("header mismatch: %+v", g)
	}
	if len(g.Dots) != 2 || g.Dots[0].ID != 5 || g.Dots[1].ID != 6 {
		t.Errorf("dot ids wrong: %+v", g.Dots)
	}
	if len(g.Items) != 1 || g.Items[0].ID != 10 || g.Items[0].ItemType != 3 {
		t.Errorf("item decode wrong: %+v", g.Items)
	}

	if len(g.Players) != 1 {
		t.Fatalf("expected 1 player, got %d", len(g.Players))
	}
	p := g.Players[0]
	if p.Index != 7 || p.Skin != 1 || p.EjectSkin != 2 || p.CustomSkin != -1 {
		t.Errorf("player header mismatch: %+v", p)
	}
	if p.Pet1Custom != -1 || p.Pet1ID != 3 || p.Pet1Level != 9 || p.Pet1Name != "buddy" {
		t.Errorf("pet1 fields wrong: %+v", p)
	}
	if p.Hat != 4 || p.Halo != 5 {
		t.Errorf("hat/halo wrong: %+v", p)
	}
	if p.Pet2ID != 6 || p.Pet2Level != 12 || p.Pet2Name != "buddy2" || p.Pet2Custom != -1 {
		t.Errorf("pet2 fields wrong: %+v", p)
	}
	if p.CustomParticle != -1 || p.Particle != 8 {
		t.Errorf("particle fields wrong: %+v", p)
	}
	if p.NameAnimation != 1 || p.Skin2 != 2 || p.CustomSkin2 != -1 {
		t.Errorf("post-level-colors fields wrong: %+v", p)
	}
	if p.BlobColor != 0xFF00FF00 || p.TeamID != 1 || p.DisplayName != "player-seven" {
		t.Errorf("identity fields wrong: %+v", p)
	}
	if p.AccountID != 42 || p.Level != 17 {
		t.Errorf("account_id/player_level wrong: %+v (player_level must be 2 bytes, not 4)", p)
	}
	if p.ClanName != "clan" || p.ClanRole != 2 || p.ClickType != 1 {
		t.Errorf("clan/click fields wrong: %+v", p)
	}
}

// decodeConnectRequest3ForTest mirrors ConnectRequest3.Encode's field
// order. A real server decodes this after un-shuffling; the core
// itself never needs to parse its own handshake request, so this
// helper lives in the test file rather than the package's public API.
func decodeConnectRequest3ForTest(payload []byte) (*ConnectRequest3, error) {
	r := wire.NewReader(payload[1:]) // skip type byte
	c := &ConnectRequest3{}
	var err error
	if _, err = r.I32(); err != nil { // public_id, always 0
		return nil, err
	}
	if c.RNGSeed, err = r.I64(); err != nil {
		return nil, err
	}
	if c.GameVersion, err = r.U16(); err != nil {
		return nil, err
	}
	if c.ClientID, err = r.I32(); err != nil {
		return nil, err
	}
	if c.GameMode, err = r.U8(); err != nil {
		return nil, err
	}
	if c.GameDifficulty, err = r.U8(); err != nil {
		return nil, err
	}
	if c.GameID, err = r.I32(); err != nil {
		return nil, err
	}
	if _, err = r.MUTF8(); err != nil { // ticket
		return nil, err
	}
	if c.OnlineMode, err = r.U8(); err != nil {
		return nil, err
	}
	if c.Mayhem, err = r.U8(); err != nil {
		return nil, err
	}
	if c.Skin, err = r.U16(); err != nil {
		return nil, err
	}
	if c.EjectSkin, err = r.U8(); err != nil {
		return nil, err
	}
	if c.Alias, err = r.MUTF8(); err != nil {
		return nil, err
	}
	if c.CustomSkin, err = r.I32(); err != nil {
		return nil, err
	}
	if c.AliasColors, err = r.VarBytes1(); err != nil {
		return nil, err
	}
	if c.Pet1ID, err = r.U8(); err != nil {
		return nil, err
	}
	if c.BlobColor, err = r.U32(); err != nil {
		return nil, err
	}
	if c.Pet1Name, err = r.MUTF8(); err != nil {
		return nil, err
	}
	if c.Hat, err = r.U8(); err != nil {
		return nil, err
	}
	if c.CustomPet1, err = r.I32(); err != nil {
		return nil, err
	}
	if c.Halo, err = r.U8(); err != nil {
		return nil, err
	}
	if c.Pet2ID, err = r.U8(); err != nil {
		return nil, err
	}
	if c.Pet2Name, err = r.MUTF8(); err != nil {
		return nil, err
	}
	if c.CustomPet2, err = r.I32(); err != nil {
		return nil, err
	}
	if c.CustomParticle, err = r.I32(); err != nil {
		return nil, err
	}
	if c.Particle, err = r.U8(); err != nil {
		return nil, err
	}
	if c.AliasFont, err = r.U8(); err != nil {
		return nil, err
	}
	if c.LevelColors, err = r.VarBytes1(); err != nil {
		return nil, err
	}
	if c.AliasAnimation, err = r.U8(); err != nil {
		return nil, err
	}
	if c.Skin2, err = r.U16(); err != nil {
		return nil, err
	}
	if c.SkinInterpRate, err = r.CompressedFloat2(60.0); err != nil {
		return nil, err
	}
	if c.CustomSkin2, err = r.I32(); err != nil {
		return nil, err
	}
	if c.TimestampMillis, err = r.I64(); err != nil {
		return nil, err
	}
	if c.SecureBytes, err = r.VarBytes2(); err != nil {
		return nil, err
	}
	return c, nil
}
