package nebulous

import (
	"github.com/yntha/nebulous-go/handshake"
	"github.com/yntha/nebulous-go/protocol"
	"github.com/yntha/nebulous-go/protocol/event"
)

// Callbacks is a struct-of-function-pointers dispatch table (spec §9:
// "Dynamic dispatch on callbacks maps to ... a struct-of-function-
// pointers, whichever is idiomatic"). Every field is optional; a nil
// field is a no-op, so a host only implements the hooks it cares
// about. Per spec §4.E's callback contract, each hook receives a
// mutable pointer to the packet/event and returns it (letting the
// host post-process before it's handed elsewhere) along with an
// error; a non-nil error propagates out of the receive or send loop
// and terminates the session (spec §7).
type Callbacks struct {
	OnConnectResult   func(*handshake.Result) (*handshake.Result, error)
	OnGameData        func(*protocol.GameData) (*protocol.GameData, error)
	OnGameChatMessage func(*protocol.GameChatMessage) (*protocol.GameChatMessage, error)
	OnClanChatMessage func(*protocol.ClanChatMessage) (*protocol.ClanChatMessage, error)

	// OnGameEvent is invoked for every decoded event, regardless of
	// type (spec §4.E: "delivered both via a general on_game_event
	// callback and a type-specific callback").
	OnGameEvent func(*event.Event) (*event.Event, error)

	// OnEventType holds per-type callbacks, keyed by event.Type. A
	// missing or nil entry skips only the type-specific call: the event
	// is still delivered to OnGameEvent.
	OnEventType map[event.Type]func(*event.Event) (*event.Event, error)

	// OnUnknownPacketType is invoked (not fatal) whenever the receive
	// loop drops a packet with an unrecognized type byte (spec §4.B,
	// §7).
	OnUnknownPacketType func(protocol.PacketType)

	// OnStateChange is invoked on every lifecycle transition (spec
	// §3).
	OnStateChange func(old, new State)

	// OnDisconnect is invoked once, when the session finishes
	// shutting down, with the error that triggered shutdown (nil for
	// a clean, host-requested Disconnect).
	OnDisconnect func(error)
}
