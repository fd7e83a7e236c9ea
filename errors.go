package nebulous

import "errors"

// Sentinel errors for the invariant violations and lifecycle failures
// spec §7 names explicitly. Transport timeouts and decode errors are
// wrapped ad hoc with fmt.Errorf at their call sites (SPEC_FULL
// §10.2); these are the cases callers are expected to check for by
// identity.
var (
	// ErrControlBeforeIdentity names the no-CONTROL-before-identity
	// invariant (spec §3, §4.E, §7). No function in this package
	// returns it: the send loop's heartbeat enforces the invariant by
	// omitting CONTROL until the local player index has been
	// discovered from GAME_DATA.
	ErrControlBeforeIdentity = errors.New("nebulous: CONTROL emitted before local player index is known")

	// ErrNotConnected is returned by operations that require an
	// established session (Connected state) when the client is not in
	// that state.
	ErrNotConnected = errors.New("nebulous: client is not connected")

	// ErrAlreadyConnecting is returned by Connect when called on a
	// client that is already connecting or connected.
	ErrAlreadyConnecting = errors.New("nebulous: connect already in progress or established")

	// ErrShutdown names a session that has begun shutting down. No
	// function in this package returns it or passes it to a callback;
	// operations that need a Connected session return ErrNotConnected.
	ErrShutdown = errors.New("nebulous: session is shutting down")
)
