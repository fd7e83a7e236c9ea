package nebulous

// State is the session's lifecycle state (spec §3). Transitions are
// monotonic within one Client: Disconnected -> Connecting ->
// Connected -> Disconnecting -> Disconnected. A new Client starts
// fresh; the core never reconnects automatically (spec §1 Non-goals).
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateDisconnecting
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	case StateDisconnecting:
		return "Disconnecting"
	default:
		return "Unknown"
	}
}
