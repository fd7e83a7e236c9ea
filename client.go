// Package nebulous implements the session runtime (spec §4.E): the
// UDP socket, the concurrent send/receive loops, the lifecycle state
// machine, the world mirror, and callback dispatch. It is the
// top-level component; it uses handshake (D), which uses protocol (B,
// C), which uses wire (A).
package nebulous

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yntha/nebulous-go/handshake"
	"github.com/yntha/nebulous-go/protocol"
)

const (
	// heartbeatInterval is the 500ms cadence for KEEP_ALIVE + CONTROL
	// emission from the send loop (spec §4.E).
	heartbeatInterval = 500 * time.Millisecond

	// ioTimeout bounds every blocking socket read/write (spec §5).
	ioTimeout = 5 * time.Second

	// maxDatagramSize is the receive loop's per-read buffer (spec
	// §4.E).
	maxDatagramSize = 8192
)

// Client is one session against the Nebulous UDP server. Construct
// with New, establish with Connect, tear down with Disconnect. A
// Client is single-use: the core never reconnects automatically (spec
// §1 Non-goals) -- start a new Client for a new session.
type Client struct {
	cfg       Config
	logger    *zap.Logger
	callbacks Callbacks
	sessionID uuid.UUID

	rng   *rand.Rand
	alias string // discovery alias, spec §4.E
	ports *handshake.PortSelector

	conn *net.UDPConn

	state int32 // State, accessed atomically

	// Session identifiers, written once during handshake (spec §3).
	clientID  int32
	publicID  int32
	privateID int32
	gameID    int32

	world *World

	outbound *outboundQueue
	gate     chan struct{}
	gateOnce int32 // guards closing gate exactly once

	done   chan struct{}
	cancel context.CancelFunc

	tick uint8 // owned exclusively by the send loop

	controlMu    sync.Mutex
	pendingInput pendingControlInput
}

// pendingControlInput is the latest host-supplied steering input,
// applied by the send loop's heartbeat-cadence CONTROL emission (spec
// §4.E). Spec's literal send-loop description hardcodes angle=0/
// speed=0/flags=NONE; this generalizes that to "whatever the host last
// set, defaulting to those same idle values," since a client library
// that could never steer would be useless. See DESIGN.md.
type pendingControlInput struct {
	angle float32
	speed float32
	flags protocol.ControlFlags
}

// New constructs a Client. The returned Client is Disconnected; call
// Connect to begin the handshake.
func New(cfg Config, logger *zap.Logger, callbacks Callbacks) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SplitMultiplier == 0 {
		cfg.SplitMultiplier = defaultSplitMultiplier
	}

	seed := time.Now().UnixNano()
	src := rand.New(rand.NewSource(seed))

	c := &Client{
		cfg:       cfg,
		logger:    logger,
		callbacks: callbacks,
		sessionID: uuid.New(),
		rng:       src,
		alias:     newDiscoveryAlias(src),
		ports:     handshake.NewPortSelector(),
		world:     &World{},
		outbound:  newOutboundQueue(),
		gate:      make(chan struct{}),
		done:      make(chan struct{}),
	}
	return c
}

// SessionID is a correlation id for logs and external tracing, not
// part of the wire protocol (SPEC_FULL §10.4).
func (c *Client) SessionID() uuid.UUID { return c.sessionID }

// State returns the current lifecycle state (spec §3).
func (c *Client) State() State { return State(atomic.LoadInt32(&c.state)) }

func (c *Client) setState(s State) {
	old := State(atomic.SwapInt32(&c.state, int32(s)))
	if old == s {
		return
	}
	c.logger.Info("state transition", zap.Stringer("from", old), zap.Stringer("to", s))
	if c.callbacks.OnStateChange != nil {
		c.callbacks.OnStateChange(old, s)
	}
}

// World returns the client's world mirror (spec §3).
func (c *Client) World() *World { return c.world }

// Connect resolves cfg.ServerAddr, alternates the destination port
// per handshake.PortSelector, performs the CONNECT_REQUEST_3 /
// CONNECT_RESULT_2 exchange, and -- on success -- starts the send and
// receive loops (spec §4.D, §4.E).
func (c *Client) Connect(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&c.state, int32(StateDisconnected), int32(StateConnecting)) {
		return ErrAlreadyConnecting
	}
	c.logger.Info("connecting", zap.String("session_id", c.sessionID.String()), zap.String("server", c.cfg.ServerAddr))

	host, explicitPort, err := splitHostPort(c.cfg.ServerAddr)
	if err != nil {
		return fmt.Errorf("nebulous: resolving server address: %w", err)
	}

	port := explicitPort
	if port == 0 {
		port = c.ports.Next()
	}

	serverAddr, err := net.ResolveUDPAddr("udp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return fmt.Errorf("nebulous: resolving %s:%d: %w", host, port, err)
	}

	conn, err := net.DialUDP("udp", nil, serverAddr)
	if err != nil {
		return fmt.Errorf("nebulous: dialing server: %w", err)
	}
	c.conn = conn

	clientID := handshake.NewClientID(c.rng)
	req := c.buildConnectRequest(clientID)

	result, err := handshake.Perform(ctx, conn, req, c.logger)
	if err != nil {
		conn.Close()
		atomic.StoreInt32(&c.state, int32(StateDisconnected))
		return fmt.Errorf("nebulous: handshake failed: %w", err)
	}

	c.clientID = result.ClientID
	c.publicID = result.PublicID
	c.privateID = result.PrivateID
	c.gameID = result.GameID
	c.cfg.SplitMultiplier = result.SplitMultiplier

	if c.callbacks.OnConnectResult != nil {
		if _, err := c.callbacks.OnConnectResult(&result); err != nil {
			conn.Close()
			atomic.StoreInt32(&c.state, int32(StateDisconnected))
			return fmt.Errorf("nebulous: OnConnectResult: %w", err)
		}
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.setState(StateConnected)

	go c.sendLoop(loopCtx)
	go c.receiveLoop(loopCtx)

	return nil
}

func (c *Client) buildConnectRequest(clientID int32) *protocol.ConnectRequest3 {
	cfg := c.cfg
	return &protocol.ConnectRequest3{
		RNGSeed:         handshake.NewRNGSeed(c.rng),
		GameVersion:     cfg.GameVersion,
		ClientID:        clientID,
		GameMode:        cfg.GameMode,
		GameDifficulty:  cfg.GameDifficulty,
		GameID:          cfg.GameID,
		OnlineMode:      cfg.OnlineMode,
		Mayhem:          cfg.Mayhem,
		Skin:            cfg.Skin,
		EjectSkin:       cfg.EjectSkin,
		Alias:           c.alias,
		CustomSkin:      cfg.CustomSkin,
		AliasColors:     cfg.AliasColors,
		Pet1ID:          cfg.Pet1ID,
		BlobColor:       cfg.BlobColor,
		Pet1Name:        cfg.Pet1Name,
		Hat:             cfg.Hat,
		CustomPet1:      cfg.CustomPet1,
		Halo:            cfg.Halo,
		Pet2ID:          cfg.Pet2ID,
		Pet2Name:        cfg.Pet2Name,
		CustomPet2:      cfg.CustomPet2,
		CustomParticle:  cfg.CustomParticle,
		Particle:        cfg.Particle,
		AliasFont:       cfg.AliasFont,
		LevelColors:     cfg.LevelColors,
		AliasAnimation:  cfg.AliasAnimation,
		Skin2:           cfg.Skin2,
		SkinInterpRate:  cfg.SkinInterpolationRate,
		CustomSkin2:     cfg.CustomSkin2,
		TimestampMillis: time.Now().UnixMilli(),
		SecureBytes:     cfg.SecureBytes,
	}
}

// SetControlInput updates the steering values the send loop's next
// heartbeat-cadence CONTROL packet will carry (see pendingControlInput).
func (c *Client) SetControlInput(angle, speed float32, flags protocol.ControlFlags) {
	c.controlMu.Lock()
	defer c.controlMu.Unlock()
	c.pendingInput = pendingControlInput{angle: angle, speed: speed, flags: flags}
}

// SendGameChat enqueues a GAME_CHAT_MESSAGE (spec §4.B). Returns
// ErrNotConnected if the session isn't established.
func (c *Client) SendGameChat(body string) error {
	if c.State() != StateConnected {
		return ErrNotConnected
	}
	m := &protocol.GameChatMessage{ChatMessage: protocol.ChatMessage{
		SenderPlayerID: c.publicID,
		Body:           body,
	}}
	payload, err := m.Encode(c.clientID)
	if err != nil {
		return fmt.Errorf("nebulous: encoding game chat: %w", err)
	}
	c.outbound.enqueue(payload)
	return nil
}

// SendClanChat enqueues a CLAN_CHAT_MESSAGE (spec §4.B).
func (c *Client) SendClanChat(body string) error {
	if c.State() != StateConnected {
		return ErrNotConnected
	}
	m := &protocol.ClanChatMessage{ChatMessage: protocol.ChatMessage{
		SenderPlayerID: c.publicID,
		Body:           body,
	}}
	payload, err := m.Encode(c.clientID)
	if err != nil {
		return fmt.Errorf("nebulous: encoding clan chat: %w", err)
	}
	c.outbound.enqueue(payload)
	return nil
}

// Disconnect cancels both loops, sends a best-effort DISCONNECT, and
// closes the socket (spec §4.E). Calling Disconnect twice is a no-op.
func (c *Client) Disconnect() error {
	if c.teardown() && c.callbacks.OnDisconnect != nil {
		c.callbacks.OnDisconnect(nil)
	}
	return nil
}

// teardown performs Disconnect's shutdown steps without invoking
// OnDisconnect. It reports whether this call did the shutdown (false
// if the client was already Disconnecting or Disconnected).
func (c *Client) teardown() bool {
	old := State(atomic.SwapInt32(&c.state, int32(StateDisconnecting)))
	if old == StateDisconnecting || old == StateDisconnected {
		atomic.StoreInt32(&c.state, int32(old))
		return false
	}

	c.logger.Info("disconnecting", zap.String("session_id", c.sessionID.String()))

	if c.cancel != nil {
		c.cancel()
	}

	if c.conn != nil {
		d := &protocol.Disconnect{PublicID: c.publicID, PrivateID: c.privateID, ClientID: c.clientID}
		c.conn.SetWriteDeadline(time.Now().Add(ioTimeout))
		_, _ = c.conn.Write(d.Encode()) // best-effort, spec §4.E
		c.conn.Close()
	}

	c.setState(StateDisconnected)
	return true
}

func (c *Client) fail(err error) {
	c.logger.Error("session terminating", zap.Error(err))
	c.teardown()
	if c.callbacks.OnDisconnect != nil {
		c.callbacks.OnDisconnect(err)
	}
}

// openGate sets the game-data-ready gate exactly once (spec §4.E,
// §8: "Gate monotonicity"). It reports whether this call was the one
// that opened it.
func (c *Client) openGate() bool {
	if atomic.CompareAndSwapInt32(&c.gateOnce, 0, 1) {
		close(c.gate)
		return true
	}
	return false
}

func splitHostPort(addr string) (host string, port int, err error) {
	h, p, splitErr := net.SplitHostPort(addr)
	if splitErr != nil {
		return addr, 0, nil // no port present; caller supplies one
	}
	var parsed int
	if _, err := fmt.Sscanf(p, "%d", &parsed); err != nil {
		return "", 0, fmt.Errorf("invalid port %q: %w", p, err)
	}
	return h, parsed, nil
}
