// Package handshake builds the CONNECT_REQUEST_3 payload -- including
// its seeded byte shuffle -- and drives the single send/await exchange
// that establishes a session's public_id/private_id (spec §4.D).
package handshake

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/yntha/nebulous-go/protocol"
	"github.com/yntha/nebulous-go/wire"
)

const connectRequest3Type = byte(protocol.PacketTypeConnectRequest3)

// resultTimeout is the fixed window the client waits for
// CONNECT_RESULT_2 before giving up (spec §4.D).
const resultTimeout = 5 * time.Second

// ErrRejected is returned (wrapped) when the server answers with a
// CONNECT_RESULT_2 whose result is anything but Success.
var ErrRejected = errors.New("handshake: connect rejected")

// ErrTimeout is returned when no CONNECT_RESULT_2 arrives within
// resultTimeout.
var ErrTimeout = errors.New("handshake: timed out waiting for connect result")

// Result carries everything the session runtime needs out of a
// successful handshake (spec §3, §4.D).
type Result struct {
	ClientID        int32
	PublicID        int32
	PrivateID       int32
	GameID          int32
	SplitMultiplier uint8
	BanLength       int32
	AdStuff         float32 // carried through uninterpreted, spec §9 open question
}

// PortSelector alternates the UDP destination port between 27900 and
// 27901 across successive connect attempts from one client instance
// (spec §4.D). The zero value is not ready; use NewPortSelector.
type PortSelector struct {
	seed int
}

// NewPortSelector starts from a randomly chosen parity, as spec §4.D
// requires ("initial seed is 0 or 1, chosen randomly").
func NewPortSelector() *PortSelector {
	return &PortSelector{seed: rand.Intn(2)}
}

// Next returns the port for the next connect attempt and advances the
// parity for the one after that.
func (p *PortSelector) Next() int {
	port := 27900 + p.seed
	p.seed = (p.seed + 1) % 2
	return port
}

// NewClientID draws a nonzero i32 client id from src, redrawing on a
// zero result (spec §4.D: "client_id MUST be drawn, and redrawn if it
// happens to equal zero").
func NewClientID(src *rand.Rand) int32 {
	for {
		id := int32(src.Uint32())
		if id != 0 {
			return id
		}
	}
}

// NewRNGSeed draws a fresh handshake seed for one connect attempt
// (spec §4.D: "MUST be freshly drawn ... for each connect attempt").
func NewRNGSeed(src *rand.Rand) int64 {
	return src.Int63()
}

// Build serializes req and applies the seeded byte shuffle, returning
// the exact bytes to put on the wire. req.RNGSeed is the seed the
// shuffle (and the server's inverse) uses.
func Build(req *protocol.ConnectRequest3) ([]byte, error) {
	payload, err := req.Encode()
	if err != nil {
		return nil, fmt.Errorf("handshake: encoding connect request: %w", err)
	}
	if err := shuffle(payload, req.RNGSeed); err != nil {
		return nil, fmt.Errorf("handshake: shuffling connect request: %w", err)
	}
	return payload, nil
}

// Perform sends the shuffled CONNECT_REQUEST_3 over conn and blocks
// for exactly one CONNECT_RESULT_2 (spec §4.D). conn is expected to be
// already "connected" (net.DialUDP) to the chosen server/port. On any
// outcome but Success, Perform returns a non-nil error and the caller
// MUST treat the session as never having started -- no other packet
// may be sent first (spec §4.D, §7).
func Perform(ctx context.Context, conn *net.UDPConn, req *protocol.ConnectRequest3, logger *zap.Logger) (Result, error) {
	payload, err := Build(req)
	if err != nil {
		return Result{}, err
	}

	deadline := time.Now().Add(resultTimeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}

	if err := conn.SetWriteDeadline(deadline); err != nil {
		return Result{}, fmt.Errorf("handshake: setting write deadline: %w", err)
	}
	if _, err := conn.Write(payload); err != nil {
		return Result{}, fmt.Errorf("handshake: sending connect request: %w", err)
	}

	logger.Debug("connect request sent", zap.Int64("rng_seed", req.RNGSeed), zap.Int32("client_id", req.ClientID))

	if err := conn.SetReadDeadline(deadline); err != nil {
		return Result{}, fmt.Errorf("handshake: setting read deadline: %w", err)
	}

	buf := make([]byte, 8192)
	n, err := conn.Read(buf)
	if err != nil {
		if ne, ok := err.(net.Error); ok && ne.Timeout() {
			logger.Warn("handshake timed out waiting for connect result")
			return Result{}, ErrTimeout
		}
		return Result{}, fmt.Errorf("handshake: reading connect result: %w", err)
	}
	if n < 1 {
		return Result{}, fmt.Errorf("%w: empty datagram", wire.ErrCorruption)
	}

	if protocol.PacketType(buf[0]) != protocol.PacketTypeConnectResult2 {
		return Result{}, fmt.Errorf("handshake: expected CONNECT_RESULT_2, got packet type %s", protocol.PacketType(buf[0]))
	}

	resp, err := protocol.DecodeConnectResult2(buf[1:n])
	if err != nil {
		return Result{}, fmt.Errorf("handshake: decoding connect result: %w", err)
	}

	if resp.Result != protocol.ConnectResultSuccess {
		logger.Warn("connect request rejected", zap.Stringer("result", resp.Result))
		return Result{}, fmt.Errorf("%w: %s", ErrRejected, resp.Result)
	}

	logger.Info("connect succeeded",
		zap.Int32("public_id", resp.PublicID),
		zap.Int32("private_id", resp.PrivateID),
		zap.Int32("game_id", resp.GameID),
	)

	return Result{
		ClientID:        resp.ClientID,
		PublicID:        resp.PublicID,
		PrivateID:       resp.PrivateID,
		GameID:          resp.GameID,
		SplitMultiplier: resp.SplitMultiplier,
		BanLength:       resp.BanLength,
		AdStuff:         resp.AdStuff,
	}, nil
}
