package nebulous

import (
	"context"
	"fmt"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/yntha/nebulous-go/protocol"
)

// sendLoop drains the outbound queue and, failing that, emits the
// heartbeat pair on a 500ms cadence (spec §4.E). It suspends at
// startup until the game-data-ready gate opens.
func (c *Client) sendLoop(ctx context.Context) {
	select {
	case <-c.gate:
	case <-ctx.Done():
		return
	}

	// Force an immediate first heartbeat.
	lastHeartbeat := time.Now().Add(-heartbeatInterval)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if payload, ok := c.outbound.tryDequeue(); ok {
			if err := c.writePacket(payload); err != nil {
				c.logger.Error("send loop: write failed", zap.Error(err))
				c.setState(StateDisconnecting)
				return
			}
			continue
		}

		if time.Since(lastHeartbeat) >= heartbeatInterval {
			if err := c.sendHeartbeat(); err != nil {
				c.logger.Error("send loop: heartbeat failed", zap.Error(err))
				c.setState(StateDisconnecting)
				return
			}
			lastHeartbeat = time.Now()
			continue
		}

		remaining := heartbeatInterval - time.Since(lastHeartbeat)
		select {
		case <-c.outbound.notify:
		case <-time.After(remaining):
		case <-ctx.Done():
			return
		}
	}
}

func (c *Client) writePacket(payload []byte) error {
	if err := c.conn.SetWriteDeadline(time.Now().Add(ioTimeout)); err != nil {
		return err
	}
	_, err := c.conn.Write(payload)
	return err
}

// sendHeartbeat emits KEEP_ALIVE unconditionally, then CONTROL only if
// the local player index has been discovered -- spec §4.E's heartbeat
// bullet names CONTROL as always the second packet, but spec §8's
// universal "No-CONTROL-before-identity" property takes precedence
// (see DESIGN.md). Skipping CONTROL does not reset the heartbeat
// clock; KEEP_ALIVE alone still counts as "the heartbeat" for timing
// purposes.
func (c *Client) sendHeartbeat() error {
	serverIP := remoteIPv4(c.conn)
	ka := &protocol.KeepAlive{
		PublicID:  c.publicID,
		PrivateID: c.privateID,
		ServerIP:  serverIP,
		ClientID:  c.clientID,
	}
	if err := c.writePacket(ka.Encode()); err != nil {
		return fmt.Errorf("keep_alive: %w", err)
	}

	localIndex, known := c.world.LocalPlayerIndex()
	if !known {
		return nil
	}

	c.controlMu.Lock()
	input := c.pendingInput
	c.controlMu.Unlock()

	ctl := &protocol.Control{
		PublicID:         c.publicID,
		Angle:            input.angle,
		Speed:            input.speed,
		Tick:             c.tick,
		Flags:            input.flags,
		LocalPlayerIndex: uint8(localIndex),
		ClientID:         c.clientID,
		AspectRatio:      c.cfg.AspectRatio(),
	}
	c.tick++ // wraps modulo 256 by uint8 overflow, spec §8 "Tick monotonicity"

	if err := c.writePacket(ctl.Encode()); err != nil {
		return fmt.Errorf("control: %w", err)
	}
	return nil
}

func remoteIPv4(conn *net.UDPConn) [4]byte {
	var out [4]byte
	addr, ok := conn.RemoteAddr().(*net.UDPAddr)
	if !ok {
		return out
	}
	ip4 := addr.IP.To4()
	if ip4 == nil {
		return out
	}
	copy(out[:], ip4)
	return out
}
