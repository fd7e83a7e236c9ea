package nebulous

import (
	"context"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/yntha/nebulous-go/protocol"
	"github.com/yntha/nebulous-go/protocol/event"
)

// receiveLoop classifies, parses, and dispatches every inbound
// datagram, maintains the world mirror, and opens the game-data-ready
// gate once the initial snapshot burst completes (spec §4.E).
func (c *Client) receiveLoop(ctx context.Context) {
	buf := make([]byte, maxDatagramSize)
	gameDataCount := 0

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := c.conn.SetReadDeadline(time.Now().Add(ioTimeout)); err != nil {
			c.logger.Error("receive loop: setting read deadline", zap.Error(err))
			c.setState(StateDisconnecting)
			return
		}

		n, err := c.conn.Read(buf)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				c.logger.Warn("receive loop: read timed out")
			} else {
				c.logger.Error("receive loop: read error", zap.Error(err))
			}
			c.setState(StateDisconnecting)
			return
		}
		if n < 1 {
			continue
		}

		typeByte := protocol.PacketType(buf[0])
		body := make([]byte, n-1)
		copy(body, buf[1:n])

		if typeByte == protocol.PacketTypeGameData {
			gameDataCount++
		}

		terminate := c.dispatch(typeByte, body)
		if terminate {
			return
		}

		if typeByte != protocol.PacketTypeGameData && gameDataCount > 0 {
			if c.openGate() {
				c.logger.Info("initial snapshot burst complete", zap.Int("game_data_packets", gameDataCount))
			}
		}
	}
}

// dispatch routes one decoded packet to its handler. It returns true
// if a callback error requires the session to terminate.
func (c *Client) dispatch(typeByte protocol.PacketType, body []byte) bool {
	switch typeByte {
	case protocol.PacketTypeGameData:
		return c.handleGameData(body)
	case protocol.PacketTypeGameUpdate:
		return c.handleGameUpdate(body)
	case protocol.PacketTypeGameChatMessage:
		return c.handleGameChat(body)
	case protocol.PacketTypeClanChatMessage:
		return c.handleClanChat(body)
	default:
		if !typeByte.Known() {
			c.logger.Debug("receive loop: dropping unrecognized packet type", zap.Uint8("type", uint8(typeByte)))
			if c.callbacks.OnUnknownPacketType != nil {
				c.callbacks.OnUnknownPacketType(typeByte)
			}
		}
		return false
	}
}

func (c *Client) handleGameData(body []byte) bool {
	data, err := protocol.DecodeGameData(body)
	if err != nil {
		c.logger.Error("receive loop: decoding GAME_DATA", zap.Error(err))
		return false
	}

	c.world.replace(data)
	c.world.discoverLocalPlayer(c.alias)

	if c.callbacks.OnGameData != nil {
		if _, err := c.callbacks.OnGameData(&data); err != nil {
			c.fail(err)
			return true
		}
	}
	return false
}

func (c *Client) handleGameUpdate(body []byte) bool {
	mapSize := c.world.MapSize()
	events, err := event.Decode(body, mapSize)
	if err != nil {
		c.logger.Warn("receive loop: GAME_UPDATE truncated by unrecognized event type", zap.Error(err))
	}

	for i := range events {
		ev := events[i]
		if c.callbacks.OnGameEvent != nil {
			if _, err := c.callbacks.OnGameEvent(&ev); err != nil {
				c.fail(err)
				return true
			}
		}
		if handler, ok := c.callbacks.OnEventType[ev.Type]; ok && handler != nil {
			if _, err := handler(&ev); err != nil {
				c.fail(err)
				return true
			}
		}
	}
	return false
}

func (c *Client) handleGameChat(body []byte) bool {
	m, err := protocol.DecodeGameChatMessage(body)
	if err != nil {
		c.logger.Error("receive loop: decoding GAME_CHAT_MESSAGE", zap.Error(err))
		return false
	}
	if c.callbacks.OnGameChatMessage != nil {
		if _, err := c.callbacks.OnGameChatMessage(&m); err != nil {
			c.fail(err)
			return true
		}
	}
	return false
}

func (c *Client) handleClanChat(body []byte) bool {
	m, err := protocol.DecodeClanChatMessage(body)
	if err != nil {
		c.logger.Error("receive loop: decoding CLAN_CHAT_MESSAGE", zap.Error(err))
		return false
	}
	if c.callbacks.OnClanChatMessage != nil {
		if _, err := c.callbacks.OnClanChatMessage(&m); err != nil {
			c.fail(err)
			return true
		}
	}
	return false
}
