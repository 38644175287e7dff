package hub

import (
	"context"
	"encoding/json"
	"net"
	"sync"
	"time"

	"github.com/jayprakash-mahato/dchat/internal/event"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var (
	// tuning parameters
	writeWait      = 10 * time.Second    // time allowed to write a frame to the peer
	pongWait       = 20 * time.Second    // time allowed to read the next pong from the peer
	pingInterval   = (pongWait * 9) / 10 // send pings with this period
	maxMessageSize = 64 * 1024           // max inbound frame size
	sendBufSize    = 256                 // per-connection outbound buffer size
)

// Client is one live connection session. It binds a transport connection
// to the presence registry: announce registers it, transport disconnect
// deregisters it. A session that terminates is never reused; a new
// physical connection gets a new Client.
type Client struct {
	ID string

	conn   *websocket.Conn
	hub    *Hub
	egress chan event.Event
	logger *zap.Logger

	ctx        context.Context
	cancel     context.CancelFunc
	once       sync.Once
	connClosed chan struct{}
	closedOnce sync.Once
}

func newClient(conn *websocket.Conn, h *Hub, logger *zap.Logger) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		ID:         uuid.New().String(),
		conn:       conn,
		hub:        h,
		egress:     make(chan event.Event, sendBufSize),
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
		connClosed: make(chan struct{}),
	}
}

// ReadMessages pumps inbound frames. Events are handled to completion one
// at a time on this goroutine, which is what keeps relays between a fixed
// sender/receiver pair in submission order.
func (c *Client) ReadMessages() {
	defer func() {
		c.hub.disconnect(c)
		c.Close()
	}()

	c.conn.SetReadLimit(int64(maxMessageSize))
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(c.pongHandler)

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
			var ev event.Event

			if err := c.conn.ReadJSON(&ev); err != nil {
				if websocket.IsCloseError(err,
					websocket.CloseNormalClosure,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure,
				) {
					c.logger.Debug("client disconnected", zap.String("session_id", c.ID))
					return
				}

				if ne, ok := err.(net.Error); ok && ne.Timeout() {
					c.logger.Debug("client timed out", zap.String("session_id", c.ID))
					return
				}

				c.logger.Warn("read error", zap.String("session_id", c.ID), zap.Error(err))
				return
			}

			c.handleEvent(ev)
		}
	}
}

func (c *Client) handleEvent(ev event.Event) {
	switch ev.Type {
	case event.EventAnnounce:
		var announce event.Announce
		if err := json.Unmarshal(ev.Payload, &announce); err != nil {
			c.logger.Warn("malformed announce payload", zap.String("session_id", c.ID), zap.Error(err))
			return
		}
		c.hub.announce(c, announce.UserID)

	case event.EventSendMessage:
		var req event.SendMessage
		if err := json.Unmarshal(ev.Payload, &req); err != nil {
			c.logger.Warn("malformed send-message payload", zap.String("session_id", c.ID), zap.Error(err))
			return
		}
		c.hub.relay.Relay(c.ctx, c, req)

	default:
		c.logger.Warn("unknown event type", zap.String("type", ev.Type), zap.String("session_id", c.ID))
	}
}

// WriteMessages pumps outbound frames and keeps the connection alive with
// pings.
func (c *Client) WriteMessages() {
	ticker := time.NewTicker(pingInterval)

	defer func() {
		ticker.Stop()
		c.Close()
		_ = c.conn.Close()

		c.closedOnce.Do(func() {
			close(c.connClosed)
		})
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		case ev := <-c.egress:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(ev); err != nil {
				c.logger.Warn("write error", zap.String("session_id", c.ID), zap.Error(err))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

func (c *Client) pongHandler(string) error {
	return c.conn.SetReadDeadline(time.Now().Add(pongWait))
}

// Send enqueues a frame for delivery. Fire and forget: when the session is
// closed or its buffer is full the frame is dropped, never retried, and
// the failure is not surfaced to the caller.
func (c *Client) Send(ev event.Event) {
	select {
	case <-c.ctx.Done():
	case c.egress <- ev:
	default:
		c.logger.Warn("egress full, dropping frame",
			zap.String("session_id", c.ID),
			zap.String("type", ev.Type),
		)
	}
}

// Close terminates the session. Idempotent. The egress channel is left
// open so concurrent Send calls stay safe; the cancelled context stops
// both pumps.
func (c *Client) Close() {
	c.once.Do(func() {
		c.cancel()

		if c.conn == nil {
			return
		}
		go func() {
			select {
			case <-c.connClosed:
				// write pump closed the conn
			case <-time.After(5 * time.Second):
				_ = c.conn.Close()
			}
		}()
	})
}
