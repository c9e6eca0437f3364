package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/adityajain1310/folio/internal/content"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	reconnectBaseDelay = 1 * time.Second
	reconnectMaxDelay  = 30 * time.Second
	writeTimeout       = 10 * time.Second
	pongTimeout        = 60 * time.Second
	pingInterval       = 30 * time.Second
)

// WSClient manages the WebSocket connection to a folio server.
type WSClient struct {
	url   string
	token string
	log   *zap.Logger

	mu      sync.Mutex
	writeMu sync.Mutex // serialises all conn writes (ping, resync)
	conn    *websocket.Conn
	seq     uint64
	pingCtx context.CancelFunc // cancels the active ping goroutine
}

// NewWSClient creates a client that connects to the given WebSocket URL.
func NewWSClient(url, token string, log *zap.Logger) *WSClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &WSClient{url: url, token: token, log: log}
}

// Listen returns a Bubble Tea command that connects and dispatches messages.
// It reconnects automatically on disconnect.
func (c *WSClient) Listen(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		delay := reconnectBaseDelay
		for {
			select {
			case <-ctx.Done():
				return nil
			default:
			}

			var header http.Header
			if c.token != "" {
				header = http.Header{TokenHeader: {c.token}}
			}
			conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, header)
			if err != nil {
				c.log.Warn("ws dial failed", zap.String("url", c.url), zap.Duration("retry", delay), zap.Error(err))
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(delay):
				}
				delay = min(delay*2, reconnectMaxDelay)
				continue
			}

			// Cancel any previous ping goroutine.
			c.mu.Lock()
			if c.pingCtx != nil {
				c.pingCtx()
			}
			pingCtx, pingCancel := context.WithCancel(ctx)
			c.conn = conn
			c.seq = 0
			c.pingCtx = pingCancel
			c.mu.Unlock()

			// Start a single ping ticker for this connection.
			go c.pingLoop(pingCtx, conn)

			c.log.Info("ws connected", zap.String("url", c.url))
			return ConnectedMsg{}
		}
	}
}

// ReadLoop returns a Bubble Tea command that reads messages from the connection.
// It should be started after receiving ConnectedMsg.
func (c *WSClient) ReadLoop(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return DisconnectedMsg{Err: errors.New("no connection")}
		}

		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(pongTimeout))
			return nil
		})
		conn.SetReadDeadline(time.Now().Add(pongTimeout))

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				c.mu.Lock()
				if c.conn == conn {
					c.conn = nil
				}
				c.mu.Unlock()
				conn.Close()
				return DisconnectedMsg{Err: err}
			}

			var msg WSMessage
			if err := json.Unmarshal(data, &msg); err != nil {
				c.log.Warn("ws frame dropped", zap.Error(err))
				continue
			}

			c.mu.Lock()
			fresh := c.seq == 0 || after(msg.Seq, c.seq)
			if fresh {
				c.seq = msg.Seq
			}
			c.mu.Unlock()
			if !fresh && msg.Type == MsgSnapshot {
				c.log.Debug("stale snapshot dropped", zap.Uint64("seq", msg.Seq))
				continue
			}

			teaMsg := c.dispatch(msg)
			if teaMsg != nil {
				return teaMsg
			}
		}
	}
}

// pingLoop sends periodic pings on the given connection. It exits when the
// context is cancelled or the connection changes.
func (c *WSClient) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			cc := c.conn
			c.mu.Unlock()
			if cc != conn {
				return
			}
			c.writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// ErrNotConnected is returned by Resync without a live connection.
var ErrNotConnected = errors.New("not connected")

// Resync asks the server for a fresh snapshot.
func (c *WSClient) Resync() error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(map[string]string{"type": string(MsgResync)})
}

// Close drops the connection and stops the ping loop. A pending ReadLoop
// returns DisconnectedMsg.
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pingCtx != nil {
		c.pingCtx()
		c.pingCtx = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// Seq returns the last seen sequence number.
func (c *WSClient) Seq() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// after reports whether seq follows last, allowing for wraparound.
func after(seq, last uint64) bool {
	return int64(seq-last) > 0
}

func (c *WSClient) dispatch(msg WSMessage) tea.Msg {
	switch msg.Type {
	case MsgSnapshot:
		var p content.Portfolio
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return ErrorMsg{Err: fmt.Errorf("decode snapshot: %w", err)}
		}
		if err := p.Validate(); err != nil {
			return ErrorMsg{Err: fmt.Errorf("snapshot rejected: %w", err)}
		}
		return ContentMsg{Seq: msg.Seq, Portfolio: p}
	case MsgError:
		var p ErrorPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.Message == "" {
			return ErrorMsg{Err: errors.New("server error")}
		}
		return ErrorMsg{Err: errors.New(p.Message)}
	}
	return nil
}
