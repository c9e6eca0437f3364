package server

import (
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/adityajain1310/folio/internal/content"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	sendBuffer   = 64
	writeTimeout = 10 * time.Second
)

// ErrTooManyConnections is returned by AddClient when the limit is reached.
var ErrTooManyConnections = errors.New("too many websocket connections")

type client struct {
	conn *websocket.Conn
	b    *Broadcaster
	send chan []byte
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.b.RemoveClient(c)
			return
		}
	}
}

// Broadcaster fans portfolio snapshots out to every connected viewer.
type Broadcaster struct {
	mu       sync.RWMutex
	clients  map[*client]bool
	current  content.Portfolio
	maxConns int
	stopped  bool
	seq      atomic.Uint64
	log      *zap.Logger
}

// NewBroadcaster creates a broadcaster serving initial. A maxConns of zero
// means unlimited.
func NewBroadcaster(initial content.Portfolio, maxConns int, log *zap.Logger) *Broadcaster {
	if log == nil {
		log = zap.NewNop()
	}
	return &Broadcaster{
		clients:  make(map[*client]bool),
		current:  initial,
		maxConns: maxConns,
		log:      log,
	}
}

// Current returns the portfolio being served.
func (b *Broadcaster) Current() content.Portfolio {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.current
}

// AddClient registers conn and queues the current snapshot for it.
func (b *Broadcaster) AddClient(conn *websocket.Conn) (*client, error) {
	c := &client{conn: conn, b: b, send: make(chan []byte, sendBuffer)}

	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return nil, errors.New("broadcaster stopped")
	}
	if b.maxConns > 0 && len(b.clients) >= b.maxConns {
		b.mu.Unlock()
		return nil, ErrTooManyConnections
	}
	b.clients[c] = true
	b.mu.Unlock()

	go c.writePump()
	b.SendSnapshot(c)
	return c, nil
}

// RemoveClient unregisters c and closes its send queue. It is safe to call
// more than once.
func (b *Broadcaster) RemoveClient(c *client) {
	b.mu.Lock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.send)
	}
	b.mu.Unlock()
}

// SendSnapshot queues the current portfolio for one client. It encodes and
// queues under b.mu, like Publish, so queue order matches seq order.
func (b *Broadcaster) SendSnapshot(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.clients[c] {
		return
	}
	data, err := b.encode(MsgSnapshot, b.current)
	if err != nil {
		b.log.Error("encode snapshot", zap.Error(err))
		return
	}
	select {
	case c.send <- data:
	default:
		b.log.Warn("snapshot dropped for slow client")
	}
}

// Publish replaces the served portfolio and pushes it to every client.
func (b *Broadcaster) Publish(p content.Portfolio) {
	b.mu.Lock()
	b.current = p
	slow := b.broadcastLocked(MsgSnapshot, p)
	b.mu.Unlock()

	for _, c := range slow {
		b.log.Warn("ws client too slow, disconnecting")
		b.RemoveClient(c)
	}
}

func (b *Broadcaster) encode(t MessageType, payload any) ([]byte, error) {
	return json.Marshal(WSMessage{Type: t, Seq: b.seq.Add(1), Payload: payload})
}

// broadcastLocked queues one message for every client and returns those
// whose queue was full. b.mu must be held.
func (b *Broadcaster) broadcastLocked(t MessageType, payload any) []*client {
	data, err := b.encode(t, payload)
	if err != nil {
		b.log.Error("broadcast marshal", zap.Error(err))
		return nil
	}
	var slow []*client
	for c := range b.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	return slow
}

// Full reports whether the connection limit is reached.
func (b *Broadcaster) Full() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.maxConns > 0 && len(b.clients) >= b.maxConns
}

// ClientCount returns the number of connected viewers.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Stop disconnects every client and rejects new ones.
func (b *Broadcaster) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
	for c := range b.clients {
		delete(b.clients, c)
		close(c.send)
	}
}
