package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/adityajain1310/folio/internal/content"
)

// MessageType mirrors the server's frame tags.
type MessageType string

const (
	MsgSnapshot MessageType = "snapshot"
	MsgError    MessageType = "error"
	MsgResync   MessageType = "resync"
)

// TokenHeader carries the shared token on every request.
const TokenHeader = "X-Folio-Token"

// WSMessage is one frame received from the server.
type WSMessage struct {
	Type    MessageType     `json:"type"`
	Seq     uint64          `json:"seq"`
	Payload json.RawMessage `json:"payload"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// --- Bubble Tea messages ---

// ConnectedMsg is sent when the WebSocket connects.
type ConnectedMsg struct{}

// DisconnectedMsg is sent when the connection drops.
type DisconnectedMsg struct{ Err error }

// ContentMsg delivers a new portfolio from the server.
type ContentMsg struct {
	Seq       uint64
	Portfolio content.Portfolio
}

// ErrorMsg wraps a server side error or an unusable frame.
type ErrorMsg struct{ Err error }

// ContactSentMsg reports the outcome of SendContact.
type ContactSentMsg struct {
	ID  string
	Err error
}

// DeriveHTTPBase turns a WebSocket endpoint such as ws://host:8080/ws into
// the matching HTTP base URL, http://host:8080.
func DeriveHTTPBase(wsURL string) (string, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", wsURL, err)
	}
	switch u.Scheme {
	case "ws":
		u.Scheme = "http"
	case "wss":
		u.Scheme = "https"
	case "http", "https":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", errors.New("url has no host")
	}
	u.Path = strings.TrimSuffix(strings.TrimSuffix(u.Path, "/"), "/ws")
	u.RawQuery = ""
	u.Fragment = ""
	return strings.TrimSuffix(u.String(), "/"), nil
}
