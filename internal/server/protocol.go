package server

// MessageType tags every frame sent over /ws.
type MessageType string

const (
	// MsgSnapshot carries the full portfolio.
	MsgSnapshot MessageType = "snapshot"
	// MsgError reports a server side failure.
	MsgError MessageType = "error"
	// MsgResync is sent by clients to request a fresh snapshot.
	MsgResync MessageType = "resync"
)

type WSMessage struct {
	Type    MessageType `json:"type"`
	Seq     uint64      `json:"seq"`
	Payload any         `json:"payload,omitempty"`
}

// ErrorPayload describes a server side failure.
type ErrorPayload struct {
	Message string `json:"message"`
}
