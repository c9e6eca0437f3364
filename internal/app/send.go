package app

import (
	"context"
	"time"

	"github.com/adityajain1310/folio/internal/client"
	"github.com/adityajain1310/folio/internal/inbox"
	tea "github.com/charmbracelet/bubbletea"
)

const saveTimeout = 5 * time.Second

// MessageSaver is the part of inbox.Store a local session writes to.
type MessageSaver interface {
	Save(ctx context.Context, m inbox.Message) (inbox.Message, error)
}

// StoreSender delivers contact messages to a local inbox when no server is
// involved.
type StoreSender struct {
	Store MessageSaver
}

// SendContactCmd saves m and reports the result as client.ContactSentMsg.
func (s StoreSender) SendContactCmd(m inbox.Message) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		saved, err := s.Store.Save(ctx, m)
		if err != nil {
			return client.ContactSentMsg{Err: err}
		}
		return client.ContactSentMsg{ID: saved.ID}
	}
}
