// Package debug provides a scrollable debug event log overlay.
package debug

import (
	"fmt"
	"strings"
	"time"

	"github.com/adityajain1310/folio/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

const maxEntries = 200

// Entry is a single event log line.
type Entry struct {
	Time    time.Time
	Kind    string // "ws", "nav", "err", "msg", "cfg", "anim"
	Message string
}

// Model holds debug log state.
type Model struct {
	Entries []Entry
	Offset  int // scroll offset (from bottom)

	// once holds the keys of milestones already logged for the current page.
	once map[string]bool
}

// New creates an empty debug model.
func New() Model {
	return Model{once: make(map[string]bool)}
}

// Add appends a log entry and caps the buffer.
func (m *Model) Add(kind, message string) {
	m.Entries = append(m.Entries, Entry{
		Time:    time.Now(),
		Kind:    kind,
		Message: message,
	})
	if len(m.Entries) > maxEntries {
		m.Entries = m.Entries[len(m.Entries)-maxEntries:]
	}
	// Reset scroll to bottom on new entry.
	m.Offset = 0
}

// Once adds an entry the first time key is seen and reports whether it did.
// Milestones such as a section reveal are logged through it so that frame
// updates do not repeat them.
func (m *Model) Once(kind, key, message string) bool {
	if m.once == nil {
		m.once = make(map[string]bool)
	}
	if m.once[key] {
		return false
	}
	m.once[key] = true
	m.Add(kind, message)
	return true
}

// Forget clears the milestone keys, for a page that was replaced.
func (m *Model) Forget() {
	clear(m.once)
}

// Count returns the number of entries of kind.
func (m Model) Count(kind string) int {
	n := 0
	for _, e := range m.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// ScrollUp moves the viewport up.
func (m *Model) ScrollUp(n int) {
	m.Offset = min(m.Offset+n, max(len(m.Entries)-1, 0))
}

// ScrollDown moves the viewport down.
func (m *Model) ScrollDown(n int) {
	m.Offset = max(m.Offset-n, 0)
}

// View renders the debug log as an overlay panel.
func (m Model) View(th theme.Theme, width, height int) string {
	innerW := max(width-4, 20)
	visibleLines := max(height-6, 3)

	title := th.Title.Render(" DEBUG LOG ")
	help := th.Dimmed.Render(fmt.Sprintf("j/k:scroll  esc:close  %d entries (%d err)", len(m.Entries), m.Count("err")))

	if len(m.Entries) == 0 {
		body := th.Dimmed.Render("  No events recorded yet.")
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", help)
		return th.Panel.Width(innerW).Render(content)
	}

	// Build visible lines from bottom (minus offset).
	end := max(len(m.Entries)-m.Offset, 0)
	start := max(end-visibleLines, 0)

	var lines []string
	for i := start; i < end; i++ {
		e := m.Entries[i]
		tsStr := th.Dimmed.Render(e.Time.Format("15:04:05.000"))
		kindStr := lipgloss.NewStyle().Foreground(th.KindColor(e.Kind)).Width(4).Render(e.Kind)
		msgStr := e.Message
		// Timestamp, kind and panel padding take 22 cells.
		if r, limit := []rune(msgStr), innerW-25; len(r) > limit+3 && limit > 0 {
			msgStr = string(r[:limit]) + "..."
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", tsStr, kindStr, msgStr))
	}

	body := strings.Join(lines, "\n")
	scrollIndicator := ""
	if m.Offset > 0 {
		scrollIndicator = th.Dimmed.Render(fmt.Sprintf(" ↓ %d more", m.Offset))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body, scrollIndicator, help)
	return th.Panel.Width(innerW).Render(content)
}
