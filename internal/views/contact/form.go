package contact

import (
	"strings"

	"github.com/adityajain1310/folio/internal/inbox"
	"github.com/adityajain1310/folio/internal/theme"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	fieldName = iota
	fieldEmail
	fieldBody
	fieldCount
)

// Form is the compose overlay: name, email and a message body.
type Form struct {
	name  textinput.Model
	email textinput.Model
	body  textarea.Model
	focus int

	// Sending is set while a submission is in flight.
	Sending bool
	// Status is the last outcome shown under the form.
	Status string
	// Failed marks Status as an error.
	Failed bool
}

func NewForm() Form {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.CharLimit = 120
	name.Prompt = ""

	email := textinput.New()
	email.Placeholder = "you@example.com"
	email.CharLimit = 254
	email.Prompt = ""

	body := textarea.New()
	body.Placeholder = "Tell me about your project..."
	body.CharLimit = inbox.MaxBodyRunes
	body.ShowLineNumbers = false
	body.SetHeight(5)

	return Form{name: name, email: email, body: body}
}

// Focus focuses the first field.
func (f *Form) Focus() tea.Cmd {
	f.focus = fieldName
	return f.apply()
}

// Blur drops focus from every field.
func (f *Form) Blur() {
	f.name.Blur()
	f.email.Blur()
	f.body.Blur()
}

// Reset clears every field and the status line.
func (f *Form) Reset() {
	f.name.Reset()
	f.email.Reset()
	f.body.Reset()
	f.Sending = false
	f.Status = ""
	f.Failed = false
}

// Focused reports the index of the focused field.
func (f Form) Focused() int {
	return f.focus
}

func (f *Form) move(delta int) tea.Cmd {
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	return f.apply()
}

func (f *Form) apply() tea.Cmd {
	f.Blur()
	switch f.focus {
	case fieldName:
		return f.name.Focus()
	case fieldEmail:
		return f.email.Focus()
	default:
		return f.body.Focus()
	}
}

// SetValues fills the fields, mainly for tests.
func (f *Form) SetValues(name, email, body string) {
	f.name.SetValue(name)
	f.email.SetValue(email)
	f.body.SetValue(body)
}

// Submission returns the form contents as an inbox message.
func (f Form) Submission() inbox.Message {
	return inbox.Message{
		Name:  strings.TrimSpace(f.name.Value()),
		Email: strings.TrimSpace(f.email.Value()),
		Body:  strings.TrimSpace(f.body.Value()),
	}
}

// Update moves focus on tab and shift+tab and forwards everything else to
// the focused field.
func (f Form) Update(msg tea.Msg) (Form, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab":
			return f, f.move(1)
		case "shift+tab":
			return f, f.move(-1)
		}
	}
	var cmd tea.Cmd
	switch f.focus {
	case fieldName:
		f.name, cmd = f.name.Update(msg)
	case fieldEmail:
		f.email, cmd = f.email.Update(msg)
	default:
		f.body, cmd = f.body.Update(msg)
	}
	return f, cmd
}

// View renders the form as a panel width cells wide.
func (f Form) View(th theme.Theme, width int) string {
	inner := max(width-8, 20)
	f.name.Width = inner
	f.email.Width = inner
	f.body.SetWidth(inner)

	label := func(i int, s string) string {
		if i == f.focus {
			return th.Accent.Render("› " + s)
		}
		return th.Dimmed.Render("  " + s)
	}
	lines := []string{
		th.Title.Render("Send a message"),
		"",
		label(fieldName, "Name"),
		f.name.View(),
		label(fieldEmail, "Email"),
		f.email.View(),
		label(fieldBody, "Message"),
		f.body.View(),
		"",
	}
	switch {
	case f.Sending:
		lines = append(lines, th.Dimmed.Render("Sending..."))
	case f.Status != "" && f.Failed:
		lines = append(lines, th.Danger.Render(f.Status))
	case f.Status != "":
		lines = append(lines, th.Success.Render(f.Status))
	}
	lines = append(lines, th.Dimmed.Render("tab next · ctrl+s send · esc close"))
	return th.Panel.Width(max(width-2, 1)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
