package hero

import (
	"strings"
	"testing"

	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

func TestViewShowsTypedGreetingAndCursor(t *testing.T) {
	th := theme.New(theme.Dark)
	p := content.Default().Personal

	v := Model{Personal: p, Typed: "Hi", Typing: true}.View(th, 100)
	if !strings.Contains(v, "Hi"+cursor) {
		t.Errorf("expected typed prefix followed by cursor")
	}
	if !strings.Contains(v, "Hire Me [c]") || !strings.Contains(v, "View My Work [p]") {
		t.Errorf("expected both call-to-action buttons")
	}

	done := Model{Personal: p, Typed: p.Greeting}.View(th, 100)
	if strings.Contains(done, cursor) {
		t.Errorf("cursor should disappear once typing is done")
	}
}

func TestViewHeightIsStableWhileTyping(t *testing.T) {
	th := theme.New(theme.Light)
	p := content.Default().Personal

	empty := Model{Personal: p}.View(th, 90)
	full := Model{Personal: p, Typed: p.Greeting}.View(th, 90)
	if lipgloss.Height(empty) != lipgloss.Height(full) {
		t.Errorf("height changed while typing: %d vs %d", lipgloss.Height(empty), lipgloss.Height(full))
	}
}

func TestBadgesWrapToWidth(t *testing.T) {
	th := theme.New(theme.Dark)
	labels := []string{"Go", "Python", "FastAPI", "PostgreSQL", "Docker", "Kubernetes"}

	rows := Badges(th, labels, 24)
	if len(rows) < 2 {
		t.Fatalf("expected labels to wrap, got %d row(s)", len(rows))
	}
	for _, r := range rows {
		if w := lipgloss.Width(r); w > 24 {
			t.Errorf("row %q is %d wide, want <= 24", r, w)
		}
	}
	if got := Badges(th, nil, 24); len(got) != 0 {
		t.Errorf("expected no rows for no labels, got %d", len(got))
	}
}
