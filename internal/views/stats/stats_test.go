package stats

import (
	"strings"
	"testing"

	"github.com/adityajain1310/folio/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

func TestCell(t *testing.T) {
	v := Cell(theme.New(theme.Dark), "1,500+", "Hours Saved", 24)
	lines := strings.Split(v, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[ValueRow], "1,500+") {
		t.Errorf("value row = %q", lines[ValueRow])
	}
	if !strings.Contains(lines[1], "Hours Saved") {
		t.Errorf("label row = %q", lines[1])
	}
	if w := lipgloss.Width(v); w != 24 {
		t.Errorf("width = %d, want 24", w)
	}
}
