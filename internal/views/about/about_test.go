package about

import (
	"strings"
	"testing"

	"github.com/adityajain1310/folio/internal/content"
	"github.com/adityajain1310/folio/internal/theme"
)

func TestPlainRendererStripsEmphasis(t *testing.T) {
	r := NewPlainRenderer()
	got := r.Render(theme.New(theme.Dark), "I build **automation** for teams.", 60)
	if strings.Contains(got, "**") {
		t.Errorf("emphasis markers left in %q", got)
	}
	if !strings.Contains(got, "automation") {
		t.Errorf("text lost: %q", got)
	}
}

func TestRendererCachesPerWidthAndMode(t *testing.T) {
	r := NewPlainRenderer()
	dark := theme.New(theme.Dark)
	text := strings.Repeat("word ", 30)

	a := r.Render(dark, text, 40)
	if b := r.Render(dark, text, 40); a != b {
		t.Errorf("same inputs rendered differently")
	}
	if c := r.Render(dark, text, 80); c == a {
		t.Errorf("width change should re-render")
	}
	if r.key.width != 80 {
		t.Errorf("cache key width = %d, want 80", r.key.width)
	}
	r.Render(theme.New(theme.Light), text, 80)
	if r.key.mode != theme.Light {
		t.Errorf("cache key mode not updated")
	}
}

func TestGlamourRenderer(t *testing.T) {
	got := NewRenderer().Render(theme.New(theme.Dark), "Hello **world**", 40)
	if !strings.Contains(got, "world") {
		t.Errorf("rendered output %q missing text", got)
	}
}

func TestExperience(t *testing.T) {
	e := content.Experience{
		Company:      "Acme",
		Role:         "Engineer",
		Period:       "2023 - Now",
		Description:  "Built things.",
		Achievements: []string{"Shipped v2"},
	}
	v := Experience(theme.New(theme.Dark), e, 60)
	for _, want := range []string{"Acme", "Engineer", "2023 - Now", "Built things.", "Shipped v2"} {
		if !strings.Contains(v, want) {
			t.Errorf("experience card missing %q", want)
		}
	}
}
