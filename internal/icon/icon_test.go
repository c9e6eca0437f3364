package icon

import "testing"

func TestGlyph(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Mail", "✉"},
		{"mail", "✉"},
		{"CheckCircle2", "✓"},
		{"Linkedin", "in"},
		{"NoSuchIcon", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Glyph(tt.name); got != tt.want {
			t.Errorf("Glyph(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPrefix(t *testing.T) {
	if got := Prefix("Zap"); got != "ϟ " {
		t.Errorf("Prefix(Zap) = %q", got)
	}
	if got := Prefix("unknown"); got != "" {
		t.Errorf("Prefix(unknown) = %q, want empty", got)
	}
}
