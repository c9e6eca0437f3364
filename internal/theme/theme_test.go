package theme

import "testing"

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"dark", Dark, false},
		{"LIGHT", Light, false},
		{" light ", Light, false},
		{"", Dark, false},
		{"sepia", Dark, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToggle(t *testing.T) {
	th := New(Dark)
	if !th.IsDark() || th.Palette != DarkPalette {
		t.Fatal("New(Dark) should use the dark palette")
	}
	if th.ToggleIcon() != "Sun" {
		t.Errorf("dark mode toggle icon = %q, want Sun", th.ToggleIcon())
	}

	th.Toggle()
	if th.Mode != Light || th.Palette != LightPalette {
		t.Errorf("after Toggle: mode=%v", th.Mode)
	}
	if th.ToggleIcon() != "Moon" {
		t.Errorf("light mode toggle icon = %q, want Moon", th.ToggleIcon())
	}

	th.Toggle()
	if th.Mode != Dark {
		t.Errorf("second Toggle: mode=%v, want dark", th.Mode)
	}
}

func TestModeString(t *testing.T) {
	if Dark.String() != "dark" || Light.String() != "light" {
		t.Errorf("String() = %q/%q", Dark, Light)
	}
}

func TestKindColor(t *testing.T) {
	th := New(Dark)
	if th.KindColor("err") != DarkPalette.Danger {
		t.Error("err should use the danger color")
	}
	if th.KindColor("anim") != DarkPalette.Accent {
		t.Error("anim should use the accent color")
	}
	if th.KindColor("whatever") != DarkPalette.Muted {
		t.Error("unknown kinds should be muted")
	}
}
