// Package icon resolves the icon names used in portfolio data to terminal
// glyphs.
package icon

import "strings"

var glyphs = map[string]string{
	"barchart3":     "▥",
	"bot":           "◉",
	"briefcase":     "▣",
	"building2":     "▦",
	"calendar":      "▤",
	"checkcircle2":  "✓",
	"chevrondown":   "⌄",
	"code2":         "</>",
	"github":        "⌥",
	"linkedin":      "in",
	"mail":          "✉",
	"messagecircle": "◌",
	"messagesquare": "▢",
	"moon":          "☾",
	"rocket":        "➚",
	"server":        "≣",
	"sun":           "☀",
	"trendingup":    "↗",
	"workflow":      "⇄",
	"zap":           "ϟ",
}

// Glyph returns the glyph for name, ignoring case, or "" when the name is
// unknown.
func Glyph(name string) string {
	return glyphs[strings.ToLower(name)]
}

// Prefix returns the glyph followed by a space, or "" when there is none, so
// callers can render unknown icons as nothing.
func Prefix(name string) string {
	if g := Glyph(name); g != "" {
		return g + " "
	}
	return ""
}
