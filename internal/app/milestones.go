package app

import (
	"fmt"
	"strings"

	"github.com/adityajain1310/folio/internal/motion"
	"github.com/adityajain1310/folio/internal/page"
)

// logMilestones records animation milestones of the current page in the
// debug log: the finished greeting, each settled counter and each section
// heading that became visible.
func (m *Model) logMilestones() {
	if tw := m.page.Typewriter(); tw != nil && tw.Done() {
		m.debugLog.Once("anim", "typed", fmt.Sprintf("typed %q", tw.Source()))
	}
	for i, c := range m.page.Counters() {
		if c.Phase() != motion.Settled {
			continue
		}
		m.debugLog.Once("anim", fmt.Sprintf("counter/%d", i),
			fmt.Sprintf("counter %d reached %d%s in %d frames", i, c.Value(), c.Suffix(), c.Frames()))
	}
	prefix := page.HeadingReveal("")
	for _, id := range m.page.RevealIDs() {
		section, ok := strings.CutPrefix(id, prefix)
		if !ok {
			continue
		}
		if r, _ := m.page.Reveal(id); r != nil && r.Visible() {
			m.debugLog.Once("anim", id, "revealed "+section)
		}
	}
}
