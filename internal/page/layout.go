package page

import (
	"strings"

	"github.com/adityajain1310/folio/internal/motion"
	"github.com/charmbracelet/lipgloss"
)

const (
	maxInner = 120
	colGap   = 2
	// fadeUntil is the entry progress below which a block renders faint.
	fadeUntil = 0.6
)

// doc accumulates document lines centered in a fixed width column.
type doc struct {
	lines  []string
	width  int
	inner  int
	margin int
}

func newDoc(width int) *doc {
	inner := min(max(width-4, 16), maxInner)
	return &doc{width: width, inner: inner, margin: max((width-inner)/2, 0)}
}

func (d *doc) y() int {
	return len(d.lines)
}

// add appends s as-is.
func (d *doc) add(s string) {
	d.lines = append(d.lines, strings.Split(s, "\n")...)
}

func (d *doc) blank(n int) {
	for range n {
		d.lines = append(d.lines, "")
	}
}

// indent appends s shifted into the centered column.
func (d *doc) indent(s string) {
	pad := strings.Repeat(" ", d.margin)
	for _, l := range strings.Split(s, "\n") {
		d.lines = append(d.lines, pad+l)
	}
}

// columns splits the inner width into n equal columns.
func (d *doc) columns(n int) int {
	n = max(n, 1)
	return max((d.inner-(n-1)*colGap)/n, 1)
}

// cell is one grid entry: its rendered text and optional reveal.
type cell struct {
	body string
	rb   *revealBlock
	// after runs once the cell is placed at rect, before it is presented.
	after func(rect motion.Rect)
}

// grid lays cells out in rows of n columns, placing each revealed cell's
// block at its final position.
func (d *doc) grid(cells []cell, n int) {
	colW := d.columns(n)
	for start := 0; start < len(cells); start += n {
		row := cells[start:min(start+n, len(cells))]
		h := 0
		for _, c := range row {
			h = max(h, lipgloss.Height(c.body))
		}
		y := d.y()
		parts := make([]string, 0, 2*len(row))
		for i, c := range row {
			rect := motion.Rect{X: d.margin + i*(colW+colGap), Y: y, W: colW, H: h}
			if c.after != nil {
				c.after(rect)
			}
			if i > 0 {
				parts = append(parts, strings.Repeat(" ", colGap))
			}
			parts = append(parts, present(c.rb, rect, c.body))
		}
		d.indent(lipgloss.JoinHorizontal(lipgloss.Top, parts...))
		d.blank(1)
	}
}

// block places a full-width revealed block and appends it.
func (d *doc) block(rb *revealBlock, body string) {
	rect := motion.Rect{X: d.margin, Y: d.y(), W: d.inner, H: lipgloss.Height(body)}
	d.indent(present(rb, rect, body))
}

// present places rb's block at rect and renders body the way its reveal
// currently shows it. The result always fills rect.
func present(rb *revealBlock, rect motion.Rect, body string) string {
	w, h := rect.W, rect.H
	if rb == nil {
		return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, body)
	}
	rb.block.place(rect)
	r := rb.reveal
	if !r.Visible() {
		return blankRect(w, h)
	}
	if off := r.Offset(); off > 0 {
		lines := strings.Split(body, "\n")
		shifted := make([]string, 0, h)
		for range min(off, h) {
			shifted = append(shifted, "")
		}
		shifted = append(shifted, lines...)
		body = strings.Join(shifted[:min(len(shifted), h)], "\n")
	}
	if r.Progress() < fadeUntil {
		body = lipgloss.NewStyle().Faint(true).Render(body)
	}
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, body)
}

func blankRect(w, h int) string {
	if h <= 0 {
		return ""
	}
	row := strings.Repeat(" ", max(w, 0))
	rows := make([]string, h)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, "\n")
}
