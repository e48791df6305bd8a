package screen

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Surface is a clipped, offset window into the compositor's back grid.
// Groups hand each child a sub-surface so a widget can only write inside
// the intersection of its bounds and every enclosing clip region.
type Surface struct {
	c      *Compositor
	origin Point // local (0,0) in grid coordinates
	clip   Rect  // grid coordinates
	w, h   int   // logical dimensions
}

// Sub returns a nested surface for r, given in s's local coordinates.
// The result is clipped to s; a rect fully outside yields a degenerate
// surface whose writes all drop.
func (s Surface) Sub(r Rect) Surface {
	return Surface{
		c:      s.c,
		origin: s.origin.Add(r.Min),
		clip:   s.clip.Intersect(r.Offset(s.origin)),
		w:      r.Dx(),
		h:      r.Dy(),
	}
}

// Size returns the logical dimensions
func (s Surface) Size() (width, height int) {
	return s.w, s.h
}

// Put writes one glyph at local coordinates, clipped
func (s Surface) Put(x, y int, ch rune, style Style) {
	p := s.origin.Add(Point{x, y})
	if !s.clip.Contains(p) {
		return
	}
	if runewidth.RuneWidth(ch) == 2 && !s.clip.Contains(Point{p.X + 1, p.Y}) {
		s.c.Put(p.X, p.Y, ' ', style)
		return
	}
	s.c.Put(p.X, p.Y, ch, style)
}

// PutString writes s starting at local (x, y), advancing by display
// width, and returns the number of columns advanced
func (s Surface) PutString(x, y int, text string, style Style) int {
	col := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		if len(runes) == 0 {
			continue
		}
		s.Put(x+col, y, runes[0], style)
		w := runewidth.StringWidth(g.Str())
		if w < 1 {
			w = 1
		}
		col += w
	}
	return col
}

// Fill fills the logical area with spaces in the given style
func (s Surface) Fill(style Style) {
	for y := 0; y < s.h; y++ {
		for x := 0; x < s.w; x++ {
			s.Put(x, y, ' ', style)
		}
	}
}

// HLine draws a horizontal line across row y
func (s Surface) HLine(y int, ch rune, style Style) {
	for x := 0; x < s.w; x++ {
		s.Put(x, y, ch, style)
	}
}

// Frame draws a single-line border around the logical area
func (s Surface) Frame(style Style) {
	if s.w < 2 || s.h < 2 {
		return
	}
	for x := 1; x < s.w-1; x++ {
		s.Put(x, 0, '─', style)
		s.Put(x, s.h-1, '─', style)
	}
	for y := 1; y < s.h-1; y++ {
		s.Put(0, y, '│', style)
		s.Put(s.w-1, y, '│', style)
	}
	s.Put(0, 0, '┌', style)
	s.Put(s.w-1, 0, '┐', style)
	s.Put(0, s.h-1, '└', style)
	s.Put(s.w-1, s.h-1, '┘', style)
}
