package screen

import (
	"io"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Compositor owns the two frame grids and produces minimal update
// sequences. The back grid is composed via Put/Surface writes; Flush
// diffs it against the front grid (the last flushed frame) and emits
// only the changed cells, coalesced into contiguous runs per row.
type Compositor struct {
	width, height int
	back, front   []Cell
	mode          ColorMode

	allDirty bool
	dirtyRow []bool

	// Encoder state carried across runs within one flush
	scratch     []byte
	cursorX     int
	cursorY     int
	cursorValid bool
	lastStyle   Style
	styleValid  bool
}

// New creates a compositor with both grids sized width x height
func New(width, height int, mode ColorMode) *Compositor {
	c := &Compositor{mode: mode}
	c.Resize(width, height)
	return c
}

// Size returns the current grid dimensions
func (c *Compositor) Size() (width, height int) {
	return c.width, c.height
}

// ColorMode returns the output color mode
func (c *Compositor) ColorMode() ColorMode {
	return c.mode
}

// Resize reallocates both grids atomically and forces a full repaint
// on the next flush. Content is not preserved.
func (c *Compositor) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	c.back = make([]Cell, size)
	c.front = make([]Cell, size)
	c.dirtyRow = make([]bool, width)
	c.width = width
	c.height = height
	c.Invalidate()
}

// Invalidate forces the next flush to treat every cell as changed
func (c *Compositor) Invalidate() {
	c.allDirty = true
	c.cursorValid = false
	c.styleValid = false
}

// BeginFrame resets the back grid for composition
func (c *Compositor) BeginFrame() {
	clear(c.back)
}

// Put writes one glyph into the back grid. Writes outside the grid are
// silently clipped, never errors. A wide glyph occupies two cells; its
// continuation cell holds Rune 0. A wide glyph that would straddle the
// right edge degrades to a space.
func (c *Compositor) Put(x, y int, ch rune, style Style) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	idx := y*c.width + x
	if runewidth.RuneWidth(ch) == 2 {
		if x+1 >= c.width {
			c.back[idx] = Cell{Rune: ' ', Style: style}
			return
		}
		c.back[idx] = Cell{Rune: ch, Style: style}
		c.back[idx+1] = Cell{Rune: 0, Style: style}
		return
	}
	c.back[idx] = Cell{Rune: ch, Style: style}
}

// PutString writes s starting at (x, y), advancing by display width.
// Grapheme clusters are placed one per cell (the base rune represents
// the cluster). Returns the number of columns advanced.
func (c *Compositor) PutString(x, y int, s string, style Style) int {
	col := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		runes := g.Runes()
		if len(runes) == 0 {
			continue
		}
		c.Put(x+col, y, runes[0], style)
		w := runewidth.StringWidth(g.Str())
		if w < 1 {
			w = 1
		}
		col += w
	}
	return col
}

// Back returns the back-grid cell at (x, y)
func (c *Compositor) Back(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return Cell{}, false
	}
	return c.back[y*c.width+x], true
}

// Front returns the front-grid (last flushed) cell at (x, y)
func (c *Compositor) Front(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return Cell{}, false
	}
	return c.front[y*c.width+x], true
}

// Root returns a surface covering the whole back grid
func (c *Compositor) Root() Surface {
	return Surface{c: c, clip: NewRect(0, 0, c.width, c.height)}
}

// Flush compares back against front cell by cell, writes the update
// sequence for changed cells to w, copies back into front, and returns
// how many cells changed. A flush with no changes writes nothing.
func (c *Compositor) Flush(w io.Writer) (int, error) {
	buf := c.scratch[:0]
	changed := 0

	for y := 0; y < c.height; y++ {
		rowStart := y * c.width

		// Diff pass. A dirty continuation cell forces its wide lead
		// dirty so the glyph is re-emitted whole.
		rowDirty := false
		for x := 0; x < c.width; x++ {
			idx := rowStart + x
			d := c.allDirty || !cellEqual(c.back[idx], c.front[idx])
			if d && !c.allDirty {
				changed++
			}
			c.dirtyRow[x] = d
			rowDirty = rowDirty || d
		}
		if c.allDirty {
			changed += c.width
		}
		if !rowDirty {
			continue
		}
		for x := 1; x < c.width; x++ {
			if c.dirtyRow[x] && !c.dirtyRow[x-1] && c.back[rowStart+x].Rune == 0 &&
				runewidth.RuneWidth(c.back[rowStart+x-1].Rune) == 2 {
				c.dirtyRow[x-1] = true
			}
		}

		x := 0
		for x < c.width {
			if !c.dirtyRow[x] {
				x++
				continue
			}

			// Position cursor once per dirty run
			if !c.cursorValid || x != c.cursorX || y != c.cursorY {
				if c.cursorValid && y == c.cursorY && x > c.cursorX {
					buf = appendCursorForward(buf, x-c.cursorX)
				} else {
					buf = appendCursorPos(buf, x, y)
				}
				c.cursorX = x
				c.cursorY = y
				c.cursorValid = true
			}

			for x < c.width && c.dirtyRow[x] {
				idx := rowStart + x
				cell := c.back[idx]

				if !c.styleValid || cell.Style != c.lastStyle {
					buf = appendStyle(buf, cell.Style, c.mode)
					c.lastStyle = cell.Style
					c.styleValid = true
				}

				r := cell.Rune
				if r == 0 {
					r = ' '
				}
				buf = append(buf, string(r)...)
				c.front[idx] = cell

				if x+1 < c.width && runewidth.RuneWidth(cell.Rune) == 2 {
					c.front[idx+1] = c.back[idx+1]
					c.cursorX += 2
					x += 2
				} else {
					c.cursorX++
					x++
				}
			}
		}
	}

	c.allDirty = false
	if len(buf) == 0 {
		return 0, nil
	}
	buf = append(buf, seqSGR0...)
	c.styleValid = false
	c.scratch = buf[:0]

	if _, err := w.Write(buf); err != nil {
		return changed, err
	}
	return changed, nil
}
