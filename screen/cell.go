package screen

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
)

// Style is a foreground/background attribute pair
type Style struct {
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// Cell is the atomic unit of a frame grid: one glyph plus its style.
// Rune 0 marks an empty cell (rendered as space) or the continuation
// half of a wide glyph.
type Cell struct {
	Rune rune
	Style
}

// cellEqual compares two cells for the diff pass. Empty cells compare
// by background only, matching what the terminal actually shows.
func cellEqual(a, b Cell) bool {
	if a.Rune != b.Rune || a.Attrs != b.Attrs {
		return false
	}
	if a.Rune == 0 {
		return a.Bg == b.Bg
	}
	return a.Fg == b.Fg && a.Bg == b.Bg
}
