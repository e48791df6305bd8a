package view

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/cellforge/vista/screen"
)

// Slot is a semantic color index. A view draws with slots, never raw
// styles; resolution walks the owner chain remapping the slot through
// each Palette until a themed group supplies the actual style.
type Slot uint8

const (
	SlotBackground Slot = iota
	SlotText
	SlotFrame
	SlotTitle
	SlotFocus
	SlotSelect
	SlotDisabled
	SlotShortcut
	SlotError
	slotCount
)

// Palette maps a view's local slots onto its owner's slots. A nil
// palette is the identity mapping. A slot the palette does not cover is
// a caller error and resolves to the error style.
type Palette []Slot

// Theme supplies the concrete style per slot at a resolution root
type Theme struct {
	Styles [slotCount]screen.Style
}

func (t *Theme) style(s Slot) screen.Style {
	if int(s) >= len(t.Styles) {
		return ErrorStyle
	}
	return t.Styles[s]
}

// ErrorStyle is deliberately loud: it marks a palette misconfiguration
// (wrong owner, out-of-range slot) so tests and eyes catch it
var ErrorStyle = screen.Style{
	Fg:    screen.RGB{R: 255, G: 255, B: 255},
	Bg:    screen.RGB{R: 200, G: 0, B: 0},
	Attrs: screen.AttrBold,
}

// DefaultTheme builds the stock theme. The disabled style is the text
// color blended toward the background so it reads as dimmed under any
// palette.
func DefaultTheme() *Theme {
	bg := screen.RGB{R: 20, G: 20, B: 30}
	fg := screen.RGB{R: 200, G: 200, B: 200}

	t := &Theme{}
	t.Styles[SlotBackground] = screen.Style{Fg: fg, Bg: bg}
	t.Styles[SlotText] = screen.Style{Fg: fg, Bg: bg}
	t.Styles[SlotFrame] = screen.Style{Fg: screen.RGB{R: 60, G: 80, B: 100}, Bg: bg}
	t.Styles[SlotTitle] = screen.Style{Fg: screen.RGB{R: 255, G: 255, B: 255}, Bg: screen.RGB{R: 40, G: 60, B: 90}, Attrs: screen.AttrBold}
	t.Styles[SlotFocus] = screen.Style{Fg: fg, Bg: screen.RGB{R: 30, G: 35, B: 45}}
	t.Styles[SlotSelect] = screen.Style{Fg: screen.RGB{R: 80, G: 200, B: 80}, Bg: bg}
	t.Styles[SlotDisabled] = screen.Style{Fg: blendToward(fg, bg, 0.6), Bg: bg}
	t.Styles[SlotShortcut] = screen.Style{Fg: screen.RGB{R: 100, G: 180, B: 200}, Bg: bg}
	t.Styles[SlotError] = screen.Style{Fg: screen.RGB{R: 255, G: 80, B: 80}, Bg: bg}
	return t
}

// blendToward mixes a toward b by t in Lab space, which keeps dimmed
// variants perceptually even across hues
func blendToward(a, b screen.RGB, t float64) screen.RGB {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	m := ca.BlendLab(cb, t).Clamped()
	return screen.RGB{
		R: uint8(m.R*255 + 0.5),
		G: uint8(m.G*255 + 0.5),
		B: uint8(m.B*255 + 0.5),
	}
}

// StyleOf resolves a view's color slot through its owner chain. Each
// hop remaps the slot via the current view's palette, then climbs to
// the owning group; the nearest themed group terminates the walk. A
// slot a palette does not cover yields ErrorStyle.
func StyleOf(v View, slot Slot) screen.Style {
	cur := v
	s := slot
	for {
		if p := cur.Palette(); p != nil {
			if int(s) >= len(p) {
				return ErrorStyle
			}
			s = p[s]
		}
		if g, ok := cur.(*Group); ok && g.theme != nil {
			return g.theme.style(s)
		}
		g := cur.owner()
		if g == nil {
			break
		}
		cur = g
	}
	// Detached view with no themed root; stock theme keeps it drawable
	return DefaultTheme().style(s)
}
