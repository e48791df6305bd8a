package view

import (
	"testing"

	"github.com/cellforge/vista/screen"
)

func TestStyleResolvesThroughOwnerChain(t *testing.T) {
	theme := DefaultTheme()
	root := NewGroup(screen.NewRect(0, 0, 80, 24))
	root.SetTheme(theme)

	window := NewGroup(screen.NewRect(5, 5, 40, 10))
	root.Add(window)

	w := newSpy(screen.NewRect(1, 1, 10, 1), false)
	window.Add(w)

	got := StyleOf(w, SlotText)
	if got != theme.Styles[SlotText] {
		t.Errorf("nested view did not resolve to the root theme")
	}
}

func TestPaletteRemapsSlots(t *testing.T) {
	theme := DefaultTheme()
	root := NewGroup(screen.NewRect(0, 0, 80, 24))
	root.SetTheme(theme)

	// A view whose local "text" slot maps to the owner's select slot
	w := newSpy(screen.NewRect(0, 0, 10, 1), false)
	w.SetPalette(Palette{SlotBackground, SlotSelect})
	root.Add(w)

	got := StyleOf(w, SlotText)
	if got != theme.Styles[SlotSelect] {
		t.Errorf("palette remap ignored: got %+v", got)
	}
}

func TestMissingSlotYieldsErrorStyle(t *testing.T) {
	root := NewGroup(screen.NewRect(0, 0, 80, 24))
	root.SetTheme(DefaultTheme())

	// Palette covers only two slots; asking for a higher one is the
	// wrong-owner caller bug and must surface loudly
	w := newSpy(screen.NewRect(0, 0, 10, 1), false)
	w.SetPalette(Palette{SlotBackground, SlotText})
	root.Add(w)

	if got := StyleOf(w, SlotFrame); got != ErrorStyle {
		t.Errorf("out-of-range slot did not resolve to ErrorStyle: %+v", got)
	}
}

func TestDetachedViewFallsBackToDefaultTheme(t *testing.T) {
	w := newSpy(screen.NewRect(0, 0, 10, 1), false)
	got := StyleOf(w, SlotText)
	if got != DefaultTheme().Styles[SlotText] {
		t.Errorf("detached view did not fall back to the stock theme")
	}
}

func TestThemedSubtreeShortCircuits(t *testing.T) {
	root := NewGroup(screen.NewRect(0, 0, 80, 24))
	root.SetTheme(DefaultTheme())

	alt := &Theme{}
	alt.Styles[SlotText] = screen.Style{Fg: screen.RGB{R: 1, G: 2, B: 3}}
	pane := NewGroup(screen.NewRect(0, 0, 40, 24))
	pane.SetTheme(alt)
	root.Add(pane)

	w := newSpy(screen.NewRect(0, 0, 10, 1), false)
	pane.Add(w)

	if got := StyleOf(w, SlotText); got != alt.Styles[SlotText] {
		t.Errorf("nearest themed group did not win: %+v", got)
	}
}

func TestDisabledStyleIsBlend(t *testing.T) {
	th := DefaultTheme()
	d := th.Styles[SlotDisabled].Fg
	fg := th.Styles[SlotText].Fg
	bg := th.Styles[SlotBackground].Bg
	if d == fg || d == bg {
		t.Errorf("disabled foreground not blended: %+v", d)
	}
}
