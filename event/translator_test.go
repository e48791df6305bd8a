package event

import (
	"errors"
	"testing"
	"time"
)

func newTestTranslator(t *testing.T, clock Clock) *Translator {
	t.Helper()
	tr, err := NewTranslator(WithClock(clock))
	if err != nil {
		t.Fatalf("NewTranslator: %v", err)
	}
	return tr
}

func TestBareEscapeResolvesOnTick(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	evs := tr.Feed([]byte{0x1b})
	if len(evs) != 0 {
		t.Fatalf("expected no events while ESC pending, got %d", len(evs))
	}

	// Just under the timeout: still pending
	clock.Advance(DefaultEscTimeout - time.Millisecond)
	if evs = tr.Tick(); len(evs) != 0 {
		t.Fatalf("ESC resolved before timeout: %v", evs)
	}

	// At the boundary: resolves alone
	clock.Advance(time.Millisecond)
	evs = tr.Tick()
	if len(evs) != 1 || evs[0].Key != KeyEscape {
		t.Fatalf("expected bare KeyEscape, got %v", evs)
	}

	// No double emission
	if evs = tr.Tick(); len(evs) != 0 {
		t.Errorf("ESC emitted twice: %v", evs)
	}
}

func TestEscThenPrintableJustUnderTimeout(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	tr.Feed([]byte{0x1b})
	clock.Advance(DefaultEscTimeout - time.Millisecond)

	evs := tr.Feed([]byte("f"))
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %d", len(evs))
	}
	ev := evs[0]
	if ev.Key != KeyRune || ev.Rune != 'f' || ev.Mods != ModAlt {
		t.Errorf("expected Alt+f, got key=%d rune=%q mods=%d", ev.Key, ev.Rune, ev.Mods)
	}
}

func TestEscThenPrintableAfterTimeout(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	tr.Feed([]byte{0x1b})
	clock.Advance(DefaultEscTimeout)

	evs := tr.Feed([]byte("f"))
	if len(evs) != 2 {
		t.Fatalf("expected 2 events, got %d: %v", len(evs), evs)
	}
	if evs[0].Key != KeyEscape {
		t.Errorf("expected bare KeyEscape first, got %v", evs[0])
	}
	if evs[1].Key != KeyRune || evs[1].Rune != 'f' || evs[1].Mods != ModNone {
		t.Errorf("expected plain 'f' second, got %v", evs[1])
	}
}

func TestDoubleEscapeWithinWindow(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	tr.Feed([]byte{0x1b})
	clock.Advance(100 * time.Millisecond)
	evs := tr.Feed([]byte{0x1b})
	if len(evs) != 1 || evs[0].Key != KeyEscapeDouble {
		t.Fatalf("expected KeyEscapeDouble, got %v", evs)
	}
}

func TestDoubleEscapeSingleChunk(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	evs := tr.Feed([]byte{0x1b, 0x1b})
	if len(evs) != 1 || evs[0].Key != KeyEscapeDouble {
		t.Fatalf("expected KeyEscapeDouble, got %v", evs)
	}
}

func TestTwoEscapesOutsideWindow(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	tr.Feed([]byte{0x1b})
	clock.Advance(DefaultEscTimeout + 10*time.Millisecond)
	evs := tr.Feed([]byte{0x1b})
	if len(evs) != 1 || evs[0].Key != KeyEscape {
		t.Fatalf("expected first ESC alone, got %v", evs)
	}

	clock.Advance(DefaultEscTimeout)
	evs = tr.Tick()
	if len(evs) != 1 || evs[0].Key != KeyEscape {
		t.Fatalf("expected second ESC alone, got %v", evs)
	}
}

func TestArrowKeySequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   Key
		mods  Modifier
	}{
		{"csi up", "\x1b[A", KeyUp, ModNone},
		{"csi down", "\x1b[B", KeyDown, ModNone},
		{"ss3 right", "\x1bOC", KeyRight, ModNone},
		{"shift tab", "\x1b[Z", KeyBacktab, ModShift},
		{"ctrl left", "\x1b[1;5D", KeyLeft, ModCtrl},
		{"alt up", "\x1b[1;3A", KeyUp, ModAlt},
		{"delete", "\x1b[3~", KeyDelete, ModNone},
		{"f5", "\x1b[15~", KeyF5, ModNone},
		{"ss3 f1", "\x1bOP", KeyF1, ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewManualClock(time.Unix(0, 0))
			tr := newTestTranslator(t, clock)
			evs := tr.Feed([]byte(tt.input))
			if len(evs) != 1 {
				t.Fatalf("expected 1 event, got %d: %v", len(evs), evs)
			}
			if evs[0].Key != tt.key || evs[0].Mods != tt.mods {
				t.Errorf("got key=%d mods=%d, want key=%d mods=%d",
					evs[0].Key, evs[0].Mods, tt.key, tt.mods)
			}
		})
	}
}

func TestSequenceSplitAcrossChunks(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	if evs := tr.Feed([]byte("\x1b[")); len(evs) != 0 {
		t.Fatalf("partial CSI produced events: %v", evs)
	}
	evs := tr.Feed([]byte("A"))
	if len(evs) != 1 || evs[0].Key != KeyUp {
		t.Fatalf("expected KeyUp after completing chunk, got %v", evs)
	}
}

func TestStalledCSIPrefixResolvesViaTick(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	tr.Feed([]byte("\x1b["))
	clock.Advance(DefaultEscTimeout)
	evs := tr.Tick()
	if len(evs) != 2 {
		t.Fatalf("expected ESC + '[' fallback, got %v", evs)
	}
	if evs[0].Key != KeyEscape {
		t.Errorf("expected KeyEscape first, got %v", evs[0])
	}
	if evs[1].Key != KeyRune || evs[1].Rune != '[' {
		t.Errorf("expected literal '[' second, got %v", evs[1])
	}
}

func TestUTF8SplitAcrossChunks(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	full := []byte("世") // 3 bytes
	if evs := tr.Feed(full[:2]); len(evs) != 0 {
		t.Fatalf("partial rune produced events: %v", evs)
	}
	evs := tr.Feed(full[2:])
	if len(evs) != 1 || evs[0].Rune != '世' {
		t.Fatalf("expected rune 世, got %v", evs)
	}
}

func TestControlBytes(t *testing.T) {
	tests := []struct {
		in  byte
		key Key
	}{
		{0x03, KeyCtrlC},
		{0x01, KeyCtrlA},
		{0x1a, KeyCtrlZ},
		{0x09, KeyTab},
		{0x0d, KeyEnter},
		{0x0a, KeyEnter},
		{0x08, KeyBackspace},
		{0x7f, KeyBackspace},
		{0x00, KeyCtrlSpace},
	}
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)
	for _, tt := range tests {
		evs := tr.Feed([]byte{tt.in})
		if len(evs) != 1 || evs[0].Key != tt.key {
			t.Errorf("byte 0x%02x: got %v, want key %d", tt.in, evs, tt.key)
		}
	}
}

func TestAltControl(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)
	evs := tr.Feed([]byte{0x1b, 0x04})
	if len(evs) != 1 || evs[0].Key != KeyCtrlD || evs[0].Mods != ModAlt {
		t.Fatalf("expected Alt+Ctrl+D, got %v", evs)
	}
}

func TestSGRMousePressRelease(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	evs := tr.Feed([]byte("\x1b[<0;10;5M"))
	if len(evs) != 1 {
		t.Fatalf("expected 1 event, got %v", evs)
	}
	ev := evs[0]
	if ev.What != MouseDown || ev.X != 9 || ev.Y != 4 || ev.Button != MouseBtnLeft {
		t.Errorf("down: got %+v", ev)
	}
	if ev.Double {
		t.Errorf("first press flagged double")
	}

	evs = tr.Feed([]byte("\x1b[<0;10;5m"))
	if len(evs) != 1 || evs[0].What != MouseUp || evs[0].Button != MouseBtnLeft {
		t.Fatalf("up: got %v", evs)
	}
}

func TestSGRMouseDoubleClick(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	press := []byte("\x1b[<0;10;5M")
	release := []byte("\x1b[<0;10;5m")

	tr.Feed(press)
	tr.Feed(release)
	clock.Advance(200 * time.Millisecond)
	evs := tr.Feed(press)
	if len(evs) != 1 || !evs[0].Double {
		t.Fatalf("expected double click, got %v", evs)
	}
	tr.Feed(release)

	// Outside the window: single again
	clock.Advance(DefaultDoubleClickWindow + time.Millisecond)
	evs = tr.Feed(press)
	if len(evs) != 1 || evs[0].Double {
		t.Fatalf("expected single click outside window, got %v", evs)
	}
}

func TestSGRMouseDoubleClickRequiresSamePosition(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	tr.Feed([]byte("\x1b[<0;10;5M"))
	tr.Feed([]byte("\x1b[<0;10;5m"))
	clock.Advance(100 * time.Millisecond)
	evs := tr.Feed([]byte("\x1b[<0;11;5M"))
	if len(evs) != 1 || evs[0].Double {
		t.Fatalf("moved press flagged double: %v", evs)
	}
}

func TestSGRMouseMotionCarriesHeldButtons(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	tr.Feed([]byte("\x1b[<0;3;3M"))
	evs := tr.Feed([]byte("\x1b[<32;4;3M"))
	if len(evs) != 1 || evs[0].What != MouseMove || evs[0].Button != MouseBtnLeft {
		t.Fatalf("drag: got %v", evs)
	}

	tr.Feed([]byte("\x1b[<0;4;3m"))
	evs = tr.Feed([]byte("\x1b[<35;5;3M"))
	if len(evs) != 1 || evs[0].What != MouseMove || evs[0].Button != MouseBtnNone {
		t.Fatalf("hover after release: got %v", evs)
	}
}

func TestSGRMouseWheel(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	evs := tr.Feed([]byte("\x1b[<64;8;8M"))
	if len(evs) != 1 || evs[0].What != MouseWheel || evs[0].Wheel != 1 {
		t.Fatalf("wheel up: got %v", evs)
	}
	evs = tr.Feed([]byte("\x1b[<65;8;8M"))
	if len(evs) != 1 || evs[0].What != MouseWheel || evs[0].Wheel != -1 {
		t.Fatalf("wheel down: got %v", evs)
	}
}

func TestSetEscTimeoutRange(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	for _, d := range []time.Duration{MinEscTimeout, MaxEscTimeout, 700 * time.Millisecond} {
		if err := tr.SetEscTimeout(d); err != nil {
			t.Errorf("SetEscTimeout(%v) rejected: %v", d, err)
		}
		if tr.EscTimeout() != d {
			t.Errorf("EscTimeout() = %v, want %v", tr.EscTimeout(), d)
		}
	}

	for _, d := range []time.Duration{MinEscTimeout - time.Millisecond, MaxEscTimeout + time.Millisecond, 0} {
		err := tr.SetEscTimeout(d)
		if err == nil {
			t.Errorf("SetEscTimeout(%v) accepted out-of-range value", d)
			continue
		}
		var re *RangeError
		if !errors.As(err, &re) {
			t.Errorf("SetEscTimeout(%v): want RangeError, got %T", d, err)
		}
	}
}

func TestConstructorOptionRangeErrors(t *testing.T) {
	if _, err := NewTranslator(WithEscTimeout(10 * time.Millisecond)); err == nil {
		t.Errorf("WithEscTimeout accepted out-of-range value")
	}
	if _, err := NewTranslator(WithDoubleClickWindow(5 * time.Second)); err == nil {
		t.Errorf("WithDoubleClickWindow accepted out-of-range value")
	}
}

func TestTickWithoutPendingEscape(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)
	if evs := tr.Tick(); len(evs) != 0 {
		t.Errorf("idle Tick produced events: %v", evs)
	}
}

func TestMixedChunk(t *testing.T) {
	clock := NewManualClock(time.Unix(0, 0))
	tr := newTestTranslator(t, clock)

	evs := tr.Feed([]byte("ab\x1b[Ac"))
	if len(evs) != 4 {
		t.Fatalf("expected 4 events, got %d: %v", len(evs), evs)
	}
	if evs[0].Rune != 'a' || evs[1].Rune != 'b' || evs[2].Key != KeyUp || evs[3].Rune != 'c' {
		t.Errorf("unexpected sequence: %v", evs)
	}
}
