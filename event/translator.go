package event

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// ESC disambiguation timer bounds. The timeout distinguishes a bare
// ESC press from the start of an Alt-combination or escape sequence.
const (
	DefaultEscTimeout = 500 * time.Millisecond
	MinEscTimeout     = 250 * time.Millisecond
	MaxEscTimeout     = 1500 * time.Millisecond
)

// Double-click window bounds
const (
	DefaultDoubleClickWindow = 400 * time.Millisecond
	MinDoubleClickWindow     = 100 * time.Millisecond
	MaxDoubleClickWindow     = 1000 * time.Millisecond
)

// RangeError reports a configuration value outside its legal range.
// Values are rejected, never silently clamped.
type RangeError struct {
	Param    string
	Value    time.Duration
	Min, Max time.Duration
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %v out of range [%v, %v]", e.Param, e.Value, e.Min, e.Max)
}

// Translator turns raw input chunks into events against an injected
// monotonic clock. One Translator per Backend: concurrent sessions
// must never share ESC-timer or click state.
type Translator struct {
	clock       Clock
	escTimeout  time.Duration
	clickWindow time.Duration

	// Stream assembly buffer; sequences and UTF-8 runes may split
	// across chunk boundaries
	buf []byte

	escPending bool
	escAt      time.Time

	held        MouseButton
	lastDownAt  time.Time
	lastDownX   int
	lastDownY   int
	lastDownBtn MouseButton
}

// Option configures a Translator
type Option func(*Translator) error

// WithClock injects a clock (tests use ManualClock)
func WithClock(c Clock) Option {
	return func(t *Translator) error {
		t.clock = c
		return nil
	}
}

// WithEscTimeout sets the ESC disambiguation timeout
func WithEscTimeout(d time.Duration) Option {
	return func(t *Translator) error {
		return t.SetEscTimeout(d)
	}
}

// WithDoubleClickWindow sets the double-click detection window
func WithDoubleClickWindow(d time.Duration) Option {
	return func(t *Translator) error {
		if d < MinDoubleClickWindow || d > MaxDoubleClickWindow {
			return &RangeError{Param: "double-click window", Value: d,
				Min: MinDoubleClickWindow, Max: MaxDoubleClickWindow}
		}
		t.clickWindow = d
		return nil
	}
}

// NewTranslator creates a translator with its own timer state
func NewTranslator(opts ...Option) (*Translator, error) {
	t := &Translator{
		clock:       systemClock{},
		escTimeout:  DefaultEscTimeout,
		clickWindow: DefaultDoubleClickWindow,
		buf:         make([]byte, 0, 256),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// SetEscTimeout changes the ESC timeout, rejecting out-of-range values
func (t *Translator) SetEscTimeout(d time.Duration) error {
	if d < MinEscTimeout || d > MaxEscTimeout {
		return &RangeError{Param: "esc timeout", Value: d,
			Min: MinEscTimeout, Max: MaxEscTimeout}
	}
	t.escTimeout = d
	return nil
}

// EscTimeout returns the configured ESC timeout
func (t *Translator) EscTimeout() time.Duration {
	return t.escTimeout
}

// Feed appends a raw chunk and returns the events it completes
func (t *Translator) Feed(data []byte) []Event {
	t.buf = append(t.buf, data...)
	return t.parse()
}

// Tick advances the timer state with no new input: a pending ESC whose
// timeout expired is emitted alone. Call on every poll timeout.
func (t *Translator) Tick() []Event {
	if !t.escPending {
		return nil
	}
	if t.clock.Now().Sub(t.escAt) < t.escTimeout {
		return nil
	}
	// The pending ESC is always at the front of the buffer
	evs := []Event{{What: Keyboard, Key: KeyEscape}}
	t.escPending = false
	t.buf = t.buf[1:]
	if len(t.buf) == 0 {
		t.buf = t.buf[:0]
		return evs
	}
	rest := t.parse()
	return append(evs, rest...)
}

// parse consumes as many complete inputs as possible
func (t *Translator) parse() []Event {
	var evs []Event
	now := t.clock.Now()
	data := t.buf
	i, n := 0, len(data)

	for i < n {
		b := data[i]

		if b == 0x1b {
			// Expired pending ESC resolves alone; whatever follows is
			// parsed on its own. Both outcomes of the race are valid.
			if t.escPending && now.Sub(t.escAt) >= t.escTimeout {
				evs = append(evs, Event{What: Keyboard, Key: KeyEscape})
				t.escPending = false
				i++
				continue
			}
			if i+1 >= n {
				if !t.escPending {
					t.escPending = true
					t.escAt = now
				}
				break
			}
			consumed, out := t.parseEscape(data[i:], now)
			if consumed == 0 {
				// Incomplete sequence; the timer stays armed so a
				// stalled prefix still resolves via Tick
				if !t.escPending {
					t.escPending = true
					t.escAt = now
				}
				break
			}
			t.escPending = false
			evs = append(evs, out...)
			i += consumed
			continue
		}

		// Control characters
		if b < 0x20 {
			evs = append(evs, controlEvent(b))
			i++
			continue
		}
		if b == 0x7f {
			evs = append(evs, Event{What: Keyboard, Key: KeyBackspace})
			i++
			continue
		}

		// Printable ASCII
		if b < 0x80 {
			evs = append(evs, Event{What: Keyboard, Key: KeyRune, Rune: rune(b)})
			i++
			continue
		}

		// UTF-8 multibyte, possibly split across chunks
		seqLen := utf8SeqLen(b)
		if seqLen == 0 {
			i++ // invalid start byte
			continue
		}
		if i+seqLen > n {
			break // wait for the rest
		}
		r, size := utf8.DecodeRune(data[i:])
		evs = append(evs, Event{What: Keyboard, Key: KeyRune, Rune: r})
		i += size
	}

	if i > 0 {
		if i >= len(t.buf) {
			t.buf = t.buf[:0]
		} else {
			copy(t.buf, t.buf[i:])
			t.buf = t.buf[:len(t.buf)-i]
		}
	}
	return evs
}

// parseEscape handles a buffer starting with ESC and at least one more
// byte. Returns 0 consumed on incomplete sequences.
func (t *Translator) parseEscape(data []byte, now time.Time) (int, []Event) {
	switch {
	case data[1] == 0x1b:
		// Second ESC inside the window collapses to the panic-exit key
		return 2, []Event{{What: Keyboard, Key: KeyEscapeDouble}}

	case data[1] == '[':
		return t.parseCSI(data, now)

	case data[1] == 'O':
		return t.parseSS3(data)

	case data[1] < 0x20:
		ev := controlEvent(data[1])
		ev.Mods |= ModAlt
		return 2, []Event{ev}

	case data[1] == 0x7f:
		return 2, []Event{{What: Keyboard, Key: KeyBackspace, Mods: ModAlt}}

	case data[1] < 0x80:
		// Printable before the timer expired: Alt-combination
		return 2, []Event{{What: Keyboard, Key: KeyRune, Rune: rune(data[1]), Mods: ModAlt}}

	default:
		seqLen := utf8SeqLen(data[1])
		if seqLen == 0 {
			return 2, nil
		}
		if 1+seqLen > len(data) {
			return 0, nil
		}
		r, size := utf8.DecodeRune(data[1:])
		return 1 + size, []Event{{What: Keyboard, Key: KeyRune, Rune: r, Mods: ModAlt}}
	}
}

// parseCSI decodes a CSI sequence; mouse reports go through the SGR
// decoder, everything else through the key table
func (t *Translator) parseCSI(data []byte, now time.Time) (int, []Event) {
	if len(data) < 3 {
		return 0, nil
	}
	if data[2] == '<' {
		return t.parseSGRMouse(data, now)
	}

	end := 2
	maxScan := min(len(data), 16)
	for end < maxScan {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			end++
			break
		}
		if b < 0x20 || b > 0x7e {
			return 0, nil
		}
		end++
	}
	if end <= 2 || end > maxScan {
		return 0, nil
	}
	last := data[end-1]
	if !((last >= 'A' && last <= 'Z') || (last >= 'a' && last <= 'z') || last == '~') {
		return 0, nil // no terminator yet
	}

	if key, mod, ok := lookupCSI(data[2:end]); ok {
		return end, []Event{{What: Keyboard, Key: key, Mods: mod}}
	}
	// Unknown but well-formed CSI: swallow it
	return end, nil
}

// parseSS3 decodes an SS3 sequence (ESC O x)
func (t *Translator) parseSS3(data []byte) (int, []Event) {
	if len(data) < 3 {
		return 0, nil
	}
	if key, mod, ok := lookupSS3(data[2:3]); ok {
		return 3, []Event{{What: Keyboard, Key: key, Mods: mod}}
	}
	return 3, nil // unknown SS3, swallow
}

// parseSGRMouse decodes ESC [ < Btn ; X ; Y M/m
func (t *Translator) parseSGRMouse(data []byte, now time.Time) (int, []Event) {
	end := 3
	for end < len(data) && end < 32 {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end >= len(data) || (data[end] != 'M' && data[end] != 'm') {
		return 0, nil
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return end + 1, nil
	}
	x-- // 1-indexed on the wire
	y--

	var mods Modifier
	if btn&4 != 0 {
		mods |= ModShift
	}
	if btn&8 != 0 {
		mods |= ModAlt
	}
	if btn&16 != 0 {
		mods |= ModCtrl
	}

	buttonID := btn & 0x03
	isMotion := btn&32 != 0
	isScroll := btn&64 != 0

	switch {
	case isScroll:
		wheel := 1
		if buttonID == 1 {
			wheel = -1
		}
		return end + 1, []Event{{What: MouseWheel, X: x, Y: y, Wheel: wheel, Mods: mods}}

	case isMotion:
		return end + 1, []Event{{What: MouseMove, X: x, Y: y, Button: t.held, Mods: mods}}

	case data[end] == 'M':
		bit := buttonBit(buttonID)
		ev := Event{What: MouseDown, X: x, Y: y, Button: bit, Mods: mods}
		if bit == t.lastDownBtn && x == t.lastDownX && y == t.lastDownY &&
			now.Sub(t.lastDownAt) <= t.clickWindow {
			ev.Double = true
		}
		t.lastDownBtn = bit
		t.lastDownX = x
		t.lastDownY = y
		t.lastDownAt = now
		t.held |= bit
		return end + 1, []Event{ev}

	default:
		bit := buttonBit(buttonID)
		if bit == MouseBtnNone {
			bit = t.held
		}
		t.held &^= bit
		return end + 1, []Event{{What: MouseUp, X: x, Y: y, Button: bit, Mods: mods}}
	}
}

// buttonBit maps an SGR button id to its bitmask
func buttonBit(id int) MouseButton {
	switch id {
	case 0:
		return MouseBtnLeft
	case 1:
		return MouseBtnMiddle
	case 2:
		return MouseBtnRight
	}
	return MouseBtnNone
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y"
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0
	val := 0
	for _, b := range data {
		switch {
		case b == ';':
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			default:
				return 0, 0, 0, false
			}
			state++
			val = 0
		case b >= '0' && b <= '9':
			val = val*10 + int(b-'0')
			if val > 9999 {
				return 0, 0, 0, false
			}
		default:
			return 0, 0, 0, false
		}
	}
	if state != 2 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}

// controlEvent maps a control byte to its key
func controlEvent(b byte) Event {
	switch b {
	case 0x00:
		return Event{What: Keyboard, Key: KeyCtrlSpace}
	case 0x08:
		return Event{What: Keyboard, Key: KeyBackspace}
	case 0x09:
		return Event{What: Keyboard, Key: KeyTab}
	case 0x0a, 0x0d:
		return Event{What: Keyboard, Key: KeyEnter}
	case 0x1b:
		return Event{What: Keyboard, Key: KeyEscape}
	case 0x1c:
		return Event{What: Keyboard, Key: KeyCtrlBackslash}
	case 0x1d:
		return Event{What: Keyboard, Key: KeyCtrlBracketRight}
	case 0x1e:
		return Event{What: Keyboard, Key: KeyCtrlCaret}
	case 0x1f:
		return Event{What: Keyboard, Key: KeyCtrlUnderscore}
	}
	if b >= 0x01 && b <= 0x1a {
		return Event{What: Keyboard, Key: KeyCtrlA + Key(b-0x01)}
	}
	return Event{What: Keyboard, Key: KeyNone}
}

// utf8SeqLen returns the expected UTF-8 length from a start byte,
// 0 if invalid
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	}
	return 0
}
