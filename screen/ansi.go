package screen

// Pre-built ANSI fragments (avoid per-frame formatting)
var (
	seqCSI  = []byte("\x1b[")
	seqSGR0 = []byte("\x1b[0m")
)

// appendInt appends a non-negative decimal without allocation.
// Terminal parameters rarely exceed three digits.
func appendInt(buf []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		return append(buf, byte(n)+'0')
	}
	if n < 100 {
		return append(buf, byte(n/10)+'0', byte(n%10)+'0')
	}
	if n < 1000 {
		return append(buf, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	var tmp [8]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte(n%10) + '0'
		n /= 10
	}
	return append(buf, tmp[i:]...)
}

// appendCursorPos appends a cursor positioning sequence (0-indexed input)
func appendCursorPos(buf []byte, x, y int) []byte {
	buf = append(buf, seqCSI...)
	buf = appendInt(buf, y+1)
	buf = append(buf, ';')
	buf = appendInt(buf, x+1)
	return append(buf, 'H')
}

// appendCursorForward appends a cursor-forward motion of n columns
func appendCursorForward(buf []byte, n int) []byte {
	if n <= 0 {
		return buf
	}
	buf = append(buf, seqCSI...)
	if n > 1 {
		buf = appendInt(buf, n)
	}
	return append(buf, 'C')
}

// sgrAttrCodes maps attribute bits to their SGR parameter bytes
var sgrAttrCodes = [...]struct {
	attr Attr
	code byte
}{
	{AttrBold, '1'},
	{AttrDim, '2'},
	{AttrItalic, '3'},
	{AttrUnderline, '4'},
	{AttrBlink, '5'},
	{AttrReverse, '7'},
}

// appendStyle appends a full SGR reset+style sequence for the given style
func appendStyle(buf []byte, s Style, mode ColorMode) []byte {
	buf = append(buf, seqCSI...)
	buf = append(buf, '0')
	for _, c := range sgrAttrCodes {
		if s.Attrs&c.attr != 0 {
			buf = append(buf, ';', c.code)
		}
	}
	buf = append(buf, ';')
	buf = appendFgParams(buf, s.Fg, mode)
	buf = append(buf, ';')
	buf = appendBgParams(buf, s.Bg, mode)
	return append(buf, 'm')
}

// appendFgParams appends foreground color parameters (no CSI, no 'm')
func appendFgParams(buf []byte, c RGB, mode ColorMode) []byte {
	if mode == ColorModeTrueColor {
		buf = append(buf, "38;2;"...)
		buf = appendInt(buf, int(c.R))
		buf = append(buf, ';')
		buf = appendInt(buf, int(c.G))
		buf = append(buf, ';')
		return appendInt(buf, int(c.B))
	}
	buf = append(buf, "38;5;"...)
	return appendInt(buf, int(RGBTo256(c)))
}

// appendBgParams appends background color parameters (no CSI, no 'm')
func appendBgParams(buf []byte, c RGB, mode ColorMode) []byte {
	if mode == ColorModeTrueColor {
		buf = append(buf, "48;2;"...)
		buf = appendInt(buf, int(c.R))
		buf = append(buf, ';')
		buf = appendInt(buf, int(c.G))
		buf = append(buf, ';')
		return appendInt(buf, int(c.B))
	}
	buf = append(buf, "48;5;"...)
	return appendInt(buf, int(RGBTo256(c)))
}
