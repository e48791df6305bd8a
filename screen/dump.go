package screen

import (
	"bufio"
	"fmt"
	"io"
)

// Dump serializes the front grid row by row in a human-diffable text
// form: the glyphs of each row, then per-row style runs as
// "y: [x0-x1) fg=RRGGBB bg=RRGGBB attrs=N". Debugging aid only; the
// format is not a compatibility contract.
func (c *Compositor) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "size %dx%d\n", c.width, c.height)
	for y := 0; y < c.height; y++ {
		bw.WriteByte('|')
		for x := 0; x < c.width; x++ {
			r := c.front[y*c.width+x].Rune
			if r == 0 {
				r = ' '
			}
			bw.WriteRune(r)
		}
		bw.WriteString("|\n")
	}

	for y := 0; y < c.height; y++ {
		x := 0
		for x < c.width {
			start := x
			st := c.front[y*c.width+x].Style
			for x < c.width && c.front[y*c.width+x].Style == st {
				x++
			}
			if (st != Style{}) {
				fmt.Fprintf(bw, "%d: [%d-%d) fg=%02X%02X%02X bg=%02X%02X%02X attrs=%d\n",
					y, start, x,
					st.Fg.R, st.Fg.G, st.Fg.B,
					st.Bg.R, st.Bg.G, st.Bg.B,
					st.Attrs)
			}
		}
	}

	return bw.Flush()
}
