package paint

import (
	"strconv"
	"unicode/utf8"

	"github.com/flavioheleno/epd7in5b/bitplane"
)

// Text draws str left to right starting with the top-left of the first cell
// at (x, y) and returns the horizontal advance. Ink pixels are drawn in fg
// and the rest of each cell in bg; pass bitplane.Transparent as bg to leave
// it untouched. There is no wrapping: cells past the surface edge are
// clipped. Runes missing from the font are drawn as empty cells.
func Text(s Surface, x, y int, str string, f *Font, fg, bg bitplane.Color) int {
	cx := x
	for _, r := range str {
		drawGlyph(s, cx, y, r, f, fg, bg)
		cx += f.Width
	}
	return cx - x
}

// Number draws the decimal representation of v.
func Number(s Surface, x, y int, v int64, f *Font, fg, bg bitplane.Color) int {
	return Text(s, x, y, strconv.FormatInt(v, 10), f, fg, bg)
}

// TextWidth returns the advance of str in f.
func TextWidth(f *Font, str string) int {
	return f.Width * utf8.RuneCountInString(str)
}

func drawGlyph(s Surface, x, y int, r rune, f *Font, fg, bg bitplane.Color) {
	if !f.Has(r) {
		if bg != bitplane.Transparent {
			s.FillRect(f.Bounds(x, y), bg)
		}
		return
	}
	g := f.glyph(r)
	rs := f.rowSize()
	for row := 0; row < f.Height; row++ {
		line := g[row*rs : (row+1)*rs]
		for col := 0; col < f.Width; col++ {
			if line[col/8]&(0x80>>uint(col%8)) != 0 {
				s.SetPixel(x+col, y+row, fg)
			} else {
				s.SetPixel(x+col, y+row, bg)
			}
		}
	}
}
