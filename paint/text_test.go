package paint

import (
	"testing"

	"github.com/flavioheleno/epd7in5b/bitplane"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// digitFont is a 4x5 font covering ' ' through 'F' with glyphs for '5' and
// 'F' only.
func digitFont() *Font {
	glyphs := map[rune][]string{
		'5': {
			"####",
			"#...",
			"###.",
			"...#",
			"###.",
		},
		'F': {
			"####",
			"#...",
			"###.",
			"#...",
			"#...",
		},
	}
	f := &Font{Width: 4, Height: 5, First: ' '}
	f.Table = make([]byte, f.glyphSize()*int('F'-' '+1))
	for r, rows := range glyphs {
		g := f.glyph(r)
		for y, row := range rows {
			for x, ch := range row {
				if ch == '#' {
					g[y*f.rowSize()+x/8] |= 0x80 >> uint(x%8)
				}
			}
		}
	}
	return f
}

func TestTextBitmap(t *testing.T) {
	c := newCanvas(t, 18, 6, bitplane.White)
	adv := Text(c, 0, 0, "55 F", digitFont(), bitplane.Black, bitplane.White)

	assert.Equal(t, 16, adv)
	assert.Equal(t, []string{
		"########....####..",
		"#...#.......#.....",
		"###.###.....###...",
		"...#...#....#.....",
		"###.###.....#.....",
		"..................",
	}, render(c))
}

func TestTextTransparentBackground(t *testing.T) {
	c := newCanvas(t, 8, 5, bitplane.Black)
	Text(c, 0, 0, "5F", digitFont(), bitplane.White, bitplane.Transparent)
	assert.Equal(t, []string{
		"........",
		".###.###",
		"...#...#",
		"###..###",
		"...#.###",
	}, render(c))
}

func TestTextOpaqueBackgroundOverwrites(t *testing.T) {
	c := newCanvas(t, 4, 5, bitplane.Black)
	Text(c, 0, 0, " ", digitFont(), bitplane.Black, bitplane.White)
	for _, row := range render(c) {
		assert.Equal(t, "....", row)
	}
}

func TestTextClipped(t *testing.T) {
	c := newCanvas(t, 6, 3, bitplane.White)
	adv := Text(c, 3, 1, "55", digitFont(), bitplane.Black, bitplane.White)
	assert.Equal(t, 8, adv)
	assert.Equal(t, []string{
		"......",
		"...###",
		"...#..",
	}, render(c))
}

func TestTextMissingGlyph(t *testing.T) {
	c := newCanvas(t, 8, 5, bitplane.Black)
	adv := Text(c, 0, 0, "zé", digitFont(), bitplane.Black, bitplane.White)
	assert.Equal(t, 8, adv)
	assert.Empty(t, blackPixels(c))
}

func TestNumber(t *testing.T) {
	c := newCanvas(t, 12, 5, bitplane.White)
	adv := Number(c, 0, 0, 55, digitFont(), bitplane.Black, bitplane.White)
	assert.Equal(t, 8, adv)
	assert.Equal(t, "########....", render(c)[0])

	assert.Equal(t, 28, Number(c, 0, 0, -123, Font7x13, bitplane.Black, bitplane.White))
}

func TestTextWidth(t *testing.T) {
	assert.Equal(t, 0, TextWidth(Font7x13, ""))
	assert.Equal(t, 91, TextWidth(Font7x13, "Local Weather"))
	assert.Equal(t, 8, TextWidth(digitFont(), "5°"))
}

func TestFont7x13(t *testing.T) {
	f := Font7x13
	assert.Equal(t, 7, f.Width)
	assert.Equal(t, 13, f.Height)
	assert.True(t, f.Has(' '))
	assert.True(t, f.Has('~'))
	assert.False(t, f.Has('é'))
	assert.False(t, f.Has('\n'))

	ink := func(r rune) int {
		n := 0
		for y := 0; y < f.Height; y++ {
			for x := 0; x < f.Width; x++ {
				if f.Pixel(r, x, y) {
					n++
				}
			}
		}
		return n
	}
	assert.Zero(t, ink(' '))
	assert.NotZero(t, ink('5'))
	assert.NotZero(t, ink('F'))
	for y := 0; y < f.Height; y++ {
		assert.False(t, f.Pixel('F', 6, y), "column 6 is inter-glyph spacing")
	}
}

func TestFont7x13Text(t *testing.T) {
	c := newCanvas(t, 40, 13, bitplane.White)
	adv := Text(c, 0, 0, "55 F", Font7x13, bitplane.Black, bitplane.White)
	require.Equal(t, 28, adv)

	for i, r := range "55 F" {
		for y := 0; y < 13; y++ {
			for x := 0; x < 7; x++ {
				want := bitplane.White
				if Font7x13.Pixel(r, x, y) {
					want = bitplane.Black
				}
				assert.Equal(t, want, c.ColorAt(i*7+x, y), "glyph %q at (%d, %d)", r, x, y)
			}
		}
	}
}

func TestScale(t *testing.T) {
	f := digitFont()
	s := Scale(f, 3)
	assert.Equal(t, 12, s.Width)
	assert.Equal(t, 15, s.Height)
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			assert.Equal(t, f.Pixel('5', x/3, y/3), s.Pixel('5', x, y))
		}
	}
	assert.Same(t, f, Scale(f, 1))
	assert.Equal(t, 14, Font14x26.Width)
	assert.Equal(t, 26, Font14x26.Height)
}
