package paint

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Font is a fixed-cell bitmap font.
//
// Table holds consecutive glyphs starting at First. Each glyph is Height
// rows of (Width+7)/8 bytes, leftmost pixel in the most significant bit.
type Font struct {
	Width  int
	Height int
	First  rune
	Table  []byte
}

// Font7x13 is golang.org/x/image/font/basicfont.Face7x13 as a bitmap font
// covering printable ASCII.
var Font7x13 = mustFromFace(basicfont.Face7x13)

// Font14x26 is Font7x13 scaled by two, sized for headline values.
var Font14x26 = Scale(Font7x13, 2)

// FromFace rasterizes the printable ASCII glyphs of a monospaced face into
// a Font. Glyph pixels with at least half coverage are set.
func FromFace(face font.Face) (*Font, error) {
	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	height := ascent + m.Descent.Ceil()
	adv, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, errors.New("paint: face has no glyph for 'M'")
	}
	f := &Font{Width: adv.Ceil(), Height: height, First: ' '}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("paint: invalid face cell %dx%d", f.Width, f.Height)
	}
	f.Table = make([]byte, f.glyphSize()*('~'-' '+1))
	for r := f.First; r <= '~'; r++ {
		dr, mask, maskp, _, ok := face.Glyph(fixed.P(0, ascent), r)
		if !ok {
			continue
		}
		g := f.glyph(r)
		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			for x := dr.Min.X; x < dr.Max.X; x++ {
				if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
					continue
				}
				_, _, _, a := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
				if a > 0x7FFF {
					g[y*f.rowSize()+x/8] |= 0x80 >> uint(x%8)
				}
			}
		}
	}
	return f, nil
}

func mustFromFace(face font.Face) *Font {
	f, err := FromFace(face)
	if err != nil {
		panic(err)
	}
	return f
}

// Scale returns a copy of f with every pixel enlarged to n x n.
func Scale(f *Font, n int) *Font {
	if n <= 1 {
		return f
	}
	s := &Font{Width: f.Width * n, Height: f.Height * n, First: f.First}
	count := len(f.Table) / f.glyphSize()
	s.Table = make([]byte, s.glyphSize()*count)
	for i := 0; i < count; i++ {
		r := f.First + rune(i)
		src, dst := f.glyph(r), s.glyph(r)
		for y := 0; y < s.Height; y++ {
			for x := 0; x < s.Width; x++ {
				sx, sy := x/n, y/n
				if src[sy*f.rowSize()+sx/8]&(0x80>>uint(sx%8)) != 0 {
					dst[y*s.rowSize()+x/8] |= 0x80 >> uint(x%8)
				}
			}
		}
	}
	return s
}

// Bounds returns the cell of one glyph drawn at (x, y).
func (f *Font) Bounds(x, y int) image.Rectangle {
	return image.Rect(x, y, x+f.Width, y+f.Height)
}

// Has reports whether f has a glyph for r.
func (f *Font) Has(r rune) bool {
	i := int(r - f.First)
	return r >= f.First && (i+1)*f.glyphSize() <= len(f.Table)
}

// Pixel reports whether pixel (x, y) of the glyph for r is ink.
func (f *Font) Pixel(r rune, x, y int) bool {
	if !f.Has(r) || x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return false
	}
	return f.glyph(r)[y*f.rowSize()+x/8]&(0x80>>uint(x%8)) != 0
}

func (f *Font) rowSize() int {
	return (f.Width + 7) / 8
}

func (f *Font) glyphSize() int {
	return f.rowSize() * f.Height
}

func (f *Font) glyph(r rune) []byte {
	off := int(r-f.First) * f.glyphSize()
	return f.Table[off : off+f.glyphSize()]
}

func (f *Font) String() string {
	return fmt.Sprintf("paint.Font{%dx%d}", f.Width, f.Height)
}
