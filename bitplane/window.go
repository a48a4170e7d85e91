package bitplane

import (
	"errors"
	"fmt"
	"image"
)

// ErrWindow is returned when a memory window does not fit the canvas.
var ErrWindow = errors.New("bitplane: window out of range")

// WindowBytes returns the pixels of the memory rectangle mr packed row by
// row, each row left aligned on its own ceil(mr.Dx()/8) bytes. Trailing bits
// of the last byte of a row are set to the background.
//
// mr is in memory coordinates; use MemoryRect to map a logical rectangle.
func (c *Canvas) WindowBytes(mr image.Rectangle) ([]byte, error) {
	if err := c.checkWindow(mr); err != nil {
		return nil, err
	}
	n := (mr.Dx() + 7) / 8
	out := make([]byte, n*mr.Dy())
	sb, shift := mr.Min.X>>3, uint(mr.Min.X&7)
	var pad byte
	if r := mr.Dx() & 7; r != 0 {
		pad = 0xFF >> uint(r)
	}
	for y := mr.Min.Y; y < mr.Max.Y; y++ {
		row := c.Pix[y*c.Stride : (y+1)*c.Stride]
		dst := out[(y-mr.Min.Y)*n : (y-mr.Min.Y+1)*n]
		for i := range dst {
			v := row[sb+i] << shift
			if shift > 0 && sb+i+1 < len(row) {
				v |= row[sb+i+1] >> (8 - shift)
			}
			dst[i] = v
		}
		if pad != 0 {
			dst[n-1] = dst[n-1]&^pad | c.bg.fill()&pad
		}
	}
	return out, nil
}

// WriteWindow merges pix, laid out as returned by WindowBytes, into the
// memory rectangle mr. Bits of edge bytes outside mr are left untouched.
func (c *Canvas) WriteWindow(mr image.Rectangle, pix []byte) error {
	if err := c.checkWindow(mr); err != nil {
		return err
	}
	n := (mr.Dx() + 7) / 8
	if len(pix) != n*mr.Dy() {
		return fmt.Errorf("bitplane: window %v needs %d bytes, got %d", mr, n*mr.Dy(), len(pix))
	}
	dx := mr.Dx()
	for y := mr.Min.Y; y < mr.Max.Y; y++ {
		row := c.Pix[y*c.Stride : (y+1)*c.Stride]
		src := pix[(y-mr.Min.Y)*n : (y-mr.Min.Y+1)*n]
		for i, v := range src {
			bits := dx - i*8
			if bits > 8 {
				bits = 8
			}
			m := byte(0xFF << uint(8-bits))
			x := mr.Min.X + i*8
			db, shift := x>>3, uint(x&7)
			merge(&row[db], m>>shift, v>>shift)
			if shift > 0 {
				if lo := m << (8 - shift); lo != 0 {
					merge(&row[db+1], lo, v<<(8-shift))
				}
			}
		}
	}
	return nil
}

// Blit copies the pixels of src into c where their logical bounds overlap.
func (c *Canvas) Blit(src *Canvas) {
	r := src.Rect.Intersect(c.Rect)
	if r.Empty() {
		return
	}
	if c.rot == Rotate0 && src.rot == Rotate0 {
		pix, err := src.WindowBytes(r.Sub(src.Rect.Min))
		if err == nil {
			_ = c.WriteWindow(r.Sub(c.Rect.Min), pix)
			return
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.SetPixel(x, y, src.ColorAt(x, y))
		}
	}
}

// Translate returns a view of c whose logical bounds start at p. The view
// shares Pix with c.
func (c *Canvas) Translate(p image.Point) *Canvas {
	d := *c
	d.Rect = c.Rect.Sub(c.Rect.Min).Add(p)
	return &d
}

func (c *Canvas) checkWindow(mr image.Rectangle) error {
	if mr.Empty() || !mr.In(c.memBounds()) {
		return fmt.Errorf("%w: %v not in %v", ErrWindow, mr, c.memBounds())
	}
	return nil
}

func merge(b *byte, mask, v byte) {
	*b = *b&^mask | v&mask
}
