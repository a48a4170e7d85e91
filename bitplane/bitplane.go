package bitplane

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// MaxPixels is the largest plane New will allocate.
const MaxPixels = 1 << 26

// ErrAllocation is returned when a canvas buffer cannot be obtained.
var ErrAllocation = errors.New("bitplane: cannot allocate canvas")

// Canvas is a packed 1-bit-per-pixel plane.
//
// Coordinates passed to drawing methods are logical: they are relative to
// Rect and follow the canvas rotation. Pix is always laid out in memory
// (panel) orientation, Stride bytes per memory row.
type Canvas struct {
	Pix    []byte          // Packed pixels, 8 per byte, MSB first
	Stride int             // Bytes per memory row
	Rect   image.Rectangle // Logical bounds

	rot  Rotation
	w, h int // Memory geometry in pixels
	bg   Color
}

// New creates an unrotated canvas whose logical bounds are r, filled with bg.
//
// r does not need to start at the origin: a scratch canvas for a partial
// window can be created directly at the window position.
func New(r image.Rectangle, bg Color) (*Canvas, error) {
	r = r.Canon()
	return alloc(r, r.Dx(), r.Dy(), Rotate0, bg)
}

// NewRotated creates a canvas for a w x h panel seen through rotation rot.
//
// For Rotate90 and Rotate270 the logical bounds are h x w.
func NewRotated(w, h int, rot Rotation, bg Color) (*Canvas, error) {
	if rot > Rotate270 {
		return nil, fmt.Errorf("bitplane: invalid rotation %d", rot)
	}
	lw, lh := w, h
	if rot.swapsAxes() {
		lw, lh = h, w
	}
	return alloc(image.Rect(0, 0, lw, lh), w, h, rot, bg)
}

func alloc(r image.Rectangle, w, h int, rot Rotation, bg Color) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: empty geometry %dx%d", ErrAllocation, w, h)
	}
	if w > MaxPixels/h {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrAllocation, w, h, MaxPixels)
	}
	if bg != Black && bg != White {
		return nil, fmt.Errorf("bitplane: invalid background %v", bg)
	}
	stride := (w + 7) / 8
	c := &Canvas{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
		rot:    rot,
		w:      w,
		h:      h,
		bg:     bg,
	}
	c.Fill(bg)
	return c, nil
}

// Bounds returns the logical bounds.
func (c *Canvas) Bounds() image.Rectangle {
	return c.Rect
}

// Size returns the memory geometry in pixels.
func (c *Canvas) Size() image.Point {
	return image.Point{X: c.w, Y: c.h}
}

// Rotation returns the canvas rotation.
func (c *Canvas) Rotation() Rotation {
	return c.rot
}

// Background returns the color the canvas was created with.
func (c *Canvas) Background() Color {
	return c.bg
}

// ColorModel returns the periph 1-bit color model.
func (c *Canvas) ColorModel() color.Model {
	return image1bit.BitModel
}

// At returns the pixel at (x, y) as an image1bit.Bit.
// It implements the image.Image interface.
func (c *Canvas) At(x, y int) color.Color {
	return c.ColorAt(x, y).Bit()
}

// Set sets the pixel at (x, y) from any color.
// It implements the draw.Image interface.
func (c *Canvas) Set(x, y int, col color.Color) {
	c.SetPixel(x, y, FromColor(col))
}

// ColorAt returns the pixel at (x, y). Outside the bounds it returns the
// background.
func (c *Canvas) ColorAt(x, y int) Color {
	if !(image.Point{X: x, Y: y}.In(c.Rect)) {
		return c.bg
	}
	mask, index := c.maskIndex(c.memXY(x, y))
	if c.Pix[index]&mask != 0 {
		return White
	}
	return Black
}

// SetPixel sets the pixel at (x, y). Points outside the bounds and the
// Transparent color are ignored.
func (c *Canvas) SetPixel(x, y int, col Color) {
	if col == Transparent || !(image.Point{X: x, Y: y}.In(c.Rect)) {
		return
	}
	mask, index := c.maskIndex(c.memXY(x, y))
	setBits(&c.Pix[index], mask, col)
}

// Fill sets every pixel to col.
func (c *Canvas) Fill(col Color) {
	if col == Transparent {
		return
	}
	b := col.fill()
	for i := range c.Pix {
		c.Pix[i] = b
	}
}

// FillRect sets every pixel of r to col. r is clipped to the bounds.
func (c *Canvas) FillRect(r image.Rectangle, col Color) {
	if col == Transparent {
		return
	}
	mr := c.MemoryRect(r)
	if mr.Empty() {
		return
	}
	c.fillMem(mr, col)
}

// ClearWindow erases r to bg so it can be redrawn.
func (c *Canvas) ClearWindow(r image.Rectangle, bg Color) {
	c.FillRect(r, bg)
}

// StrokeRect draws the outline of r, width pixels wide, growing inwards so
// the stroke never leaves r.
func (c *Canvas) StrokeRect(r image.Rectangle, col Color, width int) {
	r = r.Canon()
	if width < 1 {
		width = 1
	}
	if 2*width >= r.Dx() || 2*width >= r.Dy() {
		c.FillRect(r, col)
		return
	}
	c.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+width), col)
	c.FillRect(image.Rect(r.Min.X, r.Max.Y-width, r.Max.X, r.Max.Y), col)
	c.FillRect(image.Rect(r.Min.X, r.Min.Y+width, r.Min.X+width, r.Max.Y-width), col)
	c.FillRect(image.Rect(r.Max.X-width, r.Min.Y+width, r.Max.X, r.Max.Y-width), col)
}

// RowBytes returns the packed bytes of memory row y, or nil if y is out of
// range. The slice aliases Pix.
func (c *Canvas) RowBytes(y int) []byte {
	if y < 0 || y >= c.h {
		return nil
	}
	return c.Pix[y*c.Stride : (y+1)*c.Stride]
}

// MemoryRect maps the logical rectangle r, clipped to the bounds, to memory
// coordinates.
func (c *Canvas) MemoryRect(r image.Rectangle) image.Rectangle {
	r = r.Canon().Intersect(c.Rect)
	if r.Empty() {
		return image.Rectangle{}
	}
	x0, y0 := c.memXY(r.Min.X, r.Min.Y)
	x1, y1 := c.memXY(r.Max.X-1, r.Max.Y-1)
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return image.Rect(x0, y0, x1+1, y1+1)
}

// Clone returns a deep copy of c.
func (c *Canvas) Clone() *Canvas {
	d := *c
	d.Pix = make([]byte, len(c.Pix))
	copy(d.Pix, c.Pix)
	return &d
}

func (c *Canvas) String() string {
	return fmt.Sprintf("bitplane.Canvas{%v %dx%d %v}", c.Rect, c.w, c.h, c.rot)
}

// memBounds returns the memory geometry as a rectangle.
func (c *Canvas) memBounds() image.Rectangle {
	return image.Rect(0, 0, c.w, c.h)
}

// memXY maps a logical point inside Rect to memory coordinates.
func (c *Canvas) memXY(x, y int) (int, int) {
	lx, ly := x-c.Rect.Min.X, y-c.Rect.Min.Y
	switch c.rot {
	case Rotate90:
		return c.w - 1 - ly, lx
	case Rotate180:
		return c.w - 1 - lx, c.h - 1 - ly
	case Rotate270:
		return ly, c.h - 1 - lx
	}
	return lx, ly
}

// maskIndex returns the bit mask and byte index of memory pixel (x, y).
func (c *Canvas) maskIndex(x, y int) (byte, int) {
	return 0x80 >> uint(x&7), y*c.Stride + x>>3
}

// fillMem fills the memory rectangle mr, which must lie inside memBounds.
func (c *Canvas) fillMem(mr image.Rectangle, col Color) {
	x0, x1 := mr.Min.X, mr.Max.X-1
	b0, b1 := x0>>3, x1>>3
	first := byte(0xFF >> uint(x0&7))
	last := byte(0xFF << uint(7-(x1&7)))
	for y := mr.Min.Y; y < mr.Max.Y; y++ {
		row := c.Pix[y*c.Stride : (y+1)*c.Stride]
		if b0 == b1 {
			setBits(&row[b0], first&last, col)
			continue
		}
		setBits(&row[b0], first, col)
		for i := b0 + 1; i < b1; i++ {
			setBits(&row[i], 0xFF, col)
		}
		setBits(&row[b1], last, col)
	}
}

func setBits(b *byte, mask byte, col Color) {
	if col == Black {
		*b &^= mask
	} else {
		*b |= mask
	}
}
