package bitplane

import (
	"fmt"
	"image"
	"image/color"
)

// Plane selects one of the two planes of an Image.
type Plane int

const (
	// Image planes
	PlaneBlack Plane = iota
	PlaneAccent
)

func (p Plane) String() string {
	switch p {
	case PlaneBlack:
		return "black"
	case PlaneAccent:
		return "accent"
	}
	return fmt.Sprintf("Plane(%d)", int(p))
}

// Ink is the visible color of a pixel once both planes are combined.
type Ink uint8

const (
	// Combined pixel colors
	InkWhite Ink = iota
	InkBlack
	InkAccent
)

func (i Ink) String() string {
	switch i {
	case InkWhite:
		return "white"
	case InkBlack:
		return "black"
	case InkAccent:
		return "accent"
	}
	return fmt.Sprintf("Ink(%d)", uint8(i))
}

// Palette is the preview palette indexed by Ink.
var Palette = color.Palette{
	color.White,
	color.Black,
	color.RGBA{R: 0xFF, A: 0xFF},
}

// Image is a bicolor frame made of a black plane and an accent plane with
// identical geometry and rotation.
type Image struct {
	Black  *Canvas
	Accent *Canvas
}

// NewImage allocates both planes for a w x h panel, filled with bg.
func NewImage(w, h int, rot Rotation, bg Color) (*Image, error) {
	b, err := NewRotated(w, h, rot, bg)
	if err != nil {
		return nil, err
	}
	a, err := NewRotated(w, h, rot, bg)
	if err != nil {
		return nil, err
	}
	return &Image{Black: b, Accent: a}, nil
}

// Plane returns the canvas for p, or nil for an unknown plane.
func (m *Image) Plane(p Plane) *Canvas {
	switch p {
	case PlaneBlack:
		return m.Black
	case PlaneAccent:
		return m.Accent
	}
	return nil
}

// Fill sets every pixel of both planes to bg.
func (m *Image) Fill(bg Color) {
	m.Black.Fill(bg)
	m.Accent.Fill(bg)
}

// SetInk sets the combined color at (x, y).
func (m *Image) SetInk(x, y int, ink Ink) {
	switch ink {
	case InkWhite:
		m.Black.SetPixel(x, y, White)
		m.Accent.SetPixel(x, y, White)
	case InkBlack:
		m.Black.SetPixel(x, y, Black)
		m.Accent.SetPixel(x, y, White)
	case InkAccent:
		m.Black.SetPixel(x, y, White)
		m.Accent.SetPixel(x, y, Black)
	}
}

// InkAt returns the combined color at (x, y). Accent ink covers black ink,
// as it does on the panel.
func (m *Image) InkAt(x, y int) Ink {
	if m.Accent.ColorAt(x, y) == Black {
		return InkAccent
	}
	if m.Black.ColorAt(x, y) == Black {
		return InkBlack
	}
	return InkWhite
}

// Bounds returns the logical bounds shared by both planes.
func (m *Image) Bounds() image.Rectangle {
	return m.Black.Bounds()
}

// ColorModel returns Palette.
func (m *Image) ColorModel() color.Model {
	return Palette
}

// At returns the combined color at (x, y) from Palette.
func (m *Image) At(x, y int) color.Color {
	return Palette[m.InkAt(x, y)]
}

func (m *Image) String() string {
	return fmt.Sprintf("bitplane.Image{%v}", m.Black)
}
