package bitplane

import (
	"fmt"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Color is the value of a single pixel of one plane.
type Color uint8

const (
	// Black is ink. On the accent plane it means accent ink.
	Black Color = 0
	// White is paper.
	White Color = 1
	// Transparent leaves the destination pixel untouched when written.
	Transparent Color = 0xFF
)

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	switch c {
	case Transparent:
		return 0, 0, 0, 0
	case Black:
		return 0, 0, 0, 0xFFFF
	}
	return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
}

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	case Transparent:
		return "Transparent"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

// fill returns the byte holding 8 pixels of color c.
func (c Color) fill() byte {
	if c == Black {
		return 0x00
	}
	return 0xFF
}

// Bit converts c to the periph 1-bit color. Paper is image1bit.On.
func (c Color) Bit() image1bit.Bit {
	return image1bit.Bit(c != Black)
}

// FromColor converts any color.Color to Black or White.
func FromColor(c color.Color) Color {
	if v, ok := c.(Color); ok {
		return v
	}
	if image1bit.BitModel.Convert(c).(image1bit.Bit) {
		return White
	}
	return Black
}

// Rotation is the clockwise rotation of the logical canvas relative to the
// panel memory.
type Rotation uint8

const (
	// Clockwise rotations
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// ParseRotation converts degrees (0, 90, 180, 270) to a Rotation.
func ParseRotation(deg int) (Rotation, error) {
	switch deg {
	case 0:
		return Rotate0, nil
	case 90:
		return Rotate90, nil
	case 180:
		return Rotate180, nil
	case 270:
		return Rotate270, nil
	}
	return Rotate0, fmt.Errorf("bitplane: unsupported rotation %d", deg)
}

func (r Rotation) String() string {
	if r > Rotate270 {
		return fmt.Sprintf("Rotation(%d)", uint8(r))
	}
	return fmt.Sprintf("%d°", int(r)*90)
}

// swapsAxes reports whether logical width and height are swapped relative to
// memory.
func (r Rotation) swapsAxes() bool {
	return r == Rotate90 || r == Rotate270
}
