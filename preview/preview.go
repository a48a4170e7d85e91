// Package preview simulates the panel RAM in memory so frames can be
// composed and checked without hardware.
//
// Panel implements epd7in5b.Transport. It accepts the same frame data as the
// real panel and keeps what the panel would show, which can be rendered to
// PNG with gg.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/flavioheleno/epd7in5b/bitplane"
	"github.com/fogleman/gg"
)

// ErrAsleep is returned for frame data sent after Sleep and before the next
// initialization.
var ErrAsleep = errors.New("preview: panel asleep")

// Mode is the waveform loaded by the last initialization.
type Mode string

const (
	ModeNone    Mode = ""
	ModeFull    Mode = "full"
	ModeFast    Mode = "fast"
	ModePartial Mode = "partial"
)

// Panel is an in-memory panel.
type Panel struct {
	ram    *bitplane.Image
	mode   Mode
	asleep bool

	// Refreshes counts completed refresh cycles.
	Refreshes int
	// Windows lists every partial window written, in order.
	Windows []image.Rectangle
	// Fail, when set, is returned by the next call instead of doing anything,
	// then cleared.
	Fail error
}

// New returns a w x h panel with white RAM.
func New(w, h int) (*Panel, error) {
	ram, err := bitplane.NewImage(w, h, bitplane.Rotate0, bitplane.White)
	if err != nil {
		return nil, err
	}
	return &Panel{ram: ram}, nil
}

// InitFull implements epd7in5b.Transport.
func (p *Panel) InitFull() error { return p.init(ModeFull) }

// InitFast implements epd7in5b.Transport.
func (p *Panel) InitFast() error { return p.init(ModeFast) }

// InitPartial implements epd7in5b.Transport.
func (p *Panel) InitPartial() error { return p.init(ModePartial) }

// Clear implements epd7in5b.Transport.
func (p *Panel) Clear() error {
	if err := p.ready(); err != nil {
		return err
	}
	p.ram.Fill(bitplane.White)
	p.Refreshes++
	return nil
}

// WriteFullFrame implements epd7in5b.Transport.
func (p *Panel) WriteFullFrame(black, accent []byte) error {
	if err := p.ready(); err != nil {
		return err
	}
	n := len(p.ram.Black.Pix)
	if len(black) != n || len(accent) != n {
		return fmt.Errorf("preview: want %d bytes per plane, got %d and %d", n, len(black), len(accent))
	}
	copy(p.ram.Black.Pix, black)
	copy(p.ram.Accent.Pix, accent)
	p.Refreshes++
	return nil
}

// WritePartialWindow implements epd7in5b.Transport.
func (p *Panel) WritePartialWindow(pix []byte, r image.Rectangle) error {
	if err := p.ready(); err != nil {
		return err
	}
	if p.mode != ModePartial {
		return fmt.Errorf("preview: partial window in %q mode", p.mode)
	}
	w := p.ram.Black.Size().X
	if r.Min.X%8 != 0 || (r.Max.X%8 != 0 && r.Max.X != w) {
		return fmt.Errorf("preview: window %v is not byte aligned", r)
	}
	if err := p.ram.Black.WriteWindow(r, pix); err != nil {
		return err
	}
	p.Windows = append(p.Windows, r)
	p.Refreshes++
	return nil
}

// WriteBase implements epd7in5b.Transport.
func (p *Panel) WriteBase(bg bitplane.Color) error {
	if err := p.ready(); err != nil {
		return err
	}
	p.ram.Black.Fill(bg)
	p.ram.Accent.Fill(bitplane.White)
	p.Refreshes++
	return nil
}

// Sleep implements epd7in5b.Transport.
func (p *Panel) Sleep() error {
	if err := p.fail(); err != nil {
		return err
	}
	p.asleep = true
	return nil
}

// Mode returns the waveform loaded by the last initialization.
func (p *Panel) Mode() Mode {
	return p.mode
}

// Asleep reports whether Sleep was the last power transition.
func (p *Panel) Asleep() bool {
	return p.asleep
}

// Image returns the panel RAM. Black is the black RAM and Accent the red
// RAM, both with bitplane polarity.
func (p *Panel) Image() *bitplane.Image {
	return p.ram
}

// Render draws the panel as it would look, scaled by scale. When outline is
// true every partial window written so far is framed in blue.
func (p *Panel) Render(scale float64, outline bool) image.Image {
	if scale <= 0 {
		scale = 1
	}
	b := p.ram.Bounds()
	dc := gg.NewContext(int(float64(b.Dx())*scale), int(float64(b.Dy())*scale))
	dc.SetColor(color.White)
	dc.Clear()
	dc.Scale(scale, scale)
	dc.DrawImage(p.ram, 0, 0)
	if outline {
		dc.SetRGB(0, 0.4, 1)
		dc.SetLineWidth(1)
		for _, r := range p.Windows {
			dc.DrawRectangle(float64(r.Min.X)+0.5, float64(r.Min.Y)+0.5, float64(r.Dx()-1), float64(r.Dy()-1))
			dc.Stroke()
		}
	}
	return dc.Image()
}

// SavePNG writes Render(scale, outline) to path.
func (p *Panel) SavePNG(path string, scale float64, outline bool) error {
	return gg.SavePNG(path, p.Render(scale, outline))
}

func (p *Panel) String() string {
	return fmt.Sprintf("preview.Panel{%v %q}", p.ram.Bounds().Size(), p.mode)
}

func (p *Panel) init(m Mode) error {
	if err := p.fail(); err != nil {
		return err
	}
	p.mode = m
	p.asleep = false
	return nil
}

func (p *Panel) ready() error {
	if err := p.fail(); err != nil {
		return err
	}
	if p.asleep {
		return ErrAsleep
	}
	return nil
}

func (p *Panel) fail() error {
	err := p.Fail
	p.Fail = nil
	return err
}

// RenderImage draws img, a frame composed for the panel, the way Render
// draws the panel RAM.
func RenderImage(img *bitplane.Image, scale float64) image.Image {
	if scale <= 0 {
		scale = 1
	}
	b := img.Bounds()
	dc := gg.NewContext(int(float64(b.Dx())*scale), int(float64(b.Dy())*scale))
	dc.Scale(scale, scale)
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	return dc.Image()
}
