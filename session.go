package epd7in5b

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/flavioheleno/epd7in5b/bitplane"
	"periph.io/x/conn/v3/display"
)

var _ display.Drawer = (*Session)(nil)

var errClosed = errors.New("epd7in5b: session closed")

// Session is one display session: a Controller, the full-frame Image drawn
// for it and the scratch canvas reused by partial updates.
//
// A Session is not safe for concurrent use.
type Session struct {
	ctl     *Controller
	img     *bitplane.Image
	scratch *bitplane.Canvas
}

// NewSession allocates the frame buffers for t. opts can be nil to use
// DefaultOpts.
func NewSession(t Transport, opts *Opts) (*Session, error) {
	ctl, err := NewController(t, opts)
	if err != nil {
		return nil, err
	}
	o := opts.withDefaults()
	img, err := bitplane.NewImage(o.W, o.H, o.Rotation, bitplane.White)
	if err != nil {
		return nil, err
	}
	return &Session{ctl: ctl, img: img}, nil
}

// Controller returns the session controller.
func (s *Session) Controller() *Controller {
	return s.ctl
}

// Image returns the full-frame image, or nil once the session is closed.
func (s *Session) Image() *bitplane.Image {
	return s.img
}

// State returns the controller state.
func (s *Session) State() State {
	return s.ctl.State()
}

// InitFull calls Controller.InitFull.
func (s *Session) InitFull() error { return s.ctl.InitFull() }

// InitFast calls Controller.InitFast.
func (s *Session) InitFast() error { return s.ctl.InitFast() }

// InitPartial calls Controller.InitPartial.
func (s *Session) InitPartial() error { return s.ctl.InitPartial() }

// Clear blanks the panel and the session image.
func (s *Session) Clear() error {
	if s.img == nil {
		return errClosed
	}
	if err := s.ctl.Clear(); err != nil {
		return err
	}
	s.img.Fill(bitplane.White)
	return nil
}

// PushFull sends the session image.
func (s *Session) PushFull() error {
	if s.img == nil {
		return errClosed
	}
	return s.ctl.PushFull(s.img.Black, s.img.Accent)
}

// PushBase calls Controller.PushBase and resets the black plane to bg.
func (s *Session) PushBase(bg bitplane.Color) error {
	if s.img == nil {
		return errClosed
	}
	if err := s.ctl.PushBase(bg); err != nil {
		return err
	}
	s.img.Black.Fill(bg)
	s.img.Accent.Fill(bitplane.White)
	return nil
}

// Scratch returns a canvas covering r, cleared to white. The same canvas is
// returned as long as r does not change.
func (s *Session) Scratch(r image.Rectangle) (*bitplane.Canvas, error) {
	r = r.Canon()
	if s.scratch != nil && s.scratch.Bounds() == r {
		s.scratch.Fill(bitplane.White)
		return s.scratch, nil
	}
	c, err := bitplane.New(r, bitplane.White)
	if err != nil {
		return nil, err
	}
	s.scratch = c
	return c, nil
}

// PushPartial sends window r from c and copies it into the session image.
func (s *Session) PushPartial(c *bitplane.Canvas, r image.Rectangle) error {
	if s.img == nil {
		return errClosed
	}
	if err := s.ctl.PushPartial(c, r); err != nil {
		return err
	}
	r = r.Canon()
	if c.Bounds() != r {
		c = c.Translate(r.Min)
	}
	s.img.Black.Blit(c)
	return nil
}

// Sleep calls Controller.Sleep.
func (s *Session) Sleep() error { return s.ctl.Sleep() }

// Close puts the panel to sleep, unless it already sleeps, and releases the
// frame buffers.
func (s *Session) Close() error {
	var err error
	if s.ctl.State() != Sleeping {
		err = s.ctl.Sleep()
	}
	s.img = nil
	s.scratch = nil
	return err
}

// ColorModel returns the white/black/red palette.
func (s *Session) ColorModel() color.Model {
	return bitplane.Palette
}

// Bounds returns the logical bounds of the panel.
func (s *Session) Bounds() image.Rectangle {
	return s.ctl.Bounds()
}

// Draw renders src into dst and refreshes the panel.
//
// In partial mode only the black plane of dst is updated, through the
// scratch canvas. Otherwise every pixel is mapped to the nearest of white,
// black and red and the whole frame is pushed.
func (s *Session) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if s.img == nil {
		return errClosed
	}
	dst = dst.Intersect(s.Bounds())
	if dst.Empty() {
		return nil
	}
	if s.ctl.State() == PartialModeReady {
		c, err := s.Scratch(dst)
		if err != nil {
			return err
		}
		for y := dst.Min.Y; y < dst.Max.Y; y++ {
			for x := dst.Min.X; x < dst.Max.X; x++ {
				c.Set(x, y, src.At(sp.X+x-dst.Min.X, sp.Y+y-dst.Min.Y))
			}
		}
		return s.PushPartial(c, dst)
	}
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		for x := dst.Min.X; x < dst.Max.X; x++ {
			ink := bitplane.Ink(bitplane.Palette.Index(src.At(sp.X+x-dst.Min.X, sp.Y+y-dst.Min.Y)))
			s.img.SetInk(x, y, ink)
		}
	}
	return s.PushFull()
}

// Halt puts the panel to sleep. The session cannot be used afterwards.
func (s *Session) Halt() error {
	return s.Close()
}

func (s *Session) String() string {
	return fmt.Sprintf("epd7in5b.Session{%v}", s.ctl)
}
