package epd7in5b

import (
	"fmt"
	"image"
	"log"
	"time"

	"github.com/flavioheleno/epd7in5b/bitplane"
)

// Transport is the device side of the controller. Panel drives a real
// panel over a Bus; preview.Panel simulates one in memory.
//
// Frame data uses the bitplane layout of the panel memory geometry. Window
// rectangles are in memory coordinates and their x edges are multiples of 8
// or the panel width.
type Transport interface {
	InitFull() error
	InitFast() error
	InitPartial() error
	Clear() error
	WriteFullFrame(black, accent []byte) error
	WritePartialWindow(pix []byte, r image.Rectangle) error
	WriteBase(bg bitplane.Color) error
	Sleep() error
}

// Opts is the configuration shared by Controller, Panel and Session.
type Opts struct {
	// Panel memory geometry in pixels
	W int // Width (default: 800)
	H int // Height (default: 480)

	// Rotation of the logical drawing surface relative to the panel
	Rotation bitplane.Rotation

	BusyTimeout  time.Duration // Longest BUSY wait (default: 40s)
	PollInterval time.Duration // BUSY polling period (default: 10ms)

	// Strict makes invalid transitions panic instead of returning an error.
	Strict bool

	// Log receives one line per transition and BUSY wait; nil is silent.
	Log *log.Logger
}

// DefaultOpts is the configuration of the 7.5" (B) V2 panel.
var DefaultOpts = Opts{
	W:            800,
	H:            480,
	BusyTimeout:  40 * time.Second,
	PollInterval: 10 * time.Millisecond,
}

func (o *Opts) withDefaults() Opts {
	r := DefaultOpts
	if o == nil {
		return r
	}
	r.Rotation = o.Rotation
	r.Strict = o.Strict
	r.Log = o.Log
	if o.W != 0 {
		r.W = o.W
	}
	if o.H != 0 {
		r.H = o.H
	}
	if o.BusyTimeout != 0 {
		r.BusyTimeout = o.BusyTimeout
	}
	if o.PollInterval != 0 {
		r.PollInterval = o.PollInterval
	}
	return r
}

// Controller sequences refresh operations and rejects the ones the panel
// cannot accept in its current mode.
//
// It keeps a copy of what the panel black RAM holds so partial windows can
// be widened to byte boundaries without disturbing neighbouring pixels.
type Controller struct {
	t      Transport
	state  State
	shadow *bitplane.Canvas
	strict bool
	log    *log.Logger
}

// NewController returns a controller in the Uninitialized state.
//
// opts can be nil to use DefaultOpts.
func NewController(t Transport, opts *Opts) (*Controller, error) {
	o := opts.withDefaults()
	if o.W <= 0 || o.W%8 != 0 {
		return nil, fmt.Errorf("epd7in5b: width %d must be a positive multiple of 8", o.W)
	}
	if o.H <= 0 {
		return nil, fmt.Errorf("epd7in5b: height %d must be positive", o.H)
	}
	shadow, err := bitplane.NewRotated(o.W, o.H, o.Rotation, bitplane.White)
	if err != nil {
		return nil, err
	}
	return &Controller{
		t:      t,
		state:  Uninitialized,
		shadow: shadow,
		strict: o.Strict,
		log:    o.Log,
	}, nil
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Bounds returns the logical bounds of the panel.
func (c *Controller) Bounds() image.Rectangle {
	return c.shadow.Bounds()
}

// Shadow returns the controller's copy of the panel black RAM. It must not
// be modified.
func (c *Controller) Shadow() *bitplane.Canvas {
	return c.shadow
}

// InitFull resets the panel and loads the full refresh waveform.
func (c *Controller) InitFull() error {
	return c.do(ActionInitFull, c.t.InitFull)
}

// InitFast resets the panel and loads the fast refresh waveform.
func (c *Controller) InitFast() error {
	return c.do(ActionInitFast, c.t.InitFast)
}

// InitPartial switches a fully initialized panel to partial refresh.
func (c *Controller) InitPartial() error {
	return c.do(ActionInitPartial, c.t.InitPartial)
}

// Clear blanks both panel RAM banks and refreshes.
func (c *Controller) Clear() error {
	return c.do(ActionClear, func() error {
		if err := c.t.Clear(); err != nil {
			return err
		}
		c.shadow.Fill(bitplane.White)
		return nil
	})
}

// PushFull transmits both planes and blocks until the panel has refreshed.
// Both canvases must have the panel memory geometry.
func (c *Controller) PushFull(black, accent *bitplane.Canvas) error {
	if err := c.check(ActionPushFull); err != nil {
		return err
	}
	for _, p := range []*bitplane.Canvas{black, accent} {
		if p == nil || p.Size() != c.shadow.Size() {
			return fmt.Errorf("%w: want %v", ErrInvalidImageSize, c.shadow.Size())
		}
	}
	return c.do(ActionPushFull, func() error {
		if err := c.t.WriteFullFrame(black.Pix, accent.Pix); err != nil {
			return err
		}
		copy(c.shadow.Pix, black.Pix)
		return nil
	})
}

// PushPartial transmits the window r of the black plane and blocks until
// the panel has refreshed it.
//
// src holds exactly the window content: its bounds are either r or a
// rectangle of the same size at the origin. r is in logical coordinates.
func (c *Controller) PushPartial(src *bitplane.Canvas, r image.Rectangle) error {
	if err := c.check(ActionPushPartial); err != nil {
		return err
	}
	r = r.Canon()
	if r.Empty() || !r.In(c.Bounds()) {
		return fmt.Errorf("%w: %v not in %v", ErrWindow, r, c.Bounds())
	}
	if src == nil {
		return fmt.Errorf("%w: nil canvas", ErrWindow)
	}
	if sb := src.Bounds(); sb != r {
		if sb.Min != (image.Point{}) || sb.Size() != r.Size() {
			return fmt.Errorf("%w: canvas %v does not match window %v", ErrWindow, sb, r)
		}
		src = src.Translate(r.Min)
	}

	mr := c.shadow.MemoryRect(r)
	wide := image.Rect(mr.Min.X&^7, mr.Min.Y, min((mr.Max.X+7)&^7, c.shadow.Size().X), mr.Max.Y)
	saved, err := c.shadow.WindowBytes(wide)
	if err != nil {
		return err
	}
	c.shadow.Blit(src)
	pix, err := c.shadow.WindowBytes(wide)
	if err != nil {
		return err
	}
	err = c.do(ActionPushPartial, func() error {
		return c.t.WritePartialWindow(pix, wide)
	})
	if err != nil {
		_ = c.shadow.WriteWindow(wide, saved)
	}
	return err
}

// PushBase fills both RAM banks with bg and refreshes, giving partial
// updates a known base image.
func (c *Controller) PushBase(bg bitplane.Color) error {
	if err := c.check(ActionPushBase); err != nil {
		return err
	}
	if bg != bitplane.Black && bg != bitplane.White {
		return fmt.Errorf("epd7in5b: invalid base color %v", bg)
	}
	return c.do(ActionPushBase, func() error {
		if err := c.t.WriteBase(bg); err != nil {
			return err
		}
		c.shadow.Fill(bg)
		return nil
	})
}

// Sleep powers the panel down into deep sleep. Nothing can be sent to the
// panel afterwards.
func (c *Controller) Sleep() error {
	return c.do(ActionSleep, c.t.Sleep)
}

func (c *Controller) String() string {
	return fmt.Sprintf("epd7in5b.Controller{%v %v}", c.shadow.Size(), c.state)
}

// check validates a without changing state.
func (c *Controller) check(a Action) error {
	if _, err := Next(c.state, a); err != nil {
		if c.strict {
			panic(err)
		}
		return err
	}
	return nil
}

// do runs fn for a and advances the state when it succeeds.
func (c *Controller) do(a Action, fn func() error) error {
	if err := c.check(a); err != nil {
		return err
	}
	to, _ := Next(c.state, a)
	start := time.Now()
	if err := fn(); err != nil {
		c.logf("epd7in5b: %v --%v--> failed: %v", c.state, a, err)
		return &DeviceError{Action: a, Err: err}
	}
	c.logf("epd7in5b: %v --%v--> %v (%v)", c.state, a, to, time.Since(start).Truncate(time.Millisecond))
	c.state = to
	return nil
}

func (c *Controller) logf(format string, args ...any) {
	if c.log != nil {
		c.log.Printf(format, args...)
	}
}
