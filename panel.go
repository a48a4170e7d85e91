package epd7in5b

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/flavioheleno/epd7in5b/bitplane"
)

// Bus is the wire to the panel controller.
type Bus interface {
	// Reset pulses the hardware reset line.
	Reset() error
	// Command sends a command byte followed by its parameters.
	Command(cmd byte, data ...byte) error
	// Data streams frame bytes.
	Data(pix []byte) error
	// Busy reports whether the panel is still working.
	Busy() (bool, error)
}

var _ Transport = (*Panel)(nil)

// Panel drives the 7.5" (B) V2 panel controller over a Bus. It implements
// Transport.
type Panel struct {
	bus          Bus
	w, h         int
	busyTimeout  time.Duration
	pollInterval time.Duration
	log          *log.Logger

	sleep func(time.Duration)
	now   func() time.Time
}

// NewPanel returns a Panel for b. opts can be nil to use DefaultOpts.
func NewPanel(b Bus, opts *Opts) (*Panel, error) {
	o := opts.withDefaults()
	if o.W <= 0 || o.W%8 != 0 || o.W > 0x3FF {
		return nil, fmt.Errorf("epd7in5b: width %d must be a multiple of 8 up to 1016", o.W)
	}
	if o.H <= 0 || o.H > 0x3FF {
		return nil, fmt.Errorf("epd7in5b: height %d must be between 1 and 1023", o.H)
	}
	if b == nil {
		return nil, errors.New("epd7in5b: nil bus")
	}
	return &Panel{
		bus:          b,
		w:            o.W,
		h:            o.H,
		busyTimeout:  o.BusyTimeout,
		pollInterval: o.PollInterval,
		log:          o.Log,
		sleep:        time.Sleep,
		now:          time.Now,
	}, nil
}

// InitFull loads the full refresh (black/white/red) waveform from OTP.
func (p *Panel) InitFull() error {
	if err := p.bus.Reset(); err != nil {
		return err
	}
	if err := p.commands(
		[]byte{0x01, 0x07, 0x07, 0x3F, 0x3F}, // Power setting: VGH=20V, VGL=-20V, VDH=15V, VDL=-15V
		[]byte{0x06, 0x17, 0x17, 0x28, 0x17}, // Booster soft start
	); err != nil {
		return err
	}
	if err := p.powerOn(); err != nil {
		return err
	}
	return p.commands(
		[]byte{0x00, 0x0F}, // Panel setting: KWR mode, LUT from OTP
		p.resolution(),
		[]byte{0x15, 0x00},                   // Dual SPI off
		[]byte{0x50, 0x11, 0x07},             // VCOM and data interval
		[]byte{0x60, 0x22},                   // TCON
		[]byte{0x65, 0x00, 0x00, 0x00, 0x00}, // Gate/source start
	)
}

// InitFast loads the fast refresh waveform.
func (p *Panel) InitFast() error {
	if err := p.bus.Reset(); err != nil {
		return err
	}
	if err := p.commands([]byte{0x00, 0x0F}); err != nil {
		return err
	}
	if err := p.powerOn(); err != nil {
		return err
	}
	return p.commands(
		[]byte{0x06, 0x27, 0x27, 0x18, 0x17}, // Booster soft start
		[]byte{0xE0, 0x02},                   // Cascade setting
		[]byte{0xE5, 0x5A},                   // Force temperature
		[]byte{0x50, 0x11, 0x07},
	)
}

// InitPartial loads the black/white waveform used for partial windows.
func (p *Panel) InitPartial() error {
	if err := p.bus.Reset(); err != nil {
		return err
	}
	if err := p.commands([]byte{0x00, 0x1F}); err != nil { // KW mode
		return err
	}
	if err := p.powerOn(); err != nil {
		return err
	}
	return p.commands(
		[]byte{0xE0, 0x02},
		[]byte{0xE5, 0x6E},
		[]byte{0x50, 0xA9, 0x07},
	)
}

// Clear sets the black RAM to white, the red RAM to no ink, and refreshes.
func (p *Panel) Clear() error {
	if err := p.fill(0x10, 0xFF); err != nil {
		return err
	}
	if err := p.fill(0x13, 0x00); err != nil {
		return err
	}
	return p.refresh()
}

// WriteFullFrame sends both planes and refreshes. The red RAM holds 1 for
// red, so the accent plane is inverted on the way out.
func (p *Panel) WriteFullFrame(black, accent []byte) error {
	if len(black) != p.frameSize() || len(accent) != p.frameSize() {
		return fmt.Errorf("%w: want %d bytes per plane, got %d and %d", ErrInvalidImageSize, p.frameSize(), len(black), len(accent))
	}
	if err := p.bus.Command(0x10); err != nil {
		return err
	}
	if err := p.bus.Data(black); err != nil {
		return err
	}
	if err := p.bus.Command(0x13); err != nil {
		return err
	}
	if err := p.bus.Data(invert(accent)); err != nil {
		return err
	}
	return p.refresh()
}

// WritePartialWindow sends the window r of the black plane and refreshes it.
func (p *Panel) WritePartialWindow(pix []byte, r image.Rectangle) error {
	if r.Empty() || !r.In(image.Rect(0, 0, p.w, p.h)) {
		return fmt.Errorf("%w: %v", ErrWindow, r)
	}
	if r.Min.X%8 != 0 || (r.Max.X%8 != 0 && r.Max.X != p.w) {
		return fmt.Errorf("%w: %v is not byte aligned", ErrWindow, r)
	}
	if n := (r.Dx() + 7) / 8 * r.Dy(); len(pix) != n {
		return fmt.Errorf("%w: window %v needs %d bytes, got %d", ErrInvalidImageSize, r, n, len(pix))
	}
	xe, ye := r.Max.X-1, r.Max.Y-1
	if err := p.commands(
		[]byte{0x50, 0xA9, 0x07},
		[]byte{0x91}, // Partial in
		[]byte{0x90,
			byte(r.Min.X >> 8), byte(r.Min.X),
			byte(xe >> 8), byte(xe),
			byte(r.Min.Y >> 8), byte(r.Min.Y),
			byte(ye >> 8), byte(ye),
			0x01, // Gates scan both inside and outside the window
		},
		[]byte{0x13},
	); err != nil {
		return err
	}
	if err := p.bus.Data(invert(pix)); err != nil {
		return err
	}
	if err := p.refresh(); err != nil {
		return err
	}
	return p.bus.Command(0x92) // Partial out
}

// WriteBase fills the RAM with bg and refreshes.
func (p *Panel) WriteBase(bg bitplane.Color) error {
	v := byte(0xFF)
	if bg == bitplane.Black {
		v = 0x00
	}
	if err := p.fill(0x10, v); err != nil {
		return err
	}
	if err := p.fill(0x13, ^v); err != nil {
		return err
	}
	return p.refresh()
}

// Sleep powers off and enters deep sleep. Only a hardware reset wakes the
// panel up.
func (p *Panel) Sleep() error {
	if err := p.commands([]byte{0x50, 0xF7}, []byte{0x02}); err != nil {
		return err
	}
	if err := p.waitIdle(); err != nil {
		return err
	}
	if err := p.bus.Command(0x07, 0xA5); err != nil {
		return err
	}
	p.sleep(2 * time.Second)
	return nil
}

func (p *Panel) String() string {
	return fmt.Sprintf("epd7in5b.Panel{%dx%d}", p.w, p.h)
}

func (p *Panel) frameSize() int {
	return p.w / 8 * p.h
}

func (p *Panel) resolution() []byte {
	return []byte{0x61, byte(p.w >> 8), byte(p.w), byte(p.h >> 8), byte(p.h)}
}

// commands sends each sequence as a command byte and its parameters.
func (p *Panel) commands(seqs ...[]byte) error {
	for _, s := range seqs {
		if err := p.bus.Command(s[0], s[1:]...); err != nil {
			return err
		}
	}
	return nil
}

func (p *Panel) powerOn() error {
	if err := p.bus.Command(0x04); err != nil {
		return err
	}
	p.sleep(100 * time.Millisecond)
	return p.waitIdle()
}

func (p *Panel) refresh() error {
	if err := p.bus.Command(0x12); err != nil {
		return err
	}
	p.sleep(100 * time.Millisecond)
	return p.waitIdle()
}

// fill sends cmd followed by a whole frame of v.
func (p *Panel) fill(cmd, v byte) error {
	if err := p.bus.Command(cmd); err != nil {
		return err
	}
	row := make([]byte, p.w/8)
	for i := range row {
		row[i] = v
	}
	for y := 0; y < p.h; y++ {
		if err := p.bus.Data(row); err != nil {
			return err
		}
	}
	return nil
}

// waitIdle polls the status flag until BUSY is released.
func (p *Panel) waitIdle() error {
	start := p.now()
	for {
		if err := p.bus.Command(0x71); err != nil {
			return err
		}
		busy, err := p.bus.Busy()
		if err != nil {
			return err
		}
		if !busy {
			break
		}
		if p.now().Sub(start) >= p.busyTimeout {
			return fmt.Errorf("%w after %v", ErrBusyTimeout, p.busyTimeout)
		}
		p.sleep(p.pollInterval)
	}
	if p.log != nil {
		p.log.Printf("epd7in5b: busy for %v", p.now().Sub(start).Truncate(time.Millisecond))
	}
	return nil
}

func invert(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[i] = ^v
	}
	return out
}
