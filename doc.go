// Package epd7in5b controls a Waveshare 7.5" (B) V2 e-paper panel via SPI.
//
// The panel is 800×480 pixels with black, white and red ink, driven by a
// UC8179-class controller. Frames are composed on bitplane canvases and
// pushed through a Controller that enforces the order the panel expects.
//
// # Display Characteristics
//
// - Two 1-bit RAM banks: black/white and red
// - Full refresh (about 16s), fast refresh and black/white partial refresh
// - BUSY line held low while a refresh is running
// - Deep sleep that only a hardware reset leaves
//
// # Hardware Connection
//
// Connect the panel HAT to your system via SPI:
//
//	Display Pin → System Pin
//	VCC         → 3.3V
//	GND         → GND
//	DIN         → SPI Data (MOSI)
//	CLK         → SPI Clock (SCLK)
//	CS          → SPI Chip Select (CE0)
//	DC          → GPIO25
//	RST         → GPIO17
//	BUSY        → GPIO24
//
// # Basic Usage
//
//	package main
//
//	import (
//		"image"
//
//		"github.com/flavioheleno/epd7in5b"
//		"github.com/flavioheleno/epd7in5b/bitplane"
//		"github.com/flavioheleno/epd7in5b/paint"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//		port, _ := spireg.Open("")
//		dev, _ := epd7in5b.NewSPI(port, gpioreg.ByName("GPIO25"),
//			gpioreg.ByName("GPIO17"), gpioreg.ByName("GPIO24"), 0)
//		panel, _ := epd7in5b.NewPanel(dev, nil)
//
//		s, _ := epd7in5b.NewSession(panel, nil)
//		defer s.Close()
//
//		s.InitFull()
//		s.Clear()
//		black := s.Image().Plane(bitplane.PlaneBlack)
//		paint.Rectangle(black, image.Rect(20, 20, 200, 460), bitplane.Black, paint.Stroke{Width: 2}, false)
//		s.PushFull()
//	}
//
// # Refresh Modes
//
// The Controller starts Uninitialized and only accepts the transitions
// below. Anything else returns a *TransitionError, or panics when
// Opts.Strict is set.
//
//	Uninitialized    --InitFull-->    FullModeReady
//	Uninitialized    --InitFast-->    FastModeReady
//	FullModeReady    --InitPartial--> PartialModeReady
//	Full/FastMode    --Clear-->       same state
//	Full/FastMode    --PushFull-->    same state
//	PartialModeReady --PushBase-->    PartialModeReady
//	PartialModeReady --PushPartial--> PartialModeReady
//	any but Sleeping --Sleep-->       Sleeping
//
// Transport failures are returned as *DeviceError and leave the state
// unchanged.
//
// # Partial Refresh
//
// A partial update sends a window of the black plane only. Draw the window
// on a scratch canvas obtained from Session.Scratch, which is reused while
// the window stays the same:
//
//	win := image.Rect(10, 130, 10+7*8, 130+13)
//	c, _ := s.Scratch(win)
//	paint.Text(c, win.Min.X, win.Min.Y, "12:34:57", paint.Font7x13, bitplane.Black, bitplane.White)
//	s.PushPartial(c, win)
//
// Window edges do not need to fall on byte boundaries: the controller
// widens the window using its copy of the panel RAM so neighbouring pixels
// are sent unchanged.
//
// # Compatibility with periph.io
//
// Session implements the display.Drawer interface from periph.io, so it can
// be used with any periph.io tool or library expecting a display.Drawer.
package epd7in5b
