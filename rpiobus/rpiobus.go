// Package rpiobus talks to the panel through the Raspberry Pi GPIO and SPI0
// registers with go-rpio, bypassing the periph host drivers.
package rpiobus

import (
	"fmt"
	"time"

	"github.com/stianeikeland/go-rpio/v4"
)

// Config holds the BCM pin numbers and SPI settings.
type Config struct {
	DC   int // Data/Command (default: 25)
	RST  int // Reset (default: 17)
	CS   int // Chip select, driven by hand (default: 8)
	Busy int // Busy input (default: 24)

	Speed int // SPI clock in Hz (default: 4MHz)
	Chunk int // Largest SPI transfer in bytes (default: 4096)
}

// DefaultConfig matches the Waveshare e-Paper HAT wiring.
var DefaultConfig = Config{
	DC:    25,
	RST:   17,
	CS:    8,
	Busy:  24,
	Speed: 4_000_000,
	Chunk: 4096,
}

// Pin is the part of rpio.Pin the bus needs.
type Pin interface {
	Write(rpio.State)
	Read() rpio.State
}

// Bus implements epd7in5b.Bus on go-rpio.
type Bus struct {
	dc, rst, cs, busy Pin
	tx                func(...byte)
	chunk             int
	sleep             func(time.Duration)
	closer            func() error
}

// Open maps the GPIO registers, enables SPI0 and configures the pins.
// Close must be called to release them.
func Open(cfg *Config) (*Bus, error) {
	c := DefaultConfig
	if cfg != nil {
		c = *cfg
	}
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("rpiobus: failed to open gpio: %w", err)
	}
	if err := rpio.SpiBegin(rpio.Spi0); err != nil {
		_ = rpio.Close()
		return nil, fmt.Errorf("rpiobus: failed to enable SPI: %w", err)
	}
	rpio.SpiSpeed(c.Speed)
	rpio.SpiMode(0, 0)
	rpio.SpiChipSelect(0)

	dc, rst, cs, busy := rpio.Pin(c.DC), rpio.Pin(c.RST), rpio.Pin(c.CS), rpio.Pin(c.Busy)
	dc.Output()
	rst.Output()
	cs.Output()
	busy.Input()

	b := New(dc, rst, cs, busy, rpio.SpiTransmit, c.Chunk)
	b.closer = func() error {
		cs.Write(rpio.Low)
		dc.Write(rpio.Low)
		rst.Write(rpio.Low)
		rpio.SpiEnd(rpio.Spi0)
		return rpio.Close()
	}
	return b, nil
}

// New returns a Bus over already configured pins. tx transmits bytes on the
// SPI port; chunk bounds a single transfer, 0 meaning 4096.
func New(dc, rst, cs, busy Pin, tx func(...byte), chunk int) *Bus {
	if chunk <= 0 {
		chunk = 4096
	}
	return &Bus{
		dc:    dc,
		rst:   rst,
		cs:    cs,
		busy:  busy,
		tx:    tx,
		chunk: chunk,
		sleep: time.Sleep,
	}
}

// Reset pulses RST low.
func (b *Bus) Reset() error {
	b.rst.Write(rpio.High)
	b.sleep(200 * time.Millisecond)
	b.rst.Write(rpio.Low)
	b.sleep(4 * time.Millisecond)
	b.rst.Write(rpio.High)
	b.sleep(200 * time.Millisecond)
	return nil
}

// Command sends cmd with DC low, then its parameters as data.
func (b *Bus) Command(cmd byte, data ...byte) error {
	b.dc.Write(rpio.Low)
	b.send([]byte{cmd})
	if len(data) == 0 {
		return nil
	}
	return b.Data(data)
}

// Data sends pix with DC high.
func (b *Bus) Data(pix []byte) error {
	b.dc.Write(rpio.High)
	for len(pix) > 0 {
		n := min(len(pix), b.chunk)
		b.send(pix[:n])
		pix = pix[n:]
	}
	return nil
}

// Busy reports whether the BUSY line is low.
func (b *Bus) Busy() (bool, error) {
	return b.busy.Read() == rpio.Low, nil
}

// Close drives the outputs low and releases SPI and GPIO. It is a no-op for
// a Bus built with New.
func (b *Bus) Close() error {
	if b.closer == nil {
		return nil
	}
	err := b.closer()
	b.closer = nil
	return err
}

func (b *Bus) String() string {
	return fmt.Sprintf("rpiobus.Bus{chunk=%d}", b.chunk)
}

func (b *Bus) send(p []byte) {
	b.cs.Write(rpio.Low)
	b.tx(p...)
	b.cs.Write(rpio.High)
}
