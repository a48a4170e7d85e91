// Package epd7in5b controls a Waveshare 7.5" (B) V2 black/white/red
// e-paper panel.
//
// See the examples for how to use this package.
package epd7in5b

import (
	"errors"
	"fmt"
	"time"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// DefaultFrequency is the SPI clock used when NewSPI is given 0.
const DefaultFrequency = 4 * physic.MegaHertz

var _ Bus = (*Dev)(nil)

// Dev is a periph.io SPI and GPIO connection to the panel. It implements Bus.
type Dev struct {
	// Communication
	c     conn.Conn   // SPI connection
	dc    gpio.PinOut // Data/Command pin
	rst   gpio.PinOut // Reset pin
	busy  gpio.PinIn  // Busy pin, low while the panel is working
	maxTx int         // Largest single SPI transfer

	sleep func(time.Duration)
}

// NewSPI connects to the panel over SPI.
//
// The SPI port is configured for Mode0 (CPOL=0, CPHA=0), 8-bit transfers at
// f, or DefaultFrequency when f is 0. dc and rst must be outputs and busy an
// input.
func NewSPI(p spi.Port, dc, rst gpio.PinOut, busy gpio.PinIn, f physic.Frequency) (*Dev, error) {
	if dc == nil || rst == nil || busy == nil {
		return nil, errors.New("epd7in5b: dc, rst and busy pins are required")
	}
	if f == 0 {
		f = DefaultFrequency
	}
	c, err := p.Connect(f, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("epd7in5b: failed to connect SPI: %w", err)
	}
	if err := busy.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("epd7in5b: failed to set BUSY as input: %w", err)
	}
	maxTx := 4096
	if l, ok := c.(conn.Limits); ok && l.MaxTxSize() > 0 {
		maxTx = l.MaxTxSize()
	}
	return &Dev{
		c:     c,
		dc:    dc,
		rst:   rst,
		busy:  busy,
		maxTx: maxTx,
		sleep: time.Sleep,
	}, nil
}

// Reset pulses RST low for 4ms between two 200ms high periods.
func (d *Dev) Reset() error {
	for _, step := range []struct {
		l gpio.Level
		t time.Duration
	}{
		{gpio.High, 200 * time.Millisecond},
		{gpio.Low, 4 * time.Millisecond},
		{gpio.High, 200 * time.Millisecond},
	} {
		if err := d.rst.Out(step.l); err != nil {
			return fmt.Errorf("epd7in5b: failed to drive RST %v: %w", step.l, err)
		}
		d.sleep(step.t)
	}
	return nil
}

// Command sends a command byte followed by its parameters.
func (d *Dev) Command(cmd byte, data ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return d.Data(data)
}

// Data sends data bytes, split to fit the port transfer limit.
func (d *Dev) Data(pix []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(pix) > 0 {
		n := min(len(pix), d.maxTx)
		if err := d.c.Tx(pix[:n], nil); err != nil {
			return err
		}
		pix = pix[n:]
	}
	return nil
}

// Busy reports whether the BUSY line is low.
func (d *Dev) Busy() (bool, error) {
	return d.busy.Read() == gpio.Low, nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("epd7in5b.Dev{%s}", d.c)
}
