package epd7in5b

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/flavioheleno/epd7in5b/bitplane"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	opReset = -1
	opData  = -2
)

type busOp struct {
	cmd  int // command byte, opReset or opData
	data []byte
}

// fakeBus records the traffic a Panel generates.
type fakeBus struct {
	ops  []busOp
	busy []bool // successive Busy results, then false
	fail error
}

func (b *fakeBus) Reset() error {
	b.ops = append(b.ops, busOp{cmd: opReset})
	return b.fail
}

func (b *fakeBus) Command(cmd byte, data ...byte) error {
	b.ops = append(b.ops, busOp{cmd: int(cmd), data: append([]byte(nil), data...)})
	return b.fail
}

func (b *fakeBus) Data(pix []byte) error {
	b.ops = append(b.ops, busOp{cmd: opData, data: append([]byte(nil), pix...)})
	return b.fail
}

func (b *fakeBus) Busy() (bool, error) {
	if len(b.busy) == 0 {
		return false, nil
	}
	v := b.busy[0]
	b.busy = b.busy[1:]
	return v, nil
}

// cmds returns the command bytes sent, skipping data and resets.
func (b *fakeBus) cmds() []byte {
	var out []byte
	for _, op := range b.ops {
		if op.cmd >= 0 {
			out = append(out, byte(op.cmd))
		}
	}
	return out
}

// param returns the parameters of the first cmd sent.
func (b *fakeBus) param(cmd byte) []byte {
	for _, op := range b.ops {
		if op.cmd == int(cmd) {
			return op.data
		}
	}
	return nil
}

// payload returns the concatenated data sent after the first cmd.
func (b *fakeBus) payload(cmd byte) []byte {
	var out []byte
	seen := false
	for _, op := range b.ops {
		switch {
		case op.cmd == int(cmd) && !seen:
			seen = true
		case seen && op.cmd == opData:
			out = append(out, op.data...)
		case seen:
			return out
		}
	}
	return out
}

// newTestPanel returns a panel whose clock only moves when it sleeps.
func newTestPanel(t *testing.T, opts *Opts) (*Panel, *fakeBus, *time.Duration) {
	t.Helper()
	bus := &fakeBus{}
	p, err := NewPanel(bus, opts)
	require.NoError(t, err)
	var elapsed time.Duration
	start := time.Unix(0, 0)
	p.sleep = func(d time.Duration) { elapsed += d }
	p.now = func() time.Time { return start.Add(elapsed) }
	return p, bus, &elapsed
}

func TestNewPanel(t *testing.T) {
	tests := []struct {
		name    string
		bus     Bus
		opts    *Opts
		wantErr bool
	}{
		{"defaults", &fakeBus{}, nil, false},
		{"portrait", &fakeBus{}, &Opts{W: 384, H: 640}, false},
		{"odd width", &fakeBus{}, &Opts{W: 390, H: 640}, true},
		{"too wide", &fakeBus{}, &Opts{W: 1024, H: 640}, true},
		{"too tall", &fakeBus{}, &Opts{W: 800, H: 1024}, true},
		{"nil bus", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPanel(tt.bus, tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPanelInit(t *testing.T) {
	tests := []struct {
		name string
		init func(*Panel) error
		want []byte
	}{
		{"full", (*Panel).InitFull, []byte{0x01, 0x06, 0x04, 0x71, 0x00, 0x61, 0x15, 0x50, 0x60, 0x65}},
		{"fast", (*Panel).InitFast, []byte{0x00, 0x04, 0x71, 0x06, 0xE0, 0xE5, 0x50}},
		{"partial", (*Panel).InitPartial, []byte{0x00, 0x04, 0x71, 0xE0, 0xE5, 0x50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, bus, _ := newTestPanel(t, nil)
			require.NoError(t, tt.init(p))
			require.NotEmpty(t, bus.ops)
			assert.Equal(t, opReset, bus.ops[0].cmd)
			assert.Equal(t, tt.want, bus.cmds())
		})
	}
}

func TestPanelInitFullParams(t *testing.T) {
	p, bus, _ := newTestPanel(t, nil)
	require.NoError(t, p.InitFull())
	assert.Equal(t, []byte{0x03, 0x20, 0x01, 0xE0}, bus.param(0x61))
	assert.Equal(t, []byte{0x0F}, bus.param(0x00))
	assert.Equal(t, []byte{0x11, 0x07}, bus.param(0x50))
}

func TestPanelClear(t *testing.T) {
	p, bus, _ := newTestPanel(t, &Opts{W: 16, H: 2})
	require.NoError(t, p.Clear())
	assert.Equal(t, []byte{0x10, 0x13, 0x12, 0x71}, bus.cmds())
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, bus.payload(0x10))
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x00}, bus.payload(0x13))
}

func TestPanelWriteBase(t *testing.T) {
	p, bus, _ := newTestPanel(t, &Opts{W: 16, H: 1})
	require.NoError(t, p.WriteBase(bitplane.Black))
	assert.Equal(t, []byte{0x00, 0x00}, bus.payload(0x10))
	assert.Equal(t, []byte{0xFF, 0xFF}, bus.payload(0x13))
}

func TestPanelWriteFullFrame(t *testing.T) {
	p, bus, _ := newTestPanel(t, &Opts{W: 16, H: 2})
	black := []byte{0x0F, 0xFF, 0xFF, 0x00}
	accent := []byte{0xFF, 0xFE, 0xFF, 0xFF}
	require.NoError(t, p.WriteFullFrame(black, accent))
	assert.Equal(t, []byte{0x10, 0x13, 0x12, 0x71}, bus.cmds())
	assert.Equal(t, black, bus.payload(0x10))
	assert.Equal(t, []byte{0x00, 0x01, 0x00, 0x00}, bus.payload(0x13))

	err := p.WriteFullFrame(black[:3], accent)
	assert.ErrorIs(t, err, ErrInvalidImageSize)
}

func TestPanelWritePartialWindow(t *testing.T) {
	p, bus, _ := newTestPanel(t, &Opts{W: 32, H: 8})
	require.NoError(t, p.WritePartialWindow([]byte{0x0F, 0xF0}, image.Rect(8, 2, 16, 4)))
	assert.Equal(t, []byte{0x50, 0x91, 0x90, 0x13, 0x12, 0x71, 0x92}, bus.cmds())
	assert.Equal(t, []byte{0x00, 0x08, 0x00, 0x0F, 0x00, 0x02, 0x00, 0x03, 0x01}, bus.param(0x90))
	assert.Equal(t, []byte{0xF0, 0x0F}, bus.payload(0x13))

	tests := []struct {
		name string
		pix  []byte
		r    image.Rectangle
		want error
	}{
		{"unaligned start", []byte{0, 0}, image.Rect(4, 0, 12, 2), ErrWindow},
		{"unaligned end", []byte{0, 0}, image.Rect(8, 0, 12, 2), ErrWindow},
		{"outside", []byte{0}, image.Rect(32, 0, 40, 1), ErrWindow},
		{"short data", []byte{0}, image.Rect(8, 0, 16, 2), ErrInvalidImageSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, p.WritePartialWindow(tt.pix, tt.r), tt.want)
		})
	}
}

func TestPanelSleep(t *testing.T) {
	p, bus, elapsed := newTestPanel(t, nil)
	require.NoError(t, p.Sleep())
	assert.Equal(t, []byte{0x50, 0x02, 0x71, 0x07}, bus.cmds())
	assert.Equal(t, []byte{0xA5}, bus.param(0x07))
	assert.Equal(t, 2*time.Second, *elapsed)
}

func TestPanelBusyWait(t *testing.T) {
	p, bus, _ := newTestPanel(t, &Opts{W: 16, H: 1, PollInterval: 5 * time.Millisecond})
	bus.busy = []bool{true, true, false}
	require.NoError(t, p.WriteBase(bitplane.White))
	n := 0
	for _, c := range bus.cmds() {
		if c == 0x71 {
			n++
		}
	}
	assert.Equal(t, 3, n)
}

func TestPanelBusyTimeout(t *testing.T) {
	p, bus, _ := newTestPanel(t, &Opts{W: 16, H: 1, BusyTimeout: 50 * time.Millisecond, PollInterval: 10 * time.Millisecond})
	bus.busy = make([]bool, 100)
	for i := range bus.busy {
		bus.busy[i] = true
	}
	err := p.Clear()
	assert.ErrorIs(t, err, ErrBusyTimeout)
}

func TestPanelBusError(t *testing.T) {
	boom := errors.New("boom")
	p, bus, _ := newTestPanel(t, nil)
	bus.fail = boom
	assert.ErrorIs(t, p.InitFull(), boom)
	assert.Len(t, bus.ops, 1)
}

func TestPanelController(t *testing.T) {
	p, bus, _ := newTestPanel(t, &Opts{W: 16, H: 4})
	c, err := NewController(p, &Opts{W: 16, H: 4})
	require.NoError(t, err)
	require.NoError(t, c.InitFull())
	require.NoError(t, c.InitPartial())

	src, err := bitplane.New(image.Rect(2, 1, 5, 2), bitplane.Black)
	require.NoError(t, err)
	bus.ops = nil
	require.NoError(t, c.PushPartial(src, src.Bounds()))
	assert.Equal(t, []byte{0x00, 0x00, 0x00, 0x07, 0x00, 0x01, 0x00, 0x01, 0x01}, bus.param(0x90))
	assert.Equal(t, []byte{0x38}, bus.payload(0x13))
}
