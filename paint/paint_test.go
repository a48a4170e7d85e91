package paint

import (
	"image"
	"strings"
	"testing"

	"github.com/flavioheleno/epd7in5b/bitplane"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCanvas(t *testing.T, w, h int, bg bitplane.Color) *bitplane.Canvas {
	t.Helper()
	c, err := bitplane.New(image.Rect(0, 0, w, h), bg)
	require.NoError(t, err)
	return c
}

// render returns the canvas as rows of '#' (black) and '.' (white).
func render(c *bitplane.Canvas) []string {
	b := c.Bounds()
	rows := make([]string, 0, b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		var sb strings.Builder
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.ColorAt(x, y) == bitplane.Black {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		rows = append(rows, sb.String())
	}
	return rows
}

func blackPixels(c *bitplane.Canvas) []image.Point {
	var pts []image.Point
	b := c.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if c.ColorAt(x, y) == bitplane.Black {
				pts = append(pts, image.Pt(x, y))
			}
		}
	}
	return pts
}

func TestPoint(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  image.Rectangle
	}{
		{"default", 0, image.Rect(5, 5, 6, 6)},
		{"1x1", 1, image.Rect(5, 5, 6, 6)},
		{"2x2", 2, image.Rect(5, 5, 7, 7)},
		{"3x3", 3, image.Rect(4, 4, 7, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCanvas(t, 12, 12, bitplane.White)
			Point(c, 5, 5, bitplane.Black, Stroke{Width: tt.width})
			for _, p := range blackPixels(c) {
				assert.True(t, p.In(tt.want), "unexpected ink at %v", p)
			}
			assert.Len(t, blackPixels(c), tt.want.Dx()*tt.want.Dy())
		})
	}
}

func TestLine(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
		want           []image.Point
	}{
		{"horizontal", 1, 0, 4, 0, []image.Point{{1, 0}, {2, 0}, {3, 0}, {4, 0}}},
		{"vertical up", 2, 3, 2, 1, []image.Point{{2, 1}, {2, 2}, {2, 3}}},
		{"diagonal", 0, 0, 3, 3, []image.Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"anti diagonal", 3, 0, 0, 3, []image.Point{{3, 0}, {2, 1}, {1, 2}, {0, 3}}},
		{"single point", 2, 2, 2, 2, []image.Point{{2, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCanvas(t, 8, 8, bitplane.White)
			Line(c, tt.x0, tt.y0, tt.x1, tt.y1, bitplane.Black, Thin)
			assert.ElementsMatch(t, tt.want, blackPixels(c))
		})
	}
}

func TestLineDotted(t *testing.T) {
	c := newCanvas(t, 10, 1, bitplane.White)
	Line(c, 0, 0, 8, 0, bitplane.Black, Stroke{Width: 1, Dotted: true})
	assert.Equal(t, []string{"##.##.##.."}, render(c))
}

func TestLineClipped(t *testing.T) {
	c := newCanvas(t, 4, 4, bitplane.White)
	Line(c, -3, 1, 10, 1, bitplane.Black, Stroke{Width: 3})
	assert.Equal(t, []string{"####", "####", "####", "...."}, render(c))
}

func TestRectangle(t *testing.T) {
	c := newCanvas(t, 8, 6, bitplane.White)
	Rectangle(c, image.Rect(1, 1, 7, 5), bitplane.Black, Thin, false)
	assert.Equal(t, []string{
		"........",
		".######.",
		".#....#.",
		".#....#.",
		".######.",
		"........",
	}, render(c))

	c = newCanvas(t, 8, 6, bitplane.White)
	Rectangle(c, image.Rect(7, 5, 1, 1), bitplane.Black, Thin, true)
	assert.Equal(t, []string{
		"........",
		".######.",
		".######.",
		".######.",
		".######.",
		"........",
	}, render(c))
}

func TestRectangleWideStroke(t *testing.T) {
	c := newCanvas(t, 10, 10, bitplane.White)
	Rectangle(c, image.Rect(0, 0, 10, 10), bitplane.Black, Stroke{Width: 2}, false)
	assert.Equal(t, bitplane.Black, c.ColorAt(0, 0))
	assert.Equal(t, bitplane.Black, c.ColorAt(9, 9))
	assert.Equal(t, bitplane.Black, c.ColorAt(1, 5))
	assert.Equal(t, bitplane.White, c.ColorAt(2, 5))
	assert.Equal(t, bitplane.Black, c.ColorAt(8, 5))
	assert.Equal(t, bitplane.White, c.ColorAt(7, 7))
}

func TestRectangleDotted(t *testing.T) {
	c := newCanvas(t, 8, 4, bitplane.White)
	Rectangle(c, image.Rect(0, 0, 8, 4), bitplane.Black, Stroke{Width: 1, Dotted: true}, false)
	assert.Equal(t, "##.##.##", render(c)[0])
	assert.Equal(t, bitplane.White, c.ColorAt(2, 0))
}

func TestCircle(t *testing.T) {
	c := newCanvas(t, 21, 21, bitplane.White)
	Circle(c, 10, 10, 3, bitplane.Black, Thin, false)
	for _, p := range []image.Point{{10, 7}, {13, 10}, {10, 13}, {7, 10}} {
		assert.Equal(t, bitplane.Black, c.ColorAt(p.X, p.Y), "outline at %v", p)
	}
	assert.Equal(t, bitplane.White, c.ColorAt(10, 10))

	c = newCanvas(t, 21, 21, bitplane.White)
	Circle(c, 10, 10, 3, bitplane.Black, Thin, true)
	for _, p := range []image.Point{{10, 10}, {10, 7}, {12, 11}, {7, 10}} {
		assert.Equal(t, bitplane.Black, c.ColorAt(p.X, p.Y), "inside at %v", p)
	}
	for _, p := range []image.Point{{10, 6}, {14, 10}, {6, 6}} {
		assert.Equal(t, bitplane.White, c.ColorAt(p.X, p.Y), "outside at %v", p)
	}
}

func TestStar(t *testing.T) {
	pts := StarPoints(20, 20, 10)
	require.Len(t, pts, 10)
	assert.Equal(t, image.Pt(20, 10), pts[0])
	assert.Equal(t, image.Pt(20, 24), pts[5])

	c := newCanvas(t, 40, 40, bitplane.White)
	Star(c, 20, 20, 10, bitplane.Black, Thin)
	assert.Equal(t, bitplane.Black, c.ColorAt(20, 10))
	assert.Equal(t, bitplane.White, c.ColorAt(20, 20))

	Polygon(c, pts, bitplane.Black, Thin, true)
	assert.Equal(t, bitplane.Black, c.ColorAt(20, 20))
	assert.Equal(t, bitplane.White, c.ColorAt(5, 5))
}

func TestPolygonFill(t *testing.T) {
	c := newCanvas(t, 12, 12, bitplane.White)
	Polygon(c, []image.Point{{2, 2}, {8, 2}, {8, 8}, {2, 8}}, bitplane.Black, Thin, true)
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			want := bitplane.White
			if x >= 2 && x <= 8 && y >= 2 && y <= 8 {
				want = bitplane.Black
			}
			assert.Equal(t, want, c.ColorAt(x, y), "pixel (%d, %d)", x, y)
		}
	}
	Polygon(c, nil, bitplane.Black, Thin, true)
}
