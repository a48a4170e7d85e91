// Package paint draws primitives and fixed-cell text onto 1-bit surfaces.
//
// Every function takes its target explicitly. A full-frame plane and a small
// partial-window scratch canvas are drawn with the same calls; coordinates
// falling outside the target are clipped by the surface.
package paint

import (
	"image"
	"math"
	"sort"

	"github.com/flavioheleno/epd7in5b/bitplane"
)

// Surface is a drawing target. *bitplane.Canvas implements it.
type Surface interface {
	Bounds() image.Rectangle
	Background() bitplane.Color
	SetPixel(x, y int, c bitplane.Color)
	FillRect(r image.Rectangle, c bitplane.Color)
}

// Stroke describes how outlines are drawn.
type Stroke struct {
	Width  int  // Side of the square pen in pixels (default: 1)
	Dotted bool // Every third pen step is drawn in the background color
}

// Thin is a solid one pixel stroke.
var Thin = Stroke{Width: 1}

func (s Stroke) width() int {
	if s.Width < 1 {
		return 1
	}
	return s.Width
}

// Point draws a square pen of side st.Width centered on (x, y).
func Point(s Surface, x, y int, c bitplane.Color, st Stroke) {
	w := st.width()
	if w == 1 {
		s.SetPixel(x, y, c)
		return
	}
	lo := (w - 1) / 2
	s.FillRect(image.Rect(x-lo, y-lo, x-lo+w, y-lo+w), c)
}

// Line draws a line from (x0, y0) to (x1, y1), both ends included.
func Line(s Surface, x0, y0, x1, y1 int, c bitplane.Color, st Stroke) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	steps := 0
	for {
		steps++
		if st.Dotted && steps%3 == 0 {
			Point(s, x0, y0, s.Background(), st)
		} else {
			Point(s, x0, y0, c, st)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Rectangle draws r. When fill is false the outline is st.Width pixels wide
// and lies inside r, so the outer corners are exactly r.Min and
// r.Max-(1,1).
func Rectangle(s Surface, r image.Rectangle, c bitplane.Color, st Stroke, fill bool) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	w := st.width()
	if fill || 2*w >= r.Dx() || 2*w >= r.Dy() {
		s.FillRect(r, c)
		return
	}
	if st.Dotted {
		x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
		pen := Stroke{Width: 1, Dotted: true}
		for i := 0; i < w; i++ {
			Line(s, x0+i, y0+i, x1-i, y0+i, c, pen)
			Line(s, x0+i, y1-i, x1-i, y1-i, c, pen)
			Line(s, x0+i, y0+i, x0+i, y1-i, c, pen)
			Line(s, x1-i, y0+i, x1-i, y1-i, c, pen)
		}
		return
	}
	s.FillRect(image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), c)
	s.FillRect(image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), c)
	s.FillRect(image.Rect(r.Min.X, r.Min.Y+w, r.Min.X+w, r.Max.Y-w), c)
	s.FillRect(image.Rect(r.Max.X-w, r.Min.Y+w, r.Max.X, r.Max.Y-w), c)
}

// Circle draws a circle of the given radius centered on (cx, cy) with the
// midpoint algorithm.
func Circle(s Surface, cx, cy, radius int, c bitplane.Color, st Stroke, fill bool) {
	if radius < 0 {
		return
	}
	x, y := 0, radius
	esp := 3 - 2*radius
	for x <= y {
		if fill {
			s.FillRect(image.Rect(cx-x, cy-y, cx+x+1, cy-y+1), c)
			s.FillRect(image.Rect(cx-x, cy+y, cx+x+1, cy+y+1), c)
			s.FillRect(image.Rect(cx-y, cy-x, cx+y+1, cy-x+1), c)
			s.FillRect(image.Rect(cx-y, cy+x, cx+y+1, cy+x+1), c)
		} else {
			for _, p := range [8][2]int{
				{cx + x, cy - y}, {cx + y, cy - x}, {cx + y, cy + x}, {cx + x, cy + y},
				{cx - x, cy + y}, {cx - y, cy + x}, {cx - y, cy - x}, {cx - x, cy - y},
			} {
				Point(s, p[0], p[1], c, st)
			}
		}
		if esp < 0 {
			esp += 4*x + 6
		} else {
			esp += 10 + 4*(x-y)
			y--
		}
		x++
	}
}

// StarPoints returns the ten vertices of a five-pointed star of outer radius
// r centered on (cx, cy), first tip pointing up.
func StarPoints(cx, cy, r int) []image.Point {
	pts := make([]image.Point, 10)
	inner := float64(r) * 0.382
	for i := range pts {
		rad := float64(r)
		if i%2 == 1 {
			rad = inner
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		pts[i] = image.Point{
			X: cx + int(math.Round(rad*math.Cos(a))),
			Y: cy + int(math.Round(rad*math.Sin(a))),
		}
	}
	return pts
}

// Star draws the outline of a five-pointed star.
func Star(s Surface, cx, cy, r int, c bitplane.Color, st Stroke) {
	Polygon(s, StarPoints(cx, cy, r), c, st, false)
}

// Polygon draws the closed polygon through pts. Filled polygons use the
// even-odd rule sampled at pixel centers.
func Polygon(s Surface, pts []image.Point, c bitplane.Color, st Stroke, fill bool) {
	if len(pts) == 0 {
		return
	}
	if fill {
		fillPolygon(s, pts, c)
	}
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		Line(s, p.X, p.Y, q.X, q.Y, c, st)
	}
}

func fillPolygon(s Surface, pts []image.Point, c bitplane.Color) {
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts {
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}
	b := s.Bounds()
	minY = max(minY, b.Min.Y)
	maxY = min(maxY, b.Max.Y-1)

	xs := make([]float64, 0, len(pts))
	for y := minY; y <= maxY; y++ {
		yc := float64(y) + 0.5
		xs = xs[:0]
		for i, p := range pts {
			q := pts[(i+1)%len(pts)]
			if (float64(p.Y) <= yc) == (float64(q.Y) <= yc) {
				continue
			}
			t := (yc - float64(p.Y)) / float64(q.Y-p.Y)
			xs = append(xs, float64(p.X)+t*float64(q.X-p.X))
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Ceil(xs[i] - 0.5))
			x1 := int(math.Floor(xs[i+1] - 0.5))
			if x1 >= x0 {
				s.FillRect(image.Rect(x0, y, x1+1, y+1), c)
			}
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
