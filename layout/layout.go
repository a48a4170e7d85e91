// Package layout computes the panel regions of the weather screen.
//
// All functions are pure. Rectangles follow image.Rectangle conventions:
// Min is inclusive and Max is exclusive.
package layout

import (
	"errors"
	"fmt"
	"image"
)

// ErrLayout matches every *Error with errors.Is.
var ErrLayout = errors.New("layout: invalid geometry")

// Error reports degenerate layout input.
type Error struct {
	Field  string
	Value  any
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("layout: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrLayout.
func (e *Error) Is(target error) bool {
	return target == ErrLayout
}

// Opts configures Plan.
type Opts struct {
	Margin       int     // Space kept free around both panels (default: 0)
	Split        float64 // Fraction of the width taken by the left panel (default: 0.25)
	Columns      int     // Number of columns in the right panel (must be > 0)
	HeaderHeight int     // Height of the header inside the left panel (default: 50)
	Inset        int     // Padding between a panel border and its content (default: 10)
}

// DefaultOpts matches the weather screen of an 800x480 panel.
var DefaultOpts = Opts{
	Margin:       20,
	Split:        0.25,
	Columns:      4,
	HeaderHeight: 50,
	Inset:        10,
}

// Layout is the set of regions of the weather screen.
type Layout struct {
	Left    image.Rectangle   // Current conditions panel
	Right   image.Rectangle   // Forecast panel
	Header  image.Rectangle   // Title area inside Left
	Body    image.Rectangle   // Content area inside Left, below Header
	Columns []image.Rectangle // Equal-width slices of Right, left to right
}

// Borders returns the left and right panel rectangles of a w x h canvas.
//
// The left panel spans from margin to the split point. The right panel starts
// margin pixels after the split point. Both keep margin pixels free at the
// canvas edges.
func Borders(w, h, margin int, split float64) (left, right image.Rectangle, err error) {
	switch {
	case w <= 0:
		return left, right, &Error{"width", w, "must be positive"}
	case h <= 0:
		return left, right, &Error{"height", h, "must be positive"}
	case margin < 0:
		return left, right, &Error{"margin", margin, "must not be negative"}
	case 2*margin >= w || 2*margin >= h:
		return left, right, &Error{"margin", margin, fmt.Sprintf("must be less than half of %dx%d", w, h)}
	case split <= 0 || split >= 1:
		return left, right, &Error{"split", split, "must be within (0, 1)"}
	}
	sx := int(float64(w) * split)
	if sx <= margin {
		return left, right, &Error{"margin", margin, fmt.Sprintf("leaves no room left of split %d", sx)}
	}
	if sx+margin >= w-margin {
		return left, right, &Error{"margin", margin, fmt.Sprintf("leaves no room right of split %d", sx)}
	}
	left = image.Rect(margin, margin, sx, h-margin)
	right = image.Rect(sx+margin, margin, w-margin, h-margin)
	return left, right, nil
}

// Plan computes every region of a w x h canvas. opts may be nil; Columns
// defaults to 1 in that case.
func Plan(w, h int, opts *Opts) (*Layout, error) {
	o := Opts{Columns: 1}
	if opts != nil {
		o = *opts
	}
	if o.Split == 0 {
		o.Split = 0.25
	}
	if o.HeaderHeight == 0 {
		o.HeaderHeight = 50
	}
	if o.Inset == 0 {
		o.Inset = 10
	}
	if o.Columns <= 0 {
		return nil, &Error{"columns", o.Columns, "must be positive"}
	}
	if o.HeaderHeight < 0 {
		return nil, &Error{"header height", o.HeaderHeight, "must not be negative"}
	}
	if o.Inset < 0 {
		return nil, &Error{"inset", o.Inset, "must not be negative"}
	}

	left, right, err := Borders(w, h, o.Margin, o.Split)
	if err != nil {
		return nil, err
	}
	l := &Layout{Left: left, Right: right}

	in := left.Inset(o.Inset)
	if in.Dx() <= 0 || in.Dy() <= 0 || !in.In(left) {
		return nil, &Error{"inset", o.Inset, fmt.Sprintf("leaves no room in %v", left)}
	}
	l.Header = image.Rect(in.Min.X, in.Min.Y, in.Max.X, min(in.Min.Y+o.HeaderHeight, in.Max.Y))
	l.Body = image.Rect(in.Min.X, l.Header.Max.Y, in.Max.X, in.Max.Y)

	cw := right.Dx() / o.Columns
	if cw <= 0 {
		return nil, &Error{"columns", o.Columns, fmt.Sprintf("do not fit in %d pixels", right.Dx())}
	}
	l.Columns = make([]image.Rectangle, o.Columns)
	for i := range l.Columns {
		x := right.Min.X + i*cw
		l.Columns[i] = image.Rect(x, right.Min.Y, x+cw, right.Max.Y)
	}
	return l, nil
}

// Rects returns the non-overlapping regions in drawing order: the left
// panel followed by each column of the right panel.
func (l *Layout) Rects() []image.Rectangle {
	out := make([]image.Rectangle, 0, 1+len(l.Columns))
	out = append(out, l.Left)
	return append(out, l.Columns...)
}

// CenterLabel returns the x coordinate at which a label of n fixed-width
// glyphs is horizontally centered in col. Labels wider than col start at
// col.Min.X.
func CenterLabel(col image.Rectangle, glyphWidth, n int) int {
	x := col.Min.X + (col.Dx()-glyphWidth*n)/2
	return max(x, col.Min.X)
}
