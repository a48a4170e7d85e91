// Package bitplane provides the packed 1-bit-per-pixel canvases used to
// compose frames for bicolor e-paper panels.
//
// Pixels are stored row-major with 8 horizontally adjacent pixels per byte.
// The leftmost pixel of a byte is its most significant bit, which is the
// layout the panel controller expects on the wire:
//
//	Pixels: 0 1 2 3 4 5 6 7 | 8 9 ...
//	Bits:   7 6 5 4 3 2 1 0 | 7 6 ...
//
// A set bit is paper (White) and a cleared bit is ink (Black). Rows are
// padded to a whole number of bytes, so a canvas of width w has a stride of
// (w+7)/8 bytes.
//
// This package provides:
//
// - Canvas: one packed plane with rotation and silent clipping
// - Image: a black plane and an accent plane sharing the same geometry
//
// Example usage:
//
//	// An 800x480 panel mounted in portrait.
//	img, err := bitplane.NewImage(800, 480, bitplane.Rotate90, bitplane.White)
//	if err != nil {
//		return err
//	}
//
//	// Draw on an explicitly chosen plane.
//	black := img.Plane(bitplane.PlaneBlack)
//	black.StrokeRect(image.Rect(20, 20, 120, 200), bitplane.Black, 2)
//	black.ClearWindow(image.Rect(30, 30, 110, 60), bitplane.White)
//
// Canvas implements draw.Image with the periph image1bit color model, so
// golang.org/x/image/font drawers and image/draw can target it directly.
package bitplane
