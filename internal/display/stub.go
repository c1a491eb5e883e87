//go:build !linux

package display

import "errors"

// Real is not available on non-Linux platforms.
type Real struct{}

// NewReal returns an error on non-Linux platforms.
func NewReal(busName string) (*Real, error) {
	return nil, errors.New("display: not supported on this platform (requires Linux)")
}

// Clear is not implemented on non-Linux platforms.
func (r *Real) Clear() {}

// Line is not implemented on non-Linux platforms.
func (r *Real) Line(x0, y0, x1, y1 int, c Color) {}

// Rect is not implemented on non-Linux platforms.
func (r *Real) Rect(x, y, w, h int, c Color) {}

// FillRect is not implemented on non-Linux platforms.
func (r *Real) FillRect(x, y, w, h int, c Color) {}

// Circle is not implemented on non-Linux platforms.
func (r *Real) Circle(x, y, rad int, c Color) {}

// FillCircle is not implemented on non-Linux platforms.
func (r *Real) FillCircle(x, y, rad int, c Color) {}

// FillTriangle is not implemented on non-Linux platforms.
func (r *Real) FillTriangle(x0, y0, x1, y1, x2, y2 int, c Color) {}

// Print is not implemented on non-Linux platforms.
func (r *Real) Print(x, y int, text string) {}

// Flush is not implemented on non-Linux platforms.
func (r *Real) Flush() error {
	return errors.New("display: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *Real) Close() error {
	return nil
}
