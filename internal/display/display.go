// Package display provides monochrome display output with hardware abstraction.
// The real implementation drives an SSD1306 OLED over I2C.
// The fake implementation records draw calls so tests can assert on them.
package display

// Panel geometry (SSD1306, 128x64).
const (
	Width  = 128
	Height = 64
)

// Color is a monochrome pixel value.
type Color uint8

const (
	ColorOff Color = 0 // dark
	ColorOn  Color = 1 // lit
)

// Driver accepts primitive draw calls followed by a Flush that pushes the
// frame to hardware. Nothing is visible until Flush is called.
type Driver interface {
	// Clear resets the whole frame to dark.
	Clear()

	// Line draws a one-pixel line from (x0,y0) to (x1,y1).
	Line(x0, y0, x1, y1 int, c Color)

	// Rect draws an unfilled rectangle with top-left corner (x,y).
	Rect(x, y, w, h int, c Color)

	// FillRect draws a filled rectangle with top-left corner (x,y).
	FillRect(x, y, w, h int, c Color)

	// Circle draws an unfilled circle centered at (x,y).
	Circle(x, y, r int, c Color)

	// FillCircle draws a filled circle centered at (x,y).
	FillCircle(x, y, r int, c Color)

	// FillTriangle draws a filled triangle with the given vertices.
	FillTriangle(x0, y0, x1, y1, x2, y2 int, c Color)

	// Print draws text with its top-left corner at (x,y).
	Print(x, y int, text string)

	// Flush pushes the frame to hardware.
	Flush() error

	// Close releases display resources.
	Close() error
}
