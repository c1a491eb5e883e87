//go:build linux

package display

import (
	"fmt"
	"image"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

// Real drives an SSD1306 OLED over I2C. Draw primitives rasterize into an
// in-memory frame; Flush pushes the whole frame to the panel.
type Real struct {
	bus   i2c.BusCloser
	dev   *ssd1306.Dev
	frame *Frame
}

// NewReal opens the given I2C bus (empty string = first available) and
// initializes the panel. The ssd1306 driver talks to address 0x3C, which is
// what the desk bot's OLED module uses.
func NewReal(busName string) (*Real, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	opts := ssd1306.DefaultOpts
	opts.W = Width
	opts.H = Height
	dev, err := ssd1306.NewI2C(bus, &opts)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("init ssd1306: %w", err)
	}

	return &Real{
		bus:   bus,
		dev:   dev,
		frame: NewFrame(),
	}, nil
}

// Clear resets the frame to dark. Takes effect at the next Flush.
func (r *Real) Clear() {
	r.frame.Clear()
}

// Line draws a line into the frame.
func (r *Real) Line(x0, y0, x1, y1 int, c Color) {
	r.frame.Line(x0, y0, x1, y1, c)
}

// Rect draws an unfilled rectangle into the frame.
func (r *Real) Rect(x, y, w, h int, c Color) {
	r.frame.Rect(x, y, w, h, c)
}

// FillRect draws a filled rectangle into the frame.
func (r *Real) FillRect(x, y, w, h int, c Color) {
	r.frame.FillRect(x, y, w, h, c)
}

// Circle draws an unfilled circle into the frame.
func (r *Real) Circle(x, y, rad int, c Color) {
	r.frame.Circle(x, y, rad, c)
}

// FillCircle draws a filled circle into the frame.
func (r *Real) FillCircle(x, y, rad int, c Color) {
	r.frame.FillCircle(x, y, rad, c)
}

// FillTriangle draws a filled triangle into the frame.
func (r *Real) FillTriangle(x0, y0, x1, y1, x2, y2 int, c Color) {
	r.frame.FillTriangle(x0, y0, x1, y1, x2, y2, c)
}

// Print draws text into the frame.
func (r *Real) Print(x, y int, text string) {
	r.frame.Print(x, y, text)
}

// Flush pushes the frame to the panel.
func (r *Real) Flush() error {
	if err := r.dev.Draw(r.dev.Bounds(), r.frame.Image(), image.Point{}); err != nil {
		return fmt.Errorf("draw frame: %w", err)
	}
	return nil
}

// Close blanks the panel and releases the I2C bus.
func (r *Real) Close() error {
	r.frame.Clear()
	if err := r.dev.Draw(r.dev.Bounds(), r.frame.Image(), image.Point{}); err != nil {
		r.bus.Close()
		return fmt.Errorf("blank panel: %w", err)
	}
	if err := r.bus.Close(); err != nil {
		return fmt.Errorf("close i2c bus: %w", err)
	}
	return nil
}
