package display

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Frame rasterizes draw primitives into an in-memory grayscale image.
// The real driver pushes the image to the panel on Flush; tests can inspect
// pixels directly.
type Frame struct {
	img *image.Gray
}

// NewFrame creates a dark Frame with the panel dimensions.
func NewFrame() *Frame {
	return &Frame{img: image.NewGray(image.Rect(0, 0, Width, Height))}
}

// Image returns the backing image.
func (f *Frame) Image() *image.Gray {
	return f.img
}

// Pixel reports whether the pixel at (x,y) is lit.
// Out-of-bounds coordinates report false.
func (f *Frame) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f.img.GrayAt(x, y).Y != 0
}

func (f *Frame) set(x, y int, c Color) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	v := uint8(0)
	if c == ColorOn {
		v = 0xFF
	}
	f.img.SetGray(x, y, color.Gray{Y: v})
}

// Clear resets the frame to dark.
func (f *Frame) Clear() {
	for i := range f.img.Pix {
		f.img.Pix[i] = 0
	}
}

// Line draws a one-pixel line using Bresenham's algorithm.
func (f *Frame) Line(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		f.set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Rect draws an unfilled rectangle.
func (f *Frame) Rect(x, y, w, h int, c Color) {
	if w <= 0 || h <= 0 {
		return
	}
	f.Line(x, y, x+w-1, y, c)
	f.Line(x, y+h-1, x+w-1, y+h-1, c)
	f.Line(x, y, x, y+h-1, c)
	f.Line(x+w-1, y, x+w-1, y+h-1, c)
}

// FillRect draws a filled rectangle.
func (f *Frame) FillRect(x, y, w, h int, c Color) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			f.set(xx, yy, c)
		}
	}
}

// Circle draws an unfilled circle using the midpoint algorithm.
func (f *Frame) Circle(cx, cy, r int, c Color) {
	x, y := r, 0
	err := 1 - r
	for x >= y {
		f.set(cx+x, cy+y, c)
		f.set(cx+y, cy+x, c)
		f.set(cx-y, cy+x, c)
		f.set(cx-x, cy+y, c)
		f.set(cx-x, cy-y, c)
		f.set(cx-y, cy-x, c)
		f.set(cx+y, cy-x, c)
		f.set(cx+x, cy-y, c)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// FillCircle draws a filled circle by testing the squared distance per row.
func (f *Frame) FillCircle(cx, cy, r int, c Color) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				f.set(cx+dx, cy+dy, c)
			}
		}
	}
}

// FillTriangle draws a filled triangle using edge functions over the
// bounding box.
func (f *Frame) FillTriangle(x0, y0, x1, y1, x2, y2 int, c Color) {
	minX := min3(x0, x1, x2)
	maxX := max3(x0, x1, x2)
	minY := min3(y0, y1, y2)
	maxY := max3(y0, y1, y2)

	edge := func(ax, ay, bx, by, px, py int) int {
		return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
	}

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			w0 := edge(x0, y0, x1, y1, x, y)
			w1 := edge(x1, y1, x2, y2, x, y)
			w2 := edge(x2, y2, x0, y0, x, y)
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				f.set(x, y, c)
			}
		}
	}
}

// Print draws text with its top-left corner at (x,y) using the fixed 7x13
// basicfont face.
func (f *Frame) Print(x, y int, text string) {
	d := font.Drawer{
		Dst:  f.img,
		Src:  image.White,
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+basicfont.Face7x13.Ascent),
	}
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func max3(a, b, c int) int {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
