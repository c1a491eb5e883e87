package display

// OpKind identifies a recorded draw call.
type OpKind string

const (
	OpClear        OpKind = "clear"
	OpLine         OpKind = "line"
	OpRect         OpKind = "rect"
	OpFillRect     OpKind = "fill-rect"
	OpCircle       OpKind = "circle"
	OpFillCircle   OpKind = "fill-circle"
	OpFillTriangle OpKind = "fill-triangle"
	OpPrint        OpKind = "print"
)

// Op is a single recorded draw call.
type Op struct {
	Kind  OpKind
	Args  []int // coordinates/dimensions in call order
	Color Color
	Text  string // OpPrint only
}

// Fake is a test double that records every draw call and flush.
type Fake struct {
	// Ops contains draw calls recorded since the last Reset, in order.
	Ops []Op

	// Flushes counts calls to Flush.
	Flushes int

	// FlushError, if set, will be returned by Flush.
	FlushError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFake creates a Fake display driver.
func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) record(kind OpKind, c Color, text string, args ...int) {
	f.Ops = append(f.Ops, Op{Kind: kind, Args: args, Color: c, Text: text})
}

// Clear records a clear call.
func (f *Fake) Clear() {
	f.record(OpClear, ColorOff, "")
}

// Line records a line call.
func (f *Fake) Line(x0, y0, x1, y1 int, c Color) {
	f.record(OpLine, c, "", x0, y0, x1, y1)
}

// Rect records an unfilled rectangle call.
func (f *Fake) Rect(x, y, w, h int, c Color) {
	f.record(OpRect, c, "", x, y, w, h)
}

// FillRect records a filled rectangle call.
func (f *Fake) FillRect(x, y, w, h int, c Color) {
	f.record(OpFillRect, c, "", x, y, w, h)
}

// Circle records an unfilled circle call.
func (f *Fake) Circle(x, y, r int, c Color) {
	f.record(OpCircle, c, "", x, y, r)
}

// FillCircle records a filled circle call.
func (f *Fake) FillCircle(x, y, r int, c Color) {
	f.record(OpFillCircle, c, "", x, y, r)
}

// FillTriangle records a filled triangle call.
func (f *Fake) FillTriangle(x0, y0, x1, y1, x2, y2 int, c Color) {
	f.record(OpFillTriangle, c, "", x0, y0, x1, y1, x2, y2)
}

// Print records a text call.
func (f *Fake) Print(x, y int, text string) {
	f.record(OpPrint, ColorOn, text, x, y)
}

// Flush counts the flush.
func (f *Fake) Flush() error {
	if f.FlushError != nil {
		return f.FlushError
	}
	f.Flushes++
	return nil
}

// Close marks the driver as closed.
func (f *Fake) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded calls.
func (f *Fake) Reset() {
	f.Ops = nil
	f.Flushes = 0
	f.FlushError = nil
	f.Closed = false
}

// Prints returns the text of all recorded Print calls, in order.
func (f *Fake) Prints() []string {
	var out []string
	for _, op := range f.Ops {
		if op.Kind == OpPrint {
			out = append(out, op.Text)
		}
	}
	return out
}
