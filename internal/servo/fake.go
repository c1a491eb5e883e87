package servo

import "fmt"

// FakeWriter records written angles for test assertions.
type FakeWriter struct {
	// Angles contains every angle written, in order.
	Angles []int

	// WriteError, if set, will be returned by Write.
	WriteError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeWriter creates a FakeWriter for testing.
func NewFakeWriter() *FakeWriter {
	return &FakeWriter{}
}

// Write records the angle.
func (f *FakeWriter) Write(angle int) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	if !InRange(angle) {
		return fmt.Errorf("angle %d out of range [%d, %d]", angle, MinAngle, MaxAngle)
	}
	f.Angles = append(f.Angles, angle)
	return nil
}

// Close marks the writer as closed.
func (f *FakeWriter) Close() error {
	f.Closed = true
	return nil
}

// Last returns the most recently written angle, or CenterAngle if none.
func (f *FakeWriter) Last() int {
	if len(f.Angles) == 0 {
		return CenterAngle
	}
	return f.Angles[len(f.Angles)-1]
}

// Reset clears recorded angles.
func (f *FakeWriter) Reset() {
	f.Angles = nil
	f.WriteError = nil
	f.Closed = false
}
