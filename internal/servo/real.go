//go:build linux

package servo

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/warthog618/go-gpiocdev"
)

// Pulse timing for a standard hobby servo: 50 Hz frame, 500-2500 us pulse
// across the 0-180 degree range.
const (
	framePeriod = 20 * time.Millisecond
	pulseMin    = 500 * time.Microsecond
	pulseMax    = 2500 * time.Microsecond
)

// signalLine is the slice of the GPIO line API the pulse goroutine needs.
type signalLine interface {
	SetValue(value int) error
	Close() error
}

// RealWriter drives a servo by software PWM on a GPIO character device line.
// A background goroutine emits one pulse per frame; Write only updates the
// pulse width, so it returns immediately.
type RealWriter struct {
	chip *gpiocdev.Chip
	line signalLine

	// pulse width in nanoseconds, read by the pulse goroutine
	pulseNs atomic.Int64

	done    chan struct{}
	stopped chan struct{}
}

// NewRealWriter requests the signal line as output and starts the pulse
// goroutine with the servo centered.
func NewRealWriter(chipName string, pin int) (*RealWriter, error) {
	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request servo pin %d: %w", pin, err)
	}

	w := &RealWriter{
		chip:    chip,
		line:    line,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	w.pulseNs.Store(int64(pulseWidth(CenterAngle)))
	go w.pulseLoop()
	return w, nil
}

// Write updates the pulse width for the given angle.
func (w *RealWriter) Write(angle int) error {
	if !InRange(angle) {
		return fmt.Errorf("angle %d out of range [%d, %d]", angle, MinAngle, MaxAngle)
	}
	w.pulseNs.Store(int64(pulseWidth(angle)))
	return nil
}

// pulseLoop emits one high pulse per 20 ms frame. Software PWM has scheduler
// jitter in the tens of microseconds, which is within what hobby servos
// tolerate.
func (w *RealWriter) pulseLoop() {
	defer close(w.stopped)

	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			width := time.Duration(w.pulseNs.Load())
			w.line.SetValue(1)
			time.Sleep(width)
			w.line.SetValue(0)
		}
	}
}

// Close stops the pulse goroutine, drives the line low, and releases GPIO
// resources. It waits for the goroutine to finish its current frame before
// touching the line, so no pulse write can race the teardown.
func (w *RealWriter) Close() error {
	close(w.done)
	<-w.stopped

	var errs []error
	if w.line != nil {
		if err := w.line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("drive servo line low: %w", err))
		}
		if err := w.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close servo line: %w", err))
		}
	}
	if w.chip != nil {
		if err := w.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// pulseWidth maps an angle in [MinAngle, MaxAngle] to a pulse duration.
func pulseWidth(angle int) time.Duration {
	span := int64(pulseMax - pulseMin)
	return pulseMin + time.Duration(span*int64(angle-MinAngle)/int64(MaxAngle-MinAngle))
}
