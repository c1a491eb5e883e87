// Package servo provides single-axis actuator output with hardware abstraction.
// The real implementation bit-bangs 50 Hz servo pulses on a Linux GPIO
// character device line. The fake implementation records written angles.
package servo

// Valid angle range of the head servo in integer degrees.
const (
	MinAngle    = 0
	MaxAngle    = 180
	CenterAngle = 90
)

// Writer writes target angles to the actuator.
type Writer interface {
	// Write moves the servo to the given angle in degrees.
	// Angles outside [MinAngle, MaxAngle] are an error.
	Write(angle int) error

	// Close releases actuator resources.
	Close() error
}

// Default GPIO line (BCM numbering) for the servo signal wire.
const DefaultPin = 18

// InRange reports whether angle lies in the valid servo range.
func InRange(angle int) bool {
	return angle >= MinAngle && angle <= MaxAngle
}

// Clamp restricts angle to the valid servo range.
func Clamp(angle int) int {
	if angle < MinAngle {
		return MinAngle
	}
	if angle > MaxAngle {
		return MaxAngle
	}
	return angle
}
