// Package face contains pure rendering of the desk bot's facial expressions
// and text overlays. This package has NO hardware dependencies — it emits
// draw primitives to a display.Driver and never touches state or time.
package face

// Expression is the enumerated facial mood currently selected.
// The set is closed; there is no dynamic registration.
type Expression int

const (
	Neutral Expression = iota
	Happy
	Sad
	Angry
	Grinning
	Scared
)

// String returns the uppercase name of the expression, matching the names
// used in command confirmations and MQTT payloads.
func (e Expression) String() string {
	switch e {
	case Neutral:
		return "NEUTRAL"
	case Happy:
		return "HAPPY"
	case Sad:
		return "SAD"
	case Angry:
		return "ANGRY"
	case Grinning:
		return "GRINNING"
	case Scared:
		return "SCARED"
	}
	return "UNKNOWN"
}

// BlinkPhase is whether the eyes are currently drawn open or closed.
// It is derived purely from elapsed time, never set by a command.
type BlinkPhase int

const (
	Open BlinkPhase = iota
	Closed
)

// String returns the uppercase name of the blink phase.
func (p BlinkPhase) String() string {
	if p == Closed {
		return "CLOSED"
	}
	return "OPEN"
}
