// Package anim contains the animation scheduler: the state machine that owns
// what should currently be shown on the display. This package has NO external
// dependencies (no display, MQTT, OS, or time.Sleep). Time is always
// injectable via time.Time parameters.
package anim

import (
	"time"

	"github.com/sweeney/desk-bot/internal/face"
)

// Timing rules. The blink-open hold is measured from the last recorded blink
// change; see Advance for the deliberate asymmetry on the closed-to-open
// edge.
const (
	BlinkOpenHold   = 3000 * time.Millisecond
	BlinkClosedHold = 200 * time.Millisecond
	OverlayDuration = 10 * time.Second
)

// Mode is the top-level scheduler state.
type Mode int

const (
	ShowingFace Mode = iota
	ShowingText
)

// View describes what should currently be on the screen.
type View struct {
	Mode       Mode
	Expression face.Expression
	Phase      face.BlinkPhase
	Text       string // ShowingText only
}

// EventType represents a scheduler state change to be published.
type EventType string

const (
	EventExpressionSet  EventType = "EXPRESSION_SET"
	EventOverlayShown   EventType = "OVERLAY_SHOWN"
	EventOverlayExpired EventType = "OVERLAY_EXPIRED"
)

// Event represents a scheduler state change.
type Event struct {
	Timestamp  time.Time
	Type       EventType
	Expression face.Expression
	Text       string // overlay text, where applicable
}

type overlay struct {
	text     string
	deadline time.Time
}

// Scheduler owns the current expression, blink phase, and optional text
// overlay. It is the only owner of this state; callers mutate it through
// SetExpression, ShowText, and Advance.
type Scheduler struct {
	expr            face.Expression
	phase           face.BlinkPhase
	lastBlinkChange time.Time
	overlay         *overlay
}

// New creates a Scheduler showing a Neutral face with open eyes.
// The blink timer baseline starts at start.
func New(start time.Time) *Scheduler {
	return &Scheduler{
		expr:            face.Neutral,
		phase:           face.Open,
		lastBlinkChange: start,
	}
}

// SetExpression selects a new expression, keeping the current blink phase.
// It cancels any active text overlay. The caller must re-render immediately.
func (s *Scheduler) SetExpression(e face.Expression, now time.Time) Event {
	s.expr = e
	s.overlay = nil
	return Event{Timestamp: now, Type: EventExpressionSet, Expression: e}
}

// ShowText activates a text overlay for OverlayDuration. While the overlay
// is active, face re-rendering and blink-triggered redraws are suspended.
// The caller must render the overlay immediately.
func (s *Scheduler) ShowText(text string, now time.Time) Event {
	s.overlay = &overlay{text: text, deadline: now.Add(OverlayDuration)}
	return Event{Timestamp: now, Type: EventOverlayShown, Expression: s.expr, Text: text}
}

// Advance evaluates timers for one tick. It reports whether the screen needs
// a redraw, plus any events to publish.
func (s *Scheduler) Advance(now time.Time) (redraw bool, events []Event) {
	if s.overlay != nil {
		if now.Before(s.overlay.deadline) {
			// Overlay active: blink timers advance with the clock but must
			// not trigger a redraw of the face.
			return false, nil
		}
		text := s.overlay.text
		s.overlay = nil
		s.phase = face.Open
		s.lastBlinkChange = now
		return true, []Event{{
			Timestamp:  now,
			Type:       EventOverlayExpired,
			Expression: s.expr,
			Text:       text,
		}}
	}

	switch s.phase {
	case face.Open:
		if now.Sub(s.lastBlinkChange) > BlinkOpenHold {
			s.phase = face.Closed
			s.lastBlinkChange = now
			return true, nil
		}
	case face.Closed:
		if now.Sub(s.lastBlinkChange) > BlinkClosedHold {
			// lastBlinkChange is intentionally NOT rebased here: the next
			// close fires BlinkOpenHold after the previous close edge. This
			// matches the original device's timing.
			s.phase = face.Open
			return true, nil
		}
	}
	return false, nil
}

// View returns what should currently be drawn.
func (s *Scheduler) View() View {
	if s.overlay != nil {
		return View{Mode: ShowingText, Expression: s.expr, Phase: s.phase, Text: s.overlay.text}
	}
	return View{Mode: ShowingFace, Expression: s.expr, Phase: s.phase}
}

// Expression returns the currently selected expression. It persists while a
// text overlay is active.
func (s *Scheduler) Expression() face.Expression {
	return s.expr
}

// Phase returns the current blink phase.
func (s *Scheduler) Phase() face.BlinkPhase {
	return s.phase
}

// OverlayActive reports whether a text overlay currently preempts the face.
func (s *Scheduler) OverlayActive() bool {
	return s.overlay != nil
}
