package anim

import (
	"testing"
	"time"

	"github.com/sweeney/desk-bot/internal/face"
)

func startTime() time.Time {
	return time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
}

func TestNewScheduler(t *testing.T) {
	s := New(startTime())
	v := s.View()
	if v.Mode != ShowingFace {
		t.Errorf("mode: got %v, want ShowingFace", v.Mode)
	}
	if v.Expression != face.Neutral {
		t.Errorf("expression: got %s, want NEUTRAL", v.Expression)
	}
	if v.Phase != face.Open {
		t.Errorf("phase: got %s, want OPEN", v.Phase)
	}
	if s.OverlayActive() {
		t.Error("new scheduler should not have an overlay")
	}
}

func TestBlinkCloseAfterOpenHold(t *testing.T) {
	t0 := startTime()
	s := New(t0)

	// Exactly at the boundary: strictly-greater comparison, no change yet.
	redraw, _ := s.Advance(t0.Add(BlinkOpenHold))
	if redraw {
		t.Error("blink closed at the boundary; want strictly after")
	}

	redraw, events := s.Advance(t0.Add(BlinkOpenHold + time.Millisecond))
	if !redraw {
		t.Fatal("expected redraw when blink closes")
	}
	if len(events) != 0 {
		t.Errorf("blink produced %d events, want 0", len(events))
	}
	if s.Phase() != face.Closed {
		t.Errorf("phase: got %s, want CLOSED", s.Phase())
	}
}

func TestBlinkReopenAfterClosedHold(t *testing.T) {
	t0 := startTime()
	s := New(t0)

	closeAt := t0.Add(BlinkOpenHold + time.Millisecond)
	s.Advance(closeAt)

	redraw, _ := s.Advance(closeAt.Add(BlinkClosedHold))
	if redraw {
		t.Error("blink reopened at the boundary; want strictly after")
	}
	redraw, _ = s.Advance(closeAt.Add(BlinkClosedHold + time.Millisecond))
	if !redraw {
		t.Fatal("expected redraw when blink reopens")
	}
	if s.Phase() != face.Open {
		t.Errorf("phase: got %s, want OPEN", s.Phase())
	}
}

// TestBlinkTimerNotRebasedOnReopen covers the deliberate timing asymmetry:
// the closed-to-open edge does not rebase the blink timer, so the next close
// fires measured from the previous close edge, not from the reopen.
func TestBlinkTimerNotRebasedOnReopen(t *testing.T) {
	t0 := startTime()
	s := New(t0)

	closeAt := t0.Add(BlinkOpenHold + time.Millisecond)
	s.Advance(closeAt) // Open -> Closed
	reopenAt := closeAt.Add(BlinkClosedHold + time.Millisecond)
	s.Advance(reopenAt) // Closed -> Open, timer still at closeAt

	// Measured from the reopen this is far too early, but measured from the
	// close edge the hold has elapsed.
	nextClose := closeAt.Add(BlinkOpenHold + time.Millisecond)
	redraw, _ := s.Advance(nextClose)
	if !redraw {
		t.Fatal("expected second close measured from the previous close edge")
	}
	if s.Phase() != face.Closed {
		t.Errorf("phase: got %s, want CLOSED", s.Phase())
	}
}

func TestSetExpressionKeepsPhase(t *testing.T) {
	t0 := startTime()
	s := New(t0)

	// Close the eyes first.
	closeAt := t0.Add(BlinkOpenHold + time.Millisecond)
	s.Advance(closeAt)

	ev := s.SetExpression(face.Happy, closeAt)
	if ev.Type != EventExpressionSet {
		t.Errorf("event type: got %s, want %s", ev.Type, EventExpressionSet)
	}
	v := s.View()
	if v.Expression != face.Happy {
		t.Errorf("expression: got %s, want HAPPY", v.Expression)
	}
	if v.Phase != face.Closed {
		t.Errorf("phase: got %s, want CLOSED (commands keep the current phase)", v.Phase)
	}
}

func TestOverlayLifecycle(t *testing.T) {
	t0 := startTime()
	s := New(t0)
	s.SetExpression(face.Grinning, t0)

	ev := s.ShowText("Hello", t0)
	if ev.Type != EventOverlayShown || ev.Text != "Hello" {
		t.Errorf("event: got %s %q, want %s %q", ev.Type, ev.Text, EventOverlayShown, "Hello")
	}

	v := s.View()
	if v.Mode != ShowingText || v.Text != "Hello" {
		t.Errorf("view: got mode=%v text=%q, want ShowingText %q", v.Mode, v.Text, "Hello")
	}

	// Just before the deadline: still showing text, no redraw.
	redraw, events := s.Advance(t0.Add(OverlayDuration - time.Millisecond))
	if redraw || len(events) != 0 {
		t.Errorf("before deadline: redraw=%v events=%d, want none", redraw, len(events))
	}

	// At the deadline: back to the last expression with eyes forced open.
	redraw, events = s.Advance(t0.Add(OverlayDuration))
	if !redraw {
		t.Fatal("expected redraw at overlay expiry")
	}
	if len(events) != 1 || events[0].Type != EventOverlayExpired {
		t.Fatalf("events: got %v, want one %s", events, EventOverlayExpired)
	}
	v = s.View()
	if v.Mode != ShowingFace || v.Expression != face.Grinning || v.Phase != face.Open {
		t.Errorf("view after expiry: got %+v, want ShowingFace GRINNING OPEN", v)
	}
}

// TestOverlaySuppressesBlinkRedraws verifies that while an overlay is active,
// elapsed blink intervals never trigger a redraw, and the blink baseline is
// rebased when the face returns.
func TestOverlaySuppressesBlinkRedraws(t *testing.T) {
	t0 := startTime()
	s := New(t0)
	s.ShowText("wait", t0)

	// Several blink intervals elapse under the overlay.
	for i := 1; i <= 3; i++ {
		redraw, _ := s.Advance(t0.Add(time.Duration(i) * BlinkOpenHold))
		if redraw {
			t.Fatalf("redraw at %d*BlinkOpenHold while overlay active", i)
		}
	}

	expiry := t0.Add(OverlayDuration)
	s.Advance(expiry)

	// The blink baseline was reset to the expiry: no blink until a full
	// open hold after it.
	redraw, _ := s.Advance(expiry.Add(BlinkOpenHold))
	if redraw {
		t.Error("blink fired early; baseline was not rebased at overlay expiry")
	}
	redraw, _ = s.Advance(expiry.Add(BlinkOpenHold + time.Millisecond))
	if !redraw {
		t.Error("expected blink one open hold after overlay expiry")
	}
}

func TestSetExpressionCancelsOverlay(t *testing.T) {
	t0 := startTime()
	s := New(t0)
	s.ShowText("gone", t0)
	s.SetExpression(face.Sad, t0.Add(time.Second))

	v := s.View()
	if v.Mode != ShowingFace || v.Expression != face.Sad {
		t.Errorf("view: got %+v, want ShowingFace SAD", v)
	}
	if s.OverlayActive() {
		t.Error("overlay still active after set-expression")
	}

	// The old deadline must not fire an expiry event later.
	_, events := s.Advance(t0.Add(OverlayDuration + time.Second))
	for _, ev := range events {
		if ev.Type == EventOverlayExpired {
			t.Error("stale overlay expiry fired after cancellation")
		}
	}
}

// TestShowTextReplacesOverlay verifies a second text command restarts the
// ten-second window with the new text.
func TestShowTextReplacesOverlay(t *testing.T) {
	t0 := startTime()
	s := New(t0)
	s.ShowText("first", t0)
	s.ShowText("second", t0.Add(5*time.Second))

	if v := s.View(); v.Text != "second" {
		t.Errorf("text: got %q, want %q", v.Text, "second")
	}

	// Old deadline passes without expiry.
	redraw, _ := s.Advance(t0.Add(OverlayDuration))
	if redraw {
		t.Error("overlay expired on the replaced deadline")
	}
	// New deadline fires.
	redraw, _ = s.Advance(t0.Add(5*time.Second + OverlayDuration))
	if !redraw {
		t.Error("overlay did not expire on the new deadline")
	}
}
