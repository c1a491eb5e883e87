// Package motion contains the head motion controller. Gestures are explicit
// step queues advanced from the control loop tick, so a long move never
// blocks command servicing or blink timers. This package has NO hardware
// dependencies; due angles are returned to the caller for writing.
package motion

import (
	"time"

	"github.com/sweeney/desk-bot/internal/servo"
)

// StepDelay is the pacing between successive one-degree steps of a gradual
// move.
const StepDelay = 15 * time.Millisecond

// Shake choreography: four beats alternating near the range ends, each held
// momentarily, then a direct jump back to center. The jump is intentionally
// not stepped — gestures and gradual moves are different motion types.
const (
	ShakeLow  = servo.MinAngle + 10
	ShakeHigh = servo.MaxAngle - 10
	ShakeHold = 150 * time.Millisecond
)

type step struct {
	angle int
	due   time.Time
}

// Controller owns the head's current angle and the pending step queue.
// It is the only owner of actuator state; the control loop calls Advance
// once per tick and writes the returned angles to the servo.
type Controller struct {
	angle int
	queue []step
}

// New creates a Controller at the given starting angle, clamped to the servo
// range.
func New(start int) *Controller {
	return &Controller{angle: servo.Clamp(start)}
}

// Angle returns the last angle handed out for writing.
func (c *Controller) Angle() int {
	return c.angle
}

// Busy reports whether steps are still pending.
func (c *Controller) Busy() bool {
	return len(c.queue) > 0
}

// Target returns the final angle of the pending queue, or the current angle
// when idle.
func (c *Controller) Target() int {
	if len(c.queue) == 0 {
		return c.angle
	}
	return c.queue[len(c.queue)-1].angle
}

// MoveTo enqueues a gradual move to target: one degree per StepDelay, every
// intermediate angle written. The target is clamped to the servo range.
// Equal target is a no-op. A new command replaces any pending queue
// (last command wins).
func (c *Controller) MoveTo(target int, now time.Time) {
	target = servo.Clamp(target)
	c.queue = nil
	if target == c.angle {
		return
	}

	dir := 1
	if target < c.angle {
		dir = -1
	}
	due := now
	for a := c.angle + dir; ; a += dir {
		c.queue = append(c.queue, step{angle: a, due: due})
		due = due.Add(StepDelay)
		if a == target {
			break
		}
	}
}

// MoveLeft moves gradually to the range minimum.
func (c *Controller) MoveLeft(now time.Time) {
	c.MoveTo(servo.MinAngle, now)
}

// MoveRight moves gradually to the range maximum.
func (c *Controller) MoveRight(now time.Time) {
	c.MoveTo(servo.MaxAngle, now)
}

// MoveCenter moves gradually to the range midpoint.
func (c *Controller) MoveCenter(now time.Time) {
	c.MoveTo(servo.CenterAngle, now)
}

// Shake enqueues the four-beat shake: near-min, near-max, near-min, near-max,
// each held for ShakeHold, then a direct jump to center. It replaces any
// pending queue.
func (c *Controller) Shake(now time.Time) {
	c.queue = nil
	due := now
	for _, a := range []int{ShakeLow, ShakeHigh, ShakeLow, ShakeHigh} {
		c.queue = append(c.queue, step{angle: a, due: due})
		due = due.Add(ShakeHold)
	}
	c.queue = append(c.queue, step{angle: servo.CenterAngle, due: due})
}

// Advance pops every step due by now, in order, and returns their angles for
// writing to the actuator. The controller's current angle tracks the last
// returned step.
func (c *Controller) Advance(now time.Time) []int {
	var out []int
	for len(c.queue) > 0 && !now.Before(c.queue[0].due) {
		c.angle = c.queue[0].angle
		out = append(out, c.angle)
		c.queue = c.queue[1:]
	}
	return out
}
