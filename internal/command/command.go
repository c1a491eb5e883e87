// Package command parses the short textual commands the desk bot accepts
// over its transports. Validation happens here, at the transport boundary;
// the scheduler and motion controller only ever see typed commands.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sweeney/desk-bot/internal/face"
	"github.com/sweeney/desk-bot/internal/servo"
)

// Kind identifies the operation a command requests.
type Kind int

const (
	SetFace Kind = iota
	ShowText
	HeadLeft
	HeadRight
	HeadCenter
	HeadShake
	HeadAngle
)

// Command is a validated, typed command ready for the control loop.
type Command struct {
	Kind       Kind
	Expression face.Expression // SetFace
	Text       string          // ShowText
	Angle      int             // HeadAngle

	// Confirm is the human-readable confirmation returned to the caller.
	Confirm string
}

// TextPrefix introduces a text overlay in the face endpoint's state value.
const TextPrefix = "text:"

// AnglePrefix introduces a direct angle in the head endpoint's position value.
const AnglePrefix = "angle:"

var expressions = map[string]face.Expression{
	"neutral":  face.Neutral,
	"happy":    face.Happy,
	"sad":      face.Sad,
	"angry":    face.Angry,
	"grinning": face.Grinning,
	"scared":   face.Scared,
}

// ParseFace parses the state value of the face endpoint. Accepted values are
// the six expression names or "text:<literal>", whose content is forwarded
// verbatim as the overlay text.
func ParseFace(state string) (Command, error) {
	if state == "" {
		return Command{}, fmt.Errorf("missing state parameter")
	}

	if strings.HasPrefix(state, TextPrefix) {
		text := state[len(TextPrefix):]
		return Command{
			Kind:    ShowText,
			Text:    text,
			Confirm: fmt.Sprintf("Displaying text: %s", text),
		}, nil
	}

	e, ok := expressions[strings.ToLower(state)]
	if !ok {
		return Command{}, fmt.Errorf(
			"unknown face state %q: want neutral|happy|sad|angry|grinning|scared or text:<message>", state)
	}
	return Command{
		Kind:       SetFace,
		Expression: e,
		Confirm:    fmt.Sprintf("Showing %s face", e),
	}, nil
}

// ParseHead parses the position value of the head endpoint. Accepted values
// are left|right|center|shake or "angle:<integer>" within the servo range.
func ParseHead(position string) (Command, error) {
	if position == "" {
		return Command{}, fmt.Errorf("missing position parameter")
	}

	if strings.HasPrefix(position, AnglePrefix) {
		raw := position[len(AnglePrefix):]
		angle, err := strconv.Atoi(raw)
		if err != nil {
			return Command{}, fmt.Errorf("invalid angle %q: not an integer", raw)
		}
		if !servo.InRange(angle) {
			return Command{}, fmt.Errorf("angle %d out of range [%d, %d]",
				angle, servo.MinAngle, servo.MaxAngle)
		}
		return Command{
			Kind:    HeadAngle,
			Angle:   angle,
			Confirm: fmt.Sprintf("Moving head to %d", angle),
		}, nil
	}

	switch strings.ToLower(position) {
	case "left":
		return Command{Kind: HeadLeft, Confirm: "Moving head left"}, nil
	case "right":
		return Command{Kind: HeadRight, Confirm: "Moving head right"}, nil
	case "center":
		return Command{Kind: HeadCenter, Confirm: "Moving head to center"}, nil
	case "shake":
		return Command{Kind: HeadShake, Confirm: "Shaking head"}, nil
	}
	return Command{}, fmt.Errorf(
		"unknown head position %q: want left|right|center|shake or angle:<0-180>", position)
}
