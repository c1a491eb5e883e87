// Package mqtt provides MQTT publishing and command subscription with
// abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"
)

// Topic is the MQTT topic for face/head state-change events.
const Topic = "home/deskbot/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "home/deskbot/system"

// Command topics mirror the HTTP endpoints: payloads are the same short
// strings the web layer accepts ("happy", "text:Hello", "angle:45", ...).
const (
	TopicFaceSet = "deskbot/face/set"
	TopicHeadSet = "deskbot/head/set"
)

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a state-change event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// Event represents a face or head state change to be published.
type Event struct {
	Timestamp  time.Time
	Type       string // e.g. "EXPRESSION_SET", "HEAD_MOVE", "HEAD_SHAKE"
	Expression string // current expression name
	Angle      int    // current head angle in degrees
	Detail     string // overlay text or move target, optional
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Deskbot DeskbotPayload `json:"deskbot"`
}

// DeskbotPayload contains the event details.
type DeskbotPayload struct {
	Timestamp string    `json:"timestamp"`
	Event     string    `json:"event"`
	Detail    string    `json:"detail,omitempty"`
	Face      FaceState `json:"face"`
	Head      HeadState `json:"head"`
}

// FaceState represents the animation state in a payload.
type FaceState struct {
	Expression string `json:"expression"`
}

// HeadState represents the actuator state in a payload.
type HeadState struct {
	Angle int `json:"angle"`
}

// FormatPayload creates the JSON payload for a state-change event.
func FormatPayload(event Event) ([]byte, error) {
	payload := Payload{
		Deskbot: DeskbotPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Type,
			Detail:    event.Detail,
			Face:      FaceState{Expression: event.Expression},
			Head:      HeadState{Angle: event.Angle},
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
