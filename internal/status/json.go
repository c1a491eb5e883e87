package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Face          FaceJSON     `json:"face"`
	Head          HeadJSON     `json:"head"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Counts        CountsJSON   `json:"command_counts"`
	Config        ConfigJSON   `json:"config"`
}

// FaceJSON is the JSON representation of the animation state.
type FaceJSON struct {
	Expression    string `json:"expression"`
	BlinkPhase    string `json:"blink_phase"`
	OverlayActive bool   `json:"overlay_active"`
	OverlayText   string `json:"overlay_text,omitempty"`
}

// HeadJSON is the JSON representation of the actuator state.
type HeadJSON struct {
	Angle int  `json:"angle"`
	Busy  bool `json:"busy"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of command counts.
type CountsJSON struct {
	FaceSet   int `json:"face_set"`
	TextShown int `json:"text_shown"`
	HeadMoves int `json:"head_moves"`
	Shakes    int `json:"shakes"`
	Blinks    int `json:"blinks"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	TickMs      int64  `json:"tick_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	WSBroker    string `json:"ws_broker,omitempty"`
	HTTPAddr    string `json:"http_addr"`
	I2CBus      string `json:"i2c_bus,omitempty"`
	ServoChip   string `json:"servo_chip,omitempty"`
	ServoPin    int    `json:"servo_pin,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	expr := snap.Expression
	if expr == "" {
		expr = "UNKNOWN"
	}
	phase := snap.BlinkPhase
	if phase == "" {
		phase = "UNKNOWN"
	}

	return StatusInner{
		Face: FaceJSON{
			Expression:    expr,
			BlinkPhase:    phase,
			OverlayActive: snap.OverlayActive,
			OverlayText:   snap.OverlayText,
		},
		Head: HeadJSON{
			Angle: snap.HeadAngle,
			Busy:  snap.HeadBusy,
		},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			FaceSet:   snap.Counts.FaceSet,
			TextShown: snap.Counts.TextShown,
			HeadMoves: snap.Counts.HeadMoves,
			Shakes:    snap.Counts.Shakes,
			Blinks:    snap.Counts.Blinks,
		},
		Config: ConfigJSON{
			TickMs:      snap.Config.TickMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			WSBroker:    snap.Config.WSBroker,
			HTTPAddr:    snap.Config.HTTPAddr,
			I2CBus:      snap.Config.I2CBus,
			ServoChip:   snap.Config.ServoChip,
			ServoPin:    snap.Config.ServoPin,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	inner := buildInner(snap)
	data, _ := json.MarshalIndent(StatusJSON{Status: inner}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
