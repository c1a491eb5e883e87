// Package status provides a thread-safe status tracker for the desk-bot
// daemon. It is read by HTTP handlers while the control loop writes to it.
package status

import (
	"sync"
	"time"
)

// Counts tracks the number of serviced commands and timer events since
// startup.
type Counts struct {
	FaceSet   int // expression commands
	TextShown int // text overlay commands
	HeadMoves int // gradual head moves (left/right/center/angle)
	Shakes    int // shake gestures
	Blinks    int // completed blink closures
}

// Config contains daemon configuration for display.
type Config struct {
	TickMs      int64
	HeartbeatMs int64
	Broker      string
	WSBroker    string // Websocket broker URL for browser MQTT (empty = disabled)
	HTTPAddr    string
	I2CBus      string
	ServoChip   string
	ServoPin    int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Expression    string
	BlinkPhase    string
	OverlayActive bool
	OverlayText   string
	HeadAngle     int
	HeadBusy      bool
	Counts        Counts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// UpdateFace sets the animation state. Called from the control loop on every
// tick.
func (t *Tracker) UpdateFace(expression, phase string, overlayActive bool, overlayText string) {
	t.mu.Lock()
	t.snap.Expression = expression
	t.snap.BlinkPhase = phase
	t.snap.OverlayActive = overlayActive
	t.snap.OverlayText = overlayText
	t.mu.Unlock()
}

// UpdateHead sets the actuator state.
func (t *Tracker) UpdateHead(angle int, busy bool) {
	t.mu.Lock()
	t.snap.HeadAngle = angle
	t.snap.HeadBusy = busy
	t.mu.Unlock()
}

// SetCounts sets the command/event counters.
func (t *Tracker) SetCounts(c Counts) {
	t.mu.Lock()
	t.snap.Counts = c
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
