package status

import (
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		TickMs:      20,
		HeartbeatMs: 900000,
		Broker:      "tcp://192.168.1.200:1883",
		HTTPAddr:    ":80",
		I2CBus:      "1",
		ServoChip:   "gpiochip0",
		ServoPin:    18,
	}
}

func TestTrackerSnapshot(t *testing.T) {
	start := time.Now().Add(-90 * time.Second)
	tr := NewTracker(start, testConfig())

	tr.UpdateFace("HAPPY", "OPEN", false, "")
	tr.UpdateHead(135, true)
	tr.SetCounts(Counts{FaceSet: 3, HeadMoves: 2, Blinks: 7})
	tr.SetMQTTConnected(true)

	snap := tr.Snapshot()
	if snap.Expression != "HAPPY" {
		t.Errorf("expression: got %q", snap.Expression)
	}
	if snap.BlinkPhase != "OPEN" {
		t.Errorf("blink phase: got %q", snap.BlinkPhase)
	}
	if snap.HeadAngle != 135 || !snap.HeadBusy {
		t.Errorf("head: got angle=%d busy=%v", snap.HeadAngle, snap.HeadBusy)
	}
	if snap.Counts.FaceSet != 3 || snap.Counts.Blinks != 7 {
		t.Errorf("counts: got %+v", snap.Counts)
	}
	if !snap.MQTTConnected {
		t.Error("MQTTConnected not set")
	}
	if snap.Config.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("config broker: got %q", snap.Config.Broker)
	}
	if up := snap.Uptime(); up < 89*time.Second || up > 92*time.Second {
		t.Errorf("uptime: got %v, want ~90s", up)
	}
}

func TestTrackerSnapshotIsACopy(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())
	tr.UpdateFace("SAD", "CLOSED", true, "bye")

	snap := tr.Snapshot()
	tr.UpdateFace("NEUTRAL", "OPEN", false, "")

	if snap.Expression != "SAD" || snap.OverlayText != "bye" {
		t.Error("snapshot mutated by a later update")
	}
}

// TestTrackerConcurrentAccess exercises the lock under the race detector.
func TestTrackerConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.UpdateHead(n, j%2 == 0)
				tr.SetCounts(Counts{HeadMoves: j})
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = tr.Snapshot()
			}
		}()
	}
	wg.Wait()
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Expression:    "GRINNING",
		BlinkPhase:    "OPEN",
		OverlayActive: true,
		OverlayText:   "Hello",
		HeadAngle:     45,
		HeadBusy:      false,
		Counts:        Counts{FaceSet: 1, TextShown: 2, Shakes: 3},
		StartTime:     start,
		Now:           start.Add(65 * time.Second),
		MQTTConnected: true,
		Config:        testConfig(),
	}

	data := FormatJSON(snap)

	var decoded StatusJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Status.Face.Expression != "GRINNING" {
		t.Errorf("expression: got %q", decoded.Status.Face.Expression)
	}
	if !decoded.Status.Face.OverlayActive || decoded.Status.Face.OverlayText != "Hello" {
		t.Errorf("overlay: got %+v", decoded.Status.Face)
	}
	if decoded.Status.Head.Angle != 45 {
		t.Errorf("head angle: got %d", decoded.Status.Head.Angle)
	}
	if decoded.Status.UptimeSeconds != 65 {
		t.Errorf("uptime: got %d, want 65", decoded.Status.UptimeSeconds)
	}
	if decoded.Status.Counts.Shakes != 3 {
		t.Errorf("shakes: got %d", decoded.Status.Counts.Shakes)
	}
	if !decoded.Status.MQTT.Connected {
		t.Error("mqtt connected not set")
	}
	if decoded.Status.Event != "" || decoded.Status.Reason != "" {
		t.Errorf("web JSON carries event/reason: %q %q", decoded.Status.Event, decoded.Status.Reason)
	}
}

func TestFormatJSONUnknownBeforeFirstUpdate(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())
	data := FormatJSON(tr.Snapshot())

	var decoded StatusJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Status.Face.Expression != "UNKNOWN" {
		t.Errorf("expression: got %q, want UNKNOWN", decoded.Status.Face.Expression)
	}
	if decoded.Status.Face.BlinkPhase != "UNKNOWN" {
		t.Errorf("blink phase: got %q, want UNKNOWN", decoded.Status.Face.BlinkPhase)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	snap := Snapshot{
		Expression: "NEUTRAL",
		BlinkPhase: "OPEN",
		StartTime:  time.Now(),
		Now:        time.Now(),
		Config:     testConfig(),
	}
	data := FormatStatusEvent(snap, "SHUTDOWN", "SIGINT")

	var decoded StatusJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Status.Event != "SHUTDOWN" {
		t.Errorf("event: got %q", decoded.Status.Event)
	}
	if decoded.Status.Reason != "SIGINT" {
		t.Errorf("reason: got %q", decoded.Status.Reason)
	}
	if strings.Contains(string(data), "\n") {
		t.Error("event JSON should be compact, not indented")
	}
}
