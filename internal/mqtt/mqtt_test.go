package mqtt

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestFormatPayload(t *testing.T) {
	event := Event{
		Timestamp:  time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Type:       "EXPRESSION_SET",
		Expression: "HAPPY",
		Angle:      90,
	}

	data, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("FormatPayload returned error: %v", err)
	}

	var decoded Payload
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded.Deskbot.Timestamp != "2026-03-14T09:26:53Z" {
		t.Errorf("timestamp: got %q", decoded.Deskbot.Timestamp)
	}
	if decoded.Deskbot.Event != "EXPRESSION_SET" {
		t.Errorf("event: got %q", decoded.Deskbot.Event)
	}
	if decoded.Deskbot.Face.Expression != "HAPPY" {
		t.Errorf("expression: got %q", decoded.Deskbot.Face.Expression)
	}
	if decoded.Deskbot.Head.Angle != 90 {
		t.Errorf("angle: got %d", decoded.Deskbot.Head.Angle)
	}
}

func TestFormatPayloadOmitsEmptyDetail(t *testing.T) {
	event := Event{
		Timestamp:  time.Now(),
		Type:       "EXPRESSION_SET",
		Expression: "NEUTRAL",
	}
	data, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("FormatPayload returned error: %v", err)
	}
	if strings.Contains(string(data), "detail") {
		t.Errorf("empty detail serialized: %s", data)
	}

	event.Detail = "target=45"
	data, err = FormatPayload(event)
	if err != nil {
		t.Fatalf("FormatPayload returned error: %v", err)
	}
	if !strings.Contains(string(data), `"detail":"target=45"`) {
		t.Errorf("detail missing from payload: %s", data)
	}
}

func TestFormatPayloadConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	event := Event{
		Timestamp:  time.Date(2026, 1, 5, 13, 0, 0, 0, loc),
		Type:       "HEAD_MOVE",
		Expression: "NEUTRAL",
		Angle:      10,
	}
	data, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("FormatPayload returned error: %v", err)
	}
	if !strings.Contains(string(data), "2026-01-05T12:00:00Z") {
		t.Errorf("timestamp not converted to UTC: %s", data)
	}
}

func TestFormatSystemPayload(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}
	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload returned error: %v", err)
	}

	var decoded SystemPayload
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if decoded.System.Event != "SHUTDOWN" {
		t.Errorf("event: got %q", decoded.System.Event)
	}
	if decoded.System.Reason != "SIGTERM" {
		t.Errorf("reason: got %q", decoded.System.Reason)
	}
}

func TestFormatSystemPayloadOmitsEmptyReason(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Now(),
		Event:     "HEARTBEAT",
	}
	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload returned error: %v", err)
	}
	if strings.Contains(string(data), "reason") {
		t.Errorf("empty reason serialized: %s", data)
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"custom":"snapshot"}`)
	event := SystemEvent{
		Timestamp:  time.Now(),
		Event:      "STARTUP",
		RawPayload: raw,
	}
	data, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("FormatSystemPayload returned error: %v", err)
	}
	if string(data) != string(raw) {
		t.Errorf("raw payload not passed through: got %s", data)
	}
}

func TestFakePublisherRecordsEvents(t *testing.T) {
	fake := NewFakePublisher()

	event := Event{
		Timestamp:  time.Now(),
		Type:       "EXPRESSION_SET",
		Expression: "SAD",
		Angle:      90,
	}
	if err := fake.Publish(event); err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if len(fake.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(fake.Events))
	}
	if fake.Events[0].Expression != "SAD" {
		t.Errorf("expression: got %q", fake.Events[0].Expression)
	}
	if len(fake.Payloads) != 1 {
		t.Fatalf("expected 1 payload, got %d", len(fake.Payloads))
	}
	if !strings.Contains(string(fake.Payloads[0]), `"expression":"SAD"`) {
		t.Errorf("payload missing expression: %s", fake.Payloads[0])
	}
}
