// Package mqtt publishes blinker telemetry with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/CarlKCarlK/dua-blinka/internal/engine"
)

// Topic is the MQTT topic for pattern-change events.
const Topic = "leds/dua-blinka/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "leds/dua-blinka/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a pattern-change event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(change engine.Change) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
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
	Blinker BlinkerPayload `json:"blinker"`
}

// BlinkerPayload contains the pattern-change details.
type BlinkerPayload struct {
	Timestamp string `json:"timestamp"`
	Gesture   string `json:"gesture"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// FormatPayload creates the JSON payload for a pattern-change event.
func FormatPayload(change engine.Change) ([]byte, error) {
	payload := Payload{
		Blinker: BlinkerPayload{
			Timestamp: change.Timestamp.UTC().Format(time.RFC3339),
			Gesture:   string(change.Gesture),
			From:      string(change.From),
			To:        string(change.To),
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
