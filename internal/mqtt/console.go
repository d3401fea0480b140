package mqtt

import (
	"log"

	"github.com/CarlKCarlK/dua-blinka/internal/engine"
)

// ConsolePublisher writes payloads to the process log instead of a broker.
// Used by the -emulate flag so a desktop run needs no MQTT infrastructure.
type ConsolePublisher struct{}

// NewConsolePublisher creates a log-backed publisher.
func NewConsolePublisher() *ConsolePublisher {
	return &ConsolePublisher{}
}

// Publish logs the pattern-change payload.
func (p *ConsolePublisher) Publish(change engine.Change) error {
	payload, err := FormatPayload(change)
	if err != nil {
		return err
	}
	log.Printf("mqtt (emulated) %s: %s", Topic, payload)
	return nil
}

// PublishSystem logs the system event payload.
func (p *ConsolePublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	log.Printf("mqtt (emulated) %s: %s", TopicSystem, payload)
	return nil
}

// Close is a no-op for the console publisher.
func (p *ConsolePublisher) Close() error {
	return nil
}

// IsConnected always reports false; there is no broker connection to report.
func (p *ConsolePublisher) IsConnected() bool {
	return false
}
