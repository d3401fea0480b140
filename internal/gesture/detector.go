// Package gesture turns raw button level samples into discrete Tap and Hold
// events. Like the schedule package it is pure logic: no GPIO, no sleeping,
// time arrives as explicit time.Time samples.
package gesture

import (
	"fmt"
	"time"
)

// EventType classifies a recognized button gesture.
type EventType string

const (
	// EventTap is a press released before the tap threshold.
	EventTap EventType = "TAP"
	// EventHold is a press sustained past the hold threshold. It is emitted
	// while the button is still down, without waiting for release.
	EventHold EventType = "HOLD"
)

// Event is one recognized gesture.
type Event struct {
	Timestamp time.Time
	Type      EventType
	// Held is how long the button had been down when the event fired.
	Held time.Duration
}

// Detector debounces a sampled button level and classifies presses.
//
// Classification is half-open: a press released after less than tapMax is a
// Tap; a press sustained for holdMin or more is a Hold, signaled immediately.
// A press released in between is deliberately ignored — the dead zone keeps
// an ambiguous press from causing a spurious pattern change.
type Detector struct {
	debounce time.Duration
	tapMax   time.Duration
	holdMin  time.Duration

	pressed      bool // debounced level
	pressStart   time.Time
	holdSignaled bool

	// pending raw level waiting out the debounce interval
	pending      bool
	pendingSince time.Time
	hasPending   bool
}

// NewDetector validates the thresholds and returns a detector. The button is
// assumed released at startup.
func NewDetector(debounce, tapMax, holdMin time.Duration) (*Detector, error) {
	if debounce < 0 {
		return nil, fmt.Errorf("gesture: negative debounce %v", debounce)
	}
	if tapMax <= 0 {
		return nil, fmt.Errorf("gesture: non-positive tap threshold %v", tapMax)
	}
	if holdMin < tapMax {
		return nil, fmt.Errorf("gesture: hold threshold %v below tap threshold %v", holdMin, tapMax)
	}
	return &Detector{
		debounce: debounce,
		tapMax:   tapMax,
		holdMin:  holdMin,
	}, nil
}

// Sample consumes one raw button level reading and returns any events it
// produced. At most one event is returned per sample in practice, but the
// slice form matches how callers fan events out.
func (d *Detector) Sample(raw bool, now time.Time) []Event {
	var events []Event

	// Check the hold threshold before this sample's edge is processed, so a
	// hold is still recognized when its release arrives in the same sample.
	// A release that is mid-debounce caps the press at the moment the
	// release level was first seen.
	if d.pressed && !d.holdSignaled {
		end := now
		if d.hasPending && !d.pending {
			end = d.pendingSince
		}
		if held := end.Sub(d.pressStart); held >= d.holdMin {
			d.holdSignaled = true
			events = append(events, Event{Timestamp: now, Type: EventHold, Held: held})
		}
	}

	if raw == d.pressed {
		// Back at the stable level; any glitch shorter than the debounce
		// interval dies here.
		d.hasPending = false
	} else {
		if !d.hasPending || raw != d.pending {
			d.pending = raw
			d.pendingSince = now
			d.hasPending = true
		}
		if now.Sub(d.pendingSince) >= d.debounce {
			d.pressed = raw
			d.hasPending = false
			if d.pressed {
				// Press edge. The press began when the new level was first
				// observed, not when the debounce interval expired.
				d.pressStart = d.pendingSince
				d.holdSignaled = false
			} else if !d.holdSignaled {
				held := d.pendingSince.Sub(d.pressStart)
				if held < d.tapMax {
					events = append(events, Event{Timestamp: now, Type: EventTap, Held: held})
				}
				// tapMax <= held < holdMin: dead zone, no event.
			}
		}
	}

	// A press edge confirmed this sample may itself already be past the hold
	// threshold when the debounce interval is long. Skipped while a release
	// is mid-debounce; the top check already capped that press.
	if d.pressed && !d.holdSignaled && !d.hasPending {
		if held := now.Sub(d.pressStart); held >= d.holdMin {
			d.holdSignaled = true
			events = append(events, Event{Timestamp: now, Type: EventHold, Held: held})
		}
	}

	return events
}

// IsPressed returns the current debounced button level.
func (d *Detector) IsPressed() bool {
	return d.pressed
}
