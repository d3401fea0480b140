// Package engine is the tick driver: each tick it feeds the button sample to
// the gesture detector, applies any recognized gestures to the pattern state
// machine, advances both LED schedule cursors, and reports the resulting LED
// levels. Pure logic — callers own the tick cadence and supply timestamps.
package engine

import (
	"time"

	"github.com/CarlKCarlK/dua-blinka/internal/gesture"
	"github.com/CarlKCarlK/dua-blinka/internal/pattern"
	"github.com/CarlKCarlK/dua-blinka/internal/schedule"
)

// Counts tracks gesture and transition totals since startup.
type Counts struct {
	Taps           int
	Holds          int
	PatternChanges int
}

// Change records one pattern transition, for publishing.
type Change struct {
	Timestamp time.Time
	Gesture   gesture.EventType
	From      pattern.Pattern
	To        pattern.Pattern
}

// Frame is the output of one tick.
type Frame struct {
	LedA    schedule.Level
	LedB    schedule.Level
	Pattern pattern.Pattern
	Changes []Change
}

// HeartbeatData contains information for a periodic heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Pattern   pattern.Pattern
	Counts    Counts
}

// Engine owns all mutable blink state: the state machine, the two schedule
// cursors and the gesture detector. A single caller drives it; nothing here
// is safe for concurrent use and nothing needs to be.
type Engine struct {
	lib      *pattern.Library
	machine  *pattern.Machine
	detector *gesture.Detector

	curA schedule.Cursor
	curB schedule.Cursor

	startTime     time.Time
	lastTick      time.Time
	ticked        bool
	counts        Counts
	lastHeartbeat time.Time
}

// New creates an engine in the boot pattern with both cursors at the start
// of their schedules.
func New(detector *gesture.Detector, startTime time.Time) *Engine {
	lib := pattern.NewLibrary()
	machine := pattern.NewMachine()
	a, b := lib.SchedulesFor(machine.Current())

	return &Engine{
		lib:           lib,
		machine:       machine,
		detector:      detector,
		curA:          schedule.NewCursor(a),
		curB:          schedule.NewCursor(b),
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Tick processes one timer tick. Gesture detection runs before schedule
// advancement, so a tap or hold recognized this tick selects the schedules
// that are advanced this same tick. The first tick establishes the time base
// and advances by zero.
func (e *Engine) Tick(pressed bool, now time.Time) Frame {
	var delta time.Duration
	if e.ticked {
		delta = now.Sub(e.lastTick)
		if delta < 0 {
			delta = 0
		}
	}
	e.lastTick = now
	e.ticked = true

	var changes []Change
	for _, ev := range e.detector.Sample(pressed, now) {
		switch ev.Type {
		case gesture.EventTap:
			e.counts.Taps++
		case gesture.EventHold:
			e.counts.Holds++
		}

		from := e.machine.Current()
		to, changed := e.machine.OnEvent(ev)
		if !changed {
			continue
		}
		e.counts.PatternChanges++

		// Every pattern transition starts its schedules from the beginning.
		a, b := e.lib.SchedulesFor(to)
		e.curA = schedule.NewCursor(a)
		e.curB = schedule.NewCursor(b)

		changes = append(changes, Change{
			Timestamp: ev.Timestamp,
			Gesture:   ev.Type,
			From:      from,
			To:        to,
		})
	}

	return Frame{
		LedA:    e.curA.Advance(delta),
		LedB:    e.curB.Advance(delta),
		Pattern: e.machine.Current(),
		Changes: changes,
	}
}

// Pattern returns the active pattern.
func (e *Engine) Pattern() pattern.Pattern {
	return e.machine.Current()
}

// Levels returns the LED levels at the current cursor positions.
func (e *Engine) Levels() (schedule.Level, schedule.Level) {
	return e.curA.Level(), e.curB.Level()
}

// CountsSnapshot returns a copy of the gesture counters.
func (e *Engine) CountsSnapshot() Counts {
	return e.counts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if the interval has not elapsed or
// if interval is <= 0 (disabled).
func (e *Engine) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}
	if now.Sub(e.lastHeartbeat) < interval {
		return nil
	}

	e.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(e.startTime),
		Pattern:   e.machine.Current(),
		Counts:    e.counts,
	}
}
