// Package schedule contains the blink schedule engine: fixed sequences of
// timed on/off steps and the cursor that tracks position within one.
// This package has NO external dependencies (no GPIO, MQTT, OS, or
// time.Sleep). Time is always injectable via time.Duration deltas.
package schedule

import (
	"fmt"
	"time"
)

// Level represents the logical state of an LED.
type Level string

const (
	LevelOn  Level = "ON"
	LevelOff Level = "OFF"
)

// MaxSteps bounds the number of steps in a schedule. The longest pattern
// (SOS) needs 18; the headroom is deliberate.
const MaxSteps = 20

// Step is one timed segment of a schedule. Immutable once constructed.
type Step struct {
	Level    Level
	Duration time.Duration
}

// Schedule is an ordered sequence of steps describing one LED's repeating
// blink pattern. The step list never changes after construction; only a
// Cursor's position does.
type Schedule struct {
	steps []Step
	cycle time.Duration
}

// New validates and builds a Schedule. A schedule must have at least one
// step, at most MaxSteps, and every step duration must be positive.
func New(steps []Step) (Schedule, error) {
	if len(steps) == 0 {
		return Schedule{}, fmt.Errorf("schedule: no steps")
	}
	if len(steps) > MaxSteps {
		return Schedule{}, fmt.Errorf("schedule: %d steps exceeds capacity %d", len(steps), MaxSteps)
	}

	var cycle time.Duration
	for i, s := range steps {
		if s.Duration <= 0 {
			return Schedule{}, fmt.Errorf("schedule: step %d has non-positive duration %v", i, s.Duration)
		}
		if s.Level != LevelOn && s.Level != LevelOff {
			return Schedule{}, fmt.Errorf("schedule: step %d has invalid level %q", i, s.Level)
		}
		cycle += s.Duration
	}

	// Copy so the caller cannot mutate our steps afterwards.
	own := make([]Step, len(steps))
	copy(own, steps)

	return Schedule{steps: own, cycle: cycle}, nil
}

// MustNew is New for statically known schedules (the pattern library).
// Panics on invalid input.
func MustNew(steps []Step) Schedule {
	s, err := New(steps)
	if err != nil {
		panic(err)
	}
	return s
}

// Len returns the number of steps.
func (s Schedule) Len() int {
	return len(s.steps)
}

// Cycle returns the total duration of one full pass over the steps.
func (s Schedule) Cycle() time.Duration {
	return s.cycle
}

// Step returns the step at the given index.
func (s Schedule) Step(i int) Step {
	return s.steps[i]
}

// Cursor tracks a position within a schedule: the current step index and
// the time elapsed inside that step. One cursor exists per LED.
type Cursor struct {
	sched   Schedule
	index   int
	elapsed time.Duration
}

// NewCursor creates a cursor at the start of the given schedule.
func NewCursor(s Schedule) Cursor {
	return Cursor{sched: s}
}

// Advance moves the cursor forward by delta and returns the level active at
// the new position. Deltas larger than a full cycle are reduced with a single
// modulo, so the cost is bounded by the step count, never by the delta.
// Negative deltas are treated as zero.
func (c *Cursor) Advance(delta time.Duration) Level {
	if delta > 0 {
		c.elapsed += delta
	}

	if c.elapsed >= c.sched.steps[c.index].Duration {
		// Absolute offset into the cycle, reduced to one cycle.
		offset := c.elapsed
		for i := 0; i < c.index; i++ {
			offset += c.sched.steps[i].Duration
		}
		offset %= c.sched.cycle

		c.index = 0
		for offset >= c.sched.steps[c.index].Duration {
			offset -= c.sched.steps[c.index].Duration
			c.index++
		}
		c.elapsed = offset
	}

	return c.sched.steps[c.index].Level
}

// Level returns the level at the current cursor position without advancing.
func (c *Cursor) Level() Level {
	return c.sched.steps[c.index].Level
}

// Reset moves the cursor back to the start of its schedule. Called whenever
// the active pattern changes so every pattern starts from its beginning.
func (c *Cursor) Reset() {
	c.index = 0
	c.elapsed = 0
}

// Position returns the current step index and elapsed time within that step.
func (c *Cursor) Position() (int, time.Duration) {
	return c.index, c.elapsed
}
