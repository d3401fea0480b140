// Package pattern defines the six system blink patterns, the static library
// mapping each pattern to its pair of LED schedules, and the state machine
// that selects the active pattern from button gestures.
package pattern

import (
	"time"

	"github.com/CarlKCarlK/dua-blinka/internal/schedule"
)

// Pattern names one system-wide blink behavior.
type Pattern string

const (
	FastAlternating Pattern = "FAST_ALTERNATING"
	FastTogether    Pattern = "FAST_TOGETHER"
	Slow            Pattern = "SLOW"
	AlwaysOn        Pattern = "ALWAYS_ON"
	AlwaysOff       Pattern = "ALWAYS_OFF"
	SOS             Pattern = "SOS"
)

// All lists every pattern, in tap-cycle order.
var All = []Pattern{FastAlternating, FastTogether, Slow, AlwaysOn, AlwaysOff, SOS}

// Timing constants. "Always" schedules use a single day-long step that the
// cursor re-issues on wraparound.
const (
	FastHalfPeriod = 250 * time.Millisecond
	SlowHalfPeriod = 750 * time.Millisecond
	MorseUnit      = 120 * time.Millisecond
	alwaysStep     = 24 * time.Hour
)

// Library is the static table mapping each pattern to the two schedules
// (LED-A, LED-B) that realize it. Built once at startup, never mutated.
type Library struct {
	table map[Pattern][2]schedule.Schedule
}

// NewLibrary builds the canonical pattern table.
func NewLibrary() *Library {
	fastA := blink(schedule.LevelOn, FastHalfPeriod)
	fastB := blink(schedule.LevelOff, FastHalfPeriod)
	slow := blink(schedule.LevelOn, SlowHalfPeriod)
	on := schedule.MustNew([]schedule.Step{{Level: schedule.LevelOn, Duration: alwaysStep}})
	off := schedule.MustNew([]schedule.Step{{Level: schedule.LevelOff, Duration: alwaysStep}})
	sos := sosSchedule()

	return &Library{table: map[Pattern][2]schedule.Schedule{
		FastAlternating: {fastA, fastB}, // 180° out of phase
		FastTogether:    {fastA, fastA},
		Slow:            {slow, slow},
		AlwaysOn:        {on, on},
		AlwaysOff:       {off, off},
		SOS:             {sos, sos},
	}}
}

// SchedulesFor returns the schedule pair for a pattern. Total over the six
// patterns; unknown values fall back to FastAlternating, the boot pattern.
func (l *Library) SchedulesFor(p Pattern) (schedule.Schedule, schedule.Schedule) {
	pair, ok := l.table[p]
	if !ok {
		pair = l.table[FastAlternating]
	}
	return pair[0], pair[1]
}

// blink builds a two-step square wave starting at the given level.
func blink(first schedule.Level, half time.Duration) schedule.Schedule {
	second := schedule.LevelOff
	if first == schedule.LevelOff {
		second = schedule.LevelOn
	}
	return schedule.MustNew([]schedule.Step{
		{Level: first, Duration: half},
		{Level: second, Duration: half},
	})
}

// sosSchedule builds the looping Morse `... --- ...` sequence: dits of one
// unit, dahs of three, one-unit gaps inside a letter, three-unit gaps between
// letters and a seven-unit word gap before the cycle repeats.
func sosSchedule() schedule.Schedule {
	var steps []schedule.Step
	pulse := func(units int) {
		steps = append(steps, schedule.Step{Level: schedule.LevelOn, Duration: time.Duration(units) * MorseUnit})
	}
	gap := func(units int) {
		steps = append(steps, schedule.Step{Level: schedule.LevelOff, Duration: time.Duration(units) * MorseUnit})
	}
	letter := func(units []int) {
		for i, u := range units {
			if i > 0 {
				gap(1)
			}
			pulse(u)
		}
	}

	letter([]int{1, 1, 1}) // S
	gap(3)
	letter([]int{3, 3, 3}) // O
	gap(3)
	letter([]int{1, 1, 1}) // S
	gap(7)                 // word gap, then the cycle restarts

	return schedule.MustNew(steps)
}
