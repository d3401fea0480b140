package pattern

import (
	"testing"
	"time"

	"github.com/CarlKCarlK/dua-blinka/internal/schedule"
)

func TestSchedulesForTotal(t *testing.T) {
	lib := NewLibrary()
	for _, p := range All {
		a, b := lib.SchedulesFor(p)
		if a.Len() == 0 || b.Len() == 0 {
			t.Errorf("%s: empty schedule", p)
		}
	}
}

func TestSchedulesForUnknownFallsBack(t *testing.T) {
	lib := NewLibrary()
	a, b := lib.SchedulesFor(Pattern("BOGUS"))
	wantA, wantB := lib.SchedulesFor(FastAlternating)
	if a.Cycle() != wantA.Cycle() || b.Cycle() != wantB.Cycle() {
		t.Error("unknown pattern should fall back to the boot pattern's schedules")
	}
}

func TestFastAlternatingPhaseShift(t *testing.T) {
	lib := NewLibrary()
	a, b := lib.SchedulesFor(FastAlternating)

	if a.Cycle() != 2*FastHalfPeriod || b.Cycle() != 2*FastHalfPeriod {
		t.Errorf("cycle: got (%v, %v), want %v", a.Cycle(), b.Cycle(), 2*FastHalfPeriod)
	}

	// A is on while B is off, at every point in the cycle.
	ca, cb := schedule.NewCursor(a), schedule.NewCursor(b)
	step := 50 * time.Millisecond
	for i := 0; i < 20; i++ {
		la := ca.Advance(step)
		lb := cb.Advance(step)
		if la == lb {
			t.Fatalf("tick %d: levels match (%s), want inverted", i, la)
		}
	}
}

func TestFastTogetherInPhase(t *testing.T) {
	lib := NewLibrary()
	a, b := lib.SchedulesFor(FastTogether)

	ca, cb := schedule.NewCursor(a), schedule.NewCursor(b)
	step := 50 * time.Millisecond
	for i := 0; i < 20; i++ {
		la := ca.Advance(step)
		lb := cb.Advance(step)
		if la != lb {
			t.Fatalf("tick %d: levels differ (%s vs %s), want in phase", i, la, lb)
		}
	}
}

func TestSlowGoldenSequence(t *testing.T) {
	lib := NewLibrary()
	a, b := lib.SchedulesFor(Slow)

	if a.Cycle() != 2*SlowHalfPeriod {
		t.Errorf("cycle: got %v, want %v", a.Cycle(), 2*SlowHalfPeriod)
	}

	want := []schedule.Step{
		{Level: schedule.LevelOn, Duration: SlowHalfPeriod},
		{Level: schedule.LevelOff, Duration: SlowHalfPeriod},
	}
	for _, s := range []schedule.Schedule{a, b} {
		if s.Len() != len(want) {
			t.Fatalf("len: got %d, want %d", s.Len(), len(want))
		}
		for i, w := range want {
			if s.Step(i) != w {
				t.Errorf("step %d: got %+v, want %+v", i, s.Step(i), w)
			}
		}
	}
}

func TestAlwaysOnAlwaysOff(t *testing.T) {
	lib := NewLibrary()

	a, b := lib.SchedulesFor(AlwaysOn)
	for _, s := range []schedule.Schedule{a, b} {
		if s.Len() != 1 || s.Step(0).Level != schedule.LevelOn {
			t.Errorf("AlwaysOn: got %d steps, first %+v", s.Len(), s.Step(0))
		}
	}

	a, b = lib.SchedulesFor(AlwaysOff)
	for _, s := range []schedule.Schedule{a, b} {
		if s.Len() != 1 || s.Step(0).Level != schedule.LevelOff {
			t.Errorf("AlwaysOff: got %d steps, first %+v", s.Len(), s.Step(0))
		}
	}

	// The constant schedules survive cursor wraparound.
	on, _ := lib.SchedulesFor(AlwaysOn)
	c := schedule.NewCursor(on)
	if lv := c.Advance(48 * time.Hour); lv != schedule.LevelOn {
		t.Errorf("AlwaysOn after wrap: got %s, want ON", lv)
	}
}

// TestSOSGoldenSequence checks the exact Morse timing: S (three one-unit
// pulses), O (three three-unit pulses), S again, separated by standard gaps.
func TestSOSGoldenSequence(t *testing.T) {
	lib := NewLibrary()
	a, b := lib.SchedulesFor(SOS)

	wantUnits := []struct {
		level schedule.Level
		units int
	}{
		{schedule.LevelOn, 1}, {schedule.LevelOff, 1}, {schedule.LevelOn, 1}, {schedule.LevelOff, 1}, {schedule.LevelOn, 1}, // S
		{schedule.LevelOff, 3},
		{schedule.LevelOn, 3}, {schedule.LevelOff, 1}, {schedule.LevelOn, 3}, {schedule.LevelOff, 1}, {schedule.LevelOn, 3}, // O
		{schedule.LevelOff, 3},
		{schedule.LevelOn, 1}, {schedule.LevelOff, 1}, {schedule.LevelOn, 1}, {schedule.LevelOff, 1}, {schedule.LevelOn, 1}, // S
		{schedule.LevelOff, 7}, // word gap
	}

	for _, s := range []schedule.Schedule{a, b} {
		if s.Len() != len(wantUnits) {
			t.Fatalf("len: got %d, want %d", s.Len(), len(wantUnits))
		}
		var wantCycle time.Duration
		for i, w := range wantUnits {
			got := s.Step(i)
			wantDur := time.Duration(w.units) * MorseUnit
			if got.Level != w.level || got.Duration != wantDur {
				t.Errorf("step %d: got (%s, %v), want (%s, %v)", i, got.Level, got.Duration, w.level, wantDur)
			}
			wantCycle += wantDur
		}
		if s.Cycle() != wantCycle {
			t.Errorf("cycle: got %v, want %v", s.Cycle(), wantCycle)
		}
	}
}

func TestSOSWithinCapacity(t *testing.T) {
	lib := NewLibrary()
	s, _ := lib.SchedulesFor(SOS)
	if s.Len() > schedule.MaxSteps {
		t.Errorf("SOS schedule has %d steps, capacity is %d", s.Len(), schedule.MaxSteps)
	}
}
