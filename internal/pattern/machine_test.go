package pattern

import (
	"testing"
	"time"

	"github.com/CarlKCarlK/dua-blinka/internal/gesture"
)

func tap() gesture.Event {
	return gesture.Event{Timestamp: time.Now(), Type: gesture.EventTap}
}

func hold() gesture.Event {
	return gesture.Event{Timestamp: time.Now(), Type: gesture.EventHold}
}

func TestMachineBootsInFastAlternating(t *testing.T) {
	m := NewMachine()
	if m.Current() != FastAlternating {
		t.Errorf("boot pattern: got %s, want %s", m.Current(), FastAlternating)
	}
}

func TestTapCycleVisitsAllPatternsAndWraps(t *testing.T) {
	m := NewMachine()
	want := []Pattern{FastTogether, Slow, AlwaysOn, AlwaysOff, FastAlternating}

	for i, w := range want {
		p, changed := m.OnEvent(tap())
		if p != w {
			t.Errorf("tap %d: got %s, want %s", i+1, p, w)
		}
		if !changed {
			t.Errorf("tap %d: expected changed=true", i+1)
		}
	}
}

func TestHoldFromEveryStateGoesToSOS(t *testing.T) {
	for _, start := range All {
		m := &Machine{current: start}
		p, changed := m.OnEvent(hold())
		if p != SOS {
			t.Errorf("hold from %s: got %s, want SOS", start, p)
		}
		wantChanged := start != SOS
		if changed != wantChanged {
			t.Errorf("hold from %s: changed=%v, want %v", start, changed, wantChanged)
		}
	}
}

func TestHoldInSOSIsIdempotent(t *testing.T) {
	m := NewMachine()
	m.OnEvent(hold())

	p, changed := m.OnEvent(hold())
	if p != SOS {
		t.Errorf("got %s, want SOS", p)
	}
	if changed {
		t.Error("hold while in SOS must not report a change (no cursor reset)")
	}
}

func TestTapFromSOSReturnsToFastAlternating(t *testing.T) {
	// Whichever pattern SOS pre-empted, a tap exits to the boot pattern.
	for _, before := range []Pattern{FastTogether, Slow, AlwaysOn, AlwaysOff} {
		m := &Machine{current: before}
		m.OnEvent(hold())

		p, changed := m.OnEvent(tap())
		if p != FastAlternating {
			t.Errorf("tap from SOS (was %s): got %s, want %s", before, p, FastAlternating)
		}
		if !changed {
			t.Errorf("tap from SOS (was %s): expected changed=true", before)
		}
	}
}

func TestTapTableIsTotal(t *testing.T) {
	for _, p := range All {
		if _, ok := tapNext[p]; !ok {
			t.Errorf("no tap transition for %s", p)
		}
	}
}
