package pattern

import (
	"github.com/CarlKCarlK/dua-blinka/internal/gesture"
)

// tapNext is the tap transition table. SOS exits to the boot pattern; it
// does not remember which pattern it pre-empted.
var tapNext = map[Pattern]Pattern{
	FastAlternating: FastTogether,
	FastTogether:    Slow,
	Slow:            AlwaysOn,
	AlwaysOn:        AlwaysOff,
	AlwaysOff:       FastAlternating,
	SOS:             FastAlternating,
}

// Machine is the pattern state machine. It boots in FastAlternating, taps
// cycle through the patterns, and a hold pre-empts any pattern with SOS.
// It runs for the process lifetime; there is no terminal state.
type Machine struct {
	current Pattern
}

// NewMachine returns a machine in the boot pattern.
func NewMachine() *Machine {
	return &Machine{current: FastAlternating}
}

// Current returns the active pattern.
func (m *Machine) Current() Pattern {
	return m.current
}

// OnEvent applies one gesture to the machine and returns the resulting
// pattern and whether it differs from the previous one. Callers reset their
// schedule cursors only when changed is true, so a hold received while
// already in SOS does not restart the SOS cycle.
func (m *Machine) OnEvent(ev gesture.Event) (p Pattern, changed bool) {
	prev := m.current
	switch ev.Type {
	case gesture.EventTap:
		m.current = tapNext[m.current]
	case gesture.EventHold:
		m.current = SOS
	}
	return m.current, m.current != prev
}
