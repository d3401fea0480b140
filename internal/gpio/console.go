package gpio

import "log"

// ConsoleLEDs emulates the LED pair by logging level transitions. Used by
// the -emulate flag for desktop runs without hardware.
type ConsoleLEDs struct {
	last    SetLevel
	written bool
}

// NewConsoleLEDs creates a console-backed LED writer.
func NewConsoleLEDs() *ConsoleLEDs {
	return &ConsoleLEDs{}
}

// Set logs the levels when they change.
func (c *ConsoleLEDs) Set(a, b bool) error {
	lv := SetLevel{A: a, B: b}
	if c.written && lv == c.last {
		return nil
	}
	c.last = lv
	c.written = true
	log.Printf("leds: A=%s B=%s", onOff(a), onOff(b))
	return nil
}

// Close is a no-op for the console writer.
func (c *ConsoleLEDs) Close() error {
	return nil
}

// StaticButton is a button stuck at a fixed level. The emulated run uses a
// released one; tests use FakeButton instead.
type StaticButton struct {
	Pressed bool
}

// Read returns the fixed level.
func (s *StaticButton) Read() (bool, error) {
	return s.Pressed, nil
}

// Close is a no-op.
func (s *StaticButton) Close() error {
	return nil
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}
