//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// RealButton reads the push-button from actual hardware using the Linux GPIO
// character device.
type RealButton struct {
	chip *gpiocdev.Chip
	line *gpiocdev.Line
}

// NewRealButton requests the button pin as input with pull-down, matching
// the reference wiring (button shorts the pin to 3.3V when pressed).
func NewRealButton(pin int) (*RealButton, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	line, err := chip.RequestLine(pin, gpiocdev.AsInput, gpiocdev.WithPullDown)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button pin %d: %w", pin, err)
	}

	return &RealButton{chip: chip, line: line}, nil
}

// Read returns true while the button is pressed (pin high).
func (b *RealButton) Read() (bool, error) {
	v, err := b.line.Value()
	if err != nil {
		return false, fmt.Errorf("read button pin: %w", err)
	}
	return v != 0, nil
}

// Close releases the button line and chip.
func (b *RealButton) Close() error {
	var errs []error
	if b.line != nil {
		if err := b.line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button pin: %w", err))
		}
	}
	if b.chip != nil {
		if err := b.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// RealLEDs drives the two LED pins using the Linux GPIO character device.
type RealLEDs struct {
	chip  *gpiocdev.Chip
	lineA *gpiocdev.Line
	lineB *gpiocdev.Line
}

// NewRealLEDs requests both LED pins as outputs, initially off.
func NewRealLEDs(pinA, pinB int) (*RealLEDs, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	lineA, err := chip.RequestLine(pinA, gpiocdev.AsOutput(0))
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request LED-A pin %d: %w", pinA, err)
	}

	lineB, err := chip.RequestLine(pinB, gpiocdev.AsOutput(0))
	if err != nil {
		lineA.Close()
		chip.Close()
		return nil, fmt.Errorf("request LED-B pin %d: %w", pinB, err)
	}

	return &RealLEDs{chip: chip, lineA: lineA, lineB: lineB}, nil
}

// Set drives both LED levels.
func (l *RealLEDs) Set(a, b bool) error {
	if err := l.lineA.SetValue(boolToValue(a)); err != nil {
		return fmt.Errorf("set LED-A: %w", err)
	}
	if err := l.lineB.SetValue(boolToValue(b)); err != nil {
		return fmt.Errorf("set LED-B: %w", err)
	}
	return nil
}

// Close turns both LEDs off before releasing the lines, so a stopped daemon
// leaves the board dark rather than frozen mid-pattern.
func (l *RealLEDs) Close() error {
	var errs []error
	for name, line := range map[string]*gpiocdev.Line{"LED-A": l.lineA, "LED-B": l.lineB} {
		if line == nil {
			continue
		}
		if err := line.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear %s: %w", name, err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", name, err))
		}
	}
	if l.chip != nil {
		if err := l.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

func boolToValue(on bool) int {
	if on {
		return 1
	}
	return 0
}
