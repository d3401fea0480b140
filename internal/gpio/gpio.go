// Package gpio provides button input and LED output with hardware
// abstraction. The real implementations use the Linux GPIO character device.
// The fake implementations allow testing without hardware, and the console
// writer emulates the LEDs for desktop runs.
package gpio

// Button reads the push-button level.
type Button interface {
	// Read returns true while the button is pressed.
	Read() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// LEDs drives the two LED output lines.
type LEDs interface {
	// Set drives both LEDs to the given levels (true = lit).
	Set(a, b bool) error

	// Close turns both LEDs off and releases GPIO resources.
	Close() error
}

// Pin definitions (BCM numbering), matching the reference board wiring.
const (
	DefaultPinLedA   = 2
	DefaultPinLedB   = 3
	DefaultPinButton = 13
)
