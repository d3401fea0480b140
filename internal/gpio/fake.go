package gpio

import "errors"

// FakeButton is a test double that returns scripted button levels.
type FakeButton struct {
	// Samples contains scripted pressed levels to return. Each call to
	// Read() consumes the next sample; the last sample repeats.
	Samples []bool

	// index tracks current position in Samples
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeButton creates a FakeButton with the given samples.
func NewFakeButton(samples []bool) *FakeButton {
	return &FakeButton{Samples: samples}
}

// Read returns the next scripted sample.
// If samples are exhausted, returns the last sample repeatedly.
func (f *FakeButton) Read() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}

	if len(f.Samples) == 0 {
		return false, errors.New("no samples configured")
	}

	sample := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}

	return sample, nil
}

// Close marks the button as closed.
func (f *FakeButton) Close() error {
	f.Closed = true
	return nil
}

// Reset resets the button to the beginning of samples.
func (f *FakeButton) Reset() {
	f.index = 0
	f.Closed = false
}

// SetLevel is a single recorded LED output pair.
type SetLevel struct {
	A bool
	B bool
}

// FakeLEDs records every Set call for test assertions.
type FakeLEDs struct {
	// Sets contains every level pair written, in order.
	Sets []SetLevel

	// Closed tracks if Close was called
	Closed bool

	// SetError, if set, will be returned by Set()
	SetError error
}

// NewFakeLEDs creates a FakeLEDs for testing.
func NewFakeLEDs() *FakeLEDs {
	return &FakeLEDs{}
}

// Set records the level pair.
func (f *FakeLEDs) Set(a, b bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.Sets = append(f.Sets, SetLevel{A: a, B: b})
	return nil
}

// Last returns the most recently written level pair, or false if none.
func (f *FakeLEDs) Last() (SetLevel, bool) {
	if len(f.Sets) == 0 {
		return SetLevel{}, false
	}
	return f.Sets[len(f.Sets)-1], true
}

// Close marks the LEDs as closed.
func (f *FakeLEDs) Close() error {
	f.Closed = true
	return nil
}
