// Package status provides a thread-safe status tracker for the dua-blinka
// daemon. It is read by the HTTP handlers while the blink loop writes it.
package status

import (
	"sync"
	"time"

	"github.com/CarlKCarlK/dua-blinka/internal/engine"
	"github.com/CarlKCarlK/dua-blinka/internal/pattern"
	"github.com/CarlKCarlK/dua-blinka/internal/schedule"
)

// NetworkInfo contains network state. This is a local copy to avoid
// coupling status to the env-reading code in main.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	TickMs      int64
	DebounceMs  int64
	TapMaxMs    int64
	HoldMinMs   int64
	HeartbeatMs int64
	Broker      string
	HTTPAddr    string
	WSBroker    string // Websocket broker URL for browser MQTT (empty = disabled)
	Emulated    bool
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Pattern       pattern.Pattern
	LedA          schedule.Level
	LedB          schedule.Level
	Counts        engine.Counts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// Update sets the active pattern, LED levels and counters.
// Called from the blink loop on every tick.
func (t *Tracker) Update(p pattern.Pattern, ledA, ledB schedule.Level, counts engine.Counts) {
	t.mu.Lock()
	t.snap.Pattern = p
	t.snap.LedA = ledA
	t.snap.LedB = ledB
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
