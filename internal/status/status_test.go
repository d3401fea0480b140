package status

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/CarlKCarlK/dua-blinka/internal/engine"
	"github.com/CarlKCarlK/dua-blinka/internal/pattern"
	"github.com/CarlKCarlK/dua-blinka/internal/schedule"
)

func TestNewTracker(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := Config{TickMs: 10, DebounceMs: 10, TapMaxMs: 300, HoldMinMs: 500, Broker: "tcp://localhost:1883", HTTPAddr: ":80"}
	tr := NewTracker(start, cfg)

	snap := tr.Snapshot()
	if !snap.StartTime.Equal(start) {
		t.Errorf("StartTime: got %v, want %v", snap.StartTime, start)
	}
	if snap.Config.TickMs != 10 {
		t.Errorf("Config.TickMs: got %d, want 10", snap.Config.TickMs)
	}
	if snap.Pattern != "" {
		t.Errorf("expected empty pattern initially, got %q", snap.Pattern)
	}
	if snap.MQTTConnected {
		t.Error("expected MQTTConnected=false initially")
	}
}

func TestUpdateAndSnapshot(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	tr.Update(pattern.SOS, schedule.LevelOn, schedule.LevelOff, engine.Counts{Taps: 3, Holds: 1, PatternChanges: 4})

	snap := tr.Snapshot()
	if snap.Pattern != pattern.SOS {
		t.Errorf("Pattern: got %q, want SOS", snap.Pattern)
	}
	if snap.LedA != schedule.LevelOn || snap.LedB != schedule.LevelOff {
		t.Errorf("levels: got (%s, %s), want (ON, OFF)", snap.LedA, snap.LedB)
	}
	if snap.Counts.Taps != 3 || snap.Counts.Holds != 1 || snap.Counts.PatternChanges != 4 {
		t.Errorf("counts: got %+v", snap.Counts)
	}
}

func TestSetMQTTConnected(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	tr.SetMQTTConnected(true)
	if !tr.Snapshot().MQTTConnected {
		t.Error("expected MQTTConnected=true")
	}
}

func TestSetNetwork(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	tr.SetNetwork(&NetworkInfo{Status: "connected", IP: "10.0.0.7"})

	snap := tr.Snapshot()
	if snap.Network == nil || snap.Network.IP != "10.0.0.7" {
		t.Errorf("Network: got %+v", snap.Network)
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Now().Add(-90 * time.Second)
	tr := NewTracker(start, Config{})

	up := tr.Snapshot().Uptime()
	if up < 90*time.Second || up > 91*time.Second {
		t.Errorf("Uptime: got %v, want ~90s", up)
	}
}

func TestConcurrentAccess(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			tr.Update(pattern.Slow, schedule.LevelOn, schedule.LevelOn, engine.Counts{Taps: n})
		}(i)
		go func() {
			defer wg.Done()
			_ = tr.Snapshot()
		}()
	}
	wg.Wait()
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(start, Config{TickMs: 10, Broker: "tcp://localhost:1883", HTTPAddr: ":8080"})
	tr.Update(pattern.FastAlternating, schedule.LevelOn, schedule.LevelOff, engine.Counts{Taps: 2})

	var sj StatusJSON
	if err := json.Unmarshal(FormatJSON(tr.Snapshot()), &sj); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if sj.Status.Pattern != "FAST_ALTERNATING" {
		t.Errorf("pattern: got %q", sj.Status.Pattern)
	}
	if sj.Status.LedA != "ON" || sj.Status.LedB != "OFF" {
		t.Errorf("levels: got %q/%q", sj.Status.LedA, sj.Status.LedB)
	}
	if sj.Status.Counts.Taps != 2 {
		t.Errorf("taps: got %d, want 2", sj.Status.Counts.Taps)
	}
	if sj.Status.Event != "" {
		t.Errorf("web JSON should carry no event, got %q", sj.Status.Event)
	}
}

func TestFormatJSONUnknownBeforeFirstTick(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})

	var sj StatusJSON
	if err := json.Unmarshal(FormatJSON(tr.Snapshot()), &sj); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if sj.Status.Pattern != "UNKNOWN" || sj.Status.LedA != "UNKNOWN" || sj.Status.LedB != "UNKNOWN" {
		t.Errorf("expected UNKNOWN placeholders, got %q/%q/%q",
			sj.Status.Pattern, sj.Status.LedA, sj.Status.LedB)
	}
}

func TestFormatStatusEvent(t *testing.T) {
	tr := NewTracker(time.Now(), Config{})
	tr.Update(pattern.AlwaysOff, schedule.LevelOff, schedule.LevelOff, engine.Counts{})

	var sj StatusJSON
	if err := json.Unmarshal(FormatStatusEvent(tr.Snapshot(), "SHUTDOWN", "SIGTERM"), &sj); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if sj.Status.Event != "SHUTDOWN" || sj.Status.Reason != "SIGTERM" {
		t.Errorf("event/reason: got %q/%q", sj.Status.Event, sj.Status.Reason)
	}
	if sj.Status.Pattern != "ALWAYS_OFF" {
		t.Errorf("pattern: got %q", sj.Status.Pattern)
	}
}
