// Package config loads daemon settings from an optional TOML file.
// Precedence is handled by the caller: flags set on the command line
// win over file values, which win over the defaults here.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds every tunable the daemon accepts. Durations are in
// milliseconds so the file stays plain integers.
type Config struct {
	TickMs      int64  `toml:"tick_ms"`
	DebounceMs  int64  `toml:"debounce_ms"`
	TapMaxMs    int64  `toml:"tap_max_ms"`
	HoldMinMs   int64  `toml:"hold_min_ms"`
	HeartbeatMs int64  `toml:"heartbeat_ms"`
	Broker      string `toml:"broker"`
	HTTPAddr    string `toml:"http_addr"`
	WSBroker    string `toml:"ws_broker"`
	PinLedA     int    `toml:"pin_led_a"`
	PinLedB     int    `toml:"pin_led_b"`
	PinButton   int    `toml:"pin_button"`
	Emulate     bool   `toml:"emulate"`
}

// Default returns the built-in settings used when neither the config
// file nor the command line overrides them.
func Default() Config {
	return Config{
		TickMs:      10,
		DebounceMs:  10,
		TapMaxMs:    300,
		HoldMinMs:   500,
		HeartbeatMs: 15 * 60 * 1000,
		Broker:      "tcp://192.168.1.200:1883",
		HTTPAddr:    ":80",
		WSBroker:    "=broker",
		PinLedA:     2,
		PinLedB:     3,
		PinButton:   13,
	}
}

// Load reads a TOML file over the defaults. A missing file is only an
// error when explicit is true (the user named the path themselves).
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.TickMs <= 0 {
		return fmt.Errorf("tick_ms must be positive, got %d", c.TickMs)
	}
	if c.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMs)
	}
	if c.TapMaxMs <= 0 {
		return fmt.Errorf("tap_max_ms must be positive, got %d", c.TapMaxMs)
	}
	if c.HoldMinMs < c.TapMaxMs {
		return fmt.Errorf("hold_min_ms %d must be at least tap_max_ms %d", c.HoldMinMs, c.TapMaxMs)
	}
	return nil
}
