// Command dua-blinka drives two LEDs through blink patterns selected by a
// single push button: a tap cycles through the patterns, a hold switches to
// SOS. Pattern changes are published to MQTT and a small HTTP page shows
// live status.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/CarlKCarlK/dua-blinka/internal/config"
	"github.com/CarlKCarlK/dua-blinka/internal/engine"
	"github.com/CarlKCarlK/dua-blinka/internal/gesture"
	"github.com/CarlKCarlK/dua-blinka/internal/gpio"
	"github.com/CarlKCarlK/dua-blinka/internal/mqtt"
	"github.com/CarlKCarlK/dua-blinka/internal/schedule"
	"github.com/CarlKCarlK/dua-blinka/internal/status"
	"github.com/CarlKCarlK/dua-blinka/internal/web"
)

const defaultConfigPath = "/etc/dua-blinka.toml"

func main() {
	def := config.Default()

	configPath := flag.String("config", defaultConfigPath, "TOML config file")
	tick := flag.Duration("tick", time.Duration(def.TickMs)*time.Millisecond, "Button polling and schedule tick interval")
	debounce := flag.Duration("debounce", time.Duration(def.DebounceMs)*time.Millisecond, "Button debounce duration")
	tapMax := flag.Duration("tap-max", time.Duration(def.TapMaxMs)*time.Millisecond, "Longest press still counted as a tap")
	holdMin := flag.Duration("hold-min", time.Duration(def.HoldMinMs)*time.Millisecond, "Shortest press counted as a hold")
	broker := flag.String("broker", def.Broker, "MQTT broker address")
	heartbeat := flag.Duration("heartbeat", time.Duration(def.HeartbeatMs)*time.Millisecond, "Heartbeat interval (0 to disable)")
	pinLedA := flag.Int("pin-led-a", def.PinLedA, "BCM pin number for LED A")
	pinLedB := flag.Int("pin-led-b", def.PinLedB, "BCM pin number for LED B")
	pinButton := flag.Int("pin-button", def.PinButton, "BCM pin number for the button")
	httpAddr := flag.String("http", def.HTTPAddr, "HTTP status address (empty to disable)")
	wsBroker := flag.String("ws-broker", def.WSBroker, `MQTT websocket URL for live UI ("=broker" derives from --broker, "off" disables)`)
	emulate := flag.Bool("emulate", def.Emulate, "Run without hardware: log LED transitions instead of driving pins")

	flag.Parse()

	cfg, err := mergedConfig(*configPath)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}
	// Command-line flags win over the file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tick":
			cfg.TickMs = tick.Milliseconds()
		case "debounce":
			cfg.DebounceMs = debounce.Milliseconds()
		case "tap-max":
			cfg.TapMaxMs = tapMax.Milliseconds()
		case "hold-min":
			cfg.HoldMinMs = holdMin.Milliseconds()
		case "heartbeat":
			cfg.HeartbeatMs = heartbeat.Milliseconds()
		case "broker":
			cfg.Broker = *broker
		case "http":
			cfg.HTTPAddr = *httpAddr
		case "ws-broker":
			cfg.WSBroker = *wsBroker
		case "pin-led-a":
			cfg.PinLedA = *pinLedA
		case "pin-led-b":
			cfg.PinLedB = *pinLedB
		case "pin-button":
			cfg.PinButton = *pinButton
		case "emulate":
			cfg.Emulate = *emulate
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// mergedConfig loads the TOML file. The default path is allowed to be
// missing; a path the user named must exist.
func mergedConfig(path string) (config.Config, error) {
	explicit := path != defaultConfigPath
	return config.Load(path, explicit)
}

func run(cfg config.Config) error {
	var (
		button gpio.Button
		leds   gpio.LEDs
		err    error
	)
	if cfg.Emulate {
		button = &gpio.StaticButton{}
		leds = gpio.NewConsoleLEDs()
	} else {
		button, err = gpio.NewRealButton(cfg.PinButton)
		if err != nil {
			return fmt.Errorf("init button: %w", err)
		}
		leds, err = gpio.NewRealLEDs(cfg.PinLedA, cfg.PinLedB)
		if err != nil {
			button.Close()
			return fmt.Errorf("init leds: %w", err)
		}
	}
	defer button.Close()
	defer leds.Close()

	// An emulated run publishes to the log; only a hardware run needs the
	// broker up at startup.
	var publisher interface {
		mqtt.Publisher
		mqtt.ConnectionStatus
	}
	if cfg.Emulate {
		publisher = mqtt.NewConsolePublisher()
	} else {
		real, err := mqtt.NewRealPublisher(cfg.Broker)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		publisher = real
	}
	defer publisher.Close()

	ws := resolveWSBroker(cfg.WSBroker, cfg.Broker)
	tracker := status.NewTracker(time.Now(), status.Config{
		TickMs:      cfg.TickMs,
		DebounceMs:  cfg.DebounceMs,
		TapMaxMs:    cfg.TapMaxMs,
		HoldMinMs:   cfg.HoldMinMs,
		HeartbeatMs: cfg.HeartbeatMs,
		Broker:      cfg.Broker,
		HTTPAddr:    cfg.HTTPAddr,
		WSBroker:    ws,
		Emulated:    cfg.Emulate,
	})
	if net := readNetworkInfo(); net != nil {
		tracker.SetNetwork(net)
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	if cfg.HTTPAddr != "" {
		srv := web.New(cfg.HTTPAddr, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("http server error: %v", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Printf("http status server listening on %s", cfg.HTTPAddr)
	}

	tickDur := time.Duration(cfg.TickMs) * time.Millisecond
	heartbeat := time.Duration(cfg.HeartbeatMs) * time.Millisecond
	log.Printf("started: tick=%v debounce=%vms tap-max=%vms hold-min=%vms broker=%s emulate=%v",
		tickDur, cfg.DebounceMs, cfg.TapMaxMs, cfg.HoldMinMs, cfg.Broker, cfg.Emulate)

	ticker := time.NewTicker(tickDur)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	detector, err := gesture.NewDetector(
		time.Duration(cfg.DebounceMs)*time.Millisecond,
		time.Duration(cfg.TapMaxMs)*time.Millisecond,
		time.Duration(cfg.HoldMinMs)*time.Millisecond,
	)
	if err != nil {
		return fmt.Errorf("init detector: %w", err)
	}

	return runLoop(button, leds, publisher, publisher, tracker, detector, heartbeat, time.Now, ticker.C, sigCh)
}

func runLoop(button gpio.Button, leds gpio.LEDs, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, detector *gesture.Detector, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	eng := engine.New(detector, now())

	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if tracker != nil {
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
				snap := tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := publisher.PublishSystem(event); err != nil {
				log.Printf("failed to publish shutdown event: %v", err)
			} else {
				log.Printf("published shutdown event")
			}
			return nil

		case <-tick:
			t := now()
			pressed, err := button.Read()
			if err != nil {
				log.Printf("button read error: %v", err)
				continue
			}

			frame := eng.Tick(pressed, t)

			for _, change := range frame.Changes {
				log.Printf("gesture: %s, pattern %s -> %s", change.Gesture, change.From, change.To)
				if err := publisher.Publish(change); err != nil {
					log.Printf("publish error: %v", err)
					// Don't crash on publish failure
				}
			}

			if err := leds.Set(frame.LedA == schedule.LevelOn, frame.LedB == schedule.LevelOn); err != nil {
				log.Printf("led write error: %v", err)
			}

			// Check for heartbeat
			if hbData := eng.CheckHeartbeat(t, heartbeat); hbData != nil {
				log.Printf("heartbeat: uptime=%v pattern=%s taps=%d holds=%d changes=%d",
					hbData.Uptime, hbData.Pattern, hbData.Counts.Taps, hbData.Counts.Holds, hbData.Counts.PatternChanges)

				hbEvent := mqtt.SystemEvent{
					Timestamp: hbData.Timestamp,
					Event:     "HEARTBEAT",
				}
				if tracker != nil {
					if mqttStatus != nil {
						tracker.SetMQTTConnected(mqttStatus.IsConnected())
					}
					// Refresh network info for heartbeat
					if net := readNetworkInfo(); net != nil {
						tracker.SetNetwork(net)
					}
					tracker.Update(frame.Pattern, frame.LedA, frame.LedB, eng.CountsSnapshot())
					snap := tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}

			// Update status tracker for HTTP consumers
			if tracker != nil {
				tracker.Update(frame.Pattern, frame.LedA, frame.LedB, eng.CountsSnapshot())
				if mqttStatus != nil {
					tracker.SetMQTTConnected(mqttStatus.IsConnected())
				}
			}
		}
	}
}

// pi-helper env var names (written to /run/pi-helper.env).
const (
	envNetworkType       = "NETWORK_TYPE"
	envNetworkIP         = "NETWORK_IP"
	envNetworkStatus     = "NETWORK_STATUS"
	envNetworkGateway    = "NETWORK_GATEWAY"
	envNetworkWifiStatus = "NETWORK_WIFI_STATUS"
	envNetworkWifiSSID   = "NETWORK_WIFI_SSID"
)

func readNetworkInfo() *status.NetworkInfo {
	s := os.Getenv(envNetworkStatus)
	if s == "" {
		return nil
	}
	return &status.NetworkInfo{
		Type:       os.Getenv(envNetworkType),
		IP:         os.Getenv(envNetworkIP),
		Status:     s,
		Gateway:    os.Getenv(envNetworkGateway),
		WifiStatus: os.Getenv(envNetworkWifiStatus),
		SSID:       os.Getenv(envNetworkWifiSSID),
	}
}

// resolveWSBroker converts the --ws-broker flag value into a concrete URL.
// "=broker" derives ws://host:9001 from the TCP broker address; empty disables.
func resolveWSBroker(ws, broker string) string {
	if ws == "off" {
		return ""
	}
	if ws != "=broker" {
		return ws
	}
	u, err := url.Parse(broker)
	if err != nil {
		log.Printf("ws-broker: cannot parse --broker %q: %v", broker, err)
		return ""
	}
	u.Scheme = "ws"
	u.Host = u.Hostname() + ":9001"
	return u.String()
}
