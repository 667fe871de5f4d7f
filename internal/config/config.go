package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/serframe/protocol"
)

// BridgeConfig drives one serframectl instance: the byte endpoint it
// bridges, the framing bounds, and the status surface.
type BridgeConfig struct {
	Name       string          `toml:"name"`
	Endpoint   string          `toml:"endpoint"` // "serial" or "tcp"
	Device     string          `toml:"device"`
	Baud       int             `toml:"baud"`
	Addr       string          `toml:"addr"`
	Capacity   int             `toml:"capacity"`
	QueueSize  int             `toml:"queue_size"`
	StatusAddr string          `toml:"status_addr"`
	Heartbeat  HeartbeatConfig `toml:"heartbeat"`
}

// HeartbeatConfig describes the periodic frame the bridge emits so the
// peer can watch link liveness. Interval 0 disables it.
type HeartbeatConfig struct {
	ID       uint16   `toml:"id"`
	Interval duration `toml:"interval"`
	Payload  string   `toml:"payload"`
}

func (h HeartbeatConfig) Every() time.Duration {
	return time.Duration(h.Interval)
}

type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

func LoadBridgeConfig(path string) (BridgeConfig, error) {
	var cfg BridgeConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return BridgeConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	applyDefaults(&cfg)
	if err := ValidateBridgeConfig(cfg); err != nil {
		return BridgeConfig{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *BridgeConfig) {
	if cfg.Name == "" {
		cfg.Name = "serframectl"
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "serial"
	}
	if cfg.Baud == 0 {
		cfg.Baud = 115200
	}
	if cfg.Capacity == 0 {
		cfg.Capacity = 256
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 4096
	}
	if cfg.StatusAddr == "" {
		cfg.StatusAddr = "127.0.0.1:9310"
	}
}

func ValidateBridgeConfig(cfg BridgeConfig) error {
	switch cfg.Endpoint {
	case "serial":
		if strings.TrimSpace(cfg.Device) == "" {
			return fmt.Errorf("bridge config missing device for serial endpoint")
		}
		if cfg.Baud <= 0 {
			return fmt.Errorf("bridge config baud must be positive, got %d", cfg.Baud)
		}
	case "tcp":
		if strings.TrimSpace(cfg.Addr) == "" {
			return fmt.Errorf("bridge config missing addr for tcp endpoint")
		}
	default:
		return fmt.Errorf("bridge config endpoint must be serial or tcp, got %q", cfg.Endpoint)
	}
	if cfg.Capacity <= 0 {
		return fmt.Errorf("bridge config capacity must be positive, got %d", cfg.Capacity)
	}
	if cfg.QueueSize < protocol.HeaderLen+protocol.MaxDataLen(cfg.Capacity) {
		return fmt.Errorf("bridge config queue_size %d cannot hold one full frame at capacity %d",
			cfg.QueueSize, cfg.Capacity)
	}
	if cfg.Heartbeat.Every() < 0 {
		return fmt.Errorf("bridge config heartbeat interval must not be negative")
	}
	if cfg.Heartbeat.Every() > 0 && cfg.Heartbeat.ID > protocol.IDMax {
		return fmt.Errorf("bridge config heartbeat id %#x out of range", cfg.Heartbeat.ID)
	}
	return nil
}
