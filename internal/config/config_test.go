package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/serframe/internal/testutil/testlog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bridge.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadBridgeConfigAppliesDefaults(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
endpoint = "serial"
device = "/dev/ttyUSB0"
`)
	cfg, err := LoadBridgeConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Name != "serframectl" || cfg.Baud != 115200 || cfg.Capacity != 256 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.StatusAddr == "" || cfg.QueueSize == 0 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
}

func TestLoadBridgeConfigParsesHeartbeat(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
endpoint = "tcp"
addr = "10.0.0.7:7700"

[heartbeat]
id = 16
interval = "2s"
payload = "ping"
`)
	cfg, err := LoadBridgeConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Heartbeat.ID != 16 || cfg.Heartbeat.Every() != 2*time.Second || cfg.Heartbeat.Payload != "ping" {
		t.Fatalf("heartbeat mismatch: %+v", cfg.Heartbeat)
	}
}

func TestLoadBridgeConfigRejectsUnknownEndpoint(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `endpoint = "carrier-pigeon"`)
	if _, err := LoadBridgeConfig(path); err == nil || !strings.Contains(err.Error(), "endpoint") {
		t.Fatalf("expected endpoint validation error, got %v", err)
	}
}

func TestLoadBridgeConfigRejectsSerialWithoutDevice(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `endpoint = "serial"`)
	if _, err := LoadBridgeConfig(path); err == nil || !strings.Contains(err.Error(), "device") {
		t.Fatalf("expected device validation error, got %v", err)
	}
}

func TestLoadBridgeConfigRejectsUndersizedQueue(t *testing.T) {
	testlog.Start(t)
	path := writeConfig(t, `
endpoint = "serial"
device = "/dev/ttyUSB0"
capacity = 256
queue_size = 64
`)
	if _, err := LoadBridgeConfig(path); err == nil || !strings.Contains(err.Error(), "queue_size") {
		t.Fatalf("expected queue_size validation error, got %v", err)
	}
}
