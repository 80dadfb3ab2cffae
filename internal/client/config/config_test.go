package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if cfg.ServerEndpointAddr != "http://localhost:8080" {
		t.Fatalf("unexpected endpoint: %q", cfg.ServerEndpointAddr)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.RequestTimeout)
	}
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cli", "-a", "http://vault.example.com", "-t", "30"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	if cfg.ServerEndpointAddr != "http://vault.example.com" {
		t.Fatalf("unexpected endpoint: %q", cfg.ServerEndpointAddr)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.RequestTimeout)
	}
}

func TestParseJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"server_endpoint_addr": "http://json.example.com", "request_timeout": "5s"}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cli", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	if cfg.ServerEndpointAddr != "http://json.example.com" {
		t.Fatalf("unexpected endpoint: %q", cfg.ServerEndpointAddr)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("unexpected timeout: %v", cfg.RequestTimeout)
	}
}

func TestParseJson_NoFile(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()
	os.Args = []string{"cli"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	if cfg.ServerEndpointAddr != "http://localhost:8080" {
		t.Fatalf("defaults must survive: %q", cfg.ServerEndpointAddr)
	}
}
