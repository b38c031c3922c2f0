package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Port != 8000 {
		t.Errorf("API.Port = %d, want 8000", cfg.API.Port)
	}
	if cfg.API.PublicBaseURL != "http://localhost:8000" {
		t.Errorf("API.PublicBaseURL = %q", cfg.API.PublicBaseURL)
	}
	if cfg.Resolver.BinaryPath != "yt-dlp" {
		t.Errorf("Resolver.BinaryPath = %q", cfg.Resolver.BinaryPath)
	}
	if cfg.Proxy.FetchTimeout != 60*time.Second {
		t.Errorf("Proxy.FetchTimeout = %v", cfg.Proxy.FetchTimeout)
	}
	if cfg.ShortLinks.Capacity != 10000 {
		t.Errorf("ShortLinks.Capacity = %d", cfg.ShortLinks.Capacity)
	}
	if cfg.Cache.Enabled {
		t.Error("Cache.Enabled = true, want false by default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9000")
	t.Setenv("PUBLIC_BASE_URL", "https://dl.example.com")
	t.Setenv("PROXY_FETCH_TIMEOUT", "90s")
	t.Setenv("SHORTLINK_CAPACITY", "500")
	t.Setenv("CACHE_ENABLED", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Port != 9000 {
		t.Errorf("API.Port = %d, want 9000", cfg.API.Port)
	}
	if cfg.API.PublicBaseURL != "https://dl.example.com" {
		t.Errorf("API.PublicBaseURL = %q", cfg.API.PublicBaseURL)
	}
	if cfg.Proxy.FetchTimeout != 90*time.Second {
		t.Errorf("Proxy.FetchTimeout = %v", cfg.Proxy.FetchTimeout)
	}
	if cfg.ShortLinks.Capacity != 500 {
		t.Errorf("ShortLinks.Capacity = %d", cfg.ShortLinks.Capacity)
	}
	if !cfg.Cache.Enabled {
		t.Error("Cache.Enabled = false, want true")
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("API_PORT", "not-a-number")
	t.Setenv("PROXY_FETCH_TIMEOUT", "soon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Port != 8000 {
		t.Errorf("API.Port = %d, want the default on a malformed value", cfg.API.Port)
	}
	if cfg.Proxy.FetchTimeout != 60*time.Second {
		t.Errorf("Proxy.FetchTimeout = %v, want the default", cfg.Proxy.FetchTimeout)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(*Config) {}, false},
		{"port too low", func(c *Config) { c.API.Port = 0 }, true},
		{"port too high", func(c *Config) { c.API.Port = 70000 }, true},
		{"missing base url", func(c *Config) { c.API.PublicBaseURL = "" }, true},
		{"missing binary", func(c *Config) { c.Resolver.BinaryPath = "" }, true},
		{"zero fetch timeout", func(c *Config) { c.Proxy.FetchTimeout = 0 }, true},
		{"zero capacity", func(c *Config) { c.ShortLinks.Capacity = 0 }, true},
		{"ttl without sweep", func(c *Config) {
			c.ShortLinks.TTL = time.Hour
			c.ShortLinks.SweepInterval = 0
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
