package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 3000 {
		t.Fatalf("unexpected port: %d", cfg.Port)
	}
	if cfg.LogLevel != "info" || cfg.LogJSON {
		t.Fatalf("unexpected log settings: %+v", cfg)
	}
	if cfg.StaticDir != "" {
		t.Fatalf("unexpected static dir: %q", cfg.StaticDir)
	}
	if cfg.Addr() != ":3000" {
		t.Fatalf("unexpected addr: %q", cfg.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"PORT":                "8081",
		"STACKVIZ_STATIC_DIR": "/srv/public",
		"STACKVIZ_LOG_LEVEL":  "debug",
		"STACKVIZ_LOG_JSON":   "true",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8081 || cfg.StaticDir != "/srv/public" || cfg.LogLevel != "debug" || !cfg.LogJSON {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	for _, port := range []string{"0", "70000", "http"} {
		if _, err := LoadFrom(map[string]string{"PORT": port}); err == nil {
			t.Fatalf("expected error for PORT=%s", port)
		}
	}
}
