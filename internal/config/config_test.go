package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_DSN", "postgres://ge:ge@localhost:5432/ge")
	t.Setenv("USER_AGENT", "ge-prices test - ops@example.com")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr() != "0.0.0.0:8080" {
		t.Fatalf("unexpected addr %s", cfg.HTTP.Addr())
	}
	if cfg.Freshness.MaxAge != 10*time.Minute {
		t.Fatalf("unexpected freshness %v", cfg.Freshness.MaxAge)
	}
	if cfg.Wiki.BaseURL != defaultWikiBaseURL || cfg.Wiki.Timeout != defaultWikiTimeout {
		t.Fatalf("unexpected wiki config %+v", cfg.Wiki)
	}
	if cfg.Runes.NatureName != "Nature rune" || cfg.Runes.FireName != "Fire rune" || cfg.Runes.FirePerCast != 5 {
		t.Fatalf("unexpected rune config %+v", cfg.Runes)
	}
	if cfg.Redis.Addr != "" || cfg.RabbitMQ.URL != "" {
		t.Fatalf("optional integrations must default to disabled")
	}
	if cfg.Cache.TTL() != 30*time.Second {
		t.Fatalf("unexpected cache ttl %v", cfg.Cache.TTL())
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("FRESHNESS_MAX_AGE", "90s")
	t.Setenv("WIKI_BASE_URL", "http://127.0.0.1:1234/osrs/")
	t.Setenv("FIRE_RUNES_PER_CAST", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Port != 9000 {
		t.Fatalf("port override ignored: %d", cfg.HTTP.Port)
	}
	if cfg.Freshness.MaxAge != 90*time.Second {
		t.Fatalf("freshness override ignored: %v", cfg.Freshness.MaxAge)
	}
	if cfg.Wiki.BaseURL != "http://127.0.0.1:1234/osrs" {
		t.Fatalf("trailing slash not trimmed: %s", cfg.Wiki.BaseURL)
	}
	if cfg.Runes.FirePerCast != 0 {
		t.Fatalf("fire runes override ignored: %d", cfg.Runes.FirePerCast)
	}
}

func TestLoadRejectsMissingOrInvalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"missing dsn", map[string]string{"DATABASE_DSN": ""}},
		{"blank user agent", map[string]string{"USER_AGENT": "   "}},
		{"bad port", map[string]string{"HTTP_PORT": "eighty"}},
		{"bad freshness", map[string]string{"FRESHNESS_MAX_AGE": "ten minutes"}},
		{"non-positive freshness", map[string]string{"FRESHNESS_MAX_AGE": "0s"}},
		{"bad timeout", map[string]string{"WIKI_TIMEOUT": "soon"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
