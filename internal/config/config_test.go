package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	os.Setenv("MONGODB_DATABASE", "skill_mint_test")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	os.Setenv("JWT_SECRET", "testsecret123456789012345678901234")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.MongoDB.URI == "" || cfg.Redis.Host == "" {
		t.Fatalf("unexpected empty config values: %+v", cfg)
	}
	if cfg.JWT.SessionTTL != 3*time.Hour {
		t.Fatalf("SessionTTL = %v, want the 3h default", cfg.JWT.SessionTTL)
	}
	if cfg.Auth.Prefix != "/skill-mint" {
		t.Fatalf("Auth.Prefix = %q, want /skill-mint", cfg.Auth.Prefix)
	}
	if cfg.RateLimit.Max != 5 || cfg.RateLimit.StrictMax != 2 || cfg.RateLimit.WindowSeconds != 60 {
		t.Fatalf("unexpected rate limit defaults: %+v", cfg.RateLimit)
	}
}
