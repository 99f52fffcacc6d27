package config

import "testing"

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when JWT_SECRET is missing")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL_HOURS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != "3000" {
		t.Fatalf("Port = %q, want \"3000\"", cfg.Port)
	}
	// セッションエントリのTTLはトークンの有効期限（2日）に揃う
	if cfg.SessionTTLHours != 48 {
		t.Fatalf("SessionTTLHours = %d, want 48", cfg.SessionTTLHours)
	}
}

func TestLoadSessionTTLOverride(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SESSION_TTL_HOURS", "12")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.SessionTTLHours != 12 {
		t.Fatalf("SessionTTLHours = %d, want 12", cfg.SessionTTLHours)
	}
}

func TestValidateReleaseMode(t *testing.T) {
	cfg := &Config{
		GinMode:         "release",
		JWTSecret:       "test-secret",
		SessionTTLHours: 48,
		DatabaseURL:     "postgres://localhost/smartbrain",
		RedisURL:        "redis://localhost:6379/0",
	}
	// release モードでは画像解析APIの資格情報まで必須
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error without CLARIFAI_PAT in release mode")
	}

	cfg.ClarifaiPAT = "pat"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}
