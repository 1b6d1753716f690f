package config

import (
	"testing"
	"time"
)

const testServiceAccount = `{"type":"service_account","project_id":"relay-test","client_email":"relay@relay-test.iam.gserviceaccount.com"}`

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("FIREBASE_CONFIG", testServiceAccount)
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("EXPO_PUSH_URL", "")
	t.Setenv("PROVIDER_TIMEOUT", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got := cfg.Addr(); got != "0.0.0.0:3000" {
		t.Errorf("Addr() = %q, want %q", got, "0.0.0.0:3000")
	}
	if cfg.ExpoPushURL != DefaultExpoPushURL {
		t.Errorf("ExpoPushURL = %q, want %q", cfg.ExpoPushURL, DefaultExpoPushURL)
	}
	if cfg.ProviderTimeout != 0 {
		t.Errorf("ProviderTimeout = %v, want 0", cfg.ProviderTimeout)
	}
	if cfg.FirebaseProjectID != "relay-test" {
		t.Errorf("FirebaseProjectID = %q, want %q", cfg.FirebaseProjectID, "relay-test")
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %q, want empty", cfg.RedisURL)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("FIREBASE_CONFIG", testServiceAccount)
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "8081")
	t.Setenv("PROVIDER_TIMEOUT", "5s")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if got := cfg.Addr(); got != "127.0.0.1:8081" {
		t.Errorf("Addr() = %q, want %q", got, "127.0.0.1:8081")
	}
	if cfg.ProviderTimeout != 5*time.Second {
		t.Errorf("ProviderTimeout = %v, want 5s", cfg.ProviderTimeout)
	}
	if !cfg.IsProduction() {
		t.Error("expected IsProduction to be true")
	}
}

func TestLoadConfig_MissingCredentials(t *testing.T) {
	t.Setenv("FIREBASE_CONFIG", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error when FIREBASE_CONFIG is missing")
	}
}

func TestLoadConfig_MalformedCredentials(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not json", "{not-json"},
		{"no project id", `{"type":"service_account"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("FIREBASE_CONFIG", tt.value)
			if _, err := LoadConfig(); err == nil {
				t.Errorf("expected error for FIREBASE_CONFIG=%q", tt.value)
			}
		})
	}
}
