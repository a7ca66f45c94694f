package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Bridge != BridgeHTTP {
		t.Errorf("Bridge = %q, want %q", cfg.Bridge, BridgeHTTP)
	}
	if cfg.ProbeTimeout != 10*time.Second {
		t.Errorf("ProbeTimeout = %v, want 10s", cfg.ProbeTimeout)
	}
	if cfg.FetchTimeout != 30*time.Second {
		t.Errorf("FetchTimeout = %v, want 30s", cfg.FetchTimeout)
	}
	if cfg.CacheTTL != 0 {
		t.Errorf("CacheTTL = %v, want 0", cfg.CacheTTL)
	}
	if !cfg.BrowserHeadless {
		t.Error("BrowserHeadless = false, want true")
	}
	if cfg.AuthEnabled() {
		t.Error("AuthEnabled() = true without credentials")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeEnvFile(t, "BRIDGE=rod\nPROBE_TIMEOUT=3s\nCACHE_TTL=5m\nBASIC_AUTH_USER=admin\nBASIC_AUTH_PASS=secret\nIS_DEV=true\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	if cfg.Bridge != BridgeRod {
		t.Errorf("Bridge = %q, want %q", cfg.Bridge, BridgeRod)
	}
	if cfg.ProbeTimeout != 3*time.Second {
		t.Errorf("ProbeTimeout = %v, want 3s", cfg.ProbeTimeout)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("CacheTTL = %v, want 5m", cfg.CacheTTL)
	}
	if !cfg.IsDev {
		t.Error("IsDev = false, want true")
	}
	if !cfg.AuthEnabled() {
		t.Error("AuthEnabled() = false, want true")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "Unknown bridge",
			content: "BRIDGE=selenium\n",
		},
		{
			name:    "User without password",
			content: "BASIC_AUTH_USER=admin\n",
		},
		{
			name:    "Zero probe timeout",
			content: "PROBE_TIMEOUT=0s\n",
		},
		{
			name:    "Negative burst",
			content: "RATE_LIMIT_BURST=-1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeEnvFile(t, tt.content)); err == nil {
				t.Error("Load() expected error but got none")
			}
		})
	}
}
