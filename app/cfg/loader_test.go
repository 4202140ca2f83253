package cfg

import (
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		Token:             "ghp_test",
		APIEndpoint:       "https://api.github.com/graphql",
		DBPath:            "./digest.db",
		WatchConfigPath:   "./watch.yaml",
		Port:              "8080",
		WorkerCount:       2,
		SchedulerInterval: 3600,
		APIAccessKey:      "test-key",
		UserAgent:         "issue-digest/test",
		Timezone:          "UTC",
		Debug:             true,
		Version:           "test-version",
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.APIEndpoint != "https://api.github.com/graphql" {
		t.Errorf("Expected default GraphQL endpoint, got '%s'", cfg.APIEndpoint)
	}
	if cfg.SchedulerInterval != 3600 {
		t.Errorf("Expected scheduler interval 3600, got %d", cfg.SchedulerInterval)
	}
}

func TestApplyTimezone(t *testing.T) {
	original := time.Local
	defer func() { time.Local = original }()

	if err := applyTimezone("UTC"); err != nil {
		t.Errorf("UTC should always resolve: %v", err)
	}
	if err := applyTimezone("Not/AZone"); err == nil {
		t.Error("Expected an error for an unknown timezone")
	}
	if err := applyTimezone(""); err != nil {
		t.Errorf("Empty timezone should be a no-op: %v", err)
	}
}
