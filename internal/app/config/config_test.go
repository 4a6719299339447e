package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
aishub:
  api_key: AH_TEST_KEY
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.AISHub.IntervalMinutes != 2 {
		t.Fatalf("expected default interval 2, got %d", cfg.AISHub.IntervalMinutes)
	}
	if cfg.AISHub.Format != 1 {
		t.Fatalf("expected default format 1, got %d", cfg.AISHub.Format)
	}
	if cfg.AISHub.Output != "csv" {
		t.Fatalf("expected default output csv, got %s", cfg.AISHub.Output)
	}
	if cfg.Store.Dir != "./data" {
		t.Fatalf("expected default store dir ./data, got %s", cfg.Store.Dir)
	}
	if cfg.Fleet.Path != "./ships.csv" {
		t.Fatalf("expected default fleet path ./ships.csv, got %s", cfg.Fleet.Path)
	}
	if cfg.Metrics.Addr != ":9100" {
		t.Fatalf("expected default metrics addr :9100, got %s", cfg.Metrics.Addr)
	}
	if cfg.Archive.Table != "vessel_reports" {
		t.Fatalf("expected default archive table, got %s", cfg.Archive.Table)
	}
}

func TestLoadRejectsMissingAPIKey(t *testing.T) {
	path := writeConfig(t, `
aishub:
  interval_minutes: 2
`)

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "api_key") {
		t.Fatalf("expected api_key validation error, got %v", err)
	}
}

func TestLoadRejectsNonCSVOutput(t *testing.T) {
	path := writeConfig(t, `
aishub:
  api_key: AH_TEST_KEY
  output: json
`)

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "output") {
		t.Fatalf("expected output validation error, got %v", err)
	}
}

func TestFileProviderSavePreservesOtherSections(t *testing.T) {
	path := writeConfig(t, `
aishub:
  api_key: AH_TEST_KEY
  interval_minutes: 2
store:
  dir: /var/lib/aishub
kafka:
  brokers: broker-1:9092
  topic: custom-topic
`)

	p := NewFileProvider(path)
	s, err := p.Load()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}

	s.IntervalMinutes = 3
	if err := p.Save(s); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("reload config: %v", err)
	}
	if cfg.AISHub.IntervalMinutes != 3 {
		t.Fatalf("expected saved interval 3, got %d", cfg.AISHub.IntervalMinutes)
	}
	if cfg.Store.Dir != "/var/lib/aishub" {
		t.Fatalf("expected store section preserved, got %s", cfg.Store.Dir)
	}
	if cfg.Kafka.Brokers != "broker-1:9092" || cfg.Kafka.Topic != "custom-topic" {
		t.Fatalf("expected kafka section preserved, got %+v", cfg.Kafka)
	}
}

func TestFileProviderSaveLeavesNoTempFile(t *testing.T) {
	path := writeConfig(t, `
aishub:
  api_key: AH_TEST_KEY
`)

	p := NewFileProvider(path)
	s, err := p.Load()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if err := p.Save(s); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be gone, got %v", err)
	}
}

func TestLoadOptionalFilters(t *testing.T) {
	path := writeConfig(t, `
aishub:
  api_key: AH_TEST_KEY
  lat_min: 63.0
  lat_max: 67.5
  max_age_seconds: 600
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AISHub.LatMin == nil || *cfg.AISHub.LatMin != 63.0 {
		t.Fatalf("expected lat_min 63.0, got %v", cfg.AISHub.LatMin)
	}
	if cfg.AISHub.LonMin != nil {
		t.Fatalf("expected lon_min unset, got %v", *cfg.AISHub.LonMin)
	}
	if cfg.AISHub.MaxAgeSeconds == nil || *cfg.AISHub.MaxAgeSeconds != 600 {
		t.Fatalf("expected max_age_seconds 600, got %v", cfg.AISHub.MaxAgeSeconds)
	}
}
