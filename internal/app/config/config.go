package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/G0rocks/aishub-data-collector/internal/adapters/publish"
	"github.com/G0rocks/aishub-data-collector/internal/ports"
)

type Config struct {
	AISHub  ports.Settings `yaml:"aishub"`
	HTTP    HTTPConfig     `yaml:"http"`
	Store   StoreConfig    `yaml:"store"`
	Fleet   FleetConfig    `yaml:"fleet"`
	Metrics MetricsConfig  `yaml:"metrics"`
	Archive ArchiveConfig  `yaml:"archive"`
	Kafka   publish.Config `yaml:"kafka"`
}

type HTTPConfig struct {
	// TimeoutSeconds bounds a single upstream fetch. Zero means no limit.
	TimeoutSeconds uint `yaml:"timeout_seconds"`
}

type StoreConfig struct {
	Dir string `yaml:"dir"`
}

type FleetConfig struct {
	Path string `yaml:"path"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// ArchiveConfig enables the optional relational mirror when ConnString is set.
type ArchiveConfig struct {
	ConnString string `yaml:"conn_string"`
	Table      string `yaml:"table"`
}

func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.AISHub.IntervalMinutes == 0 {
		c.AISHub.IntervalMinutes = 2
	}
	if c.AISHub.Format == 0 {
		c.AISHub.Format = 1
	}
	if c.AISHub.Output == "" {
		c.AISHub.Output = "csv"
	}
	if c.Store.Dir == "" {
		c.Store.Dir = "./data"
	}
	if c.Fleet.Path == "" {
		c.Fleet.Path = "./ships.csv"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9100"
	}
	if c.Archive.Table == "" {
		c.Archive.Table = "vessel_reports"
	}
	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "vessel-reports"
	}
}

func (c *Config) validate() error {
	if c.AISHub.APIKey == "" {
		return fmt.Errorf("aishub.api_key is required")
	}
	if c.AISHub.Output != "csv" {
		return fmt.Errorf("aishub.output must be csv, got %q", c.AISHub.Output)
	}
	if c.AISHub.IntervalMinutes < 1 {
		return fmt.Errorf("aishub.interval_minutes must be at least 1")
	}
	if c.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required")
	}
	return nil
}

// Save writes the configuration back to path atomically. The temp file is
// synced before the rename so a crash can never leave a truncated file
// behind.
func (c *Config) Save(path string) error {
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(raw); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

// FileProvider reloads and persists the aishub section of a config file,
// leaving every other section untouched.
type FileProvider struct {
	path string
}

func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: filepath.Clean(path)}
}

func (p *FileProvider) Load() (ports.Settings, error) {
	cfg, err := Load(p.path)
	if err != nil {
		return ports.Settings{}, err
	}
	return cfg.AISHub, nil
}

func (p *FileProvider) Save(s ports.Settings) error {
	cfg, err := Load(p.path)
	if err != nil {
		return err
	}
	cfg.AISHub = s
	return cfg.Save(p.path)
}

var _ ports.SettingsProvider = (*FileProvider)(nil)
