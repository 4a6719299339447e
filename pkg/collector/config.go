package collector

import (
	"github.com/G0rocks/aishub-data-collector/internal/adapters/publish"
	"github.com/G0rocks/aishub-data-collector/internal/app/config"
	"github.com/G0rocks/aishub-data-collector/internal/ports"
)

// Config re-exports the root configuration struct so downstream projects can
// construct or modify it programmatically.
type Config = config.Config

type (
	// Settings holds the AISHub query parameters reloaded every cycle.
	Settings = ports.Settings
	// HTTPConfig bounds the upstream fetch.
	HTTPConfig = config.HTTPConfig
	// StoreConfig locates the per-vessel series directory.
	StoreConfig = config.StoreConfig
	// FleetConfig locates the tracked-fleet CSV.
	FleetConfig = config.FleetConfig
	// MetricsConfig configures the metrics HTTP server.
	MetricsConfig = config.MetricsConfig
	// ArchiveConfig configures the optional relational mirror.
	ArchiveConfig = config.ArchiveConfig
	// KafkaConfig configures the optional Kafka mirror.
	KafkaConfig = publish.Config
)

// LoadConfig loads YAML from disk using the internal config reader.
func LoadConfig(path string) (*Config, error) {
	return config.Load(path)
}
