package aishubcollector

import (
	"context"

	base "github.com/G0rocks/aishub-data-collector/pkg/collector"
)

// Re-exported errors for convenience.
var (
	ErrRateLimited       = base.ErrRateLimited
	ErrChannelSinkClosed = base.ErrChannelSinkClosed
)

// Type aliases so consumers can import github.com/G0rocks/aishub-data-collector directly.
type (
	Config           = base.Config
	Settings         = base.Settings
	HTTPConfig       = base.HTTPConfig
	StoreConfig      = base.StoreConfig
	FleetConfig      = base.FleetConfig
	MetricsConfig    = base.MetricsConfig
	ArchiveConfig    = base.ArchiveConfig
	KafkaConfig      = base.KafkaConfig
	Runtime          = base.Runtime
	RuntimeOption    = base.RuntimeOption
	VesselRecord     = base.VesselRecord
	RecordBatchSink  = base.RecordBatchSink
	Transport        = base.Transport
	Decoder          = base.Decoder
	SeriesStore      = base.SeriesStore
	SeriesStats      = base.SeriesStats
	Sink             = base.Sink
	SettingsProvider = base.SettingsProvider
	FleetProvider    = base.FleetProvider
	Observability    = base.Observability
	Field            = base.Field
)

// Config helpers.
func LoadConfig(path string) (*Config, error) {
	return base.LoadConfig(path)
}

// Runtime and options.
func NewRuntime(configPath string, opts ...RuntimeOption) (*Runtime, error) {
	return base.NewRuntime(configPath, opts...)
}

func WithTransport(t Transport) RuntimeOption {
	return base.WithTransport(t)
}

func WithDecoder(d Decoder) RuntimeOption {
	return base.WithDecoder(d)
}

func WithStore(s SeriesStore) RuntimeOption {
	return base.WithStore(s)
}

func WithMirror(s Sink) RuntimeOption {
	return base.WithMirror(s)
}

func WithObservability(obs Observability) RuntimeOption {
	return base.WithObservability(obs)
}

func WithSettingsProvider(p SettingsProvider) RuntimeOption {
	return base.WithSettingsProvider(p)
}

func WithFleetProvider(p FleetProvider) RuntimeOption {
	return base.WithFleetProvider(p)
}

// Record helpers.
func NewVesselRecord() *VesselRecord {
	return base.NewVesselRecord()
}

// Sink adapters.
func NewCallbackSink(name string, fn RecordBatchSink) Sink {
	return base.NewCallbackSink(name, fn)
}

func NewChannelSink(name string, buffer int) (Sink, <-chan []*VesselRecord, func()) {
	return base.NewChannelSink(name, buffer)
}

// Run is a shortcut for NewRuntime + Runtime.Run.
func Run(ctx context.Context, configPath string, opts ...RuntimeOption) error {
	rt, err := base.NewRuntime(configPath, opts...)
	if err != nil {
		return err
	}
	return rt.Run(ctx)
}
