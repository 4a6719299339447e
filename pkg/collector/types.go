package collector

import (
	"github.com/G0rocks/aishub-data-collector/internal/domain"
	"github.com/G0rocks/aishub-data-collector/internal/ports"
)

// VesselRecord is one decoded AIS observation. It mirrors the internal domain
// type but is exported so custom sinks and stores can reference it.
type VesselRecord = domain.VesselRecord

// NewVesselRecord returns a record with every field at its unset sentinel.
func NewVesselRecord() *VesselRecord { return domain.NewVesselRecord() }

// Transport fetches the raw upstream response body.
type Transport = ports.Transport

// Decoder turns a response body into typed records.
type Decoder = ports.Decoder

// SeriesStore is the durable per-vessel append-only store.
type SeriesStore = ports.SeriesStore

// SeriesStats reports what the store did with a batch.
type SeriesStats = ports.SeriesStats

// Sink consumes batches of records; mirrors are best-effort sinks.
type Sink = ports.Sink

// SettingsProvider reloads and persists the polling settings.
type SettingsProvider = ports.SettingsProvider

// FleetProvider loads the tracked vessel keys.
type FleetProvider = ports.FleetProvider

// Observability emits metrics and logs about cycles, records, and mirrors.
type Observability = ports.Observability

// Field is a structured log field used by Observability implementations.
type Field = ports.Field

// ErrRateLimited is returned by decoders when the upstream refused the poll.
var ErrRateLimited = ports.ErrRateLimited
