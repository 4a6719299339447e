package ports

import "github.com/G0rocks/aishub-data-collector/internal/domain"

// SeriesStats reports what happened to a batch handed to the store.
type SeriesStats struct {
	// Appended counts records durably written to a series.
	Appended int
	// Deduped counts records skipped because their timestamp was not newer
	// than the series tail.
	Deduped int
	// Dropped counts records with neither IMO nor MMSI, which cannot be
	// routed to a series.
	Dropped int
}

// SeriesStore is the durable per-vessel append-only store. An error aborts
// the remainder of the batch; record-level skips are not errors and are
// reported through SeriesStats.
type SeriesStore interface {
	Append(records []*domain.VesselRecord) (SeriesStats, error)
}
