package ports

import "github.com/G0rocks/aishub-data-collector/internal/domain"

// Sink receives the decoded batch of a poll cycle. Mirror sinks are
// best-effort: their errors are logged by the pipeline, never escalated.
type Sink interface {
	WriteBatch(records []*domain.VesselRecord) error
	Name() string
}
