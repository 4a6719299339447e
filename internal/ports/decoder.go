package ports

import (
	"errors"

	"github.com/G0rocks/aishub-data-collector/internal/domain"
)

// ErrRateLimited is returned by a Decoder when the response body is the
// upstream rate-limit sentinel rather than a data table. It is distinct from
// a parse failure so the caller can back off instead of treating the body as
// malformed data.
var ErrRateLimited = errors.New("aishub: too frequent requests")

// Decoder turns a raw response body into typed vessel records, in input row
// order.
type Decoder interface {
	Decode(body string) ([]*domain.VesselRecord, error)
}
