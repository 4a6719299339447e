package aishub

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/G0rocks/aishub-data-collector/internal/ports"
)

// EndpointURL is the fixed AISHub web service endpoint.
const EndpointURL = "https://data.aishub.net/ws.php"

// BuildRequestURL composes the AISHub query from the current settings and
// the tracked vessel keys. Unset filters and empty key lists are omitted.
// Note the upstream calls the max-age filter "interval"; it is unrelated to
// the polling interval.
func BuildRequestURL(s ports.Settings, imoKeys, mmsiKeys []string) string {
	q := url.Values{}
	q.Set("username", s.APIKey)
	q.Set("format", strconv.Itoa(s.Format))
	q.Set("output", s.Output)
	q.Set("compress", strconv.Itoa(s.Compress))
	if s.LatMin != nil {
		q.Set("latmin", formatCoord(*s.LatMin))
	}
	if s.LatMax != nil {
		q.Set("latmax", formatCoord(*s.LatMax))
	}
	if s.LonMin != nil {
		q.Set("lonmin", formatCoord(*s.LonMin))
	}
	if s.LonMax != nil {
		q.Set("lonmax", formatCoord(*s.LonMax))
	}
	if len(mmsiKeys) > 0 {
		q.Set("mmsi", strings.Join(mmsiKeys, ","))
	}
	if len(imoKeys) > 0 {
		q.Set("imo", strings.Join(imoKeys, ","))
	}
	if s.MaxAgeSeconds != nil {
		q.Set("interval", strconv.FormatUint(*s.MaxAgeSeconds, 10))
	}
	return EndpointURL + "?" + q.Encode()
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
