package observability

import (
	"fmt"
	"log"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/G0rocks/aishub-data-collector/internal/ports"
)

// PromObs backs the observability port with Prometheus metrics and writes
// diagnostics to the standard logger (stdout, timestamp prefix).
type PromObs struct {
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

func NewPromObs() *PromObs {
	cycles := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aishub_cycles_total",
		Help: "Total poll cycles started.",
	})
	rateLimited := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aishub_rate_limited_total",
		Help: "Cycles rejected by the upstream rate limiter.",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aishub_cycle_failures_total",
		Help: "Cycles abandoned due to transport or response errors.",
	})
	decoded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aishub_records_decoded_total",
		Help: "Vessel records decoded from responses.",
	})
	appended := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aishub_records_appended_total",
		Help: "Records durably appended to a vessel series.",
	})
	deduped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aishub_records_deduped_total",
		Help: "Records skipped because their timestamp was not newer than the series tail.",
	})
	unidentified := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aishub_records_unidentified_total",
		Help: "Records dropped for lacking both IMO and MMSI.",
	})
	mirrorErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "aishub_mirror_errors_total",
		Help: "Mirror sink write failures (non-fatal).",
	})
	interval := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "aishub_poll_interval_minutes",
		Help: "Polling interval used for the current cycle.",
	})
	fleetSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "aishub_fleet_size",
		Help: "Number of tracked vessel keys (IMO + MMSI).",
	})
	cycleLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "aishub_cycle_duration_seconds",
		Help:    "Duration of a full fetch-decode-persist cycle.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})
	fetchLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "aishub_fetch_duration_seconds",
		Help:    "Duration of the outbound AISHub request.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	prometheus.MustRegister(cycles, rateLimited, failures, decoded, appended,
		deduped, unidentified, mirrorErrors, interval, fleetSize,
		cycleLatency, fetchLatency)

	return &PromObs{
		counters: map[string]prometheus.Counter{
			"aishub_cycles_total":               cycles,
			"aishub_rate_limited_total":         rateLimited,
			"aishub_cycle_failures_total":       failures,
			"aishub_records_decoded_total":      decoded,
			"aishub_records_appended_total":     appended,
			"aishub_records_deduped_total":      deduped,
			"aishub_records_unidentified_total": unidentified,
			"aishub_mirror_errors_total":        mirrorErrors,
		},
		gauges: map[string]prometheus.Gauge{
			"aishub_poll_interval_minutes": interval,
			"aishub_fleet_size":            fleetSize,
		},
		histos: map[string]prometheus.Observer{
			"aishub_cycle_duration_seconds": cycleLatency,
			"aishub_fetch_duration_seconds": fetchLatency,
		},
	}
}

func (p *PromObs) LogInfo(msg string, fields ...ports.Field) {
	log.Printf("INFO: %s%s", msg, formatFields(fields))
}

func (p *PromObs) LogError(msg string, err error, fields ...ports.Field) {
	log.Printf("ERROR: %s: %v%s", msg, err, formatFields(fields))
}

func (p *PromObs) LogCritical(msg string, err error, fields ...ports.Field) {
	log.Printf("CRITICAL: %s: %v%s", msg, err, formatFields(fields))
}

func (p *PromObs) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromObs) ObserveLatency(name string, seconds float64) {
	if h, ok := p.histos[name]; ok {
		h.Observe(seconds)
	}
}

func (p *PromObs) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}

func formatFields(fields []ports.Field) string {
	if len(fields) == 0 {
		return ""
	}
	var b strings.Builder
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
	}
	return b.String()
}

var _ ports.Observability = (*PromObs)(nil)
