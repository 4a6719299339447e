package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/G0rocks/aishub-data-collector/internal/ports"
)

// Runner drives the poll loop: reload settings, fetch the fleet's latest
// observations, decode them and append to the store, then sleep for the
// configured interval. A returned error is fatal to the loop; upstream
// trouble (transport failures, rate limiting, malformed bodies) only fails
// the cycle.
type Runner struct {
	Settings  ports.SettingsProvider
	Fleet     ports.FleetProvider
	Transport ports.Transport
	Decoder   ports.Decoder
	Store     ports.SeriesStore
	Mirrors   []ports.Sink
	Obs       ports.Observability

	// BuildURL composes the upstream request from the current settings and
	// fleet keys.
	BuildURL func(s ports.Settings, imoKeys, mmsiKeys []string) string

	// IntervalStep is how many minutes the poll interval grows by on a
	// rate-limit response. Zero means 1.
	IntervalStep uint
}

// Run executes cycles until ctx is cancelled. Only store and settings
// persistence failures stop the loop.
func (r *Runner) Run(ctx context.Context) error {
	for {
		wait, err := r.Cycle(ctx)
		if err != nil {
			return err
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

// Cycle runs one poll cycle and returns how long to sleep before the next.
func (r *Runner) Cycle(ctx context.Context) (time.Duration, error) {
	cycleID := uuid.NewString()
	started := time.Now()
	r.Obs.IncCounter("aishub_cycles_total", 1)

	settings, err := r.Settings.Load()
	if err != nil {
		r.Obs.LogCritical("settings_load_failed", err, ports.Field{Key: "cycle", Value: cycleID})
		return 0, fmt.Errorf("load settings: %w", err)
	}
	r.Obs.SetGauge("aishub_poll_interval_minutes", float64(settings.IntervalMinutes))

	imoKeys, mmsiKeys, err := r.Fleet.Load()
	if err != nil {
		r.Obs.LogCritical("fleet_load_failed", err, ports.Field{Key: "cycle", Value: cycleID})
		return 0, fmt.Errorf("load fleet: %w", err)
	}
	r.Obs.SetGauge("aishub_fleet_size", float64(len(imoKeys)+len(mmsiKeys)))

	url := r.BuildURL(settings, imoKeys, mmsiKeys)

	fetchStart := time.Now()
	body, err := r.Transport.Fetch(ctx, url)
	r.Obs.ObserveLatency("aishub_fetch_duration_seconds", time.Since(fetchStart).Seconds())
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		r.failCycle(cycleID, "fetch_failed", err)
		return r.interval(settings), nil
	}

	records, err := r.Decoder.Decode(body)
	if errors.Is(err, ports.ErrRateLimited) {
		return r.backOff(cycleID, settings)
	}
	if err != nil {
		r.failCycle(cycleID, "decode_failed", err)
		return r.interval(settings), nil
	}
	r.Obs.IncCounter("aishub_records_decoded_total", float64(len(records)))

	stats, err := r.Store.Append(records)
	if err != nil {
		r.Obs.LogCritical("store_append_failed", err, ports.Field{Key: "cycle", Value: cycleID})
		return 0, fmt.Errorf("append to store: %w", err)
	}
	r.Obs.IncCounter("aishub_records_appended_total", float64(stats.Appended))
	r.Obs.IncCounter("aishub_records_deduped_total", float64(stats.Deduped))
	r.Obs.IncCounter("aishub_records_unidentified_total", float64(stats.Dropped))

	for _, m := range r.Mirrors {
		if err := m.WriteBatch(records); err != nil {
			r.Obs.IncCounter("aishub_mirror_errors_total", 1)
			r.Obs.LogError("mirror_write_failed", err,
				ports.Field{Key: "cycle", Value: cycleID},
				ports.Field{Key: "mirror", Value: m.Name()})
		}
	}

	r.Obs.ObserveLatency("aishub_cycle_duration_seconds", time.Since(started).Seconds())
	r.Obs.LogInfo("cycle_complete",
		ports.Field{Key: "cycle", Value: cycleID},
		ports.Field{Key: "decoded", Value: len(records)},
		ports.Field{Key: "appended", Value: stats.Appended},
		ports.Field{Key: "deduped", Value: stats.Deduped},
		ports.Field{Key: "unidentified", Value: stats.Dropped})
	return r.interval(settings), nil
}

// backOff widens the poll interval after a rate-limit response and persists
// the new value so a restart does not resume hammering the upstream.
func (r *Runner) backOff(cycleID string, settings ports.Settings) (time.Duration, error) {
	step := r.IntervalStep
	if step == 0 {
		step = 1
	}
	settings.IntervalMinutes += step

	r.Obs.IncCounter("aishub_rate_limited_total", 1)
	r.Obs.SetGauge("aishub_poll_interval_minutes", float64(settings.IntervalMinutes))
	r.Obs.LogInfo("rate_limited",
		ports.Field{Key: "cycle", Value: cycleID},
		ports.Field{Key: "interval_minutes", Value: settings.IntervalMinutes})

	if err := r.Settings.Save(settings); err != nil {
		r.Obs.LogCritical("settings_save_failed", err, ports.Field{Key: "cycle", Value: cycleID})
		return 0, fmt.Errorf("persist widened interval: %w", err)
	}
	return r.interval(settings), nil
}

func (r *Runner) failCycle(cycleID, msg string, err error) {
	r.Obs.IncCounter("aishub_cycle_failures_total", 1)
	r.Obs.LogError(msg, err, ports.Field{Key: "cycle", Value: cycleID})
}

func (r *Runner) interval(s ports.Settings) time.Duration {
	return time.Duration(s.IntervalMinutes) * time.Minute
}
