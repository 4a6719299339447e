package collector

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/G0rocks/aishub-data-collector/internal/adapters/aishub"
	"github.com/G0rocks/aishub-data-collector/internal/adapters/archive"
	"github.com/G0rocks/aishub-data-collector/internal/adapters/observability"
	"github.com/G0rocks/aishub-data-collector/internal/adapters/publish"
	"github.com/G0rocks/aishub-data-collector/internal/adapters/store"
	"github.com/G0rocks/aishub-data-collector/internal/app/config"
	"github.com/G0rocks/aishub-data-collector/internal/app/pipeline"
	"github.com/G0rocks/aishub-data-collector/internal/ports"
)

// RuntimeOption customizes the dependencies used by Runtime.
type RuntimeOption func(*runtimeOverrides)

type runtimeOverrides struct {
	transport     Transport
	decoder       Decoder
	store         SeriesStore
	mirrors       []Sink
	observability Observability
	settings      SettingsProvider
	fleet         FleetProvider
}

// WithTransport injects a custom upstream transport (stubs, proxies, replayed
// captures).
func WithTransport(t Transport) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.transport = t
	}
}

// WithDecoder overrides the default CSV response decoder.
func WithDecoder(d Decoder) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.decoder = d
	}
}

// WithStore swaps the per-vessel CSV store for a custom durable store.
func WithStore(s SeriesStore) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.store = s
	}
}

// WithMirror adds a best-effort sink that receives every decoded batch in
// addition to the primary store. May be repeated.
func WithMirror(s Sink) RuntimeOption {
	return func(o *runtimeOverrides) {
		if s != nil {
			o.mirrors = append(o.mirrors, s)
		}
	}
}

// WithObservability plugs in a custom observability backend.
func WithObservability(obs Observability) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.observability = obs
	}
}

// WithSettingsProvider replaces the config-file-backed settings reload/save.
func WithSettingsProvider(p SettingsProvider) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.settings = p
	}
}

// WithFleetProvider replaces the ships.csv fleet reader.
func WithFleetProvider(p FleetProvider) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.fleet = p
	}
}

// Runtime wires the settings → fetch → decode → store poll loop and exposes
// simple lifecycle hooks for embedding the collector inside any Go service.
type Runtime struct {
	cfg        *Config
	obs        ports.Observability
	runner     *pipeline.Runner
	db         *sql.DB
	kafka      *publish.KafkaPublisher
	metricsSrv *http.Server
}

// NewRuntime bootstraps the default adapters (AISHub HTTP client, CSV
// decoder, per-vessel CSV store, Prometheus observability) plus the optional
// Postgres and Kafka mirrors when their config sections are set. RuntimeOption
// values override any dependency.
func NewRuntime(configPath string, opts ...RuntimeOption) (*Runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var overrides runtimeOverrides
	for _, opt := range opts {
		if opt != nil {
			opt(&overrides)
		}
	}

	obs := overrides.observability
	if obs == nil {
		obs = observability.NewPromObs()
	}

	settings := overrides.settings
	if settings == nil {
		settings = config.NewFileProvider(configPath)
	}

	fleet := overrides.fleet
	if fleet == nil {
		fleet = config.NewFleetFile(cfg.Fleet.Path)
	}

	transport := overrides.transport
	if transport == nil {
		transport = aishub.NewClient(time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second)
	}

	decoder := overrides.decoder
	if decoder == nil {
		decoder = aishub.NewDecoder(obs)
	}

	seriesStore := overrides.store
	if seriesStore == nil {
		seriesStore = store.New(cfg.Store.Dir)
	}

	rt := &Runtime{cfg: cfg, obs: obs}

	mirrors := overrides.mirrors
	if cfg.Archive.ConnString != "" {
		db, err := sql.Open("postgres", cfg.Archive.ConnString)
		if err != nil {
			return nil, fmt.Errorf("open archive connection: %w", err)
		}
		rt.db = db
		mirrors = append(mirrors, archive.NewPostgresArchive(db, cfg.Archive.Table))
	}
	if cfg.Kafka.Brokers != "" {
		kp, err := publish.NewKafkaPublisher(cfg.Kafka)
		if err != nil {
			rt.closeQuietly()
			return nil, err
		}
		rt.kafka = kp
		mirrors = append(mirrors, kp)
	}

	rt.runner = &pipeline.Runner{
		Settings:  settings,
		Fleet:     fleet,
		Transport: transport,
		Decoder:   decoder,
		Store:     seriesStore,
		Mirrors:   mirrors,
		Obs:       obs,
		BuildURL:  aishub.BuildRequestURL,
	}
	return rt, nil
}

// Run starts the metrics server and blocks polling until the context is
// cancelled, then shuts down gracefully. Cancellation is a clean exit.
func (r *Runtime) Run(ctx context.Context) error {
	r.startMetrics()

	err := r.runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if sErr := r.Shutdown(shutdownCtx); sErr != nil && err == nil {
		err = sErr
	}
	return err
}

// RunOnce executes a single poll cycle without starting the metrics server.
func (r *Runtime) RunOnce(ctx context.Context) error {
	_, err := r.runner.Cycle(ctx)
	return err
}

// Shutdown stops the metrics server and closes the mirror connections.
func (r *Runtime) Shutdown(ctx context.Context) error {
	var errs []error

	if r.metricsSrv != nil {
		if err := r.metricsSrv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs = append(errs, err)
		}
	}
	if r.kafka != nil {
		r.kafka.Close()
		r.kafka = nil
	}
	if r.db != nil {
		if err := r.db.Close(); err != nil {
			errs = append(errs, err)
		}
		r.db = nil
	}

	return errors.Join(errs...)
}

func (r *Runtime) startMetrics() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.metricsSrv = &http.Server{
		Addr:    r.cfg.Metrics.Addr,
		Handler: mux,
	}

	go func() {
		if err := r.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("metrics server exited: %v", err)
		}
	}()
}

func (r *Runtime) closeQuietly() {
	if r.db != nil {
		_ = r.db.Close()
		r.db = nil
	}
}
