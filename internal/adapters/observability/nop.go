package observability

import "github.com/G0rocks/aishub-data-collector/internal/ports"

// NopObs discards all logs and metrics. Useful for tests and embedding.
type NopObs struct{}

func (NopObs) LogInfo(string, ...ports.Field)           {}
func (NopObs) LogError(string, error, ...ports.Field)   {}
func (NopObs) LogCritical(string, error, ...ports.Field) {}
func (NopObs) IncCounter(string, float64)               {}
func (NopObs) ObserveLatency(string, float64)           {}
func (NopObs) SetGauge(string, float64)                 {}

var _ ports.Observability = NopObs{}
