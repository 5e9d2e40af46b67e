package measure

import "time"

// Measure collects one Metric per stage.
type Measure interface {
	AddMetric(key, label string) Metric
	GetMetric(key string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates the executions of a single stage.
type Metric interface {
	Label() string
	AddDuration(elapsed time.Duration)
	AddTransportDuration(inputStageKey string, elapsed time.Duration)
	AVGDuration() time.Duration
	LastDuration() time.Duration
	Runs() int64
	AVGTransportDuration() map[string]*TransportInfo
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
	AllTransports() map[string]*TransportInfo
}
