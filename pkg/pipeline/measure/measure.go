package measure

import (
	"sync"
)

type DefaultMeasure struct {
	mu    sync.Mutex
	Steps map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Steps: make(map[string]Metric),
	}
}

// AddMetric registers the stage key. An existing metric is kept so that a
// stage prepared twice does not lose its history.
func (m *DefaultMeasure) AddMetric(key, label string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.Steps[key]; ok {
		return mt
	}

	mt := &DefaultMetric{
		mu:            &sync.Mutex{},
		label:         label,
		allTransports: make(map[string]*TransportInfo),
	}
	m.Steps[key] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(key string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Steps[key]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make(map[string]Metric, len(m.Steps))
	for k, v := range m.Steps {
		all[k] = v
	}

	return all
}

var _ Measure = (*DefaultMeasure)(nil)
