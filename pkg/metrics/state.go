package metrics

import "github.com/prometheus/client_golang/prometheus"

const stateSubsystem = "state"

// Application states reported by SetHealth.
const (
	StateStarting int32 = iota + 1
	StateReady
	StateShuttingDown
)

type stateMetrics struct {
	healthCheck prometheus.Gauge
}

func newStateMetrics() stateMetrics {
	return stateMetrics{
		healthCheck: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: stateSubsystem,
			Name:      "health",
			Help:      "Current application state",
		}),
	}
}

func (m stateMetrics) register(reg prometheus.Registerer) {
	reg.MustRegister(m.healthCheck)
}

func (m stateMetrics) SetHealth(s int32) {
	m.healthCheck.Set(float64(s))
}
