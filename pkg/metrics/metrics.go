package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "scull"

const storeIDLabelKey = "id"

// Metrics groups all collectors of the application.
type Metrics struct {
	stateMetrics
	storeMetrics
}

// New creates collectors and registers them in reg along with the version
// gauge. Default registerer is used if reg is nil.
func New(reg prometheus.Registerer, version string) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	var (
		state = newStateMetrics()
		store = newStoreMetrics()
	)

	state.register(reg)
	store.register(reg)
	registerVersionMetric(reg, version)

	return &Metrics{
		stateMetrics: state,
		storeMetrics: store,
	}
}
