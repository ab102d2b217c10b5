package metrics

import (
	"time"

	"github.com/nspcc-dev/scull/pkg/scull"
	"github.com/prometheus/client_golang/prometheus"
)

const storeSubsystem = "store"

type storeMetrics struct {
	readDuration  *prometheus.HistogramVec
	writeDuration *prometheus.HistogramVec
	trimDuration  *prometheus.HistogramVec

	tail   *prometheus.GaugeVec
	sets   *prometheus.GaugeVec
	quanta *prometheus.GaugeVec

	interrupted *prometheus.CounterVec
	outOfMemory *prometheus.CounterVec
}

func newStoreMetrics() storeMetrics {
	var (
		readDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: storeSubsystem,
			Name:      "read_time",
			Help:      "Store 'read' operations handling time",
		}, []string{storeIDLabelKey})

		writeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: storeSubsystem,
			Name:      "write_time",
			Help:      "Store 'write' operations handling time",
		}, []string{storeIDLabelKey})

		trimDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: storeSubsystem,
			Name:      "trim_time",
			Help:      "Store 'trim' operations handling time",
		}, []string{storeIDLabelKey})

		tail = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: storeSubsystem,
			Name:      "tail_bytes",
			Help:      "Logical length of the store",
		}, []string{storeIDLabelKey})

		sets = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: storeSubsystem,
			Name:      "sets",
			Help:      "Number of allocated quantum sets",
		}, []string{storeIDLabelKey})

		quanta = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: storeSubsystem,
			Name:      "quanta",
			Help:      "Number of allocated quanta",
		}, []string{storeIDLabelKey})

		interrupted = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: storeSubsystem,
			Name:      "interrupted_total",
			Help:      "Number of operations interrupted while waiting for the store",
		}, []string{storeIDLabelKey})

		outOfMemory = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: storeSubsystem,
			Name:      "out_of_memory_total",
			Help:      "Number of writes failed due to the memory limit",
		}, []string{storeIDLabelKey})
	)

	return storeMetrics{
		readDuration:  readDuration,
		writeDuration: writeDuration,
		trimDuration:  trimDuration,
		tail:          tail,
		sets:          sets,
		quanta:        quanta,
		interrupted:   interrupted,
		outOfMemory:   outOfMemory,
	}
}

func (m storeMetrics) register(reg prometheus.Registerer) {
	reg.MustRegister(
		m.readDuration,
		m.writeDuration,
		m.trimDuration,
		m.tail,
		m.sets,
		m.quanta,
		m.interrupted,
		m.outOfMemory,
	)
}

// ForStore returns a writer to pass to scull.WithMetrics. The store sets its
// identifier on construction.
func (m storeMetrics) ForStore() scull.MetricsWriter {
	return &storeWriter{m: m}
}

type storeWriter struct {
	m  storeMetrics
	id string
}

func (w *storeWriter) labels() prometheus.Labels {
	return prometheus.Labels{storeIDLabelKey: w.id}
}

func (w *storeWriter) SetStoreID(id string) {
	w.id = id
}

func (w *storeWriter) AddReadDuration(d time.Duration) {
	w.m.readDuration.With(w.labels()).Observe(d.Seconds())
}

func (w *storeWriter) AddWriteDuration(d time.Duration) {
	w.m.writeDuration.With(w.labels()).Observe(d.Seconds())
}

func (w *storeWriter) AddTrimDuration(d time.Duration) {
	w.m.trimDuration.With(w.labels()).Observe(d.Seconds())
}

func (w *storeWriter) SetTail(size uint64) {
	w.m.tail.With(w.labels()).Set(float64(size))
}

func (w *storeWriter) SetSets(n uint64) {
	w.m.sets.With(w.labels()).Set(float64(n))
}

func (w *storeWriter) SetQuanta(n uint64) {
	w.m.quanta.With(w.labels()).Set(float64(n))
}

func (w *storeWriter) IncInterrupted() {
	w.m.interrupted.With(w.labels()).Inc()
}

func (w *storeWriter) IncOutOfMemory() {
	w.m.outOfMemory.With(w.labels()).Inc()
}
