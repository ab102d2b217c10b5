package scull

import "time"

// MetricsWriter is an interface that must store store statistics.
type MetricsWriter interface {
	// SetStoreID must set store identifier for all following calls.
	SetStoreID(id string)

	AddReadDuration(d time.Duration)
	AddWriteDuration(d time.Duration)
	AddTrimDuration(d time.Duration)

	// SetTail must set the logical length of the store in bytes.
	SetTail(size uint64)
	// SetSets must set number of allocated quantum sets.
	SetSets(n uint64)
	// SetQuanta must set number of allocated quanta.
	SetQuanta(n uint64)

	IncInterrupted()
	IncOutOfMemory()
}

type noopMetrics struct{}

func (noopMetrics) SetStoreID(string)              {}
func (noopMetrics) AddReadDuration(time.Duration)  {}
func (noopMetrics) AddWriteDuration(time.Duration) {}
func (noopMetrics) AddTrimDuration(time.Duration)  {}
func (noopMetrics) SetTail(uint64)                 {}
func (noopMetrics) SetSets(uint64)                 {}
func (noopMetrics) SetQuanta(uint64)               {}
func (noopMetrics) IncInterrupted()                {}
func (noopMetrics) IncOutOfMemory()                {}
