// Package metric publishes counters of running components with expvar.
// Counters are aggregated by component type, so all engines share one set
// of values.
package metric

import (
	"expvar"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"
	"time"
)

const componentsLabel = "quadio.components"

const (
	// BlockCounter measures number of processed blocks.
	BlockCounter = "Blocks"
	// SampleCounter measures number of samples.
	SampleCounter = "Samples"
	// LatencyCounter measures latency between processing calls.
	LatencyCounter = "Latency"
	// DurationCounter counts what's the duration of signal.
	DurationCounter = "Duration"
	// ComponentCounter counts number of metered components.
	ComponentCounter = "Components"
	// CycleCounter counts detected graph cycles.
	CycleCounter = "Cycles"
	// FaultCounter counts nodes that failed to process a block.
	FaultCounter = "Faults"
)

var (
	components = metrics{
		m: make(map[string]metric),
	}

	counters = []string{
		BlockCounter,
		SampleCounter,
		LatencyCounter,
		DurationCounter,
		ComponentCounter,
		CycleCounter,
		FaultCounter,
	}
)

// Get metrics values for provided component type.
func Get(component interface{}) map[string]string {
	return getCounters(getType(component))
}

// GetAll returns counters for all measured components.
func GetAll() map[string]map[string]string {
	m := make(map[string]map[string]string)
	components.Lock()
	defer components.Unlock()
	for component := range components.m {
		m[component] = getCounters(component)
	}
	return m
}

func getCounters(componentType string) map[string]string {
	m := make(map[string]string)
	for _, counter := range counters {
		v := expvar.Get(key(componentType, counter))
		if v != nil {
			m[counter] = v.String()
		}
	}
	return m
}

// ResetFunc returns new Measure closure. This closure is needed to postpone metrics
// capture until component is actually running.
type ResetFunc func() MeasureFunc

// MeasureFunc captures metrics when block is processed.
type MeasureFunc func(blockSize int64)

// Meter creates new meter closure to capture component counters.
func Meter(component interface{}, sampleRate int) ResetFunc {
	t := getType(component)
	metric := components.get(t)
	metric.components.Add(1)
	return func() MeasureFunc {
		calledAt := time.Now()
		var (
			blockSize     int64
			blockDuration time.Duration
		)
		return func(s int64) {
			metric.latency.set(time.Since(calledAt))
			metric.blocks.Add(1)
			metric.samples.Add(s)
			// recalculate block duration only when block size has changed
			if blockSize != s {
				blockSize = s
				blockDuration = DurationOf(sampleRate, s)
			}
			metric.duration.add(blockDuration)
			calledAt = time.Now()
		}
	}
}

// Counter returns a closure that increments one of the event counters
// (CycleCounter or FaultCounter) of provided component type.
func Counter(component interface{}, counter string) func() {
	metric := components.get(getType(component))
	var v *expvar.Int
	switch counter {
	case CycleCounter:
		v = metric.cycles
	case FaultCounter:
		v = metric.faults
	default:
		panic(fmt.Sprintf("metric: %s is not an event counter", counter))
	}
	return func() {
		v.Add(1)
	}
}

// DurationOf returns time duration of samples for this sample rate.
func DurationOf(sampleRate int, samples int64) time.Duration {
	if sampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(samples) / float64(sampleRate) * float64(time.Second))
}

type metrics struct {
	sync.Mutex
	m map[string]metric
}

func (m *metrics) get(componentType string) metric {
	m.Lock()
	defer m.Unlock()
	if metric, ok := m.m[componentType]; ok {
		// return existing metric if available
		return metric
	}
	// create new metric
	metric := newMetric(componentType)
	m.m[componentType] = metric
	return metric
}

type metric struct {
	key        string
	components *expvar.Int
	blocks     *expvar.Int
	samples    *expvar.Int
	cycles     *expvar.Int
	faults     *expvar.Int
	latency    *duration
	duration   *duration
}

func newMetric(componentType string) metric {
	m := metric{
		key:        componentType,
		components: expvar.NewInt(key(componentType, ComponentCounter)),
		blocks:     expvar.NewInt(key(componentType, BlockCounter)),
		samples:    expvar.NewInt(key(componentType, SampleCounter)),
		cycles:     expvar.NewInt(key(componentType, CycleCounter)),
		faults:     expvar.NewInt(key(componentType, FaultCounter)),
		latency:    &duration{},
		duration:   &duration{},
	}
	expvar.Publish(key(componentType, LatencyCounter), m.latency)
	expvar.Publish(key(componentType, DurationCounter), m.duration)
	return m
}

func key(componentType, counter string) string {
	return fmt.Sprintf("%s.%s.%s", componentsLabel, componentType, counter)
}

func getType(component interface{}) string {
	rv := reflect.ValueOf(component)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	return rv.Type().String()
}

// duration allows to format time.Duration metric values.
type duration struct {
	d int64
}

func (v *duration) String() string {
	return fmt.Sprintf("%q", time.Duration(atomic.LoadInt64(&v.d)))
}

func (v *duration) add(delta time.Duration) {
	atomic.AddInt64(&v.d, int64(delta))
}

func (v *duration) set(value time.Duration) {
	atomic.StoreInt64(&v.d, int64(value))
}
