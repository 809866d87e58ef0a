package metrics

import (
	"sync"
	"time"
)

// countingRecorder is shared with tests in this package that need to assert
// calls without a registry.
type countingRecorder struct {
	mu      sync.Mutex
	parses  map[string]int
	results map[ResultLabel]int
	loads   map[ResultLabel]int
	files   int
	trees   int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{parses: map[string]int{}, results: map[ResultLabel]int{}, loads: map[ResultLabel]int{}}
}

func (c *countingRecorder) ObserveParseDuration(kind string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.parses[kind]++
}

func (c *countingRecorder) IncDocumentResult(result ResultLabel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[result]++
}

func (c *countingRecorder) ObserveLoadDuration(time.Duration) {}

func (c *countingRecorder) IncLoadOutcome(outcome ResultLabel) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loads[outcome]++
}

func (c *countingRecorder) SetCatalogSize(files, trees int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files, c.trees = files, trees
}

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = (*countingRecorder)(nil)
)
