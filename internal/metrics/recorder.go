package metrics

import "time"

// ResultLabel enumerates per-document parse outcomes.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultSkipped ResultLabel = "skipped"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for catalog loads.
type Recorder interface {
	// ObserveParseDuration records the parse of one document. kind is the
	// document shape (template, tree, collection) or empty on failure.
	ObserveParseDuration(kind string, d time.Duration)
	IncDocumentResult(result ResultLabel)
	ObserveLoadDuration(d time.Duration)
	IncLoadOutcome(outcome ResultLabel)
	SetCatalogSize(files, trees int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveParseDuration(string, time.Duration) {}
func (NoopRecorder) IncDocumentResult(ResultLabel)              {}
func (NoopRecorder) ObserveLoadDuration(time.Duration)          {}
func (NoopRecorder) IncLoadOutcome(ResultLabel)                 {}
func (NoopRecorder) SetCatalogSize(int, int)                    {}
