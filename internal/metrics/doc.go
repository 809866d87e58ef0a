// Package metrics exposes catalog load metrics.
//
// Components take a Recorder and default to NoopRecorder, so metrics cost
// nothing unless a command opts in:
//
//	reg := prom.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	cat, err := catalog.LoadWithOptions(ctx, paths, catalog.Options{Recorder: recorder})
//
// The watch command serves the registry through HTTPHandler.
package metrics
