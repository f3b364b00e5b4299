/*
Package observability exposes Prometheus metrics for the commandbar engine.

Metrics are registered on a private registry so several engines (or tests) can coexist in one
process. Attach them with:

	metrics := observability.NewMetrics()
	engine := commandbar.New(
		commandbar.WithDerivationHooks(metrics.Hooks()),
		commandbar.WithIntentSink(metrics.Sink(sink)),
	)
	http.Handle("/metrics", metrics.Handler())
*/
package observability
