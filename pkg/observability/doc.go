/*
Package observability exposes validation metrics to Prometheus.

Metrics are registered on the Registerer handed to NewMetrics, so a process
can keep them apart from the default registry (tests use a fresh registry
per case).
*/
package observability
