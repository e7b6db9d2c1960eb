// Package metrics holds the Prometheus collectors shared by plstream and its
// engine. They register with the default registry on import; serve them with
// promhttp.Handler.
package metrics
