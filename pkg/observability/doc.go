/*
Package observability provides the Prometheus collectors used across strata.

Collectors are grouped in Metrics and registered against a caller supplied
prometheus.Registerer, so tests can use an isolated registry while servers
expose the default one through promhttp. Every method is safe to call on a nil
*Metrics, which lets components treat instrumentation as optional.
*/
package observability
