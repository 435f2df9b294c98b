/*
Package xmetrics provides configurability for Prometheus-based metrics.  Metrics are described up front
with Metric values and preregistered in a Registry, which also hands them out as go-kit metrics where
the go-kit interfaces are more convenient.
*/
package xmetrics
