// Package otel provides OpenTelemetry metric exporter bindings for goGate
// counters.
//
// [NewOTelExporter] registers an Int64ObservableCounter instrument per gate
// metric. A single callback reads [goGate.Engine.MetricsSnapshot] on each
// collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate engine state.
package otel
