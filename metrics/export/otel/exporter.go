package otel

import (
	"context"
	"errors"
	"fmt"

	goGate "github.com/MrEthical07/goGate"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

type metricsSource interface {
	MetricsSnapshot() goGate.MetricsSnapshot
}

type counterDef struct {
	id   goGate.MetricID
	name string
	help string
}

var counterDefs = []counterDef{
	{id: goGate.MetricAllow, name: "gogate_allow_total", help: "Requests allowed through the gate."},
	{id: goGate.MetricReject, name: "gogate_reject_total", help: "Requests rejected with 403."},
	{id: goGate.MetricRedirect, name: "gogate_redirect_total", help: "Requests redirected without a flash notice."},
	{id: goGate.MetricRedirectFlash, name: "gogate_redirect_flash_total", help: "Requests redirected with a flash notice."},
	{id: goGate.MetricTokenAccepted, name: "gogate_token_accepted_total", help: "Token credentials accepted."},
	{id: goGate.MetricTokenRejected, name: "gogate_token_rejected_total", help: "Token credentials the store reported invalid."},
	{id: goGate.MetricStoreFailure, name: "gogate_store_failure_total", help: "Token store and session collaborator failures."},
	{id: goGate.MetricConfigError, name: "gogate_config_error_total", help: "Evaluations aborted by a configuration error."},
}

type observedCounter struct {
	id         goGate.MetricID
	instrument metric.Int64ObservableCounter
}

// OTelExporter mirrors the engine's counter snapshot into OTel instruments on
// every collection cycle.
type OTelExporter struct {
	source       metricsSource
	registration metric.Registration
	counters     []observedCounter
}

// NewOTelExporter registers the gate counters on meter, sourced from engine.
func NewOTelExporter(meter metric.Meter, engine *goGate.Engine) (*OTelExporter, error) {
	return NewOTelExporterFromSource(meter, engine)
}

// NewOTelExporterFromSource is NewOTelExporter for any snapshot source.
func NewOTelExporterFromSource(meter metric.Meter, source metricsSource) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	exporter := &OTelExporter{
		source:   source,
		counters: make([]observedCounter, 0, len(counterDefs)),
	}

	observables := make([]metric.Observable, 0, len(counterDefs))

	for _, def := range counterDefs {
		ins, err := meter.Int64ObservableCounter(def.name, metric.WithDescription(def.help))
		if err != nil {
			return nil, fmt.Errorf("create observable counter %s: %w", def.name, err)
		}
		exporter.counters = append(exporter.counters, observedCounter{id: def.id, instrument: ins})
		observables = append(observables, ins)
	}

	registration, err := meter.RegisterCallback(func(_ context.Context, observer metric.Observer) error {
		snapshot := exporter.source.MetricsSnapshot()
		for _, c := range exporter.counters {
			observer.ObserveInt64(c.instrument, int64(snapshot.Counters[c.id]))
		}
		return nil
	}, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}

	exporter.registration = registration
	return exporter, nil
}

// Close unregisters the collection callback.
func (e *OTelExporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
