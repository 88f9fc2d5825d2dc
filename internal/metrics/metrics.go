// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package metrics exposes batch outcomes as Prometheus gauges.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pii-quality/internal/engine"
	"pii-quality/internal/validators/aadhaar"
	"pii-quality/internal/validators/phone"
)

// Metrics holds the gauges for one batch on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	// Rows per pipeline stage: total, processed, distinct, empty_dropped, duplicates_dropped
	BatchRows *prometheus.GaugeVec

	// Field outcomes by field and result (valid, invalid, missing)
	FieldOutcomes *prometheus.GaugeVec

	// Rows per failure reason
	ReasonRows *prometheus.GaugeVec

	// Rows valid overall
	OverallValid prometheus.Gauge

	// Aadhaar values raising at least one advisory quality flag
	QualityFlagged prometheus.Gauge
}

// New creates a Metrics instance with all gauges registered on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,

		BatchRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "piiq_batch_rows",
			Help: "Rows seen by each stage of the last batch",
		}, []string{"stage"}),

		FieldOutcomes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "piiq_field_outcomes",
			Help: "Per-field validation results of the last batch",
		}, []string{"field", "result"}),

		ReasonRows: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "piiq_reason_rows",
			Help: "Rows per failure reason in the last batch",
		}, []string{"field", "reason"}),

		OverallValid: factory.NewGauge(prometheus.GaugeOpts{
			Name: "piiq_overall_valid_rows",
			Help: "Rows valid overall in the last batch",
		}),

		QualityFlagged: factory.NewGauge(prometheus.GaugeOpts{
			Name: "piiq_quality_flagged_rows",
			Help: "Rows whose Aadhaar digits raised an advisory quality flag in the last batch",
		}),
	}
}

// Registry returns the private registry the gauges live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records the counters and per-reason totals of a batch result.
func (m *Metrics) Observe(result *engine.Result) {
	if m == nil || result == nil {
		return
	}
	c := result.Counters

	m.BatchRows.WithLabelValues("total").Set(float64(c.TotalRows))
	m.BatchRows.WithLabelValues("processed").Set(float64(c.ProcessedRows))
	m.BatchRows.WithLabelValues("distinct").Set(float64(c.DistinctAfterDedup))
	m.BatchRows.WithLabelValues("empty_dropped").Set(float64(c.EmptyRowsDropped))
	m.BatchRows.WithLabelValues("duplicates_dropped").Set(float64(c.DuplicatesDropped))

	aadhaarReasons := make(map[aadhaar.Reason]int, len(aadhaar.Precedence))
	mobileReasons := make(map[phone.Reason]int, len(phone.Precedence))
	for _, r := range aadhaar.Precedence {
		aadhaarReasons[r] = 0
	}
	for _, r := range phone.Precedence {
		mobileReasons[r] = 0
	}
	flagged := 0
	for i := range result.Records {
		rec := &result.Records[i]
		if rec.Aadhaar.Quality.Any() {
			flagged++
		}
		if rec.Aadhaar.Reason != aadhaar.ReasonNone {
			aadhaarReasons[rec.Aadhaar.Reason]++
		}
		if rec.Mobile.Reason != phone.ReasonNone {
			mobileReasons[rec.Mobile.Reason]++
		}
	}
	aadhaarMissing := aadhaarReasons[aadhaar.ReasonMissing]
	mobileMissing := mobileReasons[phone.ReasonMissing]

	m.FieldOutcomes.WithLabelValues("aadhaar", "valid").Set(float64(c.AadhaarValid))
	m.FieldOutcomes.WithLabelValues("aadhaar", "invalid").Set(float64(c.AadhaarInvalid))
	m.FieldOutcomes.WithLabelValues("aadhaar", "missing").Set(float64(aadhaarMissing))
	m.FieldOutcomes.WithLabelValues("mobile", "valid").Set(float64(c.MobileValid))
	m.FieldOutcomes.WithLabelValues("mobile", "invalid").Set(float64(c.MobileInvalid))
	m.FieldOutcomes.WithLabelValues("mobile", "missing").Set(float64(mobileMissing))

	for r, n := range aadhaarReasons {
		m.ReasonRows.WithLabelValues("aadhaar", string(r)).Set(float64(n))
	}
	for r, n := range mobileReasons {
		m.ReasonRows.WithLabelValues("mobile", string(r)).Set(float64(n))
	}

	m.OverallValid.Set(float64(c.OverallValid))
	m.QualityFlagged.Set(float64(flagged))
}

// WriteToTextfile writes the gauges in the node exporter textfile format.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
