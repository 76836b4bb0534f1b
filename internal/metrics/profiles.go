// Package metrics provides Prometheus metrics for mapping profile management.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Write operations recorded by RecordProfileWrite.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
	OpSync   = "sync"
)

// Separator fields recorded by RecordSeparatorCorrection.
const (
	FieldThousands = "thousands"
	FieldDecimal   = "decimal"
)

var (
	// ProfilesTotal is the number of stored mapping profiles.
	ProfilesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "sheetmap_profiles_total",
		Help: "Current number of stored mapping profiles.",
	})

	// ProfileWritesTotal counts successful profile writes by operation.
	ProfileWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sheetmap_profile_writes_total",
		Help: "Total number of mapping profile writes, by operation.",
	}, []string{"op"})

	// ProfileValidationErrorsTotal counts profiles rejected by validation.
	ProfileValidationErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sheetmap_profile_validation_errors_total",
		Help: "Total number of mapping profiles rejected by validation.",
	})

	// SeparatorCorrectionsTotal counts automatic separator corrections, labeled
	// by the field that was corrected.
	SeparatorCorrectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sheetmap_separator_corrections_total",
		Help: "Total number of automatic separator corrections, by corrected field.",
	}, []string{"field"})
)

// SetProfilesTotal records the current profile count.
func SetProfilesTotal(n int) {
	ProfilesTotal.Set(float64(n))
}

// RecordProfileWrite counts n writes of kind op.
func RecordProfileWrite(op string, n int) {
	if n <= 0 {
		return
	}
	ProfileWritesTotal.WithLabelValues(op).Add(float64(n))
}

// RecordValidationError counts one rejected profile.
func RecordValidationError() {
	ProfileValidationErrorsTotal.Inc()
}

// RecordSeparatorCorrection counts one correction of field.
func RecordSeparatorCorrection(field string) {
	SeparatorCorrectionsTotal.WithLabelValues(field).Inc()
}
