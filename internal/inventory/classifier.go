// Package inventory holds the stock-health rules: priority classification,
// stockout projection, ranking and selection filtering.
package inventory

import (
	"math"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
)

const (
	criticalBelowDays = 2.0
	warningUpToDays   = 5.0
)

// Classify derives a priority tier from days of cover.
// Critical below 2 days, Warning from 2 through 5 days, Healthy above 5.
func Classify(daysOfCover *float64) domain.Priority {
	days, ok := definedCover(daysOfCover)
	if !ok {
		return domain.PriorityUnknown
	}

	switch {
	case days < criticalBelowDays:
		return domain.PriorityCritical
	case days <= warningUpToDays:
		return domain.PriorityWarning
	default:
		return domain.PriorityHealthy
	}
}

// definedCover treats NaN and infinite cover like a missing value.
func definedCover(daysOfCover *float64) (float64, bool) {
	if daysOfCover == nil || math.IsNaN(*daysOfCover) || math.IsInf(*daysOfCover, 0) {
		return 0, false
	}
	return *daysOfCover, true
}

// NormalizeCover returns nil for undefined cover and daysOfCover otherwise.
func NormalizeCover(daysOfCover *float64) *float64 {
	if _, ok := definedCover(daysOfCover); !ok {
		return nil
	}
	return daysOfCover
}
