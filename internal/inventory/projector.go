package inventory

import (
	"math"
	"time"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
)

const (
	day = 24 * time.Hour

	// maxProjectionDays keeps the whole-day part within int range on every
	// platform. Covers beyond it have no meaningful stockout date.
	maxProjectionDays = 1 << 30
)

// ProjectStockout returns asOf advanced by daysOfCover days, keeping the
// fractional part (2.5 days is 60 hours). Rounding is left to presentation.
// Whole days go through AddDate so long covers cannot overflow a Duration.
func ProjectStockout(asOf time.Time, daysOfCover *float64) *time.Time {
	days, ok := definedCover(daysOfCover)
	if !ok || math.Abs(days) > maxProjectionDays {
		return nil
	}

	whole, frac := math.Modf(days)
	out := asOf.AddDate(0, 0, int(whole)).Add(time.Duration(frac * float64(day)))
	return &out
}

// AsOfDate returns the latest record date. It is computed once per render over
// the unfiltered dataset and threaded into ProjectStockout.
func AsOfDate(records []domain.InventoryHealthRecord) (time.Time, bool) {
	var (
		latest time.Time
		found  bool
	)
	for _, r := range records {
		if !found || r.Date.After(latest) {
			latest = r.Date
			found = true
		}
	}
	return latest, found
}

// Forecast annotates each record with its projected stockout and derived priority.
func Forecast(asOf time.Time, records []domain.InventoryHealthRecord) []domain.ForecastRow {
	rows := make([]domain.ForecastRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, domain.ForecastRow{
			Date:             r.Date,
			LocationName:     r.LocationName,
			ItemName:         r.ItemName,
			DailyConsumption: r.DailyConsumption,
			DaysOfCover:      r.DaysOfCover,
			EstStockout:      ProjectStockout(asOf, r.DaysOfCover),
			Priority:         Classify(r.DaysOfCover),
			RiskLevel:        r.RiskLevel,
		})
	}
	return rows
}
