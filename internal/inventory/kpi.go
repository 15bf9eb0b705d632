package inventory

import "github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"

// Summarize counts records per upstream risk level.
func Summarize(records []domain.InventoryHealthRecord) domain.KPISummary {
	kpi := domain.KPISummary{TotalRecords: len(records)}
	for _, r := range records {
		switch r.RiskLevel {
		case domain.RiskCritical:
			kpi.Critical++
		case domain.RiskWarning:
			kpi.Warning++
		case domain.RiskOK:
			kpi.Healthy++
		}
	}
	return kpi
}

// HealthyRows keeps the rows labelled OK upstream.
func HealthyRows(records []domain.InventoryHealthRecord) []domain.InventoryHealthRecord {
	return selectWhere(records, func(r domain.InventoryHealthRecord) bool {
		return r.RiskLevel == domain.RiskOK
	})
}

// CoverSeries projects records into heatmap/bar points.
func CoverSeries(records []domain.InventoryHealthRecord) []domain.CoverPoint {
	points := make([]domain.CoverPoint, 0, len(records))
	for _, r := range records {
		points = append(points, domain.CoverPoint{
			LocationName: r.LocationName,
			ItemName:     r.ItemName,
			DaysOfCover:  r.DaysOfCover,
		})
	}
	return points
}

// TrendSeries projects stock snapshots into line chart points.
func TrendSeries(rows []domain.StockSnapshot) []domain.TrendPoint {
	points := make([]domain.TrendPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, domain.TrendPoint{
			Date:         r.Date,
			ItemName:     r.ItemName,
			ClosingStock: r.ClosingStock,
		})
	}
	return points
}
