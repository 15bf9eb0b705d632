// backend-go/internal/domain/models.go
package domain

import "time"

// RiskLevel is the risk label assigned upstream by the warehouse job.
type RiskLevel string

const (
	RiskCritical RiskLevel = "CRITICAL"
	RiskWarning  RiskLevel = "WARNING"
	RiskOK       RiskLevel = "OK"
)

// InventoryHealthRecord is one stock_health row per (date, location, item).
type InventoryHealthRecord struct {
	Date             time.Time `json:"date" db:"date"`
	LocationName     string    `json:"location_name" db:"location_name"`
	ItemName         string    `json:"item_name" db:"item_name"`
	DailyConsumption float64   `json:"daily_consumption" db:"daily_consumption"`
	DaysOfCover      *float64  `json:"days_of_cover" db:"days_of_cover"`
	RiskLevel        RiskLevel `json:"risk_level" db:"risk_level"`
}

// StockSnapshot is one daily_stock row. Only used for the trend chart.
type StockSnapshot struct {
	Date         time.Time `json:"date" db:"date"`
	LocationName string    `json:"location_name" db:"location_name"`
	ItemName     string    `json:"item_name" db:"item_name"`
	ClosingStock float64   `json:"closing_stock" db:"closing_stock"`
}

// AlertRecord is a pre-materialized critical/warning row from stock_alerts.
type AlertRecord struct {
	Date             time.Time `json:"date" db:"date"`
	LocationName     string    `json:"location_name" db:"location_name"`
	ItemName         string    `json:"item_name" db:"item_name"`
	DailyConsumption float64   `json:"daily_consumption" db:"daily_consumption"`
	DaysOfCover      *float64  `json:"days_of_cover" db:"days_of_cover"`
	RiskLevel        RiskLevel `json:"risk_level" db:"risk_level"`
}
