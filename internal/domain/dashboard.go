package domain

import "time"

// Selection is the operator's location/item filter. "All" or empty means unfiltered.
type Selection struct {
	Location string `json:"location" form:"location"`
	Item     string `json:"item" form:"item"`
}

// KPISummary backs the four metric cards. Counts are taken over the full dataset.
type KPISummary struct {
	Critical     int `json:"critical"`
	Warning      int `json:"warning"`
	Healthy      int `json:"healthy"`
	TotalRecords int `json:"total_records"`
}

// RankedItem is a row in the top-risk or top-healthy list.
type RankedItem struct {
	ItemName     string    `json:"item_name"`
	LocationName string    `json:"location_name"`
	DaysOfCover  *float64  `json:"days_of_cover"`
	RiskLevel    RiskLevel `json:"risk_level"`
}

// ForecastRow is a filtered health row annotated with the projected stockout
// and the locally derived priority.
type ForecastRow struct {
	Date             time.Time  `json:"date"`
	LocationName     string     `json:"location_name"`
	ItemName         string     `json:"item_name"`
	DailyConsumption float64    `json:"daily_consumption"`
	DaysOfCover      *float64   `json:"days_of_cover"`
	EstStockout      *time.Time `json:"est_stockout"`
	Priority         Priority   `json:"priority"`
	RiskLevel        RiskLevel  `json:"risk_level"`
}

// Section wraps a list with the notice shown when it is empty.
type Section[T any] struct {
	Rows   []T    `json:"rows"`
	Notice string `json:"notice,omitempty"`
}

// FilterOptions lists the selectable locations and items, "All" first.
type FilterOptions struct {
	Locations []string `json:"locations"`
	Items     []string `json:"items"`
}

// InventoryDashboard is the full report for one render.
type InventoryDashboard struct {
	AsOf       *time.Time                     `json:"as_of"`
	Selection  Selection                      `json:"selection"`
	KPIs       KPISummary                     `json:"kpis"`
	TopRisk    Section[RankedItem]            `json:"top_risk"`
	TopHealthy Section[RankedItem]            `json:"top_healthy"`
	Forecast   Section[ForecastRow]           `json:"forecast"`
	Alerts     Section[AlertRecord]           `json:"alerts"`
	Healthy    Section[InventoryHealthRecord] `json:"healthy"`
}

// ChartType selects the visualization series.
type ChartType string

const (
	ChartHeatmap ChartType = "heatmap"
	ChartBar     ChartType = "bar"
	ChartLine    ChartType = "line"
)

// CoverPoint is one cell of the heatmap or one bar.
type CoverPoint struct {
	LocationName string   `json:"location_name"`
	ItemName     string   `json:"item_name"`
	DaysOfCover  *float64 `json:"days_of_cover"`
}

// TrendPoint is one point of the closing-stock line chart.
type TrendPoint struct {
	Date         time.Time `json:"date"`
	ItemName     string    `json:"item_name"`
	ClosingStock float64   `json:"closing_stock"`
}

// ChartData carries the series for the selected chart type. Only one of
// Cover or Trend is populated.
type ChartData struct {
	Type   ChartType    `json:"type"`
	Cover  []CoverPoint `json:"cover,omitempty"`
	Trend  []TrendPoint `json:"trend,omitempty"`
	Notice string       `json:"notice,omitempty"`
}
