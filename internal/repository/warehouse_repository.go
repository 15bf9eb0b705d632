// backend-go/internal/repository/warehouse_repository.go
package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/config"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/inventory"
)

// ErrInvalidTable is returned when a configured table name is not a plain
// (optionally schema-qualified) identifier.
var ErrInvalidTable = errors.New("invalid warehouse table name")

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*){0,2}$`)

// Querier is the subset of *sqlx.DB the repository needs.
type Querier interface {
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

// WarehouseRepository fetches the read-only datasets behind one dashboard render.
type WarehouseRepository interface {
	ListHealthRecords(ctx context.Context) ([]domain.InventoryHealthRecord, error)
	ListStockSnapshots(ctx context.Context) ([]domain.StockSnapshot, error)
	ListAlerts(ctx context.Context) ([]domain.AlertRecord, error)
}

type warehouseRepository struct {
	db     Querier
	tables config.WarehouseConfig
}

func NewWarehouseRepository(db Querier, tables config.WarehouseConfig) (WarehouseRepository, error) {
	for _, name := range []string{tables.HealthTable, tables.StockTable, tables.AlertsTable} {
		if !tableNamePattern.MatchString(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTable, name)
		}
	}
	return &warehouseRepository{db: db, tables: tables}, nil
}

func (r *warehouseRepository) ListHealthRecords(ctx context.Context) ([]domain.InventoryHealthRecord, error) {
	query := fmt.Sprintf(`
        SELECT
            "date", location_name, item_name,
            daily_consumption, days_of_cover, risk_level
        FROM %s
        ORDER BY "date", location_name, item_name
    `, r.tables.HealthTable)

	var records []domain.InventoryHealthRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("error getting stock health records: %w", err)
	}
	for i := range records {
		records[i].DaysOfCover = inventory.NormalizeCover(records[i].DaysOfCover)
	}

	return records, nil
}

func (r *warehouseRepository) ListStockSnapshots(ctx context.Context) ([]domain.StockSnapshot, error) {
	query := fmt.Sprintf(`
        SELECT "date", location_name, item_name, closing_stock
        FROM %s
        ORDER BY "date", location_name, item_name
    `, r.tables.StockTable)

	var rows []domain.StockSnapshot
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error getting daily stock: %w", err)
	}

	return rows, nil
}

func (r *warehouseRepository) ListAlerts(ctx context.Context) ([]domain.AlertRecord, error) {
	query := fmt.Sprintf(`
        SELECT
            "date", location_name, item_name,
            daily_consumption, days_of_cover, risk_level
        FROM %s
        ORDER BY "date", location_name, item_name
    `, r.tables.AlertsTable)

	var alerts []domain.AlertRecord
	if err := r.db.SelectContext(ctx, &alerts, query); err != nil {
		return nil, fmt.Errorf("error getting stock alerts: %w", err)
	}
	for i := range alerts {
		alerts[i].DaysOfCover = inventory.NormalizeCover(alerts[i].DaysOfCover)
	}

	return alerts, nil
}
