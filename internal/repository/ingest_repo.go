package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/config"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
)

// TxRunner runs fn inside a transaction. *postgres.DB satisfies it.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error
}

// IngestRepository loads snapshot rows into the warehouse tables. Each load
// replaces the rows of every date it contains.
type IngestRepository struct {
	db     TxRunner
	tables config.WarehouseConfig
}

func NewIngestRepository(db TxRunner, tables config.WarehouseConfig) (*IngestRepository, error) {
	for _, name := range []string{tables.HealthTable, tables.StockTable, tables.AlertsTable} {
		if !tableNamePattern.MatchString(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTable, name)
		}
	}
	return &IngestRepository{db: db, tables: tables}, nil
}

// SchemaStatements returns the DDL for the three warehouse tables.
func SchemaStatements(tables config.WarehouseConfig) []string {
	return []string{
		fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            "date"            DATE NOT NULL,
            location_name     TEXT NOT NULL,
            item_name         TEXT NOT NULL,
            daily_consumption DOUBLE PRECISION NOT NULL DEFAULT 0,
            days_of_cover     DOUBLE PRECISION,
            risk_level        TEXT NOT NULL,
            PRIMARY KEY ("date", location_name, item_name)
        )`, tables.HealthTable),
		fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            "date"        DATE NOT NULL,
            location_name TEXT NOT NULL,
            item_name     TEXT NOT NULL,
            closing_stock DOUBLE PRECISION NOT NULL DEFAULT 0,
            PRIMARY KEY ("date", location_name, item_name)
        )`, tables.StockTable),
		fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            "date"            DATE NOT NULL,
            location_name     TEXT NOT NULL,
            item_name         TEXT NOT NULL,
            daily_consumption DOUBLE PRECISION NOT NULL DEFAULT 0,
            days_of_cover     DOUBLE PRECISION,
            risk_level        TEXT NOT NULL
        )`, tables.AlertsTable),
	}
}

func (r *IngestRepository) EnsureSchema(ctx context.Context) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range SchemaStatements(r.tables) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to create warehouse schema: %w", err)
			}
		}
		return nil
	})
}

func (r *IngestRepository) ReplaceHealthRecords(ctx context.Context, records []domain.InventoryHealthRecord) (int, error) {
	dates := make([]time.Time, 0, len(records))
	for _, rec := range records {
		dates = append(dates, rec.Date)
	}

	query := fmt.Sprintf(`
        INSERT INTO %s ("date", location_name, item_name, daily_consumption, days_of_cover, risk_level)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT ("date", location_name, item_name)
        DO UPDATE SET
            daily_consumption = EXCLUDED.daily_consumption,
            days_of_cover = EXCLUDED.days_of_cover,
            risk_level = EXCLUDED.risk_level
    `, r.tables.HealthTable)

	return len(records), r.replace(ctx, r.tables.HealthTable, dates, query, len(records), func(i int) []any {
		rec := records[i]
		return []any{rec.Date, rec.LocationName, rec.ItemName, rec.DailyConsumption, rec.DaysOfCover, string(rec.RiskLevel)}
	})
}

func (r *IngestRepository) ReplaceStockSnapshots(ctx context.Context, rows []domain.StockSnapshot) (int, error) {
	dates := make([]time.Time, 0, len(rows))
	for _, row := range rows {
		dates = append(dates, row.Date)
	}

	query := fmt.Sprintf(`
        INSERT INTO %s ("date", location_name, item_name, closing_stock)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT ("date", location_name, item_name)
        DO UPDATE SET closing_stock = EXCLUDED.closing_stock
    `, r.tables.StockTable)

	return len(rows), r.replace(ctx, r.tables.StockTable, dates, query, len(rows), func(i int) []any {
		row := rows[i]
		return []any{row.Date, row.LocationName, row.ItemName, row.ClosingStock}
	})
}

func (r *IngestRepository) ReplaceAlerts(ctx context.Context, alerts []domain.AlertRecord) (int, error) {
	dates := make([]time.Time, 0, len(alerts))
	for _, a := range alerts {
		dates = append(dates, a.Date)
	}

	query := fmt.Sprintf(`
        INSERT INTO %s ("date", location_name, item_name, daily_consumption, days_of_cover, risk_level)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, r.tables.AlertsTable)

	return len(alerts), r.replace(ctx, r.tables.AlertsTable, dates, query, len(alerts), func(i int) []any {
		a := alerts[i]
		return []any{a.Date, a.LocationName, a.ItemName, a.DailyConsumption, a.DaysOfCover, string(a.RiskLevel)}
	})
}

func (r *IngestRepository) replace(ctx context.Context, table string, dates []time.Time, insert string, n int, args func(i int) []any) error {
	if n == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE "date" = $1`, table)
		for _, d := range distinctDates(dates) {
			if _, err := tx.ExecContext(ctx, deleteQuery, d); err != nil {
				return fmt.Errorf("failed to clear %s for %s: %w", table, d.Format("2006-01-02"), err)
			}
		}

		stmt, err := tx.PrepareContext(ctx, insert)
		if err != nil {
			return fmt.Errorf("failed to prepare insert into %s: %w", table, err)
		}
		defer stmt.Close()

		for i := 0; i < n; i++ {
			if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
				return fmt.Errorf("failed to insert row %d into %s: %w", i+1, table, err)
			}
		}
		return nil
	})
}

// distinctDates keeps the first occurrence of each calendar day.
func distinctDates(dates []time.Time) []time.Time {
	seen := make(map[string]struct{}, len(dates))
	out := make([]time.Time, 0)
	for _, d := range dates {
		key := d.Format("2006-01-02")
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out
}
