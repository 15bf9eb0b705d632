package repository

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/config"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuerier struct {
	queries []string
	health  []domain.InventoryHealthRecord
	err     error
}

func (f *fakeQuerier) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return f.err
	}
	switch d := dest.(type) {
	case *[]domain.InventoryHealthRecord:
		if f.health != nil {
			*d = f.health
			break
		}
		*d = []domain.InventoryHealthRecord{{Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), ItemName: "Flour", RiskLevel: domain.RiskOK}}
	case *[]domain.StockSnapshot:
		*d = []domain.StockSnapshot{{ItemName: "Flour", ClosingStock: 12}}
	case *[]domain.AlertRecord:
		*d = []domain.AlertRecord{{ItemName: "Flour", RiskLevel: domain.RiskCritical}}
	}
	return nil
}

func defaultTables() config.WarehouseConfig {
	return config.WarehouseConfig{
		HealthTable: "aurora_inventory.main.stock_health",
		StockTable:  "daily_stock",
		AlertsTable: "stock_alerts",
	}
}

func TestWarehouseRepositoryReadsConfiguredTables(t *testing.T) {
	q := &fakeQuerier{}
	repo, err := NewWarehouseRepository(q, defaultTables())
	require.NoError(t, err)

	health, err := repo.ListHealthRecords(context.Background())
	require.NoError(t, err)
	assert.Len(t, health, 1)

	stock, err := repo.ListStockSnapshots(context.Background())
	require.NoError(t, err)
	assert.Len(t, stock, 1)

	alerts, err := repo.ListAlerts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.RiskCritical, alerts[0].RiskLevel)

	require.Len(t, q.queries, 3)
	assert.Contains(t, q.queries[0], "FROM aurora_inventory.main.stock_health")
	assert.Contains(t, q.queries[1], "FROM daily_stock")
	assert.Contains(t, q.queries[2], "FROM stock_alerts")
}

func TestWarehouseRepositoryDropsNonFiniteCover(t *testing.T) {
	nan, inf, ok := math.NaN(), math.Inf(1), 4.5
	q := &fakeQuerier{health: []domain.InventoryHealthRecord{
		{ItemName: "Flour", DaysOfCover: &nan},
		{ItemName: "Sugar", DaysOfCover: &inf},
		{ItemName: "Salt", DaysOfCover: &ok},
	}}
	repo, err := NewWarehouseRepository(q, defaultTables())
	require.NoError(t, err)

	health, err := repo.ListHealthRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, health, 3)
	assert.Nil(t, health[0].DaysOfCover)
	assert.Nil(t, health[1].DaysOfCover)
	require.NotNil(t, health[2].DaysOfCover)
	assert.Equal(t, 4.5, *health[2].DaysOfCover)
}

func TestWarehouseRepositoryRejectsUnsafeTableNames(t *testing.T) {
	for _, name := range []string{"", "stock_health; DROP TABLE x", "a.b.c.d", "1table", "stock-health"} {
		tables := defaultTables()
		tables.StockTable = name
		_, err := NewWarehouseRepository(&fakeQuerier{}, tables)
		assert.ErrorIs(t, err, ErrInvalidTable, name)
	}
}

func TestWarehouseRepositoryWrapsErrors(t *testing.T) {
	boom := errors.New("connection reset")
	repo, err := NewWarehouseRepository(&fakeQuerier{err: boom}, defaultTables())
	require.NoError(t, err)

	_, err = repo.ListHealthRecords(context.Background())
	assert.ErrorIs(t, err, boom)
}

type recordingTx struct {
	calls int
}

func (r *recordingTx) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	r.calls++
	return nil
}

func TestSchemaStatementsUseConfiguredTables(t *testing.T) {
	stmts := SchemaStatements(config.WarehouseConfig{
		HealthTable: "main.stock_health",
		StockTable:  "main.daily_stock",
		AlertsTable: "main.stock_alerts",
	})

	require.Len(t, stmts, 3)
	assert.Contains(t, stmts[0], "CREATE TABLE IF NOT EXISTS main.stock_health")
	assert.Contains(t, stmts[1], "closing_stock")
	assert.Contains(t, stmts[2], "main.stock_alerts")
}

func TestIngestRepositorySkipsEmptyLoads(t *testing.T) {
	tx := &recordingTx{}
	repo, err := NewIngestRepository(tx, config.WarehouseConfig{
		HealthTable: "stock_health",
		StockTable:  "daily_stock",
		AlertsTable: "stock_alerts",
	})
	require.NoError(t, err)

	n, err := repo.ReplaceHealthRecords(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, tx.calls)

	n, err = repo.ReplaceStockSnapshots(context.Background(), []domain.StockSnapshot{{ItemName: "Rice"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, tx.calls)
}

func TestNewIngestRepositoryRejectsUnsafeTable(t *testing.T) {
	_, err := NewIngestRepository(&recordingTx{}, config.WarehouseConfig{
		HealthTable: "stock_health; DROP TABLE x",
		StockTable:  "daily_stock",
		AlertsTable: "stock_alerts",
	})
	assert.ErrorIs(t, err, ErrInvalidTable)
}

func TestDistinctDates(t *testing.T) {
	d1 := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	got := distinctDates([]time.Time{d1, d2, d1, d2.Add(time.Hour)})
	assert.Equal(t, []time.Time{d1, d2}, got)
}
