// Package ingest reads warehouse snapshot exports (CSV) into domain rows.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
)

type Dataset string

const (
	DatasetHealth Dataset = "health"
	DatasetStock  Dataset = "stock"
	DatasetAlerts Dataset = "alerts"
)

var ErrUnknownDataset = errors.New("cannot infer dataset from file name")

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"01/02/2006",
}

// DetectDataset infers the dataset from a file name such as
// STOCK_HEALTH_2024-01-10.csv or daily_stock.csv.
func DetectDataset(path string) (Dataset, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "alert"):
		return DatasetAlerts, nil
	case strings.Contains(name, "health"):
		return DatasetHealth, nil
	case strings.Contains(name, "stock"):
		return DatasetStock, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownDataset, path)
}

type columns map[string]int

func readHeader(r *csv.Reader, required ...string) (columns, error) {
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty csv: missing header")
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	cols := make(columns, len(header))
	for i, h := range header {
		key := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		cols[key] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %s", name)
		}
	}
	return cols, nil
}

func (c columns) get(row []string, name string) string {
	idx, ok := c[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader
}

// ReadHealth parses DATE, LOCATION_NAME, ITEM_NAME, DAILY_CONSUMPTION,
// DAYS_OF_COVER and RISK_LEVEL columns. A blank or NaN cover is kept as nil.
func ReadHealth(r io.Reader) ([]domain.InventoryHealthRecord, error) {
	reader := newReader(r)
	cols, err := readHeader(reader, "DATE", "LOCATION_NAME", "ITEM_NAME", "RISK_LEVEL")
	if err != nil {
		return nil, err
	}

	records := make([]domain.InventoryHealthRecord, 0)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseHealthRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseHealthRow(cols columns, row []string) (domain.InventoryHealthRecord, error) {
	date, err := parseDate(cols.get(row, "DATE"))
	if err != nil {
		return domain.InventoryHealthRecord{}, err
	}
	consumption, err := parseFloat(cols.get(row, "DAILY_CONSUMPTION"))
	if err != nil {
		return domain.InventoryHealthRecord{}, fmt.Errorf("daily_consumption: %w", err)
	}
	cover, err := parseOptionalFloat(cols.get(row, "DAYS_OF_COVER"))
	if err != nil {
		return domain.InventoryHealthRecord{}, fmt.Errorf("days_of_cover: %w", err)
	}

	return domain.InventoryHealthRecord{
		Date:             date,
		LocationName:     cols.get(row, "LOCATION_NAME"),
		ItemName:         cols.get(row, "ITEM_NAME"),
		DailyConsumption: consumption,
		DaysOfCover:      cover,
		RiskLevel:        domain.RiskLevel(strings.ToUpper(cols.get(row, "RISK_LEVEL"))),
	}, nil
}

// ReadAlerts parses the same columns as ReadHealth.
func ReadAlerts(r io.Reader) ([]domain.AlertRecord, error) {
	records, err := ReadHealth(r)
	if err != nil {
		return nil, err
	}
	alerts := make([]domain.AlertRecord, 0, len(records))
	for _, rec := range records {
		alerts = append(alerts, domain.AlertRecord(rec))
	}
	return alerts, nil
}

// ReadStock parses DATE, LOCATION_NAME, ITEM_NAME and CLOSING_STOCK columns.
func ReadStock(r io.Reader) ([]domain.StockSnapshot, error) {
	reader := newReader(r)
	cols, err := readHeader(reader, "DATE", "LOCATION_NAME", "ITEM_NAME", "CLOSING_STOCK")
	if err != nil {
		return nil, err
	}

	rows := make([]domain.StockSnapshot, 0)
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		date, err := parseDate(cols.get(row, "DATE"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		closing, err := parseFloat(cols.get(row, "CLOSING_STOCK"))
		if err != nil {
			return nil, fmt.Errorf("line %d: closing_stock: %w", line, err)
		}

		rows = append(rows, domain.StockSnapshot{
			Date:         date,
			LocationName: cols.get(row, "LOCATION_NAME"),
			ItemName:     cols.get(row, "ITEM_NAME"),
			ClosingStock: closing,
		})
	}
	return rows, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

func parseFloat(value string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
}

func parseOptionalFloat(value string) (*float64, error) {
	switch strings.ToLower(value) {
	case "", "nan", "null", "none":
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, nil
	}
	return &f, nil
}
