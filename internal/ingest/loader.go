package ingest

import (
	"context"
	"fmt"
	"os"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
	"github.com/rs/zerolog/log"
)

// Sink receives parsed rows. *repository.IngestRepository implements it.
type Sink interface {
	ReplaceHealthRecords(ctx context.Context, records []domain.InventoryHealthRecord) (int, error)
	ReplaceStockSnapshots(ctx context.Context, rows []domain.StockSnapshot) (int, error)
	ReplaceAlerts(ctx context.Context, alerts []domain.AlertRecord) (int, error)
}

type Loader struct {
	sink Sink
}

func NewLoader(sink Sink) *Loader {
	return &Loader{sink: sink}
}

// Report counts loaded rows per dataset.
type Report map[Dataset]int

// LoadFiles loads each file in order and stops at the first failure.
func (l *Loader) LoadFiles(ctx context.Context, paths []string) (Report, error) {
	report := make(Report)
	for _, path := range paths {
		dataset, n, err := l.LoadFile(ctx, path)
		if err != nil {
			return report, err
		}
		report[dataset] += n
		log.Info().Str("file", path).Str("dataset", string(dataset)).Int("rows", n).Msg("snapshot loaded")
	}
	return report, nil
}

func (l *Loader) LoadFile(ctx context.Context, path string) (Dataset, int, error) {
	dataset, err := DetectDataset(path)
	if err != nil {
		return "", 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return dataset, 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var n int
	switch dataset {
	case DatasetHealth:
		records, perr := ReadHealth(f)
		if perr != nil {
			return dataset, 0, fmt.Errorf("%s: %w", path, perr)
		}
		n, err = l.sink.ReplaceHealthRecords(ctx, records)
	case DatasetStock:
		rows, perr := ReadStock(f)
		if perr != nil {
			return dataset, 0, fmt.Errorf("%s: %w", path, perr)
		}
		n, err = l.sink.ReplaceStockSnapshots(ctx, rows)
	case DatasetAlerts:
		alerts, perr := ReadAlerts(f)
		if perr != nil {
			return dataset, 0, fmt.Errorf("%s: %w", path, perr)
		}
		n, err = l.sink.ReplaceAlerts(ctx, alerts)
	}
	if err != nil {
		return dataset, 0, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return dataset, n, nil
}
