package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/cache"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/inventory"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/metrics"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/repository"
	"github.com/andresuchdata/aurora-inventory/backend-go/internal/summary"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const DefaultTopN = 5

// ErrUnknownChart is returned for chart types other than heatmap, bar and line.
var ErrUnknownChart = errors.New("unknown chart type")

const (
	noticeNoRisk       = "No high-risk items available."
	noticeNoHealthyTop = "No healthy items available."
	noticeNoForecast   = "No data available for selected filters."
	noticeNoAlerts     = "No critical or warning items under current filters."
	noticeNoHealthy    = "No healthy items found under the applied filters."
	noticeNoChartData  = "No data available for selected filters."
	noticeNoTrendData  = "Not enough data for trend visualization."
)

type InventoryService struct {
	repo        repository.WarehouseRepository
	cache       cache.FilterOptionsCache
	summarizer  *summary.Summarizer
	metrics     *metrics.Metrics
	topN        int
	healthTable string
}

type Options struct {
	TopN        int
	HealthTable string
	Metrics     *metrics.Metrics
}

func NewInventoryService(repo repository.WarehouseRepository, cacheImpl cache.FilterOptionsCache, summarizer *summary.Summarizer, opts Options) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopFilterOptionsCache()
	}
	if summarizer == nil {
		summarizer = summary.NewSummarizer(nil)
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	return &InventoryService{
		repo:        repo,
		cache:       cacheImpl,
		summarizer:  summarizer,
		metrics:     opts.Metrics,
		topN:        opts.TopN,
		healthTable: opts.HealthTable,
	}
}

// TopN is the configured ranking size used when a request does not set one.
func (s *InventoryService) TopN() int {
	return s.topN
}

func (s *InventoryService) GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	if opts, ok, err := s.cache.GetOptions(ctx, s.healthTable); err == nil && ok {
		return opts, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: cache get filter options failed")
	}

	records, err := s.repo.ListHealthRecords(ctx)
	if err != nil {
		return nil, err
	}

	opts := inventory.Options(records)
	if err := s.cache.SetOptions(ctx, s.healthTable, &opts); err != nil {
		log.Warn().Err(err).Msg("inventory: cache set filter options failed")
	}

	return &opts, nil
}

// GetDashboard builds the full report. KPIs and rankings cover the whole
// dataset; forecast, alerts and the healthy overview follow the selection.
func (s *InventoryService) GetDashboard(ctx context.Context, sel domain.Selection, topN int) (*domain.InventoryDashboard, error) {
	if topN < 0 {
		return nil, inventory.ErrNegativeLimit
	}
	sel = inventory.NormalizeSelection(sel)

	var (
		health []domain.InventoryHealthRecord
		alerts []domain.AlertRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		health, err = s.repo.ListHealthRecords(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		alerts, err = s.repo.ListAlerts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	topRisk, err := inventory.TopRisk(health, topN)
	if err != nil {
		return nil, err
	}
	topHealthy, err := inventory.TopHealthy(health, topN)
	if err != nil {
		return nil, err
	}

	dashboard := &domain.InventoryDashboard{
		Selection:  sel,
		KPIs:       inventory.Summarize(health),
		TopRisk:    section(inventory.ToRanked(topRisk), noticeNoRisk),
		TopHealthy: section(inventory.ToRanked(topHealthy), noticeNoHealthyTop),
		Alerts:     section(inventory.FilterAlerts(sel, alerts), noticeNoAlerts),
	}

	filtered := inventory.FilterHealth(sel, health)
	dashboard.Healthy = section(inventory.HealthyRows(filtered), noticeNoHealthy)

	if asOf, ok := inventory.AsOfDate(health); ok {
		dashboard.AsOf = &asOf
		dashboard.Forecast = section(inventory.Forecast(asOf, filtered), noticeNoForecast)
	} else {
		dashboard.Forecast = section([]domain.ForecastRow{}, noticeNoForecast)
	}

	s.metrics.RecordRender("dashboard")
	return dashboard, nil
}

func (s *InventoryService) GetForecast(ctx context.Context, sel domain.Selection) (domain.Section[domain.ForecastRow], error) {
	health, err := s.repo.ListHealthRecords(ctx)
	if err != nil {
		return domain.Section[domain.ForecastRow]{}, err
	}

	s.metrics.RecordRender("forecast")
	asOf, ok := inventory.AsOfDate(health)
	if !ok {
		return section([]domain.ForecastRow{}, noticeNoForecast), nil
	}
	filtered := inventory.FilterHealth(inventory.NormalizeSelection(sel), health)
	return section(inventory.Forecast(asOf, filtered), noticeNoForecast), nil
}

func (s *InventoryService) GetAlerts(ctx context.Context, sel domain.Selection) (domain.Section[domain.AlertRecord], error) {
	alerts, err := s.repo.ListAlerts(ctx)
	if err != nil {
		return domain.Section[domain.AlertRecord]{}, err
	}

	s.metrics.RecordRender("alerts")
	return section(inventory.FilterAlerts(inventory.NormalizeSelection(sel), alerts), noticeNoAlerts), nil
}

func (s *InventoryService) GetChart(ctx context.Context, sel domain.Selection, chartType domain.ChartType) (*domain.ChartData, error) {
	switch chartType {
	case domain.ChartHeatmap, domain.ChartBar, domain.ChartLine:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, chartType)
	}
	sel = inventory.NormalizeSelection(sel)

	var (
		health []domain.InventoryHealthRecord
		stock  []domain.StockSnapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		health, err = s.repo.ListHealthRecords(gctx)
		return err
	})
	if chartType == domain.ChartLine {
		g.Go(func() error {
			var err error
			stock, err = s.repo.ListStockSnapshots(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.metrics.RecordRender("chart")
	data := &domain.ChartData{Type: chartType}

	filtered := inventory.FilterHealth(sel, health)
	if len(filtered) == 0 {
		data.Notice = noticeNoChartData
		return data, nil
	}

	if chartType == domain.ChartLine {
		trend := inventory.TrendSeries(inventory.FilterStock(sel, stock))
		if len(trend) == 0 {
			data.Notice = noticeNoTrendData
		}
		data.Trend = trend
		return data, nil
	}

	data.Cover = inventory.CoverSeries(filtered)
	return data, nil
}

// Summarize produces the narrative report over the full dataset. Only a
// warehouse read failure is returned as an error.
func (s *InventoryService) Summarize(ctx context.Context, sel domain.Selection) (summary.Result, error) {
	health, err := s.repo.ListHealthRecords(ctx)
	if err != nil {
		return summary.Result{}, err
	}

	return s.summarizer.Summarize(ctx, health, inventory.NormalizeSelection(sel)), nil
}

func section[T any](rows []T, notice string) domain.Section[T] {
	if rows == nil {
		rows = make([]T, 0)
	}
	if len(rows) > 0 {
		notice = ""
	}
	return domain.Section[T]{Rows: rows, Notice: notice}
}
