package inventory

import (
	"math"
	"testing"
	"time"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cover(v float64) *float64 { return &v }

func record(item string, level domain.RiskLevel, days *float64) domain.InventoryHealthRecord {
	return domain.InventoryHealthRecord{
		Date:         time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		LocationName: "Warehouse A",
		ItemName:     item,
		DaysOfCover:  days,
		RiskLevel:    level,
	}
}

func itemNames(records []domain.InventoryHealthRecord) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.ItemName)
	}
	return names
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		in   *float64
		want domain.Priority
	}{
		{"undefined cover", nil, domain.PriorityUnknown},
		{"zero", cover(0), domain.PriorityCritical},
		{"just below two", cover(1.999), domain.PriorityCritical},
		{"two is warning", cover(2), domain.PriorityWarning},
		{"mid warning", cover(3.5), domain.PriorityWarning},
		{"five is warning", cover(5), domain.PriorityWarning},
		{"just above five", cover(5.0001), domain.PriorityHealthy},
		{"long cover", cover(120), domain.PriorityHealthy},
		{"very long cover", cover(1e7), domain.PriorityHealthy},
		{"nan is undefined", cover(math.NaN()), domain.PriorityUnknown},
		{"infinity is undefined", cover(math.Inf(1)), domain.PriorityUnknown},
		{"negative infinity is undefined", cover(math.Inf(-1)), domain.PriorityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestProjectStockout(t *testing.T) {
	asOf := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, ProjectStockout(asOf, nil))

	got := ProjectStockout(asOf, cover(3))
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), *got)

	got = ProjectStockout(asOf, cover(2.5))
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 1, 12, 12, 0, 0, 0, time.UTC), *got)
}

func TestProjectStockoutLongAndUndefinedCover(t *testing.T) {
	asOf := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   *float64
		want *time.Time
	}{
		{"100k days", cover(100000), timePtr(asOf.AddDate(0, 0, 100000))},
		{"200k days", cover(200000), timePtr(asOf.AddDate(0, 0, 200000))},
		{"ten million days", cover(1e7), timePtr(asOf.AddDate(0, 0, 10000000))},
		{"long with fraction", cover(200000.5), timePtr(asOf.AddDate(0, 0, 200000).Add(12 * time.Hour))},
		{"nan", cover(math.NaN()), nil},
		{"positive infinity", cover(math.Inf(1)), nil},
		{"beyond projection range", cover(1e12), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProjectStockout(asOf, tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s want %s", got, tt.want)
			assert.True(t, got.After(asOf))
		})
	}
}

func TestTopRiskPlacesNaNCoverLast(t *testing.T) {
	records := []domain.InventoryHealthRecord{
		record("NaN", domain.RiskCritical, cover(math.NaN())),
		record("One", domain.RiskCritical, cover(1)),
		record("Zero", domain.RiskCritical, cover(0)),
	}

	got, err := TopRisk(records, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Zero", got[0].ItemName)
	assert.Equal(t, "One", got[1].ItemName)
	assert.Equal(t, "NaN", got[2].ItemName)
}

func timePtr(t time.Time) *time.Time { return &t }

func TestAsOfDate(t *testing.T) {
	_, ok := AsOfDate(nil)
	assert.False(t, ok)

	records := []domain.InventoryHealthRecord{
		{Date: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)},
		{Date: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)},
	}
	asOf, ok := AsOfDate(records)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), asOf)
}

func TestForecastKeepsUpstreamLabel(t *testing.T) {
	asOf := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	rows := Forecast(asOf, []domain.InventoryHealthRecord{
		record("Flour", domain.RiskOK, cover(1)),
		record("Sugar", domain.RiskWarning, nil),
	})

	require.Len(t, rows, 2)
	assert.Equal(t, domain.PriorityCritical, rows[0].Priority)
	assert.Equal(t, domain.RiskOK, rows[0].RiskLevel)
	require.NotNil(t, rows[0].EstStockout)
	assert.Equal(t, time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC), *rows[0].EstStockout)

	assert.Equal(t, domain.PriorityUnknown, rows[1].Priority)
	assert.Nil(t, rows[1].EstStockout)
}

func TestTopRiskOrdering(t *testing.T) {
	records := []domain.InventoryHealthRecord{
		record("A", domain.RiskCritical, cover(1)),
		record("B", domain.RiskWarning, cover(3)),
		record("C", domain.RiskCritical, cover(0.5)),
	}

	got, err := TopRisk(records, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, itemNames(got))
}

func TestTopRiskUndefinedCoverSortsLastInBand(t *testing.T) {
	records := []domain.InventoryHealthRecord{
		record("W-nil", domain.RiskWarning, nil),
		record("C-nil", domain.RiskCritical, nil),
		record("W-4", domain.RiskWarning, cover(4)),
		record("OK", domain.RiskOK, cover(0)),
		record("C-1", domain.RiskCritical, cover(1)),
	}

	got, err := TopRisk(records, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"C-1", "C-nil", "W-4", "W-nil"}, itemNames(got))
}

func TestTopRiskLimits(t *testing.T) {
	records := []domain.InventoryHealthRecord{
		record("A", domain.RiskCritical, cover(1)),
		record("B", domain.RiskWarning, cover(3)),
	}

	got, err := TopRisk(nil, 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = TopRisk(records, 0)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = TopRisk(records, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A"}, itemNames(got))

	_, err = TopRisk(records, -1)
	assert.ErrorIs(t, err, ErrNegativeLimit)

	_, err = TopHealthy(records, -3)
	assert.ErrorIs(t, err, ErrNegativeLimit)
}

func TestTopRiskIsStableAndIdempotent(t *testing.T) {
	records := []domain.InventoryHealthRecord{
		record("first", domain.RiskWarning, cover(3)),
		record("second", domain.RiskWarning, cover(3)),
		record("third", domain.RiskCritical, cover(1)),
		record("fourth", domain.RiskCritical, cover(1)),
	}

	once, err := TopRisk(records, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"third", "fourth", "first", "second"}, itemNames(once))

	twice, err := TopRisk(once, 10)
	require.NoError(t, err)
	assert.Equal(t, once, twice)

	assert.Equal(t, "first", records[0].ItemName, "input must not be reordered")
}

func TestTopHealthy(t *testing.T) {
	records := []domain.InventoryHealthRecord{
		record("nil", domain.RiskOK, nil),
		record("ten", domain.RiskOK, cover(10)),
		record("risky", domain.RiskCritical, cover(50)),
		record("forty", domain.RiskOK, cover(40)),
		record("ten-again", domain.RiskOK, cover(10)),
	}

	got, err := TopHealthy(records, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"forty", "ten", "ten-again", "nil"}, itemNames(got))

	again, err := TopHealthy(got, 5)
	require.NoError(t, err)
	assert.Equal(t, got, again)

	got, err = TopHealthy(records, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"forty", "ten"}, itemNames(got))
}

func TestFilterHealth(t *testing.T) {
	records := []domain.InventoryHealthRecord{
		{LocationName: "North", ItemName: "Flour"},
		{LocationName: "South", ItemName: "Flour"},
		{LocationName: "North", ItemName: "Sugar"},
	}

	assert.Len(t, FilterHealth(domain.Selection{Location: "All", Item: "All"}, records), 3)
	assert.Len(t, FilterHealth(domain.Selection{}, records), 3)
	assert.Len(t, FilterHealth(domain.Selection{Location: "North", Item: "All"}, records), 2)
	assert.Len(t, FilterHealth(domain.Selection{Location: "North", Item: "Sugar"}, records), 1)
	assert.Empty(t, FilterHealth(domain.Selection{Location: "East"}, records))
}

func TestNormalizeSelection(t *testing.T) {
	got := NormalizeSelection(domain.Selection{Location: "  North ", Item: ""})
	assert.Equal(t, domain.Selection{Location: "North", Item: domain.AllSentinel}, got)
}

func TestOptions(t *testing.T) {
	opts := Options([]domain.InventoryHealthRecord{
		{LocationName: "South", ItemName: "Sugar"},
		{LocationName: "North", ItemName: "Flour"},
		{LocationName: "South", ItemName: "Flour"},
	})

	assert.Equal(t, []string{"All", "North", "South"}, opts.Locations)
	assert.Equal(t, []string{"All", "Flour", "Sugar"}, opts.Items)
}

func TestSummarizeCounts(t *testing.T) {
	kpi := Summarize([]domain.InventoryHealthRecord{
		record("a", domain.RiskCritical, nil),
		record("b", domain.RiskCritical, nil),
		record("c", domain.RiskWarning, nil),
		record("d", domain.RiskOK, nil),
	})

	assert.Equal(t, domain.KPISummary{Critical: 2, Warning: 1, Healthy: 1, TotalRecords: 4}, kpi)
}
