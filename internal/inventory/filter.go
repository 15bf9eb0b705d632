package inventory

import (
	"sort"
	"strings"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
)

// NormalizeSelection trims the values and maps empty input to the "All" sentinel.
func NormalizeSelection(sel domain.Selection) domain.Selection {
	return domain.Selection{
		Location: normalizeChoice(sel.Location),
		Item:     normalizeChoice(sel.Item),
	}
}

func normalizeChoice(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return domain.AllSentinel
	}
	return v
}

// Matches is the equality predicate behind every filtered view.
func Matches(sel domain.Selection, location, item string) bool {
	if !isAll(sel.Location) && sel.Location != location {
		return false
	}
	if !isAll(sel.Item) && sel.Item != item {
		return false
	}
	return true
}

func isAll(v string) bool {
	return v == "" || v == domain.AllSentinel
}

func FilterHealth(sel domain.Selection, records []domain.InventoryHealthRecord) []domain.InventoryHealthRecord {
	out := make([]domain.InventoryHealthRecord, 0, len(records))
	for _, r := range records {
		if Matches(sel, r.LocationName, r.ItemName) {
			out = append(out, r)
		}
	}
	return out
}

func FilterStock(sel domain.Selection, rows []domain.StockSnapshot) []domain.StockSnapshot {
	out := make([]domain.StockSnapshot, 0, len(rows))
	for _, r := range rows {
		if Matches(sel, r.LocationName, r.ItemName) {
			out = append(out, r)
		}
	}
	return out
}

func FilterAlerts(sel domain.Selection, alerts []domain.AlertRecord) []domain.AlertRecord {
	out := make([]domain.AlertRecord, 0, len(alerts))
	for _, a := range alerts {
		if Matches(sel, a.LocationName, a.ItemName) {
			out = append(out, a)
		}
	}
	return out
}

// Options returns sorted distinct locations and items, each list led by "All".
func Options(records []domain.InventoryHealthRecord) domain.FilterOptions {
	locations := make(map[string]struct{})
	items := make(map[string]struct{})
	for _, r := range records {
		locations[r.LocationName] = struct{}{}
		items[r.ItemName] = struct{}{}
	}
	return domain.FilterOptions{
		Locations: withAll(locations),
		Items:     withAll(items),
	}
}

func withAll(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{domain.AllSentinel}, values...)
}
