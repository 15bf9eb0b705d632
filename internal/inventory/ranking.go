package inventory

import (
	"cmp"
	"errors"
	"slices"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
)

// ErrNegativeLimit is returned when a ranking is asked for fewer than zero rows.
var ErrNegativeLimit = errors.New("inventory: ranking limit must not be negative")

// TopRisk returns up to n CRITICAL/WARNING records, CRITICAL first, then by
// ascending days of cover with undefined cover last in its band. Ties keep
// input order.
func TopRisk(records []domain.InventoryHealthRecord, n int) ([]domain.InventoryHealthRecord, error) {
	if n < 0 {
		return nil, ErrNegativeLimit
	}

	risky := selectWhere(records, func(r domain.InventoryHealthRecord) bool {
		return r.RiskLevel.IsAtRisk()
	})
	slices.SortStableFunc(risky, func(a, b domain.InventoryHealthRecord) int {
		if c := cmp.Compare(domain.RiskSeverity(a.RiskLevel), domain.RiskSeverity(b.RiskLevel)); c != 0 {
			return c
		}
		return compareCover(a.DaysOfCover, b.DaysOfCover, false)
	})

	return head(risky, n), nil
}

// TopHealthy returns up to n OK records ordered by descending days of cover,
// undefined cover last. Ties keep input order.
func TopHealthy(records []domain.InventoryHealthRecord, n int) ([]domain.InventoryHealthRecord, error) {
	if n < 0 {
		return nil, ErrNegativeLimit
	}

	healthy := selectWhere(records, func(r domain.InventoryHealthRecord) bool {
		return r.RiskLevel == domain.RiskOK
	})
	slices.SortStableFunc(healthy, func(a, b domain.InventoryHealthRecord) int {
		return compareCover(a.DaysOfCover, b.DaysOfCover, true)
	})

	return head(healthy, n), nil
}

// ToRanked reduces records to the columns shown in the ranked tables.
func ToRanked(records []domain.InventoryHealthRecord) []domain.RankedItem {
	items := make([]domain.RankedItem, 0, len(records))
	for _, r := range records {
		items = append(items, domain.RankedItem{
			ItemName:     r.ItemName,
			LocationName: r.LocationName,
			DaysOfCover:  r.DaysOfCover,
			RiskLevel:    r.RiskLevel,
		})
	}
	return items
}

// compareCover orders defined values before nil regardless of direction.
func compareCover(a, b *float64, descending bool) int {
	a, b = NormalizeCover(a), NormalizeCover(b)
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case descending:
		return cmp.Compare(*b, *a)
	default:
		return cmp.Compare(*a, *b)
	}
}

// selectWhere copies the matching records so sorting never touches the caller's slice.
func selectWhere(records []domain.InventoryHealthRecord, keep func(domain.InventoryHealthRecord) bool) []domain.InventoryHealthRecord {
	out := make([]domain.InventoryHealthRecord, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func head(records []domain.InventoryHealthRecord, n int) []domain.InventoryHealthRecord {
	if n < len(records) {
		return records[:n]
	}
	return records
}
