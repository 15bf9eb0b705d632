package summary

import (
	"fmt"
	"strings"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
)

const (
	noDataText = "No data available to summarize."

	fallbackHeader = "**Inventory Summary (Fallback)**\n\n" +
		"The AI summary could not be generated, so here is a direct data breakdown:\n\n"

	fallbackClosing = "**Recommended Action:** Immediately review procurement for all critical items listed above. " +
		"Reorder warning items before their cover drops below two days, and consider rebalancing surplus " +
		"stock from healthy locations.\n"
)

type pairKey struct {
	item     string
	location string
}

type tier struct {
	level   domain.RiskLevel
	label   string
	heading string
	pairs   []pairKey
}

// Fallback renders the deterministic report from the full record set.
// Pairs are deduplicated per tier in first-seen order.
func Fallback(records []domain.InventoryHealthRecord) string {
	if len(records) == 0 {
		return noDataText
	}

	tiers := []*tier{
		{level: domain.RiskCritical, label: "CRITICAL", heading: "Critical Risks"},
		{level: domain.RiskWarning, label: "WARNING", heading: "Warning Items"},
		{level: domain.RiskOK, label: "HEALTHY", heading: "Healthy Items"},
	}
	byLevel := make(map[domain.RiskLevel]*tier, len(tiers))
	seen := make(map[domain.RiskLevel]map[pairKey]struct{}, len(tiers))
	for _, t := range tiers {
		byLevel[t.level] = t
		seen[t.level] = make(map[pairKey]struct{})
	}

	for _, r := range records {
		t, ok := byLevel[r.RiskLevel]
		if !ok {
			continue
		}
		key := pairKey{item: r.ItemName, location: r.LocationName}
		if _, dup := seen[r.RiskLevel][key]; dup {
			continue
		}
		seen[r.RiskLevel][key] = struct{}{}
		t.pairs = append(t.pairs, key)
	}

	var b strings.Builder
	b.WriteString(fallbackHeader)
	fmt.Fprintf(&b, "Critical: %d\n", len(byLevel[domain.RiskCritical].pairs))
	fmt.Fprintf(&b, "Warning: %d\n", len(byLevel[domain.RiskWarning].pairs))
	fmt.Fprintf(&b, "Healthy: %d\n", len(byLevel[domain.RiskOK].pairs))
	b.WriteString("\n---\n")

	for _, t := range tiers {
		fmt.Fprintf(&b, "**%s:**\n", t.heading)
		if len(t.pairs) == 0 {
			b.WriteString("- None\n")
		}
		for _, p := range t.pairs {
			fmt.Fprintf(&b, "- %s at %s (%s)\n", p.item, p.location, t.label)
		}
		b.WriteString("\n")
	}

	b.WriteString(fallbackClosing)
	return b.String()
}
