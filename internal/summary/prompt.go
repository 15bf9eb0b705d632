package summary

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/andresuchdata/aurora-inventory/backend-go/internal/domain"
)

const (
	globalLocationLabel = "Global Inventory"
	allItemsLabel       = "All Item Types"
)

// buildPrompt renders the report brief sent to the generator. rows are the
// already-ranked risk records.
func buildPrompt(rows []domain.InventoryHealthRecord, sel domain.Selection) string {
	location := sel.Location
	if location == "" || location == domain.AllSentinel {
		location = globalLocationLabel
	}
	item := sel.Item
	if item == "" || item == domain.AllSentinel {
		item = allItemsLabel
	}

	var b strings.Builder
	b.WriteString("**Role:** You are a Senior Inventory Manager presenting a report.\n")
	b.WriteString("**Tone:** Professional, direct, and focused on risk and action.\n")
	fmt.Fprintf(&b, "**Context:** Analyzing the inventory health for '%s' at '%s'.\n\n", item, location)
	b.WriteString("**Data Provided (Top Risk Items):**\n")
	b.WriteString(dataContext(rows))
	b.WriteString("\n**Your Summary Must Contain 3 Sections:**\n\n")
	b.WriteString("1. **Executive Summary of Risk:** A one-paragraph narrative explaining the overall health " +
		"(e.g., \"The inventory is generally healthy, but 3 critical items require immediate attention.\")\n\n")
	b.WriteString("2. **Immediate Action Items (CRITICAL):** A bulleted list of the top 3 items with the lowest " +
		"DAYS_OF_COVER. State the Item, Location, and an imperative action " +
		"(e.g., \"IMMEDIATE REORDER: Item X at Warehouse Y\").\n\n")
	b.WriteString("3. **Long-Term Focus (WARNING & HEALTHY):** A brief statement on the general trend for warning " +
		"items and one piece of strategic advice.\n\n")
	b.WriteString("**Format the final output cleanly using Markdown headings and bolding.**\n")
	return b.String()
}

func dataContext(rows []domain.InventoryHealthRecord) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM_NAME\tLOCATION_NAME\tRISK_LEVEL\tDAYS_OF_COVER")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ItemName, r.LocationName, r.RiskLevel, formatCover(r.DaysOfCover))
	}
	_ = w.Flush()
	return b.String()
}

func formatCover(days *float64) string {
	if days == nil {
		return "NaN"
	}
	return strconv.FormatFloat(*days, 'f', -1, 64)
}
