package domain

// AllSentinel is the filter value meaning "no filter".
const AllSentinel = "All"

// Priority is the tier derived locally from days of cover. It may disagree with
// the upstream RiskLevel and is never reconciled with it.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityWarning  Priority = "Warning"
	PriorityHealthy  Priority = "Healthy"
	PriorityUnknown  Priority = "Unknown"
)

var riskSeverity = map[RiskLevel]int{
	RiskCritical: 0,
	RiskWarning:  1,
	RiskOK:       2,
}

// RiskSeverity returns the sort rank of an upstream risk level. Lower is more severe.
// Unrecognised labels rank after OK.
func RiskSeverity(level RiskLevel) int {
	if rank, ok := riskSeverity[level]; ok {
		return rank
	}
	return len(riskSeverity)
}

// IsAtRisk reports whether the upstream label is CRITICAL or WARNING.
func (l RiskLevel) IsAtRisk() bool {
	return l == RiskCritical || l == RiskWarning
}
