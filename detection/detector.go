// Package detection turns a risk score into a moderation decision.
package detection

import "go-pulse/metrics"

type Severity string

const (
	Low      Severity = "low"
	Medium   Severity = "medium"
	High     Severity = "high"
	Critical Severity = "critical"
)

const (
	DefaultBlockThreshold = 0.6

	// --- Severity Thresholds ---
	mediumRiskThreshold = 0.40
	highRiskThreshold   = 0.70
	critRiskThreshold   = 0.95
)

type Decision struct {
	Blocked   bool     `json:"blocked"`
	Severity  Severity `json:"severity"`
	Threshold float64  `json:"threshold"`
}

// Decide blocks when score reaches threshold. A non-positive threshold uses
// DefaultBlockThreshold.
func Decide(score, threshold float64) Decision {
	if threshold <= 0 {
		threshold = DefaultBlockThreshold
	}

	d := Decision{
		Blocked:   score >= threshold,
		Severity:  Low,
		Threshold: threshold,
	}

	// set sev type
	if score >= mediumRiskThreshold {
		d.Severity = Medium
	}
	if score >= highRiskThreshold {
		d.Severity = High
	}
	if score >= critRiskThreshold {
		d.Severity = Critical
	}

	metrics.ObserveDecision(d.Blocked)
	return d
}
