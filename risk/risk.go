// Package risk computes the moderation risk score for a text.
package risk

import (
	"go-pulse/lexicon"
	"go-pulse/types"
)

// Score table, evaluated in this order.
const (
	ViolentSensitive = 0.95
	ViolentOnly      = 0.70
	SensitiveOnly    = 0.40
	None             = 0.0
)

type Assessment struct {
	Score     float64
	Violent   bool
	Sensitive bool
}

// Score flags violence keywords in text and sensitive labels among entities.
// It never calls external services.
func Score(lx *lexicon.Lexicon, text string, entities []types.Entity) Assessment {
	a := Assessment{Violent: lx.ContainsViolence(text)}
	for _, e := range entities {
		if e.Label.Sensitive() {
			a.Sensitive = true
			break
		}
	}

	switch {
	case a.Violent && a.Sensitive:
		a.Score = ViolentSensitive
	case a.Violent:
		a.Score = ViolentOnly
	case a.Sensitive:
		a.Score = SensitiveOnly
	default:
		a.Score = None
	}
	return a
}
