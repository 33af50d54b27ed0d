// Package trending computes entity momentum from stored mention records.
package trending

import (
	"sort"
	"time"

	"go-pulse/types"
)

const (
	Window        = 24 * time.Hour
	DefaultLimit  = 15
	candidateSize = 20
)

type Trend struct {
	Text         string      `json:"text"`
	Label        types.Label `json:"label"`
	IdentifiedAs string      `json:"identified_as,omitempty"`
	Mentions24h  int         `json:"mentions_24h"`
	Velocity     int         `json:"velocity"`
	IsNew        bool        `json:"is_new"`
}

type groupKey struct {
	key   string
	label types.Label
}

type tally struct {
	text         string
	identifiedAs string
	latest       time.Time
	today        int
	previous     int
}

// Compute compares mentions in the 24h before now with the 24h before that.
// Only sensitive labels are considered. The 20 most-mentioned entities of the
// current window are ranked new-first, then by velocity, and the first limit
// are returned. A non-positive limit uses DefaultLimit.
func Compute(mentions []types.EntityMention, now time.Time, limit int) []Trend {
	if limit <= 0 {
		limit = DefaultLimit
	}
	todayStart := now.Add(-Window)
	prevStart := now.Add(-2 * Window)

	tallies := make(map[groupKey]*tally)
	for _, m := range mentions {
		if !m.Label.Sensitive() || m.Key == "" || m.CreatedAt.After(now) || m.CreatedAt.Before(prevStart) {
			continue
		}
		k := groupKey{key: m.Key, label: m.Label}
		t, ok := tallies[k]
		if !ok {
			t = &tally{}
			tallies[k] = t
		}
		if !m.CreatedAt.Before(todayStart) {
			t.today++
			// display the most recent surface form
			if t.text == "" || m.CreatedAt.After(t.latest) {
				t.text = m.Text
				t.latest = m.CreatedAt
			}
			if m.IdentifiedAs != "" {
				t.identifiedAs = m.IdentifiedAs
			}
		} else {
			t.previous++
		}
	}

	trends := make([]Trend, 0, len(tallies))
	for k, t := range tallies {
		if t.today == 0 {
			continue
		}
		trends = append(trends, Trend{
			Text:         t.text,
			Label:        k.label,
			IdentifiedAs: t.identifiedAs,
			Mentions24h:  t.today,
			Velocity:     t.today - t.previous,
			IsNew:        t.previous == 0,
		})
	}

	sort.Slice(trends, func(i, j int) bool {
		if trends[i].Mentions24h != trends[j].Mentions24h {
			return trends[i].Mentions24h > trends[j].Mentions24h
		}
		return lessText(trends[i], trends[j])
	})
	if len(trends) > candidateSize {
		trends = trends[:candidateSize]
	}

	sort.SliceStable(trends, func(i, j int) bool {
		if trends[i].IsNew != trends[j].IsNew {
			return trends[i].IsNew
		}
		return trends[i].Velocity > trends[j].Velocity
	})
	if len(trends) > limit {
		trends = trends[:limit]
	}
	return trends
}

func lessText(a, b Trend) bool {
	if a.Text != b.Text {
		return a.Text < b.Text
	}
	return a.Label < b.Label
}
