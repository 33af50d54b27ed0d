package trending

import (
	"sort"
	"time"

	"go-pulse/types"
)

const DefaultListLimit = 50

type EntityCount struct {
	Text         string      `json:"text"`
	Label        types.Label `json:"label"`
	MentionCount int         `json:"mention_count"`
	LastSeen     time.Time   `json:"last_seen"`
}

type LabelStats struct {
	TotalMentions int `json:"total_mentions"`
	UniqueCount   int `json:"unique_count"`
}

type Stats struct {
	ByType            map[types.Label]LabelStats `json:"by_type"`
	PostsWithEntities int                        `json:"posts_with_entities"`
}

// Entities groups mentions by (key, label) and returns the most mentioned
// first. An empty label keeps every label; a non-positive limit uses
// DefaultListLimit.
func Entities(mentions []types.EntityMention, label types.Label, limit int) []EntityCount {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	groups := make(map[groupKey]*EntityCount)
	for _, m := range mentions {
		if m.Key == "" || (label != "" && m.Label != label) {
			continue
		}
		k := groupKey{key: m.Key, label: m.Label}
		ec, ok := groups[k]
		if !ok {
			ec = &EntityCount{Label: m.Label}
			groups[k] = ec
		}
		ec.MentionCount++
		if ec.Text == "" || m.CreatedAt.After(ec.LastSeen) {
			ec.Text = m.Text
			ec.LastSeen = m.CreatedAt
		}
	}

	out := make([]EntityCount, 0, len(groups))
	for _, ec := range groups {
		out = append(out, *ec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MentionCount != out[j].MentionCount {
			return out[i].MentionCount > out[j].MentionCount
		}
		if out[i].Text != out[j].Text {
			return out[i].Text < out[j].Text
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Summarize counts mentions and distinct entities per label, and the posts
// that carry at least one entity.
func Summarize(mentions []types.EntityMention) Stats {
	st := Stats{ByType: make(map[types.Label]LabelStats)}

	unique := make(map[groupKey]bool)
	posts := make(map[string]bool)
	for _, m := range mentions {
		if m.Key == "" {
			continue
		}
		ls := st.ByType[m.Label]
		ls.TotalMentions++
		k := groupKey{key: m.Key, label: m.Label}
		if !unique[k] {
			unique[k] = true
			ls.UniqueCount++
		}
		st.ByType[m.Label] = ls
		if m.PostID != "" {
			posts[m.PostID] = true
		}
	}
	st.PostsWithEntities = len(posts)
	return st
}

// Coverage is the percentage of posts carrying an entity, rounded to one decimal.
func Coverage(withEntities int, total int64) float64 {
	if total < 1 {
		total = 1
	}
	pct := float64(withEntities) / float64(total) * 100
	return float64(int64(pct*10+0.5)) / 10
}
