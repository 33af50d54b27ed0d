package trending

import (
	"sort"

	"go-pulse/types"
)

type Related struct {
	Text          string      `json:"text"`
	Label         types.Label `json:"label"`
	CoOccurrences int         `json:"co_occurrences"`
}

// CoOccurring counts the entities that share a post with text, most frequent
// first, and returns at most limit of them.
func CoOccurring(mentions []types.EntityMention, text string, limit int) []Related {
	key := types.Key(text)

	posts := make(map[string]bool)
	for _, m := range mentions {
		if m.Key == key {
			posts[m.PostID] = true
		}
	}

	counts := make(map[groupKey]*Related)
	for _, m := range mentions {
		if m.Key == key || !posts[m.PostID] {
			continue
		}
		k := groupKey{key: m.Key, label: m.Label}
		r, ok := counts[k]
		if !ok {
			r = &Related{Text: m.Text, Label: m.Label}
			counts[k] = r
		}
		r.CoOccurrences++
	}

	out := make([]Related, 0, len(counts))
	for _, r := range counts {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CoOccurrences != out[j].CoOccurrences {
			return out[i].CoOccurrences > out[j].CoOccurrences
		}
		if out[i].Text != out[j].Text {
			return out[i].Text < out[j].Text
		}
		return out[i].Label < out[j].Label
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Latest returns the most recent mention of text, if any.
func Latest(mentions []types.EntityMention, text string) (types.EntityMention, bool) {
	key := types.Key(text)
	var (
		latest types.EntityMention
		found  bool
	)
	for _, m := range mentions {
		if m.Key != key {
			continue
		}
		if !found || m.CreatedAt.After(latest.CreatedAt) {
			latest = m
			found = true
		}
	}
	return latest, found
}
