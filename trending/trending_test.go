package trending

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pulse/types"
)

var now = time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

func mention(text string, label types.Label, ago time.Duration, post string) types.EntityMention {
	return types.EntityMention{
		Text:      text,
		Key:       types.Key(text),
		Label:     label,
		PostID:    post,
		CreatedAt: now.Add(-ago),
	}
}

func repeat(n int, text string, label types.Label, ago time.Duration) []types.EntityMention {
	out := make([]types.EntityMention, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, mention(text, label, ago, fmt.Sprintf("%s-%d-%s", text, i, ago)))
	}
	return out
}

func TestCompute_VelocityAndOrdering(t *testing.T) {
	var mentions []types.EntityMention
	mentions = append(mentions, repeat(5, "Modi", types.PER, time.Hour)...)
	mentions = append(mentions, repeat(1, "Modi", types.PER, 30*time.Hour)...)
	mentions = append(mentions, repeat(3, "BJP", types.ORG, 2*time.Hour)...)
	mentions = append(mentions, repeat(6, "BJP", types.ORG, 40*time.Hour)...)
	mentions = append(mentions, repeat(2, "Delhi", types.GPE, 3*time.Hour)...)
	mentions = append(mentions, repeat(9, "Game Of Thrones", types.MISC, time.Hour)...)
	mentions = append(mentions, repeat(4, "Mumbai", types.GPE, 60*time.Hour)...)

	got := Compute(mentions, now, 0)
	require.Len(t, got, 3)

	assert.Equal(t, "Delhi", got[0].Text)
	assert.True(t, got[0].IsNew)
	assert.Equal(t, 2, got[0].Velocity)

	assert.Equal(t, "Modi", got[1].Text)
	assert.Equal(t, 5, got[1].Mentions24h)
	assert.Equal(t, 4, got[1].Velocity)
	assert.False(t, got[1].IsNew)

	assert.Equal(t, "BJP", got[2].Text)
	assert.Equal(t, -3, got[2].Velocity)
}

func TestCompute_GroupsByKeyAndLabel(t *testing.T) {
	mentions := []types.EntityMention{
		mention("raga", types.PER, 2*time.Hour, "p1"),
		mention("RaGa", types.PER, time.Hour, "p2"),
		mention("raga", types.ORG, time.Hour, "p3"),
	}
	mentions[0].IdentifiedAs = "Rahul Gandhi"

	got := Compute(mentions, now, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "RaGa", got[0].Text)
	assert.Equal(t, types.PER, got[0].Label)
	assert.Equal(t, 2, got[0].Mentions24h)
	assert.Equal(t, "Rahul Gandhi", got[0].IdentifiedAs)
}

func TestCompute_Limit(t *testing.T) {
	var mentions []types.EntityMention
	for i := 0; i < 30; i++ {
		mentions = append(mentions, mention(fmt.Sprintf("Person %02d", i), types.PER, time.Hour, "p"))
	}

	assert.Len(t, Compute(mentions, now, 0), DefaultLimit)
	assert.Len(t, Compute(mentions, now, 5), 5)
	assert.Len(t, Compute(mentions, now, 50), candidateSize)
}

func TestCompute_Empty(t *testing.T) {
	assert.Empty(t, Compute(nil, now, 10))
}

func TestCoOccurring(t *testing.T) {
	mentions := []types.EntityMention{
		mention("Modi", types.PER, time.Hour, "p1"),
		mention("BJP", types.ORG, time.Hour, "p1"),
		mention("Delhi", types.GPE, time.Hour, "p1"),
		mention("modi", types.PER, time.Hour, "p2"),
		mention("BJP", types.ORG, time.Hour, "p2"),
		mention("Mumbai", types.GPE, time.Hour, "p3"),
	}

	got := CoOccurring(mentions, "MODI", 10)
	assert.Equal(t, []Related{
		{Text: "BJP", Label: types.ORG, CoOccurrences: 2},
		{Text: "Delhi", Label: types.GPE, CoOccurrences: 1},
	}, got)

	assert.Len(t, CoOccurring(mentions, "Modi", 1), 1)
	assert.Empty(t, CoOccurring(mentions, "Nobody", 10))
}

func TestLatest(t *testing.T) {
	mentions := []types.EntityMention{
		mention("raga", types.PER, 3*time.Hour, "p1"),
		mention("RaGa", types.PER, time.Hour, "p2"),
	}

	m, ok := Latest(mentions, "RAGA")
	require.True(t, ok)
	assert.Equal(t, "p2", m.PostID)

	_, ok = Latest(mentions, "bjp")
	assert.False(t, ok)
}

func TestCoOccurring_SameTextDifferentLabels(t *testing.T) {
	mentions := []types.EntityMention{
		mention("Modi", types.PER, time.Hour, "p1"),
		mention("Jordan", types.PER, time.Hour, "p1"),
		mention("Jordan", types.GPE, time.Hour, "p1"),
	}

	for i := 0; i < 20; i++ {
		assert.Equal(t, []Related{
			{Text: "Jordan", Label: types.GPE, CoOccurrences: 1},
			{Text: "Jordan", Label: types.PER, CoOccurrences: 1},
		}, CoOccurring(mentions, "Modi", 10))
	}
}

func TestEntities(t *testing.T) {
	var mentions []types.EntityMention
	mentions = append(mentions, repeat(3, "BJP", types.ORG, 5*time.Hour)...)
	mentions = append(mentions, mention("bjp", types.ORG, time.Hour, "late"))
	mentions = append(mentions, repeat(2, "Delhi", types.GPE, 2*time.Hour)...)
	mentions = append(mentions, repeat(2, "Modi", types.PER, 90*time.Hour)...)

	got := Entities(mentions, "", 0)
	require.Len(t, got, 3)
	assert.Equal(t, EntityCount{Text: "bjp", Label: types.ORG, MentionCount: 4, LastSeen: now.Add(-time.Hour)}, got[0])
	assert.Equal(t, "Delhi", got[1].Text)
	assert.Equal(t, "Modi", got[2].Text)

	got = Entities(mentions, types.PER, 0)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].MentionCount)

	assert.Len(t, Entities(mentions, "", 2), 2)
	assert.Empty(t, Entities(nil, "", 0))
}

func TestSummarize(t *testing.T) {
	mentions := []types.EntityMention{
		mention("Modi", types.PER, time.Hour, "p1"),
		mention("modi", types.PER, time.Hour, "p2"),
		mention("Rahul Gandhi", types.PER, time.Hour, "p2"),
		mention("BJP", types.ORG, time.Hour, "p3"),
	}

	st := Summarize(mentions)
	assert.Equal(t, map[types.Label]LabelStats{
		types.PER: {TotalMentions: 3, UniqueCount: 2},
		types.ORG: {TotalMentions: 1, UniqueCount: 1},
	}, st.ByType)
	assert.Equal(t, 3, st.PostsWithEntities)

	empty := Summarize(nil)
	assert.NotNil(t, empty.ByType)
	assert.Zero(t, empty.PostsWithEntities)
}

func TestCoverage(t *testing.T) {
	assert.Equal(t, 37.5, Coverage(3, 8))
	assert.Equal(t, 33.3, Coverage(1, 3))
	assert.Equal(t, 0.0, Coverage(0, 0))
}
