package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pulse/types"
)

func TestLookup_SubstringCaseInsensitive(t *testing.T) {
	lx := Default()

	matches := lx.Lookup("Saw RaGa at the rally")
	require.Len(t, matches, 1)
	assert.Equal(t, "Rahul Gandhi", matches[0].Canonical)
	assert.Equal(t, types.PER, matches[0].Label)
	assert.Equal(t, 4, matches[0].Offset)
}

func TestLookup_FirstKeyPerCanonicalWins(t *testing.T) {
	lx := New([]Entry{
		{Key: "raga", Canonical: "Rahul Gandhi", Label: types.PER},
		{Key: "pappu", Canonical: "Rahul Gandhi", Label: types.PER},
		{Key: "namo", Canonical: "Narendra Modi", Label: types.PER},
	}, nil, nil, nil)

	matches := lx.Lookup("namo vs pappu vs raga")
	require.Len(t, matches, 2)
	assert.Equal(t, "raga", matches[0].Key)
	assert.Equal(t, "namo", matches[1].Key)
}

func TestLookup_ScriptKeys(t *testing.T) {
	matches := Default().Lookup("आज दिल्ली में मोदी की रैली")
	require.Len(t, matches, 2)
	// dictionary order, not text order
	assert.Equal(t, "Narendra Modi", matches[0].Canonical)
	assert.Equal(t, "Delhi", matches[1].Canonical)
}

func TestLookup_Empty(t *testing.T) {
	assert.Empty(t, Default().Lookup(""))
	assert.Empty(t, New(nil, nil, nil, nil).Lookup("raga"))
}

func TestLangOf(t *testing.T) {
	lx := Default()
	tests := []struct {
		r    rune
		want string
		ok   bool
	}{
		{'न', "hi", true},
		{'আ', "bn", true},
		{'த', "ta", true},
		{'Ж', "ru", true},
		{'a', "", false},
	}
	for _, tt := range tests {
		got, ok := lx.LangOf(tt.r)
		assert.Equal(t, tt.ok, ok, string(tt.r))
		assert.Equal(t, tt.want, got, string(tt.r))
	}
}

func TestContainsViolence(t *testing.T) {
	lx := Default()
	assert.True(t, lx.ContainsViolence("They will BOMB the place"))
	assert.True(t, lx.ContainsViolence("उसकी हत्या हुई"))
	assert.False(t, lx.ContainsViolence("Lovely weather today"))
	assert.False(t, lx.ContainsViolence(""))
}

func TestIsFiller(t *testing.T) {
	lx := Default()
	assert.True(t, lx.IsFiller("The"))
	assert.True(t, lx.IsFiller("of"))
	assert.False(t, lx.IsFiller("Modi"))
}

func TestCanonical(t *testing.T) {
	e, ok := Default().Canonical("rahul gandhi")
	require.True(t, ok)
	assert.Equal(t, types.PER, e.Label)

	_, ok = Default().Canonical("Nobody")
	assert.False(t, ok)
}
