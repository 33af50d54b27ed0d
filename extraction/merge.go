// Package extraction merges dictionary, hashtag/mention and model entities into
// one de-duplicated list ordered by source priority.
package extraction

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go-pulse/lexicon"
	"go-pulse/types"
)

const (
	dictionaryConfidence = 1.0
	matchedTagConfidence = 0.9
	mentionConfidence    = 0.9
	unknownTagConfidence = 0.7
)

// entitySet is an insertion-ordered set of entities keyed by types.Key.
// The first entity registered under a key wins.
type entitySet struct {
	order []types.Entity
	seen  map[string]bool
}

func newEntitySet() *entitySet {
	return &entitySet{seen: make(map[string]bool)}
}

func (s *entitySet) has(text string) bool {
	return s.seen[types.Key(text)]
}

func (s *entitySet) add(e types.Entity) bool {
	k := types.Key(e.Text)
	if k == "" || s.seen[k] {
		return false
	}
	s.seen[k] = true
	s.order = append(s.order, e)
	return true
}

// Merge runs the dictionary and hashtag/mention passes over text and combines
// them with the model entities. model may be nil.
func Merge(text string, model []types.Entity, lx *lexicon.Lexicon) []types.Entity {
	dict := DictionaryPass(text, lx)
	social := SocialPass(text, lx, dict, model)
	return Combine(dict, social, model)
}

// Combine concatenates the three passes in priority order (dictionary,
// hashtag/mention, model) and drops later duplicates.
func Combine(dict, social, model []types.Entity) []types.Entity {
	set := newEntitySet()
	for _, e := range dict {
		set.add(e)
	}
	for _, e := range social {
		set.add(e)
	}
	for _, e := range model {
		e.Source = types.SourceModel
		e.Text = strings.TrimSpace(e.Text)
		e.Confidence = clamp(e.Confidence)
		set.add(e)
	}
	if set.order == nil {
		return []types.Entity{}
	}
	return set.order
}

// DictionaryPass returns one entity per distinct canonical name found in text.
// The entity text is the original-cased span at the match.
func DictionaryPass(text string, lx *lexicon.Lexicon) []types.Entity {
	matches := lx.Lookup(text)
	if len(matches) == 0 {
		return nil
	}

	offsets := lowerOffsets(text)

	entities := make([]types.Entity, 0, len(matches))
	for _, m := range matches {
		span := m.Key
		if m.Offset >= 0 {
			start, okStart := offsets[m.Offset]
			end, okEnd := offsets[m.Offset+len(m.Key)]
			if okStart && okEnd {
				if s := text[start:end]; strings.ToLower(s) == m.Key {
					span = s
				}
			}
		}
		entities = append(entities, types.Entity{
			Text:         span,
			Label:        m.Label,
			Confidence:   dictionaryConfidence,
			Source:       types.SourceDictionary,
			IdentifiedAs: m.Canonical,
		})
	}
	return entities
}

// lowerOffsets maps each rune boundary of strings.ToLower(text) to the byte
// offset of the same boundary in text.
func lowerOffsets(text string) map[int]int {
	offsets := make(map[int]int, len(text)+1)
	j := 0
	for i, r := range text {
		offsets[j] = i
		j += utf8.RuneLen(unicode.ToLower(r))
	}
	offsets[j] = len(text)
	return offsets
}

func clamp(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
