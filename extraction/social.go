package extraction

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"go-pulse/lexicon"
	"go-pulse/types"
)

var (
	// A tag must not be glued to a preceding word character (e.g. emails).
	// Combining marks belong to the tag body (Devanagari vowel signs).
	socialToken = regexp.MustCompile(`(?:^|[^\p{L}\p{M}\p{N}_])([#@])([\p{L}\p{M}\p{N}_]+)`)

	lowerUpper = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)
	upperRun   = regexp.MustCompile(`(\p{Lu}+)(\p{Lu}\p{Ll})`)
)

// tagFillers are dropped on the fallback hashtag comparison only.
var tagFillers = map[string]bool{"the": true, "of": true}

const minStrippedLen = 3

type candidate struct {
	name         string
	label        types.Label
	identifiedAs string
}

// NormalizeHashtag turns a camelCase or snake_case tag body into space-separated words.
//
//	GameOfThrones   -> Game Of Thrones
//	game_of_thrones -> game of thrones
//	NASAMission     -> NASA Mission
func NormalizeHashtag(tag string) string {
	s := strings.ReplaceAll(tag, "_", " ")
	s = upperRun.ReplaceAllString(s, "$1 $2")
	s = lowerUpper.ReplaceAllString(s, "$1 $2")
	return strings.Join(strings.Fields(s), " ")
}

// SocialPass extracts #hashtag and @mention entities in text order. Tags that
// duplicate a dictionary entity or an earlier tag are skipped.
func SocialPass(text string, lx *lexicon.Lexicon, dict, model []types.Entity) []types.Entity {
	found := socialToken.FindAllStringSubmatch(text, -1)
	if len(found) == 0 {
		return nil
	}

	registered := newEntitySet()
	for _, e := range dict {
		registered.add(e)
	}
	candidates := knownCandidates(lx, dict, model)

	var entities []types.Entity
	for _, m := range found {
		sigil, body := m[1], m[2]

		var e types.Entity
		if sigil == "@" {
			e = types.Entity{
				Text:       body,
				Label:      types.PER,
				Confidence: mentionConfidence,
				Source:     types.SourceMention,
			}
		} else {
			e = hashtagEntity(body, candidates)
		}

		if registered.has(e.Text) {
			continue
		}
		registered.add(e)
		entities = append(entities, e)
	}
	return entities
}

func hashtagEntity(tag string, candidates []candidate) types.Entity {
	phrase := NormalizeHashtag(tag)

	if c, ok := matchCandidate(phrase, candidates); ok {
		identified := c.identifiedAs
		if identified == "" {
			identified = c.name
		}
		return types.Entity{
			Text:         phrase,
			Label:        c.label,
			Confidence:   matchedTagConfidence,
			Source:       types.SourceHashtag,
			IdentifiedAs: identified,
		}
	}

	e := types.Entity{
		Text:       phrase,
		Label:      types.ORG, // hashtags mostly name brands, shows and events
		Confidence: unknownTagConfidence,
		Source:     types.SourceHashtag,
	}
	if phrase != tag {
		e.IdentifiedAs = cases.Title(language.English).String(phrase)
	}
	return e
}

// knownCandidates lists names a hashtag may refer to: entities already found in
// the text first, then every canonical name in the dictionary.
func knownCandidates(lx *lexicon.Lexicon, dict, model []types.Entity) []candidate {
	var out []candidate
	add := func(e types.Entity) {
		out = append(out, candidate{name: e.Text, label: e.Label, identifiedAs: e.IdentifiedAs})
		if e.IdentifiedAs != "" {
			out = append(out, candidate{name: e.IdentifiedAs, label: e.Label, identifiedAs: e.IdentifiedAs})
		}
	}
	for _, e := range dict {
		add(e)
	}
	for _, e := range model {
		if strings.TrimSpace(e.Text) == "" {
			continue
		}
		add(e)
	}
	for _, entry := range lx.Entries() {
		out = append(out, candidate{name: entry.Canonical, label: entry.Label, identifiedAs: entry.Canonical})
	}
	return out
}

func matchCandidate(phrase string, candidates []candidate) (candidate, bool) {
	key := types.Key(phrase)
	if key == "" {
		return candidate{}, false
	}
	for _, c := range candidates {
		if types.Key(c.name) == key {
			return c, true
		}
	}

	stripped := stripTagFillers(phrase)
	if utf8.RuneCountInString(stripped) <= minStrippedLen {
		return candidate{}, false
	}
	for _, c := range candidates {
		if stripTagFillers(c.name) == stripped {
			return c, true
		}
	}
	return candidate{}, false
}

func stripTagFillers(s string) string {
	var b strings.Builder
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if tagFillers[w] {
			continue
		}
		b.WriteString(w)
	}
	return b.String()
}
