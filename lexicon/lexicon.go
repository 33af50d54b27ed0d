// Package lexicon holds the read-only lookup tables shared by every analysis:
// the known-entity dictionary, the script range table, filler words and
// violence keywords. A Lexicon is immutable once built and safe for concurrent use.
package lexicon

import (
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"
	mapset "github.com/deckarep/golang-set/v2"

	"go-pulse/types"
)

// Entry maps a lowercase slang or script key to a canonical English identity.
type Entry struct {
	Key       string
	Canonical string
	Label     types.Label
}

// ScriptRange maps an inclusive code point block to a 2-letter language code.
type ScriptRange struct {
	Lo, Hi rune
	Lang   string
}

// Match is a dictionary hit. Offset is the byte offset of Key in the lower-cased text.
type Match struct {
	Entry
	Offset int
}

type Lexicon struct {
	entries         []Entry
	matcher         *ahocorasick.Matcher
	scripts         []ScriptRange
	fillers         mapset.Set[string]
	violence        []string
	violenceMatcher *ahocorasick.Matcher
}

// New builds a Lexicon. Keys and keywords are lower-cased; empty ones are ignored.
func New(entries []Entry, scripts []ScriptRange, fillers, violence []string) *Lexicon {
	lx := &Lexicon{
		scripts: append([]ScriptRange(nil), scripts...),
		fillers: mapset.NewThreadUnsafeSet[string](),
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		e.Key = strings.ToLower(strings.TrimSpace(e.Key))
		if e.Key == "" {
			continue
		}
		lx.entries = append(lx.entries, e)
		keys = append(keys, e.Key)
	}
	if len(keys) > 0 {
		lx.matcher = ahocorasick.NewStringMatcher(keys)
	}

	for _, w := range fillers {
		lx.fillers.Add(strings.ToLower(w))
	}

	for _, kw := range violence {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lx.violence = append(lx.violence, kw)
		}
	}
	if len(lx.violence) > 0 {
		lx.violenceMatcher = ahocorasick.NewStringMatcher(lx.violence)
	}

	return lx
}

// Default returns the process-wide lexicon built from the bundled tables.
var Default = sync.OnceValue(func() *Lexicon {
	return New(knownEntities, scriptRanges, fillerWords, violenceKeywords)
})

// Entries returns the dictionary in insertion order.
func (lx *Lexicon) Entries() []Entry {
	return append([]Entry(nil), lx.entries...)
}

// Lookup returns the dictionary entries whose key is a substring of text,
// case-insensitively, in dictionary order. Only the first entry per canonical
// name is returned.
func (lx *Lexicon) Lookup(text string) []Match {
	if lx.matcher == nil || text == "" {
		return nil
	}
	lower := strings.ToLower(text)

	hit := make(map[int]bool)
	for _, idx := range lx.matcher.MatchThreadSafe([]byte(lower)) {
		hit[idx] = true
	}

	var matches []Match
	seen := make(map[string]bool)
	for i, e := range lx.entries {
		if !hit[i] || seen[e.Canonical] {
			continue
		}
		seen[e.Canonical] = true
		matches = append(matches, Match{Entry: e, Offset: strings.Index(lower, e.Key)})
	}
	return matches
}

// Canonical reports whether name equals some dictionary canonical name, ignoring case.
func (lx *Lexicon) Canonical(name string) (Entry, bool) {
	for _, e := range lx.entries {
		if strings.EqualFold(e.Canonical, name) {
			return e, true
		}
	}
	return Entry{}, false
}

// LangOf returns the language code of the first script block containing r.
func (lx *Lexicon) LangOf(r rune) (string, bool) {
	for _, s := range lx.scripts {
		if r >= s.Lo && r <= s.Hi {
			return s.Lang, true
		}
	}
	return "", false
}

func (lx *Lexicon) IsFiller(word string) bool {
	return lx.fillers.Contains(strings.ToLower(word))
}

// ContainsViolence reports whether any violence keyword occurs in text as a
// case-insensitive substring.
func (lx *Lexicon) ContainsViolence(text string) bool {
	if lx.violenceMatcher == nil || text == "" {
		return false
	}
	return len(lx.violenceMatcher.MatchThreadSafe([]byte(strings.ToLower(text)))) > 0
}
