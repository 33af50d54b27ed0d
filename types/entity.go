package types

import (
	"strings"
	"unicode"
)

// Label is the named-entity category.
type Label string

const (
	PER  Label = "PER"
	ORG  Label = "ORG"
	GPE  Label = "GPE"
	LOC  Label = "LOC"
	MISC Label = "MISC"
)

// Sensitive reports whether mentions of this label raise moderation risk.
func (l Label) Sensitive() bool {
	switch l {
	case PER, ORG, GPE, LOC:
		return true
	}
	return false
}

// Source records which detection pass produced an entity.
type Source string

const (
	SourceModel      Source = "model"
	SourceDictionary Source = "dictionary"
	SourceHashtag    Source = "hashtag"
	SourceMention    Source = "mention"
)

// Entity represents a named entity detected in the text.
type Entity struct {
	Text         string  `json:"text" firestore:"text"`
	Label        Label   `json:"label" firestore:"label"`
	Confidence   float64 `json:"confidence" firestore:"confidence"`
	Source       Source  `json:"source" firestore:"source"`
	IdentifiedAs string  `json:"identified_as,omitempty" firestore:"identifiedAs,omitempty"`
}

// Key is the de-duplication key for entity text: lower-cased with all whitespace removed.
func Key(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseLabel maps the label vocabularies used by NER backends (spaCy, CoNLL BIO
// tags, Google Natural Language, prose) onto Label. Unknown labels become MISC.
func ParseLabel(raw string) Label {
	l := strings.ToUpper(strings.TrimSpace(raw))
	if len(l) > 2 && (l[:2] == "B-" || l[:2] == "I-") {
		l = l[2:]
	}
	switch l {
	case "PER", "PERSON":
		return PER
	case "ORG", "ORGANIZATION", "ORGANISATION":
		return ORG
	case "GPE":
		return GPE
	case "LOC", "LOCATION", "FAC", "ADDRESS":
		return LOC
	}
	return MISC
}
