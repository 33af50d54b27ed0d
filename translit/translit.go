// Package translit detects the script of a surface string and converts
// non-Latin proper nouns into an English form usable as a lookup query.
package translit

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/sirupsen/logrus"

	"go-pulse/lexicon"
	"go-pulse/metrics"
)

const (
	// Letters below this code point (Basic Latin through Latin Extended-B) count as Latin.
	latinCeiling = 0x0250
	fallbackLang = "hi"
	targetLang   = "en"

	defaultTimeout = 3 * time.Second
)

// Translator translates text between two language codes.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

type Transliterator struct {
	translator Translator
	lx         *lexicon.Lexicon
	timeout    time.Duration
	log        logrus.FieldLogger
}

// New creates a Transliterator. A nil translator makes ToEnglish an identity for
// non-Latin input too.
func New(translator Translator, lx *lexicon.Lexicon, timeout time.Duration, log logrus.FieldLogger) *Transliterator {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if lx == nil {
		lx = lexicon.Default()
	}
	return &Transliterator{translator: translator, lx: lx, timeout: timeout, log: log}
}

// IsLatinDominant reports whether more than half of the letters in s are Latin.
// Strings without letters are treated as Latin.
func IsLatinDominant(s string) bool {
	var letters, latin int
	for _, r := range s {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if r < latinCeiling {
			latin++
		}
	}
	if letters == 0 {
		return true
	}
	return float64(latin)/float64(letters) > 0.5
}

// DetectScript returns the language code of the first rune in s that falls in
// a known script block, or the fallback code when none does.
func DetectScript(lx *lexicon.Lexicon, s string) string {
	for _, r := range s {
		if lang, ok := lx.LangOf(r); ok {
			return lang
		}
	}
	return fallbackLang
}

// ToEnglish returns s unchanged when it is Latin-dominant or when translation
// fails; otherwise the translation with filler words removed.
func (t *Transliterator) ToEnglish(ctx context.Context, s string) string {
	if IsLatinDominant(s) || t.translator == nil {
		return s
	}

	lang := DetectScript(t.lx, s)

	callCtx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	translated, err := t.translator.Translate(callCtx, s, lang, targetLang)
	if err != nil {
		metrics.ObserveUpstream(metrics.UpstreamTranslate, metrics.OutcomeError)
		t.log.WithError(err).WithField("lang", lang).Debug("translation failed, keeping surface form")
		return s
	}
	translated = strings.TrimSpace(translated)
	if translated == "" {
		metrics.ObserveUpstream(metrics.UpstreamTranslate, metrics.OutcomeMiss)
		return s
	}
	metrics.ObserveUpstream(metrics.UpstreamTranslate, metrics.OutcomeOK)

	return t.stripFillers(translated)
}

func (t *Transliterator) stripFillers(s string) string {
	words := strings.Fields(s)
	kept := words[:0:0]
	for _, w := range words {
		if t.lx.IsFiller(w) {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return s
	}
	return strings.Join(kept, " ")
}
