package lexicon

import "go-pulse/types"

// knownEntities is ordered: when two keys resolve to the same canonical name,
// the earlier key wins.
var knownEntities = []Entry{
	// People
	{Key: "raga", Canonical: "Rahul Gandhi", Label: types.PER},
	{Key: "pappu", Canonical: "Rahul Gandhi", Label: types.PER},
	{Key: "राहुल गांधी", Canonical: "Rahul Gandhi", Label: types.PER},
	{Key: "namo", Canonical: "Narendra Modi", Label: types.PER},
	{Key: "modiji", Canonical: "Narendra Modi", Label: types.PER},
	{Key: "feku", Canonical: "Narendra Modi", Label: types.PER},
	{Key: "मोदी", Canonical: "Narendra Modi", Label: types.PER},
	{Key: "didi", Canonical: "Mamata Banerjee", Label: types.PER},
	{Key: "kejri", Canonical: "Arvind Kejriwal", Label: types.PER},
	{Key: "केजरीवाल", Canonical: "Arvind Kejriwal", Label: types.PER},
	{Key: "yogi ji", Canonical: "Yogi Adityanath", Label: types.PER},
	{Key: "king kohli", Canonical: "Virat Kohli", Label: types.PER},
	{Key: "chiku", Canonical: "Virat Kohli", Label: types.PER},
	{Key: "thala", Canonical: "MS Dhoni", Label: types.PER},

	// Organisations
	{Key: "bjp", Canonical: "Bharatiya Janata Party", Label: types.ORG},
	{Key: "भाजपा", Canonical: "Bharatiya Janata Party", Label: types.ORG},
	{Key: "congi", Canonical: "Indian National Congress", Label: types.ORG},
	{Key: "कांग्रेस", Canonical: "Indian National Congress", Label: types.ORG},
	{Key: "isro", Canonical: "Indian Space Research Organisation", Label: types.ORG},
	{Key: "bcci", Canonical: "Board of Control for Cricket in India", Label: types.ORG},

	// Places
	{Key: "dilli", Canonical: "Delhi", Label: types.GPE},
	{Key: "दिल्ली", Canonical: "Delhi", Label: types.GPE},
	{Key: "bombay", Canonical: "Mumbai", Label: types.GPE},
	{Key: "मुंबई", Canonical: "Mumbai", Label: types.GPE},
	{Key: "bangalore", Canonical: "Bengaluru", Label: types.GPE},
	{Key: "भारत", Canonical: "India", Label: types.GPE},
}

// scriptRanges is scanned in order; the first block containing a rune decides the language.
var scriptRanges = []ScriptRange{
	{Lo: 0x0900, Hi: 0x097F, Lang: "hi"}, // Devanagari
	{Lo: 0x0980, Hi: 0x09FF, Lang: "bn"}, // Bengali
	{Lo: 0x0A00, Hi: 0x0A7F, Lang: "pa"}, // Gurmukhi
	{Lo: 0x0A80, Hi: 0x0AFF, Lang: "gu"},
	{Lo: 0x0B00, Hi: 0x0B7F, Lang: "or"},
	{Lo: 0x0B80, Hi: 0x0BFF, Lang: "ta"},
	{Lo: 0x0C00, Hi: 0x0C7F, Lang: "te"},
	{Lo: 0x0C80, Hi: 0x0CFF, Lang: "kn"},
	{Lo: 0x0D00, Hi: 0x0D7F, Lang: "ml"},
	{Lo: 0x0600, Hi: 0x06FF, Lang: "ur"}, // Arabic script, Urdu for this audience
	{Lo: 0x0400, Hi: 0x04FF, Lang: "ru"},
	{Lo: 0x0370, Hi: 0x03FF, Lang: "el"},
	{Lo: 0x0590, Hi: 0x05FF, Lang: "he"},
	{Lo: 0x0E00, Hi: 0x0E7F, Lang: "th"},
	{Lo: 0x3040, Hi: 0x30FF, Lang: "ja"}, // Hiragana + Katakana
	{Lo: 0xAC00, Hi: 0xD7AF, Lang: "ko"},
	{Lo: 0x4E00, Hi: 0x9FFF, Lang: "zh"},
}

var fillerWords = []string{
	"a", "an", "the",
	"of", "in", "on", "at", "to", "for", "by", "with", "from",
}

// violenceKeywords covers English, romanised Hindi and Devanagari.
var violenceKeywords = []string{
	"kill", "murder", "shoot", "rape", "die", "death", "attack", "bomb", "hang", "stab",
	"maar dalo", "maro", "hatya", "khoon",
	"मार डालो", "हत्या", "खून", "बम", "हमला",
}
