package score

import (
	"strings"
	"unicode"

	"github.com/pemistahl/lingua-go"
)

// Segmenter counts semantic units (words or syllables) in text.
// It is a pluggable capability so that tests can substitute a trivial
// splitter and callers can pick a language-appropriate counter.
type Segmenter interface {
	Count(text string) int
}

// SegmenterFunc adapts a plain function to the Segmenter interface
type SegmenterFunc func(text string) int

// Count implements Segmenter
func (f SegmenterFunc) Count(text string) int {
	return f(text)
}

// WordSegmenter counts maximal runs of letters and digits. For
// space-delimited languages (including Vietnamese, where syllables are
// space-separated) this approximates the syllable/word count.
type WordSegmenter struct{}

// NewWordSegmenter creates a word-run segmenter
func NewWordSegmenter() *WordSegmenter {
	return &WordSegmenter{}
}

// Count implements Segmenter
func (s *WordSegmenter) Count(text string) int {
	count := 0
	inToken := false
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			if !inToken {
				count++
				inToken = true
			}
		} else {
			inToken = false
		}
	}
	return count
}

// RuneSegmenter counts each ideographic rune as one unit and falls back
// to word runs for everything else. Appropriate for CJK text where
// words are not space-delimited.
type RuneSegmenter struct{}

// NewRuneSegmenter creates an ideograph-aware segmenter
func NewRuneSegmenter() *RuneSegmenter {
	return &RuneSegmenter{}
}

// Count implements Segmenter
func (s *RuneSegmenter) Count(text string) int {
	count := 0
	inToken := false
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r) || unicode.Is(unicode.Hiragana, r) ||
			unicode.Is(unicode.Katakana, r) || unicode.Is(unicode.Hangul, r):
			count++
			inToken = false
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			if !inToken {
				count++
				inToken = true
			}
		default:
			inToken = false
		}
	}
	return count
}

// detectorLanguages are the languages the auto segmenter distinguishes
var detectorLanguages = []lingua.Language{
	lingua.English,
	lingua.Vietnamese,
	lingua.French,
	lingua.Spanish,
	lingua.German,
	lingua.Chinese,
	lingua.Japanese,
	lingua.Korean,
}

// AutoSegmenter detects the language of each text and delegates to the
// appropriate counter: ideograph counting for CJK, word runs otherwise.
type AutoSegmenter struct {
	detector lingua.LanguageDetector
	word     *WordSegmenter
	ideo     *RuneSegmenter
}

// NewAutoSegmenter builds a language-detecting segmenter. Construction
// is relatively expensive (language models are loaded); build once and
// reuse.
func NewAutoSegmenter() *AutoSegmenter {
	detector := lingua.NewLanguageDetectorBuilder().
		FromLanguages(detectorLanguages...).
		Build()
	return &AutoSegmenter{
		detector: detector,
		word:     NewWordSegmenter(),
		ideo:     NewRuneSegmenter(),
	}
}

// Count implements Segmenter
func (s *AutoSegmenter) Count(text string) int {
	if lang, ok := s.detector.DetectLanguageOf(text); ok {
		switch lang {
		case lingua.Chinese, lingua.Japanese, lingua.Korean:
			return s.ideo.Count(text)
		}
	}
	return s.word.Count(text)
}

// ForLanguage returns the segmenter for an explicit language tag
// (BCP 47 primary subtag), bypassing detection. Unknown tags get the
// word-run segmenter.
func ForLanguage(tag string) Segmenter {
	switch strings.ToLower(tag) {
	case "zh", "ja", "ko":
		return NewRuneSegmenter()
	default:
		return NewWordSegmenter()
	}
}
