package extractors

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// minLanguageSampleLen guards against detecting a language from a few words.
const minLanguageSampleLen = 40

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// languageSet covers the languages the detector distinguishes between. A
// smaller set keeps model loading cheap and accuracy high.
var languageSet = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
	lingua.Swedish,
	lingua.Danish,
	lingua.Polish,
	lingua.Russian,
	lingua.Japanese,
	lingua.Chinese,
	lingua.Korean,
}

func languageDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(languageSet...).
			Build()
	})
	return detector
}

// Language returns the lower-cased ISO 639-1 code of the text's language, or
// empty when the sample is too short or detection is inconclusive.
func Language(text string) string {
	text = strings.TrimSpace(text)
	if len(text) < minLanguageSampleLen {
		return ""
	}
	lang, ok := languageDetector().DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return strings.ToLower(lang.IsoCode639_1().String())
}
