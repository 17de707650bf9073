package extract

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Languages the detector distinguishes between. Restricting the set keeps
// detection reliable on short ad texts.
var detectorLanguages = []lingua.Language{
	lingua.English,
	lingua.German,
	lingua.French,
	lingua.Spanish,
	lingua.Dutch,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Polish,
	lingua.Swedish,
	lingua.Russian,
}

type languageDetector interface {
	Detect(text string) (string, bool)
}

type linguaDetector struct {
	detector lingua.LanguageDetector
}

func newLinguaDetector() *linguaDetector {
	return &linguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectorLanguages...).
			Build(),
	}
}

// Detect returns the lowercase ISO 639-1 code of the text's language.
func (d *linguaDetector) Detect(text string) (string, bool) {
	language, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(language.IsoCode639_1().String()), true
}
