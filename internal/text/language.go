package text

import "github.com/abadojack/whatlanggo"

// Language is the detected natural language of a corpus.
type Language struct {
	Code       string  `json:"code"` // ISO 639-1, empty when undetected
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Reliable   bool    `json:"reliable"`
}

// IsEnglish reports whether the corpus was detected as English.
func (l Language) IsEnglish() bool {
	return l.Code == "en"
}

// DetectLanguage guesses the language of s. Detection is informational only;
// the scorers treat every input as English.
//
// Only reliable guesses are reported. When the best two candidates tie,
// whatlanggo reports zero confidence and picks one in map order, so anything
// below the reliability threshold yields the zero Language.
func DetectLanguage(s string) Language {
	info := whatlanggo.Detect(s)
	if info.Lang == -1 || info.Confidence <= 0 || !info.IsReliable() {
		return Language{}
	}
	return Language{
		Code:       info.Lang.Iso6391(),
		Name:       info.Lang.String(),
		Confidence: info.Confidence,
		Reliable:   true,
	}
}
