// Package text holds the tokenizer, syllable counter and sentence splitter
// shared by the scorers.
package text

import (
	"regexp"
	"strings"
	"unicode"
)

// wordPattern matches runs of letters, digits and underscores. Apostrophes and
// hyphens split words ("don't" yields "don" and "t").
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Words returns the word tokens of s in order, preserving case.
func Words(s string) []string {
	return wordPattern.FindAllString(s, -1)
}

// LowerWords returns the word tokens of the lowercased s.
func LowerWords(s string) []string {
	return Words(strings.ToLower(s))
}

// WordCount returns the number of word tokens in s.
func WordCount(s string) int {
	return len(wordPattern.FindAllStringIndex(s, -1))
}

// Join concatenates sentences with single spaces, the form the corpus-level
// scorers tokenize.
func Join(sentences []string) string {
	return strings.Join(sentences, " ")
}

// WordIndexAt returns the zero-based index of the word containing the rune
// offset in s, or of the next word when the offset falls between words.
// Offsets past the last word return the word count.
func WordIndexAt(s string, runeOffset int) int {
	byteOffset := len(s)
	n := 0
	for i := range s {
		if n == runeOffset {
			byteOffset = i
			break
		}
		n++
	}

	idx := 0
	for _, loc := range wordPattern.FindAllStringIndex(s, -1) {
		if loc[1] > byteOffset {
			break
		}
		idx++
	}
	return idx
}

// CountSyllables estimates the syllables in word by counting vowel groups
// (a, e, i, o, u, y), dropping one for a trailing silent "e". Every word has
// at least one syllable.
func CountSyllables(word string) int {
	word = strings.ToLower(word)

	count := 0
	prevVowel := false
	for _, r := range word {
		vowel := isVowel(r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	if strings.HasSuffix(word, "e") {
		count--
	}
	return max(1, count)
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// SplitSentences breaks free text into sentences at terminal punctuation
// (. ! ?) followed by whitespace or end of input, and at line breaks.
// Surrounding whitespace is trimmed and empty fragments are dropped.
func SplitSentences(s string) []string {
	var (
		out     []string
		current strings.Builder
	)
	flush := func() {
		if t := strings.TrimSpace(current.String()); t != "" {
			out = append(out, t)
		}
		current.Reset()
	}

	runes := []rune(s)
	for i, r := range runes {
		if r == '\n' || r == '\r' {
			flush()
			continue
		}
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i+1 == len(runes) || unicode.IsSpace(runes[i+1]) {
				flush()
			}
		}
	}
	flush()
	return out
}
