package text

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "I am happy today.", []string{"I", "am", "happy", "today"}},
		{"apostrophe splits", "She don't like it", []string{"She", "don", "t", "like", "it"}},
		{"digits and underscore", "room_42 has 3 beds", []string{"room_42", "has", "3", "beds"}},
		{"unicode letters", "café naïve", []string{"café", "naïve"}},
		{"only punctuation", "?!...", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Words(tt.input))
		})
	}
}

func TestLowerWordsAndCount(t *testing.T) {
	req := require.New(t)
	req.Equal([]string{"the", "cat", "the"}, LowerWords("The cat, THE"))
	req.Equal(3, WordCount("The cat, THE"))
	req.Equal(0, WordCount("  "))
}

func TestWordIndexAt(t *testing.T) {
	s := "yesterday i go to the store."
	req := require.New(t)
	req.Equal(0, WordIndexAt(s, 0))
	// Offset 11 is the space before "go"; the next word is index 2.
	req.Equal(2, WordIndexAt(s, 11))
	req.Equal(2, WordIndexAt(s, 12))
	req.Equal(2, WordIndexAt(s, 13))
	req.Equal(6, WordIndexAt(s, 100))
}

func TestCountSyllables(t *testing.T) {
	tests := []struct {
		word string
		want int
	}{
		{"cat", 1},
		{"happy", 2},
		{"beautiful", 3},
		{"make", 1},
		{"the", 1},
		{"queue", 1},
		{"rhythm", 1},
		{"LEARNING", 2},
		{"", 1},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := CountSyllables(tt.word); got != tt.want {
				t.Errorf("CountSyllables(%q) = %d, want %d", tt.word, got, tt.want)
			}
		})
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "terminal punctuation",
			input: "I go home. Do you? Yes!",
			want:  []string{"I go home.", "Do you?", "Yes!"},
		},
		{
			name:  "decimal stays intact",
			input: "It costs 3.50 dollars. Cheap.",
			want:  []string{"It costs 3.50 dollars.", "Cheap."},
		},
		{
			name:  "line breaks",
			input: "first line\n\nsecond line",
			want:  []string{"first line", "second line"},
		},
		{
			name:  "trailing fragment",
			input: "Done. and then",
			want:  []string{"Done.", "and then"},
		},
		{
			name:  "blank",
			input: "   \n ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, SplitSentences(tt.input))
		})
	}
}

func TestDetectLanguage(t *testing.T) {
	lang := DetectLanguage("The weather is beautiful today and I would like to go for a long walk in the park with my friends.")
	require.True(t, lang.IsEnglish(), "got %+v", lang)

	require.True(t, lang.Reliable)
	require.Greater(t, lang.Confidence, 0.0)

	for _, in := range []string{"12345 !!!", "a", ""} {
		require.Equal(t, Language{}, DetectLanguage(in), "input %q", in)
	}
}

func TestDetectLanguage_Deterministic(t *testing.T) {
	for _, in := range []string{"a", "I am happy today. ok", "Der Hund schläft.", "?!"} {
		want := DetectLanguage(in)
		for range 50 {
			require.Equal(t, want, DetectLanguage(in), "input %q", in)
		}
	}
}
