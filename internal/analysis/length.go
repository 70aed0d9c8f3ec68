package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// LengthMetrics describes the size and density of a draft body.
type LengthMetrics struct {
	Words               int     `json:"words"`
	Characters          int     `json:"characters"`
	Sentences           int     `json:"sentences"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
}

var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// DraftLength computes word, character and sentence counts for a
// draft body. The sentence count is floored at 1 for non-empty text
// so per-sentence averages never divide by zero.
func DraftLength(text string) LengthMetrics {
	if text == "" {
		return LengthMetrics{}
	}

	words := len(strings.Fields(text))
	characters := utf8.RuneCountInString(text)

	sentences := 0
	for _, segment := range sentenceSplit.Split(strings.TrimSpace(text), -1) {
		if strings.TrimSpace(segment) != "" {
			sentences++
		}
	}
	if sentences < 1 {
		sentences = 1
	}

	return LengthMetrics{
		Words:               words,
		Characters:          characters,
		Sentences:           sentences,
		AvgWordsPerSentence: round1(float64(words) / float64(sentences)),
	}
}
