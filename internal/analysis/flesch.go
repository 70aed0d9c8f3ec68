package analysis

import (
	"strings"
	"unicode"
)

// fleschScores computes the Flesch Reading Ease score and the
// Flesch-Kincaid grade level. ok is false when the text has no
// countable words or sentences.
func fleschScores(text string) (score, grade float64, ok bool) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0, 0, false
	}

	sentences := 0
	for _, segment := range sentenceSplit.Split(strings.TrimSpace(text), -1) {
		if strings.TrimSpace(segment) != "" {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	syllables := 0
	for _, w := range words {
		syllables += countSyllables(w)
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))

	score = 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	grade = 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59

	return score, grade, true
}

// countSyllables approximates syllables as vowel runs, dropping a
// silent trailing "e". Every word counts as at least one syllable.
func countSyllables(word string) int {
	var letters []rune
	for _, r := range strings.ToLower(word) {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range letters {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	// Trailing silent "e", except in "-le" endings (ta-ble).
	last := letters[len(letters)-1]
	if len(letters) > 2 && last == 'e' && !isVowel(letters[len(letters)-2]) && letters[len(letters)-2] != 'l' && count > 1 {
		count--
	}

	if count < 1 {
		count = 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
