package analysis

import (
	"strings"
	"unicode/utf8"
)

// ReadabilityScore is a Flesch Reading Ease score with its
// categorical level and Flesch-Kincaid grade.
type ReadabilityScore struct {
	Score      float64 `json:"score"`
	Level      string  `json:"level"`
	GradeLevel float64 `json:"grade_level"`
}

// defaultReadability is reported when the text is too short to score.
var defaultReadability = ReadabilityScore{Score: 50.0, Level: "standard", GradeLevel: 8.0}

// Readability scores a draft body. Texts under 10 characters, or
// texts the formulas cannot score, get the fixed standard default
// rather than an error.
func Readability(text string) ReadabilityScore {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < 10 {
		return defaultReadability
	}

	score, grade, ok := fleschScores(text)
	if !ok {
		return defaultReadability
	}

	return ReadabilityScore{
		Score:      round1(score),
		Level:      readabilityLevel(score),
		GradeLevel: round1(grade),
	}
}

// readabilityLevel buckets a Flesch Reading Ease score. Bounds are
// inclusive: exactly 80 is "easy".
func readabilityLevel(score float64) string {
	switch {
	case score >= 90:
		return "very-easy"
	case score >= 80:
		return "easy"
	case score >= 70:
		return "fairly-easy"
	case score >= 60:
		return "standard"
	case score >= 50:
		return "fairly-difficult"
	case score >= 30:
		return "difficult"
	default:
		return "very-difficult"
	}
}
