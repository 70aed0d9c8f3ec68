// Package analysis turns a draft and its annotated comments into
// aggregate feedback metrics. All functions are pure over their inputs.
package analysis

import (
	"math"
	"strconv"
	"strings"

	"github.com/tcravens/redpen/internal/comment"
)

// SentimentSummary is the aggregate sentiment across a comment set.
type SentimentSummary struct {
	Score      float64 `json:"score"`
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Ratio is the critical/supportive/neutral breakdown of a comment set.
type Ratio struct {
	Critical             int     `json:"critical"`
	Supportive           int     `json:"supportive"`
	Neutral              int     `json:"neutral"`
	Ratio                string  `json:"ratio"`
	CriticalPercentage   float64 `json:"critical_percentage"`
	SupportivePercentage float64 `json:"supportive_percentage"`
}

// OverallSentiment averages the normalized sentiment scores of the
// comments. Confidence falls with the spread of opinions.
func OverallSentiment(comments []*comment.Comment) SentimentSummary {
	if len(comments) == 0 {
		return SentimentSummary{Score: 0.0, Label: "neutral", Confidence: 0.0}
	}

	scores := make([]float64, len(comments))
	for i, c := range comments {
		scores[i] = normalizedScore(c.SentimentScore)
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	mean := sum / float64(len(scores))

	var variance float64
	if len(scores) > 1 {
		for _, s := range scores {
			variance += (s - mean) * (s - mean)
		}
		variance /= float64(len(scores))
	}

	label := "neutral"
	if mean > 0.1 {
		label = "positive"
	} else if mean < -0.1 {
		label = "negative"
	}

	return SentimentSummary{
		Score:      round3(mean),
		Label:      label,
		Confidence: round3(math.Max(0, 1-variance)),
	}
}

// FeedbackRatio buckets every comment as critical, supportive or
// neutral and reports the balance.
func FeedbackRatio(comments []*comment.Comment) Ratio {
	var critical, supportive, neutral int

	for _, c := range comments {
		switch bucketFor(c) {
		case "critical":
			critical++
		case "supportive":
			supportive++
		default:
			neutral++
		}
	}

	var ratio string
	switch {
	case critical > 0 && supportive > 0:
		ratio = strconv.Itoa(supportive) + ":" + strconv.Itoa(critical)
	case supportive > 0:
		ratio = "All Supportive"
	case critical > 0:
		ratio = "All Critical"
	default:
		ratio = "All Neutral"
	}

	total := len(comments)
	var criticalPct, supportivePct float64
	if total > 0 {
		criticalPct = round1(float64(critical) / float64(total) * 100)
		supportivePct = round1(float64(supportive) / float64(total) * 100)
	}

	return Ratio{
		Critical:             critical,
		Supportive:           supportive,
		Neutral:              neutral,
		Ratio:                ratio,
		CriticalPercentage:   criticalPct,
		SupportivePercentage: supportivePct,
	}
}

// bucketFor resolves a comment's sentiment signal: the annotated
// label when present, otherwise derived from the numeric score,
// otherwise neutral.
func bucketFor(c *comment.Comment) string {
	value := strings.ToLower(strings.TrimSpace(c.SentimentLabel))

	if value == "" && strings.TrimSpace(c.SentimentScore) != "" {
		if score, err := strconv.ParseFloat(strings.TrimSpace(c.SentimentScore), 64); err == nil {
			value = labelFromScore(score)
		}
	}

	switch value {
	case "negative", "critical", "bad":
		return "critical"
	case "positive", "supportive", "good":
		return "supportive"
	default:
		return "neutral"
	}
}

// labelFromScore derives a tri-state label from a raw score, sniffing
// whether it sits on the 0..1 or the signed -1..1 scale.
func labelFromScore(score float64) string {
	if score >= 0 && score <= 1 {
		switch {
		case score > 0.6:
			return "positive"
		case score < 0.4:
			return "negative"
		default:
			return "neutral"
		}
	}
	switch {
	case score > 0.1:
		return "positive"
	case score < -0.1:
		return "negative"
	default:
		return "neutral"
	}
}

// normalizedScore maps a raw score string onto the signed -1..1 scale.
// Missing or unparseable scores contribute 0.
func normalizedScore(raw string) float64 {
	s, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0.0
	}
	if s >= 0 && s <= 1 {
		return (s - 0.5) * 2
	}
	return s
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
