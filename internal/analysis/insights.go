package analysis

import "github.com/tcravens/redpen/internal/comment"

const maxInsights = 4

// Insights produces a short prioritized list of recommendations from
// a draft body and its comments. Rules run in a fixed order and the
// result is capped at four entries.
func Insights(comments []*comment.Comment, draftBody string) []string {
	if len(comments) == 0 {
		return []string{"No feedback yet - consider sharing your draft with more reviewers"}
	}

	var insights []string

	sentiment := OverallSentiment(comments)
	ratio := FeedbackRatio(comments)
	length := DraftLength(draftBody)

	switch {
	case sentiment.Score < -0.3:
		insights = append(insights, "Strong negative sentiment detected - review and address major concerns")
	case sentiment.Score < -0.1:
		insights = append(insights, "Mixed feedback - analyze critical comments for improvement areas")
	case sentiment.Score > 0.3:
		insights = append(insights, "Excellent reception! Consider finalizing the draft")
	}

	if ratio.Critical > ratio.Supportive*2 {
		insights = append(insights, "High critical feedback - prioritize addressing recurring concerns")
	} else if ratio.Supportive > ratio.Critical*3 {
		insights = append(insights, "Strong positive reception - ready for next phase")
	}

	if len(comments) < 3 {
		insights = append(insights, "Seek more reviewers for comprehensive feedback")
	} else if len(comments) > 20 {
		insights = append(insights, "Rich feedback collected - analyze patterns for improvements")
	}

	if length.Words < 100 {
		insights = append(insights, "Consider adding more detailed content and examples")
	} else if length.Words > 2000 {
		insights = append(insights, "Consider breaking into sections for better readability")
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	if len(insights) == 0 {
		return []string{"Analysis completed successfully"}
	}

	return insights
}
