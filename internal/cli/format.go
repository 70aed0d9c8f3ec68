package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/tcravens/redpen/internal/auth"
	"github.com/tcravens/redpen/internal/comment"
	"github.com/tcravens/redpen/internal/draft"
	"github.com/tcravens/redpen/internal/report"
)

// printJSON marshals v as indented JSON and writes it to stdout.
func printJSON(v interface{}) error {
	return printJSONTo(os.Stdout, v)
}

// printJSONTo marshals v as indented JSON and writes it to w.
func printJSONTo(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printDraftSummary prints a single draft summary in text format.
func printDraftSummary(d *draft.Draft) {
	fmt.Printf("Draft %s\n", d.ID)
	fmt.Printf("  Title:    %s\n", d.Title())
	fmt.Printf("  Created:  %s\n", d.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Printf("  Length:   %d characters\n", len(d.Body))
}

// printDraftTable prints a list of drafts as a formatted table.
func printDraftTable(drafts []*draft.Draft) error {
	if len(drafts) == 0 {
		fmt.Println("No drafts found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tTITLE\tCREATED"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t-----\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, d := range drafts {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n",
			d.ID, truncate(d.Title(), 50), d.CreatedAt.Format("2006-01-02 15:04")); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Printf("\nTotal: %d drafts\n", len(drafts))
	return nil
}

// printCommentList prints comments in text format.
func printCommentList(comments []*comment.Comment) {
	if len(comments) == 0 {
		fmt.Println("No comments.")
		return
	}

	for _, c := range comments {
		label := c.SentimentLabel
		if label == "" {
			label = "unclassified"
		}
		fmt.Printf("[%s] %s (%s)\n  %s\n\n",
			c.CreatedAt.Format("2006-01-02 15:04"), c.ID, label, c.Text)
	}
}

// printCommentSingle prints a single comment in text format.
func printCommentSingle(c *comment.Comment) {
	fmt.Printf("Comment added (%s).\n  %s\n", c.SentimentLabel, c.Text)
	if c.SentimentKeywords != "" {
		fmt.Printf("  Keywords: %s\n", c.SentimentKeywords)
	}
}

// printKeyTable prints API keys as a formatted table.
func printKeyTable(keys []auth.APIKey) {
	if len(keys) == 0 {
		fmt.Println("No API keys.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tOWNER\tPREFIX\tLAST USED")
	for _, k := range keys {
		lastUsed := "never"
		if k.LastUsedAt != nil {
			lastUsed = k.LastUsedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s…\t%s\n", k.ID, k.Name, k.OwnerID, k.KeyPrefix, lastUsed)
	}
	if err := w.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: flushing table: %v\n", err)
	}
}

// printReport prints a feedback report in text format.
func printReport(r *report.Report) {
	fmt.Printf("Feedback Report: %s\n", r.DraftInfo.Title)
	fmt.Printf("Draft %s, created %s\n\n", r.DraftInfo.ID, r.DraftInfo.CreatedDate)

	fmt.Printf("Comments:     %d\n", r.CommentCount)
	fmt.Printf("Sentiment:    %s (score %.3f, confidence %.3f)\n",
		r.OverallSentiment.Label, r.OverallSentiment.Score, r.OverallSentiment.Confidence)
	fmt.Printf("Ratio:        %s (%d supportive / %d critical / %d neutral)\n",
		r.FeedbackRatio.Ratio, r.FeedbackRatio.Supportive, r.FeedbackRatio.Critical, r.FeedbackRatio.Neutral)
	fmt.Printf("Readability:  %.1f (%s, grade %.1f)\n",
		r.ReadabilityScore.Score, r.ReadabilityScore.Level, r.ReadabilityScore.GradeLevel)
	fmt.Printf("Length:       %d words, %d sentences (%.1f words/sentence)\n",
		r.DraftLength.Words, r.DraftLength.Sentences, r.DraftLength.AvgWordsPerSentence)

	if len(r.ActionableInsights) > 0 {
		fmt.Println("\nInsights:")
		for _, insight := range r.ActionableInsights {
			fmt.Printf("  - %s\n", insight)
		}
	}
}

// truncate shortens a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
