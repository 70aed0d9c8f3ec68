// Package classifier calls an OpenAI-compatible API for comment
// sentiment classification and draft summarization.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	summaryModel  = "gpt-4.1"
	analysisModel = "gpt-5-nano"

	analysisInstructions = `You are a sentiment analyst for reader feedback on written drafts.
Given a comment, respond with a JSON object containing exactly these keys:
"sentiment_analysis": one of "positive", "neutral" or "negative";
"sentiment_score": a number between 0 and 1 as a string, where 1 is fully positive and 0 fully negative;
"sentiment_keywords": a comma-separated list of the words that most influence the sentiment.`

	summaryInstructions = `Summarize the following draft in one short paragraph.
Write a title-like summary suitable as a display name for the draft. Respond with the summary text only.`
)

// Sentiment is the classifier output for a single comment.
type Sentiment struct {
	Label    string `json:"sentiment_analysis"`
	Score    string `json:"sentiment_score"`
	Keywords string `json:"sentiment_keywords"`
}

// Client calls the classification and summarization models.
type Client struct {
	api *openai.Client
}

// New creates a classifier client with the given API key.
// baseURL overrides the API endpoint; empty means the public API.
func New(apiKey, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &Client{api: openai.NewClientWithConfig(cfg)}, nil
}

// Classify returns the sentiment of a single comment text.
func (c *Client) Classify(ctx context.Context, text string) (*Sentiment, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: analysisModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analysisInstructions},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("classification call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("classification call: empty response")
	}

	var s Sentiment
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &s); err != nil {
		return nil, fmt.Errorf("decoding classification: %w", err)
	}
	s.Label = strings.ToLower(strings.TrimSpace(s.Label))

	return &s, nil
}

// Summarize returns a short summary of the draft body.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: summaryModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summaryInstructions},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	})
	if err != nil {
		return "", fmt.Errorf("summarization call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("summarization call: empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
