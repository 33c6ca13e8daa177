package summary

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/dailypress/newsroom/internal/pkg/apperr"
)

const enhanceSystemPrompt = `You are a content enhancer for a daily newsroom.
Complete the draft given by the user and return simple, clear copy.
Return only a JSON object with "title" and "content" fields, nothing else.`

// enhanceSchema constrains the Gemini response to the draft shape.
var enhanceSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"title":   {"type": "string"},
		"content": {"type": "string"}
	},
	"required": ["title", "content"]
}`)

// EnhancedDraft is the polished submission returned to contributors.
type EnhancedDraft struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// JSONGenerator is the structured-output seam; satisfied by *Client.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, system, prompt string, schema json.RawMessage) (string, error)
}

// Enhance turns a rough draft prompt into a title/content pair. Unlike the
// issue summary there is no fallback: callers asked for enhanced copy and get
// the upstream error when it cannot be produced.
func Enhance(ctx context.Context, gen JSONGenerator, prompt string) (*EnhancedDraft, error) {
	raw, err := gen.GenerateJSON(ctx, enhanceSystemPrompt, prompt, enhanceSchema)
	if err != nil {
		return nil, err
	}

	var draft EnhancedDraft
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &draft); err != nil {
		return nil, &apperr.UpstreamError{
			Service: "gemini",
			Message: "completion is not the expected JSON shape",
			Detail:  raw,
			Err:     err,
		}
	}
	if draft.Title == "" || draft.Content == "" {
		return nil, &apperr.UpstreamError{
			Service: "gemini",
			Message: "completion is missing title or content",
			Detail:  raw,
		}
	}
	return &draft, nil
}
