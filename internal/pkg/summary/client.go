// Package summary produces the "inside this issue" topic line for the
// magazine masthead from the active pool's titles. The text comes from the
// Gemini REST API; when the call fails or returns nothing usable the package
// degrades to a locally derived topic line instead of failing the caller.
package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dailypress/newsroom/internal/pkg/apperr"
	"github.com/dailypress/newsroom/internal/pkg/env"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
const defaultModel = "gemini-2.0-flash"

// Client talks to the Gemini generateContent endpoint.
type Client struct {
	APIKey  string
	BaseURL string
	Model   string

	HTTPClient *http.Client
}

// NewClientFromEnv builds a client from GEMINI_* env keys with a hard request
// timeout so a slow upstream never blocks a magazine run indefinitely.
func NewClientFromEnv() *Client {
	return &Client{
		APIKey:  strings.TrimSpace(env.GetEnv("GEMINI_API_KEY", "")),
		BaseURL: strings.TrimRight(env.GetEnv("GEMINI_BASE_URL", defaultBaseURL), "/"),
		Model:   env.GetEnv("GEMINI_MODEL", defaultModel),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type generateRequest struct {
	SystemInstruction *contentBlock     `json:"system_instruction,omitempty"`
	Contents          []contentBlock    `json:"contents"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type contentBlock struct {
	Parts []contentPart `json:"parts"`
}

type contentPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string          `json:"response_mime_type,omitempty"`
	ResponseSchema   json.RawMessage `json:"response_schema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content contentBlock `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateText sends one system+user prompt pair and returns the raw
// completion text. The text is untrusted free text; callers sanitize it.
func (c *Client) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	return c.generate(ctx, system, prompt, nil)
}

// GenerateJSON sends a prompt constrained to a JSON response schema and
// returns the raw JSON text of the first candidate.
func (c *Client) GenerateJSON(ctx context.Context, system, prompt string, schema json.RawMessage) (string, error) {
	cfg := &generationConfig{
		ResponseMimeType: "application/json",
		ResponseSchema:   schema,
	}
	return c.generate(ctx, system, prompt, cfg)
}

func (c *Client) generate(ctx context.Context, system, prompt string, cfg *generationConfig) (string, error) {
	if c.APIKey == "" {
		return "", apperr.Upstream("gemini", "GEMINI_API_KEY is not configured", nil)
	}

	reqBody := generateRequest{
		Contents: []contentBlock{
			{Parts: []contentPart{{Text: prompt}}},
		},
		GenerationConfig: cfg,
	}
	if system != "" {
		reqBody.SystemInstruction = &contentBlock{Parts: []contentPart{{Text: system}}}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.BaseURL, c.Model, c.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", apperr.Upstream("gemini", "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", apperr.Upstream("gemini", "read response", err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &apperr.UpstreamError{
			Service: "gemini",
			Message: fmt.Sprintf("unexpected response (status %d)", resp.StatusCode),
			Detail:  string(body),
			Err:     err,
		}
	}
	if resp.StatusCode != http.StatusOK || parsed.Error != nil {
		msg := fmt.Sprintf("status %d", resp.StatusCode)
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", &apperr.UpstreamError{
			Service: "gemini",
			Message: msg,
			Detail:  string(body),
		}
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &apperr.UpstreamError{
			Service: "gemini",
			Message: "no completion in response",
			Detail:  string(body),
		}
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
