package summary

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2/log"
)

// NoNewsSummary is returned when the active pool is empty.
const NoNewsSummary = "Latest News | Updates"

const issueSystemPrompt = `You are a newspaper editor creating a concise issue summary.
Given the news content, generate 3-5 main topics in exactly this format:
<Topic 1> | <Topic 2> | <Topic 3> | <Topic 4>

Each topic should be 1-3 words only, covering major news themes.
Don't include any explanations or additional text, just the topics in the format above.
The topics will be used as "INSIDE THE ISSUE:" header.`

// Headline is the slice of each news item the summarizer sees. Image blobs
// and body text stay out of the prompt.
type Headline struct {
	Title    string `json:"title"`
	Category string `json:"-"`
}

// TextGenerator is the completion seam; satisfied by *Client.
type TextGenerator interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}

// Service produces the issue topic line.
type Service struct {
	gen TextGenerator
}

// NewService creates a summary service over the given generator.
func NewService(gen TextGenerator) *Service {
	return &Service{gen: gen}
}

// IssueSummary returns the "topic | topic | topic" line for the masthead.
// An upstream failure falls back to a locally derived line; this method only
// errors on programming mistakes, never on Gemini flakiness.
func (s *Service) IssueSummary(ctx context.Context, headlines []Headline) string {
	if len(headlines) == 0 {
		return NoNewsSummary
	}

	prompt, err := json.Marshal(headlines)
	if err != nil {
		log.Errorf("[Summary] marshal headlines: %v", err)
		return Fallback(headlines)
	}

	text, err := s.gen.GenerateText(ctx, issueSystemPrompt, string(prompt))
	if err != nil {
		log.Warnf("[Summary] generation failed, using fallback: %v", err)
		return Fallback(headlines)
	}

	cleaned := Sanitize(text)
	if cleaned == "" {
		return Fallback(headlines)
	}
	return cleaned
}

// Sanitize reduces an untrusted completion to the single topic line. Multi
// line output is scanned for the first line containing the "|" delimiter and
// an echoed "INSIDE THE ISSUE:" header is stripped.
func Sanitize(text string) string {
	s := strings.TrimSpace(text)
	if strings.Contains(s, "\n") {
		for _, line := range strings.Split(s, "\n") {
			if strings.Contains(line, "|") {
				s = strings.TrimSpace(line)
				break
			}
		}
	}
	if idx := strings.Index(strings.ToUpper(s), "INSIDE THE ISSUE:"); idx >= 0 {
		s = strings.TrimSpace(s[idx+len("INSIDE THE ISSUE:"):])
	}
	return s
}

// Fallback derives a topic line from categories or title keywords when the
// AI path is unavailable.
func Fallback(headlines []Headline) string {
	seen := map[string]bool{}
	var topics []string
	add := func(topic string) {
		if topic == "" || seen[topic] {
			return
		}
		seen[topic] = true
		topics = append(topics, topic)
	}

	for _, h := range headlines {
		if len(topics) >= 4 {
			break
		}
		if h.Category != "" && h.Category != "other" {
			add(h.Category)
			continue
		}
		for _, word := range strings.Fields(h.Title) {
			if len(word) > 4 && !isCommonWord(word) {
				add(strings.Trim(word, ".,!?;:"))
				break
			}
		}
	}

	if len(topics) == 0 {
		return "Latest News | Updates | Announcements"
	}
	return strings.Join(topics, " | ")
}

func isCommonWord(word string) bool {
	switch strings.ToLower(word) {
	case "the", "and", "for", "with", "that", "this", "from",
		"have", "has", "been", "news", "today", "latest":
		return true
	}
	return false
}
