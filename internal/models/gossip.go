package models

import "strings"

// GossipContent is a normalized story returned by the generator
type GossipContent struct {
	Headline    string `json:"headline"`
	Summary     string `json:"summary"`
	Content     string `json:"content"`
	ImagePrompt string `json:"imagePrompt"`
}

// Paragraphs splits Content on blank lines, dropping empty paragraphs.
func (g GossipContent) Paragraphs() []string {
	normalized := strings.ReplaceAll(g.Content, "\r\n", "\n")

	var paragraphs []string
	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		p := strings.TrimSpace(strings.Join(current, "\n"))
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
		current = current[:0]
	}

	for _, line := range strings.Split(normalized, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		current = append(current, strings.TrimSpace(line))
	}
	flush()

	return paragraphs
}

// SavedGossip is a favorite persisted by the favorites store.
// Field names match the browser local-storage format.
type SavedGossip struct {
	ID          string `json:"id" validate:"required,max=128"`
	Celebrity   string `json:"celebrity" validate:"required,max=100"`
	Category    string `json:"category" validate:"required,category"`
	Headline    string `json:"headline" validate:"required"`
	Summary     string `json:"summary" validate:"required"`
	Content     string `json:"content" validate:"required"`
	ImagePrompt string `json:"imagePrompt,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Timestamp   int64  `json:"timestamp" validate:"gte=0"`
	Theme       string `json:"theme" validate:"omitempty,theme"`
}

// ApiKeyStatus reports whether the configured generator credential works
type ApiKeyStatus struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message"`
}

// GossipRequest is the input to a generation call
type GossipRequest struct {
	Celebrity string `json:"celebrity" validate:"required,max=100"`
	Category  string `json:"category" validate:"required,category"`
	Theme     string `json:"theme" validate:"omitempty,theme"`
}

// ImageRequest is the input to an image generation call
type ImageRequest struct {
	Prompt string `json:"prompt" validate:"required,max=2000"`
}

// APIKeyRequest carries a user-entered credential
type APIKeyRequest struct {
	Key string `json:"key" validate:"required"`
}
