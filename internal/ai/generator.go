package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/bilgisen/gossipd/internal/config"
)

// KeySource supplies the API key for each remote call
type KeySource interface {
	Key() (string, error)
}

// InlineImage is image data returned inline by the generator
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// Generator is the remote generative service
type Generator interface {
	// GenerateText returns the raw text of the first candidate.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// GenerateImage returns nil without error when the response has no image part.
	GenerateImage(ctx context.Context, prompt string) (*InlineImage, error)
	// Ping validates the current credential with a minimal request.
	Ping(ctx context.Context) error
}

// NewGenerator returns the backend selected by cfg.AIBackend
func NewGenerator(cfg *config.Config, keys KeySource) (Generator, error) {
	switch cfg.AIBackend {
	case "", "rest":
		return NewGeminiClient(keys, cfg.AIModel, cfg.AIImageModel, cfg.AITimeout), nil
	case "sdk":
		return NewSDKClient(keys, cfg.AIModel, cfg.AIImageModel, cfg.AITimeout), nil
	default:
		return nil, fmt.Errorf("unknown AI backend %q", cfg.AIBackend)
	}
}

// withTimeout bounds ctx when d is positive. Remote calls are otherwise unbounded.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
