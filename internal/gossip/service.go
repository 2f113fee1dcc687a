package gossip

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bilgisen/gossipd/internal/ai"
	"github.com/bilgisen/gossipd/internal/logger"
	"github.com/bilgisen/gossipd/internal/models"
	"github.com/bilgisen/gossipd/internal/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Result is a generated story ready for display
type Result struct {
	ID          string               `json:"id"`
	Celebrity   string               `json:"celebrity"`
	Category    string               `json:"category"`
	Theme       string               `json:"theme"`
	Publication string               `json:"publication"`
	Label       string               `json:"label"`
	Gossip      models.GossipContent `json:"gossip"`
	Paragraphs  []string             `json:"paragraphs"`
	GeneratedAt int64                `json:"generatedAt"`
}

// Service generates stories and images through the remote generator
type Service struct {
	generator   ai.Generator
	normalizer  *ai.Normalizer
	images      storage.ImageStore
	placeholder string
	now         func() time.Time
	log         zerolog.Logger
}

func NewService(gen ai.Generator, images storage.ImageStore, placeholderURL string) *Service {
	return &Service{
		generator:   gen,
		normalizer:  ai.NewNormalizer(),
		images:      images,
		placeholder: placeholderURL,
		now:         time.Now,
		log:         logger.Component("gossip"),
	}
}

// Generate produces a story for req. Remote failures come back as *ai.Error;
// unusable responses are replaced by the fallback story and are not errors.
func (s *Service) Generate(ctx context.Context, req models.GossipRequest) (*Result, error) {
	celebrity := strings.TrimSpace(req.Celebrity)
	theme := models.ThemeOrDefault(req.Theme)

	text, err := s.generator.GenerateText(ctx, ai.BuildGossipPrompt(celebrity, req.Category))
	if err != nil {
		s.log.Error().
			Err(err).
			Str("celebrity", celebrity).
			Str("category", req.Category).
			Msg("Error generating gossip")
		return nil, ai.Classify(err)
	}

	content := s.normalizer.Normalize(text, celebrity, req.Category)

	return &Result{
		ID:          uuid.NewString(),
		Celebrity:   celebrity,
		Category:    req.Category,
		Theme:       string(theme),
		Publication: theme.Publication(),
		Label:       theme.Label(),
		Gossip:      content,
		Paragraphs:  content.Paragraphs(),
		GeneratedAt: s.now().UnixMilli(),
	}, nil
}

// GenerateImage returns a URL for an illustration of prompt. Credential,
// quota and network failures are returned; anything else yields the placeholder.
func (s *Service) GenerateImage(ctx context.Context, prompt string) (string, error) {
	img, err := s.generator.GenerateImage(ctx, ai.BuildImagePrompt(prompt))
	if err != nil {
		classified := ai.Classify(err)
		s.log.Error().Err(err).Str("kind", string(classified.Kind)).Msg("Error generating image")
		if classified.Kind != ai.KindUnknown {
			return "", classified
		}
		return s.PlaceholderURL(prompt), nil
	}

	if img == nil {
		s.log.Warn().Msg("Generator response contained no image part")
		return s.PlaceholderURL(prompt), nil
	}

	u, err := s.images.Save(ctx, img.MIMEType, img.Data)
	if err != nil {
		s.log.Error().Err(err).Msg("Error storing generated image")
		return s.PlaceholderURL(prompt), nil
	}
	return u, nil
}

// PlaceholderURL is the image reference used when no image is available
func (s *Service) PlaceholderURL(prompt string) string {
	text := prompt
	if r := []rune(text); len(r) > 30 {
		text = string(r[:30])
	}
	return fmt.Sprintf("%s?height=512&width=512&text=%s...", s.placeholder, encodeURIComponent(text))
}

// uriComponent undoes the QueryEscape encodings that encodeURIComponent
// leaves as literals.
var uriComponent = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

// encodeURIComponent escapes text the way browsers do.
func encodeURIComponent(text string) string {
	return uriComponent.Replace(url.QueryEscape(text))
}

// Ping validates the active credential
func (s *Service) Ping(ctx context.Context) error {
	return s.generator.Ping(ctx)
}
