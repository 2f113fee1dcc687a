package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/bilgisen/gossipd/internal/logger"
	"github.com/bilgisen/gossipd/internal/models"
	"github.com/rs/zerolog"
)

// jsonSpan matches from the first '{' to the last '}'. Two separate objects
// in one response are captured as a single span and then fail to parse.
var jsonSpan = regexp.MustCompile(`(?s)\{.*\}`)

var errMissingFields = errors.New("invalid response format: headline, summary and content are required")

// Normalizer turns untrusted generator text into a complete GossipContent.
type Normalizer struct {
	log zerolog.Logger
}

func NewNormalizer() *Normalizer {
	return &Normalizer{log: logger.Component("normalizer")}
}

// Normalize never fails: text that cannot supply headline, summary and
// content is replaced by the fallback record for celebrity and category.
func (n *Normalizer) Normalize(raw, celebrity, category string) models.GossipContent {
	content, err := parseGossip(raw)
	if err != nil {
		n.log.Warn().
			Err(err).
			Str("celebrity", celebrity).
			Str("category", category).
			Str("raw_response", raw).
			Msg("Error parsing generator response, using fallback story")
		return Fallback(celebrity, category)
	}

	if content.ImagePrompt == "" {
		content.ImagePrompt = DefaultImagePrompt(celebrity, category)
	}
	return content
}

// ExtractJSON returns the greedy first-'{'-to-last-'}' span of raw, or raw
// itself when it holds no such span.
func ExtractJSON(raw string) string {
	if m := jsonSpan.FindString(raw); m != "" {
		return m
	}
	return raw
}

// parseGossip reads the response keys by exact name; case variants such
// as "HEADLINE" are ignored.
func parseGossip(raw string) (models.GossipContent, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &fields); err != nil {
		return models.GossipContent{}, fmt.Errorf("decode response: %w", err)
	}

	var content models.GossipContent
	for key, dst := range map[string]*string{
		"headline":    &content.Headline,
		"summary":     &content.Summary,
		"content":     &content.Content,
		"imagePrompt": &content.ImagePrompt,
	} {
		v, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return models.GossipContent{}, fmt.Errorf("decode %s: %w", key, err)
		}
	}

	if content.Headline == "" || content.Summary == "" || content.Content == "" {
		return models.GossipContent{}, errMissingFields
	}
	return content, nil
}

// DefaultImagePrompt is used when the generator omits an image prompt
func DefaultImagePrompt(celebrity, category string) string {
	return fmt.Sprintf("A humorous, fictional image related to %s and %s", celebrity, category)
}

// Fallback builds the deterministic record shown when a response is unusable
func Fallback(celebrity, category string) models.GossipContent {
	return models.GossipContent{
		Headline: fmt.Sprintf("%s Involved in Outrageous %s Scandal (That's Completely Made Up)", celebrity, category),
		Summary:  fmt.Sprintf("Our AI couldn't create a proper story format, but here's some fictional %s gossip about %s.", category, celebrity),
		Content: fmt.Sprintf("We tried to generate a funny story about %s related to %s, but our AI had trouble formatting it properly.", celebrity, category) +
			"\n\nRest assured that no real gossip exists - this is all meant to be fictional entertainment!" +
			"\n\nPlease try again, and our AI will do better next time.",
		ImagePrompt: fmt.Sprintf("A cartoon of a confused AI trying to write a gossip story about %s and %s, clearly fictional and humorous", celebrity, category),
	}
}
