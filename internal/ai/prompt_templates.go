package ai

import (
	"fmt"
	"strings"
)

// PromptTemplates contains the prompt templates sent to the generator
var PromptTemplates = struct {
	Gossip string
	Image  string
	Ping   string
}{
	Gossip: `Create a funny, harmless, and completely fictional gossip story about %s focused on the category: %s.
Make it entertaining and obviously fake, like something from a satirical tabloid.
The story should be lighthearted and never mean-spirited.

Format your response as a JSON object with the following structure:
{
  "headline": "A catchy, tabloid-style headline for the gossip story",
  "summary": "A brief 1-2 sentence summary/lead for the story",
  "content": "The full gossip story content (3-4 paragraphs separated by a blank line)",
  "imagePrompt": "A detailed prompt for generating an image that represents the story in a humorous, obviously fake way without using the celebrity's real name (to avoid creating a realistic deepfake)"
}

Only return the JSON object, nothing else.`,

	Image: `Create a humorous, obviously fictional image based on this description: %s.
Make it look like a satirical tabloid photo, clearly fake and not realistic.
The image should be colorful, exaggerated, and cartoonish in style.`,

	Ping: "Hello, are you working?",
}

// BuildGossipPrompt creates the story prompt for a celebrity and category
func BuildGossipPrompt(celebrity, category string) string {
	return fmt.Sprintf(PromptTemplates.Gossip, escapeForPrompt(celebrity), escapeForPrompt(category))
}

// BuildImagePrompt wraps an image description with the tabloid style instructions
func BuildImagePrompt(description string) string {
	return fmt.Sprintf(PromptTemplates.Image, escapeForPrompt(description))
}

// escapeForPrompt escapes special characters for use in prompts
func escapeForPrompt(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.TrimSpace(s)
}
