package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// SDKClient talks to Gemini through the official Go SDK. A client is built
// per call so a changed session key takes effect immediately.
type SDKClient struct {
	keys       KeySource
	model      string
	imageModel string
	timeout    time.Duration
}

func NewSDKClient(keys KeySource, model, imageModel string, timeout time.Duration) *SDKClient {
	return &SDKClient{keys: keys, model: model, imageModel: imageModel, timeout: timeout}
}

func sdkSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockMediumAndAbove},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockMediumAndAbove},
	}
}

func (c *SDKClient) generate(ctx context.Context, modelName, prompt string) (*genai.GenerateContentResponse, error) {
	apiKey, err := c.keys.Key()
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(modelName)
	model.SafetySettings = sdkSafetySettings()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("API error: %w", err)
	}
	return resp, nil
}

func (c *SDKClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.generate(ctx, c.model, prompt)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content in response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func (c *SDKClient) GenerateImage(ctx context.Context, prompt string) (*InlineImage, error) {
	resp, err := c.generate(ctx, c.imageModel, prompt)
	if err != nil {
		return nil, err
	}

	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && strings.HasPrefix(blob.MIMEType, "image/") {
				return &InlineImage{MIMEType: blob.MIMEType, Data: blob.Data}, nil
			}
		}
	}
	return nil, nil
}

func (c *SDKClient) Ping(ctx context.Context) error {
	_, err := c.GenerateText(ctx, PromptTemplates.Ping)
	return err
}
