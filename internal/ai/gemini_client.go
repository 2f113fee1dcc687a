package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// GeminiClient talks to the Gemini REST API
type GeminiClient struct {
	client     *resty.Client
	keys       KeySource
	model      string
	imageModel string
	baseURL    string
	timeout    time.Duration
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	SafetySettings   []geminiSafetySetting   `json:"safetySettings,omitempty"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiSafetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type geminiGenerationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

type geminiErrorResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

var safetySettings = []geminiSafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

func NewGeminiClient(keys KeySource, model, imageModel string, timeout time.Duration) *GeminiClient {
	return &GeminiClient{
		client:     resty.New().SetHeader("Content-Type", "application/json"),
		keys:       keys,
		model:      model,
		imageModel: imageModel,
		baseURL:    defaultGeminiBaseURL,
		timeout:    timeout,
	}
}

// WithBaseURL points the client at another endpoint.
func (g *GeminiClient) WithBaseURL(baseURL string) *GeminiClient {
	g.baseURL = strings.TrimRight(baseURL, "/")
	return g
}

// GenerateText sends prompt to the text model and returns the joined text parts
func (g *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.callGeminiAPI(ctx, g.model, geminiRequest{
		Contents:       []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		SafetySettings: safetySettings,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("no content in response")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// GenerateImage asks the image model for an illustration of prompt
func (g *GeminiClient) GenerateImage(ctx context.Context, prompt string) (*InlineImage, error) {
	resp, err := g.callGeminiAPI(ctx, g.imageModel, geminiRequest{
		Contents:         []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		SafetySettings:   safetySettings,
		GenerationConfig: &geminiGenerationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	})
	if err != nil {
		return nil, err
	}

	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.InlineData == nil || !strings.HasPrefix(part.InlineData.MimeType, "image/") {
				continue
			}
			data, err := base64.StdEncoding.DecodeString(part.InlineData.Data)
			if err != nil {
				return nil, fmt.Errorf("decode inline image: %w", err)
			}
			return &InlineImage{MIMEType: part.InlineData.MimeType, Data: data}, nil
		}
	}
	return nil, nil
}

// Ping makes a minimal request to validate the API key
func (g *GeminiClient) Ping(ctx context.Context) error {
	_, err := g.GenerateText(ctx, PromptTemplates.Ping)
	return err
}

func (g *GeminiClient) callGeminiAPI(ctx context.Context, model string, req geminiRequest) (*geminiResponse, error) {
	apiKey, err := g.keys.Key()
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/%s:generateContent", g.baseURL, model)

	var result geminiResponse
	var apiErr geminiErrorResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", apiKey).
		SetBody(req).
		SetResult(&result).
		SetError(&apiErr).
		Post(url)

	if err != nil {
		return nil, fmt.Errorf("API request failed: %w", err)
	}

	if resp.IsError() {
		if apiErr.Error != nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("API error: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("API error: unexpected status %d", resp.StatusCode())
	}

	return &result, nil
}
