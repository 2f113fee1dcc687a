package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bilgisen/gossipd/internal/apikey"
)

func newTestServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request, req geminiRequest)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		handler(w, r, req)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiClientGenerateText(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, req geminiRequest) {
		if r.URL.Path != "/gemini-2.0-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if len(req.SafetySettings) != 4 {
			t.Errorf("expected 4 safety settings, got %d", len(req.SafetySettings))
		}
		if req.Contents[0].Parts[0].Text != "hi" {
			t.Errorf("unexpected prompt %q", req.Contents[0].Parts[0].Text)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Sure! "},{"text":"{\"headline\":\"H\"}"}]}}]}`))
	})

	c := NewGeminiClient(apikey.NewCredentials("test-key"), "gemini-2.0-flash", "img", 0).WithBaseURL(srv.URL)
	got, err := c.GenerateText(context.Background(), "hi")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != `Sure! {"headline":"H"}` {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestGeminiClientAPIError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, req geminiRequest) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`))
	})

	c := NewGeminiClient(apikey.NewCredentials("bad"), "m", "img", 0).WithBaseURL(srv.URL)
	err := c.Ping(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if KindOf(err) != KindInvalidKey {
		t.Fatalf("expected invalid key classification, got %s (%v)", KindOf(err), err)
	}
}

func TestGeminiClientQuotaError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, req geminiRequest) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"Resource has been exhausted (e.g. check quota).","status":"RESOURCE_EXHAUSTED"}}`))
	})

	c := NewGeminiClient(apikey.NewCredentials("k"), "m", "img", 0).WithBaseURL(srv.URL)
	_, err := c.GenerateText(context.Background(), "hi")
	if KindOf(err) != KindQuota {
		t.Fatalf("expected quota classification, got %v", err)
	}
}

func TestGeminiClientMissingKey(t *testing.T) {
	c := NewGeminiClient(apikey.NewCredentials(""), "m", "img", 0).WithBaseURL("http://127.0.0.1:1")
	_, err := c.GenerateText(context.Background(), "hi")
	if !errors.Is(err, apikey.ErrMissingKey) {
		t.Fatalf("expected ErrMissingKey, got %v", err)
	}
}

func TestGeminiClientGenerateImage(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, req geminiRequest) {
		if !strings.HasPrefix(r.URL.Path, "/image-model") {
			t.Errorf("expected image model, got %s", r.URL.Path)
		}
		if req.GenerationConfig == nil || len(req.GenerationConfig.ResponseModalities) != 2 {
			t.Errorf("expected response modalities, got %+v", req.GenerationConfig)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"here you go"},{"inlineData":{"mimeType":"image/png","data":"iVBORw=="}}]}}]}`))
	})

	c := NewGeminiClient(apikey.NewCredentials("k"), "m", "image-model", 0).WithBaseURL(srv.URL)
	img, err := c.GenerateImage(context.Background(), "a cat")
	if err != nil {
		t.Fatalf("GenerateImage: %v", err)
	}
	if img == nil || img.MIMEType != "image/png" || string(img.Data) != "\x89PNG" {
		t.Fatalf("unexpected image %+v", img)
	}
}

func TestGeminiClientGenerateImageWithoutImagePart(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, req geminiRequest) {
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"I can only describe it"}]}}]}`))
	})

	c := NewGeminiClient(apikey.NewCredentials("k"), "m", "img", 0).WithBaseURL(srv.URL)
	img, err := c.GenerateImage(context.Background(), "a cat")
	if err != nil || img != nil {
		t.Fatalf("expected nil image and nil error, got %+v %v", img, err)
	}
}

func TestGeminiClientEmptyCandidates(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request, req geminiRequest) {
		w.Write([]byte(`{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`))
	})

	c := NewGeminiClient(apikey.NewCredentials("k"), "m", "img", 0).WithBaseURL(srv.URL)
	_, err := c.GenerateText(context.Background(), "hi")
	if err == nil || !strings.Contains(err.Error(), "SAFETY") {
		t.Fatalf("expected blocked prompt error, got %v", err)
	}
}
