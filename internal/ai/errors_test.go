package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/bilgisen/gossipd/internal/apikey"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"missing", fmt.Errorf("generate: %w", apikey.ErrMissingKey), KindMissingKey},
		{"invalid", errors.New("API error: API key not valid. Please pass a valid API key."), KindInvalidKey},
		{"quota", errors.New("API error: Resource has been exhausted (e.g. check quota)."), KindQuota},
		{"network text", errors.New("network unreachable"), KindNetwork},
		{"net.Error", fmt.Errorf("API request failed: %w", &net.OpError{Op: "dial", Err: errors.New("refused")}), KindNetwork},
		{"deadline", context.DeadlineExceeded, KindNetwork},
		{"other", errors.New("no content in response"), KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			if got.Kind != tt.want {
				t.Fatalf("Classify(%v).Kind = %s, want %s", tt.err, got.Kind, tt.want)
			}
			if !errors.Is(got, tt.err) {
				t.Fatalf("classified error does not wrap the original")
			}
		})
	}
}

func TestClassifyPreservesUnknownMessage(t *testing.T) {
	if got := Classify(errors.New("model overloaded")); got.Message != "model overloaded" {
		t.Fatalf("unexpected message %q", got.Message)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	first := Classify(errors.New("quota"))
	if again := Classify(fmt.Errorf("wrapped: %w", first)); again != first {
		t.Fatal("expected the already classified error back")
	}
	if Classify(nil) != nil || KindOf(nil) != "" {
		t.Fatal("nil must stay nil")
	}
}
