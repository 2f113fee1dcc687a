package apikey

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/bilgisen/gossipd/internal/logger"
	"github.com/bilgisen/gossipd/internal/models"
)

// FreshnessWindow is how long a validation result is reused.
const FreshnessWindow = 60 * time.Second

// ValidatorFunc probes the remote service with the current credential.
type ValidatorFunc func(ctx context.Context) error

// Fresh reports whether a result recorded at checkedAt may still be served at now.
func Fresh(checkedAt, now time.Time) bool {
	return !checkedAt.IsZero() && now.Sub(checkedAt) < FreshnessWindow
}

// Checker caches the outcome of the last credential validation.
// Concurrent stale calls are not deduplicated; each one validates.
type Checker struct {
	validate ValidatorFunc
	now      func() time.Time

	mu            sync.Mutex
	status        *models.ApiKeyStatus
	lastCheckedAt time.Time
}

func NewChecker(validate ValidatorFunc) *Checker {
	return &Checker{validate: validate, now: time.Now}
}

// WithClock replaces the time source.
func (c *Checker) WithClock(now func() time.Time) *Checker {
	c.now = now
	return c
}

// Status returns the cached status while fresh, otherwise validates and
// overwrites the cache, failures included.
func (c *Checker) Status(ctx context.Context) models.ApiKeyStatus {
	now := c.now()

	c.mu.Lock()
	if c.status != nil && Fresh(c.lastCheckedAt, now) {
		cached := *c.status
		c.mu.Unlock()
		return cached
	}
	c.mu.Unlock()

	status := StatusFromError(c.validate(ctx))

	c.mu.Lock()
	c.status = &status
	c.lastCheckedAt = now
	c.mu.Unlock()

	return status
}

// Invalidate drops the cached status so the next Status call validates.
func (c *Checker) Invalidate() {
	c.mu.Lock()
	c.status = nil
	c.lastCheckedAt = time.Time{}
	c.mu.Unlock()
}

// StatusFromError maps a validation outcome to a user-facing status.
func StatusFromError(err error) models.ApiKeyStatus {
	if err == nil {
		return models.ApiKeyStatus{IsValid: true, Message: "API key is valid"}
	}

	log := logger.Component("apikey")
	log.Error().Err(err).Msg("API key validation error")

	msg := err.Error()
	switch {
	case errors.Is(err, ErrMissingKey), strings.Contains(msg, "not defined"):
		msg = "API key is not defined. Please add GOOGLE_AI_API_KEY to your .env file."
	case strings.Contains(msg, "API key"):
		msg = "Invalid API key. Please check your GOOGLE_AI_API_KEY environment variable."
	default:
		msg = "API error: " + msg
	}

	return models.ApiKeyStatus{IsValid: false, Message: msg}
}
