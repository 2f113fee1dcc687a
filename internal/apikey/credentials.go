package apikey

import (
	"errors"
	"strings"
	"sync"
)

// ErrMissingKey means no credential was configured at all. It is distinct
// from a credential the remote service rejects.
var ErrMissingKey = errors.New("GOOGLE_AI_API_KEY is not defined in environment variables. Please add it to your .env file.")

// Credentials resolves the generator API key. A key entered by the user at
// runtime takes precedence over the environment and is never persisted.
type Credentials struct {
	mu      sync.RWMutex
	env     string
	session string
}

func NewCredentials(envKey string) *Credentials {
	return &Credentials{env: strings.TrimSpace(envKey)}
}

// Key returns the active key or ErrMissingKey.
func (c *Credentials) Key() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch {
	case c.session != "":
		return c.session, nil
	case c.env != "":
		return c.env, nil
	default:
		return "", ErrMissingKey
	}
}

// Set stores a session key. An empty key clears it.
func (c *Credentials) Set(key string) {
	c.mu.Lock()
	c.session = strings.TrimSpace(key)
	c.mu.Unlock()
}

func (c *Credentials) Clear() {
	c.Set("")
}

// Source reports where the active key comes from: "session", "environment" or "none".
func (c *Credentials) Source() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch {
	case c.session != "":
		return "session"
	case c.env != "":
		return "environment"
	default:
		return "none"
	}
}
