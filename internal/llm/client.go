package llm

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured = errors.New("llm api key is not configured")
	ErrAuthFailed    = errors.New("authentication failed")
	ErrRequestFailed = errors.New("request failed")
	ErrEmptyResponse = errors.New("empty response")
	ErrRateLimit     = errors.New("rate limit exceeded")
)

type Client interface {
	CompleteWithSystem(ctx context.Context, system, prompt string) (string, error)
}

// Configurable реализуют клиенты, которым нужен ключ
type Configurable interface {
	Configured() bool
}

// IsConfigured - true для клиентов без ключа или с заданным ключом
func IsConfigured(c Client) bool {
	if c == nil {
		return false
	}
	if cc, ok := c.(Configurable); ok {
		return cc.Configured()
	}
	return true
}
