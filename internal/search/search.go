package search

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured - нет учетных данных для бэкенда (ConfigurationError)
	ErrNotConfigured = errors.New("search backend is not configured")

	// ErrSearchFailed - любой сбой внешнего вызова (BackendError)
	ErrSearchFailed = errors.New("search request failed")

	ErrUnauthorized   = fmt.Errorf("%w: invalid API key", ErrSearchFailed)
	ErrRateLimit      = fmt.Errorf("%w: rate limit exceeded", ErrSearchFailed)
	ErrInvalidRequest = fmt.Errorf("%w: invalid request parameters", ErrSearchFailed)
)

// SearchClient - внешний поисковый бэкенд, возвращает сырые хиты
type SearchClient interface {
	Name() string
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// Configurable реализуют бэкенды, которым нужны учетные данные.
type Configurable interface {
	Configured() bool
}

type SearchRequest struct {
	Query      string
	MaxResults int
	Country    string
	Language   string
}

type SearchResponse struct {
	Query   string
	Results []SearchResult
}

// SearchResult - сырой хит (title, link, snippet)
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// IsConfigured reports whether the client has what it needs to call its backend.
func IsConfigured(c SearchClient) bool {
	if cc, ok := c.(Configurable); ok {
		return cc.Configured()
	}
	return true
}
