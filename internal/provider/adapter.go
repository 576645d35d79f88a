// Package provider turns a raw search backend into a LinkedIn profile search:
// query normalization, caching, filtering of profile links, name extraction and
// formatting of the result text.
package provider

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/founder-finder/internal/cache"
	"github.com/kitbuilder587/founder-finder/internal/domain"
	"github.com/kitbuilder587/founder-finder/internal/extract"
	"github.com/kitbuilder587/founder-finder/internal/metrics"
	"github.com/kitbuilder587/founder-finder/internal/search"
)

const (
	DefaultMaxResults = 15
	DefaultTTL        = time.Hour

	profilePathMarker = "linkedin.com/in/"
)

// EmptyNamePolicy - что делать с хитом, из заголовка которого не удалось достать имя
type EmptyNamePolicy int

const (
	// DropEmptyNames silently skips hits without a name.
	DropEmptyNames EmptyNamePolicy = iota
	// KeepEmptyNames keeps such hits with an empty name.
	KeepEmptyNames
)

type Config struct {
	Client     search.SearchClient
	ExtractFn  extract.NameFunc
	EmptyNames EmptyNamePolicy

	Cache cache.Cache
	TTL   time.Duration

	MaxResults int
	Country    string
	Language   string
}

// Adapter - провайдер поиска профилей поверх конкретного бэкенда
type Adapter struct {
	client     search.SearchClient
	extractFn  extract.NameFunc
	emptyNames EmptyNamePolicy
	cache      cache.Cache
	ttl        time.Duration
	maxResults int
	country    string
	language   string
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

func New(cfg Config, logger *zap.Logger, m *metrics.Metrics) *Adapter {
	if cfg.ExtractFn == nil {
		cfg.ExtractFn = extract.NameFromTitle
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.MaxResults == 0 {
		cfg.MaxResults = DefaultMaxResults
	}

	return &Adapter{
		client:     cfg.Client,
		extractFn:  cfg.ExtractFn,
		emptyNames: cfg.EmptyNames,
		cache:      cfg.Cache,
		ttl:        cfg.TTL,
		maxResults: cfg.MaxResults,
		country:    cfg.Country,
		language:   cfg.Language,
		logger:     logger,
		metrics:    m,
	}
}

// NewDuckDuckGo - бесплатный провайдер: regex-извлечение имен, хиты без имени отбрасываются
func NewDuckDuckGo(client search.SearchClient, c cache.Cache, ttl time.Duration, maxResults int, logger *zap.Logger, m *metrics.Metrics) *Adapter {
	return New(Config{
		Client:     client,
		ExtractFn:  extract.NameFromTitle,
		EmptyNames: DropEmptyNames,
		Cache:      c,
		TTL:        ttl,
		MaxResults: maxResults,
	}, logger, m)
}

// NewSerpAPI - платный провайдер: срезание суффиксов, хиты без имени остаются, локаль US/en
func NewSerpAPI(client search.SearchClient, c cache.Cache, ttl time.Duration, maxResults int, logger *zap.Logger, m *metrics.Metrics) *Adapter {
	return New(Config{
		Client:     client,
		ExtractFn:  extract.NameByStrippingSuffix,
		EmptyNames: KeepEmptyNames,
		Cache:      c,
		TTL:        ttl,
		MaxResults: maxResults,
		Country:    "us",
		Language:   "en",
	}, logger, m)
}

func (a *Adapter) Name() string {
	return a.client.Name()
}

// Configured reports whether the backend has its credentials.
func (a *Adapter) Configured() bool {
	return search.IsConfigured(a.client)
}

// Search returns the formatted result text for query. Results are cached per
// lowercased query; the backend sees the original casing.
func (a *Adapter) Search(ctx context.Context, query string) (string, error) {
	if !a.Configured() {
		return "", search.ErrNotConfigured
	}

	key := a.cacheKey(query)
	if a.cache != nil {
		if cached, ok := a.cache.Get(key); ok {
			if result, ok := cached.(string); ok {
				a.recordCache(true)
				return result, nil
			}
		}
		a.recordCache(false)
	}

	if !strings.Contains(strings.ToLower(query), "linkedin.com") {
		query += " " + domain.LinkedInSiteFilter
	}

	start := time.Now()
	resp, err := a.client.Search(ctx, search.SearchRequest{
		Query:      query,
		MaxResults: a.maxResults,
		Country:    a.country,
		Language:   a.language,
	})
	if err != nil {
		if a.metrics != nil {
			a.metrics.RecordSearchRequest(a.Name(), "error", time.Since(start))
		}
		return "", err
	}
	if a.metrics != nil {
		a.metrics.RecordSearchRequest(a.Name(), "success", time.Since(start))
	}

	entries := a.extractEntries(resp.Results)
	result := extract.FormatEntries(entries)

	a.logger.Debug("provider search done",
		zap.String("provider", a.Name()),
		zap.String("query", query),
		zap.Int("hits", len(resp.Results)),
		zap.Int("profiles", len(entries)),
	)

	if a.cache != nil {
		a.cache.Set(key, result, a.ttl)
	}

	return result, nil
}

func (a *Adapter) extractEntries(results []search.SearchResult) []extract.Entry {
	entries := make([]extract.Entry, 0, len(results))
	for _, r := range results {
		if !strings.Contains(r.URL, profilePathMarker) {
			continue
		}

		name := a.extractFn(r.Title)
		if name == "" && a.emptyNames == DropEmptyNames {
			continue
		}

		entries = append(entries, extract.Entry{
			Name:        name,
			URL:         r.URL,
			Description: r.Snippet,
		})
	}
	return entries
}

func (a *Adapter) cacheKey(query string) string {
	return cache.Key("provider:"+a.Name(), strings.ToLower(query))
}

func (a *Adapter) recordCache(hit bool) {
	if a.metrics == nil {
		return
	}
	layer := "provider_" + a.Name()
	if hit {
		a.metrics.RecordCacheHit(layer)
	} else {
		a.metrics.RecordCacheMiss(layer)
	}
}
