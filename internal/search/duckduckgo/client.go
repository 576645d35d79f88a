package duckduckgo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/kitbuilder587/founder-finder/internal/search"
)

const Name = "duckduckgo"

type Config struct {
	BaseURL   string
	UserAgent string
	Region    string
	Timeout   time.Duration
}

// Client - бесплатный бэкенд, парсит html-выдачу DuckDuckGo. Ключ не нужен.
type Client struct {
	baseURL   string
	userAgent string
	region    string
	client    *http.Client
	logger    *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://html.duckduckgo.com"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	}
	if cfg.Region == "" {
		cfg.Region = "wt-wt"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		region:    cfg.Region,
		client:    &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

func (c *Client) Name() string { return Name }

func (c *Client) Search(ctx context.Context, req search.SearchRequest) (*search.SearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, search.ErrInvalidRequest
	}

	form := url.Values{}
	form.Set("q", query)
	form.Set("kl", c.region)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/html/", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: do request: %v", search.ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	switch {
	// 202 - страница с капчей, по сути rate limit
	case resp.StatusCode == http.StatusAccepted, resp.StatusCode == http.StatusTooManyRequests:
		return nil, search.ErrRateLimit
	case resp.StatusCode == http.StatusBadRequest:
		return nil, search.ErrInvalidRequest
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, fmt.Errorf("%w: status %d", search.ErrSearchFailed, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", search.ErrSearchFailed, err)
	}

	results := parseResults(doc, req.MaxResults)

	c.logger.Debug("duckduckgo search done",
		zap.String("query", query),
		zap.Int("results", len(results)),
	)

	return &search.SearchResponse{
		Query:   query,
		Results: results,
	}, nil
}

func parseResults(doc *goquery.Document, limit int) []search.SearchResult {
	results := make([]search.SearchResult, 0)

	doc.Find("div.result").Not(".result--ad").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if limit > 0 && len(results) >= limit {
			return false
		}

		link := s.Find("a.result__a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}

		results = append(results, search.SearchResult{
			Title:   strings.TrimSpace(link.Text()),
			URL:     resolveLink(href),
			Snippet: strings.TrimSpace(s.Find(".result__snippet").First().Text()),
		})
		return true
	})

	return results
}

// resolveLink разворачивает редиректы вида //duckduckgo.com/l/?uddg=<url>
func resolveLink(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}

	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if strings.HasSuffix(u.Hostname(), "duckduckgo.com") && strings.HasPrefix(u.Path, "/l/") {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
	}
	return href
}
