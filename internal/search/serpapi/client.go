package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/founder-finder/internal/search"
)

const Name = "serpapi"

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Client - платный бэкенд (Google через SerpAPI)
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://serpapi.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

func (c *Client) Name() string { return Name }

func (c *Client) Configured() bool { return c.apiKey != "" }

type serpResponse struct {
	SearchMetadata struct {
		Status string `json:"status"`
	} `json:"search_metadata"`
	OrganicResults []organicResult `json:"organic_results"`
	Error          string          `json:"error"`
}

type organicResult struct {
	Position int    `json:"position"`
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet"`
}

func (c *Client) Search(ctx context.Context, req search.SearchRequest) (*search.SearchResponse, error) {
	if !c.Configured() {
		return nil, search.ErrNotConfigured
	}

	params := url.Values{}
	params.Set("engine", "google")
	params.Set("q", req.Query)
	params.Set("api_key", c.apiKey)
	if req.MaxResults > 0 {
		params.Set("num", strconv.Itoa(req.MaxResults))
	}
	if req.Country != "" {
		params.Set("gl", req.Country)
	}
	if req.Language != "" {
		params.Set("hl", req.Language)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search.json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: do request: %v", search.ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", search.ErrSearchFailed, err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, search.ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, search.ErrRateLimit
	case http.StatusBadRequest:
		return nil, search.ErrInvalidRequest
	default:
		c.logger.Error("serpapi request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("body", truncate(string(body), 512)),
		)
		return nil, fmt.Errorf("%w: status %d", search.ErrSearchFailed, resp.StatusCode)
	}

	var serpResp serpResponse
	if err := json.Unmarshal(body, &serpResp); err != nil {
		return nil, fmt.Errorf("%w: unmarshal response: %v", search.ErrSearchFailed, err)
	}

	if serpResp.Error != "" && !isNoResults(serpResp.Error) {
		return nil, fmt.Errorf("%w: %s", search.ErrSearchFailed, serpResp.Error)
	}

	return toSearchResponse(req.Query, &serpResp), nil
}

// пустая выдача приходит как 200 с error в теле
func isNoResults(msg string) bool {
	return strings.Contains(msg, "hasn't returned any results")
}

func toSearchResponse(query string, resp *serpResponse) *search.SearchResponse {
	results := make([]search.SearchResult, len(resp.OrganicResults))
	for i, r := range resp.OrganicResults {
		results[i] = search.SearchResult{
			Title:   r.Title,
			URL:     r.Link,
			Snippet: r.Snippet,
		}
	}

	return &search.SearchResponse{
		Query:   query,
		Results: results,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
