package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/founder-finder/internal/search"
)

type Client struct {
	Results []search.SearchResult
	Error   error
	Delay   time.Duration

	ClientName   string
	Unconfigured bool

	CallCount   int
	LastRequest search.SearchRequest
	AllRequests []search.SearchRequest

	mu sync.Mutex
}

func New() *Client {
	return &Client{ClientName: "mock"}
}

func (c *Client) WithResults(results []search.SearchResult) *Client {
	c.Results = results
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) WithName(name string) *Client {
	c.ClientName = name
	return c
}

// WithoutCredentials делает клиент "не настроенным", как платный бэкенд без ключа
func (c *Client) WithoutCredentials() *Client {
	c.Unconfigured = true
	return c
}

func (c *Client) Name() string { return c.ClientName }

func (c *Client) Configured() bool { return !c.Unconfigured }

func (c *Client) Search(ctx context.Context, req search.SearchRequest) (*search.SearchResponse, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastRequest = req
	c.AllRequests = append(c.AllRequests, req)
	delay := c.Delay
	err := c.Error
	results := c.Results
	unconfigured := c.Unconfigured
	c.mu.Unlock()

	if unconfigured {
		return nil, search.ErrNotConfigured
	}

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if err != nil {
		return nil, err
	}

	out := results
	if req.MaxResults > 0 && len(out) > req.MaxResults {
		out = out[:req.MaxResults]
	}

	return &search.SearchResponse{
		Query:   req.Query,
		Results: append([]search.SearchResult(nil), out...),
	}, nil
}

func (c *Client) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.CallCount
}

func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CallCount = 0
	c.LastRequest = search.SearchRequest{}
	c.AllRequests = nil
}

var _ search.SearchClient = (*Client)(nil)
var _ search.Configurable = (*Client)(nil)
