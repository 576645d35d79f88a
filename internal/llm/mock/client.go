package mock

import (
	"context"
	"sync"
	"time"

	"github.com/kitbuilder587/founder-finder/internal/llm"
)

type Client struct {
	Response     string
	Error        error
	Delay        time.Duration
	Unconfigured bool

	mu         sync.Mutex
	CallCount  int
	LastSystem string
	LastPrompt string
}

func New() *Client {
	return &Client{
		Response: `{"domain": "Edtech", "location": "Mumbai", "role": "Founder"}`,
	}
}

func (c *Client) WithResponse(response string) *Client {
	c.Response = response
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

// WithoutKey makes the client report itself as unconfigured.
func (c *Client) WithoutKey() *Client {
	c.Unconfigured = true
	return c
}

func (c *Client) Configured() bool {
	return !c.Unconfigured
}

func (c *Client) CompleteWithSystem(ctx context.Context, system, prompt string) (string, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastSystem = system
	c.LastPrompt = prompt
	c.mu.Unlock()

	if c.Unconfigured {
		return "", llm.ErrNotConfigured
	}

	if c.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.Delay):
		}
	}

	if c.Error != nil {
		return "", c.Error
	}

	return c.Response, nil
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
	c.LastSystem = ""
	c.LastPrompt = ""
}

var _ llm.Client = (*Client)(nil)
