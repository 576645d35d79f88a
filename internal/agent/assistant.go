// Package agent accepts free-form requests for founder searches and turns them
// into structured queries for the finder service.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/kitbuilder587/founder-finder/internal/domain"
	"github.com/kitbuilder587/founder-finder/internal/extract"
	"github.com/kitbuilder587/founder-finder/internal/llm"
)

var ErrUnparsableRequest = errors.New("could not understand the request")

const systemPrompt = `You extract search parameters for a LinkedIn founder search.
Read the user's request and answer with a single JSON object and nothing else:
{"domain": "<industry or domain>", "location": "<city or country>", "role": "<role>"}
If the role is not mentioned, use "Founder". If domain or location is missing, use an empty string.`

// Finder - то, что агент вызывает как инструмент
type Finder interface {
	Find(ctx context.Context, q domain.SearchQuery) (*domain.FindResult, error)
}

type Result struct {
	Request  domain.SearchQuery
	Query    string
	Profiles []domain.Profile
	Output   string
}

type Assistant struct {
	finder    Finder
	llmClient llm.Client
	logger    *zap.Logger
}

// NewAssistant returns an assistant. llmClient may be nil: then only the
// dictionary-style input is accepted.
func NewAssistant(finder Finder, llmClient llm.Client, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{
		finder:    finder,
		llmClient: llmClient,
		logger:    logger,
	}
}

// Run handles either "{'domain': 'Fintech', 'location': 'Delhi', 'role': 'Founder'}"
// or a natural language request like "Find founders in Edtech domain based in Mumbai".
func (a *Assistant) Run(ctx context.Context, input string) (*Result, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, domain.ErrEmptyInput
	}

	q, ok := ParseToolInput(input)
	if !ok {
		var err error
		q, err = a.interpret(ctx, input)
		if err != nil {
			return nil, err
		}
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}

	a.logger.Debug("agent request parsed",
		zap.String("domain", q.Domain),
		zap.String("location", q.Location),
		zap.String("role", q.Role),
		zap.Bool("structured", ok),
	)

	res, err := a.finder.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find founders: %w", err)
	}

	return &Result{
		Request:  q,
		Query:    res.Query,
		Profiles: res.Profiles,
		Output:   FormatOutput(res.Profiles),
	}, nil
}

// FormatOutput renders profiles the same way the provider result text looks.
func FormatOutput(profiles []domain.Profile) string {
	entries := make([]extract.Entry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, extract.Entry{Name: p.Name, URL: p.LinkedInURL})
	}
	return extract.FormatEntries(entries)
}

var toolField = regexp.MustCompile(`['"](\w+)['"]\s*:\s*(?:'([^']*)'|"([^"]*)")`)

// ParseToolInput reads the dictionary-string input format. Unknown keys are
// ignored, a missing role falls back to the default.
func ParseToolInput(input string) (domain.SearchQuery, bool) {
	s := strings.TrimSpace(input)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return domain.SearchQuery{}, false
	}

	fields := make(map[string]string)
	for _, m := range toolField.FindAllStringSubmatch(s, -1) {
		v := m[2]
		if v == "" {
			v = m[3]
		}
		fields[strings.ToLower(m[1])] = v
	}

	_, hasDomain := fields["domain"]
	_, hasLocation := fields["location"]
	if !hasDomain && !hasLocation {
		return domain.SearchQuery{}, false
	}

	return domain.NewSearchQuery(fields["domain"], fields["location"], fields["role"]), true
}

type interpretedRequest struct {
	Domain   string `json:"domain"`
	Location string `json:"location"`
	Role     string `json:"role"`
}

func (a *Assistant) interpret(ctx context.Context, input string) (domain.SearchQuery, error) {
	if !llm.IsConfigured(a.llmClient) {
		return domain.SearchQuery{}, llm.ErrNotConfigured
	}

	content, err := a.llmClient.CompleteWithSystem(ctx, systemPrompt, input)
	if err != nil {
		a.logger.Error("LLM call failed", zap.Error(err))
		return domain.SearchQuery{}, fmt.Errorf("llm call failed: %w", err)
	}

	// модель иногда оборачивает JSON в ```json
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return domain.SearchQuery{}, fmt.Errorf("%w: no JSON in model answer", ErrUnparsableRequest)
	}

	var req interpretedRequest
	if err := json.Unmarshal([]byte(content[start:end+1]), &req); err != nil {
		return domain.SearchQuery{}, fmt.Errorf("%w: %v", ErrUnparsableRequest, err)
	}

	return domain.NewSearchQuery(req.Domain, req.Location, req.Role), nil
}
