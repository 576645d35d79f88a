package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kitbuilder587/founder-finder/internal/domain"
	"github.com/kitbuilder587/founder-finder/internal/llm"
	llmMock "github.com/kitbuilder587/founder-finder/internal/llm/mock"
)

type stubFinder struct {
	got []domain.SearchQuery
	res *domain.FindResult
	err error
}

func (f *stubFinder) Find(_ context.Context, q domain.SearchQuery) (*domain.FindResult, error) {
	f.got = append(f.got, q)
	if f.err != nil {
		return nil, f.err
	}
	if f.res != nil {
		return f.res, nil
	}
	return &domain.FindResult{
		Query: q.String(),
		Profiles: []domain.Profile{
			{Name: "John Smith", LinkedInURL: "https://linkedin.com/in/johnsmith"},
		},
	}, nil
}

func TestParseToolInput(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   domain.SearchQuery
		wantOK bool
	}{
		{
			name:   "single quotes",
			input:  "{'domain': 'Fintech', 'location': 'Delhi', 'role': 'Founder'}",
			want:   domain.SearchQuery{Role: "Founder", Domain: "Fintech", Location: "Delhi"},
			wantOK: true,
		},
		{
			name:   "double quotes, role missing",
			input:  `{"domain": "Sportstech", "location": "Bangalore"}`,
			want:   domain.SearchQuery{Role: "Founder", Domain: "Sportstech", Location: "Bangalore"},
			wantOK: true,
		},
		{
			name:   "custom role",
			input:  "{'domain': 'AI', 'location': 'Berlin', 'role': 'CTO'}",
			want:   domain.SearchQuery{Role: "CTO", Domain: "AI", Location: "Berlin"},
			wantOK: true,
		},
		{
			name:   "natural language",
			input:  "Find founders in Edtech domain based in Mumbai",
			wantOK: false,
		},
		{
			name:   "braces without known keys",
			input:  "{'foo': 'bar'}",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseToolInput(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAssistant_DictInputSkipsLLM(t *testing.T) {
	finder := &stubFinder{}
	client := llmMock.New()
	a := NewAssistant(finder, client, zap.NewNop())

	res, err := a.Run(context.Background(), "{'domain': 'Fintech', 'location': 'Delhi', 'role': 'Founder'}")
	require.NoError(t, err)

	assert.Equal(t, 0, client.Calls())
	require.Len(t, finder.got, 1)
	assert.Equal(t, "Founder Fintech Delhi site:linkedin.com/in", res.Query)
	assert.Equal(t, "Found the following LinkedIn profiles:\n\nJohn Smith - https://linkedin.com/in/johnsmith\n", res.Output)
}

func TestAssistant_NaturalLanguage(t *testing.T) {
	finder := &stubFinder{}
	client := llmMock.New().WithResponse("```json\n{\"domain\": \"Edtech\", \"location\": \"Mumbai\", \"role\": \"\"}\n```")
	a := NewAssistant(finder, client, zap.NewNop())

	res, err := a.Run(context.Background(), "Find founders in Edtech domain based in Mumbai")
	require.NoError(t, err)

	assert.Equal(t, 1, client.Calls())
	assert.Equal(t, "Find founders in Edtech domain based in Mumbai", client.LastPrompt)
	assert.Equal(t, domain.SearchQuery{Role: "Founder", Domain: "Edtech", Location: "Mumbai"}, res.Request)
}

func TestAssistant_Errors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		a := NewAssistant(&stubFinder{}, nil, nil)
		_, err := a.Run(context.Background(), "   ")
		assert.ErrorIs(t, err, domain.ErrEmptyInput)
	})

	t.Run("natural language without llm", func(t *testing.T) {
		a := NewAssistant(&stubFinder{}, nil, nil)
		_, err := a.Run(context.Background(), "founders in Mumbai")
		assert.ErrorIs(t, err, llm.ErrNotConfigured)
	})

	t.Run("llm without key", func(t *testing.T) {
		client := llmMock.New().WithoutKey()
		a := NewAssistant(&stubFinder{}, client, nil)
		_, err := a.Run(context.Background(), "founders in Mumbai")
		assert.ErrorIs(t, err, llm.ErrNotConfigured)
		assert.Equal(t, 0, client.Calls())
	})

	t.Run("model answer is not json", func(t *testing.T) {
		a := NewAssistant(&stubFinder{}, llmMock.New().WithResponse("I cannot help"), nil)
		_, err := a.Run(context.Background(), "founders somewhere")
		assert.ErrorIs(t, err, ErrUnparsableRequest)
	})

	t.Run("missing location", func(t *testing.T) {
		finder := &stubFinder{}
		a := NewAssistant(finder, nil, nil)
		_, err := a.Run(context.Background(), "{'domain': 'Fintech'}")
		assert.ErrorIs(t, err, domain.ErrEmptyLocation)
		assert.Empty(t, finder.got)
	})

	t.Run("llm failure", func(t *testing.T) {
		a := NewAssistant(&stubFinder{}, llmMock.New().WithError(llm.ErrRateLimit), nil)
		_, err := a.Run(context.Background(), "founders in Mumbai")
		assert.ErrorIs(t, err, llm.ErrRateLimit)
	})

	t.Run("finder failure", func(t *testing.T) {
		boom := errors.New("boom")
		a := NewAssistant(&stubFinder{err: boom}, nil, nil)
		_, err := a.Run(context.Background(), "{'domain': 'Fintech', 'location': 'Delhi'}")
		assert.ErrorIs(t, err, boom)
	})
}

func TestFormatOutput_Empty(t *testing.T) {
	assert.Equal(t, "No LinkedIn profiles found.", FormatOutput(nil))
}
