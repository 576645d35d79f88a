package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kitbuilder587/founder-finder/internal/agent"
	"github.com/kitbuilder587/founder-finder/internal/domain"
	"github.com/kitbuilder587/founder-finder/internal/metrics"
)

type stubFinder struct {
	mu        sync.Mutex
	res       *domain.FindResult
	err       error
	found     []domain.SearchQuery
	refreshed []domain.SearchQuery
}

func (f *stubFinder) Find(_ context.Context, q domain.SearchQuery) (*domain.FindResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.found = append(f.found, q)
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

func (f *stubFinder) ScheduleRefresh(q domain.SearchQuery) {
	f.mu.Lock()
	f.refreshed = append(f.refreshed, q)
	f.mu.Unlock()
}

func newTestServer(f *stubFinder) *Server {
	return NewServer(Config{}, Deps{
		Finder:    f,
		Assistant: agent.NewAssistant(f, nil, zap.NewNop()),
		Logger:    zap.NewNop(),
		Gatherer:  prometheus.NewRegistry(),
	})
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestRoot(t *testing.T) {
	rec := do(t, newTestServer(&stubFinder{}), http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"LinkedIn Founder Finder API is running"}`, rec.Body.String())
}

func TestFindFounders_Success(t *testing.T) {
	f := &stubFinder{}
	rec := do(t, newTestServer(f), http.MethodPost, "/api/find-founders", `{"domain":"Fintech","location":"Delhi"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"data": [{"name": "John Smith", "linkedin_url": "https://linkedin.com/in/johnsmith"}],
		"query": "Founder Fintech Delhi site:linkedin.com/in",
		"error": ""
	}`, rec.Body.String())

	require.Len(t, f.found, 1)
	assert.Equal(t, "Founder", f.found[0].Role)
	assert.Equal(t, f.found, f.refreshed, "successful request schedules a refresh")
}

func TestFindFounders_CustomRole(t *testing.T) {
	f := &stubFinder{}
	rec := do(t, newTestServer(f), http.MethodPost, "/api/find-founders", `{"domain":"AI","location":"Berlin","role":"CTO"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CTO AI Berlin site:linkedin.com/in", decodeBody(t, rec)["query"])
}

func TestFindFounders_LogicalFailureIs200(t *testing.T) {
	f := &stubFinder{err: errors.New("duckduckgo search: rate limit exceeded")}
	rec := do(t, newTestServer(f), http.MethodPost, "/api/find-founders", `{"domain":"Fintech","location":"Delhi"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": false,
		"data": [],
		"query": "",
		"error": "duckduckgo search: rate limit exceeded"
	}`, rec.Body.String())
	assert.Empty(t, f.refreshed)
}

func TestFindFounders_EmptyProfilesSerializeAsArray(t *testing.T) {
	f := &stubFinder{res: &domain.FindResult{Query: "q"}}
	rec := do(t, newTestServer(f), http.MethodPost, "/api/find-founders", `{"domain":"Fintech","location":"Delhi"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestFindFounders_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing domain", `{"location":"Delhi"}`},
		{"missing location", `{"domain":"Fintech"}`},
		{"blank domain", `{"domain":"  ","location":"Delhi"}`},
		{"not json", `domain=Fintech`},
		{"empty body", ``},
		{"wrong type", `{"domain":1,"location":"Delhi"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &stubFinder{}
			rec := do(t, newTestServer(f), http.MethodPost, "/api/find-founders", tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.NotEmpty(t, decodeBody(t, rec)["detail"])
			assert.Empty(t, f.found)
		})
	}
}

func TestLegacySearch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rec := do(t, newTestServer(&stubFinder{}), http.MethodPost, "/search", `{"domain":"Fintech","location":"Delhi","role":"Founder"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{
			"founders": [{"name": "John Smith", "linkedin_url": "https://linkedin.com/in/johnsmith"}],
			"query": "Founder Fintech Delhi site:linkedin.com/in"
		}`, rec.Body.String())
	})

	t.Run("failure is 500", func(t *testing.T) {
		rec := do(t, newTestServer(&stubFinder{err: errors.New("boom")}), http.MethodPost, "/search", `{"domain":"Fintech","location":"Delhi"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.JSONEq(t, `{"detail":"boom"}`, rec.Body.String())
	})
}

func TestAgentEndpoint(t *testing.T) {
	t.Run("dictionary input", func(t *testing.T) {
		rec := do(t, newTestServer(&stubFinder{}), http.MethodPost, "/api/agent", `{"input":"{'domain': 'Fintech', 'location': 'Delhi', 'role': 'Founder'}"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Founder Fintech Delhi site:linkedin.com/in", body["query"])
		assert.Contains(t, body["output"], "John Smith - https://linkedin.com/in/johnsmith")
	})

	t.Run("natural language without llm", func(t *testing.T) {
		rec := do(t, newTestServer(&stubFinder{}), http.MethodPost, "/api/agent", `{"input":"Find founders in Edtech domain based in Mumbai"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.NotEmpty(t, body["error"])
		assert.Equal(t, []interface{}{}, body["data"])
	})

	t.Run("missing input", func(t *testing.T) {
		rec := do(t, newTestServer(&stubFinder{}), http.MethodPost, "/api/agent", `{}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

func TestCORS(t *testing.T) {
	s := newTestServer(&stubFinder{})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/find-founders", nil)
		req.Header.Set("Origin", "https://founder-finder.example")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type")
		rec := httptest.NewRecorder()
		s.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://founder-finder.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "content-type", rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
	})

	t.Run("simple request without origin", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/", "")
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRequestID(t *testing.T) {
	s := newTestServer(&stubFinder{})

	rec := do(t, s, http.MethodGet, "/", "")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestUnknownRouteAndMethod(t *testing.T) {
	s := newTestServer(&stubFinder{})

	assert.Equal(t, http.StatusNotFound, do(t, s, http.MethodGet, "/nope", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, s, http.MethodGet, "/api/find-founders", "").Code)
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	f := &stubFinder{}
	s := NewServer(Config{}, Deps{Finder: f, Logger: zap.NewNop(), Metrics: m, Gatherer: reg})

	do(t, s, http.MethodPost, "/api/find-founders", `{"domain":"Fintech","location":"Delhi"}`)

	rec := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "founder_finder_requests_total")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("POST /api/find-founders", "200")))
}

func TestRecoverMiddleware(t *testing.T) {
	s := newTestServer(&stubFinder{})
	h := s.recoverMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"detail":"internal server error"}`, rec.Body.String())
}
