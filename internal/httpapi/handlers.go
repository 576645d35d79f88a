package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/kitbuilder587/founder-finder/internal/domain"
)

const statusMessage = "LinkedIn Founder Finder API is running"

type searchInput struct {
	Domain   *string `json:"domain"`
	Location *string `json:"location"`
	Role     *string `json:"role"`
}

type FindFoundersResponse struct {
	Success bool             `json:"success"`
	Data    []domain.Profile `json:"data"`
	Query   string           `json:"query"`
	Error   string           `json:"error"`
}

type LegacySearchResponse struct {
	Founders []domain.Profile `json:"founders"`
	Query    string           `json:"query"`
}

type agentInput struct {
	Input *string `json:"input"`
}

type AgentResponse struct {
	Success bool             `json:"success"`
	Output  string           `json:"output"`
	Data    []domain.Profile `json:"data"`
	Query   string           `json:"query"`
	Error   string           `json:"error"`
}

type errorDetail struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": statusMessage})
}

func (s *Server) handleFindFounders(w http.ResponseWriter, r *http.Request) {
	q, err := decodeSearchInput(w, r)
	if err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorDetail{Detail: err.Error()})
		return
	}

	// логическая ошибка все равно 200
	s.writeJSON(w, http.StatusOK, s.findFounders(r, q))
}

func (s *Server) handleLegacySearch(w http.ResponseWriter, r *http.Request) {
	q, err := decodeSearchInput(w, r)
	if err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorDetail{Detail: err.Error()})
		return
	}

	resp := s.findFounders(r, q)
	if !resp.Success {
		s.writeJSON(w, http.StatusInternalServerError, errorDetail{Detail: resp.Error})
		return
	}

	s.writeJSON(w, http.StatusOK, LegacySearchResponse{
		Founders: resp.Data,
		Query:    resp.Query,
	})
}

func (s *Server) findFounders(r *http.Request, q domain.SearchQuery) FindFoundersResponse {
	res, err := s.finder.Find(r.Context(), q)
	if err != nil {
		s.logger.Error("find founders failed",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.String("query", q.String()),
			zap.Error(err),
		)
		return FindFoundersResponse{
			Success: false,
			Data:    []domain.Profile{},
			Error:   err.Error(),
		}
	}

	// обновляем кеш в фоне для следующего запроса
	s.finder.ScheduleRefresh(q)

	profiles := res.Profiles
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return FindFoundersResponse{
		Success: true,
		Data:    profiles,
		Query:   res.Query,
	}
}

func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	var in agentInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorDetail{Detail: err.Error()})
		return
	}
	if in.Input == nil {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorDetail{Detail: "input: field required"})
		return
	}

	if s.assistant == nil {
		s.writeJSON(w, http.StatusOK, AgentResponse{Data: []domain.Profile{}, Error: "agent is not available"})
		return
	}

	res, err := s.assistant.Run(r.Context(), *in.Input)
	if err != nil {
		s.logger.Warn("agent request failed",
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		s.writeJSON(w, http.StatusOK, AgentResponse{Data: []domain.Profile{}, Error: err.Error()})
		return
	}

	profiles := res.Profiles
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	s.writeJSON(w, http.StatusOK, AgentResponse{
		Success: true,
		Output:  res.Output,
		Data:    profiles,
		Query:   res.Query,
	})
}

func decodeSearchInput(w http.ResponseWriter, r *http.Request) (domain.SearchQuery, error) {
	var in searchInput
	if err := decodeJSON(w, r, &in); err != nil {
		return domain.SearchQuery{}, err
	}
	if in.Domain == nil {
		return domain.SearchQuery{}, errors.New("domain: field required")
	}
	if in.Location == nil {
		return domain.SearchQuery{}, errors.New("location: field required")
	}

	role := ""
	if in.Role != nil {
		role = *in.Role
	}

	q := domain.NewSearchQuery(*in.Domain, *in.Location, role)
	if err := q.Validate(); err != nil {
		return domain.SearchQuery{}, err
	}
	return q, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is empty")
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON", zap.Error(err))
	}
}
