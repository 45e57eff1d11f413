package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/server/middleware"
	"github.com/jonathan/jobboard/internal/types"
)

// maxMonths bounds the analytics window accepted over HTTP.
const maxMonths = 120

// handleOpportunities returns the ranked feed for a candidate
func (s *Server) handleOpportunities(w http.ResponseWriter, r *http.Request) {
	candidateID, err := parseUUIDParam(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.authorize(r, types.ScopeCandidate, candidateID.String()); err != nil {
		s.writeError(w, r, err)
		return
	}

	feed, err := s.engine.Opportunities(r.Context(), candidateID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, feed)
}

// handleMatch scores one job against one candidate
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	jobID, err := parseUUIDParam(r, "job_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	candidateID, err := parseUUIDParam(r, "candidate_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.authorizeMatch(r, candidateID); err != nil {
		s.writeError(w, r, err)
		return
	}

	strategy := strings.TrimSpace(r.URL.Query().Get("strategy"))
	result, err := s.engine.Score(r.Context(), jobID, candidateID, strategy)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleRecruiterAnalytics summarizes applications to a recruiter's jobs
func (s *Server) handleRecruiterAnalytics(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serveAnalytics(w, r, types.AnalyticsScope{Kind: types.ScopeRecruiter, ID: id.String()})
}

// handleCollegeAnalytics summarizes applications of a college's students
func (s *Server) handleCollegeAnalytics(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		s.writeError(w, r, &ErrValidation{Field: "name", Message: "college name is required"})
		return
	}
	s.serveAnalytics(w, r, types.AnalyticsScope{Kind: types.ScopeCollege, ID: name})
}

// handleCandidateAnalytics summarizes a candidate's own applications
func (s *Server) handleCandidateAnalytics(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.serveAnalytics(w, r, types.AnalyticsScope{Kind: types.ScopeCandidate, ID: id.String()})
}

func (s *Server) serveAnalytics(w http.ResponseWriter, r *http.Request, scope types.AnalyticsScope) {
	if err := s.authorize(r, scope.Kind, scope.ID); err != nil {
		s.writeError(w, r, err)
		return
	}

	since, err := parseSince(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	months := parseQueryInt(r, "months", 0, maxMonths)

	summary, err := s.engine.Analytics(r.Context(), scope, months, since)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, summary)
}

// authorize checks the caller against a scope. Without JWT configured
// every request is allowed.
func (s *Server) authorize(r *http.Request, kind types.ScopeKind, id string) error {
	if s.jwtService == nil {
		return nil
	}
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		return &ErrUnauthorized{}
	}
	if !principal.CanAccess(kind, id) {
		return &ErrForbidden{Resource: string(kind) + " " + id}
	}
	return nil
}

// authorizeMatch lets recruiters and admins score any candidate and
// candidates score themselves.
func (s *Server) authorizeMatch(r *http.Request, candidateID uuid.UUID) error {
	if s.jwtService == nil {
		return nil
	}
	principal, ok := middleware.GetPrincipal(r)
	if !ok {
		return &ErrUnauthorized{}
	}
	if principal.Role == middleware.RoleRecruiter {
		return nil
	}
	return s.authorize(r, types.ScopeCandidate, candidateID.String())
}

func parseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(key))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: key, Message: "must be a UUID"}
	}
	return id, nil
}

// parseQueryInt reads a non-negative integer query parameter, falling back
// to defaultValue when absent or malformed and clamping to maxValue.
func parseQueryInt(r *http.Request, key string, defaultValue, maxValue int) int {
	valStr := r.URL.Query().Get(key)
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(valStr)
	if err != nil || val < 0 {
		return defaultValue
	}
	if maxValue > 0 && val > maxValue {
		return maxValue
	}
	return val
}

// parseSince reads the optional since parameter as RFC 3339 or YYYY-MM-DD.
func parseSince(r *http.Request) (time.Time, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("since"))
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &ErrValidation{Field: "since", Message: "must be RFC 3339 or YYYY-MM-DD"}
}
