package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobboard/internal/config"
	"github.com/jonathan/jobboard/internal/server/middleware"
	"github.com/jonathan/jobboard/internal/server/ratelimit"
	"github.com/jonathan/jobboard/internal/types"
)

// fakeEngine records calls and returns canned results
type fakeEngine struct {
	feed    *types.RankedFeed
	match   *types.MatchResult
	summary *types.AnalyticsSummary
	err     error

	candidateID uuid.UUID
	jobID       uuid.UUID
	strategy    string
	scope       types.AnalyticsScope
	months      int
	since       time.Time
}

func (f *fakeEngine) Opportunities(_ context.Context, candidateID uuid.UUID) (*types.RankedFeed, error) {
	f.candidateID = candidateID
	if f.err != nil {
		return nil, f.err
	}
	return f.feed, nil
}

func (f *fakeEngine) Score(_ context.Context, jobID, candidateID uuid.UUID, strategy string) (*types.MatchResult, error) {
	f.jobID = jobID
	f.candidateID = candidateID
	f.strategy = strategy
	if f.err != nil {
		return nil, f.err
	}
	return f.match, nil
}

func (f *fakeEngine) Analytics(_ context.Context, scope types.AnalyticsScope, months int, since time.Time) (*types.AnalyticsSummary, error) {
	f.scope = scope
	f.months = months
	f.since = since
	if f.err != nil {
		return nil, f.err
	}
	return f.summary, nil
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		feed:    &types.RankedFeed{Opportunities: []types.ScoredOpportunity{}, SearchStrategy: types.TierGeneral},
		match:   &types.MatchResult{Strategy: "skills", Score: 50},
		summary: &types.AnalyticsSummary{TotalApplications: 3, WindowMonths: 6},
	}
}

const testSecret = "test-secret-key-for-jwt"

func newTestServer(t *testing.T, eng Engine, withAuth bool) *Server {
	t.Helper()
	cfg := Config{
		Port:      0,
		Engine:    eng,
		RateLimit: &ratelimit.Config{Enabled: false},
	}
	if withAuth {
		cfg.JWT = &config.JWTConfig{Secret: testSecret, ExpirationHours: 1}
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func doRequest(t *testing.T, h http.Handler, method, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestNew_RequiresEngine(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t, newFakeEngine(), false)

	w := doRequest(t, s.Handler(), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, newFakeEngine(), true)

	w := doRequest(t, s.Handler(), http.MethodOptions, "/candidates/"+uuid.NewString()+"/opportunities", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, newFakeEngine(), false)

	w := doRequest(t, s.Handler(), http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, s.Handler(), http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRateLimit_Exceeded(t *testing.T) {
	eng := newFakeEngine()
	s, err := New(Config{
		Engine: eng,
		RateLimit: &ratelimit.Config{
			Enabled:       true,
			DefaultLimit:  2,
			DefaultWindow: time.Minute,
		},
	})
	require.NoError(t, err)
	defer s.rateLimiter.Stop()

	target := "/candidates/" + uuid.NewString() + "/opportunities"
	for i := 0; i < 2; i++ {
		w := doRequest(t, s.Handler(), http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doRequest(t, s.Handler(), http.MethodGet, target, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "rate_limit_exceeded", body["error"])
}

func TestAuth_RequiresToken(t *testing.T) {
	s := newTestServer(t, newFakeEngine(), true)

	w := doRequest(t, s.Handler(), http.MethodGet, "/candidates/"+uuid.NewString()+"/opportunities", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, s.Handler(), http.MethodGet, "/candidates/"+uuid.NewString()+"/opportunities", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// health stays public
	w = doRequest(t, s.Handler(), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_ScopeEnforced(t *testing.T) {
	eng := newFakeEngine()
	s := newTestServer(t, eng, true)

	self := uuid.New()
	token, err := s.jwtService.GenerateToken(middleware.Principal{UserID: self, Role: middleware.RoleCandidate})
	require.NoError(t, err)

	w := doRequest(t, s.Handler(), http.MethodGet, "/candidates/"+self.String()+"/opportunities", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, self, eng.candidateID)

	w = doRequest(t, s.Handler(), http.MethodGet, "/candidates/"+uuid.NewString()+"/opportunities", token)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, s.Handler(), http.MethodGet, "/recruiters/"+self.String()+"/analytics", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuth_MatchRoles(t *testing.T) {
	s := newTestServer(t, newFakeEngine(), true)
	candidate := uuid.New()
	target := "/jobs/" + uuid.NewString() + "/match/" + candidate.String()

	recruiter, err := s.jwtService.GenerateToken(middleware.Principal{UserID: uuid.New(), Role: middleware.RoleRecruiter})
	require.NoError(t, err)
	w := doRequest(t, s.Handler(), http.MethodGet, target, recruiter)
	assert.Equal(t, http.StatusOK, w.Code)

	other, err := s.jwtService.GenerateToken(middleware.Principal{UserID: uuid.New(), Role: middleware.RoleCandidate})
	require.NoError(t, err)
	w = doRequest(t, s.Handler(), http.MethodGet, target, other)
	assert.Equal(t, http.StatusForbidden, w.Code)

	college, err := s.jwtService.GenerateToken(middleware.Principal{UserID: uuid.New(), Role: middleware.RoleCollege, College: "IIT"})
	require.NoError(t, err)
	w = doRequest(t, s.Handler(), http.MethodGet, target, college)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuth_CollegeAnalytics(t *testing.T) {
	eng := newFakeEngine()
	s := newTestServer(t, eng, true)

	token, err := s.jwtService.GenerateToken(middleware.Principal{UserID: uuid.New(), Role: middleware.RoleCollege, College: "IIT Delhi"})
	require.NoError(t, err)

	w := doRequest(t, s.Handler(), http.MethodGet, "/colleges/IIT%20Delhi/analytics", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.AnalyticsScope{Kind: types.ScopeCollege, ID: "IIT Delhi"}, eng.scope)

	w = doRequest(t, s.Handler(), http.MethodGet, "/colleges/NIT/analytics", token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestInternalErrorIsMasked(t *testing.T) {
	eng := newFakeEngine()
	eng.err = errors.New("connection refused on 10.0.0.5")
	s := newTestServer(t, eng, false)

	w := doRequest(t, s.Handler(), http.MethodGet, "/candidates/"+uuid.NewString()+"/opportunities", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", decodeError(t, w))
}
