package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/GrandChallenge_Go/internal/domain"
	"github.com/osse101/GrandChallenge_Go/internal/tournament"
)

const testAPIKey = "router-test-key"

// stubService answers the calls the router tests make; anything else panics
type stubService struct {
	tournament.Service
	advanced []uuid.UUID
}

func (s *stubService) List(ctx context.Context) ([]domain.Tournament, error) {
	return []domain.Tournament{{Name: "Spring Cup"}}, nil
}

func (s *stubService) AdvanceRound(ctx context.Context, id uuid.UUID) (*domain.Round, error) {
	s.advanced = append(s.advanced, id)
	return nil, domain.ErrNotStarted
}

type okPool struct{}

func (okPool) Ping(ctx context.Context) error { return nil }
func (okPool) Close()                         {}

func newTestRouter(svc tournament.Service, origins ...string) http.Handler {
	return NewRouter(Options{APIKey: testAPIKey, CORSOrigins: origins}, okPool{}, svc)
}

func TestRouter_PublicEndpoints(t *testing.T) {
	router := newTestRouter(&stubService{})

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType), path)
	}
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	router := newTestRouter(&stubService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tournaments", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/tournaments", nil)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Spring Cup")
	assert.NotEmpty(t, rec.Header().Get(HeaderRequestID))
}

func TestRouter_AdminRouteReachesService(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)
	id := uuid.New()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tournaments/"+id.String()+"/admin/advance", nil)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), tournament.MsgNoCurrentRound)
	assert.Equal(t, []uuid.UUID{id}, svc.advanced)
}

func TestRouter_RejectsOversizedBody(t *testing.T) {
	router := newTestRouter(&stubService{})

	body := `{"name":"` + strings.Repeat("x", MaxRequestBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tournaments", strings.NewReader(body))
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CORSPreflightSkipsAuth(t *testing.T) {
	router := newTestRouter(&stubService{}, "https://dashboard.example")

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/tournaments", nil)
	req.Header.Set("Origin", "https://dashboard.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", HeaderAPIKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://dashboard.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
