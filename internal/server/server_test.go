package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/career-navigator/internal/career"
	"github.com/spigell/career-navigator/internal/filtering"
)

type stubSource struct {
	paths []career.Path
	err   error
	got   career.Request
}

func (s *stubSource) Fetch(_ context.Context, req career.Request) ([]career.Path, error) {
	s.got = req
	return s.paths, s.err
}

func newTestServer(t *testing.T, source career.Source, logger *zap.Logger) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	return New(Config{Debug: true}, source, filtering.New(filtering.Default(2), logger), logger)
}

func TestNavigate(t *testing.T) {
	source := &stubSource{paths: []career.Path{
		{Title: "Data Scientist", SkillGaps: []string{"Statistics"}},
		{Title: "data scientist"},
		{Title: "UX Designer"},
		{Title: "Cloud Architect"},
	}}
	srv := newTestServer(t, source, zap.NewNop())

	body := strings.NewReader(`{"skills":"Python\nSQL","interests":"data"}`)
	req := httptest.NewRequest(http.MethodPost, "/navigate", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", rec.Code, rec.Body.String())
	}
	if source.got.Skills != "Python\nSQL" || source.got.Interests != "data" {
		t.Fatalf("unexpected request forwarded: %+v", source.got)
	}

	var paths []career.Path
	if err := json.Unmarshal(rec.Body.Bytes(), &paths); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	titles := career.Titles(paths)
	if len(titles) != 2 || titles[0] != "Data Scientist" || titles[1] != "UX Designer" {
		t.Fatalf("unexpected titles %v", titles)
	}
}

func TestNavigateErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		source *stubSource
		status int
	}{
		{name: "not json", body: "skills=go", source: &stubSource{}, status: http.StatusBadRequest},
		{name: "array body", body: `["go"]`, source: &stubSource{}, status: http.StatusBadRequest},
		{name: "scorer failure", body: `{"skills":"go"}`, source: &stubSource{err: errors.New("quota exceeded")}, status: http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.ErrorLevel)
			srv := newTestServer(t, tt.source, zap.New(core))

			req := httptest.NewRequest(http.MethodPost, "/navigate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			srv.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rec.Code)
			}
			if tt.status == http.StatusBadGateway && logs.FilterMessage("scoring profile failed").Len() != 1 {
				t.Fatalf("expected scorer failure to be logged")
			}
		})
	}
}

func TestFixtureEndpoint(t *testing.T) {
	srv := newTestServer(t, career.DemoSource{}, zap.NewNop())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/mock_data.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}

	paths, err := career.DecodePaths(rec.Body.Bytes())
	if err != nil {
		t.Fatalf("fixture is not decodable: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 demo paths, got %d", len(paths))
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t, career.DemoSource{}, zap.NewNop())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected health status %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected metrics status %d", rec.Code)
	}

	body := rec.Body.String()
	if !strings.Contains(body, `http_requests_total{endpoint="/healthz",method="GET",status="200"} 1`) {
		t.Fatalf("health request was not counted:\n%s", body)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := New(Config{Listen: "127.0.0.1:0"}, career.DemoSource{}, nil, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := srv.Run(ctx); err != nil {
		t.Fatalf("expected clean shutdown, got %v", err)
	}
}
