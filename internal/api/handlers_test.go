// MaisonMai - Gift Recommendation Analytics
// Copyright 2026 The MaisonMai Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/maisonmai/analytics

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/maisonmai/analytics/internal/config"
	"github.com/maisonmai/analytics/internal/dashboard"
	"github.com/maisonmai/analytics/internal/eventstore"
	"github.com/maisonmai/analytics/internal/mockdata"
	"github.com/maisonmai/analytics/internal/models"
)

var testNow = time.Date(2026, 3, 31, 15, 0, 0, 0, time.UTC)

// testResponse mirrors models.APIResponse with Data left raw.
type testResponse struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func testConfig() *config.Config {
	return &config.Config{
		Analytics: config.AnalyticsConfig{
			DefaultRangeDays: 7,
			MaxRangeDays:     90,
			CacheTTL:         time.Minute,
		},
		Security: config.SecurityConfig{
			CORSOrigins:       []string{"https://admin.maisonmai.test"},
			RateLimitDisabled: true,
		},
	}
}

// stubReadiness is a fixed ReadinessChecker.
type stubReadiness struct {
	err   error
	state string
}

func (s stubReadiness) Ready(context.Context) error { return s.err }
func (s stubReadiness) State() string               { return s.state }

// failingStore fails every fetch.
type failingStore struct{ err error }

func (s failingStore) FetchEvents(context.Context, *time.Time, *time.Time) ([]models.Event, error) {
	return nil, s.err
}

func (s failingStore) FetchAggregateCounts(context.Context, *time.Time, *time.Time) (models.AggregateCounts, error) {
	return models.AggregateCounts{}, s.err
}

func newTestServer(t *testing.T, store eventstore.Store, readiness ReadinessChecker) http.Handler {
	t.Helper()
	cfg := testConfig()
	if store == nil {
		store = eventstore.NewMemoryStore(mockdata.New(mockdata.DefaultOptions(testNow)))
	}
	svc := dashboard.NewService(store, &cfg.Analytics, dashboard.WithClock(func() time.Time { return testNow }))
	handler := NewHandler(svc, cfg, readiness)
	return NewRouter(handler, NewChiMiddlewareFromConfig(&cfg.Security)).SetupChi()
}

func doRequest(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) testResponse {
	t.Helper()
	var resp testResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rec.Body.String())
	}
	return resp
}

func date(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAnalyticsOverview_DefaultRange(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/analytics/overview")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("expected ETag header")
	}

	resp := decodeResponse(t, rec)
	if resp.Status != "success" {
		t.Errorf("status = %q, want success", resp.Status)
	}
	if resp.Metadata.Range == nil {
		t.Fatal("metadata.range missing")
	}
	if !resp.Metadata.Range.From.Equal(date("2026-03-25")) || !resp.Metadata.Range.To.Equal(date("2026-03-31")) {
		t.Errorf("range = %v, want 2026-03-25..2026-03-31", resp.Metadata.Range)
	}
	if resp.Metadata.Source != models.SourceEventLog {
		t.Errorf("source = %q, want event_log", resp.Metadata.Source)
	}
	if resp.Metadata.Cached {
		t.Error("first request should not be cached")
	}

	var d models.Dashboard
	if err := json.Unmarshal(resp.Data, &d); err != nil {
		t.Fatalf("data is not a dashboard: %v", err)
	}
	if len(d.Funnel) != len(models.EventTypes()) {
		t.Errorf("funnel has %d stages, want %d", len(d.Funnel), len(models.EventTypes()))
	}
	if len(d.Daily) != 7 {
		t.Errorf("daily has %d rows, want 7", len(d.Daily))
	}
}

func TestAnalyticsOverview_SecondRequestCached(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil, nil)

	target := "/api/v1/analytics/overview?from=2026-03-01&to=2026-03-14"
	first := decodeResponse(t, doRequest(t, srv, http.MethodGet, target))
	second := decodeResponse(t, doRequest(t, srv, http.MethodGet, target))

	if first.Metadata.Cached {
		t.Error("first response marked cached")
	}
	if !second.Metadata.Cached {
		t.Error("second response should be served from cache")
	}
}

func TestAnalyticsViews(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil, nil)

	tests := []struct {
		path      string
		wantArray bool
	}{
		{"/api/v1/analytics/funnel", true},
		{"/api/v1/analytics/kpis", false},
		{"/api/v1/analytics/retention", false},
		{"/api/v1/analytics/daily", true},
		{"/api/v1/analytics/categories", true},
		{"/api/v1/analytics/products", true},
		{"/api/v1/analytics/engagement", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodGet, tt.path+"?from=2026-03-01&to=2026-03-31")
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
			}
			resp := decodeResponse(t, rec)
			data := strings.TrimSpace(string(resp.Data))
			if tt.wantArray && !strings.HasPrefix(data, "[") {
				t.Errorf("data = %.40s..., want a JSON array", data)
			}
			if !tt.wantArray && !strings.HasPrefix(data, "{") {
				t.Errorf("data = %.40s..., want a JSON object", data)
			}
		})
	}
}

func TestAnalyticsKPIs_IncludesComparisonRange(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil, nil)

	resp := decodeResponse(t, doRequest(t, srv, http.MethodGet, "/api/v1/analytics/kpis?from=2026-03-08&to=2026-03-14"))

	var body struct {
		Comparison models.DateRange `json:"comparison"`
		KPIs       models.KPISet    `json:"kpis"`
	}
	if err := json.Unmarshal(resp.Data, &body); err != nil {
		t.Fatalf("unmarshal kpis: %v", err)
	}
	if !body.Comparison.From.Equal(date("2026-03-01")) || !body.Comparison.To.Equal(date("2026-03-07")) {
		t.Errorf("comparison = %v, want 2026-03-01..2026-03-07", body.Comparison)
	}
}

func TestAnalytics_RangeValidation(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil, nil)

	tests := []struct {
		name      string
		query     string
		wantField string
		wantTag   string
	}{
		{"bad from format", "from=03/01/2026", "from", "datetime"},
		{"bad to format", "to=2026-3-1", "to", "datetime"},
		{"from after to", "from=2026-03-10&to=2026-03-01", "from", "ltefield"},
		{"span too long", "from=2025-01-01&to=2026-03-01", "to", "max_span"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodGet, "/api/v1/analytics/funnel?"+tt.query)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			resp := decodeResponse(t, rec)
			if resp.Status != "error" || resp.Error == nil {
				t.Fatalf("expected error envelope, got %s", rec.Body.String())
			}
			if resp.Error.Code != ErrCodeValidation {
				t.Errorf("code = %q, want %q", resp.Error.Code, ErrCodeValidation)
			}
			if resp.Error.Details["field"] != tt.wantField {
				t.Errorf("details.field = %v, want %s", resp.Error.Details["field"], tt.wantField)
			}
			if resp.Error.Details["tag"] != tt.wantTag {
				t.Errorf("details.tag = %v, want %s", resp.Error.Details["tag"], tt.wantTag)
			}
		})
	}
}

func TestAnalytics_StoreError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"query failure", errors.New("disk on fire"), http.StatusInternalServerError, ErrCodeInternalError},
		{"timeout", context.DeadlineExceeded, http.StatusServiceUnavailable, ErrCodeServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := newTestServer(t, failingStore{err: tt.err}, nil)

			rec := doRequest(t, srv, http.MethodGet, "/api/v1/analytics/overview")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			resp := decodeResponse(t, rec)
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.wantCode)
			}
			if strings.Contains(rec.Body.String(), "disk on fire") {
				t.Error("internal error text leaked to client")
			}
		})
	}
}

func TestAnalytics_ResilientStoreDegradesToEmpty(t *testing.T) {
	t.Parallel()

	resilient := eventstore.NewResilient(failingStore{err: errors.New("connection refused")}, &config.EventStoreConfig{
		FetchTimeout: time.Second,
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  100,
		FailureRatio: 0.5,
	})
	srv := newTestServer(t, resilient, resilient)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/analytics/funnel")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	resp := decodeResponse(t, rec)
	if !resp.Metadata.Degraded {
		t.Error("metadata.degraded = false, want true")
	}
	var stages []models.FunnelStage
	if err := json.Unmarshal(resp.Data, &stages); err != nil {
		t.Fatalf("unmarshal funnel: %v", err)
	}
	if len(stages) != 7 {
		t.Errorf("len(stages) = %d, want 7", len(stages))
	}
	for _, s := range stages {
		if s.Users != 0 {
			t.Errorf("stage %s users = %d, want 0", s.Stage, s.Users)
		}
	}
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/analytics/geography")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Error == nil || resp.Error.Code != ErrCodeNotFound {
		t.Errorf("error = %+v, want NOT_FOUND", resp.Error)
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/analytics/overview")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if resp := decodeResponse(t, rec); resp.Error == nil || resp.Error.Code != ErrCodeMethodNotAllowed {
		t.Errorf("error = %+v, want METHOD_NOT_ALLOWED", resp.Error)
	}
}

func TestRouter_SecurityHeadersAndRequestID(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/analytics/retention")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q", got)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, nil, nil)

	doRequest(t, srv, http.MethodGet, "/api/v1/analytics/daily")
	rec := doRequest(t, srv, http.MethodGet, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "api_requests_total") {
		t.Error("metrics output missing api_requests_total")
	}
}

func TestSanitizeLogValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"line\nbreak", `line\x0abreak`},
		{"tab\there", `tab\x09here`},
		{"del\x7f", `del\x7f`},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateETag(t *testing.T) {
	t.Parallel()

	a := generateETag([]byte(`{"a":1}`))
	b := generateETag([]byte(`{"a":2}`))
	if a == b {
		t.Error("different bodies produced the same ETag")
	}
	if a != generateETag([]byte(`{"a":1}`)) {
		t.Error("ETag is not deterministic")
	}
	if !strings.HasPrefix(a, `"`) || !strings.HasSuffix(a, `"`) {
		t.Errorf("ETag %s should be quoted", a)
	}
}
