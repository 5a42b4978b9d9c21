// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/courses-api/internal/search"
	"github.com/pdiddy/courses-api/pkg/types"
)

type stubProvider struct {
	name    string
	courses []types.Course
	err     error
	calls   int32
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(context.Context, search.Query, types.SearchConfig) ([]types.Course, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.courses, s.err
}

func (s *stubProvider) RedirectURL(q search.Query) string {
	return "https://example.com/" + s.name + "?q=" + q.Text
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func testServer(providers ...search.Provider) *Server {
	searchCfg := types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   time.Second,
			UserAgent: "test/0.1",
		},
		DefaultItems: 6,
		MaxItems:     50,
	}
	return New(types.ServerConfig{}, searchCfg, providers, quietLogger())
}

func healthyProviders() []search.Provider {
	return []search.Provider{
		&stubProvider{name: types.ProviderCoursera, courses: []types.Course{
			{Title: "Python for Everybody", URL: "https://coursera.org/x"},
		}},
		&stubProvider{name: types.ProviderEdx},
		&stubProvider{name: types.ProviderUdemy},
		&stubProvider{name: types.ProviderYouTube},
	}
}

func doRequest(t *testing.T, s *Server, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) types.SearchResponse {
	t.Helper()
	var resp types.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["detail"]
}

func TestCoursesHappyPath(t *testing.T) {
	s := testServer(healthyProviders()...)
	rec := doRequest(t, s, http.MethodGet, "/resources/courses?q=python")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decodeResponse(t, rec)
	require.Len(t, resp.Results, 4)
	for _, name := range types.ProviderNames {
		assert.Contains(t, resp.Results, name)
	}
	assert.Len(t, resp.Results[types.ProviderCoursera].Courses, 1)
	assert.NotEmpty(t, resp.Results[types.ProviderEdx].RedirectURL)
}

func TestCoursesEmptyQueryIsRejectedBeforeDispatch(t *testing.T) {
	providers := healthyProviders()
	s := testServer(providers...)

	for _, target := range []string{
		"/resources/courses",
		"/resources/courses?q=",
		"/resources/courses?q=%20%20",
	} {
		rec := doRequest(t, s, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, decodeDetail(t, rec), "cannot be empty")
	}

	for _, p := range providers {
		assert.Zero(t, atomic.LoadInt32(&p.(*stubProvider).calls), "no provider may be dispatched for an invalid request")
	}
}

func TestCoursesUnsupportedLanguage(t *testing.T) {
	s := testServer(healthyProviders()...)
	rec := doRequest(t, s, http.MethodGet, "/resources/courses?q=python&lang=fr")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeDetail(t, rec), "unsupported language")
}

func TestCoursesNumItemsValidation(t *testing.T) {
	tests := []struct {
		name     string
		numItems string
		wantCode int
	}{
		{"not an integer", "six", http.StatusBadRequest},
		{"zero", "0", http.StatusBadRequest},
		{"negative", "-3", http.StatusBadRequest},
		{"above max", "51", http.StatusBadRequest},
		{"at max", "50", http.StatusOK},
		{"minimum", "1", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testServer(healthyProviders()...)
			rec := doRequest(t, s, http.MethodGet, "/resources/courses?q=python&num_items="+tt.numItems)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestCoursesAllProvidersFailedIsStill200(t *testing.T) {
	providers := []search.Provider{
		&stubProvider{name: types.ProviderCoursera, err: errors.New("boom")},
		&stubProvider{name: types.ProviderEdx, err: errors.New("boom")},
		&stubProvider{name: types.ProviderUdemy, err: errors.New("boom")},
		&stubProvider{name: types.ProviderYouTube, err: errors.New("boom")},
	}
	s := testServer(providers...)
	rec := doRequest(t, s, http.MethodGet, "/resources/courses?q=python")

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.Len(t, resp.Results, 4)
	for name, pr := range resp.Results {
		assert.Empty(t, pr.Courses, name)
		assert.NotEmpty(t, pr.RedirectURL, name)
	}
}

func TestCoursesMethodNotAllowed(t *testing.T) {
	s := testServer(healthyProviders()...)
	rec := doRequest(t, s, http.MethodPost, "/resources/courses?q=python")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCoursesDegradedEnvelopeHasEmptyArrayNotNull(t *testing.T) {
	s := testServer(healthyProviders()...)
	rec := doRequest(t, s, http.MethodGet, "/resources/courses?q=python")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"courses":[]`)
	assert.NotContains(t, rec.Body.String(), `"courses":null`)
}

func TestRootWelcome(t *testing.T) {
	s := testServer(healthyProviders()...)
	rec := doRequest(t, s, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Welcome to the Free Courses API", body["message"])
}

func TestUnknownPathIs404(t *testing.T) {
	s := testServer(healthyProviders()...)
	rec := doRequest(t, s, http.MethodGet, "/nope")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", decodeDetail(t, rec))
}

func TestCORSHeaders(t *testing.T) {
	s := testServer(healthyProviders()...)

	rec := doRequest(t, s, http.MethodGet, "/resources/courses?q=python")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = doRequest(t, s, http.MethodOptions, "/resources/courses")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRunShutsDownOnContextCancel(t *testing.T) {
	s := New(types.ServerConfig{Host: "127.0.0.1", Port: 0}, types.SearchConfig{
		HTTPConfig:   types.HTTPConfig{Timeout: time.Second},
		DefaultItems: 6,
		MaxItems:     50,
	}, nil, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
