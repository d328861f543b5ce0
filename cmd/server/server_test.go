package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teatak/postag/config"
)

const trainData = `The_DET cat_NOUN sleeps_VERB
A_DET dog_NOUN barks_VERB
My_DET dog_NOUN runs_VERB fast_ADV
A_DET cat_NOUN meows_VERB loudly_ADV
`

func newTestServer(t *testing.T) (*server, *config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.Train = filepath.Join(t.TempDir(), "train.txt")
	require.NoError(t, os.WriteFile(cfg.Train, []byte(trainData), 0644))

	srv := newServer(cfg, prometheus.NewRegistry())
	require.NoError(t, srv.reload())
	return srv, cfg
}

func postTag(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/tag", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleTag(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.routes()

	rec := postTag(t, h, `{"text": "The zebra barks"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp TagResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []TaggedWord{
		{Word: "The", Tag: "DET"},
		{Word: "zebra", Tag: "NOUN"},
		{Word: "barks", Tag: "VERB"},
	}, resp.Tokens)
	assert.Equal(t, []string{"zebra"}, resp.OOV)

	rec = postTag(t, h, `{"words": ["A", "cat", "meows"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleTag_Errors(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.routes()

	rec := postTag(t, h, `{"text": "   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postTag(t, h, `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/tag", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	empty := newServer(config.Default(), prometheus.NewRegistry())
	rec = postTag(t, empty.routes(), `{"text": "The cat"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleReload(t *testing.T) {
	srv, cfg := newTestServer(t)
	h := srv.routes()
	before := srv.current()

	req := httptest.NewRequest(http.MethodPost, "/reload", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotSame(t, before, srv.current())

	// A broken corpus keeps the previous model serving.
	require.NoError(t, os.WriteFile(cfg.Train, []byte("The_DET cat\n"), 0644))
	current := srv.current()
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/reload", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Same(t, current, srv.current())
}

func TestMetrics(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.routes()
	postTag(t, h, `{"text": "The zebra barks"}`)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `postag_requests_total{status="ok"} 1`)
	assert.Contains(t, string(body), "postag_oov_tokens_total 1")
	assert.Contains(t, string(body), "postag_model_tags 4")
}

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestHandlers_LogWriteErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.routes()

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	req := httptest.NewRequest(http.MethodPost, "/tag", strings.NewReader(`{"text": "The cat meows"}`))
	h.ServeHTTP(brokenWriter{httptest.NewRecorder()}, req)
	assert.Contains(t, buf.String(), "Failed to write tag response: connection reset")

	buf.Reset()
	h.ServeHTTP(brokenWriter{httptest.NewRecorder()}, httptest.NewRequest(http.MethodPost, "/reload", nil))
	assert.Contains(t, buf.String(), "Failed to write reload response: connection reset")
}
