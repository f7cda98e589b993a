package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netwatch/posture/internal/bundle"
	"github.com/netwatch/posture/internal/pipeline"
	"github.com/netwatch/posture/internal/score"
	"github.com/netwatch/posture/pkg/types"
)

// stubFetcher returns a fixed bundle regardless of host.
type stubFetcher struct {
	bundle *bundle.Bundle
}

func (f *stubFetcher) FetchAll(ctx context.Context, host string) *bundle.Bundle {
	return f.bundle
}

func newTestServer(b *bundle.Bundle) *Server {
	weights := score.DefaultWeights()
	p := &pipeline.Pipeline{
		Fetcher: &stubFetcher{bundle: b},
		Engine:  score.New(score.NewConfig(weights), nil),
		Weights: weights,
	}
	return NewServer(":0", p)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&bundle.Bundle{})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")

	var body map[string]string
	err = json.NewDecoder(resp.Body).Decode(&body)
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
}

func TestScoreEndpoint(t *testing.T) {
	b := &bundle.Bundle{
		DNS: &bundle.DNSScan{Rcode: 31, A: []string{"1.2.3.4", "5.6.7.8"}, AAAA: []string{"::1", "::2"}},
	}
	srv := newTestServer(b)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	body := bytes.NewBufferString(`{"host": "example.com"}`)
	resp, err := http.Post(ts.URL+"/api/v1/score", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result types.Result
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Scores[types.DNSRecordHealth])
	assert.Greater(t, result.Aggregated, 0.0)
}

func TestScoreEndpoint_DeadHost(t *testing.T) {
	b := &bundle.Bundle{
		Dead: &bundle.DeadScan{Dead: true},
	}
	srv := newTestServer(b)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	body := bytes.NewBufferString(`{"host": "gone.example"}`)
	resp, err := http.Post(ts.URL+"/api/v1/score", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result types.Result
	err = json.NewDecoder(resp.Body).Decode(&result)
	require.NoError(t, err)
	assert.Equal(t, types.PreflightDead, result.Preflight)
	assert.Equal(t, 1.0, result.Aggregated)
}

func TestScoreEndpoint_MissingHost(t *testing.T) {
	srv := newTestServer(&bundle.Bundle{})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	body := bytes.NewBufferString(`{}`)
	resp, err := http.Post(ts.URL+"/api/v1/score", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var errBody ErrorResponse
	err = json.NewDecoder(resp.Body).Decode(&errBody)
	require.NoError(t, err)
	assert.Contains(t, errBody.Error, "host is required")
}

func TestScoreEndpoint_InvalidJSON(t *testing.T) {
	srv := newTestServer(&bundle.Bundle{})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	body := bytes.NewBufferString(`{not json`)
	resp, err := http.Post(ts.URL+"/api/v1/score", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScoreEndpoint_NoData(t *testing.T) {
	srv := newTestServer(&bundle.Bundle{})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	body := bytes.NewBufferString(`{"host": "example.com"}`)
	resp, err := http.Post(ts.URL+"/api/v1/score", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestUnknownRouteReturns404(t *testing.T) {
	srv := newTestServer(&bundle.Bundle{})
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/nonexistent")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
