package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netwatch/posture/internal/bundle"
)

func TestFetchAll_JoinsSuccessfulEndpoints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/dns/"):
			w.Write([]byte(`{"rcode": 31, "a": ["1.2.3.4"]}`))
		case strings.HasPrefix(r.URL.Path, "/dead/"):
			w.Write([]byte(`{"dead": false}`))
		case strings.HasPrefix(r.URL.Path, "/mail/"):
			w.Write([]byte(`{"mx": ["mx1.example.com"]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	o := NewOrchestrator(NewClient(srv.URL, nil), time.Second, nil)
	b := o.FetchAll(context.Background(), "example.com")

	require.NotNil(t, b.DNS)
	assert.Equal(t, 31, b.DNS.Rcode)
	require.NotNil(t, b.Dead)
	assert.False(t, b.Dead.Dead)
	require.NotNil(t, b.Mail)
	assert.Equal(t, []string{"mx1.example.com"}, b.Mail.MX)

	// Endpoints answered by 404 are simply absent.
	assert.Nil(t, b.Cert)
	assert.Nil(t, b.RDAP)
}

func TestFetchAll_SlowEndpointTimesOutAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/cert/"):
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		case strings.HasPrefix(r.URL.Path, "/dns/"):
			w.Write([]byte(`{"rcode": 31}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	o := NewOrchestrator(NewClient(srv.URL, nil), 100*time.Millisecond, nil)

	start := time.Now()
	b := o.FetchAll(context.Background(), "example.com")
	elapsed := time.Since(start)

	assert.Nil(t, b.Cert, "timed-out endpoint must be omitted")
	require.NotNil(t, b.DNS)
	assert.Less(t, elapsed, time.Second, "one slow endpoint must not stall the whole fetch")
}

func TestFetchAll_InvalidJSONOmitted(t *testing.T) {
	var logged []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/dns/") {
			w.Write([]byte(`{not json`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	o := NewOrchestrator(NewClient(srv.URL, nil), time.Second, func(format string, a ...any) {
		logged = append(logged, format)
	})
	b := o.FetchAll(context.Background(), "example.com")

	assert.Nil(t, b.DNS)
	assert.True(t, b.Empty())
	require.NotEmpty(t, logged)
}

func TestFetchAll_AllEndpointsDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	o := NewOrchestrator(NewClient(srv.URL, nil), time.Second, nil)
	b := o.FetchAll(context.Background(), "example.com")
	assert.True(t, b.Empty())
}

func TestFetchAll_CustomEndpointList(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	o := NewOrchestrator(NewClient(srv.URL, nil), time.Second, nil)
	o.SetEndpoints([]string{bundle.EndpointDead})
	o.FetchAll(context.Background(), "example.com")

	assert.Equal(t, []string{"/dead/example.com"}, paths)
}

func TestEppStatusToRDAP(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"clientTransferProhibited", "client transfer prohibited"},
		{"clientTransferProhibited https://icann.org/epp#clientTransferProhibited", "client transfer prohibited"},
		{"serverUpdateProhibited", "server update prohibited"},
		{"ok", "ok"},
		{"addPeriod", "add period"},
		{" clientHold ", "client hold"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, eppStatusToRDAP(tt.in), tt.in)
	}
}
