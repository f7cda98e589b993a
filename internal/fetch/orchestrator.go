package fetch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/netwatch/posture/internal/bundle"
)

// Orchestrator fans one fetch per endpoint out concurrently and joins
// the results into a bundle. Any endpoint failure (transport error,
// timeout, non-2xx, malformed JSON) is logged and the endpoint is
// omitted; a failure is never fatal for the run. The caller decides
// what an empty bundle means.
type Orchestrator struct {
	client    *Client
	endpoints []string
	timeout   time.Duration
	logf      func(format string, a ...any)

	// WhoisFallback synthesizes the rdap payload from a live WHOIS
	// lookup when the rdap endpoint returned nothing.
	WhoisFallback bool
}

// NewOrchestrator builds an orchestrator over the default endpoint
// list. logf may be nil.
func NewOrchestrator(client *Client, timeout time.Duration, logf func(format string, a ...any)) *Orchestrator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Orchestrator{
		client:    client,
		endpoints: bundle.DefaultEndpoints,
		timeout:   timeout,
		logf:      logf,
	}
}

// SetEndpoints overrides the endpoint list (used by tests and config).
func (o *Orchestrator) SetEndpoints(endpoints []string) {
	o.endpoints = endpoints
}

// FetchAll gathers every endpoint concurrently, each under its own
// timeout, and returns the bundle of endpoints that succeeded. A slow
// or hung endpoint cannot block the others; completion is gated on the
// slowest non-timed-out fetch.
func (o *Orchestrator) FetchAll(ctx context.Context, host string) *bundle.Bundle {
	b := &bundle.Bundle{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	for _, endpoint := range o.endpoints {
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, o.timeout)
			defer cancel()

			payload, err := o.client.Fetch(fetchCtx, endpoint, host)
			if err != nil {
				o.logf("endpoint %s unavailable: %v", endpoint, err)
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			if err := b.Decode(endpoint, payload); err != nil {
				o.logf("endpoint %s returned invalid JSON: %v", endpoint, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	if o.WhoisFallback && b.RDAP == nil {
		if rdap, err := lookupWhois(host); err != nil {
			o.logf("whois fallback failed: %v", err)
		} else {
			o.logf("rdap endpoint absent, using whois fallback")
			b.RDAP = rdap
		}
	}

	return b
}
