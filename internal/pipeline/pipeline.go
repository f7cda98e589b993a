// Package pipeline wires fetch, preflight, scoring, and aggregation
// into the single scoring flow shared by the CLI and the HTTP API.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/netwatch/posture/internal/bundle"
	"github.com/netwatch/posture/internal/preflight"
	"github.com/netwatch/posture/internal/score"
	"github.com/netwatch/posture/pkg/types"
)

// ErrNoData is returned when every endpoint failed: with nothing to
// score, the run is a hard stop.
var ErrNoData = errors.New("no scan data retrieved")

// Fetcher gathers scan payloads for a host.
type Fetcher interface {
	FetchAll(ctx context.Context, host string) *bundle.Bundle
}

// Pipeline runs one scoring invocation end to end. No state outlives a
// single Run call.
type Pipeline struct {
	Fetcher Fetcher
	Engine  *score.Engine
	Weights score.Weights

	// Now supplies the reference time for validity and age checks;
	// nil means time.Now. Tests and the fixed-data mode pin it.
	Now func() time.Time
}

// Run fetches live data for the target and scores it. live carries
// content-inspection signals from an active browser session; when
// non-nil the run is in live mode and the dead/parked preflight is
// skipped, since a human is already looking at rendered content.
func (p *Pipeline) Run(ctx context.Context, target types.Target, live *bundle.ContentSignals) (*types.Result, error) {
	b := p.Fetcher.FetchAll(ctx, target.Host)
	return p.Score(target, b, live)
}

// Score runs preflight, the scorers, and aggregation over an
// already-assembled bundle.
func (p *Pipeline) Score(target types.Target, b *bundle.Bundle, live *bundle.ContentSignals) (*types.Result, error) {
	if b.Empty() {
		return nil, ErrNoData
	}

	if live == nil {
		switch preflight.Evaluate(b) {
		case preflight.Dead:
			return p.shortCircuit(target, types.PreflightDead), nil
		case preflight.Parked:
			return p.shortCircuit(target, types.PreflightParked), nil
		}
	}

	st := p.Engine.Run(b, p.now(), live)
	return &types.Result{
		Target:     target,
		Scores:     map[types.Category]int(st),
		Aggregated: score.Round2(score.Aggregate(p.Weights, st)),
	}, nil
}

// shortCircuit forces every configured category to the minimum score
// and tags the result with the preflight reason.
func (p *Pipeline) shortCircuit(target types.Target, reason string) *types.Result {
	scores := make(map[types.Category]int, len(p.Weights))
	for cat := range p.Weights {
		scores[cat] = 1
	}
	return &types.Result{
		Target:     target,
		Scores:     scores,
		Aggregated: 1,
		Preflight:  reason,
	}
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
