// Package preflight decides whether a host is worth scoring at all.
// Dead and genuinely parked domains short-circuit to the minimum score;
// parked pages hiding browser-executed redirects are treated as
// deceptive and forced through full scoring.
package preflight

import "github.com/netwatch/posture/internal/bundle"

// Outcome is the gate's decision for one run.
type Outcome int

const (
	// Proceed means full scoring should run.
	Proceed Outcome = iota
	// Dead means the site is dead: every category is forced to the
	// minimum and the result is tagged "dead".
	Dead
	// Parked means the site is genuinely parked: same effect as Dead,
	// tagged "parked".
	Parked
)

func (o Outcome) String() string {
	switch o {
	case Dead:
		return "dead"
	case Parked:
		return "parked"
	default:
		return "proceed"
	}
}

// Evaluate inspects the dead/parked signals and the redirect tree.
// A parked page whose redirect tree carries a js, meta, or refresh
// signal anywhere gets no free pass: it proceeds to full scoring.
func Evaluate(b *bundle.Bundle) Outcome {
	if b == nil {
		return Proceed
	}
	if b.Dead != nil && b.Dead.Dead {
		return Dead
	}
	if b.Parked != nil && b.Parked.Park {
		if b.Redirect.HasSuspiciousSignal() {
			return Proceed
		}
		return Parked
	}
	return Proceed
}
