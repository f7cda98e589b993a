package score

import (
	"fmt"
	"time"

	"github.com/netwatch/posture/internal/bundle"
)

// Input is the immutable material one scoring pass works from.
type Input struct {
	Bundle *bundle.Bundle
	Ref    time.Time
	// Signals is the resolved content-signal set: live signals when the
	// caller supplied them, otherwise the webpage_inspect payload.
	Signals *bundle.ContentSignals
}

// Engine runs the component scorers in a fixed, deterministic sequence
// against one bundle. Scoring is single-threaded: several scorers
// deliberately touch the same category, so ordering must stay
// reproducible.
type Engine struct {
	cfg  *Config
	logf func(format string, a ...any)
}

// New builds an engine. logf receives per-deduction detail lines and
// may be nil to discard them.
func New(cfg *Config, logf func(format string, a ...any)) *Engine {
	if cfg == nil {
		cfg = NewConfig(nil)
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Engine{cfg: cfg, logf: logf}
}

type step struct {
	name string
	run  func(in Input, st State) error
}

func (e *Engine) steps() []step {
	return []step{
		{"certificate", e.scoreCertificate},
		{"certificate_ct", e.scoreCertificateCT},
		{"dns", e.scoreDNS},
		{"connection", e.scoreConnection},
		{"domain_reputation", e.scoreDomainReputation},
		{"redirect_reputation", e.scoreRedirects},
		{"credential_safety", e.scoreCredentialSafety},
		{"whois_pattern", e.scoreWHOISPattern},
		{"ip_reputation", e.scoreIPReputation},
		{"content_safety", e.scoreContentSafety},
		{"deception", e.scoreDeception},
	}
}

// Run scores the bundle and returns the clamped category scores.
// live overrides the bundle's webpage_inspect signals when non-nil.
// A failing scorer is logged and skipped; it never aborts the run or
// touches categories owned by other scorers.
func (e *Engine) Run(b *bundle.Bundle, ref time.Time, live *bundle.ContentSignals) State {
	signals := live
	if signals == nil && b != nil && b.Inspect != nil {
		signals = &b.Inspect.Signals
	}

	in := Input{Bundle: b, Ref: ref, Signals: signals}
	st := NewState(signals != nil)

	for _, s := range e.steps() {
		if err := e.runStep(s, in, st); err != nil {
			e.logf("scorer %s skipped: %v", s.name, err)
		}
	}

	st.Clamp()
	return st
}

// runStep isolates one scorer: a panic inside it is converted to an
// error so a malformed payload can never corrupt the rest of the pass.
func (e *Engine) runStep(s step, in Input, st State) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.run(in, st)
}
