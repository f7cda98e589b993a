package score

import "github.com/netwatch/posture/pkg/types"

// State tracks the running category scores for one run. Every category
// starts at 100 and only accumulates deductions; values may transiently
// go non-positive while deductions stack and are clamped to [1,100]
// once all scorers have run.
type State map[types.Category]int

// NewState initializes all core categories at 100. Content_Safety is
// added only when content-inspection signals exist for the run.
func NewState(withContent bool) State {
	s := State{
		types.ConnectionSecurity: 100,
		types.CertificateHealth:  100,
		types.DNSRecordHealth:    100,
		types.DomainReputation:   100,
		types.WHOISPattern:       100,
		types.IPReputation:       100,
		types.CredentialSafety:   100,
	}
	if withContent {
		s[types.ContentSafety] = 100
	}
	return s
}

// Deduct subtracts points from a category. The category is created at
// 100 first if absent, so cross-cutting penalties can target
// conditionally-present categories.
func (s State) Deduct(cat types.Category, points int) {
	if _, ok := s[cat]; !ok {
		s[cat] = 100
	}
	s[cat] -= points
}

// Clamp bounds every category to the closed interval [1, 100].
func (s State) Clamp() {
	for cat, val := range s {
		if val < 1 {
			s[cat] = 1
		} else if val > 100 {
			s[cat] = 100
		}
	}
}
