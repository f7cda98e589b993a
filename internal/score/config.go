// Package score implements the component rule engine and the weighted
// harmonic-mean aggregator that turn one scan bundle into a posture
// score.
package score

import "github.com/netwatch/posture/pkg/types"

// HTTP method bitmask, as reported by the method scan flag.
const (
	MethodHEAD = 1 << iota
	MethodGET
	MethodPOST
	MethodPUT
	MethodPATCH
	MethodDELETE
	MethodTRACE
	MethodCONNECT
)

// Security-header bitmask, as reported by the hval scan security flag.
const (
	FlagHSTS = 1 << iota
	FlagCSP
	FlagXCTO
	FlagACAO
	FlagCOOP
	FlagCORP
	FlagCOEP
)

// Weights maps categories to their aggregation weight. Weights are
// configuration, not computed state; a zero weight keeps a category
// scored and reported but excluded from the final mean.
type Weights map[types.Category]int

// DefaultWeights returns the standard weight table. IP_Reputation is
// feature-flagged at 0 until the upstream feeds are trusted, and
// Content_Safety is reported but unweighted.
func DefaultWeights() Weights {
	return Weights{
		types.ConnectionSecurity: 18,
		types.CertificateHealth:  16,
		types.DNSRecordHealth:    15,
		types.DomainReputation:   23,
		types.WHOISPattern:       10,
		types.IPReputation:       0,
		types.CredentialSafety:   18,
	}
}

// Config is the immutable scoring configuration, constructed once at
// process start and passed explicitly into the engine.
type Config struct {
	Weights Weights

	// Curated lists consulted by individual scorers.
	CommonCAs         []string
	HighRiskCountries map[string]bool
	BulletproofASNs   map[string]bool
	AbusedTLDs        map[string]bool

	// Modern TLS versions that incur no deduction.
	ModernTLS map[string]bool
}

// NewConfig builds a Config with curated defaults and the given weight
// table. A nil weights table uses DefaultWeights.
func NewConfig(weights Weights) *Config {
	if weights == nil {
		weights = DefaultWeights()
	}
	return &Config{
		Weights:           weights,
		CommonCAs:         commonCAs(),
		HighRiskCountries: highRiskCountries(),
		BulletproofASNs:   bulletproofASNs(),
		AbusedTLDs:        abusedTLDs(),
		ModernTLS: map[string]bool{
			"TLS 1.2": true,
			"TLS 1.3": true,
		},
	}
}
