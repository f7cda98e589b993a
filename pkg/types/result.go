package types

import "encoding/json"

// Category is one of the named security dimensions tracked as an
// independent score.
type Category string

const (
	ConnectionSecurity Category = "Connection_Security"
	CertificateHealth  Category = "Certificate_Health"
	DNSRecordHealth    Category = "DNS_Record_Health"
	DomainReputation   Category = "Domain_Reputation"
	WHOISPattern       Category = "WHOIS_Pattern"
	IPReputation       Category = "IP_Reputation"
	CredentialSafety   Category = "Credential_Safety"
	ContentSafety      Category = "Content_Safety"
)

// Preflight tags attached to short-circuited results.
const (
	PreflightDead   = "dead"
	PreflightParked = "parked"
)

// Result is the external-facing scoring result: per-category integer
// scores plus the aggregated score, and the preflight reason when the
// run was short-circuited.
type Result struct {
	Target     Target           `json:"-"`
	Scores     map[Category]int `json:"-"`
	Aggregated float64          `json:"-"`
	Preflight  string           `json:"-"`
}

// MarshalJSON emits the flat output contract: one object carrying each
// category score by name, the aggregated score, and the optional
// preflight tag.
func (r Result) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Scores)+2)
	for cat, score := range r.Scores {
		out[string(cat)] = score
	}
	out["aggregatedScore"] = r.Aggregated
	if r.Preflight != "" {
		out["preflight"] = r.Preflight
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the flat wire shape produced by MarshalJSON.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Scores = make(map[Category]int)
	for key, val := range raw {
		switch key {
		case "aggregatedScore":
			if err := json.Unmarshal(val, &r.Aggregated); err != nil {
				return err
			}
		case "preflight":
			if err := json.Unmarshal(val, &r.Preflight); err != nil {
				return err
			}
		default:
			var score int
			if err := json.Unmarshal(val, &score); err != nil {
				return err
			}
			r.Scores[Category(key)] = score
		}
	}
	return nil
}
