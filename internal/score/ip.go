package score

import (
	"strings"

	"github.com/netwatch/posture/pkg/types"
)

// IP_Reputation deduction table.
const (
	ipBlocklisted     = 100
	ipHighRiskCountry = 15
	ipBulletproofASN  = 10
	ipNoPTR           = 5
)

// scoreIPReputation rates the hosting address. A firewall blocklist hit
// is terminal and short-circuits the remaining checks; both scans are
// otherwise optional.
func (e *Engine) scoreIPReputation(in Input, st State) error {
	if fw := in.Bundle.Firewall; fw != nil && fw.Block {
		st.Deduct(types.IPReputation, ipBlocklisted)
		e.logf("ip: listed on a firewall blocklist (-%d)", ipBlocklisted)
		return nil
	}

	info := in.Bundle.IPInfo
	if info == nil {
		return nil
	}

	if country := strings.ToUpper(info.CountryValue()); e.cfg.HighRiskCountries[country] {
		st.Deduct(types.IPReputation, ipHighRiskCountry)
		e.logf("ip: hosted in high-risk country %s (-%d)", country, ipHighRiskCountry)
	}

	if asn := info.ASNValue(); asn != "" && e.cfg.BulletproofASNs[asn] {
		st.Deduct(types.IPReputation, ipBulletproofASN)
		e.logf("ip: ASN %s associated with bulletproof hosting (-%d)", asn, ipBulletproofASN)
	}

	if info.PTRValue() == "" {
		st.Deduct(types.IPReputation, ipNoPTR)
		e.logf("ip: no reverse DNS record (-%d)", ipNoPTR)
	}

	return nil
}
