package score

import (
	"fmt"

	"github.com/netwatch/posture/pkg/types"
)

// WHOIS_Pattern deduction table.
const (
	whoisAddPeriod      = 30
	whoisMissingLock    = 5
	whoisYoungDomain    = 30
	whoisYoungDays      = 30
	whoisNoRegDate      = 10
	whoisMalformedDate  = 5
)

// registryLocks are the six EPP lock statuses checked for absence. A
// fully-locked domain incurs none of these; each missing lock is an
// independent deduction.
var registryLocks = []string{
	"client delete prohibited",
	"client transfer prohibited",
	"client update prohibited",
	"server delete prohibited",
	"server transfer prohibited",
	"server update prohibited",
}

// scoreWHOISPattern rates registration-pattern signals from the rdap
// scan: add-period status, registry locks, and registration age.
// Registrar identity is extracted but informational only.
func (e *Engine) scoreWHOISPattern(in Input, st State) error {
	rdap := in.Bundle.RDAP
	if rdap == nil {
		return fmt.Errorf("rdap scan unavailable")
	}

	status := make(map[string]bool, len(rdap.Domain.Status))
	for _, s := range rdap.Domain.Status {
		status[s] = true
	}

	if status["add period"] {
		st.Deduct(types.WHOISPattern, whoisAddPeriod)
		e.logf("whois: domain in add period, newly registered (-%d)", whoisAddPeriod)
	}

	for _, lock := range registryLocks {
		if !status[lock] {
			st.Deduct(types.WHOISPattern, whoisMissingLock)
			e.logf("whois: %s not set (-%d)", lock, whoisMissingLock)
		}
	}

	if regDate := rdap.RegistrationDate(); regDate == "" {
		st.Deduct(types.WHOISPattern, whoisNoRegDate)
		e.logf("whois: no registration event (-%d)", whoisNoRegDate)
	} else if registered, err := parseISO(regDate); err != nil {
		st.Deduct(types.WHOISPattern, whoisMalformedDate)
		e.logf("whois: malformed registration date %q (-%d)", regDate, whoisMalformedDate)
	} else if age := daysBetween(registered, in.Ref); age < whoisYoungDays {
		st.Deduct(types.WHOISPattern, whoisYoungDomain)
		e.logf("whois: domain is %d days old (-%d)", max(0, age), whoisYoungDomain)
	}

	if name := rdap.RegistrarName(); name != "" {
		e.logf("whois: registrar is %q", name)
	}

	return nil
}
