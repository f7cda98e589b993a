package score

import (
	"fmt"

	"github.com/netwatch/posture/pkg/types"
)

// DNS_Record_Health deduction table.
const (
	dnsIncompleteRecords  = 10
	dnsMissingFoundation  = 15
	dnsSingleIPv4         = 10
	dnsNoIPv6             = 5
	dnsSingleIPv6         = 5
	dnsOptimalRcode       = 31
	dnsFoundationalCeil   = 7
)

// scoreDNS rates record completeness (the rcode bitmask) and address
// redundancy. An absent rcode counts as 0, which the band boundaries
// deliberately leave unpenalized.
func (e *Engine) scoreDNS(in Input, st State) error {
	dns := in.Bundle.DNS
	if dns == nil {
		return fmt.Errorf("dns scan unavailable")
	}

	switch {
	case dns.Rcode >= dnsOptimalRcode:
		// Full coverage of the requested record types.
	case dns.Rcode > dnsFoundationalCeil:
		st.Deduct(types.DNSRecordHealth, dnsIncompleteRecords)
		e.logf("dns: rcode %d missing advanced record types (-%d)", dns.Rcode, dnsIncompleteRecords)
	case dns.Rcode >= 1:
		st.Deduct(types.DNSRecordHealth, dnsMissingFoundation)
		e.logf("dns: rcode %d missing foundational record types (-%d)", dns.Rcode, dnsMissingFoundation)
	}

	if len(dns.A) < 2 {
		st.Deduct(types.DNSRecordHealth, dnsSingleIPv4)
		e.logf("dns: fewer than two IPv4 addresses (-%d)", dnsSingleIPv4)
	}

	// Zero and exactly-one IPv6 are mutually exclusive deductions.
	if len(dns.AAAA) == 0 {
		st.Deduct(types.DNSRecordHealth, dnsNoIPv6)
		e.logf("dns: no IPv6 support (-%d)", dnsNoIPv6)
	} else if len(dns.AAAA) < 2 {
		st.Deduct(types.DNSRecordHealth, dnsSingleIPv6)
		e.logf("dns: single IPv6 address (-%d)", dnsSingleIPv6)
	}

	return nil
}
