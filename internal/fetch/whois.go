package fetch

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"

	"github.com/netwatch/posture/internal/bundle"
)

// lookupWhois synthesizes an rdap payload from a live WHOIS query so
// the reputation and registration-pattern scorers still have input
// when the rdap endpoint is down.
func lookupWhois(host string) (*bundle.RDAPScan, error) {
	raw, err := whois.Whois(host)
	if err != nil {
		return nil, fmt.Errorf("whois query: %w", err)
	}

	info, err := whoisparser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("whois parse: %w", err)
	}
	if info.Domain == nil {
		return nil, fmt.Errorf("whois response has no domain section")
	}

	scan := &bundle.RDAPScan{
		Host:        host,
		Nameservers: info.Domain.NameServers,
	}
	for _, status := range info.Domain.Status {
		scan.Domain.Status = append(scan.Domain.Status, eppStatusToRDAP(status))
	}

	if created := createdDate(info.Domain); created != "" {
		scan.Domain.Events = append(scan.Domain.Events, bundle.RDAPEvent{
			Action: "registration",
			Date:   created,
		})
	}

	if info.Registrar != nil {
		scan.Registrar = info.Registrar.Name
	}

	return scan, nil
}

func createdDate(d *whoisparser.Domain) string {
	if d.CreatedDateInTime != nil {
		return d.CreatedDateInTime.UTC().Format(time.RFC3339)
	}
	return strings.TrimSpace(d.CreatedDate)
}

// eppStatusToRDAP converts an EPP status code such as
// "clientTransferProhibited https://icann.org/epp#..." into the
// space-separated lower-case form RDAP uses.
func eppStatusToRDAP(status string) string {
	code, _, _ := strings.Cut(strings.TrimSpace(status), " ")
	var b strings.Builder
	for i, r := range code {
		if unicode.IsUpper(r) && i > 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
