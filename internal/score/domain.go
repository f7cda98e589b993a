package score

import (
	"fmt"
	"strings"

	"github.com/netwatch/posture/internal/bundle"
	"github.com/netwatch/posture/pkg/types"
)

// Domain_Reputation deduction table.
const (
	domNoMX              = 20
	domSingleMX          = 5
	domNoDMARC           = 22
	domWeakDMARCPolicy   = 7
	domWeakDMARCSubPol   = 2
	domNoSPF             = 10
	domSPFSoftFail       = 5
	domSPFPermissive     = 12
	domNoDKIM            = 15
	domDefaultDKIM       = 5
	domTunnelingMethods  = 7
	domEditingMethods    = 20
	domUnderTwoNS        = 15
	domExactlyTwoNS      = 2
	domSingleNSVendor    = 2
	domAbusedTLD         = 10
	domJSRedirect        = 20
	domMetaRedirect      = 15
	domRefreshRedirect   = 10
	domOversizedTree     = 5
	domRedirectTreeLimit = 4
)

// scoreDomainReputation unifies the mail, method, and rdap signals into
// one reputation rating. All three scans must be present; the scorer is
// skipped otherwise.
func (e *Engine) scoreDomainReputation(in Input, st State) error {
	mail := in.Bundle.Mail
	method := in.Bundle.Method
	rdap := in.Bundle.RDAP
	if mail == nil || method == nil || rdap == nil {
		return fmt.Errorf("mail, method, or rdap scan unavailable")
	}

	e.scoreMail(mail, st)
	e.scoreMethods(method, st)
	e.scoreNameservers(rdap, st)
	return nil
}

func (e *Engine) scoreMail(mail *bundle.MailScan, st State) {
	switch {
	case len(mail.MX) == 0:
		st.Deduct(types.DomainReputation, domNoMX)
		e.logf("mail: no MX records (-%d)", domNoMX)
	case len(mail.MX) < 2:
		st.Deduct(types.DomainReputation, domSingleMX)
		e.logf("mail: single MX record (-%d)", domSingleMX)
	}

	if len(mail.DMARC) == 0 {
		st.Deduct(types.DomainReputation, domNoDMARC)
		e.logf("mail: DMARC record missing (-%d)", domNoDMARC)
	} else {
		policy := dmarcTag(mail.DMARC[0], "p=", "none")
		if !enforcingPolicy(policy) {
			st.Deduct(types.DomainReputation, domWeakDMARCPolicy)
			e.logf("mail: DMARC policy %q has no enforcement (-%d)", policy, domWeakDMARCPolicy)
		}
		// The subdomain policy defaults to the domain policy when the
		// sp= tag is absent.
		subPolicy := dmarcTag(mail.DMARC[0], "sp=", policy)
		if !enforcingPolicy(subPolicy) {
			st.Deduct(types.DomainReputation, domWeakDMARCSubPol)
			e.logf("mail: DMARC subdomain policy %q has no enforcement (-%d)", subPolicy, domWeakDMARCSubPol)
		}
	}

	spf := firstSPF(mail.SPF)
	switch {
	case spf == "":
		st.Deduct(types.DomainReputation, domNoSPF)
		e.logf("mail: SPF record missing (-%d)", domNoSPF)
	case strings.Contains(spf, "-all"):
		// Hard fail, the strict qualifier.
	case strings.Contains(spf, "~all"):
		st.Deduct(types.DomainReputation, domSPFSoftFail)
		e.logf("mail: SPF soft-fail qualifier (-%d)", domSPFSoftFail)
	case strings.Contains(spf, "?all") || strings.Contains(spf, "+all"):
		st.Deduct(types.DomainReputation, domSPFPermissive)
		e.logf("mail: permissive SPF qualifier (-%d)", domSPFPermissive)
	}

	if len(mail.DKIM) == 0 {
		st.Deduct(types.DomainReputation, domNoDKIM)
		e.logf("mail: no DKIM records (-%d)", domNoDKIM)
	} else if len(mail.DKIM) == 1 {
		record := strings.ToLower(mail.DKIM[0])
		if record == "" || strings.Contains(record, "default") {
			st.Deduct(types.DomainReputation, domDefaultDKIM)
			e.logf("mail: only the default DKIM selector (-%d)", domDefaultDKIM)
		}
	}
}

func (e *Engine) scoreMethods(method *bundle.MethodScan, st State) {
	if method.Flag&(MethodCONNECT|MethodPATCH) != 0 {
		st.Deduct(types.DomainReputation, domTunnelingMethods)
		e.logf("method: CONNECT/PATCH enabled, tunneling risk (-%d)", domTunnelingMethods)
	}
	if method.Flag&(MethodTRACE|MethodDELETE|MethodPUT) != 0 {
		st.Deduct(types.DomainReputation, domEditingMethods)
		e.logf("method: PUT/DELETE/TRACE enabled, editing risk (-%d)", domEditingMethods)
	}
	// Flags 3 (HEAD+GET) and 7 (HEAD+GET+POST) are the optimal and
	// acceptable configurations; no bonus beyond the absent penalties.
}

func (e *Engine) scoreNameservers(rdap *bundle.RDAPScan, st State) {
	ns := rdap.Nameservers
	switch {
	case len(ns) < 2:
		st.Deduct(types.DomainReputation, domUnderTwoNS)
		e.logf("rdap: fewer than two nameservers (-%d)", domUnderTwoNS)
	case len(ns) == 2:
		st.Deduct(types.DomainReputation, domExactlyTwoNS)
		e.logf("rdap: only two nameservers (-%d)", domExactlyTwoNS)
	}

	vendors := make(map[string]bool)
	for _, name := range ns {
		if labels := strings.Split(name, "."); len(labels) >= 2 {
			vendors[labels[len(labels)-2]] = true
		}
	}
	if len(vendors) == 1 && len(ns) >= 2 {
		st.Deduct(types.DomainReputation, domSingleNSVendor)
		e.logf("rdap: all nameservers on one vendor (-%d)", domSingleNSVendor)
	}

	if labels := strings.Split(rdap.Host, "."); len(labels) > 1 {
		tld := labels[len(labels)-1]
		if e.cfg.AbusedTLDs[strings.ToLower(tld)] {
			st.Deduct(types.DomainReputation, domAbusedTLD)
			e.logf("rdap: TLD %q associated with abuse (-%d)", tld, domAbusedTLD)
		}
	}
}

// scoreRedirects extends Domain_Reputation with the redirect tree:
// browser-executed redirects are a classic phishing delivery pattern.
// Runs independently of the mail/method/rdap scans.
func (e *Engine) scoreRedirects(in Input, st State) error {
	redirect := in.Bundle.Redirect
	if redirect == nil || redirect.Tree == nil {
		return nil
	}

	js, meta, refresh, _ := redirect.SignalCounts()
	if js > 0 {
		st.Deduct(types.DomainReputation, domJSRedirect)
		e.logf("redirect: %d JavaScript redirect(s) (-%d)", js, domJSRedirect)
	}
	if meta > 0 {
		st.Deduct(types.DomainReputation, domMetaRedirect)
		e.logf("redirect: %d meta redirect(s) (-%d)", meta, domMetaRedirect)
	}
	if refresh > 0 {
		st.Deduct(types.DomainReputation, domRefreshRedirect)
		e.logf("redirect: %d HTML refresh redirect(s) (-%d)", refresh, domRefreshRedirect)
	}
	if nodes := redirect.NodeCount(); nodes > domRedirectTreeLimit {
		st.Deduct(types.DomainReputation, domOversizedTree)
		e.logf("redirect: tree has %d nodes (-%d)", nodes, domOversizedTree)
	}
	return nil
}

// dmarcTag pulls one tag value out of a DMARC record, returning def
// when the tag is absent.
func dmarcTag(record, tag, def string) string {
	for _, part := range strings.Split(record, ";") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, tag) {
			return strings.TrimSpace(strings.TrimPrefix(part, tag))
		}
	}
	return def
}

func enforcingPolicy(policy string) bool {
	return policy == "reject" || policy == "quarantine"
}

// firstSPF returns the first record carrying a v=spf1 version tag.
func firstSPF(records []string) string {
	for _, record := range records {
		if strings.Contains(record, "v=spf1") {
			return record
		}
	}
	return ""
}
