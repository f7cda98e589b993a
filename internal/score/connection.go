package score

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/netwatch/posture/internal/bundle"
	"github.com/netwatch/posture/pkg/types"
)

// Connection_Security deduction table.
const (
	connNoResponse      = 10
	connNotHTTPS        = 45
	connModerateCipher  = 10
	connWeakCipher      = 45
	connOneHeaderGone   = 20
	connTwoHeadersGone  = 40
	connAdvancedHeaders = 5
	connOutdatedTLS     = 20
	connHTTPHop         = 10
	connLongChain       = 5
	connMaxChainHops    = 3
	connDomainHop       = 15
)

// scoreConnection rates HTTPS enforcement, cipher strength, the
// security-header bitmask, TLS version, and the shape of the redirect
// chain.
func (e *Engine) scoreConnection(in Input, st State) error {
	hval := in.Bundle.Hval
	cert := in.Bundle.Cert
	if hval == nil || cert == nil {
		return fmt.Errorf("hval or cert scan unavailable")
	}

	var finalHop *bundle.Hop
	if len(hval.Head) > 0 {
		finalHop = &hval.Head[len(hval.Head)-1]
	}

	switch {
	case finalHop == nil:
		st.Deduct(types.ConnectionSecurity, connNoResponse)
		e.logf("conn: no response from server (-%d)", connNoResponse)
	case finalHop.Status == 403:
		// The site is answering but access is restricted; that is not a
		// transport failure, so the HTTPS enforcement check is skipped.
		e.logf("conn: final hop is 403, HTTPS enforcement check skipped")
	case finalHop.Status < 200 || finalHop.Status >= 207 || !strings.HasPrefix(finalHop.URL, "https"):
		st.Deduct(types.ConnectionSecurity, connNotHTTPS)
		e.logf("conn: final hop not a 2xx HTTPS response (-%d)", connNotHTTPS)
	}

	cipher := "NONE"
	if finalHop != nil && finalHop.TLS != "" {
		cipher = finalHop.TLS
	}
	switch {
	case strings.Contains(cipher, "TLS_AES") || strings.Contains(cipher, "TLS_CHACHA20"):
		// Strong AEAD cipher, no deduction.
	case strings.Contains(cipher, "TLS_ECDHE_RSA"):
		st.Deduct(types.ConnectionSecurity, connModerateCipher)
		e.logf("conn: moderate cipher %s (-%d)", cipher, connModerateCipher)
	default:
		st.Deduct(types.ConnectionSecurity, connWeakCipher)
		e.logf("conn: weak or missing cipher %s (-%d)", cipher, connWeakCipher)
	}

	// Critical header band: HSTS, CSP, and X-Content-Type-Options are
	// counted for absence and only the highest band applies.
	critical := []int{FlagHSTS, FlagCSP, FlagXCTO}
	missing := 0
	for _, flag := range critical {
		if hval.Security&flag == 0 {
			missing++
		}
	}
	switch {
	case missing == 1:
		st.Deduct(types.ConnectionSecurity, connOneHeaderGone)
		e.logf("conn: 1 critical security header missing (-%d)", connOneHeaderGone)
	case missing >= 2:
		st.Deduct(types.ConnectionSecurity, connTwoHeadersGone)
		e.logf("conn: %d critical security headers missing (-%d)", missing, connTwoHeadersGone)
	}

	// The advanced isolation headers get one flat deduction if any of
	// COOP/CORP/COEP is absent.
	advanced := FlagCOOP | FlagCORP | FlagCOEP
	if hval.Security&advanced != advanced {
		st.Deduct(types.ConnectionSecurity, connAdvancedHeaders)
		e.logf("conn: incomplete COOP/CORP/COEP coverage (-%d)", connAdvancedHeaders)
	}

	if !e.cfg.ModernTLS[cert.Connection.TLSVersion] {
		st.Deduct(types.ConnectionSecurity, connOutdatedTLS)
		e.logf("conn: outdated TLS version %q (-%d)", cert.Connection.TLSVersion, connOutdatedTLS)
	}

	if len(hval.Head) > 1 {
		e.scoreRedirectChain(hval, finalHop, st)
	}

	return nil
}

func (e *Engine) scoreRedirectChain(hval *bundle.HvalScan, finalHop *bundle.Hop, st State) {
	for _, hop := range hval.Head[:len(hval.Head)-1] {
		if strings.HasPrefix(hop.URL, "http://") {
			st.Deduct(types.ConnectionSecurity, connHTTPHop)
			e.logf("conn: plain-HTTP hop in redirect chain %s (-%d)", hop.URL, connHTTPHop)
			break
		}
	}

	if len(hval.Head) > connMaxChainHops {
		st.Deduct(types.ConnectionSecurity, connLongChain)
		e.logf("conn: %d redirect hops (-%d)", len(hval.Head), connLongChain)
	}

	if hval.Item == "" || finalHop == nil || finalHop.URL == "" {
		return
	}
	finalURL, err := url.Parse(finalHop.URL)
	if err != nil || finalURL.Hostname() == "" {
		return
	}
	if !sameSite(hval.Item, finalURL.Hostname()) {
		st.Deduct(types.ConnectionSecurity, connDomainHop)
		e.logf("conn: final domain %s differs from requested %s (-%d)",
			finalURL.Hostname(), hval.Item, connDomainHop)
	}
}

// sameSite reports whether two hostnames belong to the same site:
// identical after www stripping, in a subdomain relationship in either
// direction, or sharing the same registrable domain.
func sameSite(a, b string) bool {
	a = strings.TrimPrefix(strings.ToLower(a), "www.")
	b = strings.TrimPrefix(strings.ToLower(b), "www.")
	if a == "" || b == "" || a == b {
		return true
	}
	if strings.HasSuffix(a, "."+b) || strings.HasSuffix(b, "."+a) {
		return true
	}
	regA, errA := publicsuffix.EffectiveTLDPlusOne(a)
	regB, errB := publicsuffix.EffectiveTLDPlusOne(b)
	if errA != nil || errB != nil {
		return false
	}
	return regA == regB
}
