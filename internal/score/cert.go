package score

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/netwatch/posture/pkg/types"
)

// Certificate_Health deduction table.
const (
	certNoCerts          = 50
	certMissingDates     = 9
	certMalformedDates   = 8
	certExpired          = 50
	certNotYetValid      = 50
	certMaxExpiryDecay   = 30
	certExpiryWindowDays = 30
	certHostnameMismatch = 10
	certChainUnverified  = 10
	certRevoked          = 40
	certNoOCSPStaple     = 5
	certSingleCTEntry    = 10
	certFreshIssue       = 20
	certFreshIssueDays   = 7
	certUnusualCA        = 5
)

// scoreCertificate rates the served leaf certificate: validity window,
// the 30-day expiry decay, verification status, and revocation.
func (e *Engine) scoreCertificate(in Input, st State) error {
	cert := in.Bundle.Cert
	if cert == nil {
		return fmt.Errorf("cert scan unavailable")
	}

	if len(cert.Certs) == 0 {
		st.Deduct(types.CertificateHealth, certNoCerts)
		e.logf("cert: no certificates in response (-%d)", certNoCerts)
		return nil
	}

	leaf := cert.Certs[0]
	if leaf.NotAfter == "" || leaf.NotBefore == "" {
		st.Deduct(types.CertificateHealth, certMissingDates)
		e.logf("cert: validity dates missing (-%d)", certMissingDates)
		return nil
	}

	notAfter, errAfter := parseISO(leaf.NotAfter)
	notBefore, errBefore := parseISO(leaf.NotBefore)
	if errAfter != nil || errBefore != nil {
		st.Deduct(types.CertificateHealth, certMalformedDates)
		e.logf("cert: validity dates malformed (-%d)", certMalformedDates)
		return nil
	}

	// Expired and not-yet-valid are independent checks, not mutually
	// exclusive: a garbage validity window can trip both.
	if in.Ref.After(notAfter) {
		st.Deduct(types.CertificateHealth, certExpired)
		e.logf("cert: certificate expired (-%d)", certExpired)
	}
	if in.Ref.Before(notBefore) {
		st.Deduct(types.CertificateHealth, certNotYetValid)
		e.logf("cert: certificate not yet valid (-%d)", certNotYetValid)
	}

	// Two-band expiry decay: nothing beyond 30 days remaining, then a
	// linear gradient from 0 at 30 days to the maximum at 0 days.
	days := daysBetween(in.Ref, notAfter)
	if days <= certExpiryWindowDays {
		deduction := int(math.Round(float64(certMaxExpiryDecay) *
			float64(certExpiryWindowDays-days) / float64(certExpiryWindowDays)))
		st.Deduct(types.CertificateHealth, deduction)
		e.logf("cert: expires in %d days (-%d)", days, deduction)
	}

	if !cert.Verification.HostnameMatches {
		st.Deduct(types.CertificateHealth, certHostnameMismatch)
		e.logf("cert: hostname does not match certificate (-%d)", certHostnameMismatch)
	}
	if !cert.Verification.ChainVerified {
		st.Deduct(types.CertificateHealth, certChainUnverified)
		e.logf("cert: chain not verified (-%d)", certChainUnverified)
	}

	if cert.Verification.CrliteRevoked {
		st.Deduct(types.CertificateHealth, certRevoked)
		e.logf("cert: revoked via CRLite (-%d)", certRevoked)
	} else if cert.Verification.OCSPStatus == "revoked" {
		st.Deduct(types.CertificateHealth, certRevoked)
		e.logf("cert: revoked via OCSP (-%d)", certRevoked)
	}
	if cert.Verification.OCSPChecked && !cert.Verification.OCSPStapled &&
		cert.Verification.OCSPStatus != "revoked" {
		st.Deduct(types.CertificateHealth, certNoOCSPStaple)
		e.logf("cert: no OCSP stapling (-%d)", certNoOCSPStaple)
	}

	return nil
}

// scoreCertificateCT extends Certificate_Health with CT-log history:
// a domain with only one certificate ever issued, a brand-new
// certificate, or issuance from an unusual CA are phishing signals.
func (e *Engine) scoreCertificateCT(in Input, st State) error {
	ct := in.Bundle.Crtsh
	if ct == nil || len(ct.Certs) == 0 {
		return nil
	}

	if len(ct.Certs) == 1 {
		st.Deduct(types.CertificateHealth, certSingleCTEntry)
		e.logf("cert/ct: single certificate in CT history (-%d)", certSingleCTEntry)
	}

	newest := ct.Certs[0]
	if issued := newest.IssuedAt(); issued != "" {
		if issuedAt, err := parseISO(issued); err == nil {
			if since := daysBetween(issuedAt, in.Ref); since < certFreshIssueDays {
				st.Deduct(types.CertificateHealth, certFreshIssue)
				e.logf("cert/ct: certificate issued %d days ago (-%d)", since, certFreshIssue)
			}
		}
	}

	if issuer := newest.Issuer(); issuer != "" && !e.knownCA(issuer) {
		st.Deduct(types.CertificateHealth, certUnusualCA)
		e.logf("cert/ct: unusual issuing CA %q (-%d)", issuer, certUnusualCA)
	}

	return nil
}

func (e *Engine) knownCA(issuer string) bool {
	issuer = strings.ToLower(issuer)
	for _, ca := range e.cfg.CommonCAs {
		if strings.Contains(issuer, ca) {
			return true
		}
	}
	return false
}

// isoLayouts covers the date shapes the scan providers emit: RFC 3339
// with or without fractional seconds, and zone-less ISO-8601.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseISO(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}

// daysBetween returns whole days from a to b, rounded down.
func daysBetween(a, b time.Time) int {
	return int(math.Floor(b.Sub(a).Hours() / 24))
}
