package bundle

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CertScan is the /cert/ payload: the served chain plus connection and
// verification details.
type CertScan struct {
	Connection   CertConnection   `json:"connection"`
	Verification CertVerification `json:"verification"`
	Certs        []Certificate    `json:"certs"`
}

type CertConnection struct {
	TLSVersion  string `json:"tls_version"`
	CipherSuite string `json:"cipher_suite"`
}

type CertVerification struct {
	HostnameMatches bool   `json:"hostname_matches"`
	ChainVerified   bool   `json:"chain_verified"`
	CrliteRevoked   bool   `json:"crlite_revoked"`
	OCSPStatus      string `json:"ocsp_status"`
	OCSPChecked     bool   `json:"ocsp_checked"`
	OCSPStapled     bool   `json:"ocsp_stapled"`
}

// Certificate carries the validity window of one certificate. Dates are
// ISO-8601 strings, usually with a trailing Z.
type Certificate struct {
	NotBefore string `json:"not_before"`
	NotAfter  string `json:"not_after"`
}

// DNSScan is the /dns/ payload. The rcode field is a completeness
// bitmask over the requested record types, not a DNS RCODE.
type DNSScan struct {
	Rcode int      `json:"rcode"`
	A     []string `json:"a"`
	AAAA  []string `json:"aaaa"`
	CNAME []string `json:"cname"`
}

// HvalScan is the /hval/ payload: the HEAD redirect chain plus the
// security-header bitmask.
type HvalScan struct {
	Item     string `json:"item"`
	Head     []Hop  `json:"head"`
	N        int    `json:"n"`
	Security int    `json:"security"`
}

// Hop is one hop of the HEAD redirect chain.
type Hop struct {
	Status int    `json:"status"`
	URL    string `json:"url"`
	TLS    string `json:"tls"`
}

// MailScan is the /mail/ payload.
type MailScan struct {
	MX    []string `json:"mx"`
	SPF   []string `json:"spf"`
	DMARC []string `json:"dmarc"`
	DKIM  []string `json:"dkim"`
}

// MethodScan is the /method/ payload: a bitmask of allowed HTTP methods.
type MethodScan struct {
	Flag int `json:"flag"`
}

// FirewallScan is the /firewall/ payload.
type FirewallScan struct {
	Block bool `json:"Block"`
}

// DeadScan and ParkedScan are the preflight signals.
type DeadScan struct {
	Dead bool `json:"dead"`
}

type ParkedScan struct {
	Park bool `json:"park"`
}

// IPInfoScan is the /ip-info/ payload. Field names vary across provider
// versions, so alternates are kept and resolved through accessors.
type IPInfoScan struct {
	CountryCode string     `json:"country_code"`
	Country     string     `json:"country"`
	ASN         FlexString `json:"asn"`
	ASNumber    FlexString `json:"as_number"`
	Hostname    string     `json:"hostname"`
	PTR         string     `json:"ptr"`
	Reverse     string     `json:"reverse"`
}

// CountryValue returns the hosting country, preferring the ISO code.
func (s *IPInfoScan) CountryValue() string {
	if s.CountryCode != "" {
		return s.CountryCode
	}
	return s.Country
}

// ASNValue returns the autonomous system number normalized to an
// upper-case "AS"-prefixed string.
func (s *IPInfoScan) ASNValue() string {
	asn := string(s.ASN)
	if asn == "" {
		asn = string(s.ASNumber)
	}
	if asn == "" {
		return ""
	}
	asn = strings.ToUpper(asn)
	if !strings.HasPrefix(asn, "AS") {
		asn = "AS" + asn
	}
	return asn
}

// PTRValue returns the reverse-DNS name, whichever field carried it.
func (s *IPInfoScan) PTRValue() string {
	if s.Hostname != "" {
		return s.Hostname
	}
	if s.PTR != "" {
		return s.PTR
	}
	return s.Reverse
}

// FlexString decodes a JSON string or number into a string. The ASN
// field arrives as either depending on the provider version.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}
