// Package bundle holds the parsed scan payloads for one scoring run.
// Each endpoint maps to a typed optional structure; a nil pointer means
// the endpoint was unavailable, which is a first-class value rather
// than an error.
package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Endpoint names understood by the upstream scan API.
const (
	EndpointCert     = "cert"
	EndpointDNS      = "dns"
	EndpointHval     = "hval"
	EndpointMail     = "mail"
	EndpointMethod   = "method"
	EndpointRDAP     = "rdap"
	EndpointFirewall = "firewall"
	EndpointIPInfo   = "ip-info"
	EndpointCrtsh    = "crtsh"
	EndpointDead     = "dead"
	EndpointParked   = "parked"
	EndpointRedirect = "redirect"
	EndpointInspect  = "webpage_inspect"
)

// DefaultEndpoints is the fixed endpoint list fetched per run.
var DefaultEndpoints = []string{
	EndpointCert,
	EndpointDNS,
	EndpointHval,
	EndpointMail,
	EndpointMethod,
	EndpointRDAP,
	EndpointFirewall,
	EndpointIPInfo,
	EndpointCrtsh,
	EndpointDead,
	EndpointParked,
	EndpointRedirect,
}

// Bundle is one immutable snapshot of scan results for a host.
type Bundle struct {
	Cert     *CertScan
	DNS      *DNSScan
	Hval     *HvalScan
	Mail     *MailScan
	Method   *MethodScan
	RDAP     *RDAPScan
	Firewall *FirewallScan
	IPInfo   *IPInfoScan
	Crtsh    *CrtshScan
	Dead     *DeadScan
	Parked   *ParkedScan
	Redirect *RedirectScan
	Inspect  *InspectScan
}

// Empty reports whether no endpoint returned anything.
func (b *Bundle) Empty() bool {
	return b == nil || *b == Bundle{}
}

// Decode parses a raw endpoint payload into its typed slot. Unknown
// endpoints and malformed payloads return an error and leave the bundle
// untouched.
func (b *Bundle) Decode(endpoint string, raw []byte) error {
	switch endpoint {
	case EndpointCert:
		return decodeInto(raw, &b.Cert)
	case EndpointDNS:
		return decodeInto(raw, &b.DNS)
	case EndpointHval:
		return decodeInto(raw, &b.Hval)
	case EndpointMail:
		return decodeInto(raw, &b.Mail)
	case EndpointMethod:
		return decodeInto(raw, &b.Method)
	case EndpointRDAP:
		return decodeInto(raw, &b.RDAP)
	case EndpointFirewall:
		return decodeInto(raw, &b.Firewall)
	case EndpointIPInfo:
		return decodeInto(raw, &b.IPInfo)
	case EndpointCrtsh:
		return decodeInto(raw, &b.Crtsh)
	case EndpointDead:
		return decodeInto(raw, &b.Dead)
	case EndpointParked:
		return decodeInto(raw, &b.Parked)
	case EndpointRedirect:
		return decodeInto(raw, &b.Redirect)
	case EndpointInspect:
		return decodeInto(raw, &b.Inspect)
	default:
		return fmt.Errorf("unknown endpoint %q", endpoint)
	}
}

func decodeInto[T any](raw []byte, slot **T) error {
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		return err
	}
	*slot = v
	return nil
}

// firstByte returns the first non-whitespace byte of a JSON document.
func firstByte(raw []byte) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
