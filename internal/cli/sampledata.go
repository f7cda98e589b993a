package cli

import "github.com/netwatch/posture/internal/bundle"

// sampleBundle returns a canned scan bundle for a healthy, well-run
// host: valid certificate with two months left, redundant DNS, HTTPS
// enforced behind one redirect, strict DMARC, and only HEAD+GET
// allowed. Scored against a reference date of 2025-10-15.
func sampleBundle() *bundle.Bundle {
	return &bundle.Bundle{
		Cert: &bundle.CertScan{
			Connection: bundle.CertConnection{
				TLSVersion:  "TLS 1.3",
				CipherSuite: "TLS_AES_128_GCM_SHA256",
			},
			Verification: bundle.CertVerification{
				HostnameMatches: true,
				ChainVerified:   true,
				OCSPStatus:      "good",
				OCSPChecked:     true,
				OCSPStapled:     true,
			},
			Certs: []bundle.Certificate{
				{NotBefore: "2025-09-16T20:11:24", NotAfter: "2025-12-15T20:07:01.252"},
			},
		},
		DNS: &bundle.DNSScan{
			Rcode: 31,
			A:     []string{"162.159.153.4", "162.159.152.4"},
			AAAA:  []string{"2606:4700:7::a29f:9804", "2606:4700:7::a29f:9904"},
		},
		Hval: &bundle.HvalScan{
			Item: "medium.com",
			Head: []bundle.Hop{
				{Status: 301, URL: "http://medium.com"},
				{Status: 200, URL: "https://medium.com/", TLS: "TLS_AES_128_GCM_SHA256"},
			},
			N:        2,
			Security: 7,
		},
		Mail: &bundle.MailScan{
			MX:    []string{"aspmx.l.google.com", "alt2.aspmx.l.google.com", "alt1.aspmx.l.google.com", "aspmx2.googlemail.com", "aspmx3.googlemail.com"},
			SPF:   []string{"v=spf1 include:amazonses.com ... ~all"},
			DMARC: []string{"v=DMARC1; p=reject; sp=reject; pct=100;fo=1; ri=3600;  rua=mailto:dmarc.rua@medium.com; ruf=mailto:dmarc.rua@medium.com,mailto:ruf@dmarc.medium.com"},
			DKIM:  []string{"google", "amazonses"},
		},
		Method: &bundle.MethodScan{Flag: 3},
		RDAP: &bundle.RDAPScan{
			Host:        "medium.com",
			Nameservers: []string{"alina.ns.cloudflare.com", "kip.ns.cloudflare.com"},
			Domain: bundle.RDAPDomain{
				Events: []bundle.RDAPEvent{
					{Action: "registration", Date: "2009-08-13T19:30:25Z"},
				},
				Status: []string{
					"client delete prohibited",
					"client transfer prohibited",
					"client update prohibited",
				},
			},
		},
	}
}
