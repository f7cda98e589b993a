package bundle

import "encoding/json"

// ContentSignals are the page-inspection signals consumed by the
// content-safety scorer. They come from a live browser session, the
// remote webpage_inspect endpoint, or the local inspector.
type ContentSignals struct {
	InvisibleChars     int  `json:"invisible_chars"`
	RTLOverrides       int  `json:"rtl_overrides"`
	HomoglyphScore     int  `json:"homoglyph_score"`
	FormActionExternal bool `json:"form_action_external"`
	PasswordFields     int  `json:"password_fields"`
	AutocompleteOff    bool `json:"autocomplete_off"`
	EvalCalls          int  `json:"eval_calls"`
	DocumentWrite      int  `json:"document_write"`
	Base64Blobs        int  `json:"base64_blobs"`
	ObfuscationScore   int  `json:"obfuscation_score"`
	HiddenIframes      int  `json:"hidden_iframes"`
	ZeroSizeElements   int  `json:"zero_size_elements"`
	MismatchedLinks    int  `json:"mismatched_links"`
	DataURILinks       int  `json:"data_uri_links"`
}

// InspectScan is the /webpage_inspect/ payload. The signals either sit
// under a "signals" key or form the whole object; decoding accepts both.
type InspectScan struct {
	Signals ContentSignals
}

func (s *InspectScan) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Signals *ContentSignals `json:"signals"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Signals != nil {
		s.Signals = *wrapped.Signals
		return nil
	}
	return json.Unmarshal(data, &s.Signals)
}

// CrtshScan is the /crtsh/ payload: the certificate-transparency log
// history for the domain, newest first. The provider returns either a
// bare array or an object with a "certs" key.
type CrtshScan struct {
	Certs []CTCert
}

type CTCert struct {
	NotBefore      string `json:"not_before"`
	EntryTimestamp string `json:"entry_timestamp"`
	IssuerName     string `json:"issuer_name"`
	IssuerCN       string `json:"issuer_cn"`
}

func (s *CrtshScan) UnmarshalJSON(data []byte) error {
	if firstByte(data) == '[' {
		return json.Unmarshal(data, &s.Certs)
	}
	var wrapped struct {
		Certs []CTCert `json:"certs"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	s.Certs = wrapped.Certs
	return nil
}

// IssuedAt returns the issuance timestamp of a CT entry, preferring
// not_before over the log entry timestamp.
func (c CTCert) IssuedAt() string {
	if c.NotBefore != "" {
		return c.NotBefore
	}
	return c.EntryTimestamp
}

// Issuer returns the issuing CA name, whichever field carried it.
func (c CTCert) Issuer() string {
	if c.IssuerName != "" {
		return c.IssuerName
	}
	return c.IssuerCN
}
