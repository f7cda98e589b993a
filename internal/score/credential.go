package score

import (
	"fmt"

	"github.com/netwatch/posture/pkg/types"
)

// Credential_Safety deduction table.
const (
	credOutdatedTLS = 50
	credNoHSTS      = 20
)

// scoreCredentialSafety models credential exposure risk specifically.
// The HSTS check intentionally double-counts against
// Connection_Security: a missing HSTS header exposes submitted
// credentials, not just transport hygiene.
func (e *Engine) scoreCredentialSafety(in Input, st State) error {
	cert := in.Bundle.Cert
	hval := in.Bundle.Hval
	if cert == nil || hval == nil {
		return fmt.Errorf("cert or hval scan unavailable")
	}

	if !e.cfg.ModernTLS[cert.Connection.TLSVersion] {
		st.Deduct(types.CredentialSafety, credOutdatedTLS)
		e.logf("cred: outdated TLS version %q (-%d)", cert.Connection.TLSVersion, credOutdatedTLS)
	}

	if hval.Security&FlagHSTS == 0 {
		st.Deduct(types.CredentialSafety, credNoHSTS)
		e.logf("cred: HSTS header missing (-%d)", credNoHSTS)
	}

	return nil
}
