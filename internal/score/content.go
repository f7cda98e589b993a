package score

import "github.com/netwatch/posture/pkg/types"

// Content_Safety deduction table.
const (
	contentInvisibleChars  = 25
	contentRTLOverrides    = 20
	contentHomoglyphs      = 15
	contentExternalForm    = 20
	contentNoAutocomplete  = 10
	contentEvalCalls       = 15
	contentDocumentWrite   = 10
	contentBase64Blobs     = 15
	contentObfuscation     = 20
	contentHiddenIframes   = 20
	contentZeroSize        = 10
	contentMismatchedLinks = 20
	contentDataURILinks    = 10

	homoglyphThreshold   = 50
	obfuscationThreshold = 50
	base64BlobLimit      = 2
	zeroSizeLimit        = 2
)

// scoreContentSafety applies independent, additive penalties from page
// inspection signals. Only runs when signals exist for this run.
func (e *Engine) scoreContentSafety(in Input, st State) error {
	sig := in.Signals
	if sig == nil {
		return nil
	}

	if sig.InvisibleChars > 0 {
		st.Deduct(types.ContentSafety, contentInvisibleChars)
		e.logf("content: %d invisible characters (-%d)", sig.InvisibleChars, contentInvisibleChars)
	}
	if sig.RTLOverrides > 0 {
		st.Deduct(types.ContentSafety, contentRTLOverrides)
		e.logf("content: %d RTL override characters (-%d)", sig.RTLOverrides, contentRTLOverrides)
	}
	if sig.HomoglyphScore > homoglyphThreshold {
		st.Deduct(types.ContentSafety, contentHomoglyphs)
		e.logf("content: homoglyph score %d (-%d)", sig.HomoglyphScore, contentHomoglyphs)
	}
	if sig.FormActionExternal {
		st.Deduct(types.ContentSafety, contentExternalForm)
		e.logf("content: form posts to an external origin (-%d)", contentExternalForm)
	}
	if sig.PasswordFields > 0 && sig.AutocompleteOff {
		st.Deduct(types.ContentSafety, contentNoAutocomplete)
		e.logf("content: password field with autocomplete disabled (-%d)", contentNoAutocomplete)
	}
	if sig.EvalCalls > 0 {
		st.Deduct(types.ContentSafety, contentEvalCalls)
		e.logf("content: %d eval-style calls (-%d)", sig.EvalCalls, contentEvalCalls)
	}
	if sig.DocumentWrite > 0 {
		st.Deduct(types.ContentSafety, contentDocumentWrite)
		e.logf("content: %d dynamic markup injection calls (-%d)", sig.DocumentWrite, contentDocumentWrite)
	}
	if sig.Base64Blobs > base64BlobLimit {
		st.Deduct(types.ContentSafety, contentBase64Blobs)
		e.logf("content: %d base64 blobs (-%d)", sig.Base64Blobs, contentBase64Blobs)
	}
	if sig.ObfuscationScore > obfuscationThreshold {
		st.Deduct(types.ContentSafety, contentObfuscation)
		e.logf("content: obfuscation score %d (-%d)", sig.ObfuscationScore, contentObfuscation)
	}
	if sig.HiddenIframes > 0 {
		st.Deduct(types.ContentSafety, contentHiddenIframes)
		e.logf("content: %d hidden iframes (-%d)", sig.HiddenIframes, contentHiddenIframes)
	}
	if sig.ZeroSizeElements > zeroSizeLimit {
		st.Deduct(types.ContentSafety, contentZeroSize)
		e.logf("content: %d zero-size elements (-%d)", sig.ZeroSizeElements, contentZeroSize)
	}
	if sig.MismatchedLinks > 0 {
		st.Deduct(types.ContentSafety, contentMismatchedLinks)
		e.logf("content: %d mismatched link targets (-%d)", sig.MismatchedLinks, contentMismatchedLinks)
	}
	if sig.DataURILinks > 0 {
		st.Deduct(types.ContentSafety, contentDataURILinks)
		e.logf("content: %d data-URI links (-%d)", sig.DataURILinks, contentDataURILinks)
	}

	return nil
}

// Fake-parked deception penalty.
const (
	deceptionDomainRep  = 30
	deceptionConnection = 15
	deceptionContent    = 25
)

// scoreDeception applies the cross-cutting fake-parked penalty: a page
// claiming to be parked while carrying browser-executed redirects is
// likely malvertising or malware delivery. Content_Safety is created
// for the run if it was not already scored.
func (e *Engine) scoreDeception(in Input, st State) error {
	parked := in.Bundle.Parked
	if parked == nil || !parked.Park {
		return nil
	}
	if !in.Bundle.Redirect.HasSuspiciousSignal() {
		return nil
	}

	st.Deduct(types.DomainReputation, deceptionDomainRep)
	st.Deduct(types.ConnectionSecurity, deceptionConnection)
	st.Deduct(types.ContentSafety, deceptionContent)
	e.logf("deception: parked page with browser-executed redirects (-%d/-%d/-%d)",
		deceptionDomainRep, deceptionConnection, deceptionContent)
	return nil
}
