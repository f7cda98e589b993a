package score

// Curated reference lists. These are maintained by hand from public
// abuse statistics and CA market share; they are deliberately small and
// conservative.

// commonCAs is the known-good issuer allowlist for the CT-log check.
// Matching is case-insensitive substring against the issuer name.
func commonCAs() []string {
	return []string{
		"let's encrypt",
		"digicert",
		"sectigo",
		"globalsign",
		"google trust services",
		"amazon",
		"cloudflare",
		"entrust",
		"godaddy",
		"comodo",
		"geotrust",
		"rapidssl",
		"thawte",
		"certum",
		"zerossl",
		"buypass",
		"ssl.com",
		"microsoft",
		"actalis",
		"identrust",
	}
}

// highRiskCountries lists hosting countries statistically
// over-represented in phishing and malware distribution.
func highRiskCountries() map[string]bool {
	return setOf(
		"KP", "IR", "SY", "CU",
		"RU", "BY", "CN", "VN",
		"NG", "PK", "BD", "ID",
	)
}

// bulletproofASNs lists autonomous systems with a documented history of
// bulletproof hosting.
func bulletproofASNs() map[string]bool {
	return setOf(
		"AS197695", // reg.ru
		"AS198953", // proton66
		"AS204428", // ss-net
		"AS208091", // xhost
		"AS213371", // sqitchy
		"AS48693",  // rices privately owned enterprise
		"AS57523",  // chang way technologies
		"AS202425", // ip volume
		"AS209588", // flyservers
		"AS44446",  // sibirinvest
	)
}

// abusedTLDs lists top-level domains with the worst abuse ratios in
// public blocklist feeds.
func abusedTLDs() map[string]bool {
	return setOf(
		"zip", "mov", "top", "xyz", "gq",
		"tk", "ml", "cf", "ga", "icu",
		"cn", "work", "click", "link", "rest",
		"fit", "surf", "cam", "monster", "quest",
	)
}

func setOf(items ...string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
