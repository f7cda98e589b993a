// Package inspect derives content-safety signals from a page's static
// HTML when no live browser session or remote inspection is available.
// It is a best-effort approximation: script-execution counts come from
// source text, not runtime instrumentation.
package inspect

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/publicsuffix"

	"github.com/netwatch/posture/internal/bundle"
)

var (
	evalRe     = regexp.MustCompile(`\beval\s*\(|\bnew\s+Function\s*\(|setTimeout\s*\(\s*["']|setInterval\s*\(\s*["']`)
	injectRe   = regexp.MustCompile(`document\.write(ln)?\s*\(|\.innerHTML\s*=|insertAdjacentHTML\s*\(`)
	base64Re   = regexp.MustCompile(`[A-Za-z0-9+/]{120,}={0,2}`)
	hexEscRe   = regexp.MustCompile(`(\\x[0-9a-fA-F]{2}){8,}`)
	zeroSizeRe = regexp.MustCompile(`(width|height)\s*:\s*0(px)?\b`)
)

// Inspector fetches a page and extracts content signals from its HTML.
type Inspector struct {
	httpClient *http.Client
}

func New(httpClient *http.Client) *Inspector {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Inspector{httpClient: httpClient}
}

// Inspect loads https://{host}/ and returns the derived signal set.
func (i *Inspector) Inspect(ctx context.Context, host string) (*bundle.ContentSignals, error) {
	return i.InspectURL(ctx, "https://"+host+"/")
}

// InspectURL loads the given page and returns the derived signal set.
func (i *Inspector) InspectURL(ctx context.Context, pageURL string) (*bundle.ContentSignals, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := i.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("loading page: %w", err)
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing page: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL: %w", err)
	}

	return extract(doc, base), nil
}

func extract(doc *goquery.Document, base *url.URL) *bundle.ContentSignals {
	sig := &bundle.ContentSignals{}

	text := doc.Text()
	sig.InvisibleChars = countRunes(text, '\u200b', '\u200c', '\u200d', '\ufeff', '\u00ad')
	sig.RTLOverrides = countRunes(text, '\u202e', '\u202d', '\u2066', '\u2067')

	doc.Find("form").Each(func(_ int, form *goquery.Selection) {
		if action, ok := form.Attr("action"); ok {
			if target, err := url.Parse(action); err == nil && target.Host != "" {
				if !sameRegistrable(base.Hostname(), target.Hostname()) {
					sig.FormActionExternal = true
				}
			}
		}
	})

	doc.Find("input[type='password']").Each(func(_ int, input *goquery.Selection) {
		sig.PasswordFields++
		if ac, _ := input.Attr("autocomplete"); strings.EqualFold(ac, "off") {
			sig.AutocompleteOff = true
		}
	})

	var scripts strings.Builder
	doc.Find("script").Each(func(_ int, script *goquery.Selection) {
		scripts.WriteString(script.Text())
		scripts.WriteByte('\n')
	})
	js := scripts.String()
	sig.EvalCalls = len(evalRe.FindAllString(js, -1))
	sig.DocumentWrite = len(injectRe.FindAllString(js, -1))
	sig.Base64Blobs = len(base64Re.FindAllString(js, -1))
	if len(hexEscRe.FindAllString(js, -1)) > 0 || longLineRatio(js) > 0.5 {
		sig.ObfuscationScore = 75
	}

	doc.Find("iframe").Each(func(_ int, frame *goquery.Selection) {
		style, _ := frame.Attr("style")
		w, _ := frame.Attr("width")
		h, _ := frame.Attr("height")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") ||
			w == "0" || h == "0" || zeroSizeRe.MatchString(style) {
			sig.HiddenIframes++
		}
	})

	doc.Find("div, span, img").Each(func(_ int, el *goquery.Selection) {
		if style, ok := el.Attr("style"); ok && zeroSizeRe.MatchString(style) {
			sig.ZeroSizeElements++
		}
	})

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if strings.HasPrefix(strings.ToLower(href), "data:") {
			sig.DataURILinks++
			return
		}
		// A link whose visible text is itself a URL on a different host
		// than the actual target is a classic cloaking pattern.
		shown := strings.TrimSpace(link.Text())
		if !strings.HasPrefix(shown, "http") {
			return
		}
		shownURL, err1 := url.Parse(shown)
		target, err2 := url.Parse(href)
		if err1 == nil && err2 == nil && shownURL.Host != "" && target.Host != "" &&
			!sameRegistrable(shownURL.Hostname(), target.Hostname()) {
			sig.MismatchedLinks++
		}
	})

	return sig
}

func countRunes(text string, runes ...rune) int {
	count := 0
	for _, r := range text {
		for _, want := range runes {
			if r == want {
				count++
				break
			}
		}
	}
	return count
}

// longLineRatio measures how much of the script text sits on lines
// longer than 500 characters, a cheap minification/obfuscation proxy.
func longLineRatio(js string) float64 {
	if js == "" {
		return 0
	}
	total, long := 0, 0
	for _, line := range strings.Split(js, "\n") {
		if len(strings.TrimSpace(line)) == 0 {
			continue
		}
		total++
		if len(line) > 500 {
			long++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(long) / float64(total)
}

func sameRegistrable(a, b string) bool {
	a = strings.TrimPrefix(strings.ToLower(a), "www.")
	b = strings.TrimPrefix(strings.ToLower(b), "www.")
	if a == b {
		return true
	}
	regA, errA := publicsuffix.EffectiveTLDPlusOne(a)
	regB, errB := publicsuffix.EffectiveTLDPlusOne(b)
	if errA != nil || errB != nil {
		return false
	}
	return regA == regB
}
