package normalize

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/lucheestiy/bizcatalog/pkg/constants"
)

// Phone keeps only the digits of a phone number. Country codes are not rewritten.
func Phone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PhoneKey returns the dedupe key of a phone and whether it is long enough to use.
func PhoneKey(raw string) (string, bool) {
	digits := Phone(raw)
	return digits, len(digits) >= constants.MinPhoneDigits
}

// Email trims and case-folds an e-mail address.
func Email(raw string) string {
	return Fold(strings.TrimSpace(raw))
}

// Emails normalizes a list of addresses, dropping empties and duplicates.
func Emails(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if ne := Email(e); ne != "" {
			out = append(out, ne)
		}
	}
	return UniqueStrings(out)
}

// Hostname extracts the lower-case host of a URL or bare domain, without a
// leading "www." label. Unparseable input yields "".
func Hostname(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := Fold(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// Domain is the dedupe form of a website: its hostname with a leading "m." or
// "mobile." label collapsed when at least three labels remain.
func Domain(raw string) string {
	host := strings.TrimLeft(Hostname(raw), ".")
	if host == "" {
		return ""
	}
	parts := strings.Split(host, ".")
	if len(parts) >= 3 && (parts[0] == "m" || parts[0] == "mobile") {
		return strings.Join(parts[1:], ".")
	}
	return host
}

// ignoredDomains are shared by many unrelated companies and never identify one.
var ignoredDomains = map[string]struct{}{
	"2gis.by":         {},
	"2gis.com":        {},
	"bit.ly":          {},
	"clck.ru":         {},
	"facebook.com":    {},
	"goo.gl":          {},
	"instagram.com":   {},
	"linkedin.com":    {},
	"maps.google.com": {},
	"ok.ru":           {},
	"t.me":            {},
	"telegram.me":     {},
	"twitter.com":     {},
	"vk.com":          {},
	"yadi.sk":         {},
	"yandex.by":       {},
	"yandex.ru":       {},
	"youtube.com":     {},
}

// IsIgnoredDomain reports whether host is a shared platform (or a subdomain of
// one). An empty host is always ignored.
func IsIgnoredDomain(host string) bool {
	h := Fold(host)
	if h == "" {
		return true
	}
	if _, ok := ignoredDomains[h]; ok {
		return true
	}
	for base := range ignoredDomains {
		if strings.HasSuffix(h, "."+base) {
			return true
		}
	}
	return false
}

// IsDisallowedLink reports whether raw mentions or points at the source directory.
func IsDisallowedLink(raw string) bool {
	if strings.Contains(Fold(raw), constants.DisallowedDomain) {
		return true
	}
	host := Hostname(raw)
	return host == constants.DisallowedDomain || strings.HasSuffix(host, "."+constants.DisallowedDomain)
}

var (
	disallowedURLRe  = regexp.MustCompile(`(?i)https?://[^\s\p{Z}]*` + regexp.QuoteMeta(constants.DisallowedDomain) + `[^\s\p{Z}]*`)
	disallowedBareRe = regexp.MustCompile(`(?i)(?:www\.)?` + regexp.QuoteMeta(constants.DisallowedDomain) + `(?:/[^\s\p{Z}]*)?`)
)

// StripDisallowedLinks removes every source-directory link from free text and
// re-collapses the whitespace left behind.
func StripDisallowedLinks(text string) string {
	if text == "" {
		return ""
	}
	cleaned := disallowedURLRe.ReplaceAllString(text, "")
	cleaned = disallowedBareRe.ReplaceAllString(cleaned, "")
	return Space(cleaned)
}

var schemeRe = regexp.MustCompile(`(?i)^https?://`)

// Websites drops source-directory links and mailto:/tel: pseudo-links, adds an
// https:// scheme where none is present and removes duplicates. Social and
// mobile links are kept.
func Websites(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		s := strings.TrimSpace(w)
		if s == "" || IsDisallowedLink(s) {
			continue
		}
		lower := strings.ToLower(s)
		if strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:") {
			continue
		}
		if !schemeRe.MatchString(s) {
			s = "https://" + s
		}
		out = append(out, s)
	}
	return UniqueStrings(out)
}
