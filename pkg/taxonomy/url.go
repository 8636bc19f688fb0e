package taxonomy

import (
	"net/url"
	"strings"

	"github.com/lucheestiy/bizcatalog/pkg/normalize"
)

// ParseSourceRubricURL splits a source rubric URL of the form
// /ru/company/<category>/.../<rubric>.html into the source category key and
// the slugified rubric segment. URLs of any other shape yield two empty strings.
func ParseSourceRubricURL(raw string) (category, segment string) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", ""
	}
	var parts []string
	for _, p := range strings.Split(u.EscapedPath(), "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 4 || parts[0] != "ru" || parts[1] != "company" {
		return "", ""
	}
	last := parts[len(parts)-1]
	if strings.HasSuffix(strings.ToLower(last), ".html") {
		last = last[:len(last)-len(".html")]
	}
	return parts[2], normalize.Slug(last)
}
