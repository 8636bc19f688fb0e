package normalize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/lucheestiy/bizcatalog/pkg/constants"
)

var (
	postalPrefixRe = regexp.MustCompile(`^\s*2\d{5}\s*`)
	localityRe     = regexp.MustCompile(`(?i)^(?:г\.|город(?:\s|$))\s*`)
)

// City derives the locality from a Belarusian address such as
// "220000, г. Минск, ул. Ленина 1" (-> "Минск"). Results longer than
// constants.MaxCityLength characters are not a city and yield "".
func City(address string) string {
	s := Space(address)
	if s == "" {
		return ""
	}
	s = postalPrefixRe.ReplaceAllString(s, "")
	s = strings.TrimLeft(s, ",; ")
	city, _, _ := strings.Cut(s, ",")
	city = strings.TrimSpace(city)
	city = strings.TrimSpace(localityRe.ReplaceAllString(city, ""))
	if utf8.RuneCountInString(city) > constants.MaxCityLength {
		return ""
	}
	return city
}
