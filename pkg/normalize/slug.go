package normalize

import (
	"regexp"
	"strings"

	"github.com/lucheestiy/bizcatalog/pkg/constants"
)

// cyrillicToLatin is the transliteration used for slugs. Soft and hard signs vanish.
var cyrillicToLatin = map[rune]string{
	'а': "a",
	'б': "b",
	'в': "v",
	'г': "g",
	'д': "d",
	'е': "e",
	'ё': "e",
	'ж': "zh",
	'з': "z",
	'и': "i",
	'й': "y",
	'к': "k",
	'л': "l",
	'м': "m",
	'н': "n",
	'о': "o",
	'п': "p",
	'р': "r",
	'с': "s",
	'т': "t",
	'у': "u",
	'ф': "f",
	'х': "h",
	'ц': "ts",
	'ч': "ch",
	'ш': "sh",
	'щ': "sch",
	'ъ': "",
	'ы': "y",
	'ь': "",
	'э': "e",
	'ю': "yu",
	'я': "ya",
}

// Transliterate case-folds s and maps Cyrillic letters to Latin. Other
// characters pass through unchanged.
func Transliterate(s string) string {
	var b strings.Builder
	for _, r := range Fold(s) {
		if latin, ok := cyrillicToLatin[r]; ok {
			b.WriteString(latin)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var nonSlugRe = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a display name or URL segment into a lower-case ASCII slug.
// A value with nothing slug-safe in it becomes the placeholder "rubric".
func Slug(s string) string {
	raw := Transliterate(unquote(strings.TrimSpace(s)))
	raw = strings.ReplaceAll(raw, "&", " and ")
	raw = nonSlugRe.ReplaceAllString(Fold(raw), "-")
	raw = strings.Trim(raw, "-")
	if raw == "" {
		return constants.SlugPlaceholder
	}
	return raw
}

// unquote decodes %XX escapes and leaves malformed ones in place, so a stray
// "%" in a rubric name does not discard the rest of the decoding.
func unquote(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		buf = append(buf, s[i])
	}
	return strings.ToValidUTF8(string(buf), "�")
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
