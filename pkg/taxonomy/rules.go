package taxonomy

import (
	"strings"

	"github.com/lucheestiy/bizcatalog/pkg/constants"
	"github.com/lucheestiy/bizcatalog/pkg/normalize"
)

// categoryTable maps a source category key to its default catalog category.
var categoryTable = map[string]string{
	"avtomobili":                        "avtomobilnaya-tehnika-uslugi-transport",
	"bezopasnost":                       "gosudarstvo-i-obshchestvo",
	"biznes-i-finansy-yurisprudentsiya": "biznes-uslugi-dlya-biznesa",
	"gosudarstvo":                       "gosudarstvo-i-obshchestvo",
	"kompyutery-i-internet":             "it-internet-i-orgtehnika",
	"krasota-i-zdorove-meditsina":       "sport-zdorove-krasota",
	"kultura-i-iskusstvo":               "iskusstvo-suveniry-yuvelirnye-izdeliya",
	"lesnoe-hozyaystvo-selskoe-hozyaystvo-sadovodstvo": "apk-selskoe-i-lesnoe-hozyaystvo",
	"mebel-tovary-dlya-doma-i-ofisa":                   "derevoobrabotka-i-mebel",
	"nauka-i-prosveschenie":                            "obrazovanie-nauka-karera",
	"nedvijimost":                                      "nedvizhimost",
	"promyshlennost":                                   "mashinostroenie-i-oborudovanie",
	"reklama-i-poligrafiya":                            "reklamnaya-deyatelnost-smi",
	"semya-deti":                                       "uslugi-dlya-naseleniya",
	"shou-biznes":                                      "turizm-otdyh-dosug",
	"sotsialnaya-sfera":                                "gosudarstvo-i-obshchestvo",
	"sredstva-massovoy-informatsii":                    "reklamnaya-deyatelnost-smi",
	"stroitelstvo":                                     "stroitelstvo-nedvijimost",
	"telekommunikatsii-i-svyaz":                        "telekommunikatsii-i-svyaz",
	"torgovlya":                                        "torgovlya-logistika",
	"transport-i-perevozki":                            "transport-logistika-perevozki",
	"turizm-sport-otdyh-i-razvlecheniya":               "turizm-otdyh-dosug",
	"uslugi-i-servis":                                  "uslugi-dlya-naseleniya",
}

// Rule overrides the default category of a source category when the
// case-folded rubric name contains any of Keywords.
type Rule struct {
	SourceCategory string
	Keywords       []string
	Target         string
}

// rules are evaluated top to bottom; the first match wins.
var rules = []Rule{
	{"biznes-i-finansy-yurisprudentsiya", []string{"банк", "кредит", "лизинг", "страх", "финанс", "бирж"}, "banki-birji-finansy"},
	{"krasota-i-zdorove-meditsina", []string{"аптек", "больниц", "клиник", "лаборатор", "мед", "поликлин", "стомат", "фарма"}, "medicina-i-farmacevtika"},
	{"reklama-i-poligrafiya", []string{"полиграф", "типог", "упаков", "печать", "издат", "этикет"}, "poligrafiya-izdatelstvo-upakovka"},
	{"sredstva-massovoy-informatsii", []string{"полиграф", "типог", "упаков", "печать", "издат", "этикет"}, "poligrafiya-izdatelstvo-upakovka"},
	{"stroitelstvo", []string{"строймат", "материал", "кирпич", "бетон", "плитк", "обои", "краск"}, "strojmateriali-otdelochnie-materiali"},
	{"promyshlennost", []string{"пищ", "напит", "кондитер", "хлеб", "молочн"}, "promyshlennost-pishchevaya"},
	{"promyshlennost", []string{"хим", "энерг", "нефт", "газ", "топлив", "котел", "отоплен"}, "himiya-energetika-syre"},
	{"promyshlennost", []string{"металл", "металло", "литей", "сварк"}, "metally-metalloobrabotka"},
	{"promyshlennost", []string{"текстил", "швей", "одеж", "обув", "кож", "трикотаж"}, "legkaya-promyshlennost"},
	{"mebel-tovary-dlya-doma-i-ofisa", []string{"бытов", "техник", "электро", "инструмент"}, "dom-i-byt-bytovye-uslugi"},
	{"turizm-sport-otdyh-i-razvlecheniya", []string{"фитнес", "спорт", "spa", "спа"}, "sport-zdorove-krasota"},
}

// Rules returns a copy of the keyword override rules in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// DefaultCategory returns the catalog category a source category maps to
// before keyword overrides. Unknown keys map to the general services category.
func DefaultCategory(sourceCategory string) string {
	if target, ok := categoryTable[sourceCategory]; ok {
		return target
	}
	return constants.DefaultTargetCategory
}

// TargetCategory picks the catalog category for a rubric of the given source
// category, refining the table default by keywords in the rubric name.
func TargetCategory(sourceCategory, rubricName string) string {
	name := normalize.Key(rubricName)
	for _, r := range rules {
		if r.SourceCategory != sourceCategory {
			continue
		}
		if containsAny(name, r.Keywords) {
			return r.Target
		}
	}
	return DefaultCategory(sourceCategory)
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
