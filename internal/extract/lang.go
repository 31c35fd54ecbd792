// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import "strings"

// Months lists the Spanish month names exactly as the CvLAC dropdown shows
// them, January first.
var Months = []string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish name for month m (1-12), or "" out of range.
func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return Months[m-1]
}

// IsMonth reports whether s is one of the twelve Spanish month names.
func IsMonth(s string) bool {
	for _, m := range Months {
		if s == m {
			return true
		}
	}
	return false
}

// LanguageName maps an ISO 639 language code to the Spanish display name the
// CvLAC idioma dropdown uses. Unknown codes come back unchanged so the
// caller's exact-text selection fails visibly instead of guessing.
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// languageNames is the CvLAC idioma list keyed by ISO code.
var languageNames = map[string]string{
	"es":  "Español",
	"ab":  "Abjasio",
	"aa":  "Afar",
	"af":  "Africano",
	"ay":  "Aimara",
	"sq":  "Albanés",
	"de":  "Alemán",
	"am":  "Amhárico",
	"ar":  "Árabe",
	"hy":  "Armenio",
	"as":  "Assamés",
	"az":  "Azerbaijani",
	"bal": "Baluchi",
	"ba":  "Bashkir",
	"bn":  "Bengalí",
	"ber": "Berbere",
	"be":  "Bielorruso",
	"bh":  "Bihari",
	"my":  "Birmano",
	"bi":  "Bislama",
	"br":  "Bretón",
	"bg":  "Búlgaro",
	"dz":  "Butaní",
	"km":  "Camboyano",
	"ca":  "Catalán",
	"cs":  "Checo",
	"zh":  "Chino",
	"si":  "Cingalés",
	"ko":  "Coreano",
	"co":  "Corso",
	"hr":  "Croata",
	"ku":  "Curdo / Kurdo",
	"da":  "Danés",
	"dv":  "Divehi",
	"sk":  "Eslovaco",
	"sl":  "Esloveno",
	"eo":  "Esperanto",
	"et":  "Estonio",
	"ee":  "Eue",
	"fo":  "Faroese",
	"fj":  "Fidjiano",
	"tl":  "Filipino",
	"fi":  "Finlandés",
	"fr":  "Francés",
	"fy":  "Frisón",
	"gd":  "Gaélico",
	"cy":  "Galés",
	"gl":  "Gallego",
	"ka":  "Georgiano",
	"el":  "Griego",
	"kl":  "Groenlandés",
	"gn":  "Guaraní",
	"gu":  "Gujarati",
	"ha":  "Hausa",
	"he":  "Hebreo",
	"hi":  "Hindi",
	"nl":  "Holandés",
	"hu":  "Húngaro",
	"id":  "Indonesio",
	"en":  "Inglés",
	"ia":  "Interlingua",
	"ik":  "Inupiak",
	"ga":  "Irlandés",
	"is":  "Islandés",
	"it":  "Italiano",
	"ja":  "Japonés",
	"jv":  "Javanés",
	"kn":  "kannada",
	"ks":  "Kashmiri",
	"kk":  "Kazajio",
	"rw":  "kinya-Ruanda",
	"ky":  "Kirguiz",
	"rn":  "Kirundi",
	"lo":  "Laosiano",
	"la":  "Latín",
	"lv":  "Letón",
	"ln":  "Lingala",
	"lt":  "Lituano",
	"lb":  "Luxemburgues",
	"mk":  "Macedonio",
	"ml":  "Malayalam",
	"ms":  "Malayo",
	"mg":  "Malgache",
	"mt":  "Maltés",
	"mi":  "Maorí",
	"mr":  "Marathi",
	"mo":  "Moldavio",
	"mn":  "Mongol",
	"me":  "Montenegrino",
	"na":  "Nauruano",
	"ne":  "Nepalés",
	"no":  "Noruego",
	"or":  "Oriya",
	"om":  "Oromo",
	"fa":  "Persa",
	"pl":  "Polaco",
	"pt":  "Portugués",
	"pa":  "Punjabi",
	"ps":  "Pushtu",
	"qu":  "Quechua",
	"sw":  "Quisuahili",
	"rm":  "Reto-romano",
	"ro":  "Rumano",
	"ru":  "Ruso",
	"sm":  "Samoano",
	"sg":  "Sango",
	"sa":  "Sánscrito",
	"sr":  "Serbio",
	"sh":  "Serbocroata",
	"st":  "Sesotho",
	"tn":  "Setswana",
	"sn":  "Shona",
	"sd":  "Sindhi",
	"ss":  "Siswati",
	"so":  "Somalí",
	"su":  "Sudanés",
	"sv":  "Sueco",
	"th":  "Tailandés",
	"tg":  "Tajiko",
	"ta":  "Tamil",
	"tt":  "Tártaro",
	"te":  "Telugu",
	"bo":  "Tibetano",
	"ti":  "Tigrinya",
	"to":  "Tongano",
	"ts":  "Tsonga",
	"tr":  "Turco",
	"tk":  "Turkmeno",
	"tv":  "Tuvaloano",
	"tw":  "Twi",
	"uk":  "Ucraniano",
	"wo":  "Uolof",
	"ur":  "Urdu",
	"uz":  "Uzbeko",
	"eu":  "Vasco",
	"vi":  "Vietnamita",
	"vo":  "Volapuk",
	"xh":  "Xhosa",
	"yi":  "Yiddish",
	"yo":  "Yoruba",
	"zu":  "Zulu",
}
