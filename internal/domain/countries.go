package domain

import "strings"

// schengenMembers is the Schengen zone membership as of 2024 (29 states),
// keyed by ISO 3166-1 alpha-2 code. Ireland and Cyprus are EU members but
// outside the zone; Iceland, Liechtenstein, Norway and Switzerland are inside
// without being EU members.
var schengenMembers = map[string]string{
	"AT": "Austria",
	"BE": "Belgium",
	"BG": "Bulgaria",
	"HR": "Croatia",
	"CZ": "Czechia",
	"DK": "Denmark",
	"EE": "Estonia",
	"FI": "Finland",
	"FR": "France",
	"DE": "Germany",
	"GR": "Greece",
	"HU": "Hungary",
	"IS": "Iceland",
	"IT": "Italy",
	"LV": "Latvia",
	"LI": "Liechtenstein",
	"LT": "Lithuania",
	"LU": "Luxembourg",
	"MT": "Malta",
	"NL": "Netherlands",
	"NO": "Norway",
	"PL": "Poland",
	"PT": "Portugal",
	"RO": "Romania",
	"SK": "Slovakia",
	"SI": "Slovenia",
	"ES": "Spain",
	"SE": "Sweden",
	"CH": "Switzerland",
}

// IsSchengenCountry reports whether code (case-insensitive alpha-2) is a
// Schengen member.
func IsSchengenCountry(code string) bool {
	_, ok := schengenMembers[strings.ToUpper(code)]
	return ok
}

// CountryName returns the English short name for a Schengen member code,
// or "" when the code is not a member.
func CountryName(code string) string {
	return schengenMembers[strings.ToUpper(code)]
}

// SchengenCountryCodes returns all member codes. The order is unspecified;
// callers that render lists should sort.
func SchengenCountryCodes() []string {
	codes := make([]string, 0, len(schengenMembers))
	for code := range schengenMembers {
		codes = append(codes, code)
	}
	return codes
}
