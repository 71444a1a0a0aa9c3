package transform

import "strings"

// CleanText collapses whitespace (incl. non-breaking spaces, which job
// boards love) and trims the result.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// SplitLocation divides a "<city>, <country>" label on the first comma.
// Both halves are cleaned, so "Berlin, Germany" gives ("Berlin",
// "Germany") rather than a country with a leading space. Labels with no
// comma keep everything in city and leave country empty.
func SplitLocation(loc string) (city, country string) {
	city, country, _ = strings.Cut(loc, ",")
	return CleanText(city), CleanText(country)
}
