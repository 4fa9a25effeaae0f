package phase

import (
	"regexp"
	"strings"
)

// Phase is one entry of the project phase catalog. Codes are stable
// identifiers; display names and ordering are presentation concerns.
type Phase struct {
	Code      string
	Name      string
	SortOrder int
}

// PlaceholderCode is assigned to imported rows that carry no phase
// information of their own, such as calendar events.
const PlaceholderCode = "overig"

// DefaultCatalog returns the built-in phase list. It is the fallback when
// the catalog cannot be read from the database, so normalization and
// validation always have a catalog to consult.
func DefaultCatalog() []Phase {
	return []Phase{
		{Code: "schets-ontwerp", Name: "Schetsontwerp", SortOrder: 1},
		{Code: "voorlopig-ontwerp", Name: "Voorlopig ontwerp", SortOrder: 2},
		{Code: "definitief-ontwerp", Name: "Definitief ontwerp", SortOrder: 3},
		{Code: "technisch-ontwerp", Name: "Technisch ontwerp", SortOrder: 4},
		{Code: "omgevingsvergunning", Name: "Omgevingsvergunning", SortOrder: 5},
		{Code: "bouwvoorbereiding", Name: "Bouwvoorbereiding", SortOrder: 6},
		{Code: "aanbesteding", Name: "Aanbesteding", SortOrder: 7},
		{Code: "uitvoering", Name: "Uitvoering", SortOrder: 8},
		{Code: "oplevering", Name: "Oplevering", SortOrder: 9},
		{Code: "overig", Name: "Overig", SortOrder: 10},
	}
}

// ByCode finds a phase in the catalog by its code.
func ByCode(catalog []Phase, code string) (Phase, bool) {
	for _, p := range catalog {
		if p.Code == code {
			return p, true
		}
	}
	return Phase{}, false
}

// labelVariants maps free-text phase labels, after prefix stripping and
// lowercasing, to canonical codes. Spreadsheets from the field use
// abbreviations and older names for the same phases.
var labelVariants = map[string]string{
	"schetsontwerp":         "schets-ontwerp",
	"so":                    "schets-ontwerp",
	"vo":                    "voorlopig-ontwerp",
	"voorontwerp":           "voorlopig-ontwerp",
	"do":                    "definitief-ontwerp",
	"to":                    "technisch-ontwerp",
	"bestek":                "technisch-ontwerp",
	"vergunning":            "omgevingsvergunning",
	"bouwaanvraag":          "omgevingsvergunning",
	"werkvoorbereiding":     "bouwvoorbereiding",
	"uitvoeringsfase":       "uitvoering",
	"bouwbegeleiding":       "uitvoering",
	"algemeen":              "overig",
	"overige werkzaamheden": "overig",
}

var numericPrefix = regexp.MustCompile(`^\d+\s*-\s*`)

// CanonicalCode converts a free-text phase label into a canonical phase
// code. A leading "N - " numeric prefix is stripped, the label is
// lowercased and trimmed, known variants are mapped through the lookup
// table, and anything unmapped is slugified as a best-effort code.
func CanonicalCode(label string) string {
	cleaned := strings.ToLower(strings.TrimSpace(numericPrefix.ReplaceAllString(label, "")))
	if cleaned == "" {
		return ""
	}
	if code, ok := labelVariants[cleaned]; ok {
		return code
	}
	return Slugify(cleaned)
}

// Slugify lowercases a label and replaces whitespace runs with hyphens.
func Slugify(label string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(label)))
	return strings.Join(fields, "-")
}
