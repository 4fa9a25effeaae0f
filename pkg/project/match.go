package project

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Matcher decides whether a free-text name refers to a candidate project.
type Matcher func(name string, candidate Project) bool

// matchers is the ordered match policy: exact case-insensitive equality
// first, then substring containment, then accent-insensitive substring
// containment. Each stage is tried against the full candidate list before
// the next, so an exact match elsewhere in the list beats an earlier
// substring match.
var matchers = []Matcher{
	func(name string, candidate Project) bool {
		return strings.EqualFold(strings.TrimSpace(name), candidate.Name)
	},
	func(name string, candidate Project) bool {
		return containsFold(candidate.Name, strings.TrimSpace(name))
	},
	func(name string, candidate Project) bool {
		return containsFold(foldAccents(candidate.Name), foldAccents(strings.TrimSpace(name)))
	},
}

// Match resolves a free-text project name against the candidate list.
// The first candidate accepted by the earliest matching stage wins.
func Match(name string, candidates []Project) (Project, bool) {
	if strings.TrimSpace(name) == "" {
		return Project{}, false
	}
	for _, matcher := range matchers {
		for _, candidate := range candidates {
			if matcher(name, candidate) {
				return candidate, true
			}
		}
	}
	return Project{}, false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldAccents(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return folded
}
