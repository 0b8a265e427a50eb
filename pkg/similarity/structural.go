package similarity

import (
	"regexp"
	"strings"
)

// Structural similarity compares markup-like content by the sets of tag
// names and class attribute values it contains, not by its text. This is
// deliberately a lightweight pattern scan, not a full parser: malformed
// markup still yields a usable token set.

var (
	tagPattern         = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9-]*)`)
	classAttrPattern   = regexp.MustCompile(`class\s*=\s*"([^"]*)"`)
	classAttrSQPattern = regexp.MustCompile(`class\s*=\s*'([^']*)'`)
)

// StructuralTokens extracts the distinct tag names and class values from
// content. Tag names are lowercased; class attributes are split on
// whitespace into individual class tokens.
func StructuralTokens(content string) map[string]struct{} {
	tokens := make(map[string]struct{})

	for _, m := range tagPattern.FindAllStringSubmatch(content, -1) {
		tokens[strings.ToLower(m[1])] = struct{}{}
	}

	for _, pattern := range []*regexp.Regexp{classAttrPattern, classAttrSQPattern} {
		for _, m := range pattern.FindAllStringSubmatch(content, -1) {
			for _, class := range strings.Fields(m[1]) {
				tokens["."+class] = struct{}{}
			}
		}
	}

	return tokens
}

// StructuralScore returns the Jaccard overlap |A ∩ B| / |A ∪ B| of the two
// token sets. An empty union scores 0 — two contents without any markup
// share no structure worth matching on.
func StructuralScore(a, b string) float64 {
	setA := StructuralTokens(a)
	setB := StructuralTokens(b)

	union := len(setA)
	intersection := 0
	for token := range setB {
		if _, ok := setA[token]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}
