// Package ident derives deterministic node identifiers from free-text labels.
package ident

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ProposedNodeIDPrefix is the id prefix of proposed textbook-unit nodes.
const ProposedNodeIDPrefix = "P_TU_"

// Slugify normalizes a label into an identifier fragment: trim, case-fold,
// canonical compose, then collapse every run of non-letter/non-number runes
// into a single underscore and strip leading and trailing underscores.
// Non-Latin scripts are kept as letters. Returns "" if nothing survives.
func Slugify(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	lastUnderscore := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}

	return strings.Trim(b.String(), "_")
}

// GenerateProposedNodeID builds a collision-free id for a proposed
// textbook-unit node. The candidate is "P_TU_<slug>"; if taken, suffixes
// "_2", "_3", ... are probed until a free one is found. Reports false when
// the label yields an empty slug.
func GenerateProposedNodeID(label string, existingIDs map[string]bool) (string, bool) {
	slug := Slugify(label)
	if slug == "" {
		return "", false
	}

	candidate := ProposedNodeIDPrefix + slug
	if !existingIDs[candidate] {
		return candidate, true
	}
	for i := 2; ; i++ {
		probe := fmt.Sprintf("%s_%d", candidate, i)
		if !existingIDs[probe] {
			return probe, true
		}
	}
}
