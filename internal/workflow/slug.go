// Package workflow holds the publication workflow logic that is pure
// enough to test without storage: slug derivation and tag set
// reconciliation. Handlers and services layer persistence and race
// handling on top of these functions.
package workflow

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxSlugLen bounds the base slug derived from a title. Suffixes added
// by NextAvailableSlug may push the stored value slightly past this,
// which the 220-char column accommodates.
const MaxSlugLen = 200

var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify lowercases and ASCII-folds a title into a hyphenated token
// sequence truncated to MaxSlugLen. Characters outside [a-z0-9] become
// separators; runs of separators collapse into a single hyphen.
func Slugify(title string) string {
	folded, _, err := transform.String(asciiFold, title)
	if err != nil {
		folded = title
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingHyphen := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		default:
			pendingHyphen = true
		}
	}

	slug := b.String()
	if len(slug) > MaxSlugLen {
		slug = strings.TrimRight(slug[:MaxSlugLen], "-")
	}
	return slug
}

// NextAvailableSlug returns base if it is not taken, otherwise the first
// of base-1, base-2, ... that is free. The taken set must reflect the
// persisted slugs at save time; the storage uniqueness constraint is
// still the final arbiter under concurrent creation.
func NextAvailableSlug(base string, taken map[string]bool) string {
	if base == "" {
		base = "post"
	}
	if !taken[base] {
		return base
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !taken[candidate] {
			return candidate
		}
	}
}
