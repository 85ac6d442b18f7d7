package workflow

import "strings"

// ParseTagInput splits a comma-separated free-text tag string into
// names: whitespace trimmed, empty tokens dropped. Names stay
// case-sensitive; "Go" and "go" are distinct tags.
func ParseTagInput(input string) []string {
	parts := strings.Split(input, ",")
	names := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

// ReconcileTags computes the association changes needed to make a
// post's tag set equal exactly the requested names. Tags absent from
// requested are unlinked (the Tag rows themselves persist). Applying
// the result twice is a no-op.
func ReconcileTags(existing, requested []string) (toAdd, toRemove []string) {
	have := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		have[name] = struct{}{}
	}
	want := make(map[string]struct{}, len(requested))
	for _, name := range requested {
		want[name] = struct{}{}
	}

	for _, name := range requested {
		if _, ok := have[name]; !ok {
			toAdd = append(toAdd, name)
		}
	}
	for _, name := range existing {
		if _, ok := want[name]; !ok {
			toRemove = append(toRemove, name)
		}
	}
	return toAdd, toRemove
}
