package style

import (
	"sort"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
)

// Merge joins class strings, dropping every class that a later class of the
// same group overrides. Arguments are in increasing precedence, so in
// Merge(base, instance) the instance wins. Classes tailwind does not know are
// always kept.
func Merge(classes ...string) string {
	var tokens []string
	for _, c := range classes {
		tokens = append(tokens, strings.Fields(c)...)
	}
	if len(tokens) == 0 {
		return ""
	}
	return twmerge.Merge(strings.Join(tokens, " "))
}

// splitModifiers separates variant prefixes such as "hover:" or "print:"
// from the utility. Modifiers are returned sorted so that "a:b:" and "b:a:"
// compare equal.
func splitModifiers(token string) (string, string) {
	parts := strings.Split(token, ":")
	if len(parts) == 1 {
		return "", token
	}

	mods := parts[:len(parts)-1]
	sort.Strings(mods)
	return strings.Join(mods, ":") + ":", parts[len(parts)-1]
}

func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}
