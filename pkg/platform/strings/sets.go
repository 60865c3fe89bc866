// Package strings holds small set helpers for identifier lists such as
// payment method names and origin allowlists.
package strings

import "strings"

// DedupeAndTrim trims every element and drops blanks and repeats, keeping
// first-seen order. Case is preserved: method identifiers are case
// sensitive.
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// SplitList parses a comma separated list through DedupeAndTrim.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(s, ","))
}

// Intersect returns the elements of a also present in b, in a's order.
func Intersect(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(b))
	for _, v := range b {
		set[v] = struct{}{}
	}
	var out []string
	for _, v := range a {
		if _, ok := set[v]; ok {
			out = append(out, v)
		}
	}
	return out
}

// Overlaps reports whether a and b share an element.
func Overlaps(a, b []string) bool {
	return len(Intersect(a, b)) > 0
}
