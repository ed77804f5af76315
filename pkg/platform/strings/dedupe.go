// Package strings provides string list helpers.
package strings

import (
	"strings"
)

// SplitList splits value on sep, trims every element and drops empty and
// repeated ones. Order of first occurrence is preserved. An input with no
// usable element yields nil.
//
// Example:
//
//	SplitList(" kafka-1:9092, kafka-2:9092,,kafka-1:9092 ", ",")
//	// Returns: []string{"kafka-1:9092", "kafka-2:9092"}
func SplitList(value, sep string) []string {
	return DedupeAndTrim(strings.Split(value, sep))
}

// DedupeAndTrim applies the SplitList element rules to an existing slice.
func DedupeAndTrim(values []string) []string {
	var result []string
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}
