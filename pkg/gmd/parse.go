// Package gmd converts raw level save data into GMD plist documents.
package gmd

import "strings"

const (
	pairSeparator   = ":"
	valueTerminator = ";"
)

// ParseStats describes how a raw save string was consumed.
type ParseStats struct {
	Pairs      int
	Duplicates []string
	Trailing   bool
}

// Parse splits raw save data into key/value pairs. Values are cut at the first ';',
// an odd trailing element is ignored and the last occurrence of a repeated key wins.
func Parse(raw string) map[string]string {
	pairs, _ := ParseWithStats(raw)
	return pairs
}

// ParseWithStats is Parse plus bookkeeping used to flag empty or suspicious input.
func ParseWithStats(raw string) (map[string]string, ParseStats) {
	pairs := make(map[string]string)
	var stats ParseStats

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return pairs, stats
	}

	parts := strings.Split(trimmed, pairSeparator)
	for i := 0; i+1 < len(parts); i += 2 {
		key := parts[i]
		value, _, _ := strings.Cut(parts[i+1], valueTerminator)
		if _, seen := pairs[key]; seen {
			stats.Duplicates = append(stats.Duplicates, key)
		}
		pairs[key] = value
		stats.Pairs++
	}
	stats.Trailing = len(parts)%2 == 1
	return pairs, stats
}
