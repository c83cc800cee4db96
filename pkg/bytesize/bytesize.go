// Package bytesize converts between the catalog's "11601 B" size strings and byte counts.
package bytesize

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	kib = 1024
	mib = 1024 * 1024
)

// Parse recovers the byte count from a stored size such as "11601 B".
// ok is false for empty or malformed input.
func Parse(raw string) (n int64, ok bool) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, false
	}
	v, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Format renders a byte count as B below 1 KiB, KB below 1 MiB and MB otherwise.
func Format(n int64) string {
	switch {
	case n >= mib:
		return fmt.Sprintf("%.2f MB", float64(n)/mib)
	case n >= kib:
		return fmt.Sprintf("%.2f KB", float64(n)/kib)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// Humanize reformats a stored size string. Empty input stays empty and
// unparseable input is returned unchanged.
func Humanize(raw string) string {
	if raw == "" {
		return ""
	}
	n, ok := Parse(raw)
	if !ok {
		return raw
	}
	return Format(n)
}
