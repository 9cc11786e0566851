package tools

import "fmt"

// formatBytes renders a byte count for display: whole bytes below a
// kilobyte, one decimal for kilobytes and megabytes, two for gigabytes.
func formatBytes(n int64) string {
	const (
		kb = 1 << 10
		mb = 1 << 20
		gb = 1 << 30
	)
	switch {
	case n < kb:
		return fmt.Sprintf("%d B", n)
	case n < mb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	case n < gb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	default:
		return fmt.Sprintf("%.2f GB", float64(n)/gb)
	}
}

// formatCount humanizes a download count: 999 stays 999, 1234 becomes
// 1.2k, 5600000 becomes 5.6M.
func formatCount(n int64) string {
	switch {
	case n < 1_000:
		return fmt.Sprintf("%d", n)
	case n < 1_000_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	}
}

// digestPrefix shortens a hex digest to its first 12 characters for
// display alongside filenames.
func digestPrefix(d string) string {
	if len(d) > 12 {
		return d[:12]
	}

	return d
}

// orDefault substitutes fallback when s is empty.
func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}

	return s
}
