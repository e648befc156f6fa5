package tui

import "strings"

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func padRight(s string, n int) string {
	if n <= 0 {
		return s
	}
	return s + strings.Repeat(" ", n)
}

// clamp keeps v inside [lo, hi].
func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
