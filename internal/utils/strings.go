package utils

import "strings"

// NormalizeCity lowercases and trims a city name so route keys stay stable
// regardless of how the caller typed the origin/destination.
func NormalizeCity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
