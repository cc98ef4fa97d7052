package models

import "strings"

// Keamanan is the stored security classification of a berkas.
type Keamanan string

const (
	KeamananBiasa        Keamanan = "Biasa"
	KeamananRahasia      Keamanan = "Rahasia"
	KeamananSuperRahasia Keamanan = "Super-rahasia"
)

// NormalizeKeamanan maps any accepted spelling of a security level to its
// stored form. Matching is case-insensitive and tolerates either a space or
// a hyphen in "super rahasia". The same function drives both write-time
// normalization and aggregation bucketing.
func NormalizeKeamanan(raw string) (Keamanan, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "-")
	switch s {
	case "biasa":
		return KeamananBiasa, true
	case "rahasia":
		return KeamananRahasia, true
	case "super-rahasia":
		return KeamananSuperRahasia, true
	default:
		return "", false
	}
}

// KeamananCounts holds the three security buckets used by the dashboard.
type KeamananCounts struct {
	Biasa        int `json:"biasa"`
	Rahasia      int `json:"rahasia"`
	SuperRahasia int `json:"super_rahasia"`
}

// Add buckets n occurrences of the raw security string. It reports false
// when the value does not normalize to a recognized level; such rows stay
// unbucketed.
func (c *KeamananCounts) Add(raw string, n int) bool {
	level, ok := NormalizeKeamanan(raw)
	if !ok {
		return false
	}
	switch level {
	case KeamananBiasa:
		c.Biasa += n
	case KeamananRahasia:
		c.Rahasia += n
	case KeamananSuperRahasia:
		c.SuperRahasia += n
	}
	return true
}

// Total sums the three buckets.
func (c KeamananCounts) Total() int {
	return c.Biasa + c.Rahasia + c.SuperRahasia
}
