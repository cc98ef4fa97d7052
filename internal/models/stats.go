package models

import "time"

// KeamananCountRow is a raw grouped count per stored keamanan string.
// Bucketing into the three recognized levels happens in Go.
type KeamananCountRow struct {
	Keamanan string `db:"keamanan"`
	Jumlah   int    `db:"jumlah"`
}

// KodeCountRow is a grouped entry count per classification code.
type KodeCountRow struct {
	Kode   string `db:"kode_klasifikasi"`
	Jumlah int    `db:"jumlah"`
}

// KodeKeamananCountRow is a grouped count per classification code and raw
// keamanan string.
type KodeKeamananCountRow struct {
	Kode     string `db:"kode_klasifikasi"`
	Keamanan string `db:"keamanan"`
	Jumlah   int    `db:"jumlah"`
}

// DailyCountRow is the per-day entry count inside a date range.
type DailyCountRow struct {
	Date  time.Time `db:"date"`
	Total int       `db:"total"`
}
