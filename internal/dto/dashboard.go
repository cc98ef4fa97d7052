package dto

import "github.com/dispusip/arsip-api/internal/models"

// StatsData is the total plus security-level breakdown.
type StatsData struct {
	Total    int                   `json:"total"`
	Keamanan models.KeamananCounts `json:"keamanan"`
}

// KlasifikasiCount is an entry count per classification code with its
// resolved description.
type KlasifikasiCount struct {
	Kode   string `json:"kode"`
	Detail string `json:"detail"`
	Jumlah int    `json:"jumlah"`
}

// RecentArsip is a trimmed berkas row for the dashboard summary.
type RecentArsip struct {
	ID              int64   `json:"id"`
	NoArsip         string  `json:"no_arsip"`
	UraianInformasi string  `json:"uraian_informasi"`
	Tanggal         string  `json:"tanggal"`
	Keamanan        string  `json:"keamanan"`
	Kode            *string `json:"kode"`
	JudulBerkas     *string `json:"judul_berkas"`
}

// SummaryData is the all-in-one dashboard payload.
type SummaryData struct {
	Statistics  StatsData          `json:"statistics"`
	Klasifikasi []KlasifikasiCount `json:"klasifikasi"`
	RecentArsip []RecentArsip      `json:"recent_arsip"`
}

// DailyCount is the entry count for one day inside a range query.
type DailyCount struct {
	Date  string `json:"date"`
	Total int    `json:"total"`
}

// RangeStatsData reports counts for an inclusive creation-date range.
type RangeStatsData struct {
	Total     int          `json:"total"`
	PerDay    []DailyCount `json:"per_day"`
	StartDate string       `json:"start_date"`
	EndDate   string       `json:"end_date"`
}

// KeamananPerKlasifikasi breaks a classification's entries down by security
// bucket.
type KeamananPerKlasifikasi struct {
	Kode     string                `json:"kode"`
	Detail   string                `json:"detail"`
	Keamanan models.KeamananCounts `json:"keamanan"`
	Total    int                   `json:"total"`
}
