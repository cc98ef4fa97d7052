package models

import "time"

// Klasifikasi is a classification code reference row. The table is reference
// data maintained out-of-band; the API only reads it.
type Klasifikasi struct {
	ID         int64     `db:"id" json:"id"`
	Kode       string    `db:"kode" json:"kode"`
	DetailKode string    `db:"detail_kode" json:"detail_kode"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// DetailUnknown is the placeholder description used when an aggregated
// classification code no longer resolves against the registry.
const DetailUnknown = "Unknown"
