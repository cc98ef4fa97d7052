package models

import "time"

// Berkas is an individual archive entry. id_hal links the entry to its file
// header and kode_klasifikasi references the classification registry; both
// columns are nullable in the schema even though writes always set the kode.
type Berkas struct {
	ID              int64     `db:"id" json:"id"`
	IDHal           *int64    `db:"id_hal" json:"id_hal"`
	NoArsip         string    `db:"no_arsip" json:"no_arsip"`
	KodeKlasifikasi *string   `db:"kode_klasifikasi" json:"kode_klasifikasi"`
	UraianInformasi string    `db:"uraian_informasi" json:"uraian_informasi"`
	Tanggal         time.Time `db:"tanggal" json:"tanggal"`
	Jumlah          float64   `db:"jumlah" json:"jumlah"`
	Satuan          string    `db:"satuan" json:"satuan"`
	Keamanan        string    `db:"keamanan" json:"keamanan"`
	Keterangan      *string   `db:"keterangan" json:"keterangan"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// BerkasRelasi is a berkas enriched with its resolved relations, mirroring
// the legacy payload keys "kode" and "hal".
type BerkasRelasi struct {
	Berkas
	Kode *Klasifikasi `json:"kode,omitempty"`
	Hal  *Hal         `json:"hal,omitempty"`
}
