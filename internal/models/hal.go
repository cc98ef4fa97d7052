package models

import "time"

// Hal is the file header grouping archive entries under one filing number and
// title. Stored in the no_hal_berkas table. Headers are only ever created as
// part of a submission; no endpoint mutates them afterwards.
type Hal struct {
	ID          int64     `db:"id" json:"id"`
	Nomor       string    `db:"nomor" json:"nomor"`
	JudulBerkas string    `db:"judul_berkas" json:"judul_berkas"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
