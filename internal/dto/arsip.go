package dto

import "github.com/dispusip/arsip-api/internal/models"

// StoreArsipRequest is the submission payload: one file header plus an
// ordered list of archive items created together in a single transaction.
type StoreArsipRequest struct {
	NoBerkas    string             `json:"no_berkas" binding:"required"`
	JudulBerkas string             `json:"judul_berkas" binding:"required"`
	Items       []ArsipItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ArsipItemRequest is one archive entry inside a submission.
type ArsipItemRequest struct {
	NoItem              string  `json:"no_item" binding:"required"`
	Kode                string  `json:"kode" binding:"required"`
	DetailKlasifikasi   string  `json:"detail_klasifikasi"`
	Uraian              string  `json:"uraian" binding:"required"`
	Tanggal             string  `json:"tanggal" binding:"required,datetime=2006-01-02"`
	JumlahAngka         float64 `json:"jumlah_angka" binding:"gte=0"`
	SatuanJumlah        string  `json:"satuan_jumlah" binding:"required"`
	JumlahLengkap       string  `json:"jumlah_lengkap"`
	KlasifikasiKeamanan string  `json:"klasifikasi_keamanan" binding:"required"`
	Keterangan          *string `json:"keterangan"`
}

// StoreArsipResponse reports the created header and its items.
type StoreArsipResponse struct {
	Hal        models.Hal      `json:"hal"`
	Items      []models.Berkas `json:"items"`
	TotalItems int             `json:"total_items"`
}

// UpdateBerkasRequest is the full replacement payload for one berkas.
type UpdateBerkasRequest struct {
	NoArsip         string  `json:"no_arsip" binding:"required"`
	KodeKlasifikasi string  `json:"kode_klasifikasi" binding:"required"`
	UraianInformasi string  `json:"uraian_informasi" binding:"required"`
	Tanggal         string  `json:"tanggal" binding:"required,datetime=2006-01-02"`
	Jumlah          float64 `json:"jumlah" binding:"gte=0"`
	Satuan          string  `json:"satuan" binding:"required"`
	Keamanan        string  `json:"keamanan" binding:"required"`
	Keterangan      *string `json:"keterangan"`
}

// NextNumberData carries the numbering suggestion together with snapshots of
// the last matching entry and its header. The suggestion is not a
// reservation; concurrent callers can receive the same number.
type NextNumberData struct {
	NextNumber      string          `json:"next_number"`
	KodeKlasifikasi string          `json:"kode_klasifikasi"`
	LastBerkas      *LastBerkasInfo `json:"last_berkas"`
	LastHal         *LastHalInfo    `json:"last_hal"`
}

// LastBerkasInfo is the trimmed snapshot of the latest entry for a code.
type LastBerkasInfo struct {
	ID      int64  `json:"id"`
	IDHal   *int64 `json:"id_hal"`
	NoArsip string `json:"no_arsip"`
}

// LastHalInfo is the trimmed snapshot of that entry's file header.
type LastHalInfo struct {
	ID          int64  `json:"id"`
	Nomor       string `json:"nomor"`
	JudulBerkas string `json:"judul_berkas"`
}
