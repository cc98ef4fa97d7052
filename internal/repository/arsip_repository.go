package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dispusip/arsip-api/internal/models"
)

// ErrKlasifikasiUnknown marks a submission item whose classification code is
// not registered. The whole transaction rolls back when it surfaces.
var ErrKlasifikasiUnknown = errors.New("kode klasifikasi tidak terdaftar")

// ArsipRepository owns the transactional submission write path: one file
// header plus its archive entries, committed together or not at all.
type ArsipRepository struct {
	db *sqlx.DB
}

// NewArsipRepository constructs the repository.
func NewArsipRepository(db *sqlx.DB) *ArsipRepository {
	return &ArsipRepository{db: db}
}

// StoreSubmission inserts the header and every item in one transaction. Each
// item's classification code is re-checked inside the transaction, covering
// races against out-of-band registry changes after declarative validation.
// On success the generated ids and timestamps are written back into hal and
// items.
func (r *ArsipRepository) StoreSubmission(ctx context.Context, hal *models.Hal, items []models.Berkas) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin submission tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	hal.CreatedAt = now
	hal.UpdatedAt = now

	err = tx.QueryRowxContext(ctx,
		`INSERT INTO no_hal_berkas (nomor, judul_berkas, created_at, updated_at) VALUES ($1, $2, $3, $4) RETURNING id`,
		hal.Nomor, hal.JudulBerkas, hal.CreatedAt, hal.UpdatedAt,
	).Scan(&hal.ID)
	if err != nil {
		return fmt.Errorf("insert hal: %w", err)
	}

	for i := range items {
		kode := ""
		if items[i].KodeKlasifikasi != nil {
			kode = *items[i].KodeKlasifikasi
		}

		var one int
		err = tx.GetContext(ctx, &one, `SELECT 1 FROM klasifikasi WHERE kode = $1 LIMIT 1`, kode)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				err = fmt.Errorf("kode klasifikasi %s: %w", kode, ErrKlasifikasiUnknown)
			} else {
				err = fmt.Errorf("check kode %s: %w", kode, err)
			}
			return err
		}

		items[i].IDHal = &hal.ID
		items[i].CreatedAt = now
		items[i].UpdatedAt = now

		err = tx.QueryRowxContext(ctx,
			`INSERT INTO berkas (id_hal, no_arsip, kode_klasifikasi, uraian_informasi, tanggal, jumlah, satuan, keamanan, keterangan, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`,
			items[i].IDHal, items[i].NoArsip, items[i].KodeKlasifikasi, items[i].UraianInformasi,
			items[i].Tanggal, items[i].Jumlah, items[i].Satuan, items[i].Keamanan, items[i].Keterangan,
			items[i].CreatedAt, items[i].UpdatedAt,
		).Scan(&items[i].ID)
		if err != nil {
			err = fmt.Errorf("insert berkas item %d: %w", i, err)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit submission tx: %w", err)
	}
	return nil
}
