package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dispusip/arsip-api/internal/models"
)

const berkasColumns = `id, id_hal, no_arsip, kode_klasifikasi, uraian_informasi, tanggal, jumlah, satuan, keamanan, keterangan, created_at, updated_at`

const berkasRelasiSelect = `SELECT b.id, b.id_hal, b.no_arsip, b.kode_klasifikasi, b.uraian_informasi, b.tanggal, b.jumlah, b.satuan, b.keamanan, b.keterangan, b.created_at, b.updated_at,
       k.id AS kode_id, k.kode AS kode_kode, k.detail_kode AS kode_detail, k.created_at AS kode_created_at, k.updated_at AS kode_updated_at,
       h.id AS hal_id, h.nomor AS hal_nomor, h.judul_berkas AS hal_judul, h.created_at AS hal_created_at, h.updated_at AS hal_updated_at
FROM berkas b
LEFT JOIN klasifikasi k ON k.kode = b.kode_klasifikasi
LEFT JOIN no_hal_berkas h ON h.id = b.id_hal`

// BerkasRepository handles archive entry persistence and the aggregate
// queries backing the dashboard.
type BerkasRepository struct {
	db *sqlx.DB
}

// NewBerkasRepository constructs the repository.
func NewBerkasRepository(db *sqlx.DB) *BerkasRepository {
	return &BerkasRepository{db: db}
}

type berkasRelasiRow struct {
	models.Berkas
	KodeID        sql.NullInt64  `db:"kode_id"`
	KodeKode      sql.NullString `db:"kode_kode"`
	KodeDetail    sql.NullString `db:"kode_detail"`
	KodeCreatedAt sql.NullTime   `db:"kode_created_at"`
	KodeUpdatedAt sql.NullTime   `db:"kode_updated_at"`
	HalID         sql.NullInt64  `db:"hal_id"`
	HalNomor      sql.NullString `db:"hal_nomor"`
	HalJudul      sql.NullString `db:"hal_judul"`
	HalCreatedAt  sql.NullTime   `db:"hal_created_at"`
	HalUpdatedAt  sql.NullTime   `db:"hal_updated_at"`
}

func (row berkasRelasiRow) toRelasi() models.BerkasRelasi {
	relasi := models.BerkasRelasi{Berkas: row.Berkas}
	if row.KodeID.Valid {
		relasi.Kode = &models.Klasifikasi{
			ID:         row.KodeID.Int64,
			Kode:       row.KodeKode.String,
			DetailKode: row.KodeDetail.String,
			CreatedAt:  row.KodeCreatedAt.Time,
			UpdatedAt:  row.KodeUpdatedAt.Time,
		}
	}
	if row.HalID.Valid {
		relasi.Hal = &models.Hal{
			ID:          row.HalID.Int64,
			Nomor:       row.HalNomor.String,
			JudulBerkas: row.HalJudul.String,
			CreatedAt:   row.HalCreatedAt.Time,
			UpdatedAt:   row.HalUpdatedAt.Time,
		}
	}
	return relasi
}

// ListWithRelations returns every berkas in insertion order, each joined with
// its classification and file header when they resolve.
func (r *BerkasRepository) ListWithRelations(ctx context.Context) ([]models.BerkasRelasi, error) {
	var rows []berkasRelasiRow
	if err := r.db.SelectContext(ctx, &rows, berkasRelasiSelect+" ORDER BY b.id ASC"); err != nil {
		return nil, fmt.Errorf("list berkas: %w", err)
	}
	result := make([]models.BerkasRelasi, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toRelasi())
	}
	return result, nil
}

// FindByID loads one berkas with its relations. sql.ErrNoRows passes through
// so callers can translate it.
func (r *BerkasRepository) FindByID(ctx context.Context, id int64) (*models.BerkasRelasi, error) {
	var row berkasRelasiRow
	if err := r.db.GetContext(ctx, &row, berkasRelasiSelect+" WHERE b.id = $1", id); err != nil {
		return nil, err
	}
	relasi := row.toRelasi()
	return &relasi, nil
}

// FindLatestByKode returns the entry with the greatest id for a
// classification code, or nil when none exists. Highest id is an
// insertion-order proxy, not a guard against concurrent writers.
func (r *BerkasRepository) FindLatestByKode(ctx context.Context, kode string) (*models.Berkas, error) {
	query := fmt.Sprintf(`SELECT %s FROM berkas WHERE kode_klasifikasi = $1 ORDER BY id DESC LIMIT 1`, berkasColumns)
	var berkas models.Berkas
	if err := r.db.GetContext(ctx, &berkas, query, kode); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find latest berkas for %s: %w", kode, err)
	}
	return &berkas, nil
}

// Update replaces the mutable fields of one berkas and returns the fresh
// row. sql.ErrNoRows is returned when the id does not exist.
func (r *BerkasRepository) Update(ctx context.Context, berkas *models.Berkas) (*models.Berkas, error) {
	berkas.UpdatedAt = time.Now().UTC()
	const query = `UPDATE berkas SET no_arsip = :no_arsip, kode_klasifikasi = :kode_klasifikasi, uraian_informasi = :uraian_informasi,
       tanggal = :tanggal, jumlah = :jumlah, satuan = :satuan, keamanan = :keamanan, keterangan = :keterangan, updated_at = :updated_at
       WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, berkas)
	if err != nil {
		return nil, fmt.Errorf("update berkas %d: %w", berkas.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update berkas %d: %w", berkas.ID, err)
	}
	if affected == 0 {
		return nil, sql.ErrNoRows
	}

	fresh := models.Berkas{}
	query2 := fmt.Sprintf(`SELECT %s FROM berkas WHERE id = $1`, berkasColumns)
	if err := r.db.GetContext(ctx, &fresh, query2, berkas.ID); err != nil {
		return nil, fmt.Errorf("reload berkas %d: %w", berkas.ID, err)
	}
	return &fresh, nil
}

// Delete removes one berkas and returns its prior snapshot. sql.ErrNoRows is
// returned when the id does not exist.
func (r *BerkasRepository) Delete(ctx context.Context, id int64) (*models.Berkas, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin delete tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var snapshot models.Berkas
	query := fmt.Sprintf(`SELECT %s FROM berkas WHERE id = $1`, berkasColumns)
	if err = tx.GetContext(ctx, &snapshot, query, id); err != nil {
		return nil, err
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM berkas WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete berkas %d: %w", id, err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit delete tx: %w", err)
	}
	return &snapshot, nil
}

// CountAll returns the total number of entries.
func (r *BerkasRepository) CountAll(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM berkas`); err != nil {
		return 0, fmt.Errorf("count berkas: %w", err)
	}
	return total, nil
}

// CountByKeamanan groups entry counts by the raw stored keamanan string.
// Callers bucket the rows through models.KeamananCounts.
func (r *BerkasRepository) CountByKeamanan(ctx context.Context) ([]models.KeamananCountRow, error) {
	const query = `SELECT keamanan, COUNT(*) AS jumlah FROM berkas GROUP BY keamanan`
	var rows []models.KeamananCountRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count berkas by keamanan: %w", err)
	}
	return rows, nil
}

// CountByKode groups entry counts by classification code, skipping entries
// without one.
func (r *BerkasRepository) CountByKode(ctx context.Context) ([]models.KodeCountRow, error) {
	const query = `SELECT kode_klasifikasi, COUNT(*) AS jumlah FROM berkas WHERE kode_klasifikasi IS NOT NULL GROUP BY kode_klasifikasi ORDER BY kode_klasifikasi ASC`
	var rows []models.KodeCountRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count berkas by kode: %w", err)
	}
	return rows, nil
}

// CountByKodeKeamanan groups entry counts by classification code and raw
// keamanan string.
func (r *BerkasRepository) CountByKodeKeamanan(ctx context.Context) ([]models.KodeKeamananCountRow, error) {
	const query = `SELECT kode_klasifikasi, keamanan, COUNT(*) AS jumlah FROM berkas WHERE kode_klasifikasi IS NOT NULL GROUP BY kode_klasifikasi, keamanan ORDER BY kode_klasifikasi ASC`
	var rows []models.KodeKeamananCountRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count berkas by kode and keamanan: %w", err)
	}
	return rows, nil
}

// CountInRange totals entries whose creation date falls inside the inclusive
// range.
func (r *BerkasRepository) CountInRange(ctx context.Context, start, end time.Time) (int, error) {
	const query = `SELECT COUNT(*) FROM berkas WHERE DATE(created_at) BETWEEN $1 AND $2`
	var total int
	if err := r.db.GetContext(ctx, &total, query, start, end); err != nil {
		return 0, fmt.Errorf("count berkas in range: %w", err)
	}
	return total, nil
}

// CountPerDay returns the per-day entry counts inside the inclusive range.
func (r *BerkasRepository) CountPerDay(ctx context.Context, start, end time.Time) ([]models.DailyCountRow, error) {
	const query = `SELECT DATE(created_at) AS date, COUNT(*) AS total FROM berkas WHERE DATE(created_at) BETWEEN $1 AND $2 GROUP BY DATE(created_at) ORDER BY date ASC`
	var rows []models.DailyCountRow
	if err := r.db.SelectContext(ctx, &rows, query, start, end); err != nil {
		return nil, fmt.Errorf("count berkas per day: %w", err)
	}
	return rows, nil
}

// TopKode returns classification codes by descending entry count. Ties break
// on kode ascending so the ordering is deterministic.
func (r *BerkasRepository) TopKode(ctx context.Context, limit int) ([]models.KodeCountRow, error) {
	const query = `SELECT kode_klasifikasi, COUNT(*) AS jumlah FROM berkas WHERE kode_klasifikasi IS NOT NULL GROUP BY kode_klasifikasi ORDER BY jumlah DESC, kode_klasifikasi ASC LIMIT $1`
	var rows []models.KodeCountRow
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("top kode klasifikasi: %w", err)
	}
	return rows, nil
}

// Recent returns the most recently created entries with relations.
func (r *BerkasRepository) Recent(ctx context.Context, limit int) ([]models.BerkasRelasi, error) {
	var rows []berkasRelasiRow
	if err := r.db.SelectContext(ctx, &rows, berkasRelasiSelect+" ORDER BY b.created_at DESC LIMIT $1", limit); err != nil {
		return nil, fmt.Errorf("recent berkas: %w", err)
	}
	result := make([]models.BerkasRelasi, 0, len(rows))
	for _, row := range rows {
		result = append(result, row.toRelasi())
	}
	return result, nil
}
