package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dispusip/arsip-api/internal/models"
)

// KlasifikasiRepository reads the classification code registry. The registry
// is reference data; nothing here writes to it.
type KlasifikasiRepository struct {
	db *sqlx.DB
}

// NewKlasifikasiRepository constructs the repository.
func NewKlasifikasiRepository(db *sqlx.DB) *KlasifikasiRepository {
	return &KlasifikasiRepository{db: db}
}

// List returns every classification code ordered by kode.
func (r *KlasifikasiRepository) List(ctx context.Context) ([]models.Klasifikasi, error) {
	const query = `SELECT id, kode, detail_kode, created_at, updated_at FROM klasifikasi ORDER BY kode ASC`
	var rows []models.Klasifikasi
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list klasifikasi: %w", err)
	}
	return rows, nil
}

// Exists reports whether a classification code is registered.
func (r *KlasifikasiRepository) Exists(ctx context.Context, kode string) (bool, error) {
	var one int
	err := r.db.GetContext(ctx, &one, `SELECT 1 FROM klasifikasi WHERE kode = $1 LIMIT 1`, kode)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check klasifikasi %s: %w", kode, err)
	}
	return true, nil
}

// FindByKode loads one classification code.
func (r *KlasifikasiRepository) FindByKode(ctx context.Context, kode string) (*models.Klasifikasi, error) {
	const query = `SELECT id, kode, detail_kode, created_at, updated_at FROM klasifikasi WHERE kode = $1`
	var row models.Klasifikasi
	if err := r.db.GetContext(ctx, &row, query, kode); err != nil {
		return nil, err
	}
	return &row, nil
}

// DetailMap returns the kode to detail_kode mapping in one query. Aggregation
// callers use it instead of resolving descriptions row by row.
func (r *KlasifikasiRepository) DetailMap(ctx context.Context) (map[string]string, error) {
	type pair struct {
		Kode       string `db:"kode"`
		DetailKode string `db:"detail_kode"`
	}
	var pairs []pair
	if err := r.db.SelectContext(ctx, &pairs, `SELECT kode, detail_kode FROM klasifikasi`); err != nil {
		return nil, fmt.Errorf("load klasifikasi detail map: %w", err)
	}
	details := make(map[string]string, len(pairs))
	for _, p := range pairs {
		details[p.Kode] = p.DetailKode
	}
	return details, nil
}
