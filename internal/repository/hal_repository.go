package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/dispusip/arsip-api/internal/models"
)

// HalRepository reads file headers. Creation happens exclusively inside the
// submission transaction owned by ArsipRepository.
type HalRepository struct {
	db *sqlx.DB
}

// NewHalRepository constructs the repository.
func NewHalRepository(db *sqlx.DB) *HalRepository {
	return &HalRepository{db: db}
}

// FindByID loads one file header.
func (r *HalRepository) FindByID(ctx context.Context, id int64) (*models.Hal, error) {
	const query = `SELECT id, nomor, judul_berkas, created_at, updated_at FROM no_hal_berkas WHERE id = $1`
	var hal models.Hal
	if err := r.db.GetContext(ctx, &hal, query, id); err != nil {
		return nil, err
	}
	return &hal, nil
}
