package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/dispusip/arsip-api/internal/dto"
	"github.com/dispusip/arsip-api/internal/models"
	"github.com/dispusip/arsip-api/internal/repository"
	appErrors "github.com/dispusip/arsip-api/pkg/errors"
)

const (
	tanggalLayout = "2006-01-02"

	// keteranganDefault is stored when an update omits keterangan. Create
	// keeps NULL instead; the asymmetry is inherited business behavior.
	keteranganDefault = "Tekstual"

	dashboardCachePattern = "dash:*"
)

type klasifikasiReader interface {
	Exists(ctx context.Context, kode string) (bool, error)
}

type halReader interface {
	FindByID(ctx context.Context, id int64) (*models.Hal, error)
}

type berkasStore interface {
	ListWithRelations(ctx context.Context) ([]models.BerkasRelasi, error)
	FindByID(ctx context.Context, id int64) (*models.BerkasRelasi, error)
	FindLatestByKode(ctx context.Context, kode string) (*models.Berkas, error)
	Update(ctx context.Context, berkas *models.Berkas) (*models.Berkas, error)
	Delete(ctx context.Context, id int64) (*models.Berkas, error)
}

type submissionStore interface {
	StoreSubmission(ctx context.Context, hal *models.Hal, items []models.Berkas) error
}

// ArsipService orchestrates the berkas lifecycle: listing, submission,
// update, delete, and the next-number suggestion.
type ArsipService struct {
	berkas      berkasStore
	submissions submissionStore
	klasifikasi klasifikasiReader
	hal         halReader
	cache       *CacheService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewArsipService constructs the service.
func NewArsipService(berkas berkasStore, submissions submissionStore, klasifikasi klasifikasiReader, hal halReader, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ArsipService {
	if validate == nil {
		validate = validator.New()
	}
	// DTO rules live in gin's binding tags; point the validator at them so
	// service-level validation sees the same rules as request binding.
	validate.SetTagName("binding")
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArsipService{
		berkas:      berkas,
		submissions: submissions,
		klasifikasi: klasifikasi,
		hal:         hal,
		cache:       cache,
		validate:    validate,
		logger:      logger,
	}
}

// List returns every berkas with joined relations in insertion order.
func (s *ArsipService) List(ctx context.Context) ([]models.BerkasRelasi, error) {
	items, err := s.berkas.ListWithRelations(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mengambil data berkas")
	}
	return items, nil
}

// Get loads one berkas with relations.
func (s *ArsipService) Get(ctx context.Context, id int64) (*models.BerkasRelasi, error) {
	item, err := s.berkas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mengambil data")
	}
	return item, nil
}

// Store creates one file header plus its items atomically. Any invalid item
// fails the whole submission and nothing is persisted.
func (s *ArsipService) Store(ctx context.Context, req dto.StoreArsipRequest) (*dto.StoreArsipResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	items := make([]models.Berkas, 0, len(req.Items))
	for i, item := range req.Items {
		level, ok := models.NormalizeKeamanan(item.KlasifikasiKeamanan)
		if !ok {
			return nil, appErrors.WithFields(appErrors.ErrValidation, map[string]string{
				fmt.Sprintf("items.%d.klasifikasi_keamanan", i): "klasifikasi keamanan harus biasa, rahasia, atau super-rahasia",
			})
		}

		tanggal, err := time.Parse(tanggalLayout, item.Tanggal)
		if err != nil {
			return nil, appErrors.WithFields(appErrors.ErrValidation, map[string]string{
				fmt.Sprintf("items.%d.tanggal", i): "tanggal harus berformat YYYY-MM-DD",
			})
		}

		exists, err := s.klasifikasi.Exists(ctx, item.Kode)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal menyimpan data")
		}
		if !exists {
			return nil, appErrors.WithFields(appErrors.ErrValidation, map[string]string{
				fmt.Sprintf("items.%d.kode", i): "kode klasifikasi tidak terdaftar",
			})
		}

		kode := item.Kode
		items = append(items, models.Berkas{
			NoArsip:         item.NoItem,
			KodeKlasifikasi: &kode,
			UraianInformasi: item.Uraian,
			Tanggal:         tanggal,
			Jumlah:          item.JumlahAngka,
			Satuan:          item.SatuanJumlah,
			Keamanan:        string(level),
			Keterangan:      item.Keterangan,
		})
	}

	hal := models.Hal{Nomor: req.NoBerkas, JudulBerkas: req.JudulBerkas}
	if err := s.submissions.StoreSubmission(ctx, &hal, items); err != nil {
		if errors.Is(err, repository.ErrKlasifikasiUnknown) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "Kode klasifikasi tidak ditemukan")
		}
		s.logger.Error("store submission failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal menyimpan data")
	}

	if s.cache != nil {
		s.cache.InvalidatePattern(ctx, dashboardCachePattern)
	}

	return &dto.StoreArsipResponse{Hal: hal, Items: items, TotalItems: len(items)}, nil
}

// Update fully replaces the mutable fields of one berkas. An omitted
// keterangan stores the literal "Tekstual".
func (s *ArsipService) Update(ctx context.Context, id int64, req dto.UpdateBerkasRequest) (*models.Berkas, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	level, ok := models.NormalizeKeamanan(req.Keamanan)
	if !ok {
		return nil, appErrors.WithFields(appErrors.ErrValidation, map[string]string{
			"keamanan": "keamanan harus biasa, rahasia, atau super-rahasia",
		})
	}

	tanggal, err := time.Parse(tanggalLayout, req.Tanggal)
	if err != nil {
		return nil, appErrors.WithFields(appErrors.ErrValidation, map[string]string{
			"tanggal": "tanggal harus berformat YYYY-MM-DD",
		})
	}

	exists, err := s.klasifikasi.Exists(ctx, req.KodeKlasifikasi)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mengupdate data")
	}
	if !exists {
		return nil, appErrors.WithFields(appErrors.ErrValidation, map[string]string{
			"kode_klasifikasi": "kode klasifikasi tidak terdaftar",
		})
	}

	keterangan := req.Keterangan
	if keterangan == nil {
		def := keteranganDefault
		keterangan = &def
	}

	kode := req.KodeKlasifikasi
	berkas := models.Berkas{
		ID:              id,
		NoArsip:         req.NoArsip,
		KodeKlasifikasi: &kode,
		UraianInformasi: req.UraianInformasi,
		Tanggal:         tanggal,
		Jumlah:          req.Jumlah,
		Satuan:          req.Satuan,
		Keamanan:        string(level),
		Keterangan:      keterangan,
	}

	fresh, err := s.berkas.Update(ctx, &berkas)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mengupdate data")
	}

	if s.cache != nil {
		s.cache.InvalidatePattern(ctx, dashboardCachePattern)
	}

	return fresh, nil
}

// Delete removes one berkas and returns its prior snapshot.
func (s *ArsipService) Delete(ctx context.Context, id int64) (*models.Berkas, error) {
	snapshot, err := s.berkas.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.ErrNotFound
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal menghapus data")
	}

	if s.cache != nil {
		s.cache.InvalidatePattern(ctx, dashboardCachePattern)
	}

	return snapshot, nil
}

// NextNumber suggests the next filing number for a classification code. It
// is a read-only suggestion with no reservation: two concurrent callers can
// receive the same number and both commit it.
func (s *ArsipService) NextNumber(ctx context.Context, kode string) (*dto.NextNumberData, error) {
	if strings.TrimSpace(kode) == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidParam, "Kode klasifikasi tidak ditemukan")
	}

	exists, err := s.klasifikasi.Exists(ctx, kode)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mendapatkan nomor berikutnya")
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Kode klasifikasi tidak valid")
	}

	latest, err := s.berkas.FindLatestByKode(ctx, kode)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mendapatkan nomor berikutnya")
	}

	var lastHal *models.Hal
	if latest != nil && latest.IDHal != nil {
		lastHal, err = s.hal.FindByID(ctx, *latest.IDHal)
		if err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mendapatkan nomor berikutnya")
			}
			lastHal = nil
		}
	}

	next := 1
	if lastHal != nil {
		if nomor, convErr := strconv.Atoi(strings.TrimSpace(lastHal.Nomor)); convErr == nil {
			next = nomor + 1
		}
	}

	data := &dto.NextNumberData{
		NextNumber:      strconv.Itoa(next),
		KodeKlasifikasi: kode,
	}
	if latest != nil {
		data.LastBerkas = &dto.LastBerkasInfo{ID: latest.ID, IDHal: latest.IDHal, NoArsip: latest.NoArsip}
	}
	if lastHal != nil {
		data.LastHal = &dto.LastHalInfo{ID: lastHal.ID, Nomor: lastHal.Nomor, JudulBerkas: lastHal.JudulBerkas}
	}
	return data, nil
}

// validationError converts validator output into a typed validation error
// with per-field detail.
func validationError(err error) *appErrors.Error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return appErrors.Clone(appErrors.ErrValidation, "")
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[strings.ToLower(fe.StructNamespace())] = fe.Tag()
	}
	return appErrors.WithFields(appErrors.ErrValidation, fields)
}
