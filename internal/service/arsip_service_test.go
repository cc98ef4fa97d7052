package service

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispusip/arsip-api/internal/dto"
	"github.com/dispusip/arsip-api/internal/models"
	"github.com/dispusip/arsip-api/internal/repository"
	appErrors "github.com/dispusip/arsip-api/pkg/errors"
)

type klasifikasiReaderStub struct {
	codes map[string]bool
	err   error
}

func (s *klasifikasiReaderStub) Exists(ctx context.Context, kode string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	return s.codes[kode], nil
}

type halReaderStub struct {
	hals map[int64]*models.Hal
}

func (s *halReaderStub) FindByID(ctx context.Context, id int64) (*models.Hal, error) {
	if hal, ok := s.hals[id]; ok {
		return hal, nil
	}
	return nil, sql.ErrNoRows
}

type berkasStoreStub struct {
	list      []models.BerkasRelasi
	latest    *models.Berkas
	updated   *models.Berkas
	updateErr error
	snapshot  *models.Berkas
	deleteErr error
}

func (s *berkasStoreStub) ListWithRelations(ctx context.Context) ([]models.BerkasRelasi, error) {
	return s.list, nil
}

func (s *berkasStoreStub) FindByID(ctx context.Context, id int64) (*models.BerkasRelasi, error) {
	for i := range s.list {
		if s.list[i].ID == id {
			return &s.list[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *berkasStoreStub) FindLatestByKode(ctx context.Context, kode string) (*models.Berkas, error) {
	return s.latest, nil
}

func (s *berkasStoreStub) Update(ctx context.Context, berkas *models.Berkas) (*models.Berkas, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	s.updated = berkas
	return berkas, nil
}

func (s *berkasStoreStub) Delete(ctx context.Context, id int64) (*models.Berkas, error) {
	if s.deleteErr != nil {
		return nil, s.deleteErr
	}
	return s.snapshot, nil
}

type submissionStoreStub struct {
	err   error
	hal   *models.Hal
	items []models.Berkas
}

func (s *submissionStoreStub) StoreSubmission(ctx context.Context, hal *models.Hal, items []models.Berkas) error {
	if s.err != nil {
		return s.err
	}
	hal.ID = 21
	for i := range items {
		items[i].ID = int64(31 + i)
		items[i].IDHal = &hal.ID
	}
	s.hal = hal
	s.items = items
	return nil
}

func asAppError(t *testing.T, err error) *appErrors.Error {
	t.Helper()
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	return appErr
}

func validStoreRequest() dto.StoreArsipRequest {
	return dto.StoreArsipRequest{
		NoBerkas:    "3",
		JudulBerkas: "Berkas kepegawaian",
		Items: []dto.ArsipItemRequest{{
			NoItem:              "B-001",
			Kode:                "045",
			Uraian:              "Surat masuk kepegawaian",
			Tanggal:             "2024-03-10",
			JumlahAngka:         2,
			SatuanJumlah:        "lembar",
			KlasifikasiKeamanan: "biasa",
		}},
	}
}

func TestArsipServiceStore(t *testing.T) {
	klasifikasi := &klasifikasiReaderStub{codes: map[string]bool{"045": true}}
	submissions := &submissionStoreStub{}
	svc := NewArsipService(&berkasStoreStub{}, submissions, klasifikasi, &halReaderStub{}, nil, nil, nil)

	req := validStoreRequest()
	req.Items[0].KlasifikasiKeamanan = "SUPER RAHASIA"

	resp, err := svc.Store(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.TotalItems)
	assert.Equal(t, int64(21), resp.Hal.ID)

	require.Len(t, submissions.items, 1)
	stored := submissions.items[0]
	assert.Equal(t, "Super-rahasia", stored.Keamanan)
	require.NotNil(t, stored.KodeKlasifikasi)
	assert.Equal(t, "045", *stored.KodeKlasifikasi)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), stored.Tanggal)
	assert.Nil(t, stored.Keterangan)
}

func TestArsipServiceStoreRejectsMissingFields(t *testing.T) {
	svc := NewArsipService(&berkasStoreStub{}, &submissionStoreStub{}, &klasifikasiReaderStub{}, &halReaderStub{}, nil, nil, nil)

	req := validStoreRequest()
	req.JudulBerkas = ""

	_, err := svc.Store(context.Background(), req)
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
	assert.NotEmpty(t, appErr.Fields)
}

func TestArsipServiceStoreRejectsUnknownKeamanan(t *testing.T) {
	svc := NewArsipService(&berkasStoreStub{}, &submissionStoreStub{}, &klasifikasiReaderStub{codes: map[string]bool{"045": true}}, &halReaderStub{}, nil, nil, nil)

	req := validStoreRequest()
	req.Items[0].KlasifikasiKeamanan = "publik"

	_, err := svc.Store(context.Background(), req)
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
	assert.Contains(t, appErr.Fields, "items.0.klasifikasi_keamanan")
}

func TestArsipServiceStoreRejectsUnregisteredKode(t *testing.T) {
	svc := NewArsipService(&berkasStoreStub{}, &submissionStoreStub{}, &klasifikasiReaderStub{codes: map[string]bool{}}, &halReaderStub{}, nil, nil, nil)

	_, err := svc.Store(context.Background(), validStoreRequest())
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
	assert.Contains(t, appErr.Fields, "items.0.kode")
}

func TestArsipServiceStoreTranslatesTxKodeFailure(t *testing.T) {
	submissions := &submissionStoreStub{err: fmt.Errorf("kode klasifikasi 045: %w", repository.ErrKlasifikasiUnknown)}
	svc := NewArsipService(&berkasStoreStub{}, submissions, &klasifikasiReaderStub{codes: map[string]bool{"045": true}}, &halReaderStub{}, nil, nil, nil)

	_, err := svc.Store(context.Background(), validStoreRequest())
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
	assert.Equal(t, "Kode klasifikasi tidak ditemukan", appErr.Message)
}

func validUpdateRequest() dto.UpdateBerkasRequest {
	return dto.UpdateBerkasRequest{
		NoArsip:         "B-005",
		KodeKlasifikasi: "045",
		UraianInformasi: "Diperbarui",
		Tanggal:         "2024-03-11",
		Jumlah:          3,
		Satuan:          "lembar",
		Keamanan:        "rahasia",
	}
}

func TestArsipServiceUpdateDefaultsKeterangan(t *testing.T) {
	store := &berkasStoreStub{}
	svc := NewArsipService(store, &submissionStoreStub{}, &klasifikasiReaderStub{codes: map[string]bool{"045": true}}, &halReaderStub{}, nil, nil, nil)

	fresh, err := svc.Update(context.Background(), 5, validUpdateRequest())
	require.NoError(t, err)
	assert.Equal(t, "Rahasia", fresh.Keamanan)

	require.NotNil(t, store.updated)
	require.NotNil(t, store.updated.Keterangan)
	assert.Equal(t, "Tekstual", *store.updated.Keterangan)
}

func TestArsipServiceUpdateKeepsProvidedKeterangan(t *testing.T) {
	store := &berkasStoreStub{}
	svc := NewArsipService(store, &submissionStoreStub{}, &klasifikasiReaderStub{codes: map[string]bool{"045": true}}, &halReaderStub{}, nil, nil, nil)

	keterangan := "Media digital"
	req := validUpdateRequest()
	req.Keterangan = &keterangan

	_, err := svc.Update(context.Background(), 5, req)
	require.NoError(t, err)
	require.NotNil(t, store.updated.Keterangan)
	assert.Equal(t, "Media digital", *store.updated.Keterangan)
}

func TestArsipServiceUpdateNotFound(t *testing.T) {
	store := &berkasStoreStub{updateErr: sql.ErrNoRows}
	svc := NewArsipService(store, &submissionStoreStub{}, &klasifikasiReaderStub{codes: map[string]bool{"045": true}}, &halReaderStub{}, nil, nil, nil)

	_, err := svc.Update(context.Background(), 99, validUpdateRequest())
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestArsipServiceDeleteNotFound(t *testing.T) {
	store := &berkasStoreStub{deleteErr: sql.ErrNoRows}
	svc := NewArsipService(store, &submissionStoreStub{}, &klasifikasiReaderStub{}, &halReaderStub{}, nil, nil, nil)

	_, err := svc.Delete(context.Background(), 99)
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestArsipServiceGetNotFound(t *testing.T) {
	svc := NewArsipService(&berkasStoreStub{}, &submissionStoreStub{}, &klasifikasiReaderStub{}, &halReaderStub{}, nil, nil, nil)

	_, err := svc.Get(context.Background(), 404)
	appErr := asAppError(t, err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestArsipServiceNextNumber(t *testing.T) {
	idHal := int64(4)

	t.Run("empty kode", func(t *testing.T) {
		svc := NewArsipService(&berkasStoreStub{}, &submissionStoreStub{}, &klasifikasiReaderStub{}, &halReaderStub{}, nil, nil, nil)
		_, err := svc.NextNumber(context.Background(), "  ")
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusBadRequest, appErr.Status)
	})

	t.Run("unknown kode", func(t *testing.T) {
		svc := NewArsipService(&berkasStoreStub{}, &submissionStoreStub{}, &klasifikasiReaderStub{codes: map[string]bool{}}, &halReaderStub{}, nil, nil, nil)
		_, err := svc.NextNumber(context.Background(), "999")
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusNotFound, appErr.Status)
		assert.Equal(t, "Kode klasifikasi tidak valid", appErr.Message)
	})

	t.Run("no prior berkas starts at one", func(t *testing.T) {
		svc := NewArsipService(&berkasStoreStub{}, &submissionStoreStub{}, &klasifikasiReaderStub{codes: map[string]bool{"045": true}}, &halReaderStub{}, nil, nil, nil)
		data, err := svc.NextNumber(context.Background(), "045")
		require.NoError(t, err)
		assert.Equal(t, "1", data.NextNumber)
		assert.Nil(t, data.LastBerkas)
		assert.Nil(t, data.LastHal)
	})

	t.Run("increments last hal nomor", func(t *testing.T) {
		store := &berkasStoreStub{latest: &models.Berkas{ID: 11, IDHal: &idHal, NoArsip: "B-011"}}
		hals := &halReaderStub{hals: map[int64]*models.Hal{4: {ID: 4, Nomor: "7", JudulBerkas: "Berkas lama"}}}
		svc := NewArsipService(store, &submissionStoreStub{}, &klasifikasiReaderStub{codes: map[string]bool{"045": true}}, hals, nil, nil, nil)

		data, err := svc.NextNumber(context.Background(), "045")
		require.NoError(t, err)
		assert.Equal(t, "8", data.NextNumber)
		require.NotNil(t, data.LastBerkas)
		assert.Equal(t, int64(11), data.LastBerkas.ID)
		require.NotNil(t, data.LastHal)
		assert.Equal(t, "7", data.LastHal.Nomor)
	})

	t.Run("non numeric nomor falls back to one", func(t *testing.T) {
		store := &berkasStoreStub{latest: &models.Berkas{ID: 12, IDHal: &idHal}}
		hals := &halReaderStub{hals: map[int64]*models.Hal{4: {ID: 4, Nomor: "VII"}}}
		svc := NewArsipService(store, &submissionStoreStub{}, &klasifikasiReaderStub{codes: map[string]bool{"045": true}}, hals, nil, nil, nil)

		data, err := svc.NextNumber(context.Background(), "045")
		require.NoError(t, err)
		assert.Equal(t, "1", data.NextNumber)
	})

	t.Run("dangling hal reference", func(t *testing.T) {
		store := &berkasStoreStub{latest: &models.Berkas{ID: 13, IDHal: &idHal}}
		svc := NewArsipService(store, &submissionStoreStub{}, &klasifikasiReaderStub{codes: map[string]bool{"045": true}}, &halReaderStub{}, nil, nil, nil)

		data, err := svc.NextNumber(context.Background(), "045")
		require.NoError(t, err)
		assert.Equal(t, "1", data.NextNumber)
		require.NotNil(t, data.LastBerkas)
		assert.Nil(t, data.LastHal)
	})
}
