package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispusip/arsip-api/internal/dto"
	"github.com/dispusip/arsip-api/internal/models"
	appErrors "github.com/dispusip/arsip-api/pkg/errors"
	"github.com/dispusip/arsip-api/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type arsipServiceStub struct {
	list       []models.BerkasRelasi
	getResult  *models.BerkasRelasi
	getErr     error
	storeResp  *dto.StoreArsipResponse
	storeErr   error
	updateErr  error
	deleteErr  error
	nextData   *dto.NextNumberData
	nextErr    error
	storedReq  *dto.StoreArsipRequest
	nextKode   string
	deletedID  int64
	updatedID  int64
	updatedReq *dto.UpdateBerkasRequest
}

func (s *arsipServiceStub) List(ctx context.Context) ([]models.BerkasRelasi, error) {
	return s.list, nil
}

func (s *arsipServiceStub) Get(ctx context.Context, id int64) (*models.BerkasRelasi, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.getResult, nil
}

func (s *arsipServiceStub) Store(ctx context.Context, req dto.StoreArsipRequest) (*dto.StoreArsipResponse, error) {
	s.storedReq = &req
	if s.storeErr != nil {
		return nil, s.storeErr
	}
	return s.storeResp, nil
}

func (s *arsipServiceStub) Update(ctx context.Context, id int64, req dto.UpdateBerkasRequest) (*models.Berkas, error) {
	s.updatedID = id
	s.updatedReq = &req
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &models.Berkas{ID: id}, nil
}

func (s *arsipServiceStub) Delete(ctx context.Context, id int64) (*models.Berkas, error) {
	s.deletedID = id
	if s.deleteErr != nil {
		return nil, s.deleteErr
	}
	return &models.Berkas{ID: id}, nil
}

func (s *arsipServiceStub) NextNumber(ctx context.Context, kode string) (*dto.NextNumberData, error) {
	s.nextKode = kode
	if s.nextErr != nil {
		return nil, s.nextErr
	}
	return s.nextData, nil
}

func newArsipRouter(stub *arsipServiceStub) *gin.Engine {
	h := NewArsipHandler(stub)
	r := gin.New()
	r.GET("/berkas", h.List)
	r.GET("/berkas/next-number", h.NextNumber)
	r.POST("/arsip/store", h.Store)
	r.GET("/arsip/:id", h.Show)
	r.PUT("/arsip/:id", h.Update)
	r.DELETE("/arsip/:id", h.Delete)
	return r
}

func performRequest(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	return envelope
}

func TestArsipHandlerStore(t *testing.T) {
	stub := &arsipServiceStub{storeResp: &dto.StoreArsipResponse{TotalItems: 1}}
	router := newArsipRouter(stub)

	payload := `{"no_berkas":"3","judul_berkas":"Berkas kepegawaian","items":[{"no_item":"B-001","kode":"045","uraian":"Surat masuk","tanggal":"2024-03-10","jumlah_angka":2,"satuan_jumlah":"lembar","klasifikasi_keamanan":"biasa"}]}`
	req, _ := http.NewRequest(http.MethodPost, "/arsip/store", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusCreated, resp.Code)

	envelope := decodeEnvelope(t, resp)
	assert.True(t, envelope.Status)
	assert.Equal(t, "Data berkas berhasil disimpan", envelope.Message)
	require.NotNil(t, stub.storedReq)
	assert.Equal(t, "3", stub.storedReq.NoBerkas)
}

func TestArsipHandlerStoreBindingFailure(t *testing.T) {
	router := newArsipRouter(&arsipServiceStub{})

	req, _ := http.NewRequest(http.MethodPost, "/arsip/store", bytes.NewBufferString(`{"no_berkas":"3"}`))
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	envelope := decodeEnvelope(t, resp)
	assert.False(t, envelope.Status)
	assert.Equal(t, "Validasi gagal", envelope.Message)
	assert.NotNil(t, envelope.Errors)
}

func TestArsipHandlerShowNonNumericID(t *testing.T) {
	router := newArsipRouter(&arsipServiceStub{})

	req, _ := http.NewRequest(http.MethodGet, "/arsip/abc", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusNotFound, resp.Code)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, "Data tidak ditemukan", envelope.Message)
}

func TestArsipHandlerShowNotFound(t *testing.T) {
	router := newArsipRouter(&arsipServiceStub{getErr: appErrors.ErrNotFound})

	req, _ := http.NewRequest(http.MethodGet, "/arsip/99", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusNotFound, resp.Code)
}

func TestArsipHandlerUpdate(t *testing.T) {
	stub := &arsipServiceStub{}
	router := newArsipRouter(stub)

	payload := `{"no_arsip":"B-005","kode_klasifikasi":"045","uraian_informasi":"Diperbarui","tanggal":"2024-03-11","jumlah":3,"satuan":"lembar","keamanan":"rahasia"}`
	req, _ := http.NewRequest(http.MethodPut, "/arsip/5", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")

	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, "Data berhasil diupdate", envelope.Message)
	assert.Equal(t, int64(5), stub.updatedID)
	require.NotNil(t, stub.updatedReq)
	assert.Equal(t, "rahasia", stub.updatedReq.Keamanan)
}

func TestArsipHandlerDelete(t *testing.T) {
	stub := &arsipServiceStub{}
	router := newArsipRouter(stub)

	req, _ := http.NewRequest(http.MethodDelete, "/arsip/7", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, "Data berhasil dihapus", envelope.Message)
	assert.Equal(t, int64(7), stub.deletedID)
}

func TestArsipHandlerNextNumber(t *testing.T) {
	stub := &arsipServiceStub{nextData: &dto.NextNumberData{NextNumber: "8", KodeKlasifikasi: "045"}}
	router := newArsipRouter(stub)

	req, _ := http.NewRequest(http.MethodGet, "/berkas/next-number?kode_klasifikasi=045", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Equal(t, "045", stub.nextKode)
	assert.Contains(t, resp.Body.String(), `"next_number":"8"`)
}

func TestArsipHandlerNextNumberMissingKode(t *testing.T) {
	router := newArsipRouter(&arsipServiceStub{nextErr: appErrors.Clone(appErrors.ErrInvalidParam, "Kode klasifikasi tidak ditemukan")})

	req, _ := http.NewRequest(http.MethodGet, "/berkas/next-number", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	envelope := decodeEnvelope(t, resp)
	assert.Equal(t, "Kode klasifikasi tidak ditemukan", envelope.Message)
}
