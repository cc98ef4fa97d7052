package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dispusip/arsip-api/internal/dto"
	"github.com/dispusip/arsip-api/internal/models"
	appErrors "github.com/dispusip/arsip-api/pkg/errors"
	"github.com/dispusip/arsip-api/pkg/response"
)

type arsipService interface {
	List(ctx context.Context) ([]models.BerkasRelasi, error)
	Get(ctx context.Context, id int64) (*models.BerkasRelasi, error)
	Store(ctx context.Context, req dto.StoreArsipRequest) (*dto.StoreArsipResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateBerkasRequest) (*models.Berkas, error)
	Delete(ctx context.Context, id int64) (*models.Berkas, error)
	NextNumber(ctx context.Context, kode string) (*dto.NextNumberData, error)
}

// ArsipHandler manages the berkas lifecycle endpoints.
type ArsipHandler struct {
	service arsipService
}

// NewArsipHandler constructs the handler.
func NewArsipHandler(service arsipService) *ArsipHandler {
	return &ArsipHandler{service: service}
}

// List godoc
// @Summary List archive entries with relations
// @Tags Arsip
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /berkas [get]
func (h *ArsipHandler) List(c *gin.Context) {
	data, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Data berkas berhasil diambil", data)
}

// NextNumber godoc
// @Summary Suggest the next filing number for a classification code
// @Tags Arsip
// @Produce json
// @Param kode_klasifikasi query string true "Classification code"
// @Success 200 {object} response.Envelope
// @Router /berkas/next-number [get]
func (h *ArsipHandler) NextNumber(c *gin.Context) {
	data, err := h.service.NextNumber(c.Request.Context(), c.Query("kode_klasifikasi"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Nomor berikutnya berhasil didapatkan", data)
}

// Store godoc
// @Summary Store one file header plus its archive entries atomically
// @Tags Arsip
// @Accept json
// @Produce json
// @Param payload body dto.StoreArsipRequest true "Submission"
// @Success 201 {object} response.Envelope
// @Router /arsip/store [post]
func (h *ArsipHandler) Store(c *gin.Context) {
	var req dto.StoreArsipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	data, err := h.service.Store(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Data berkas berhasil disimpan", data)
}

// Show godoc
// @Summary Get one archive entry with relations
// @Tags Arsip
// @Produce json
// @Param id path int true "Berkas ID"
// @Success 200 {object} response.Envelope
// @Router /arsip/{id} [get]
func (h *ArsipHandler) Show(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	data, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Data berhasil diambil", data)
}

// Update godoc
// @Summary Replace one archive entry
// @Tags Arsip
// @Accept json
// @Produce json
// @Param id path int true "Berkas ID"
// @Param payload body dto.UpdateBerkasRequest true "Replacement"
// @Success 200 {object} response.Envelope
// @Router /arsip/{id} [put]
func (h *ArsipHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req dto.UpdateBerkasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err))
		return
	}
	data, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Data berhasil diupdate", data)
}

// Delete godoc
// @Summary Delete one archive entry, returning its prior snapshot
// @Tags Arsip
// @Produce json
// @Param id path int true "Berkas ID"
// @Success 200 {object} response.Envelope
// @Router /arsip/{id} [delete]
func (h *ArsipHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	data, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Data berhasil dihapus", data)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.ErrNotFound)
		return 0, false
	}
	return id, true
}
