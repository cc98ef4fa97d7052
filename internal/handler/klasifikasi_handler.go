package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dispusip/arsip-api/internal/models"
	appErrors "github.com/dispusip/arsip-api/pkg/errors"
	"github.com/dispusip/arsip-api/pkg/response"
)

type klasifikasiLister interface {
	List(ctx context.Context) ([]models.Klasifikasi, error)
}

// KlasifikasiHandler serves the classification code registry.
type KlasifikasiHandler struct {
	klasifikasi klasifikasiLister
}

// NewKlasifikasiHandler constructs the handler.
func NewKlasifikasiHandler(klasifikasi klasifikasiLister) *KlasifikasiHandler {
	return &KlasifikasiHandler{klasifikasi: klasifikasi}
}

// List godoc
// @Summary List classification codes
// @Tags Klasifikasi
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /klasifikasi [get]
func (h *KlasifikasiHandler) List(c *gin.Context) {
	data, err := h.klasifikasi.List(c.Request.Context())
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memuat data klasifikasi"))
		return
	}
	response.JSON(c, http.StatusOK, "Data klasifikasi berhasil diambil", data)
}
