package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dispusip/arsip-api/internal/service"
	"github.com/dispusip/arsip-api/pkg/response"
)

type exportService interface {
	DaftarArsip(ctx context.Context, format string) (*service.ExportResult, error)
}

// ExportHandler streams the printable daftar arsip.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// DaftarArsip godoc
// @Summary Export the archive inventory as CSV or PDF
// @Tags Export
// @Produce octet-stream
// @Param format query string false "csv or pdf (default csv)"
// @Success 200 {file} binary
// @Router /export/arsip [get]
func (h *ExportHandler) DaftarArsip(c *gin.Context) {
	result, err := h.service.DaftarArsip(c.Request.Context(), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
