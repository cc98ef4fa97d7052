package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dispusip/arsip-api/internal/dto"
	"github.com/dispusip/arsip-api/pkg/response"
)

type dashboardService interface {
	Stats(ctx context.Context) (*dto.StatsData, error)
	Klasifikasi(ctx context.Context) ([]dto.KlasifikasiCount, error)
	Summary(ctx context.Context) (*dto.SummaryData, error)
	StatsRange(ctx context.Context, startDate, endDate string) (*dto.RangeStatsData, error)
	TopKlasifikasi(ctx context.Context, limit int) ([]dto.KlasifikasiCount, error)
	KeamananPerKlasifikasi(ctx context.Context) ([]dto.KeamananPerKlasifikasi, error)
}

// DashboardHandler serves the read-only aggregation endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats godoc
// @Summary Total entries plus security-level breakdown
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	data, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Data statistik berhasil dimuat", data)
}

// Klasifikasi godoc
// @Summary Entry counts per classification code
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/klasifikasi [get]
func (h *DashboardHandler) Klasifikasi(c *gin.Context) {
	data, err := h.service.Klasifikasi(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Data klasifikasi berhasil dimuat", data)
}

// Summary godoc
// @Summary Complete dashboard payload
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/summary [get]
func (h *DashboardHandler) Summary(c *gin.Context) {
	data, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Data dashboard berhasil dimuat", data)
}

// StatsRange godoc
// @Summary Entry counts inside an inclusive creation-date range
// @Tags Dashboard
// @Produce json
// @Param start_date query string true "Range start (YYYY-MM-DD)"
// @Param end_date query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats/range [get]
func (h *DashboardHandler) StatsRange(c *gin.Context) {
	data, err := h.service.StatsRange(c.Request.Context(), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Data statistik range berhasil dimuat", data)
}

// TopKlasifikasi godoc
// @Summary Classification codes by descending entry count
// @Tags Dashboard
// @Produce json
// @Param limit query int false "Result limit (default 10)"
// @Success 200 {object} response.Envelope
// @Router /dashboard/top-klasifikasi [get]
func (h *DashboardHandler) TopKlasifikasi(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	data, err := h.service.TopKlasifikasi(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Data top klasifikasi berhasil dimuat", data)
}

// KeamananPerKlasifikasi godoc
// @Summary Security-level breakdown per classification code
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/keamanan-per-klasifikasi [get]
func (h *DashboardHandler) KeamananPerKlasifikasi(c *gin.Context) {
	data, err := h.service.KeamananPerKlasifikasi(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, "Data keamanan per klasifikasi berhasil dimuat", data)
}
