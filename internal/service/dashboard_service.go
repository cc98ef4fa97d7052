package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dispusip/arsip-api/internal/dto"
	"github.com/dispusip/arsip-api/internal/models"
	appErrors "github.com/dispusip/arsip-api/pkg/errors"
)

// recentArsipLimit bounds the recent-entries block of the summary payload.
const recentArsipLimit = 5

type berkasAggregator interface {
	CountAll(ctx context.Context) (int, error)
	CountByKeamanan(ctx context.Context) ([]models.KeamananCountRow, error)
	CountByKode(ctx context.Context) ([]models.KodeCountRow, error)
	CountByKodeKeamanan(ctx context.Context) ([]models.KodeKeamananCountRow, error)
	CountInRange(ctx context.Context, start, end time.Time) (int, error)
	CountPerDay(ctx context.Context, start, end time.Time) ([]models.DailyCountRow, error)
	TopKode(ctx context.Context, limit int) ([]models.KodeCountRow, error)
	Recent(ctx context.Context, limit int) ([]models.BerkasRelasi, error)
}

type detailResolver interface {
	DetailMap(ctx context.Context) (map[string]string, error)
}

// DashboardService composes the read-only aggregation payloads. Payloads are
// cached cache-aside; write paths invalidate via the dash:* pattern.
type DashboardService struct {
	berkas  berkasAggregator
	details detailResolver
	cache   *CacheService
	logger  *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(berkas berkasAggregator, details detailResolver, cache *CacheService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{berkas: berkas, details: details, cache: cache, logger: logger}
}

// Stats returns the total entry count plus the security-level breakdown.
func (s *DashboardService) Stats(ctx context.Context) (*dto.StatsData, error) {
	const cacheKey = "dash:stats"
	var cached dto.StatsData
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	stats, err := s.composeStats(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cacheKey, stats)
	return stats, nil
}

func (s *DashboardService) composeStats(ctx context.Context) (*dto.StatsData, error) {
	total, err := s.berkas.CountAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memuat data statistik")
	}

	rows, err := s.berkas.CountByKeamanan(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memuat data statistik")
	}

	counts := models.KeamananCounts{}
	for _, row := range rows {
		counts.Add(row.Keamanan, row.Jumlah)
	}

	return &dto.StatsData{Total: total, Keamanan: counts}, nil
}

// Klasifikasi returns per-classification entry counts with resolved
// descriptions.
func (s *DashboardService) Klasifikasi(ctx context.Context) ([]dto.KlasifikasiCount, error) {
	const cacheKey = "dash:klasifikasi"
	var cached []dto.KlasifikasiCount
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	result, err := s.composeKlasifikasi(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, cacheKey, result)
	return result, nil
}

func (s *DashboardService) composeKlasifikasi(ctx context.Context) ([]dto.KlasifikasiCount, error) {
	rows, err := s.berkas.CountByKode(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memuat data klasifikasi")
	}

	details, err := s.details.DetailMap(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memuat data klasifikasi")
	}

	return mapKodeCounts(rows, details), nil
}

// Summary returns the all-in-one dashboard payload: statistics,
// per-classification counts, and the latest entries.
func (s *DashboardService) Summary(ctx context.Context) (*dto.SummaryData, error) {
	const cacheKey = "dash:summary"
	var cached dto.SummaryData
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	stats, err := s.composeStats(ctx)
	if err != nil {
		return nil, err
	}

	klasifikasi, err := s.composeKlasifikasi(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.berkas.Recent(ctx, recentArsipLimit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memuat data dashboard")
	}

	recentArsip := make([]dto.RecentArsip, 0, len(recent))
	for _, item := range recent {
		entry := dto.RecentArsip{
			ID:              item.ID,
			NoArsip:         item.NoArsip,
			UraianInformasi: item.UraianInformasi,
			Tanggal:         item.Tanggal.Format(tanggalLayout),
			Keamanan:        item.Keamanan,
			Kode:            item.KodeKlasifikasi,
		}
		if item.Hal != nil {
			judul := item.Hal.JudulBerkas
			entry.JudulBerkas = &judul
		}
		recentArsip = append(recentArsip, entry)
	}

	summary := &dto.SummaryData{Statistics: *stats, Klasifikasi: klasifikasi, RecentArsip: recentArsip}
	s.cache.Set(ctx, cacheKey, summary)
	return summary, nil
}

// StatsRange reports total and per-day counts for an inclusive creation-date
// range. Range payloads are not cached; the key space is unbounded.
func (s *DashboardService) StatsRange(ctx context.Context, startDate, endDate string) (*dto.RangeStatsData, error) {
	fields := map[string]string{}
	start, err := time.Parse(tanggalLayout, startDate)
	if err != nil {
		fields["start_date"] = "start_date harus berformat YYYY-MM-DD"
	}
	end, err := time.Parse(tanggalLayout, endDate)
	if err != nil {
		fields["end_date"] = "end_date harus berformat YYYY-MM-DD"
	}
	if len(fields) > 0 {
		return nil, appErrors.WithFields(appErrors.ErrValidation, fields)
	}
	if end.Before(start) {
		return nil, appErrors.WithFields(appErrors.ErrValidation, map[string]string{
			"end_date": "end_date harus sesudah atau sama dengan start_date",
		})
	}

	total, err := s.berkas.CountInRange(ctx, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memuat data statistik range")
	}

	days, err := s.berkas.CountPerDay(ctx, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memuat data statistik range")
	}

	perDay := make([]dto.DailyCount, 0, len(days))
	for _, day := range days {
		perDay = append(perDay, dto.DailyCount{Date: day.Date.Format(tanggalLayout), Total: day.Total})
	}

	return &dto.RangeStatsData{
		Total:     total,
		PerDay:    perDay,
		StartDate: startDate,
		EndDate:   endDate,
	}, nil
}

// TopKlasifikasi returns classification codes ordered by descending entry
// count, kode ascending on ties.
func (s *DashboardService) TopKlasifikasi(ctx context.Context, limit int) ([]dto.KlasifikasiCount, error) {
	if limit <= 0 {
		limit = 10
	}
	cacheKey := fmt.Sprintf("dash:top:%d", limit)
	var cached []dto.KlasifikasiCount
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	rows, err := s.berkas.TopKode(ctx, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memuat data top klasifikasi")
	}

	details, err := s.details.DetailMap(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memuat data top klasifikasi")
	}

	result := mapKodeCounts(rows, details)
	s.cache.Set(ctx, cacheKey, result)
	return result, nil
}

// KeamananPerKlasifikasi breaks every classification's entries down into the
// three security buckets plus total.
func (s *DashboardService) KeamananPerKlasifikasi(ctx context.Context) ([]dto.KeamananPerKlasifikasi, error) {
	const cacheKey = "dash:keamanan-klasifikasi"
	var cached []dto.KeamananPerKlasifikasi
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	rows, err := s.berkas.CountByKodeKeamanan(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memuat data keamanan per klasifikasi")
	}

	details, err := s.details.DetailMap(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal memuat data keamanan per klasifikasi")
	}

	// Rows arrive ordered by kode; group them sequentially so the output
	// order stays deterministic.
	result := make([]dto.KeamananPerKlasifikasi, 0)
	index := make(map[string]int)
	for _, row := range rows {
		pos, seen := index[row.Kode]
		if !seen {
			detail, ok := details[row.Kode]
			if !ok {
				detail = models.DetailUnknown
			}
			result = append(result, dto.KeamananPerKlasifikasi{Kode: row.Kode, Detail: detail})
			pos = len(result) - 1
			index[row.Kode] = pos
		}
		result[pos].Keamanan.Add(row.Keamanan, row.Jumlah)
		// Total counts every row for the kode, bucketed or not.
		result[pos].Total += row.Jumlah
	}

	s.cache.Set(ctx, cacheKey, result)
	return result, nil
}

func mapKodeCounts(rows []models.KodeCountRow, details map[string]string) []dto.KlasifikasiCount {
	result := make([]dto.KlasifikasiCount, 0, len(rows))
	for _, row := range rows {
		detail, ok := details[row.Kode]
		if !ok {
			detail = models.DetailUnknown
		}
		result = append(result, dto.KlasifikasiCount{Kode: row.Kode, Detail: detail, Jumlah: row.Jumlah})
	}
	return result
}
