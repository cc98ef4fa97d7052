package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispusip/arsip-api/internal/models"
	appErrors "github.com/dispusip/arsip-api/pkg/errors"
)

type aggregatorStub struct {
	total        int
	keamananRows []models.KeamananCountRow
	kodeRows     []models.KodeCountRow
	kodeKeamanan []models.KodeKeamananCountRow
	rangeTotal   int
	dailyRows    []models.DailyCountRow
	topRows      []models.KodeCountRow
	recent       []models.BerkasRelasi

	countAllCalls int
	topLimit      int
	recentLimit   int
}

func (s *aggregatorStub) CountAll(ctx context.Context) (int, error) {
	s.countAllCalls++
	return s.total, nil
}

func (s *aggregatorStub) CountByKeamanan(ctx context.Context) ([]models.KeamananCountRow, error) {
	return s.keamananRows, nil
}

func (s *aggregatorStub) CountByKode(ctx context.Context) ([]models.KodeCountRow, error) {
	return s.kodeRows, nil
}

func (s *aggregatorStub) CountByKodeKeamanan(ctx context.Context) ([]models.KodeKeamananCountRow, error) {
	return s.kodeKeamanan, nil
}

func (s *aggregatorStub) CountInRange(ctx context.Context, start, end time.Time) (int, error) {
	return s.rangeTotal, nil
}

func (s *aggregatorStub) CountPerDay(ctx context.Context, start, end time.Time) ([]models.DailyCountRow, error) {
	return s.dailyRows, nil
}

func (s *aggregatorStub) TopKode(ctx context.Context, limit int) ([]models.KodeCountRow, error) {
	s.topLimit = limit
	return s.topRows, nil
}

func (s *aggregatorStub) Recent(ctx context.Context, limit int) ([]models.BerkasRelasi, error) {
	s.recentLimit = limit
	return s.recent, nil
}

type detailResolverStub struct {
	details map[string]string
}

func (s *detailResolverStub) DetailMap(ctx context.Context) (map[string]string, error) {
	return s.details, nil
}

// memoryCacheRepo mimics the redis-backed repository with an in-process map.
type memoryCacheRepo struct {
	entries map[string][]byte
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{entries: make(map[string][]byte)}
}

func (r *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := r.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (r *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.entries[key] = raw
	return nil
}

func (r *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	r.entries = make(map[string][]byte)
	return nil
}

func TestDashboardServiceStatsBucketsKeamanan(t *testing.T) {
	agg := &aggregatorStub{
		total: 20,
		keamananRows: []models.KeamananCountRow{
			{Keamanan: "Biasa", Jumlah: 8},
			{Keamanan: "BIASA", Jumlah: 2},
			{Keamanan: "rahasia", Jumlah: 4},
			{Keamanan: "Super rahasia", Jumlah: 3},
			{Keamanan: "super-rahasia", Jumlah: 1},
			{Keamanan: "tidak dikenal", Jumlah: 2},
		},
	}
	svc := NewDashboardService(agg, &detailResolverStub{}, nil, nil)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 20, stats.Total)
	assert.Equal(t, 10, stats.Keamanan.Biasa)
	assert.Equal(t, 4, stats.Keamanan.Rahasia)
	assert.Equal(t, 4, stats.Keamanan.SuperRahasia)
	// the unrecognized row stays out of every bucket
	assert.Equal(t, 18, stats.Keamanan.Total())
}

func TestDashboardServiceStatsServedFromCache(t *testing.T) {
	agg := &aggregatorStub{total: 5}
	cacheSvc := NewCacheService(newMemoryCacheRepo(), nil, time.Minute, nil, true)
	svc := NewDashboardService(agg, &detailResolverStub{}, cacheSvc, nil)

	first, err := svc.Stats(context.Background())
	require.NoError(t, err)
	second, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Total, second.Total)
	assert.Equal(t, 1, agg.countAllCalls)
}

func TestDashboardServiceKlasifikasiResolvesDetails(t *testing.T) {
	agg := &aggregatorStub{kodeRows: []models.KodeCountRow{
		{Kode: "000", Jumlah: 3},
		{Kode: "045", Jumlah: 7},
		{Kode: "999", Jumlah: 1},
	}}
	details := &detailResolverStub{details: map[string]string{"000": "Umum", "045": "Kearsipan"}}
	svc := NewDashboardService(agg, details, nil, nil)

	counts, err := svc.Klasifikasi(context.Background())
	require.NoError(t, err)
	require.Len(t, counts, 3)
	assert.Equal(t, "Umum", counts[0].Detail)
	assert.Equal(t, "Kearsipan", counts[1].Detail)
	assert.Equal(t, models.DetailUnknown, counts[2].Detail)
}

func TestDashboardServiceSummary(t *testing.T) {
	kode := "045"
	agg := &aggregatorStub{
		total:    4,
		kodeRows: []models.KodeCountRow{{Kode: "045", Jumlah: 4}},
		recent: []models.BerkasRelasi{
			{
				Berkas: models.Berkas{
					ID:              9,
					NoArsip:         "B-009",
					UraianInformasi: "Terbaru",
					Tanggal:         time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
					Keamanan:        "Biasa",
					KodeKlasifikasi: &kode,
				},
				Hal: &models.Hal{ID: 2, Nomor: "3", JudulBerkas: "Berkas terbaru"},
			},
		},
	}
	svc := NewDashboardService(agg, &detailResolverStub{details: map[string]string{"045": "Kearsipan"}}, nil, nil)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, agg.recentLimit)
	assert.Equal(t, 4, summary.Statistics.Total)
	require.Len(t, summary.RecentArsip, 1)
	assert.Equal(t, "2024-03-12", summary.RecentArsip[0].Tanggal)
	require.NotNil(t, summary.RecentArsip[0].JudulBerkas)
	assert.Equal(t, "Berkas terbaru", *summary.RecentArsip[0].JudulBerkas)
}

func TestDashboardServiceStatsRange(t *testing.T) {
	t.Run("rejects malformed dates", func(t *testing.T) {
		svc := NewDashboardService(&aggregatorStub{}, &detailResolverStub{}, nil, nil)
		_, err := svc.StatsRange(context.Background(), "10-03-2024", "2024-03-12")
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
		assert.Contains(t, appErr.Fields, "start_date")
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		svc := NewDashboardService(&aggregatorStub{}, &detailResolverStub{}, nil, nil)
		_, err := svc.StatsRange(context.Background(), "2024-03-12", "2024-03-10")
		appErr := asAppError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, appErr.Status)
		assert.Contains(t, appErr.Fields, "end_date")
	})

	t.Run("reports per day counts", func(t *testing.T) {
		agg := &aggregatorStub{
			rangeTotal: 3,
			dailyRows: []models.DailyCountRow{
				{Date: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), Total: 1},
				{Date: time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), Total: 2},
			},
		}
		svc := NewDashboardService(agg, &detailResolverStub{}, nil, nil)

		data, err := svc.StatsRange(context.Background(), "2024-03-10", "2024-03-12")
		require.NoError(t, err)
		assert.Equal(t, 3, data.Total)
		require.Len(t, data.PerDay, 2)
		assert.Equal(t, "2024-03-10", data.PerDay[0].Date)
		assert.Equal(t, 2, data.PerDay[1].Total)
		assert.Equal(t, "2024-03-10", data.StartDate)
		assert.Equal(t, "2024-03-12", data.EndDate)
	})
}

func TestDashboardServiceTopKlasifikasiDefaultsLimit(t *testing.T) {
	agg := &aggregatorStub{topRows: []models.KodeCountRow{{Kode: "045", Jumlah: 12}}}
	svc := NewDashboardService(agg, &detailResolverStub{details: map[string]string{"045": "Kearsipan"}}, nil, nil)

	top, err := svc.TopKlasifikasi(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, 10, agg.topLimit)
	require.Len(t, top, 1)
	assert.Equal(t, "Kearsipan", top[0].Detail)
}

func TestDashboardServiceKeamananPerKlasifikasi(t *testing.T) {
	agg := &aggregatorStub{kodeKeamanan: []models.KodeKeamananCountRow{
		{Kode: "045", Keamanan: "Biasa", Jumlah: 2},
		{Kode: "045", Keamanan: "rahasia", Jumlah: 1},
		{Kode: "045", Keamanan: "tidak dikenal", Jumlah: 1},
		{Kode: "800", Keamanan: "Super rahasia", Jumlah: 3},
	}}
	svc := NewDashboardService(agg, &detailResolverStub{details: map[string]string{"045": "Kearsipan"}}, nil, nil)

	result, err := svc.KeamananPerKlasifikasi(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "045", result[0].Kode)
	assert.Equal(t, "Kearsipan", result[0].Detail)
	assert.Equal(t, 2, result[0].Keamanan.Biasa)
	assert.Equal(t, 1, result[0].Keamanan.Rahasia)
	// total includes the row no bucket recognized
	assert.Equal(t, 4, result[0].Total)

	assert.Equal(t, "800", result[1].Kode)
	assert.Equal(t, models.DetailUnknown, result[1].Detail)
	assert.Equal(t, 3, result[1].Keamanan.SuperRahasia)
	assert.Equal(t, 3, result[1].Total)
}
