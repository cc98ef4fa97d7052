package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/dispusip/arsip-api/internal/models"
	appErrors "github.com/dispusip/arsip-api/pkg/errors"
	"github.com/dispusip/arsip-api/pkg/export"
)

type berkasLister interface {
	ListWithRelations(ctx context.Context) ([]models.BerkasRelasi, error)
}

// ExportResult bundles rendered export content with response metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the printable daftar arsip in CSV or PDF form.
type ExportService struct {
	berkas berkasLister
	title  string
	logger *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(berkas berkasLister, title string, logger *zap.Logger) *ExportService {
	if title == "" {
		title = "Daftar Berkas Arsip"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{berkas: berkas, title: title, logger: logger}
}

// DaftarArsip renders every berkas as one table row. The format defaults to
// csv when empty.
func (s *ExportService) DaftarArsip(ctx context.Context, format string) (*ExportResult, error) {
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "pdf" {
		return nil, appErrors.WithFields(appErrors.ErrValidation, map[string]string{
			"format": "format harus csv atau pdf",
		})
	}

	items, err := s.berkas.ListWithRelations(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mengekspor daftar arsip")
	}

	table := export.Table{
		Columns: []string{"No Arsip", "Kode Klasifikasi", "Uraian Informasi", "Tanggal", "Jumlah", "Keamanan", "Keterangan", "Judul Berkas"},
		Rows:    make([][]string, 0, len(items)),
	}
	for _, item := range items {
		kode := ""
		if item.KodeKlasifikasi != nil {
			kode = *item.KodeKlasifikasi
		}
		keterangan := ""
		if item.Keterangan != nil {
			keterangan = *item.Keterangan
		}
		judul := ""
		if item.Hal != nil {
			judul = item.Hal.JudulBerkas
		}
		jumlah := strconv.FormatFloat(item.Jumlah, 'f', -1, 64) + " " + item.Satuan
		table.Rows = append(table.Rows, []string{
			item.NoArsip,
			kode,
			item.UraianInformasi,
			item.Tanggal.Format(tanggalLayout),
			jumlah,
			item.Keamanan,
			keterangan,
			judul,
		})
	}

	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case "pdf":
		content, err := export.RenderPDF(table, s.title)
		if err != nil {
			s.logger.Error("render daftar arsip pdf failed", zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mengekspor daftar arsip")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("daftar-arsip-%s.pdf", stamp),
		}, nil
	default:
		content, err := export.RenderCSV(table)
		if err != nil {
			s.logger.Error("render daftar arsip csv failed", zap.Error(err))
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "Gagal mengekspor daftar arsip")
		}
		return &ExportResult{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("daftar-arsip-%s.csv", stamp),
		}, nil
	}
}
