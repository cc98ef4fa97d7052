package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dispusip/arsip-api/internal/service"
	appErrors "github.com/dispusip/arsip-api/pkg/errors"
)

type exportServiceStub struct {
	result *service.ExportResult
	err    error
	format string
}

func (s *exportServiceStub) DaftarArsip(ctx context.Context, format string) (*service.ExportResult, error) {
	s.format = format
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func newExportRouter(stub *exportServiceStub) *gin.Engine {
	r := gin.New()
	r.GET("/export/arsip", NewExportHandler(stub).DaftarArsip)
	return r
}

func TestExportHandlerDaftarArsip(t *testing.T) {
	stub := &exportServiceStub{result: &service.ExportResult{
		Content:     []byte("No Arsip,Kode Klasifikasi\n"),
		ContentType: "text/csv",
		Filename:    "daftar-arsip-20240310.csv",
	}}
	router := newExportRouter(stub)

	req, _ := http.NewRequest(http.MethodGet, "/export/arsip?format=csv", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusOK, resp.Code)

	assert.Equal(t, "csv", stub.format)
	assert.Equal(t, `attachment; filename="daftar-arsip-20240310.csv"`, resp.Header().Get("Content-Disposition"))
	assert.Contains(t, resp.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Body.String(), "No Arsip")
}

func TestExportHandlerRejectsUnknownFormat(t *testing.T) {
	stub := &exportServiceStub{err: appErrors.WithFields(appErrors.ErrValidation, map[string]string{"format": "format harus csv atau pdf"})}
	router := newExportRouter(stub)

	req, _ := http.NewRequest(http.MethodGet, "/export/arsip?format=xlsx", nil)
	resp := performRequest(router, req)
	require.Equal(t, http.StatusUnprocessableEntity, resp.Code)

	envelope := decodeEnvelope(t, resp)
	assert.False(t, envelope.Status)
	assert.NotNil(t, envelope.Errors)
}
