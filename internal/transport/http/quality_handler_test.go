package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "crmkit/internal/errors"
	"crmkit/internal/services"
	"crmkit/internal/validation"
)

// fakeQualityService returns canned results for AnalyzeUpload
type fakeQualityService struct {
	report *services.QualityReport
	err    error

	gotFilename string
}

func (f *fakeQualityService) AnalyzeUpload(_ context.Context, filename string, r io.Reader) (*services.QualityReport, error) {
	f.gotFilename = filename
	io.Copy(io.Discard, r)
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func newQualityHandler(svc QualityServiceInterface, maxBytes int64) *QualityHandler {
	logger := slog.Default()
	return NewQualityHandler(svc, maxBytes, logger, apierrors.NewErrorHandler(logger))
}

// multipartUpload builds a multipart body with one file part
func multipartUpload(t *testing.T, fieldName, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestQualityHandler_Analyze_OK(t *testing.T) {
	svc := &fakeQualityService{
		report: &services.QualityReport{Report: "## CRM Data Quality & Readiness Report"},
	}
	handler := newQualityHandler(svc, 1<<20)

	body, contentType := multipartUpload(t, "file", "leads.csv", "name,email\nAlice,alice@example.com\n")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "leads.csv", svc.gotFilename)

	var resp services.QualityReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Report, "Readiness Report")
}

func TestQualityHandler_Analyze_MissingFilePart(t *testing.T) {
	handler := newQualityHandler(&fakeQualityService{}, 1<<20)

	body, contentType := multipartUpload(t, "wrong_field", "leads.csv", "x")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "/errors/validation")
}

func TestQualityHandler_Analyze_StructuralRejection(t *testing.T) {
	svc := &fakeQualityService{
		err: &validation.StructuralError{Reason: "The uploaded file is empty. Please upload a CSV with data."},
	}
	handler := newQualityHandler(svc, 1<<20)

	body, contentType := multipartUpload(t, "file", "empty.csv", "")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "/errors/dataset/invalid")
	assert.Contains(t, rec.Body.String(), "The uploaded file is empty")
}

func TestQualityHandler_Analyze_UnsupportedType(t *testing.T) {
	svc := &fakeQualityService{err: services.ErrUnsupportedFileType}
	handler := newQualityHandler(svc, 1<<20)

	body, contentType := multipartUpload(t, "file", "leads.pdf", "%PDF-1.4")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Contains(t, rec.Body.String(), "/errors/unsupported-media-type")
}

func TestQualityHandler_Analyze_PayloadTooLarge(t *testing.T) {
	handler := newQualityHandler(&fakeQualityService{}, 128)

	body, contentType := multipartUpload(t, "file", "big.csv", strings.Repeat("a", 4096))
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Contains(t, rec.Body.String(), "/errors/payload-too-large")
}

func TestQualityHandler_Analyze_OpaqueInternalError(t *testing.T) {
	svc := &fakeQualityService{err: io.ErrUnexpectedEOF}
	handler := newQualityHandler(svc, 1<<20)

	body, contentType := multipartUpload(t, "file", "leads.csv", "a,b\n1,2\n")
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "unexpected EOF")
}
