package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobtrail/jobtrail/internal/dtos"
	"github.com/jobtrail/jobtrail/internal/models"
	"github.com/jobtrail/jobtrail/internal/services"
	"github.com/jobtrail/jobtrail/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *services.JobService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	slot := store.NewFileSlot(filepath.Join(t.TempDir(), "jobtrail.json"))
	st := store.New(slot, zap.NewNop())
	jobs := services.NewJobService(context.Background(), st, zap.NewNop())

	h := NewPortingHandler(jobs)
	r := gin.New()
	r.GET("/export", h.Export)
	r.POST("/import", h.Import)
	return r, jobs
}

func seed(t *testing.T, jobs *services.JobService) models.Record {
	t.Helper()
	rec, err := jobs.Create(context.Background(), &dtos.JobCreationRequest{Company: "Acme", Role: "Engineer"})
	require.NoError(t, err)
	return rec
}

func TestExportSetsDatedFilename(t *testing.T) {
	r, jobs := newTestRouter(t)
	seed(t, jobs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/export", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cd := w.Header().Get("Content-Disposition")
	assert.Contains(t, cd, "jobtrail-export-")
	assert.Contains(t, cd, ".json")

	var doc []models.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	require.Len(t, doc, 1)
	assert.Equal(t, "Acme", doc[0].Company)
}

func TestImportPreviewDoesNotReplace(t *testing.T) {
	r, jobs := newTestRouter(t)
	existing := seed(t, jobs)

	body := `[{"company":"Beta","role":"Designer"}]`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import", strings.NewReader(body))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"preview":true`)

	// Existing collection untouched until confirmed.
	got := jobs.List(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, existing.ID, got[0].ID)
}

func TestImportConfirmedReplacesCollection(t *testing.T) {
	r, jobs := newTestRouter(t)
	seed(t, jobs)

	body := `[{"company":"Beta","role":"Designer"}]`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import?confirm=true", strings.NewReader(body))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	got := jobs.List(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, "Beta", got[0].Company)
}

func TestImportRejectsEmptyWithoutTouchingState(t *testing.T) {
	r, jobs := newTestRouter(t)
	existing := seed(t, jobs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import?confirm=true", strings.NewReader(`[]`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "NO_RECORDS")

	got := jobs.List(context.Background())
	require.Len(t, got, 1)
	assert.Equal(t, existing.ID, got[0].ID)
}

func TestImportRejectsNonArray(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/import?confirm=true", strings.NewReader(`{}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "BAD_SHAPE")
}
