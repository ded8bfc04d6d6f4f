package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jobtrail/jobtrail/internal/services"
	"github.com/jobtrail/jobtrail/internal/sheets"
)

// SyncHandler bridges the local collection and the remote spreadsheet.
// Sync is optional: when the Google login flow was skipped at startup,
// every endpoint answers that sync is not configured.
type SyncHandler struct {
	JobService *services.JobService
	Sheets     *sheets.Client
}

func NewSyncHandler(jobs *services.JobService, client *sheets.Client) *SyncHandler {
	return &SyncHandler{JobService: jobs, Sheets: client}
}

func (h *SyncHandler) ensureConfigured(c *gin.Context) bool {
	if h.Sheets == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":     "spreadsheet sync is not configured",
			"retriable": false,
		})
		return false
	}
	return true
}

// PushOne is POST /sync/records/:id?new=true|false
func (h *SyncHandler) PushOne(c *gin.Context) {
	if !h.ensureConfigured(c) {
		return
	}

	ctx := c.Request.Context()
	rec, found := h.JobService.Get(ctx, c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}

	isNew := c.Query("new") == "true"
	if err := h.Sheets.SaveOne(ctx, rec, isNew); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"synced": rec.ID})
}

// DeleteOne is DELETE /sync/records/:id. Absent rows are a no-op: they
// may already have been deleted remotely.
func (h *SyncHandler) DeleteOne(c *gin.Context) {
	if !h.ensureConfigured(c) {
		return
	}

	if err := h.Sheets.DeleteOne(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Pull is GET /sync/records: the remote rows decoded into records, for
// the operator to compare or selectively copy. It does not touch the
// local collection.
func (h *SyncHandler) Pull(c *gin.Context) {
	if !h.ensureConfigured(c) {
		return
	}

	records, err := h.Sheets.FetchAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
