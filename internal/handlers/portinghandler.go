package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobtrail/jobtrail/internal/porting"
	"github.com/jobtrail/jobtrail/internal/services"
)

// PortingHandler serves the export download and the import-with-
// confirmation flow over the portable document format.
type PortingHandler struct {
	JobService *services.JobService
}

func NewPortingHandler(jobs *services.JobService) *PortingHandler {
	return &PortingHandler{JobService: jobs}
}

// Export is GET /export: the full collection as a downloadable document.
func (h *PortingHandler) Export(c *gin.Context) {
	doc, err := porting.Export(h.JobService.List(c.Request.Context()))
	if err != nil {
		respondError(c, err)
		return
	}

	filename := porting.ExportFilename(time.Now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/json", doc)
}

// Import is POST /import. Without ?confirm=true it only validates and
// returns a preview; the existing collection is replaced only on the
// confirmed call. Replace is total, never a merge.
func (h *PortingHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	records, err := porting.Import(raw)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("confirm") != "true" {
		c.JSON(http.StatusOK, gin.H{
			"preview":  true,
			"count":    len(records),
			"replaces": len(h.JobService.List(c.Request.Context())),
		})
		return
	}

	if err := h.JobService.ReplaceAll(c.Request.Context(), records); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(records)})
}
