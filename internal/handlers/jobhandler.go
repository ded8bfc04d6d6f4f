package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jobtrail/jobtrail/internal/dtos"
	"github.com/jobtrail/jobtrail/internal/models"
	"github.com/jobtrail/jobtrail/internal/services"
)

type JobHandler struct {
	LLMService *services.LLMService
	JobService *services.JobService
	Matcher    *services.MatcherService
}

func NewJobHandler(llm *services.LLMService, jobs *services.JobService, matcher *services.MatcherService) *JobHandler {
	return &JobHandler{
		LLMService: llm,
		JobService: jobs,
		Matcher:    matcher,
	}
}

// ListJobs is GET /jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, h.JobService.List(c.Request.Context()))
}

// GetJob is GET /jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	rec, found := h.JobService.Get(c.Request.Context(), c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// CreateJob is POST /jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	rec, err := h.JobService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// UpdateJob is PATCH /jobs/:id
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	rec, found, err := h.JobService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DeleteJob is DELETE /jobs/:id
func (h *JobHandler) DeleteJob(c *gin.Context) {
	found, err := h.JobService.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// ParseJob is POST /jobs/extract: free text in, structured fields out.
// On extraction failure the UI falls back to manual entry.
func (h *JobHandler) ParseJob(c *gin.Context) {
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	extraction, err := h.LLMService.ParseJobPosting(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": extraction})
}

// SuggestQuestions is POST /jobs/:id/questions. The generated questions
// are stored on the record's insights and returned.
func (h *JobHandler) SuggestQuestions(c *gin.Context) {
	ctx := c.Request.Context()
	rec, found := h.JobService.Get(ctx, c.Param("id"))
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}

	questions, err := h.LLMService.SuggestQuestions(ctx, rec.Role, rec.Company, rec.Description)
	if err != nil {
		respondError(c, err)
		return
	}

	ins := models.Insights{}
	if rec.Insights != nil {
		ins = *rec.Insights
	}
	ins.Questions = questions
	updated, _, err := h.JobService.AttachInsights(ctx, rec.ID, &ins)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AnalyzeEmail is POST /emails/analyze: summarizes correspondence and
// reports which tracked application it appears to belong to.
func (h *JobHandler) AnalyzeEmail(c *gin.Context) {
	var req dtos.EmailAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	analysis, err := h.LLMService.AnalyzeEmail(ctx, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{"analysis": analysis}
	if rec, ok := h.Matcher.MatchRecord(ctx, req.Subject, req.From); ok {
		resp["matchedRecordId"] = rec.ID
	}
	c.JSON(http.StatusOK, resp)
}

// AddEmail is POST /jobs/:id/emails
func (h *JobHandler) AddEmail(c *gin.Context) {
	var req dtos.EmailCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	entry := models.EmailEntry{
		From:    req.From,
		Subject: req.Subject,
		Body:    req.Body,
		Summary: req.Summary,
	}
	rec, found, err := h.JobService.AddEmail(c.Request.Context(), c.Param("id"), entry)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// AddEvent is POST /jobs/:id/events
func (h *JobHandler) AddEvent(c *gin.Context) {
	var req dtos.EventCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	ev := models.Event{
		Type:  models.EventType(req.Type),
		Title: req.Title,
		Notes: req.Notes,
	}
	switch ev.Type {
	case models.EventInterview, models.EventDeadline, models.EventFollowUp, models.EventOther:
	default:
		ev.Type = models.EventOther
	}
	if req.Date != "" {
		t, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be RFC3339"})
			return
		}
		ev.Date = t
	}

	rec, found, err := h.JobService.AddEvent(c.Request.Context(), c.Param("id"), ev)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// AddContact is POST /jobs/:id/contacts
func (h *JobHandler) AddContact(c *gin.Context) {
	var contact models.Contact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	rec, found, err := h.JobService.AddContact(c.Request.Context(), c.Param("id"), contact)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
		return
	}
	c.JSON(http.StatusCreated, rec)
}
