package dtos

import "github.com/jobtrail/jobtrail/internal/models"

type JobCreationRequest struct {
	Company string `json:"company" binding:"required"`
	Role    string `json:"role" binding:"required"`

	// Optional fields
	Location    string           `json:"location"`
	SalaryRange string           `json:"salaryRange"`
	Description string           `json:"description"`
	Notes       string           `json:"notes"`
	Status      string           `json:"status"` // defaults to "applied" if empty or unknown
	Contacts    []models.Contact `json:"contacts"`
}

type JobUpdateRequest struct {
	Company     *string `json:"company"`
	Role        *string `json:"role"`
	Location    *string `json:"location"`
	SalaryRange *string `json:"salaryRange"`
	Description *string `json:"description"`
	Notes       *string `json:"notes"`
	Status      *string `json:"status"`
}

type JobExtractionRequest struct {
	Text string `json:"text" binding:"required"`
}

type EmailAnalysisRequest struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

type EmailCreationRequest struct {
	From    string `json:"from"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
	Summary string `json:"summary"`
}

type EventCreationRequest struct {
	Type  string `json:"type"`
	Title string `json:"title" binding:"required"`
	Date  string `json:"date"` // RFC3339
	Notes string `json:"notes"`
}
