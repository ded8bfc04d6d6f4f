package models

import (
	"time"

	"github.com/google/uuid"
)

// Status is the application pipeline stage.
type Status string

const (
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffer        Status = "offer"
	StatusRejected     Status = "rejected"
	StatusWishlist     Status = "wishlist"
)

// DefaultStatus is what unrecognized or missing statuses coerce to.
const DefaultStatus = StatusApplied

// ValidStatus reports whether s is one of the recognized pipeline stages.
func ValidStatus(s Status) bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOffer, StatusRejected, StatusWishlist:
		return true
	}
	return false
}

// EventType classifies calendar events attached to an application.
type EventType string

const (
	EventInterview EventType = "interview"
	EventDeadline  EventType = "deadline"
	EventFollowUp  EventType = "follow-up"
	EventOther     EventType = "other"
)

// Record is one tracked job application and everything nested under it.
// JSON tags are the portable document format: the same shape is written
// to the local slot and to export files.
type Record struct {
	ID          string    `json:"id"`
	Company     string    `json:"company"`
	Role        string    `json:"role"`
	Location    string    `json:"location,omitempty"`
	SalaryRange string    `json:"salaryRange,omitempty"`
	Status      Status    `json:"status"`
	DateApplied time.Time `json:"dateApplied"`
	Description string    `json:"description"`
	Notes       string    `json:"notes"`

	Emails   []EmailEntry `json:"emails"`
	Events   []Event      `json:"events"`
	Contacts []Contact    `json:"contacts"`

	Insights *Insights `json:"aiInsights,omitempty"`

	// RecruitingContact predates the Contacts slice. Readers must
	// tolerate it; Migrate moves it into Contacts and clears it.
	RecruitingContact string `json:"recruitingContact,omitempty"`
}

// Contact is a person attached to an application. All fields are free
// text with no uniqueness constraint.
type Contact struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	LinkedIn     string `json:"linkedin"`
	Organization string `json:"organization"`
}

// EmailEntry is one piece of correspondence.
type EmailEntry struct {
	ID      string    `json:"id"`
	From    string    `json:"from"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Date    time.Time `json:"date"`
	Summary string    `json:"summary,omitempty"`
}

// Event is an interview, deadline or follow-up attached to an application.
type Event struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Date      time.Time `json:"date"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes,omitempty"`
	Completed bool      `json:"completed"`
}

// Insights holds AI-derived data attached to an application.
type Insights struct {
	Questions  []string `json:"questions,omitempty"`
	KeySkills  []string `json:"keySkills,omitempty"`
	MatchScore *int     `json:"matchScore,omitempty"`
}

// NewID returns an opaque identifier. Uniqueness within a collection is
// the only contract.
func NewID() string { return uuid.NewString() }

// NewRecord creates a fresh application with empty sub-collections.
func NewRecord(company, role string) Record {
	return Record{
		ID:          NewID(),
		Company:     company,
		Role:        role,
		Status:      DefaultStatus,
		DateApplied: time.Now().UTC(),
		Emails:      []EmailEntry{},
		Events:      []Event{},
		Contacts:    []Contact{},
	}
}
