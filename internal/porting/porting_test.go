package porting

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrail/jobtrail/internal/apperr"
	"github.com/jobtrail/jobtrail/internal/models"
)

func sampleCollection() []models.Record {
	applied := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	score := 82
	return []models.Record{
		{
			ID:          "r1",
			Company:     "Acme",
			Role:        "Backend Engineer",
			Location:    "Berlin",
			SalaryRange: "70-85k",
			Status:      models.StatusInterviewing,
			DateApplied: applied,
			Description: "Go services team",
			Notes:       "referred by Dana",
			Emails: []models.EmailEntry{
				{ID: "m1", From: "dana@acme.com", Subject: "Next steps", Body: "Hi!", Date: applied},
			},
			Events: []models.Event{
				{ID: "e1", Type: models.EventInterview, Date: applied.AddDate(0, 0, 7), Title: "Phone screen"},
			},
			Contacts: []models.Contact{
				{ID: "c1", Name: "Dana", Role: "Recruiter", Email: "dana@acme.com", Organization: "Acme"},
			},
			Insights: &models.Insights{
				Questions:  []string{"Why Acme?"},
				KeySkills:  []string{"Go", "Postgres"},
				MatchScore: &score,
			},
		},
		{
			ID:          "r2",
			Company:     "Beta",
			Role:        "Platform Engineer",
			Status:      models.StatusApplied,
			DateApplied: applied.AddDate(0, 1, 0),
			Emails:      []models.EmailEntry{},
			Events:      []models.Event{},
			Contacts:    []models.Contact{},
		},
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	want := sampleCollection()

	doc, err := Export(want)
	require.NoError(t, err)

	got, err := Import(doc)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExportIsPrettyPrinted(t *testing.T) {
	doc, err := Export(sampleCollection())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(doc), "[\n  {"))
}

func TestExportFilenameEmbedsDate(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "jobtrail-export-2026-09-01.json", ExportFilename(now))
}

func TestImportRejectsEmptyArray(t *testing.T) {
	_, err := Import([]byte(`[]`))
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNoRecords, apperr.CodeOf(err))
}

func TestImportRejectsNonArray(t *testing.T) {
	_, err := Import([]byte(`{}`))
	require.Error(t, err)
	assert.Equal(t, apperr.CodeBadShape, apperr.CodeOf(err))
}

func TestImportRejectsMalformedJSON(t *testing.T) {
	_, err := Import([]byte(`{"company": `))
	require.Error(t, err)
	assert.Equal(t, apperr.CodeParseFailed, apperr.CodeOf(err))
}

func TestImportSanitizesPartialRecords(t *testing.T) {
	got, err := Import([]byte(`[{"company":"Acme"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)

	rec := got[0]
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "Acme", rec.Company)
	assert.Equal(t, PlaceholderRole, rec.Role)
	assert.Equal(t, models.StatusApplied, rec.Status)
	assert.WithinDuration(t, time.Now(), rec.DateApplied, time.Minute)
	assert.Empty(t, rec.Contacts)
	assert.NotNil(t, rec.Contacts)
	assert.Empty(t, rec.Events)
	assert.Empty(t, rec.Emails)
}

func TestImportDropsNonObjectElements(t *testing.T) {
	got, err := Import([]byte(`["nope", 42, null, {"company":"Acme"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Acme", got[0].Company)
}

func TestImportAllElementsDropped(t *testing.T) {
	_, err := Import([]byte(`["nope", 42]`))
	require.Error(t, err)
	assert.Equal(t, apperr.CodeNoRecords, apperr.CodeOf(err))
}

func TestImportMigratesDeprecatedContactField(t *testing.T) {
	got, err := Import([]byte(`[{"company":"Acme","role":"Eng","recruitingContact":"Acme Staffing"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Len(t, got[0].Contacts, 1)
	assert.Equal(t, "Acme Staffing", got[0].Contacts[0].Organization)
	assert.Empty(t, got[0].RecruitingContact)
}

func TestImportCoercesUnknownStatus(t *testing.T) {
	got, err := Import([]byte(`[{"company":"Acme","status":"ghosted"}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.DefaultStatus, got[0].Status)
}
