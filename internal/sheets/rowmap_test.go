package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrail/jobtrail/internal/models"
)

func sampleRecord() models.Record {
	applied := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	score := 77
	return models.Record{
		ID:          "r1",
		Company:     "Acme",
		Role:        "Backend Engineer",
		Location:    "Berlin",
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
		Contacts: []models.Contact{},
		Insights: &models.Insights{
			Questions:  []string{"Why Acme?"},
			KeySkills:  []string{"Go"},
			MatchScore: &score,
		},
	}
}

func TestEncodeDecodeRowRoundTrip(t *testing.T) {
	want := sampleRecord()

	row := EncodeRow(want)
	require.Len(t, row, len(HeaderRow))

	got, err := DecodeRow(row)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEncodeRowColumnOrder(t *testing.T) {
	row := EncodeRow(sampleRecord())

	assert.Equal(t, "r1", row[0])
	assert.Equal(t, "Acme", row[1])
	assert.Equal(t, "Backend Engineer", row[2])
	assert.Equal(t, "Berlin", row[3])
	assert.Equal(t, "interviewing", row[4])
	assert.Equal(t, "2026-02-10T12:00:00Z", row[5])
	assert.Equal(t, "Go services team", row[6])
	assert.Equal(t, "referred by Dana", row[7])
}

func TestDecodeRowMissingIdentifier(t *testing.T) {
	_, err := DecodeRow([]interface{}{"", "Acme", "Engineer"})
	assert.Error(t, err)

	_, err = DecodeRow([]interface{}{})
	assert.Error(t, err)
}

func TestDecodeRowBadJSONCellEmptiesOnlyThatCell(t *testing.T) {
	row := EncodeRow(sampleRecord())
	row[8] = "{definitely not json"

	got, err := DecodeRow(row)
	require.NoError(t, err)
	assert.Empty(t, got.Events)
	assert.Len(t, got.Emails, 1)
	assert.Equal(t, "Acme", got.Company)
}

func TestDecodeRowShortRowDefaults(t *testing.T) {
	got, err := DecodeRow([]interface{}{"r9", "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "r9", got.ID)
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, models.DefaultStatus, got.Status)
	assert.True(t, got.DateApplied.IsZero())
	assert.NotNil(t, got.Events)
	assert.NotNil(t, got.Emails)
}

func TestFindRowIndex(t *testing.T) {
	rows := [][]interface{}{
		EncodeRow(models.Record{ID: "a"}),
		EncodeRow(models.Record{ID: "b"}),
		EncodeRow(models.Record{ID: "c"}),
	}

	assert.Equal(t, 1, FindRowIndex(rows, "b"))
	assert.Equal(t, 2, FindRowIndex(rows, "c"))
}

// The update/delete paths bail out before issuing any mutation request
// when the identifier is absent from the fetched rows; FindRowIndex
// returning -1 is that guard.
func TestFindRowIndexMissingIdentifier(t *testing.T) {
	rows := [][]interface{}{
		EncodeRow(models.Record{ID: "a"}),
	}

	assert.Equal(t, -1, FindRowIndex(rows, "zzz"))
	assert.Equal(t, -1, FindRowIndex(nil, "a"))
}
