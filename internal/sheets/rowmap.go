package sheets

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jobtrail/jobtrail/internal/apperr"
	"github.com/jobtrail/jobtrail/internal/models"
)

// The remote spreadsheet schema: 11 fixed columns, nested sequences
// stored as JSON-encoded text in the last three.
var HeaderRow = []interface{}{
	"ID", "Company", "Role", "Location", "Status", "Date Applied",
	"Description", "Notes", "Events (JSON)", "Emails (JSON)", "AI Insights (JSON)",
}

const numColumns = 11

// EncodeRow maps a record onto the fixed column order.
func EncodeRow(rec models.Record) []interface{} {
	dateApplied := ""
	if !rec.DateApplied.IsZero() {
		dateApplied = rec.DateApplied.Format(time.RFC3339)
	}
	insightsCell := ""
	if rec.Insights != nil {
		insightsCell = encodeJSONCell(rec.Insights)
	}
	return []interface{}{
		rec.ID,
		rec.Company,
		rec.Role,
		rec.Location,
		string(rec.Status),
		dateApplied,
		rec.Description,
		rec.Notes,
		encodeJSONCell(rec.Events),
		encodeJSONCell(rec.Emails),
		insightsCell,
	}
}

// DecodeRow rebuilds a record from one spreadsheet row. Rows without an
// identifier are unusable and reported as an error so the caller can
// skip them; a JSON cell that fails to decode only empties that cell.
func DecodeRow(row []interface{}) (models.Record, error) {
	id := cellString(row, 0)
	if id == "" {
		return models.Record{}, apperr.New(apperr.CodeRowDecodeFailed, "row has no identifier")
	}

	status := models.Status(cellString(row, 4))
	if !models.ValidStatus(status) {
		status = models.DefaultStatus
	}

	var dateApplied time.Time
	if s := cellString(row, 5); s != "" {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			dateApplied = t
		}
	}

	rec := models.Record{
		ID:          id,
		Company:     cellString(row, 1),
		Role:        cellString(row, 2),
		Location:    cellString(row, 3),
		Status:      status,
		DateApplied: dateApplied,
		Description: cellString(row, 6),
		Notes:       cellString(row, 7),
		Events:      decodeJSONCell[models.Event](cellString(row, 8)),
		Emails:      decodeJSONCell[models.EmailEntry](cellString(row, 9)),
		Contacts:    []models.Contact{},
	}
	if s := cellString(row, 10); s != "" {
		var ins models.Insights
		if json.Unmarshal([]byte(s), &ins) == nil {
			rec.Insights = &ins
		}
	}
	return rec, nil
}

// FindRowIndex returns the zero-based data-row offset of the row whose
// identifier column matches id, or -1. The caller adds the header offset.
func FindRowIndex(rows [][]interface{}, id string) int {
	for i, row := range rows {
		if cellString(row, 0) == id {
			return i
		}
	}
	return -1
}

func encodeJSONCell(v interface{}) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// decodeJSONCell decodes one JSON-encoded column. Failure empties only
// this cell, never the row.
func decodeJSONCell[T any](s string) []T {
	var out []T
	if s == "" || json.Unmarshal([]byte(s), &out) != nil || out == nil {
		return []T{}
	}
	return out
}

func cellString(row []interface{}, col int) string {
	if col >= len(row) {
		return ""
	}
	s, ok := row[col].(string)
	if !ok {
		return fmt.Sprintf("%v", row[col])
	}
	return s
}
