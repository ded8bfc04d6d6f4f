package porting

import (
	"encoding/json"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jobtrail/jobtrail/internal/apperr"
	"github.com/jobtrail/jobtrail/internal/models"
)

// Placeholders for required fields the document failed to supply.
const (
	PlaceholderCompany = "Unknown Company"
	PlaceholderRole    = "Unknown Role"
)

var documentSchema = gojsonschema.NewStringLoader(`{"type": "array"}`)

// Import validates and sanitizes an externally supplied document. On
// success the returned records are a candidate full replacement for the
// collection; the caller is responsible for obtaining confirmation
// before applying it. Existing state is never touched here.
//
// Failure reasons are typed: PARSE_FAILED for documents that are not
// JSON, BAD_SHAPE for JSON that is not an array, NO_RECORDS when nothing
// in the array survived sanitizing. Import never silently accepts an
// empty replacement.
func Import(raw []byte) ([]models.Record, error) {
	result, err := gojsonschema.Validate(documentSchema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeParseFailed, "document is not well-formed JSON", err)
	}
	if !result.Valid() {
		return nil, apperr.New(apperr.CodeBadShape, "document must be a JSON array of records")
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, apperr.Wrap(apperr.CodeParseFailed, "document is not well-formed JSON", err)
	}

	now := time.Now().UTC()
	records := make([]models.Record, 0, len(elements))
	for _, el := range elements {
		rec, ok := sanitize(el, now)
		if !ok {
			continue
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, apperr.New(apperr.CodeNoRecords, "no valid records found in document")
	}
	return records, nil
}

// sanitize maps one element into a current Record, defaulting whatever
// is missing. Elements that are not objects are dropped.
func sanitize(el json.RawMessage, now time.Time) (models.Record, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(el, &probe); err != nil || probe == nil {
		return models.Record{}, false
	}

	// DecodeRecord already coerces statuses, defaults the nested
	// sequences and runs the deprecated-contact migration.
	rec := models.DecodeRecord(el)
	if rec.ID == "" {
		rec.ID = models.NewID()
	}
	if rec.Company == "" {
		rec.Company = PlaceholderCompany
	}
	if rec.Role == "" {
		rec.Role = PlaceholderRole
	}
	if rec.DateApplied.IsZero() {
		rec.DateApplied = now
	}
	return rec, true
}
