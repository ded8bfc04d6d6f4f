package models

import (
	"encoding/json"
	"time"
)

// Migrate upgrades a record from the layout that predates the Contacts
// slice. It is pure and idempotent: records that are already current
// pass through unchanged.
//
// Rules:
//   - a populated Contacts slice wins; the deprecated field is cleared
//     so the two never coexist,
//   - otherwise a non-empty deprecated RecruitingContact becomes the sole
//     contact, stored verbatim in Organization,
//   - otherwise Contacts is normalized to an empty (non-nil) slice.
func Migrate(rec Record) Record {
	if rec.Emails == nil {
		rec.Emails = []EmailEntry{}
	}
	if rec.Events == nil {
		rec.Events = []Event{}
	}

	if len(rec.Contacts) > 0 {
		rec.RecruitingContact = ""
		return rec
	}
	if rec.RecruitingContact != "" {
		rec.Contacts = []Contact{{Organization: rec.RecruitingContact}}
		rec.RecruitingContact = ""
		return rec
	}
	if rec.Contacts == nil {
		rec.Contacts = []Contact{}
	}
	return rec
}

// rawRecord is the unknown persisted shape: every field is held as raw
// JSON so a wrong-typed field corrupts only itself, never the element.
// Legacy and current records are told apart by which of recruitingContact
// and contacts carries data, which Migrate resolves.
type rawRecord struct {
	ID                json.RawMessage `json:"id"`
	Company           json.RawMessage `json:"company"`
	Role              json.RawMessage `json:"role"`
	Location          json.RawMessage `json:"location"`
	SalaryRange       json.RawMessage `json:"salaryRange"`
	Status            json.RawMessage `json:"status"`
	DateApplied       json.RawMessage `json:"dateApplied"`
	Description       json.RawMessage `json:"description"`
	Notes             json.RawMessage `json:"notes"`
	Emails            json.RawMessage `json:"emails"`
	Events            json.RawMessage `json:"events"`
	Contacts          json.RawMessage `json:"contacts"`
	Insights          json.RawMessage `json:"aiInsights"`
	RecruitingContact json.RawMessage `json:"recruitingContact"`
}

// DecodeRecord turns one raw element of a persisted collection into a
// current Record. It never fails: absent or wrong-typed fields get safe
// defaults instead of poisoning the whole collection load.
func DecodeRecord(raw json.RawMessage) Record {
	var rr rawRecord
	_ = json.Unmarshal(raw, &rr)

	rec := Record{
		ID:                asString(rr.ID),
		Company:           asString(rr.Company),
		Role:              asString(rr.Role),
		Location:          asString(rr.Location),
		SalaryRange:       asString(rr.SalaryRange),
		Status:            asStatus(rr.Status),
		DateApplied:       asTime(rr.DateApplied),
		Description:       asString(rr.Description),
		Notes:             asString(rr.Notes),
		Emails:            asList[EmailEntry](rr.Emails),
		Events:            asList[Event](rr.Events),
		Contacts:          asList[Contact](rr.Contacts),
		Insights:          asInsights(rr.Insights),
		RecruitingContact: asString(rr.RecruitingContact),
	}
	return Migrate(rec)
}

func asString(raw json.RawMessage) string {
	var s string
	if raw == nil || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func asStatus(raw json.RawMessage) Status {
	s := Status(asString(raw))
	if !ValidStatus(s) {
		return DefaultStatus
	}
	return s
}

func asTime(raw json.RawMessage) time.Time {
	var t time.Time
	if raw == nil || json.Unmarshal(raw, &t) != nil {
		return time.Time{}
	}
	return t
}

func asList[T any](raw json.RawMessage) []T {
	var out []T
	if raw == nil || json.Unmarshal(raw, &out) != nil || out == nil {
		return []T{}
	}
	return out
}

func asInsights(raw json.RawMessage) *Insights {
	if raw == nil {
		return nil
	}
	var ins Insights
	if json.Unmarshal(raw, &ins) != nil {
		return nil
	}
	return &ins
}
