package services

import (
	"context"
	"net/mail"
	"strings"

	"github.com/jobtrail/jobtrail/internal/models"
)

// MatcherService links an incoming email to the application it most
// likely belongs to, so an analyzed email can be filed without the
// operator hunting for the record.
type MatcherService struct {
	jobs *JobService
}

func NewMatcherService(jobs *JobService) *MatcherService {
	return &MatcherService{jobs: jobs}
}

// MatchRecord tries to match an email to a tracked application by
// company name. Rules, in order: subject line contains the company,
// sender display name contains it, sender domain contains it.
func (m *MatcherService) MatchRecord(ctx context.Context, subject, rawSender string) (models.Record, bool) {
	senderName := ""
	senderAddr := strings.ToLower(rawSender)
	if parsed, err := mail.ParseAddress(rawSender); err == nil {
		senderName = strings.ToLower(parsed.Name)
		senderAddr = strings.ToLower(parsed.Address)
	}

	subjectLower := strings.ToLower(subject)

	for _, rec := range m.jobs.List(ctx) {
		company := strings.ToLower(rec.Company)
		// Very short names match everything ("X", "Go"); skip them.
		if len(company) < 3 {
			continue
		}

		if strings.Contains(subjectLower, company) {
			return rec, true
		}
		if senderName != "" && strings.Contains(senderName, company) {
			return rec, true
		}
		if parts := strings.Split(senderAddr, "@"); len(parts) == 2 {
			if strings.Contains(parts[1], company) {
				return rec, true
			}
		}
	}
	return models.Record{}, false
}
