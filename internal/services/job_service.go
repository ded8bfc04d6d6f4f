package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jobtrail/jobtrail/internal/dtos"
	"github.com/jobtrail/jobtrail/internal/models"
	"github.com/jobtrail/jobtrail/internal/store"
)

// JobService owns the canonical in-memory collection. All mutation goes
// through it under one lock, so no two saves can race from
// independently-derived copies of the collection, and every mutation
// persists the whole collection through the store.
type JobService struct {
	store *store.Store
	log   *zap.Logger

	mu      sync.Mutex
	records []models.Record
}

// NewJobService loads (and thereby migrates) the persisted collection.
func NewJobService(ctx context.Context, st *store.Store, log *zap.Logger) *JobService {
	records := st.Load(ctx)
	log.Info("collection loaded", zap.Int("records", len(records)))
	return &JobService{store: st, log: log, records: records}
}

// List returns a snapshot of the collection.
func (s *JobService) List(_ context.Context) []models.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *JobService) Get(_ context.Context, id string) (models.Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.Record{}, false
}

func (s *JobService) Create(ctx context.Context, req *dtos.JobCreationRequest) (models.Record, error) {
	rec := models.NewRecord(req.Company, req.Role)
	rec.Location = req.Location
	rec.SalaryRange = req.SalaryRange
	rec.Description = req.Description
	rec.Notes = req.Notes
	if st := models.Status(req.Status); models.ValidStatus(st) {
		rec.Status = st
	}
	for _, c := range req.Contacts {
		if c.ID == "" {
			c.ID = models.NewID()
		}
		rec.Contacts = append(rec.Contacts, c)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	if err := s.store.Save(ctx, s.records); err != nil {
		return models.Record{}, err
	}
	return rec, nil
}

// Update applies the non-nil fields of req. Returns found=false when the
// record does not exist.
func (s *JobService) Update(ctx context.Context, id string, req *dtos.JobUpdateRequest) (models.Record, bool, error) {
	return s.mutate(ctx, id, func(rec *models.Record) {
		if req.Company != nil {
			rec.Company = *req.Company
		}
		if req.Role != nil {
			rec.Role = *req.Role
		}
		if req.Location != nil {
			rec.Location = *req.Location
		}
		if req.SalaryRange != nil {
			rec.SalaryRange = *req.SalaryRange
		}
		if req.Description != nil {
			rec.Description = *req.Description
		}
		if req.Notes != nil {
			rec.Notes = *req.Notes
		}
		if req.Status != nil {
			if st := models.Status(*req.Status); models.ValidStatus(st) {
				rec.Status = st
			}
		}
	})
}

func (s *JobService) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, s.store.Save(ctx, s.records)
		}
	}
	return false, nil
}

func (s *JobService) AddEmail(ctx context.Context, id string, entry models.EmailEntry) (models.Record, bool, error) {
	if entry.ID == "" {
		entry.ID = models.NewID()
	}
	if entry.Date.IsZero() {
		entry.Date = time.Now().UTC()
	}
	return s.mutate(ctx, id, func(rec *models.Record) {
		rec.Emails = append(rec.Emails, entry)
	})
}

func (s *JobService) AddEvent(ctx context.Context, id string, ev models.Event) (models.Record, bool, error) {
	if ev.ID == "" {
		ev.ID = models.NewID()
	}
	return s.mutate(ctx, id, func(rec *models.Record) {
		rec.Events = append(rec.Events, ev)
	})
}

func (s *JobService) AddContact(ctx context.Context, id string, c models.Contact) (models.Record, bool, error) {
	if c.ID == "" {
		c.ID = models.NewID()
	}
	return s.mutate(ctx, id, func(rec *models.Record) {
		rec.Contacts = append(rec.Contacts, c)
	})
}

func (s *JobService) AttachInsights(ctx context.Context, id string, ins *models.Insights) (models.Record, bool, error) {
	return s.mutate(ctx, id, func(rec *models.Record) {
		rec.Insights = ins
	})
}

// ReplaceAll swaps in a sanitized import as the new collection. Full
// replace, not merge; the handler gathers confirmation first.
func (s *JobService) ReplaceAll(ctx context.Context, records []models.Record) error {
	if records == nil {
		records = []models.Record{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	return s.store.Save(ctx, s.records)
}

func (s *JobService) mutate(ctx context.Context, id string, fn func(*models.Record)) (models.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			fn(&s.records[i])
			if err := s.store.Save(ctx, s.records); err != nil {
				return models.Record{}, true, err
			}
			return s.records[i], true, nil
		}
	}
	return models.Record{}, false, nil
}
