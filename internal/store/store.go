// Package store persists the application collection as one document in a
// single named slot. The whole collection is the unit of persistence:
// every Load re-reads and re-migrates the slot, every Save overwrites it.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jobtrail/jobtrail/internal/models"
)

type Store struct {
	slot Slot
	log  *zap.Logger
}

func New(slot Slot, log *zap.Logger) *Store {
	return &Store{slot: slot, log: log}
}

// Load reads the slot and returns the migrated collection. An absent or
// unparseable slot is not fatal: it degrades to an empty collection with
// a diagnostic, so one bad write never bricks the tracker.
func (s *Store) Load(ctx context.Context) []models.Record {
	data, found, err := s.slot.Read(ctx)
	if err != nil {
		s.log.Warn("slot read failed, starting with empty collection", zap.Error(err))
		return []models.Record{}
	}
	if !found {
		return []models.Record{}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.log.Warn("slot content not parseable, starting with empty collection", zap.Error(err))
		return []models.Record{}
	}

	records := make([]models.Record, 0, len(raw))
	for _, el := range raw {
		records = append(records, models.DecodeRecord(el))
	}
	return records
}

// Save serializes the entire collection and overwrites the slot.
func (s *Store) Save(ctx context.Context, records []models.Record) error {
	if records == nil {
		records = []models.Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}
	if err := s.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}
