// Package porting turns the collection into the portable document used
// for export/import. The document is shape-identical to the local slot.
package porting

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jobtrail/jobtrail/internal/models"
)

// Export serializes the full collection, pretty-printed for humans. No
// record content is transformed.
func Export(records []models.Record) ([]byte, error) {
	if records == nil {
		records = []models.Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export document: %w", err)
	}
	return data, nil
}

// ExportFilename embeds the current date so downloads stay traceable.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("jobtrail-export-%s.json", now.Format("2006-01-02"))
}
