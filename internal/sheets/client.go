// Package sheets syncs the collection to a Google Sheets spreadsheet,
// one application per row. The spreadsheet is located (or created) by
// name once per session; row lookups always re-fetch, because the sheet
// has no indexed lookup by key. That re-fetch is still a classic
// read-modify-write: a second writer (another tab, a manual edit)
// landing between our read and write can be overwritten. Accepted
// limitation for a single-user tool.
package sheets

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jobtrail/jobtrail/internal/apperr"
	"github.com/jobtrail/jobtrail/internal/models"
)

const tabName = "Applications"

type Client struct {
	sheets *sheets.Service
	drive  *drive.Service
	log    *zap.Logger

	// Spreadsheet display name used for lookup/creation.
	name string

	mu            sync.Mutex
	spreadsheetID string
	sheetID       int64
	sheetIDKnown  bool
}

// NewClient builds the Sheets and Drive services on top of an already
// authorized HTTP client (see internal/auth).
func NewClient(ctx context.Context, httpClient *http.Client, spreadsheetName string, log *zap.Logger) (*Client, error) {
	sheetsSvc, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	driveSvc, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Client{
		sheets: sheetsSvc,
		drive:  driveSvc,
		log:    log,
		name:   spreadsheetName,
	}, nil
}

// Resolve locates the spreadsheet by name, creating it with the header
// row when the search fails or finds nothing. The resolved identifier is
// cached for the lifetime of this client (one session), never persisted.
func (c *Client) Resolve(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveLocked(ctx)
}

func (c *Client) resolveLocked(ctx context.Context) (string, error) {
	if c.spreadsheetID != "" {
		return c.spreadsheetID, nil
	}

	query := fmt.Sprintf(
		"name = '%s' and mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false",
		c.name,
	)
	list, err := c.drive.Files.List().Q(query).Fields("files(id, name)").PageSize(1).Context(ctx).Do()
	if err == nil && len(list.Files) > 0 {
		c.spreadsheetID = list.Files[0].Id
		c.log.Info("resolved existing spreadsheet", zap.String("spreadsheet_id", c.spreadsheetID))
		return c.spreadsheetID, nil
	}
	if err != nil {
		c.log.Warn("spreadsheet search failed, attempting creation", zap.Error(err))
	}

	ss, err := c.sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: c.name},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: tabName}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", apperr.Wrap(apperr.CodeServiceFailed, "create spreadsheet", err)
	}

	header := &sheets.ValueRange{Values: [][]interface{}{HeaderRow}}
	_, err = c.sheets.Spreadsheets.Values.
		Update(ss.SpreadsheetId, tabName+"!A1:K1", header).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return "", apperr.Wrap(apperr.CodeServiceFailed, "write header row", err)
	}

	c.spreadsheetID = ss.SpreadsheetId
	if len(ss.Sheets) > 0 && ss.Sheets[0].Properties != nil {
		c.sheetID = ss.Sheets[0].Properties.SheetId
		c.sheetIDKnown = true
	}
	c.log.Info("created spreadsheet", zap.String("spreadsheet_id", c.spreadsheetID))
	return c.spreadsheetID, nil
}

// FetchAll reads every data row and maps it back into records. A row
// that fails to decode is skipped with a diagnostic; the rest of the
// fetch still succeeds.
func (c *Client) FetchAll(ctx context.Context) ([]models.Record, error) {
	rows, err := c.fetchRows(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]models.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := DecodeRow(row)
		if err != nil {
			c.log.Warn("skipping undecodable row", zap.Int("row", i+2), zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// SaveOne appends a new record, or overwrites the row whose identifier
// matches. Updating a record with no matching row is a no-op: silently
// appending a duplicate would be worse than doing nothing.
func (c *Client) SaveOne(ctx context.Context, rec models.Record, isNew bool) error {
	id, err := c.Resolve(ctx)
	if err != nil {
		return err
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{EncodeRow(rec)}}

	if isNew {
		_, err := c.sheets.Spreadsheets.Values.
			Append(id, tabName+"!A:K", vr).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		if err != nil {
			return apperr.Wrap(apperr.CodeServiceFailed, "append row", err)
		}
		return nil
	}

	rows, err := c.fetchRows(ctx)
	if err != nil {
		return err
	}
	idx := FindRowIndex(rows, rec.ID)
	if idx < 0 {
		c.log.Debug("update target row not found, skipping", zap.String("record_id", rec.ID))
		return nil
	}

	rowNum := idx + 2 // 1-based, after the header
	rng := fmt.Sprintf("%s!A%d:K%d", tabName, rowNum, rowNum)
	_, err = c.sheets.Spreadsheets.Values.
		Update(id, rng, vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return apperr.Wrap(apperr.CodeServiceFailed, "update row", err)
	}
	return nil
}

// DeleteOne removes the row whose identifier matches, or does nothing
// when it is absent (it may already be gone).
func (c *Client) DeleteOne(ctx context.Context, recordID string) error {
	id, err := c.Resolve(ctx)
	if err != nil {
		return err
	}

	rows, err := c.fetchRows(ctx)
	if err != nil {
		return err
	}
	idx := FindRowIndex(rows, recordID)
	if idx < 0 {
		c.log.Debug("delete target row not found, skipping", zap.String("record_id", recordID))
		return nil
	}

	gid, err := c.tabSheetID(ctx, id)
	if err != nil {
		return err
	}

	// Grid rows are zero-based and include the header.
	_, err = c.sheets.Spreadsheets.BatchUpdate(id, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    gid,
					Dimension:  "ROWS",
					StartIndex: int64(idx) + 1,
					EndIndex:   int64(idx) + 2,
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return apperr.Wrap(apperr.CodeServiceFailed, "delete row", err)
	}
	return nil
}

func (c *Client) fetchRows(ctx context.Context) ([][]interface{}, error) {
	id, err := c.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	resp, err := c.sheets.Spreadsheets.Values.
		Get(id, tabName+"!A2:K").
		Context(ctx).Do()
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeServiceFailed, "fetch rows", err)
	}
	return resp.Values, nil
}

func (c *Client) tabSheetID(ctx context.Context, spreadsheetID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sheetIDKnown {
		return c.sheetID, nil
	}

	ss, err := c.sheets.Spreadsheets.Get(spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, apperr.Wrap(apperr.CodeServiceFailed, "lookup sheet id", err)
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == tabName {
			c.sheetID = sh.Properties.SheetId
			c.sheetIDKnown = true
			return c.sheetID, nil
		}
	}
	// Fall back to the first sheet when the tab was renamed by hand.
	if len(ss.Sheets) > 0 && ss.Sheets[0].Properties != nil {
		c.sheetID = ss.Sheets[0].Properties.SheetId
		c.sheetIDKnown = true
		return c.sheetID, nil
	}
	return 0, apperr.New(apperr.CodeServiceFailed, "spreadsheet has no sheets")
}
