// Package sheets wraps the Google Sheets v4 values API for the journal.
// Authentication is the caller's concern: the client sends a ready bearer
// token with every request.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// RAW stores values exactly as sent, so dates and numbers stay plain text.
const valueInputOption = "RAW"

// Client talks to one Sheets API endpoint.
type Client struct {
	svc *gsheets.Service
}

// NewClient creates a client authenticated with token. A zero timeout
// means 30 seconds; an empty endpoint means the public API.
func NewClient(ctx context.Context, token string, timeout time.Duration, endpoint string) (*Client, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	hc.Timeout = timeout

	opts := []option.ClientOption{option.WithHTTPClient(hc)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimRight(endpoint, "/")+"/"))
	}
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ValueRange is a block of cells addressed in A1 notation.
type ValueRange struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

// UpdateResult describes the cells written by an append.
type UpdateResult struct {
	SpreadsheetID string `json:"spreadsheetId"`
	UpdatedRange  string `json:"updatedRange"`
	UpdatedRows   int    `json:"updatedRows"`
	UpdatedCells  int    `json:"updatedCells"`
}

// AppendResult is the response of values.append.
type AppendResult struct {
	SpreadsheetID string       `json:"spreadsheetId"`
	TableRange    string       `json:"tableRange"`
	Updates       UpdateResult `json:"updates"`
}

// Temporary reports whether err is an API answer for which retrying the
// same call may succeed.
func Temporary(err error) bool {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return false
	}
	return gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500
}

// Get returns the cells of rng as strings, row by row. Trailing empty rows
// and cells are omitted by the API.
func (c *Client) Get(ctx context.Context, spreadsheetID, rng string) ([][]string, error) {
	vr, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	out := make([][]string, len(vr.Values))
	for i, row := range vr.Values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		out[i] = cells
	}
	return out, nil
}

// Append adds rows after the last row of the table found at rng.
func (c *Client) Append(ctx context.Context, spreadsheetID, rng string, rows [][]string) (AppendResult, error) {
	resp, err := c.svc.Spreadsheets.Values.
		Append(spreadsheetID, rng, toValueRange(rng, rows)).
		ValueInputOption(valueInputOption).
		InsertDataOption("INSERT_ROWS").
		IncludeValuesInResponse(false).
		Context(ctx).
		Do()
	if err != nil {
		return AppendResult{}, err
	}

	res := AppendResult{SpreadsheetID: resp.SpreadsheetId, TableRange: resp.TableRange}
	if u := resp.Updates; u != nil {
		res.Updates = UpdateResult{
			SpreadsheetID: u.SpreadsheetId,
			UpdatedRange:  u.UpdatedRange,
			UpdatedRows:   int(u.UpdatedRows),
			UpdatedCells:  int(u.UpdatedCells),
		}
	}
	return res, nil
}

// Update overwrites the cells at rng.
func (c *Client) Update(ctx context.Context, spreadsheetID, rng string, rows [][]string) error {
	_, err := c.svc.Spreadsheets.Values.
		Update(spreadsheetID, rng, toValueRange(rng, rows)).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	return err
}

// BatchUpdate writes several ranges in one request.
func (c *Client) BatchUpdate(ctx context.Context, spreadsheetID string, data []ValueRange) error {
	req := &gsheets.BatchUpdateValuesRequest{ValueInputOption: valueInputOption}
	for _, d := range data {
		req.Data = append(req.Data, toValueRange(d.Range, d.Values))
	}
	_, err := c.svc.Spreadsheets.Values.BatchUpdate(spreadsheetID, req).Context(ctx).Do()
	return err
}

// Clear empties every cell of rng, keeping formatting.
func (c *Client) Clear(ctx context.Context, spreadsheetID, rng string) error {
	_, err := c.svc.Spreadsheets.Values.
		Clear(spreadsheetID, rng, &gsheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	return err
}

func toValueRange(rng string, rows [][]string) *gsheets.ValueRange {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		values[i] = cells
	}
	return &gsheets.ValueRange{Range: rng, Values: values}
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return fmt.Sprint(v)
}
