package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(h)
	t.Cleanup(server.Close)

	c, err := NewClient(context.Background(), "test-token", 5*time.Second, server.URL)
	require.NoError(t, err)
	return c
}

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(context.Background(), "tok", 0, "")
	require.NoError(t, err)
	assert.Equal(t, "https://sheets.googleapis.com/", c.svc.BasePath)
}

func TestGet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/v4/spreadsheets/sheet-id/values/Sheet1", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{
			"range":          "Sheet1!A1:K3",
			"majorDimension": "ROWS",
			"values": []any{
				[]any{"datetime", "rr"},
				[]any{"2024-01-02T10:00:00", 3.5},
				[]any{"2024-01-03T10:00:00", true},
			},
		})
	})

	rows, err := c.Get(context.Background(), "sheet-id", "Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"datetime", "rr"},
		{"2024-01-02T10:00:00", "3.5"},
		{"2024-01-03T10:00:00", "true"},
	}, rows)
}

func TestAppend(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v4/spreadsheets/sheet-id/values/Sheet1!A1:append", r.URL.Path)
		assert.Equal(t, "RAW", r.URL.Query().Get("valueInputOption"))
		assert.Equal(t, "INSERT_ROWS", r.URL.Query().Get("insertDataOption"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body ValueRange
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, [][]string{{"a", "b"}}, body.Values)

		json.NewEncoder(w).Encode(AppendResult{
			SpreadsheetID: "sheet-id",
			TableRange:    "Sheet1!A1:K4",
			Updates:       UpdateResult{UpdatedRange: "Sheet1!A5:K5", UpdatedRows: 1, UpdatedCells: 2},
		})
	})

	res, err := c.Append(context.Background(), "sheet-id", "Sheet1!A1", [][]string{{"a", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "Sheet1!A5:K5", res.Updates.UpdatedRange)
	assert.Equal(t, 1, res.Updates.UpdatedRows)
	assert.Equal(t, "Sheet1!A1:K4", res.TableRange)
}

func TestUpdateBatchUpdateAndClear(t *testing.T) {
	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.URL.Path == "/v4/spreadsheets/sheet-id/values:batchUpdate" {
			var body struct {
				ValueInputOption string       `json:"valueInputOption"`
				Data             []ValueRange `json:"data"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "RAW", body.ValueInputOption)
			assert.Len(t, body.Data, 2)
		}
		w.Write([]byte(`{}`))
	})

	ctx := context.Background()
	require.NoError(t, c.Update(ctx, "sheet-id", "Sheet1!A1", [][]string{{"h"}}))
	require.NoError(t, c.BatchUpdate(ctx, "sheet-id", []ValueRange{
		{Range: "Sheet1!J2", Values: [][]string{{"Yes"}}},
		{Range: "Sheet1!K2", Values: [][]string{{"Win"}}},
	}))
	require.NoError(t, c.Clear(ctx, "sheet-id", "Sheet1"))

	assert.Equal(t, []string{
		"PUT /v4/spreadsheets/sheet-id/values/Sheet1!A1",
		"POST /v4/spreadsheets/sheet-id/values:batchUpdate",
		"POST /v4/spreadsheets/sheet-id/values/Sheet1:clear",
	}, calls)
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"code":503,"message":"backend down"}}`))
	})

	_, err := c.Get(context.Background(), "sheet-id", "Sheet1")
	require.Error(t, err)

	var apiErr *googleapi.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.Code)
	assert.Equal(t, "backend down", apiErr.Message)
	assert.True(t, Temporary(err))
	assert.False(t, Temporary(&googleapi.Error{Code: http.StatusForbidden}))
	assert.False(t, Temporary(errors.New("dial tcp: refused")))
}

func TestA1Helpers(t *testing.T) {
	assert.Equal(t, "Sheet1", Quote("Sheet1"))
	assert.Equal(t, "'Trade log'", Quote("Trade log"))
	assert.Equal(t, "'Romu''s'", Quote("Romu's"))
	assert.Equal(t, "'Trade log'!A1", Range("Trade log", "A1"))

	assert.Equal(t, "A", ColumnLetter(0))
	assert.Equal(t, "K", ColumnLetter(10))
	assert.Equal(t, "Z", ColumnLetter(25))
	assert.Equal(t, "AA", ColumnLetter(26))
	assert.Equal(t, "AZ", ColumnLetter(51))

	for in, want := range map[string]int{
		"Sheet1!A5:K5":     5,
		"'Trade log'!A12":  12,
		"Sheet1!$A$7:$K$7": 7,
		"B3":               3,
	} {
		got, err := StartRow(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := StartRow("Sheet1!A:K")
	assert.Error(t, err)
}
