package sheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/pulseai-health/hospital-directory/pkg/config"
)

// Client wraps the Google Sheets API for a single spreadsheet
type Client struct {
	service       *sheetsapi.Service
	spreadsheetID string
}

// NewClient creates a new Sheets client. Credentials resolve in order:
// inline JSON, credentials file, then Application Default Credentials.
func NewClient(ctx context.Context, cfg *config.SheetsConfig) (*Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		// Parse inline credentials up front so a malformed service
		// account key fails here, not on the first API call.
		creds, err := google.CredentialsFromJSON(ctx, []byte(cfg.CredentialsJSON), sheetsapi.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("invalid sheets credentials JSON: %w", err)
		}
		opts = append(opts, option.WithTokenSource(creds.TokenSource))
	} else if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}
	opts = append(opts, option.WithScopes(sheetsapi.SpreadsheetsScope))

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
	}, nil
}

// ReadRange returns the rows in the given A1-notation range
func (c *Client) ReadRange(ctx context.Context, readRange string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, readRange).
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", readRange, err)
	}
	return resp.Values, nil
}

// AppendRow appends a single row after the last row of the given range
func (c *Client) AppendRow(ctx context.Context, appendRange string, row []interface{}) error {
	body := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err := c.service.Spreadsheets.Values.Append(c.spreadsheetID, appendRange, body).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append row to %s: %w", appendRange, err)
	}
	return nil
}

// UpdateCell overwrites a single cell identified by its A1-notation range
func (c *Client) UpdateCell(ctx context.Context, cellRange string, value interface{}) error {
	body := &sheetsapi.ValueRange{Values: [][]interface{}{{value}}}
	_, err := c.service.Spreadsheets.Values.Update(c.spreadsheetID, cellRange, body).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update cell %s: %w", cellRange, err)
	}
	return nil
}

// Ping verifies the spreadsheet is reachable
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.service.Spreadsheets.Get(c.spreadsheetID).
		Fields("spreadsheetId").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to reach spreadsheet: %w", err)
	}
	return nil
}
