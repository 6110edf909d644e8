package sheetsync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Config holds the service-account credential pair and the target document.
type Config struct {
	SpreadsheetID string
	ClientEmail   string
	PrivateKey    string
}

// ConfigFromEnv reads the sheet credentials from the environment. Missing
// values are a fatal configuration error: the pipeline must not start.
func ConfigFromEnv() (Config, error) {
	cfg := Config{
		SpreadsheetID: os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID"),
		ClientEmail:   os.Getenv("GOOGLE_SHEETS_CLIENT_EMAIL"),
		PrivateKey:    os.Getenv("GOOGLE_SHEETS_PRIVATE_KEY"),
	}
	if cfg.SpreadsheetID == "" || cfg.ClientEmail == "" || cfg.PrivateKey == "" {
		return Config{}, errors.New("google sheets credentials not configured (GOOGLE_SHEETS_SPREADSHEET_ID, GOOGLE_SHEETS_CLIENT_EMAIL, GOOGLE_SHEETS_PRIVATE_KEY)")
	}
	return cfg, nil
}

// Client wraps the Sheets API for one spreadsheet document.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewClient builds a Sheets client from a service-account email + private
// key pair. The key may carry literal \n sequences from env files.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	jwtCfg := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(strings.ReplaceAll(cfg.PrivateKey, `\n`, "\n")),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwtCfg.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// EnsureSheet creates the tab if needed. Creation failing because the tab
// already exists is swallowed so the call is idempotent.
func (c *Client) EnsureSheet(ctx context.Context, title string) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: title},
				},
			},
		},
	}
	_, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil && strings.Contains(err.Error(), "already exists") {
		return nil
	}
	return err
}

// ClearSheet wipes every cell value in the tab.
func (c *Client) ClearSheet(ctx context.Context, title string) error {
	rangeStr := fmt.Sprintf("'%s'!A:Z", title)
	_, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rangeStr, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// UpdateRange writes a value block starting at the given A1 range.
func (c *Client) UpdateRange(ctx context.Context, rangeA1 string, values [][]interface{}) error {
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rangeA1, &sheets.ValueRange{Values: values}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return err
}

// AppendRow appends a single row after the tab's current data region.
func (c *Client) AppendRow(ctx context.Context, title string, row []interface{}) error {
	rangeStr := fmt.Sprintf("'%s'!A:L", title)
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rangeStr, &sheets.ValueRange{Values: [][]interface{}{row}}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

// SheetID resolves a tab title to its numeric sheet id.
func (c *Client) SheetID(ctx context.Context, title string) (int64, error) {
	doc, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to access spreadsheet %s: %w", c.spreadsheetID, err)
	}
	for _, sh := range doc.Sheets {
		if sh.Properties.Title == title {
			return sh.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found", title)
}

// FormatHeader bolds the header row and freezes it.
func (c *Client) FormatHeader(ctx context.Context, title string) error {
	sheetID, err := c.SheetID(ctx, title)
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:       sheetID,
						StartRowIndex: 0,
						EndRowIndex:   1,
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							TextFormat: &sheets.TextFormat{Bold: true},
						},
					},
					Fields: "userEnteredFormat.textFormat",
				},
			},
			{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId: sheetID,
						GridProperties: &sheets.GridProperties{
							FrozenRowCount: 1,
						},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
		},
	}
	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	return err
}
