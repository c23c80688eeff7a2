package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var (
	ErrNoCredentials = errors.New("google credentials are not configured")
	ErrNotAuthorized = errors.New("google write access requires oauth authorization")
)

const (
	exportSheetTitle  = "Placements"
	screenshotWidthPt = 450.0
)

// DocketContent is the material laid out in a docket document.
type DocketContent struct {
	Title           string
	URL             string
	Source          string
	PublicationDate string
	MediaType       string
	Notes           string
	Summary         string
	ScreenshotURL   string
}

// Client talks to the Docs and Sheets APIs with whatever credential is stored.
type Client struct {
	creds    storage.CredentialStore
	oauth    *OAuth
	extraOps []option.ClientOption
}

type ClientOption func(*Client)

// WithServiceOptions appends options to every Docs / Sheets service the client builds.
func WithServiceOptions(opts ...option.ClientOption) ClientOption {
	return func(c *Client) {
		c.extraOps = append(c.extraOps, opts...)
	}
}

func NewClient(creds storage.CredentialStore, oauth *OAuth, opts ...ClientOption) *Client {
	c := &Client{creds: creds, oauth: oauth}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// serviceOptions prefers the API key for reads. Writes always need OAuth.
func (c *Client) serviceOptions(ctx context.Context, write bool) ([]option.ClientOption, error) {
	cred, err := c.creds.GetGoogleCredential(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNoCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load google credential: %w", err)
	}

	var opts []option.ClientOption
	switch {
	case !write && cred.HasAPIKey():
		opts = append(opts, option.WithAPIKey(cred.APIKey))
	case cred.HasOAuth() && c.oauth != nil:
		ts, err := c.oauth.TokenSource(ctx, cred)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithTokenSource(ts))
	case write:
		return nil, ErrNotAuthorized
	default:
		return nil, ErrNoCredentials
	}
	return append(opts, c.extraOps...), nil
}

func (c *Client) docs(ctx context.Context, write bool) (*docs.Service, error) {
	opts, err := c.serviceOptions(ctx, write)
	if err != nil {
		return nil, err
	}
	srv, err := docs.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docs service: %w", err)
	}
	return srv, nil
}

func (c *Client) sheets(ctx context.Context, write bool) (*sheets.Service, error) {
	opts, err := c.serviceOptions(ctx, write)
	if err != nil {
		return nil, err
	}
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return srv, nil
}

func (c *Client) DocumentText(ctx context.Context, documentID string) (string, error) {
	srv, err := c.docs(ctx, false)
	if err != nil {
		return "", err
	}
	doc, err := srv.Documents.Get(documentID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	return DocumentText(doc), nil
}

func (c *Client) SpreadsheetText(ctx context.Context, spreadsheetID string) (string, error) {
	srv, err := c.sheets(ctx, false)
	if err != nil {
		return "", err
	}
	ss, err := srv.Spreadsheets.Get(spreadsheetID).IncludeGridData(true).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}
	return SpreadsheetText(ss), nil
}

// CreateDocket creates a document for one placement and returns its edit URL.
func (c *Client) CreateDocket(ctx context.Context, content DocketContent) (string, error) {
	srv, err := c.docs(ctx, true)
	if err != nil {
		return "", err
	}

	doc, err := srv.Documents.Create(&docs.Document{Title: docketTitle(content)}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create docket document: %w", err)
	}

	req := &docs.BatchUpdateDocumentRequest{Requests: docketRequests(content)}
	if _, err := srv.Documents.BatchUpdate(doc.DocumentId, req).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to write docket document %s: %w", doc.DocumentId, err)
	}

	slog.Info("Created docket document", "document_id", doc.DocumentId, "url", content.URL)
	return DocumentURL(doc.DocumentId), nil
}

// ExportSheet creates a spreadsheet holding rows and returns its URL.
func (c *Client) ExportSheet(ctx context.Context, title string, rows [][]string) (string, error) {
	srv, err := c.sheets(ctx, true)
	if err != nil {
		return "", err
	}

	ss, err := srv.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{Title: exportSheetTitle}},
		},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}

	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = make([]interface{}, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}
	_, err = srv.Spreadsheets.Values.
		Update(ss.SpreadsheetId, exportSheetTitle+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to write spreadsheet %s: %w", ss.SpreadsheetId, err)
	}

	slog.Info("Exported placements to google sheet", "spreadsheet_id", ss.SpreadsheetId, "rows", len(rows))
	if ss.SpreadsheetUrl != "" {
		return ss.SpreadsheetUrl, nil
	}
	return SpreadsheetURL(ss.SpreadsheetId), nil
}

func docketTitle(content DocketContent) string {
	if content.Title != "" {
		return "Docket: " + content.Title
	}
	return "Docket: " + content.URL
}

// docketBody renders the text part of a docket.
func docketBody(content DocketContent) string {
	var b strings.Builder
	b.WriteString(orDefault(content.Title, content.URL))
	b.WriteString("\n\n")
	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(label)
		b.WriteString(": ")
		b.WriteString(value)
		b.WriteString("\n")
	}
	field("URL", content.URL)
	field("Source", content.Source)
	field("Publication Date", content.PublicationDate)
	field("Media Type", content.MediaType)
	field("Notes", content.Notes)
	if content.Summary != "" {
		b.WriteString("\nSummary\n")
		b.WriteString(content.Summary)
		b.WriteString("\n")
	}
	return b.String()
}

// docketRequests inserts the text first and appends the screenshot after it.
func docketRequests(content DocketContent) []*docs.Request {
	reqs := []*docs.Request{
		{
			InsertText: &docs.InsertTextRequest{
				Text:     docketBody(content),
				Location: &docs.Location{Index: 1},
			},
		},
	}
	if content.ScreenshotURL != "" {
		reqs = append(reqs, &docs.Request{
			InsertInlineImage: &docs.InsertInlineImageRequest{
				Uri:                  content.ScreenshotURL,
				EndOfSegmentLocation: &docs.EndOfSegmentLocation{},
				ObjectSize: &docs.Size{
					Width: &docs.Dimension{Magnitude: screenshotWidthPt, Unit: "PT"},
				},
			},
		})
	}
	return reqs
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
