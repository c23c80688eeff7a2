package router

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/media-placements/internal/apperr"
	"github.com/DjordjeVuckovic/media-placements/internal/docket"
	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/export"
	"github.com/DjordjeVuckovic/media-placements/internal/google"
	"github.com/DjordjeVuckovic/media-placements/internal/ingest"
	"github.com/DjordjeVuckovic/media-placements/internal/source"
	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"github.com/DjordjeVuckovic/media-placements/pkg/pagination"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	maxUploadBytes = 10 << 20
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const (
	InputDirect = "direct"
	InputGDoc   = "gdoc"
	InputGSheet = "gsheet"
)

type GoogleReader interface {
	source.DocumentReader
	source.SpreadsheetReader
}

type SheetExporter interface {
	ExportSheet(ctx context.Context, title string, rows [][]string) (string, error)
}

type DocketBuilder interface {
	Build(ctx context.Context, id uuid.UUID) (*docket.Result, error)
}

type IngestRequest struct {
	InputType     string `json:"input_type" example:"direct" enums:"direct,gdoc,gsheet"`
	Text          string `json:"text" example:"Coverage: https://example.com/news/launch"`
	GoogleDocID   string `json:"google_doc_id,omitempty"`
	GoogleSheetID string `json:"google_sheet_id,omitempty"`
}

type IngestResponse struct {
	Added      int                `json:"added"`
	Placements []domain.Placement `json:"placements"`
	Warnings   []ingest.Warning   `json:"warnings"`
}

type SheetExportRequest struct {
	Title string `json:"title,omitempty" example:"Media placements"`
}

type SheetExportResponse struct {
	URL  string `json:"url"`
	Rows int    `json:"rows"`
}

type PlacementRouter struct {
	e       *echo.Echo
	ingest  *ingest.Service
	store   storage.PlacementStore
	index   storage.Index
	google  GoogleReader
	sheets  SheetExporter
	dockets DocketBuilder
	nowFunc func() time.Time
}

type PlacementRouterOption func(*PlacementRouter)

// WithGoogle enables Google Doc / Sheet input and the Google Sheet export.
func WithGoogle(r GoogleReader, s SheetExporter) PlacementRouterOption {
	return func(pr *PlacementRouter) {
		pr.google = r
		pr.sheets = s
	}
}

func WithDocketBuilder(b DocketBuilder) PlacementRouterOption {
	return func(pr *PlacementRouter) {
		pr.dockets = b
	}
}

func NewPlacementRouter(
	e *echo.Echo,
	svc *ingest.Service,
	store storage.PlacementStore,
	index storage.Index,
	opts ...PlacementRouterOption,
) *PlacementRouter {
	r := &PlacementRouter{
		e:       e,
		ingest:  svc,
		store:   store,
		index:   index,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *PlacementRouter) Bind() {
	g := r.e.Group("/api/placements")
	g.POST("/ingest", r.ingestHandler)
	g.POST("/import", r.importHandler)
	g.GET("", r.listHandler)
	g.GET("/search", r.searchHandler)
	g.GET("/export.xlsx", r.exportXLSXHandler)
	g.POST("/export/google-sheet", r.exportSheetHandler)
	g.GET("/:id", r.getHandler)
	g.PUT("/:id", r.updateHandler)
	g.DELETE("/:id", r.deleteHandler)
	g.POST("/:id/docket", r.docketHandler)
}

// ingestHandler extracts placements from pasted text or a Google document.
//
//	@Summary		Ingest placements
//	@Description	Extracts every link from the input, fetches metadata and stores the placements
//	@Tags			placements
//	@Accept			json
//	@Produce		json
//	@Param			request	body		IngestRequest	true	"Input"
//	@Success		201		{object}	IngestResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/api/placements/ingest [post]
func (r *PlacementRouter) ingestHandler(c echo.Context) error {
	var req IngestRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	src, err := r.sourceFor(req)
	if err != nil {
		return err
	}
	return r.runIngest(c, src)
}

func (r *PlacementRouter) sourceFor(req IngestRequest) (source.Source, error) {
	switch strings.ToLower(strings.TrimSpace(req.InputType)) {
	case "", InputDirect:
		return source.Direct(req.Text), nil
	case InputGDoc:
		if r.google == nil {
			return nil, apperr.NewValidation("google integration is not configured")
		}
		id, err := google.ParseDocumentID(req.GoogleDocID)
		if err != nil {
			return nil, apperr.NewValidationWrap("please provide a Google Doc ID or URL", err)
		}
		return source.GoogleDoc(r.google, id), nil
	case InputGSheet:
		if r.google == nil {
			return nil, apperr.NewValidation("google integration is not configured")
		}
		id, err := google.ParseDocumentID(req.GoogleSheetID)
		if err != nil {
			return nil, apperr.NewValidationWrap("please provide a Google Sheet ID or URL", err)
		}
		return source.GoogleSheet(r.google, id), nil
	default:
		return nil, apperr.NewValidation(fmt.Sprintf("unknown input_type %q", req.InputType))
	}
}

// importHandler ingests the links found in an uploaded CSV, XLSX or text file.
//
//	@Summary	Import placements from a file
//	@Tags		placements
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file	formData	file	true	"CSV, XLSX or text file"
//	@Success	201		{object}	IngestResponse
//	@Failure	400		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Router		/api/placements/import [post]
func (r *PlacementRouter) importHandler(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return apperr.NewValidationWrap("file is required", err)
	}
	if fh.Size > maxUploadBytes {
		return apperr.NewValidation(fmt.Sprintf("file exceeds %d bytes", maxUploadBytes))
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	src, err := source.FromUpload(fh.Filename, f)
	if err != nil {
		return apperr.NewValidationWrap("unsupported upload", err)
	}
	return r.runIngest(c, src)
}

func (r *PlacementRouter) runIngest(c echo.Context, src source.Source) error {
	report, err := r.ingest.Ingest(c.Request().Context(), src)
	if err != nil {
		return mapError(err, "")
	}
	if report.Outcome != ingest.OutcomeReady {
		return apperr.NewUnprocessable(report.Outcome.Message())
	}

	return c.JSON(http.StatusCreated, IngestResponse{
		Added:      len(report.Placements),
		Placements: report.Placements,
		Warnings:   report.Warnings,
	})
}

// listHandler returns stored placements, newest first.
//
//	@Summary	List placements
//	@Tags		placements
//	@Produce	json
//	@Param		page	query		int	false	"Page number"	default(1)
//	@Param		size	query		int	false	"Page size"		default(20)
//	@Success	200		{object}	pagination.OffsetResult[domain.Placement]
//	@Router		/api/placements [get]
func (r *PlacementRouter) listHandler(c echo.Context) error {
	req, err := bindPage(c)
	if err != nil {
		return err
	}

	page, err := r.store.List(c.Request().Context(), req.Page, req.Size)
	if err != nil {
		return fmt.Errorf("failed to list placements: %w", err)
	}
	return c.JSON(http.StatusOK, pagination.NewOffsetResult(page.Items, page.Total, req.Page, req.Size))
}

// searchHandler runs a free-text query over title, source and url.
//
//	@Summary	Search placements
//	@Tags		placements
//	@Produce	json
//	@Param		q		query		string	true	"Query"
//	@Param		page	query		int		false	"Page number"	default(1)
//	@Param		size	query		int		false	"Page size"		default(20)
//	@Success	200		{object}	pagination.OffsetResult[domain.Placement]
//	@Failure	400		{object}	ErrorResponse
//	@Router		/api/placements/search [get]
func (r *PlacementRouter) searchHandler(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return apperr.NewValidation("q parameter is required")
	}
	req, err := bindPage(c)
	if err != nil {
		return err
	}

	page, err := r.index.Search(c.Request().Context(), q, req.Page, req.Size)
	if err != nil {
		return fmt.Errorf("failed to search placements: %w", err)
	}
	return c.JSON(http.StatusOK, pagination.NewOffsetResult(page.Items, page.Total, req.Page, req.Size))
}

//	@Summary	Get a placement
//	@Tags		placements
//	@Produce	json
//	@Param		id	path		string	true	"Placement ID"
//	@Success	200	{object}	domain.Placement
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/placements/{id} [get]
func (r *PlacementRouter) getHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	p, err := r.store.Get(c.Request().Context(), id)
	if err != nil {
		return mapError(err, id.String())
	}
	return c.JSON(http.StatusOK, p)
}

//	@Summary	Edit a placement
//	@Tags		placements
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Placement ID"
//	@Param		request	body		domain.PlacementUpdate	true	"Fields to change"
//	@Success	200		{object}	domain.Placement
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Router		/api/placements/{id} [put]
func (r *PlacementRouter) updateHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var upd domain.PlacementUpdate
	if err := c.Bind(&upd); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}

	ctx := c.Request().Context()
	p, err := r.store.Get(ctx, id)
	if err != nil {
		return mapError(err, id.String())
	}
	if err := upd.Apply(p); err != nil {
		return apperr.NewValidationWrap("invalid placement", err)
	}
	p.UpdatedAt = r.nowFunc().UTC()

	if err := r.store.Update(ctx, *p); err != nil {
		return mapError(err, id.String())
	}
	if err := r.index.Index(ctx, []domain.Placement{*p}); err != nil {
		slog.Error("Failed to reindex placement", "id", id, "error", err)
	}
	return c.JSON(http.StatusOK, p)
}

//	@Summary	Delete a placement
//	@Tags		placements
//	@Param		id	path	string	true	"Placement ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/placements/{id} [delete]
func (r *PlacementRouter) deleteHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := r.store.Delete(ctx, id); err != nil {
		return mapError(err, id.String())
	}
	if err := r.index.Remove(ctx, id); err != nil {
		slog.Error("Failed to remove placement from index", "id", id, "error", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// docketHandler builds a Google Doc docket for the placement.
//
//	@Summary	Create a docket
//	@Tags		placements
//	@Produce	json
//	@Param		id	path		string	true	"Placement ID"
//	@Success	201	{object}	docket.Result
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/placements/{id}/docket [post]
func (r *PlacementRouter) docketHandler(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if r.dockets == nil {
		return apperr.NewValidation("docket creation is not configured")
	}
	res, err := r.dockets.Build(c.Request().Context(), id)
	if err != nil {
		return mapError(err, id.String())
	}
	return c.JSON(http.StatusCreated, res)
}

//	@Summary	Export placements as xlsx
//	@Tags		export
//	@Produce	application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
//	@Success	200	{file}	file
//	@Router		/api/placements/export.xlsx [get]
func (r *PlacementRouter) exportXLSXHandler(c echo.Context) error {
	ps, err := r.store.All(c.Request().Context())
	if err != nil {
		return fmt.Errorf("failed to load placements: %w", err)
	}

	name := fmt.Sprintf("media_placements_%s.xlsx", r.nowFunc().UTC().Format("20060102"))
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, xlsxMIME)
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	res.WriteHeader(http.StatusOK)
	if err := export.WriteXLSX(res, ps); err != nil {
		slog.Error("Failed to stream xlsx export", "error", err)
	}
	return nil
}

//	@Summary	Export placements to a new Google Sheet
//	@Tags		export
//	@Accept		json
//	@Produce	json
//	@Param		request	body		SheetExportRequest	false	"Sheet title"
//	@Success	201		{object}	SheetExportResponse
//	@Failure	400		{object}	ErrorResponse
//	@Router		/api/placements/export/google-sheet [post]
func (r *PlacementRouter) exportSheetHandler(c echo.Context) error {
	if r.sheets == nil {
		return apperr.NewValidation("google integration is not configured")
	}
	var req SheetExportRequest
	if err := c.Bind(&req); err != nil {
		return apperr.NewValidationWrap("invalid request body", err)
	}
	if strings.TrimSpace(req.Title) == "" {
		req.Title = "Media placements " + r.nowFunc().UTC().Format(domain.DateLayout)
	}

	ctx := c.Request().Context()
	ps, err := r.store.All(ctx)
	if err != nil {
		return fmt.Errorf("failed to load placements: %w", err)
	}
	rows := export.Rows(ps)
	url, err := r.sheets.ExportSheet(ctx, req.Title, rows)
	if err != nil {
		return mapError(err, "")
	}
	return c.JSON(http.StatusCreated, SheetExportResponse{URL: url, Rows: len(rows) - 1})
}

func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperr.NewValidationWrap("invalid placement id", err)
	}
	return id, nil
}

func bindPage(c echo.Context) (pagination.OffsetRequest, error) {
	var req pagination.OffsetRequest
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return req, apperr.NewValidationWrap("invalid pagination parameters", err)
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return req, apperr.NewValidationWrap("invalid pagination parameters", err)
	}
	return req, nil
}
