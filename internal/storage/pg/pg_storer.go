package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Storer struct {
	db *pgxpool.Pool
}

func NewStorer(pool *ConnectionPool) (*Storer, error) {
	if pool == nil {
		return nil, fmt.Errorf("connection pool is nil")
	}
	return &Storer{db: pool.conn}, nil
}

func prepare(p *domain.Placement, now time.Time) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	p.Normalize()
}

func (s *Storer) Save(ctx context.Context, p domain.Placement) (uuid.UUID, error) {
	prepare(&p, time.Now().UTC())

	cmd := `
		INSERT INTO media_placements (` + placementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;
	`
	var id uuid.UUID
	err := s.db.QueryRow(ctx, cmd,
		p.ID,
		p.URL,
		p.Title,
		p.Source,
		p.PublicationDate,
		string(p.MediaType),
		p.Notes,
		p.DocketURL,
		p.CreatedAt,
		p.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert placement: %w", err)
	}
	return id, nil
}

// SaveBulk copies all placements inside one transaction. Generated IDs and
// timestamps are written back into ps.
func (s *Storer) SaveBulk(ctx context.Context, ps []domain.Placement) error {
	if len(ps) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([][]any, len(ps))
	for i := range ps {
		prepare(&ps[i], now)
		p := ps[i]
		rows[i] = []any{
			p.ID,
			p.URL,
			p.Title,
			p.Source,
			p.PublicationDate,
			string(p.MediaType),
			p.Notes,
			p.DocketURL,
			p.CreatedAt,
			p.UpdatedAt,
		}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("failed to rollback bulk insert", "error", err)
		}
	}()

	n, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"media_placements"},
		[]string{"id", "url", "title", "source", "publication_date", "media_type", "notes", "docket_url", "created_at", "updated_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert placements: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit bulk insert: %w", err)
	}

	slog.Info("Bulk inserted placements", "count", n)
	return nil
}

func (s *Storer) Get(ctx context.Context, id uuid.UUID) (*domain.Placement, error) {
	row := s.db.QueryRow(ctx, `SELECT `+placementColumns+` FROM media_placements WHERE id = $1`, id)
	p, err := scanPlacement(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get placement: %w", err)
	}
	return p, nil
}

func (s *Storer) List(ctx context.Context, page, size int) (*storage.Page, error) {
	req, err := storage.PageRequest(page, size)
	if err != nil {
		return nil, err
	}
	total, err := s.Count(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+placementColumns+`
		FROM media_placements
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`, req.Size, req.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list placements: %w", err)
	}
	items, err := collectPlacements(rows)
	if err != nil {
		return nil, err
	}
	return &storage.Page{Items: items, Total: total}, nil
}

func (s *Storer) All(ctx context.Context) ([]domain.Placement, error) {
	rows, err := s.db.Query(ctx, `SELECT `+placementColumns+` FROM media_placements ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query placements: %w", err)
	}
	return collectPlacements(rows)
}

func (s *Storer) Update(ctx context.Context, p domain.Placement) error {
	p.Normalize()
	tag, err := s.db.Exec(ctx, `
		UPDATE media_placements
		SET url = $2, title = $3, source = $4, publication_date = $5, media_type = $6,
		    notes = $7, docket_url = $8, updated_at = now()
		WHERE id = $1
	`, p.ID, p.URL, p.Title, p.Source, p.PublicationDate, string(p.MediaType), p.Notes, p.DocketURL)
	if err != nil {
		return fmt.Errorf("failed to update placement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Storer) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM media_placements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete placement: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Storer) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM media_placements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count placements: %w", err)
	}
	return n, nil
}
