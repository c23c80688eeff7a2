package pg

import (
	"fmt"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/jackc/pgx/v5"
)

const placementColumns = `id, url, title, source, publication_date, media_type, notes, docket_url, created_at, updated_at`

func scanPlacement(row pgx.Row) (*domain.Placement, error) {
	var (
		p         domain.Placement
		mediaType string
	)
	if err := row.Scan(
		&p.ID,
		&p.URL,
		&p.Title,
		&p.Source,
		&p.PublicationDate,
		&mediaType,
		&p.Notes,
		&p.DocketURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.MediaType = domain.MediaType(mediaType)
	return &p, nil
}

func collectPlacements(rows pgx.Rows) ([]domain.Placement, error) {
	defer rows.Close()

	items := make([]domain.Placement, 0)
	for rows.Next() {
		p, err := scanPlacement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan placement: %w", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return items, nil
}
