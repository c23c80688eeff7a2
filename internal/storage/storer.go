package storage

import (
	"context"
	"errors"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/google/uuid"
)

// ErrNotFound is returned by stores when the requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Page is one page of placements together with the total number of matches.
type Page struct {
	Items []domain.Placement
	Total int64
}

type PlacementStore interface {
	Save(ctx context.Context, p domain.Placement) (uuid.UUID, error)
	// SaveBulk stores every placement or none of them.
	SaveBulk(ctx context.Context, ps []domain.Placement) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Placement, error)
	// List returns placements newest first. Page numbers start at 1.
	List(ctx context.Context, page, size int) (*Page, error)
	All(ctx context.Context) ([]domain.Placement, error)
	Update(ctx context.Context, p domain.Placement) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type CredentialStore interface {
	// GetGoogleCredential returns ErrNotFound when nothing has been stored yet.
	GetGoogleCredential(ctx context.Context) (*domain.GoogleCredential, error)
	// SaveGoogleCredential inserts or replaces the single credential row.
	SaveGoogleCredential(ctx context.Context, c domain.GoogleCredential) (*domain.GoogleCredential, error)
}

type Type string

const (
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StorerError string

const (
	ErrUnsupportedStorer StorerError = "unsupported storer type: %s"
)

func (e StorerError) Error() string {
	return string(e)
}
