package in_mem

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"github.com/google/uuid"
)

type InMemStorer struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]domain.Placement
	credential  *domain.GoogleCredential
}

func NewInMemStorer() *InMemStorer {
	return &InMemStorer{
		storage: make(map[uuid.UUID]domain.Placement),
	}
}

func (s *InMemStorer) Save(_ context.Context, p domain.Placement) (uuid.UUID, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	s.put(&p, time.Now().UTC())
	slog.Debug("Saved placement to in-memory storage", "id", p.ID, "url", p.URL)
	return p.ID, nil
}

func (s *InMemStorer) SaveBulk(_ context.Context, ps []domain.Placement) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	now := time.Now().UTC()
	for i := range ps {
		s.put(&ps[i], now)
	}
	slog.Debug("Saved placements to in-memory storage", "count", len(ps))
	return nil
}

// put fills the generated fields on p before storing a copy of it.
func (s *InMemStorer) put(p *domain.Placement, now time.Time) {
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
	s.storage[p.ID] = *p
}

func (s *InMemStorer) Get(_ context.Context, id uuid.UUID) (*domain.Placement, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	p, ok := s.storage[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (s *InMemStorer) List(_ context.Context, page, size int) (*storage.Page, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	return paginate(s.sorted(nil), page, size)
}

func (s *InMemStorer) All(_ context.Context) ([]domain.Placement, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	return s.sorted(nil), nil
}

func (s *InMemStorer) Update(_ context.Context, p domain.Placement) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	existing, ok := s.storage[p.ID]
	if !ok {
		return storage.ErrNotFound
	}
	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	p.Normalize()
	s.storage[p.ID] = p
	return nil
}

func (s *InMemStorer) Delete(_ context.Context, id uuid.UUID) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	if _, ok := s.storage[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.storage, id)
	return nil
}

func (s *InMemStorer) Count(_ context.Context) (int64, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	return int64(len(s.storage)), nil
}

// Search matches the query case-insensitively against title, source and url.
func (s *InMemStorer) Search(_ context.Context, query string, page, size int) (*storage.Page, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	terms := strings.Fields(strings.ToLower(query))
	matches := s.sorted(func(p domain.Placement) bool {
		haystack := strings.ToLower(p.Title + " " + p.Source + " " + p.URL)
		for _, t := range terms {
			if strings.Contains(haystack, t) {
				return true
			}
		}
		return false
	})
	return paginate(matches, page, size)
}

// Index is a no-op: Search reads the primary map directly.
func (s *InMemStorer) Index(context.Context, []domain.Placement) error {
	return nil
}

func (s *InMemStorer) Remove(context.Context, uuid.UUID) error {
	return nil
}

func (s *InMemStorer) GetGoogleCredential(_ context.Context) (*domain.GoogleCredential, error) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	if s.credential == nil {
		return nil, storage.ErrNotFound
	}
	c := *s.credential
	return &c, nil
}

func (s *InMemStorer) SaveGoogleCredential(_ context.Context, c domain.GoogleCredential) (*domain.GoogleCredential, error) {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	now := time.Now().UTC()
	c.ID = 1
	c.CreatedAt = now
	if s.credential != nil {
		c.CreatedAt = s.credential.CreatedAt
	}
	c.UpdatedAt = now
	s.credential = &c

	out := c
	return &out, nil
}

// sorted returns the placements accepted by keep, newest first. Callers hold the lock.
func (s *InMemStorer) sorted(keep func(domain.Placement) bool) []domain.Placement {
	out := make([]domain.Placement, 0, len(s.storage))
	for _, p := range s.storage {
		if keep == nil || keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() > out[j].ID.String()
	})
	return out
}

func paginate(items []domain.Placement, page, size int) (*storage.Page, error) {
	req, err := storage.PageRequest(page, size)
	if err != nil {
		return nil, err
	}
	total := int64(len(items))
	start := req.Offset()
	if start >= len(items) {
		return &storage.Page{Items: []domain.Placement{}, Total: total}, nil
	}
	end := min(start+req.Size, len(items))
	return &storage.Page{Items: items[start:end], Total: total}, nil
}
