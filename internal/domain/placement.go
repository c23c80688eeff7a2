package domain

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Column limits of the persisted placement record.
const (
	MaxURLLength    = 512
	MaxTitleLength  = 256
	MaxSourceLength = 128
)

// DateLayout is the wire and edit format of a publication date.
const DateLayout = "2006-01-02"

// PlacementMetadata is what the ingestion pipeline learns about one link.
// Every field has a usable zero value so a failed fetch still yields a record.
type PlacementMetadata struct {
	Title           string     `json:"title"`
	Source          string     `json:"source"`
	MediaType       MediaType  `json:"media_type"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
}

// Usable reports whether anything beyond the URL-derived source was learned.
func (m PlacementMetadata) Usable() bool {
	return m.Title != "" || m.PublicationDate != nil || (m.MediaType != "" && m.MediaType != DefaultMediaType)
}

type Placement struct {
	ID              uuid.UUID  `json:"id"`
	URL             string     `json:"url"`
	Title           string     `json:"title"`
	Source          string     `json:"source"`
	PublicationDate *time.Time `json:"publication_date,omitempty" swaggertype:"string" format:"date"`
	MediaType       MediaType  `json:"media_type" swaggertype:"string"`
	Notes           string     `json:"notes,omitempty"`
	DocketURL       string     `json:"docket_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewPlacement builds a record ready for storage from an ingested link.
func NewPlacement(url string, meta PlacementMetadata) Placement {
	mediaType := meta.MediaType
	if mediaType == "" {
		mediaType = DefaultMediaType
	}
	p := Placement{
		ID:              uuid.New(),
		URL:             url,
		Title:           meta.Title,
		Source:          meta.Source,
		PublicationDate: meta.PublicationDate,
		MediaType:       mediaType,
	}
	p.Normalize()
	return p
}

// Normalize trims the text fields to the column limits of the store.
func (p *Placement) Normalize() {
	p.URL = truncateRunes(p.URL, MaxURLLength)
	p.Title = truncateRunes(p.Title, MaxTitleLength)
	p.Source = truncateRunes(p.Source, MaxSourceLength)
	if p.MediaType == "" {
		p.MediaType = DefaultMediaType
	}
}

// PlacementUpdate carries the editable fields of a placement. Nil fields are left alone.
type PlacementUpdate struct {
	URL             *string    `json:"url,omitempty"`
	Title           *string    `json:"title,omitempty"`
	Source          *string    `json:"source,omitempty"`
	PublicationDate *string    `json:"publication_date,omitempty" example:"2024-03-05"`
	MediaType       *MediaType `json:"media_type,omitempty" swaggertype:"string"`
	Notes           *string    `json:"notes,omitempty"`
}

var ErrInvalidUpdate = errors.New("invalid placement update")

// Apply validates the update and writes the present fields into p.
// p is left untouched when any field is invalid.
// An empty publication_date clears the date.
func (u PlacementUpdate) Apply(p *Placement) error {
	next := *p
	if u.URL != nil {
		raw := strings.TrimSpace(*u.URL)
		parsed, err := url.Parse(raw)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return fmt.Errorf("%w: url must be an absolute http(s) URL", ErrInvalidUpdate)
		}
		next.URL = raw
	}
	if u.Title != nil {
		if len([]rune(*u.Title)) > MaxTitleLength {
			return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidUpdate, MaxTitleLength)
		}
		next.Title = strings.TrimSpace(*u.Title)
	}
	if u.Source != nil {
		if len([]rune(*u.Source)) > MaxSourceLength {
			return fmt.Errorf("%w: source exceeds %d characters", ErrInvalidUpdate, MaxSourceLength)
		}
		next.Source = strings.TrimSpace(*u.Source)
	}
	if u.PublicationDate != nil {
		raw := strings.TrimSpace(*u.PublicationDate)
		if raw == "" {
			next.PublicationDate = nil
		} else {
			d, err := time.Parse(DateLayout, raw)
			if err != nil {
				return fmt.Errorf("%w: publication_date must use YYYY-MM-DD", ErrInvalidUpdate)
			}
			next.PublicationDate = &d
		}
	}
	if u.MediaType != nil {
		mt, err := ParseMediaType(string(*u.MediaType))
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidUpdate, err)
		}
		next.MediaType = mt
	}
	if u.Notes != nil {
		next.Notes = *u.Notes
	}
	next.Normalize()
	*p = next
	return nil
}

func truncateRunes(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
