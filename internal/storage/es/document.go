package es

import (
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
)

// PlacementDocument is the indexed shape of a placement.
type PlacementDocument struct {
	ID              string     `json:"id"`
	URL             string     `json:"url"`
	Title           string     `json:"title"`
	Source          string     `json:"source"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	MediaType       string     `json:"media_type"`
	Notes           string     `json:"notes,omitempty"`
	DocketURL       string     `json:"docket_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	IndexedAt       time.Time  `json:"indexed_at"`
}

type IndexBuilder struct {
	analyzer string
}

func NewIndexBuilder() *IndexBuilder {
	return &IndexBuilder{
		analyzer: "placement_analyzer",
	}
}

func (b *IndexBuilder) toDocument(p domain.Placement) PlacementDocument {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return PlacementDocument{
		ID:              p.ID.String(),
		URL:             p.URL,
		Title:           p.Title,
		Source:          p.Source,
		PublicationDate: p.PublicationDate,
		MediaType:       string(p.MediaType),
		Notes:           p.Notes,
		DocketURL:       p.DocketURL,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		IndexedAt:       time.Now().UTC(),
	}
}

func (d PlacementDocument) toPlacement() (domain.Placement, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Placement{}, fmt.Errorf("failed to parse placement id %q: %w", d.ID, err)
	}
	return domain.Placement{
		ID:              id,
		URL:             d.URL,
		Title:           d.Title,
		Source:          d.Source,
		PublicationDate: d.PublicationDate,
		MediaType:       domain.MediaType(d.MediaType),
		Notes:           d.Notes,
		DocketURL:       d.DocketURL,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

func (b *IndexBuilder) buildSettings() types.IndexSettings {
	return types.IndexSettings{
		Analysis: &types.IndexSettingsAnalysis{
			Analyzer: map[string]types.Analyzer{
				b.analyzer: types.StandardAnalyzer{
					Stopwords: []string{"_none_"},
				},
			},
		},
	}
}

func (b *IndexBuilder) buildMapping() types.TypeMapping {
	return types.TypeMapping{
		Properties: map[string]types.Property{
			"id":               types.NewKeywordProperty(),
			"url":              b.textWithKeyword(b.analyzer),
			"title":            b.textWithKeyword(b.analyzer),
			"source":           b.textWithKeyword(""),
			"publication_date": types.NewDateProperty(),
			"media_type":       types.NewKeywordProperty(),
			"notes":            b.text(b.analyzer),
			"docket_url":       types.NewKeywordProperty(),
			"created_at":       types.NewDateProperty(),
			"updated_at":       types.NewDateProperty(),
			"indexed_at":       types.NewDateProperty(),
		},
	}
}

func (b *IndexBuilder) text(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	return textProp
}

func (b *IndexBuilder) textWithKeyword(analyzer string) types.Property {
	textProp := types.NewTextProperty()
	if analyzer != "" {
		textProp.Analyzer = &analyzer
	}
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}
