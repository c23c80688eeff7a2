package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/media-placements/internal/domain"
	"github.com/DjordjeVuckovic/media-placements/internal/storage"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
)

var searchFields = []string{"title^2", "source", "url"}

func (e *Index) Search(ctx context.Context, query string, page, size int) (*storage.Page, error) {
	req, err := storage.PageRequest(page, size)
	if err != nil {
		return nil, err
	}
	slog.Info("Executing es placement search", "query", query, "page", page, "size", size)

	desc := sortorder.Desc
	res, err := e.client.Search().
		Index(e.indexName).
		Query(&types.Query{
			MultiMatch: &types.MultiMatchQuery{
				Query:  query,
				Fields: searchFields,
			},
		}).
		Sort(
			&types.SortOptions{SortOptions: map[string]types.FieldSort{"_score": {Order: &desc}}},
			&types.SortOptions{SortOptions: map[string]types.FieldSort{"created_at": {Order: &desc}}},
		).
		From(req.Offset()).
		Size(req.Size).
		Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch query failed", "error", err, "query", query)
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}

	items := make([]domain.Placement, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc PlacementDocument
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal placement document: %w", err)
		}
		p, err := doc.toPlacement()
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}

	var total int64
	if res.Hits.Total != nil {
		total = res.Hits.Total.Value
	}
	slog.Info("Es search results fetched", "total_matches", total, "returned_count", len(items))

	return &storage.Page{Items: items, Total: total}, nil
}
