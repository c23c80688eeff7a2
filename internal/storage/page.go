package storage

import "github.com/DjordjeVuckovic/media-placements/pkg/pagination"

// PageRequest normalizes page and size and rejects offsets past pagination.MaxOffset.
func PageRequest(page, size int) (pagination.OffsetRequest, error) {
	req := pagination.OffsetRequest{Page: page, Size: size}
	req.Normalize()
	return req, req.Validate()
}
