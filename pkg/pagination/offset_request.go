package pagination

import (
	"errors"
	"fmt"
)

var ErrPageOutOfRange = errors.New("page out of range")

// OffsetRequest represents an offset-based pagination request
type OffsetRequest struct {
	Page int `json:"page" query:"page"`
	Size int `json:"size" query:"size"`
}

// Normalize clamps page and size into the accepted range.
func (r *OffsetRequest) Normalize() {
	if r.Page <= 0 {
		r.Page = 1
	}
	if r.Size <= 0 {
		r.Size = PageDefaultSize
	}
	if r.Size > PageMaxSize {
		r.Size = PageMaxSize
	}
}

// Validate reports ErrPageOutOfRange when the offset would exceed MaxOffset.
// Call it after Normalize.
func (r OffsetRequest) Validate() error {
	if r.Size > 0 && r.Page > MaxOffset/r.Size+1 {
		return fmt.Errorf("%w: page %d with size %d exceeds offset %d", ErrPageOutOfRange, r.Page, r.Size, MaxOffset)
	}
	return nil
}

// Offset is the number of items skipped before this page.
func (r OffsetRequest) Offset() int {
	return (r.Page - 1) * r.Size
}
