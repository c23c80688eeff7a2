package pagination

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffsetRequest_Normalize(t *testing.T) {
	tests := []struct {
		name     string
		in       OffsetRequest
		wantPage int
		wantSize int
	}{
		{"defaults", OffsetRequest{}, 1, PageDefaultSize},
		{"negative", OffsetRequest{Page: -3, Size: -1}, 1, PageDefaultSize},
		{"too large", OffsetRequest{Page: 2, Size: 1000}, 2, PageMaxSize},
		{"kept", OffsetRequest{Page: 3, Size: 5}, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.in
			r.Normalize()

			assert.Equal(t, tt.wantPage, r.Page)
			assert.Equal(t, tt.wantSize, r.Size)
		})
	}
}

func TestNewOffsetResult(t *testing.T) {
	res := NewOffsetResult([]int{1, 2}, 5, 2, 2)
	assert.True(t, res.HasMore)

	last := NewOffsetResult([]int{5}, 5, 3, 2)
	assert.False(t, last.HasMore)

	empty := NewOffsetResult[int](nil, 0, 1, 20)
	assert.NotNil(t, empty.Items)
	assert.False(t, empty.HasMore)
}

func TestOffsetRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      OffsetRequest
		wantErr bool
	}{
		{"first page", OffsetRequest{Page: 1, Size: PageMaxSize}, false},
		{"last allowed page", OffsetRequest{Page: MaxOffset/10 + 1, Size: 10}, false},
		{"past max offset", OffsetRequest{Page: MaxOffset/10 + 2, Size: 10}, true},
		{"max int page", OffsetRequest{Page: math.MaxInt, Size: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrPageOutOfRange)
				return
			}
			assert.NoError(t, err)
			assert.LessOrEqual(t, tt.in.Offset(), MaxOffset)
		})
	}
}
