package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParse_KnownLayouts(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-15", day(2024, time.March, 15)},
		{"2024/03/15", day(2024, time.March, 15)},
		{"15/03/2024", day(2024, time.March, 15)},
		{"03/15/2024", day(2024, time.March, 15)},
		{"March 15, 2024", day(2024, time.March, 15)},
		{"Mar 15, 2024", day(2024, time.March, 15)},
		{"15 March 2024", day(2024, time.March, 15)},
		{"15 Mar 2024", day(2024, time.March, 15)},
		{"2024-03-15T10:30:00", day(2024, time.March, 15)},
		{"2024-03-15T10:30:00Z", day(2024, time.March, 15)},
		{"  2024-03-15\n", day(2024, time.March, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Parse(tt.in)

			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_AmbiguousSlashDateIsDayFirst(t *testing.T) {
	got, ok := Parse("01/02/2024")

	assert.True(t, ok)
	assert.Equal(t, day(2024, time.February, 1), got)
}

func TestParse_DropsTimeOfDay(t *testing.T) {
	got, ok := Parse("2023-12-31T23:59:59")

	assert.True(t, ok)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.Equal(t, time.UTC, got.Location())
}

func TestParse_Rejects(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"yesterday",
		"2024-13-45",
		"31/31/2024",
		"2024-03-15T10:30:00+02:00",
		"15.03.2024",
	}

	for _, in := range inputs {
		_, ok := Parse(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestMustParse_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParse("not a date") })
	assert.Equal(t, day(2020, time.January, 1), MustParse("2020-01-01"))
}
