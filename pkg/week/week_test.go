package week

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromDate_NormalizesToMonday(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{
			name: "Monday maps to itself",
			date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			want: "2025-03-10",
		},
		{
			name: "Wednesday maps to preceding Monday",
			date: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			want: "2025-03-10",
		},
		{
			name: "Sunday maps to preceding Monday",
			date: time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC),
			want: "2025-03-10",
		},
		{
			name: "time of day is ignored",
			date: time.Date(2025, 3, 12, 23, 59, 59, 0, time.UTC),
			want: "2025-03-10",
		},
		{
			name: "week spanning a month boundary",
			date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			want: "2025-03-31",
		},
		{
			name: "week spanning a year boundary",
			date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			want: "2025-12-29",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromDate(tt.date).String())
		})
	}
}

func TestFromDate_Idempotent(t *testing.T) {
	// All seven days of one week must land in the same key, and the key of
	// a key's own start must be the key itself.
	monday := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	want := FromDate(monday)
	for dayOffset := 0; dayOffset < 7; dayOffset++ {
		day := monday.AddDate(0, 0, dayOffset)
		key := FromDate(day)
		assert.True(t, want.Equal(key), "day %s landed in week %s", day, key)
		assert.True(t, key.Equal(FromDate(key.Start())))
	}
}

func TestFromString(t *testing.T) {
	key, err := FromString("2025-03-12")
	assert.NoError(t, err)
	assert.Equal(t, "2025-03-10", key.String())

	_, err = FromString("12.03.2025")
	assert.Error(t, err)
}

func TestRange(t *testing.T) {
	keys := Range(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), 3)
	assert.Len(t, keys, 3)
	assert.Equal(t, "2025-03-10", keys[0].String())
	assert.Equal(t, "2025-03-17", keys[1].String())
	assert.Equal(t, "2025-03-24", keys[2].String())

	assert.Nil(t, Range(time.Now(), 0))
}

func TestSpan(t *testing.T) {
	from := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC) // week of 03-10
	to := time.Date(2025, 3, 25, 0, 0, 0, 0, time.UTC)   // week of 03-24
	keys := Span(from, to)
	assert.Len(t, keys, 3)
	assert.Equal(t, "2025-03-10", keys[0].String())
	assert.Equal(t, "2025-03-24", keys[2].String())

	assert.Nil(t, Span(to, from))
}

func TestKey_Ordering(t *testing.T) {
	a := FromDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	b := a.AddWeeks(2)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Equal(b))
	assert.Equal(t, a.Next().Next(), b)
}

func TestKey_End(t *testing.T) {
	key := FromDate(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC), key.End())
}
