package filter

import (
	"github.com/stretchr/testify/assert"
	"testing"
	"time"
)

func Test_DaysFromPhrase_LiteralCases(t *testing.T) {
	cases := map[string]int{
		"today":              0,
		"Posted just now":    0,
		"5 hours ago":        0,
		"1 hour ago":         0,
		"Yesterday":          1,
		"3 days ago":         3,
		"2 weeks ago":        14,
		"1 month ago":        30,
		"Posted 30 days ago": 30,
		"":                   UnknownAge,
		"sometime last year": UnknownAge,
	}

	for phrase, expected := range cases {
		assert.Equal(t, expected, DaysFromPhrase(phrase), "phrase %q", phrase)
	}
}

func Test_DaysSince_ShouldFloorAndKeepNegative(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysSince(now.Add(-23*time.Hour), now))
	assert.Equal(t, 2, DaysSince(now.Add(-50*time.Hour), now))
	assert.Equal(t, -1, DaysSince(now.Add(2*time.Hour), now))
}

func Test_DaysSinceLayout_WhenUnparseable_ShouldReturnUnknown(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 5, DaysSinceLayout("2024-03-05T08:00:00", now, "2006-01-02T15:04:05"))
	assert.Equal(t, 1, DaysSinceLayout("Sat Mar 09 10:00:00 UTC 2024", now, time.UnixDate))
	assert.Equal(t, UnknownAge, DaysSinceLayout("not a date", now, "2006-01-02T15:04:05"))
	assert.Equal(t, UnknownAge, DaysSinceLayout("", now, time.RFC3339))
}

func Test_DaysSinceEpoch(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 4, DaysSinceEpoch(now.Add(-4*24*time.Hour).Unix(), now))
	assert.Equal(t, UnknownAge, DaysSinceEpoch(0, now))
}

func Test_Recency_IsRecent_ShouldIncludeBoundary(t *testing.T) {
	recency := Recency{MaxDaysOld: 10}

	assert.True(t, recency.IsRecent(0))
	assert.True(t, recency.IsRecent(10))
	assert.False(t, recency.IsRecent(11))
	assert.False(t, recency.IsRecent(UnknownAge))
	assert.True(t, recency.IsRecent(-2))
}
