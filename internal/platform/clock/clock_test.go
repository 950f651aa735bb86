package clock

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthsAgoClampsToLastDay(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"mar 31 non leap", time.Date(2025, 3, 31, 10, 0, 0, 0, Zone), time.Date(2025, 2, 28, 10, 0, 0, 0, Zone)},
		{"mar 31 leap", time.Date(2024, 3, 31, 10, 0, 0, 0, Zone), time.Date(2024, 2, 29, 10, 0, 0, 0, Zone)},
		{"jan across year", time.Date(2025, 1, 15, 8, 30, 0, 0, Zone), time.Date(2024, 12, 15, 8, 30, 0, 0, Zone)},
		{"may 31", time.Date(2025, 5, 31, 0, 0, 0, 0, Zone), time.Date(2025, 4, 30, 0, 0, 0, 0, Zone)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, tc.want.Equal(MonthsAgo(tc.in, 1)), "got %s", MonthsAgo(tc.in, 1))
		})
	}
}

func TestMonthsAgoOverflowRollsForward(t *testing.T) {
	in := time.Date(2025, 3, 31, 12, 0, 0, 0, Zone)
	got := MonthsAgoOverflow(in, 1)
	assert.Equal(t, time.Date(2025, 3, 3, 12, 0, 0, 0, Zone), got)
}

func TestStartOfDay(t *testing.T) {
	in := time.Date(2025, 11, 14, 18, 30, 12, 500, Zone)
	assert.Equal(t, time.Date(2025, 11, 14, 0, 0, 0, 0, Zone), StartOfDay(in))
}

func TestParseCalendarDate(t *testing.T) {
	got, err := ParseCalendarDate("2025-11-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 11, 14, 0, 0, 0, 0, Zone), got)

	for _, bad := range []string{"2025-02-30", "2025-13-01", "20251114", "2025-1-14", ""} {
		_, err := ParseCalendarDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, bad)
	}
}

func TestAtTimeOfDay(t *testing.T) {
	date := time.Date(2025, 11, 10, 0, 0, 0, 0, Zone)
	ref := time.Date(2025, 11, 14, 21, 30, 5, 0, time.UTC)
	got := AtTimeOfDay(date, ref)
	assert.Equal(t, "2025-11-10T18:30:05-03:00", got.Format(time.RFC3339))
}

func TestParseISO(t *testing.T) {
	cases := map[string]string{
		"2025-11-14":                "2025-11-14T00:00:00Z",
		"2025-11-14T10:00:00Z":      "2025-11-14T10:00:00Z",
		"2025-11-14T10:00:00.123Z":  "2025-11-14T10:00:00Z",
		"2025-11-14T10:00:00-03:00": "2025-11-14T13:00:00Z",
		"2025-11-14T10:00:00":       "2025-11-14T13:00:00Z",
	}
	for in, want := range cases {
		got, err := ParseISO(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.UTC().Truncate(time.Second).Format(time.RFC3339), in)
	}

	for _, bad := range []string{"", "yesterday", "2025-11-14 10:00", "14/11/2025"} {
		_, err := ParseISO(bad)
		assert.Error(t, err, bad)
	}
}

func TestTimestampMarshalUsesFixedOffset(t *testing.T) {
	ts := At(time.Date(2025, 11, 14, 21, 30, 0, 0, time.UTC))
	raw, err := json.Marshal(struct {
		At Timestamp `json:"at"`
	}{At: ts})
	require.NoError(t, err)
	assert.JSONEq(t, `{"at":"2025-11-14T18:30:00-03:00"}`, string(raw))
}

func TestISOTimestamp(t *testing.T) {
	in := time.Date(2025, 11, 14, 18, 30, 0, 7_000_000, Zone)
	assert.Equal(t, "2025-11-14T21:30:00.007Z", ISOTimestamp(in))
}
