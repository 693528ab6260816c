package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeedTime(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
		wantErr  bool
	}{
		{"utc z suffix", "2025-01-01T00:00:00Z", "2025-01-01T00:00:00Z", false},
		{"explicit offset normalized", "2025-01-01T07:00:00+07:00", "2025-01-01T00:00:00Z", false},
		{"fractional seconds", "2025-01-01T00:00:00.500Z", "2025-01-01T00:00:00Z", false},
		{"no timezone", "2025-01-01T00:00:00", "", true},
		{"garbage", "not-a-time", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseFeedTime(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, time.UTC, parsed.Location())
			assert.Equal(t, tt.expected, parsed.Truncate(time.Second).Format(time.RFC3339))
		})
	}
}

func TestEpoch(t *testing.T) {
	assert.Equal(t, "1970-01-01T00:00:00Z", FormatUTC(Epoch()))
}

func TestFormatFeedTime_RoundTrip(t *testing.T) {
	tests := []string{
		"2025-01-01T00:00:00Z",
		"2025-01-01T01:00:00.5Z",
		"2025-01-01T01:00:00.123456789Z",
	}
	for _, value := range tests {
		t.Run(value, func(t *testing.T) {
			instant, err := ParseFeedTime(value)
			require.NoError(t, err)

			roundTrip, err := ParseFeedTime(FormatFeedTime(instant))
			require.NoError(t, err)
			assert.True(t, roundTrip.Equal(instant))
		})
	}
}

func TestFormatFeedTime_OrderAndWidth(t *testing.T) {
	early, err := ParseFeedTime("2025-01-01T00:00:00.200Z")
	require.NoError(t, err)
	late, err := ParseFeedTime("2025-01-01T00:00:00.700Z")
	require.NoError(t, err)

	// Fixed width keeps the string order aligned with the instant order.
	assert.Len(t, FormatFeedTime(early), len(FormatFeedTime(late)))
	assert.Less(t, FormatFeedTime(early), FormatFeedTime(late))
}

func TestFormatLocal(t *testing.T) {
	instant, err := ParseFeedTime("2025-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01 07:00:00", FormatLocal(instant))
}

func TestNewReadingDocument(t *testing.T) {
	instant, err := ParseFeedTime("2025-12-31T18:30:00Z")
	require.NoError(t, err)

	doc := NewReadingDocument(Reading{Feed: "temperature", Value: "27.5", Time: instant})

	assert.Equal(t, "temperature", doc.Feed)
	assert.Equal(t, "27.5", doc.Value)
	assert.Equal(t, "2025-12-31T18:30:00.000000000Z", doc.Datetime)
	// Calendar fields roll into the next local day at UTC+7.
	assert.Equal(t, 2026, doc.Year)
	assert.Equal(t, 1, doc.Month)
	assert.Equal(t, 1, doc.Day)
	assert.Equal(t, 1, doc.Hour)
	assert.Equal(t, 30, doc.Minute)
}

func TestNewReadingDocument_SubSecondKeysStayDistinct(t *testing.T) {
	first, err := ParseFeedTime("2025-01-01T00:00:00.200Z")
	require.NoError(t, err)
	second, err := ParseFeedTime("2025-01-01T00:00:00.700Z")
	require.NoError(t, err)

	docFirst := NewReadingDocument(Reading{Feed: "temperature", Value: "20.1", Time: first})
	docSecond := NewReadingDocument(Reading{Feed: "temperature", Value: "20.2", Time: second})

	// Two observations inside the same second are two stored documents, not
	// one collapsed (feed, datetime) upsert key.
	assert.NotEqual(t, docFirst.Datetime, docSecond.Datetime)
}
