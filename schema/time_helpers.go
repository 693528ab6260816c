package schema

import "time"

// ReferenceZone is the timezone used to interpret schedule calendar fields
// and to render the local datetime at the presentation boundary. The farm
// runs on Indochina Time, a fixed UTC+7 offset with no DST.
var ReferenceZone = time.FixedZone("ICT", 7*60*60)

const localTimeLayout = "2006-01-02 15:04:05"

// feedTimeLayout is the canonical stored form of a reading or checkpoint
// instant. The fractional part is fixed width so the lexicographic order of
// the stored strings matches the order of the instants, and no sub-second
// precision from the upstream feed is lost in the (feed, datetime) dedup key
// or in a checkpoint round trip.
const feedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Epoch is the checkpoint value used when a feed has never been synced.
func Epoch() time.Time {
	return time.Unix(0, 0).UTC()
}

// ParseFeedTime parses an ISO-8601 timestamp as produced by the upstream
// feed, accepting both the "Z" suffix and explicit offsets, with or without
// fractional seconds. The result is normalized to UTC.
func ParseFeedTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatUTC renders a whole-second instant, used for schedule datetimes built
// from calendar fields.
func FormatUTC(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// FormatFeedTime renders the canonical stored form of a reading or checkpoint
// instant. ParseFeedTime(FormatFeedTime(t)) returns exactly t.
func FormatFeedTime(t time.Time) string {
	return t.UTC().Format(feedTimeLayout)
}

// FormatLocal renders an instant in the reference timezone for display.
func FormatLocal(t time.Time) string {
	return t.In(ReferenceZone).Format(localTimeLayout)
}
