package usecase

import (
	"github.com/yolofarm/farm-whisperer/schema"
)

// PresentationRecord is the read-side shape served to the dashboard: the
// canonical ISO datetime plus a rendering in the reference timezone. The
// local rendering is omitted when the stored datetime does not parse.
type PresentationRecord struct {
	ID            string `json:"id"`
	Value         string `json:"value,omitempty"`
	Day           int    `json:"day"`
	Month         int    `json:"month"`
	Year          int    `json:"year"`
	Hour          int    `json:"hour"`
	Minute        int    `json:"minute"`
	Datetime      string `json:"datetime"`
	DatetimeLocal string `json:"datetime_local,omitempty"`
}

// formatLocal renders the stored datetime in the reference timezone, or an
// empty string when it is missing or unparsable. Parsing failures are
// swallowed, a bad record should not break the listing.
func formatLocal(datetime string) string {
	if datetime == "" {
		return ""
	}
	t, err := schema.ParseFeedTime(datetime)
	if err != nil {
		return ""
	}
	return schema.FormatLocal(t)
}

// FormatReading maps a stored reading into its presentation shape.
func FormatReading(doc schema.ReadingDocument) PresentationRecord {
	return PresentationRecord{
		ID:            doc.ID.Hex(),
		Value:         doc.Value,
		Day:           doc.Day,
		Month:         doc.Month,
		Year:          doc.Year,
		Hour:          doc.Hour,
		Minute:        doc.Minute,
		Datetime:      doc.Datetime,
		DatetimeLocal: formatLocal(doc.Datetime),
	}
}

// FormatSchedule maps a stored schedule entry into its presentation shape.
func FormatSchedule(doc schema.ScheduleDocument) PresentationRecord {
	return PresentationRecord{
		ID:            doc.ID.Hex(),
		Day:           doc.Day,
		Month:         doc.Month,
		Year:          doc.Year,
		Hour:          doc.Hour,
		Minute:        doc.Minute,
		Datetime:      doc.Datetime,
		DatetimeLocal: formatLocal(doc.Datetime),
	}
}
