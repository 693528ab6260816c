package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Reading is one sensor observation fetched from the upstream feed,
// normalized to a UTC instant. It is immutable once fetched.
type Reading struct {
	Feed  string
	Value string
	Time  time.Time
}

// ReadingDocument is the persisted form of a Reading. The (feed, datetime)
// pair is the dedup key, backed by a unique index.
type ReadingDocument struct {
	ID       primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Feed     string             `json:"feed" bson:"feed"`
	Value    string             `json:"value" bson:"value"`
	Day      int                `json:"day" bson:"day"`
	Month    int                `json:"month" bson:"month"`
	Year     int                `json:"year" bson:"year"`
	Hour     int                `json:"hour" bson:"hour"`
	Minute   int                `json:"minute" bson:"minute"`
	Datetime string             `json:"datetime" bson:"datetime"`
}

// NewReadingDocument maps a fetched reading to its stored form. The calendar
// fields are rendered in the reference timezone, the canonical datetime in UTC.
func NewReadingDocument(r Reading) ReadingDocument {
	local := r.Time.In(ReferenceZone)
	return ReadingDocument{
		Feed:     r.Feed,
		Value:    r.Value,
		Day:      local.Day(),
		Month:    int(local.Month()),
		Year:     local.Year(),
		Hour:     local.Hour(),
		Minute:   local.Minute(),
		Datetime: FormatFeedTime(r.Time),
	}
}
