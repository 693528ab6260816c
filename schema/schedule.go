package schema

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleDocument is one watering schedule entry. The datetime string is the
// canonical UTC instant and the de-facto uniqueness key of the collection.
type ScheduleDocument struct {
	ID       primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Day      int                `json:"day" bson:"day"`
	Month    int                `json:"month" bson:"month"`
	Year     int                `json:"year" bson:"year"`
	Hour     int                `json:"hour" bson:"hour"`
	Minute   int                `json:"minute" bson:"minute"`
	Datetime string             `json:"datetime" bson:"datetime"`
}

// SchedulePayload is the request body of the schedule create/update routes.
// Pointers distinguish a missing field from a zero value.
type SchedulePayload struct {
	Day    *int `json:"day"`
	Month  *int `json:"month"`
	Year   *int `json:"year"`
	Hour   *int `json:"hour"`
	Minute *int `json:"minute"`
}
