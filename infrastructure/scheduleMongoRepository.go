package infrastructure

import (
	"context"

	"github.com/yolofarm/farm-whisperer/schema"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	scheduleCollectionName = "watering_schedules"
	idxScheduleDatetime    = "UniqueScheduleDatetime"
)

// ScheduleMongoRepository persists watering schedule entries. The unique index
// on datetime is the backstop for the duplicate check race: two concurrent
// creates for the same instant can both pass the application-level check, the
// index rejects the second insert.
type ScheduleMongoRepository struct {
	*StoreClient
}

func NewScheduleMongoRepository(store *StoreClient) *ScheduleMongoRepository {
	return &ScheduleMongoRepository{StoreClient: store}
}

func scheduleCollection(s *ScheduleMongoRepository) *mongo.Collection {
	return s.Collection(scheduleCollectionName)
}

// ListSchedules returns all entries, newest datetime first.
func (s *ScheduleMongoRepository) ListSchedules(ctx context.Context, traceID string) ([]schema.ScheduleDocument, error) {
	opts := options.Find()
	opts.SetSort(bson.D{primitive.E{Key: "datetime", Value: -1}})
	opts.SetComment(traceID)

	cursor, err := scheduleCollection(s).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []schema.ScheduleDocument{}
	err = cursor.All(ctx, &docs)
	return docs, err
}

// FindScheduleByDatetime returns the entry holding the given datetime, or nil.
// A non empty excludeID leaves that entry out of the search, so an update does
// not collide with itself.
func (s *ScheduleMongoRepository) FindScheduleByDatetime(ctx context.Context, traceID string, datetime string, excludeID string) (*schema.ScheduleDocument, error) {
	query := bson.M{"datetime": datetime}
	if excludeID != "" {
		oid, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return nil, schema.ErrScheduleNotFound
		}
		query["_id"] = bson.M{"$ne": oid}
	}

	opts := options.FindOne()
	opts.SetComment(traceID)

	var doc schema.ScheduleDocument
	err := scheduleCollection(s).FindOne(ctx, query, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &doc, nil
}

// InsertSchedule inserts a new entry and returns its store-assigned id.
func (s *ScheduleMongoRepository) InsertSchedule(ctx context.Context, traceID string, doc schema.ScheduleDocument) (string, error) {
	res, err := scheduleCollection(s).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", schema.ErrDuplicateDatetime
		}
		return "", err
	}
	oid, _ := res.InsertedID.(primitive.ObjectID)
	return oid.Hex(), nil
}

// UpdateSchedule replaces all fields of an entry, preserving its identity.
// Returns whether anything actually changed.
func (s *ScheduleMongoRepository) UpdateSchedule(ctx context.Context, traceID string, id string, doc schema.ScheduleDocument) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, schema.ErrScheduleNotFound
	}

	update := bson.M{"$set": bson.M{
		"day":      doc.Day,
		"month":    doc.Month,
		"year":     doc.Year,
		"hour":     doc.Hour,
		"minute":   doc.Minute,
		"datetime": doc.Datetime,
	}}
	res, err := scheduleCollection(s).UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, schema.ErrDuplicateDatetime
		}
		return false, err
	}
	if res.MatchedCount == 0 {
		return false, schema.ErrScheduleNotFound
	}
	return res.ModifiedCount > 0, nil
}

// DeleteSchedule removes an entry. A missing or malformed id is not an error,
// it reports deleted=false.
func (s *ScheduleMongoRepository) DeleteSchedule(ctx context.Context, traceID string, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := scheduleCollection(s).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
