package repositories

import (
	"context"
	"errors"
	"time"

	"tripplanner/internal/domain"
	"tripplanner/internal/domain/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore keeps trips, cities and activities in three collections linked by
// trip_id / city_id. Cascading deletes are done here since MongoDB has no FKs.
type MongoStore struct {
	Client *mongo.Client
	DB     *mongo.Database
}

func NewMongoStore(client *mongo.Client, database string) MongoStore {
	return MongoStore{Client: client, DB: client.Database(database)}
}

func (s MongoStore) trips() *mongo.Collection      { return s.DB.Collection("trips") }
func (s MongoStore) cities() *mongo.Collection     { return s.DB.Collection("cities") }
func (s MongoStore) activities() *mongo.Collection { return s.DB.Collection("activities") }

var bySortOrder = options.Find().SetSort(bson.D{{Key: "sort_order", Value: 1}})

func (s MongoStore) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, readpref.Primary())
}

func (s MongoStore) ListTrips(ctx context.Context) ([]models.Trip, error) {
	trips := []models.Trip{}
	if err := findAll(ctx, s.trips(), bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}), &trips); err != nil {
		return nil, err
	}
	cities := []models.City{}
	if err := findAll(ctx, s.cities(), bson.M{}, bySortOrder, &cities); err != nil {
		return nil, err
	}
	acts := []models.Activity{}
	if err := findAll(ctx, s.activities(), bson.M{}, bySortOrder, &acts); err != nil {
		return nil, err
	}
	return nest(trips, cities, acts), nil
}

func (s MongoStore) GetTrip(ctx context.Context, id string) (models.Trip, error) {
	var t models.Trip
	if err := s.trips().FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return t, notFoundIfNoDocuments(err, "trip")
	}
	cities := []models.City{}
	if err := findAll(ctx, s.cities(), bson.M{"trip_id": id}, bySortOrder, &cities); err != nil {
		return t, err
	}
	acts := []models.Activity{}
	if err := findAll(ctx, s.activities(), bson.M{"city_id": bson.M{"$in": cityIDs(cities)}}, bySortOrder, &acts); err != nil {
		return t, err
	}
	return nest([]models.Trip{t}, cities, acts)[0], nil
}

// CreateTrip writes the cities first and the trip last, so a partially failed
// create never shows up in ListTrips. Orphaned cities are removed on failure.
func (s MongoStore) CreateTrip(ctx context.Context, name string, cities []models.NewCity) (models.Trip, error) {
	trip := models.Trip{ID: uuid.NewString(), Name: name, Cities: []models.City{}}

	if len(cities) > 0 {
		docs := make([]any, 0, len(cities))
		for i, in := range cities {
			c := newCityRecord(uuid.NewString(), trip.ID, in)
			trip.Cities = append(trip.Cities, c)
			docs = append(docs, cityDocument(c, i))
		}
		if _, err := s.cities().InsertMany(ctx, docs); err != nil {
			_, _ = s.cities().DeleteMany(context.Background(), bson.M{"trip_id": trip.ID})
			return trip, err
		}
	}

	if _, err := s.trips().InsertOne(ctx, bson.M{"_id": trip.ID, "name": trip.Name, "created_at": time.Now().UTC()}); err != nil {
		_, _ = s.cities().DeleteMany(context.Background(), bson.M{"trip_id": trip.ID})
		return trip, err
	}
	return trip, nil
}

func (s MongoStore) DeleteTrip(ctx context.Context, id string) error {
	res, err := s.trips().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFoundError{Resource: "trip"}
	}

	cities := []models.City{}
	if err := findAll(ctx, s.cities(), bson.M{"trip_id": id}, bySortOrder, &cities); err != nil {
		return err
	}
	if ids := cityIDs(cities); len(ids) > 0 {
		if _, err := s.activities().DeleteMany(ctx, bson.M{"city_id": bson.M{"$in": ids}}); err != nil {
			return err
		}
	}
	_, err = s.cities().DeleteMany(ctx, bson.M{"trip_id": id})
	return err
}

func (s MongoStore) CreateCity(ctx context.Context, in models.NewCity) (models.City, error) {
	if err := s.trips().FindOne(ctx, bson.M{"_id": in.TripID}).Err(); err != nil {
		return models.City{}, notFoundIfNoDocuments(err, "trip")
	}
	order, err := nextMongoSortOrder(ctx, s.cities(), "trip_id", in.TripID)
	if err != nil {
		return models.City{}, err
	}
	c := newCityRecord(uuid.NewString(), in.TripID, in)
	if _, err := s.cities().InsertOne(ctx, cityDocument(c, order)); err != nil {
		return c, err
	}
	return c, nil
}

func (s MongoStore) UpdateCityPosition(ctx context.Context, id string, pos models.Position) (models.City, error) {
	set := bson.M{}
	if pos.X != nil {
		set["pos_x"] = *pos.X
	}
	if pos.Y != nil {
		set["pos_y"] = *pos.Y
	}
	if len(set) > 0 {
		res, err := s.cities().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
		if err != nil {
			return models.City{}, err
		}
		if res.MatchedCount == 0 {
			return models.City{}, domain.NotFoundError{Resource: "city"}
		}
	}

	var c models.City
	if err := s.cities().FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return c, notFoundIfNoDocuments(err, "city")
	}
	c.Activities = []models.Activity{}
	if err := findAll(ctx, s.activities(), bson.M{"city_id": id}, bySortOrder, &c.Activities); err != nil {
		return c, err
	}
	return c, nil
}

func (s MongoStore) DeleteCity(ctx context.Context, id string) error {
	res, err := s.cities().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFoundError{Resource: "city"}
	}
	_, err = s.activities().DeleteMany(ctx, bson.M{"city_id": id})
	return err
}

func (s MongoStore) CreateActivity(ctx context.Context, in models.NewActivity) (models.Activity, error) {
	if err := s.cities().FindOne(ctx, bson.M{"_id": in.CityID}).Err(); err != nil {
		return models.Activity{}, notFoundIfNoDocuments(err, "city")
	}
	order, err := nextMongoSortOrder(ctx, s.activities(), "city_id", in.CityID)
	if err != nil {
		return models.Activity{}, err
	}
	a := newActivityRecord(uuid.NewString(), in)
	if _, err := s.activities().InsertOne(ctx, activityDocument(a, order)); err != nil {
		return a, err
	}
	return a, nil
}

// UpdateActivity replaces every editable field; blank ones are unset.
func (s MongoStore) UpdateActivity(ctx context.Context, id string, f models.ActivityFields) (models.Activity, error) {
	set, unset := bson.M{}, bson.M{}
	for key, val := range map[string]string{
		"name": f.Name, "type": f.Type, "color": f.Color,
		"start_time": f.StartTime, "end_time": f.EndTime, "notes": f.Notes,
	} {
		if val == "" {
			unset[key] = ""
		} else {
			set[key] = val
		}
	}
	update := bson.M{}
	if len(set) > 0 {
		update["$set"] = set
	}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var a models.Activity
	err := s.activities().FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&a)
	if err != nil {
		return a, notFoundIfNoDocuments(err, "activity")
	}
	return a, nil
}

func (s MongoStore) DeleteActivity(ctx context.Context, id string) error {
	res, err := s.activities().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.NotFoundError{Resource: "activity"}
	}
	return nil
}

func findAll[T any](ctx context.Context, coll *mongo.Collection, filter bson.M, opts *options.FindOptions, out *[]T) error {
	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	return cursor.All(ctx, out)
}

func nextMongoSortOrder(ctx context.Context, coll *mongo.Collection, parentKey, parentID string) (int, error) {
	var last struct {
		SortOrder int `bson:"sort_order"`
	}
	err := coll.FindOne(ctx, bson.M{parentKey: parentID},
		options.FindOne().SetSort(bson.D{{Key: "sort_order", Value: -1}}),
	).Decode(&last)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.SortOrder + 1, nil
}

func cityDocument(c models.City, order int) bson.M {
	return bson.M{
		"_id":        c.ID,
		"trip_id":    c.TripID,
		"name":       c.Name,
		"transport":  string(c.Transport),
		"start_date": c.StartDate,
		"end_date":   c.EndDate,
		"pos_x":      c.PosX,
		"pos_y":      c.PosY,
		"sort_order": order,
	}
}

func activityDocument(a models.Activity, order int) bson.M {
	return bson.M{
		"_id":        a.ID,
		"city_id":    a.CityID,
		"name":       a.Name,
		"type":       a.Type,
		"color":      a.Color,
		"start_time": a.StartTime,
		"end_time":   a.EndTime,
		"notes":      a.Notes,
		"date":       a.Date,
		"sort_order": order,
	}
}

func cityIDs(cities []models.City) []string {
	ids := make([]string, 0, len(cities))
	for _, c := range cities {
		ids = append(ids, c.ID)
	}
	return ids
}

func notFoundIfNoDocuments(err error, resource string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return err
}
