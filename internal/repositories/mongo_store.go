package repositories

import (
	"context"
	"errors"
	"time"

	"busdepot/internal/domain"
	"busdepot/internal/domain/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	busCollection    = "buses"
	driverCollection = "drivers"
	tripCollection   = "trips"
)

// Field keys match the intake form names, so stored documents carry the
// submitted fields under the same names.
type busDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	BusID      string             `bson:"busId"`
	Depo       string             `bson:"depo"`
	NoOfSeats  int                `bson:"noOfSeats"`
	DriverName string             `bson:"drivername"`
	OwnerName  string             `bson:"ownername"`
	CreatedAt  time.Time          `bson:"createdAt,omitempty"`
}

type driverDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	DriverName string             `bson:"drivername"`
	LicenseNo  int64              `bson:"licenseno"`
	Phone      int64              `bson:"phone"`
	Age        int                `bson:"Age"`
	Experience int                `bson:"experience"`
	CreatedAt  time.Time          `bson:"createdAt,omitempty"`
}

type tripDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TripNo    int                `bson:"tripno"`
	Date      string             `bson:"date"`
	BusNo     int                `bson:"busno"`
	To        string             `bson:"to"`
	Fro       string             `bson:"fro"`
	NoOfSeats int                `bson:"noofseats"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
}

// MongoStore keeps each record kind in its own collection.
type MongoStore struct {
	db  *mongo.Database
	now func() time.Time
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db, now: time.Now}
}

func (s *MongoStore) Driver() string { return "mongo" }

func (s *MongoStore) CreateBus(ctx context.Context, b models.Bus) (models.Bus, error) {
	doc := busDoc{
		ID:         primitive.NewObjectID(),
		BusID:      b.BusID,
		Depo:       b.Depo,
		NoOfSeats:  b.NoOfSeats,
		DriverName: b.DriverName,
		OwnerName:  b.OwnerName,
		CreatedAt:  s.now().UTC(),
	}
	if _, err := s.db.Collection(busCollection).InsertOne(ctx, doc); err != nil {
		return models.Bus{}, storeFailure("insert bus", err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) CreateDriver(ctx context.Context, d models.Driver) (models.Driver, error) {
	doc := driverDoc{
		ID:         primitive.NewObjectID(),
		DriverName: d.DriverName,
		LicenseNo:  d.LicenseNo,
		Phone:      d.Phone,
		Age:        d.Age,
		Experience: d.Experience,
		CreatedAt:  s.now().UTC(),
	}
	if _, err := s.db.Collection(driverCollection).InsertOne(ctx, doc); err != nil {
		return models.Driver{}, storeFailure("insert driver", err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) CreateTrip(ctx context.Context, t models.Trip) (models.Trip, error) {
	doc := tripDoc{
		ID:        primitive.NewObjectID(),
		TripNo:    t.TripNo,
		Date:      t.Date,
		BusNo:     t.BusNo,
		To:        t.To,
		Fro:       t.Fro,
		NoOfSeats: t.NoOfSeats,
		CreatedAt: s.now().UTC(),
	}
	if _, err := s.db.Collection(tripCollection).InsertOne(ctx, doc); err != nil {
		return models.Trip{}, storeFailure("insert trip", err)
	}
	return doc.toModel(), nil
}

// FindBus returns the first bus in natural order whose busId equals busID.
func (s *MongoStore) FindBus(ctx context.Context, busID string) (models.Bus, error) {
	var doc busDoc
	err := s.db.Collection(busCollection).FindOne(ctx, bson.M{"busId": busID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Bus{}, notFound(domain.KindBus, busID, err)
	}
	if err != nil {
		return models.Bus{}, storeFailure("find bus", err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) FindDriver(ctx context.Context, name string) (models.Driver, error) {
	var doc driverDoc
	err := s.db.Collection(driverCollection).FindOne(ctx, bson.M{"drivername": name}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Driver{}, notFound(domain.KindDriver, name, err)
	}
	if err != nil {
		return models.Driver{}, storeFailure("find driver", err)
	}
	return doc.toModel(), nil
}

func (s *MongoStore) FindTrips(ctx context.Context, f TripFilter) ([]models.Trip, error) {
	filter := bson.M{"to": f.To}
	if f.strict() {
		filter["fro"] = f.Fro
	}

	cursor, err := s.db.Collection(tripCollection).Find(ctx, filter)
	if err != nil {
		return nil, storeFailure("find trips", err)
	}
	defer cursor.Close(ctx)

	var docs []tripDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, storeFailure("decode trips", err)
	}

	out := make([]models.Trip, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toModel())
	}
	return out, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func (d busDoc) toModel() models.Bus {
	return models.Bus{
		ID:         d.ID.Hex(),
		BusID:      d.BusID,
		Depo:       d.Depo,
		NoOfSeats:  d.NoOfSeats,
		DriverName: d.DriverName,
		OwnerName:  d.OwnerName,
		CreatedAt:  d.CreatedAt,
	}
}

func (d driverDoc) toModel() models.Driver {
	return models.Driver{
		ID:         d.ID.Hex(),
		DriverName: d.DriverName,
		LicenseNo:  d.LicenseNo,
		Phone:      d.Phone,
		Age:        d.Age,
		Experience: d.Experience,
		CreatedAt:  d.CreatedAt,
	}
}

func (d tripDoc) toModel() models.Trip {
	return models.Trip{
		ID:        d.ID.Hex(),
		TripNo:    d.TripNo,
		Date:      d.Date,
		BusNo:     d.BusNo,
		To:        d.To,
		Fro:       d.Fro,
		NoOfSeats: d.NoOfSeats,
		CreatedAt: d.CreatedAt,
	}
}
