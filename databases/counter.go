package databases

// go generate: mockery --name CounterDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/avenue-police-api/models"
)

const counterName = "counters"

// CounterDatabase hands out gap free sequence numbers
type CounterDatabase interface {
	Next(ctx context.Context, name string) (int64, error)
	AdvanceTo(ctx context.Context, name string, seq int64) error
}

type counterDatabase struct {
	db DatabaseHelper
}

// NewCounterDatabase initializes a new instance of counter database with the provided db connection
func NewCounterDatabase(db DatabaseHelper) CounterDatabase {
	return &counterDatabase{
		db: db,
	}
}

// Next atomically increments the named sequence and returns the new value.
// The first call for a name returns 1.
func (c *counterDatabase) Next(ctx context.Context, name string) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	counter := &models.Counter{}
	err := c.db.Collection(counterName).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": int64(1)}}, opts).
		Decode(counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// AdvanceTo moves the named sequence forward to seq. It never moves it back.
func (c *counterDatabase) AdvanceTo(ctx context.Context, name string, seq int64) error {
	_, err := c.db.Collection(counterName).UpdateOne(ctx,
		bson.M{"_id": name},
		bson.M{"$max": bson.M{"seq": seq}},
		options.Update().SetUpsert(true),
	)
	return err
}
