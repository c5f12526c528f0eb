package databases

// go generate: mockery --name SchedulerLockDatabase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const schedulerLockName = "schedulerLocks"

// SchedulerLockDatabase provides a lease based lock so only one instance runs a job
type SchedulerLockDatabase interface {
	TryAcquireLock(ctx context.Context, name, owner string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name, owner string) error
}

type schedulerLockDatabase struct {
	db DatabaseHelper
}

// NewSchedulerLockDatabase initializes a new instance of scheduler lock database with the provided db connection
func NewSchedulerLockDatabase(db DatabaseHelper) SchedulerLockDatabase {
	return &schedulerLockDatabase{
		db: db,
	}
}

// TryAcquireLock takes the named lock if it is free, expired or already held by owner.
func (s *schedulerLockDatabase) TryAcquireLock(ctx context.Context, name, owner string, ttl time.Duration) (bool, error) {
	now := time.Now()
	filter := bson.M{
		"_id": name,
		"$or": bson.A{
			bson.M{"expiresAt": bson.M{"$lt": primitive.NewDateTimeFromTime(now)}},
			bson.M{"owner": owner},
		},
	}
	update := bson.M{"$set": bson.M{
		"owner":     owner,
		"expiresAt": primitive.NewDateTimeFromTime(now.Add(ttl)),
	}}

	_, err := s.db.Collection(schedulerLockName).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if mongo.IsDuplicateKeyError(err) {
		// someone else holds a live lease
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ReleaseLock frees the named lock if owner holds it
func (s *schedulerLockDatabase) ReleaseLock(ctx context.Context, name, owner string) error {
	return s.db.Collection(schedulerLockName).DeleteOne(ctx, bson.M{"_id": name, "owner": owner})
}
