package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// SchedulerLock holds the structure for the schedulerLocks collection in mongo
type SchedulerLock struct {
	ID        string             `bson:"_id"`
	Owner     string             `bson:"owner"`
	ExpiresAt primitive.DateTime `bson:"expiresAt"`
}

// Counter holds the structure for the counters collection in mongo
type Counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}
