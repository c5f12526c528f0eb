package databases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/avenue-police-api/databases"
	"github.com/linesmerrill/avenue-police-api/databases/mocks"
	"github.com/linesmerrill/avenue-police-api/models"
)

func TestCounterDatabase_Next(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	srHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		args.Get(0).(*models.Counter).Seq = 42
	})
	collectionHelper.On("FindOneAndUpdate", mock.Anything, bson.M{"_id": "arrestReports"}, bson.M{"$inc": bson.M{"seq": int64(1)}}, mock.Anything).
		Return(srHelper)
	dbHelper.On("Collection", "counters").Return(collectionHelper)

	seq, err := databases.NewCounterDatabase(dbHelper).Next(context.Background(), databases.ArrestReportSequence)

	require.NoError(t, err)
	assert.Equal(t, int64(42), seq)
}

func TestCounterDatabase_AdvanceTo(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("UpdateOne", mock.Anything, bson.M{"_id": "arrestReports"}, bson.M{"$max": bson.M{"seq": int64(120)}}, mock.Anything).
		Return(&mongo.UpdateResult{MatchedCount: 1}, nil)
	dbHelper.On("Collection", "counters").Return(collectionHelper)

	err := databases.NewCounterDatabase(dbHelper).AdvanceTo(context.Background(), databases.ArrestReportSequence, 120)

	assert.NoError(t, err)
	collectionHelper.AssertExpectations(t)
}

func TestSchedulerLockDatabase_TryAcquireLock(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "duplicate key"}}}
	tests := []struct {
		name    string
		err     error
		want    bool
		wantErr bool
	}{
		{"free", nil, true, false},
		{"held elsewhere", dup, false, false},
		{"db error", errors.New("mocked-error"), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dbHelper := &mocks.DatabaseHelper{}
			collectionHelper := &mocks.CollectionHelper{}
			var res *mongo.UpdateResult
			if tt.err == nil {
				res = &mongo.UpdateResult{UpsertedCount: 1}
			}
			collectionHelper.On("UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(res, tt.err)
			dbHelper.On("Collection", "schedulerLocks").Return(collectionHelper)

			got, err := databases.NewSchedulerLockDatabase(dbHelper).TryAcquireLock(context.Background(), "job", "web.1", time.Minute)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestSchedulerLockDatabase_ReleaseLock(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("DeleteOne", mock.Anything, bson.M{"_id": "job", "owner": "web.1"}).Return(nil)
	dbHelper.On("Collection", "schedulerLocks").Return(collectionHelper)

	assert.NoError(t, databases.NewSchedulerLockDatabase(dbHelper).ReleaseLock(context.Background(), "job", "web.1"))
}

func TestSummaryDatabase_Upsert(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("UpdateOne", mock.Anything, bson.M{"_id": "2024-02"}, mock.Anything, mock.Anything).
		Return(&mongo.UpdateResult{UpsertedCount: 1}, nil)
	dbHelper.On("Collection", "monthlySummaries").Return(collectionHelper)

	err := databases.NewSummaryDatabase(dbHelper).Upsert(context.Background(), models.MonthlySummary{ID: "2024-02"})

	assert.NoError(t, err)
	collectionHelper.AssertExpectations(t)
}

func TestSummaryDatabase_FindOne(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	srHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		(*args.Get(0).(**models.MonthlySummary)).Stats.Count = 7
	})
	collectionHelper.On("FindOne", mock.Anything, bson.M{"_id": "2024-02"}).Return(srHelper)
	dbHelper.On("Collection", "monthlySummaries").Return(collectionHelper)

	summary, err := databases.NewSummaryDatabase(dbHelper).FindOne(context.Background(), "2024-02")

	require.NoError(t, err)
	assert.Equal(t, 7, summary.Stats.Count)
}
