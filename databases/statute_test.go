package databases_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/avenue-police-api/databases"
	"github.com/linesmerrill/avenue-police-api/databases/mocks"
	"github.com/linesmerrill/avenue-police-api/models"
)

func TestStatuteDatabase_ListSeedsDefaults(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("Decode", mock.Anything).Return(nil)
	collectionHelper.On("Find", mock.Anything, bson.M{}, mock.Anything).Return(cursorHelper, nil)
	collectionHelper.On("InsertOne", mock.Anything, mock.AnythingOfType("models.Statute")).Return(&mocks.InsertOneResultHelper{}, nil)
	dbHelper.On("Collection", "statutes").Return(collectionHelper)

	list, err := databases.NewStatuteDatabase(dbHelper).List(context.Background())

	want := databases.DefaultStatutes()
	sort.SliceStable(want, func(i, j int) bool { return want[i].Category < want[j].Category })
	require.NoError(t, err)
	assert.Equal(t, want, list)
	collectionHelper.AssertNumberOfCalls(t, "InsertOne", len(databases.DefaultStatutes()))
}

func TestStatuteDatabase_ListStored(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(*[]models.Statute)
		*arg = []models.Statute{{ID: "a", Details: models.StatuteViolation{ID: "a", Fine: 5}}}
	})
	collectionHelper.On("Find", mock.Anything, bson.M{}, mock.Anything).Return(cursorHelper, nil)
	dbHelper.On("Collection", "statutes").Return(collectionHelper)

	list, err := databases.NewStatuteDatabase(dbHelper).List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []models.StatuteViolation{{ID: "a", Fine: 5}}, list)
	collectionHelper.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything)
}

func TestStatuteDatabase_AddAssignsCustomID(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	srHelper := &mocks.SingleResultHelper{}
	srHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		(*args.Get(0).(**models.Statute)).Position = 3
	})
	collectionHelper.On("FindOne", mock.Anything, bson.M{}, mock.Anything).Return(srHelper)
	collectionHelper.On("InsertOne", mock.Anything, mock.MatchedBy(func(s models.Statute) bool {
		return s.Position == 4 && s.ID == s.Details.ID
	})).Return(&mocks.InsertOneResultHelper{}, nil)
	dbHelper.On("Collection", "statutes").Return(collectionHelper)

	v, err := databases.NewStatuteDatabase(dbHelper).Add(context.Background(), models.StatuteViolation{Article: "Art. 900", Fine: 10})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(v.ID, "art-custom-"))
	collectionHelper.AssertExpectations(t)
}

func TestStatuteDatabase_ListSortsByCategoryThenPosition(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	cursorHelper := &mocks.CursorHelper{}

	cursorHelper.On("Decode", mock.Anything).Return(nil)
	collectionHelper.On("Find", mock.Anything, bson.M{}, mock.MatchedBy(func(o *options.FindOptions) bool {
		return assert.ObjectsAreEqual(bson.D{{Key: "statute.category", Value: 1}, {Key: "position", Value: 1}}, o.Sort)
	})).Return(cursorHelper, nil)
	collectionHelper.On("InsertOne", mock.Anything, mock.Anything).Return(&mocks.InsertOneResultHelper{}, nil)
	dbHelper.On("Collection", "statutes").Return(collectionHelper)

	_, err := databases.NewStatuteDatabase(dbHelper).List(context.Background())

	require.NoError(t, err)
	collectionHelper.AssertExpectations(t)
}

func TestStatuteDatabase_RemoveThenAddTakesNextFreePosition(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	// positions 0..9 were in use and position 4 was removed; 9 is still the highest
	collectionHelper.On("DeleteMany", mock.Anything, bson.M{"_id": "art-5"}).Return(int64(1), nil)
	srHelper.On("Decode", mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		(*args.Get(0).(**models.Statute)).Position = 9
	})
	collectionHelper.On("FindOne", mock.Anything, bson.M{}, mock.Anything).Return(srHelper)
	collectionHelper.On("InsertOne", mock.Anything, mock.MatchedBy(func(s models.Statute) bool {
		return s.Position == 10
	})).Return(&mocks.InsertOneResultHelper{}, nil)
	dbHelper.On("Collection", "statutes").Return(collectionHelper)

	statutes := databases.NewStatuteDatabase(dbHelper)
	require.NoError(t, statutes.Remove(context.Background(), "art-5"))
	_, err := statutes.Add(context.Background(), models.StatuteViolation{Article: "Art. 900"})

	require.NoError(t, err)
	collectionHelper.AssertExpectations(t)
}

func TestStatuteDatabase_AddToEmptyTable(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	srHelper.On("Decode", mock.Anything).Return(mongo.ErrNoDocuments)
	collectionHelper.On("FindOne", mock.Anything, bson.M{}, mock.Anything).Return(srHelper)
	collectionHelper.On("InsertOne", mock.Anything, mock.MatchedBy(func(s models.Statute) bool {
		return s.Position == 0
	})).Return(&mocks.InsertOneResultHelper{}, nil)
	dbHelper.On("Collection", "statutes").Return(collectionHelper)

	_, err := databases.NewStatuteDatabase(dbHelper).Add(context.Background(), models.StatuteViolation{Article: "Art. 900"})

	require.NoError(t, err)
	collectionHelper.AssertExpectations(t)
}

func TestStatuteDatabase_RemoveMissing(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("DeleteMany", mock.Anything, bson.M{"_id": "nope"}).Return(int64(0), nil)
	dbHelper.On("Collection", "statutes").Return(collectionHelper)

	err := databases.NewStatuteDatabase(dbHelper).Remove(context.Background(), "nope")

	assert.ErrorIs(t, err, databases.ErrNoDocuments)
}

func TestStatuteDatabase_UpdateMissing(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("UpdateOne", mock.Anything, bson.M{"_id": "nope"}, mock.Anything).Return(&mongo.UpdateResult{MatchedCount: 0}, nil)
	dbHelper.On("Collection", "statutes").Return(collectionHelper)

	err := databases.NewStatuteDatabase(dbHelper).Update(context.Background(), "nope", models.StatuteViolation{})

	assert.ErrorIs(t, err, databases.ErrNoDocuments)
}

func TestDefaultStatutesAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range databases.DefaultStatutes() {
		assert.False(t, seen[s.ID], s.ID)
		seen[s.ID] = true
		assert.GreaterOrEqual(t, s.Fine, int64(0))
		assert.GreaterOrEqual(t, s.Penalty, int64(0))
		assert.GreaterOrEqual(t, s.Bail, models.BailDenied)
	}
}
